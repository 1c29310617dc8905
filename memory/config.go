package memory

// Config holds trajectory export parameters.
type Config struct {
	ExportPath string `json:"export_path,omitempty" yaml:"export_path,omitempty"` // Dump directory; empty disables export.
}

// DefaultConfig returns the default memory configuration (export disabled).
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.ExportPath != "" {
		c.ExportPath = source.ExportPath
	}
}

// NewExporter creates an Exporter from configuration. Returns a nil Exporter
// when ExportPath is empty, indicating export is disabled.
func NewExporter(cfg *Config) Exporter {
	if cfg.ExportPath == "" {
		return nil
	}
	return NewFileExporter(cfg.ExportPath)
}
