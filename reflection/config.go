package reflection

// Config holds Reflection Loop parameters.
type Config struct {
	MaxIterations int        `json:"max_iterations,omitempty" yaml:"max_iterations,omitempty"`
	Templates     Templates  `json:"templates,omitempty" yaml:"templates,omitempty"`
	Stop          StopPolicy `json:"stop,omitempty" yaml:"stop,omitempty"`
}

// DefaultConfig returns three iterations with the built-in templates and
// stop phrases.
func DefaultConfig() Config {
	return Config{
		MaxIterations: 3,
		Templates:     DefaultTemplates(),
		Stop:          DefaultStopPolicy(),
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.MaxIterations > 0 {
		c.MaxIterations = source.MaxIterations
	}
	c.Templates.Merge(&source.Templates)
	c.Stop.Merge(&source.Stop)
}
