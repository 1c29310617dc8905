package session

// Config holds session initialization parameters.
type Config struct {
	MaxMessages int `json:"max_messages,omitempty" yaml:"max_messages,omitempty"` // Zero keeps every message.
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.MaxMessages > 0 {
		c.MaxMessages = source.MaxMessages
	}
}

// New creates a Session from configuration. Currently returns an in-memory session.
func New(cfg *Config) (Session, error) {
	return NewMemorySession(cfg.MaxMessages), nil
}
