package react

import "fmt"

// MalformedPolicy decides what a step does with an action it cannot parse.
type MalformedPolicy string

const (
	// MalformedSkip drops the step from history; the model sees no feedback.
	MalformedSkip MalformedPolicy = "skip"
	// MalformedObserve records the raw action with a syntax reminder as its
	// observation.
	MalformedObserve MalformedPolicy = "observe"
)

func (p MalformedPolicy) valid() bool {
	return p == MalformedSkip || p == MalformedObserve
}

// Config holds Reasoning Loop parameters.
type Config struct {
	MaxSteps        int             `json:"max_steps,omitempty" yaml:"max_steps,omitempty"`
	Template        string          `json:"template,omitempty" yaml:"template,omitempty"`
	FallbackAnswer  string          `json:"fallback_answer,omitempty" yaml:"fallback_answer,omitempty"`
	MalformedPolicy MalformedPolicy `json:"malformed_policy,omitempty" yaml:"malformed_policy,omitempty"`
}

// DefaultConfig returns five steps, the built-in template and fallback, and
// the skip policy.
func DefaultConfig() Config {
	return Config{
		MaxSteps:        5,
		Template:        DefaultTemplate,
		FallbackAnswer:  DefaultFallbackAnswer,
		MalformedPolicy: MalformedSkip,
	}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.MaxSteps > 0 {
		c.MaxSteps = source.MaxSteps
	}
	if source.Template != "" {
		c.Template = source.Template
	}
	if source.FallbackAnswer != "" {
		c.FallbackAnswer = source.FallbackAnswer
	}
	if source.MalformedPolicy != "" {
		c.MalformedPolicy = source.MalformedPolicy
	}
}

func (c *Config) validate() error {
	if !c.MalformedPolicy.valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPolicy, c.MalformedPolicy)
	}
	return nil
}
