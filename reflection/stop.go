package reflection

import (
	"slices"
	"strings"
)

// StopPolicy decides whether critique feedback means "no further changes".
// Feedback is checked line by line: a trimmed line equal to any Exact phrase,
// or starting with any Prefix phrase, stops the loop.
type StopPolicy struct {
	Exact  []string `json:"exact,omitempty" yaml:"exact,omitempty"`
	Prefix []string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// DefaultStopPolicy recognizes the phrases the default reflect template asks
// the model to use.
func DefaultStopPolicy() StopPolicy {
	return StopPolicy{
		Exact:  []string{"无需改进", "无需修改", "完美实现"},
		Prefix: []string{"无需改进", "无需修改"},
	}
}

// Merge replaces each phrase list that source sets.
func (p *StopPolicy) Merge(source *StopPolicy) {
	if len(source.Exact) > 0 {
		p.Exact = slices.Clone(source.Exact)
	}
	if len(source.Prefix) > 0 {
		p.Prefix = slices.Clone(source.Prefix)
	}
}

// ShouldStop reports whether feedback satisfies the policy.
func (p StopPolicy) ShouldStop(feedback string) bool {
	for _, line := range strings.Split(strings.TrimSpace(feedback), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if slices.Contains(p.Exact, line) {
			return true
		}
		for _, prefix := range p.Prefix {
			if prefix != "" && strings.HasPrefix(line, prefix) {
				return true
			}
		}
	}
	return false
}
