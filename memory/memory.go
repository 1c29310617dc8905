// Package memory holds the short-term trajectory of a reflection run: an
// append-only log of attempts and the feedback given on them.
package memory

import (
	"slices"
	"strings"
)

// Memory is an append-only, insertion-ordered log of records. It is owned by
// a single run and is not safe for concurrent use.
type Memory struct {
	records []Record
}

// New creates an empty Memory.
func New() *Memory {
	return &Memory{}
}

// Append adds r to the end of the log.
func (m *Memory) Append(r Record) {
	m.records = append(m.records, r)
}

// Len returns the number of records appended so far.
func (m *Memory) Len() int {
	return len(m.records)
}

// Records returns a copy of the log in insertion order.
func (m *Memory) Records() []Record {
	return slices.Clone(m.records)
}

// Trajectory renders every record, oldest first, as labeled blocks separated
// by a blank line. An empty log renders as "".
func (m *Memory) Trajectory() string {
	parts := make([]string, 0, len(m.records))
	for _, r := range m.records {
		parts = append(parts, r.Block())
	}
	return strings.Join(parts, "\n\n")
}

// LastExecution returns the content of the most recently appended execution
// record. ok is false when the log holds no execution record.
func (m *Memory) LastExecution() (content string, ok bool) {
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].Kind == KindExecution {
			return m.records[i].Content, true
		}
	}
	return "", false
}
