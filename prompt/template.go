// Package prompt implements the placeholder templates used to build model
// prompts. A template is plain text with named substitution points written
// as {name}; a literal brace is written doubled ({{ or }}).
//
// Templates are parsed once, when an agent is constructed, against the set of
// names that agent will supply. Rendering is a single pass, so substituted
// values are never themselves scanned for placeholders.
//
//	tmpl, err := prompt.Parse("Task: {task}", "task")
//	text := tmpl.Render(map[string]string{"task": "write a haiku"})
package prompt

import (
	"fmt"
	"slices"
	"strings"
)

type segment struct {
	text        string
	placeholder bool
}

// Template is a parsed prompt template. The zero value renders as "".
type Template struct {
	source   string
	segments []segment
	names    []string
}

// Parse parses text, accepting only placeholders listed in allowed.
func Parse(text string, allowed ...string) (Template, error) {
	t := Template{source: text}

	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch c {
		case '{':
			if i+1 < len(text) && text[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(text[i+1:], '}')
			if end < 0 {
				return Template{}, fmt.Errorf("%w: unclosed '{' at offset %d", ErrMalformedTemplate, i)
			}
			name := text[i+1 : i+1+end]
			if !validName(name) {
				return Template{}, fmt.Errorf("%w: invalid placeholder %q at offset %d", ErrMalformedTemplate, name, i)
			}
			if !slices.Contains(allowed, name) {
				return Template{}, fmt.Errorf("%w: {%s} (allowed: %s)", ErrUnknownPlaceholder, name, strings.Join(allowed, ", "))
			}
			flush()
			t.segments = append(t.segments, segment{text: name, placeholder: true})
			if !slices.Contains(t.names, name) {
				t.names = append(t.names, name)
			}
			i += end + 1
		case '}':
			if i+1 < len(text) && text[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return Template{}, fmt.Errorf("%w: single '}' at offset %d", ErrMalformedTemplate, i)
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return t, nil
}

// MustParse is like Parse but panics on error. Use it for built-in templates.
func MustParse(text string, allowed ...string) Template {
	t, err := Parse(text, allowed...)
	if err != nil {
		panic(fmt.Sprintf("prompt: %v", err))
	}
	return t
}

// Render substitutes values into the template. A placeholder with no entry
// in values renders as the empty string.
func (t Template) Render(values map[string]string) string {
	var b strings.Builder
	for _, s := range t.segments {
		if s.placeholder {
			b.WriteString(values[s.text])
			continue
		}
		b.WriteString(s.text)
	}
	return b.String()
}

// Placeholders returns the distinct placeholder names in first-use order.
func (t Template) Placeholders() []string {
	return slices.Clone(t.names)
}

// Source returns the unparsed template text.
func (t Template) Source() string {
	return t.source
}

func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
