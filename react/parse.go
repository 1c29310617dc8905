package react

import (
	"strings"
	"unicode"
)

// ActionKind classifies the action line of one model output.
type ActionKind int

const (
	ActionNone      ActionKind = iota // no "Action:" marker
	ActionTool                        // Name[input]
	ActionFinish                      // Finish[answer]
	ActionMalformed                   // marker present, syntax unrecognized
)

func (k ActionKind) String() string {
	switch k {
	case ActionTool:
		return "tool"
	case ActionFinish:
		return "finish"
	case ActionMalformed:
		return "malformed"
	default:
		return "none"
	}
}

// Action is the parsed action of a step. Raw is the trimmed action text as
// the model wrote it and is what gets echoed into history.
type Action struct {
	Kind   ActionKind
	Raw    string
	Tool   string // ActionTool only
	Input  string // ActionTool only, untrimmed
	Answer string // ActionFinish only
}

// Output is one model response split into its thought and action.
type Output struct {
	Thought    string
	HasThought bool
	Action     Action
}

const (
	thoughtMarker = "Thought: "
	actionMarker  = "Action: "
	finishKeyword = "Finish"
)

// Parse extracts the thought and action from raw model text.
//
// The thought runs from the first "Thought: " to the next "\nAction:" or the
// end of text. The action runs from the first "Action: " to the next blank
// line or the end of text. Both are trimmed.
func Parse(text string) Output {
	var out Output
	if i := strings.Index(text, thoughtMarker); i >= 0 {
		rest := text[i+len(thoughtMarker):]
		if j := strings.Index(rest, "\nAction:"); j >= 0 {
			rest = rest[:j]
		}
		out.Thought = strings.TrimSpace(rest)
		out.HasThought = true
	}
	if i := strings.Index(text, actionMarker); i >= 0 {
		rest := text[i+len(actionMarker):]
		if j := strings.Index(rest, "\n\n"); j >= 0 {
			rest = rest[:j]
		}
		out.Action = ParseAction(strings.TrimSpace(rest))
	}
	return out
}

// ParseAction classifies a trimmed action string.
//
// Anything starting with "Finish" terminates the run: the answer is the
// trimmed text between the first '[' and the last ']', or the whole action
// when no bracket pair follows. Otherwise the action must be an identifier of
// letters, digits and underscores, optional spaces, then a bracketed payload
// closed by the last ']'. Text after that bracket is ignored.
func ParseAction(raw string) Action {
	a := Action{Raw: raw}

	if strings.HasPrefix(raw, finishKeyword) {
		a.Kind = ActionFinish
		a.Answer = raw
		if payload, ok := bracketed(strings.TrimLeft(raw[len(finishKeyword):], " \t\r\n\v\f")); ok {
			a.Answer = strings.TrimSpace(payload)
		}
		return a
	}

	n := identifierLen(raw)
	if n == 0 {
		a.Kind = ActionMalformed
		return a
	}
	payload, ok := bracketed(strings.TrimLeft(raw[n:], " \t\r\n\v\f"))
	if !ok {
		a.Kind = ActionMalformed
		return a
	}

	a.Kind = ActionTool
	a.Tool = raw[:n]
	a.Input = payload
	return a
}

// bracketed returns the text between a leading '[' and the last ']'.
func bracketed(s string) (string, bool) {
	if !strings.HasPrefix(s, "[") {
		return "", false
	}
	end := strings.LastIndexByte(s, ']')
	if end < 1 {
		return "", false
	}
	return s[1:end], true
}

// identifierLen returns the byte length of the leading run of letters,
// digits and underscores. Letters and digits are matched in any script.
func identifierLen(s string) int {
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			continue
		}
		return i
	}
	return len(s)
}
