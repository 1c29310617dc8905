package protocol

// Tool describes a named text-in/text-out capability. The description is
// rendered verbatim into prompts, so it should read as an instruction to the model.
type Tool struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}
