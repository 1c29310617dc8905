package memory

// Kind tags a Record as either an attempt at the task or feedback on one.
type Kind int

const (
	KindExecution Kind = iota + 1
	KindReflection
)

func (k Kind) String() string {
	switch k {
	case KindExecution:
		return "execution"
	case KindReflection:
		return "reflection"
	default:
		return "unknown"
	}
}

// Record is one entry in a Memory log.
type Record struct {
	Kind    Kind
	Content string
}

// Execution creates a record holding a generated attempt.
func Execution(content string) Record {
	return Record{Kind: KindExecution, Content: content}
}

// Reflection creates a record holding reviewer feedback.
func Reflection(content string) Record {
	return Record{Kind: KindReflection, Content: content}
}

// Trajectory section headers.
const (
	ExecutionHeader  = "--- 上一轮尝试 (代码) ---"
	ReflectionHeader = "--- 评审员反馈 ---"
)

// Block renders the record as a labeled trajectory block.
func (r Record) Block() string {
	switch r.Kind {
	case KindExecution:
		return ExecutionHeader + "\n" + r.Content
	case KindReflection:
		return ReflectionHeader + "\n" + r.Content
	default:
		return r.Content
	}
}
