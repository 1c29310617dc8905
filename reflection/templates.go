package reflection

// Placeholders available to the phase templates.
const (
	KeyTask        = "task"
	KeyContent     = "content"
	KeyLastAttempt = "last_attempt"
	KeyFeedback    = "feedback"
)

// Built-in phase templates.
const (
	DefaultInitialTemplate = `
请根据以下任务要求给出回答：

{task}

注意：
- 如果任务要求编写代码/函数，请提供Python代码
- 如果任务是问答/写文章/分析等，请直接给出文字内容，不要用代码包装
- 确保回答完整、准确、实用
`

	DefaultReflectTemplate = `
请仔细审查以下回答，并找出可能的问题或改进空间:

# 原始任务:
{task}

# 当前回答:
{content}

请分析这个回答的质量，指出不足之处，并提出具体的改进建议。
重要提示：
1.如果回答已经很好，请直接回答"无需改进"。在其他情况下不可以回答这个选项
2.如果回答有缺陷，请详细说明问题所在，并给出改进建议。
`

	DefaultRefineTemplate = `
请根据反馈意见改进你的回答:

# 原始任务:
{task}

# 上一轮回答:
{last_attempt}

# 反馈意见:
{feedback}

重要要求：
1. 只改进内容质量，不要改变输出格式
2. 如果上一轮回答是纯文本/Markdown格式，继续使用纯文本/Markdown，不要用` + "```python" + `或函数包装
3. 如果上一轮回答是Python代码，继续使用代码格式
4. 保持原有的结构和呈现方式，只优化具体内容

请直接输出改进后的回答：
`
)

// Templates holds one prompt per phase. An empty field means "use the
// built-in template for that phase".
type Templates struct {
	Initial string `json:"initial,omitempty" yaml:"initial,omitempty"`
	Reflect string `json:"reflect,omitempty" yaml:"reflect,omitempty"`
	Refine  string `json:"refine,omitempty" yaml:"refine,omitempty"`
}

// DefaultTemplates returns the built-in phase templates.
func DefaultTemplates() Templates {
	return Templates{
		Initial: DefaultInitialTemplate,
		Reflect: DefaultReflectTemplate,
		Refine:  DefaultRefineTemplate,
	}
}

// Merge applies non-empty templates from source into t.
func (t *Templates) Merge(source *Templates) {
	if source.Initial != "" {
		t.Initial = source.Initial
	}
	if source.Reflect != "" {
		t.Reflect = source.Reflect
	}
	if source.Refine != "" {
		t.Refine = source.Refine
	}
}
