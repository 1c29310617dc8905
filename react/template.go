package react

// Placeholders a ReAct template may reference.
const (
	KeyTools    = "tools"
	KeyQuestion = "question"
	KeyHistory  = "history"
)

// DefaultTemplate instructs the model to answer in Thought/Action form.
// {tools} receives the registry description, {question} the task and
// {history} the accumulated Action/Observation lines.
const DefaultTemplate = `

你是一个具备推理和行动能力的AI助手。你可以通过思考分析问题，然后调用合适的工具来获取信息，最终给出准确的答案。

## 可用工具
{tools}

## 工作流程
请严格按照以下格式进行回应，每次只能执行一个步骤:

Thought: 分析当前问题，思考需要什么信息或采取什么行动。
Action: 选择一个行动，格式必须是以下之一:
- ` + "`{{tool_name}}[{{tool_input}}]`" + ` - 调用指定工具
- ` + "`Finish[最终答案]`" + ` - 当你有足够信息给出最终答案时

## 重要提醒
1. 每次回应必须包含Thought和Action两部分
2. 工具调用的格式必须严格遵循:工具名[参数]
3. 只有当你确信有足够信息回答问题时，才使用Finish
4. 如果工具返回的信息不够，继续使用其他工具或相同工具的不同参数

## 当前任务
**Question:** {question}

## 执行历史
{history}

现在开始你的推理和行动:
`

// DefaultFallbackAnswer is returned when the step budget runs out.
const DefaultFallbackAnswer = "抱歉，我无法在限定步数内完成这个任务。"

func malformedObservation(raw string) string {
	return "错误: 无法解析动作 '" + raw + "'。请使用 工具名[参数] 或 Finish[最终答案] 的格式。"
}
