package agent

// Step is a single observable unit of agent progress. The concrete
// types form a closed set, the same way llms.ContentPart does.
type Step interface {
	isStep()
}

// ThinkingStep is prose produced by the model alongside or before tool
// calls. It is observable but carries no side effects.
type ThinkingStep struct {
	Text string `json:"text"`
}

func (ThinkingStep) isStep() {}

// ToolCallStep is a request by the model to invoke a named tool with
// raw JSON arguments. Emitted before the tool executes.
type ToolCallStep struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

func (ToolCallStep) isStep() {}

// ToolResultStep is the outcome of one tool call. IsError marks
// executor-reported failures that are fed back to the model rather
// than aborting the run.
type ToolResultStep struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Output  string `json:"output"`
	IsError bool   `json:"is_error,omitempty"`
}

func (ToolResultStep) isStep() {}

// FinalResponseStep is the terminal answer of a run. At most one is
// produced per run and nothing follows it.
type FinalResponseStep struct {
	Content string `json:"content"`
}

func (FinalResponseStep) isStep() {}
