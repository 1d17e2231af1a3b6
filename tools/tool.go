package tools

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentexec/pkg/llmutils"
	"github.com/invopop/jsonschema"
)

//go:generate mockgen -source=tool.go -destination=../mocks/mocktools/tools_mock.gen.go -package mocktools

// ErrInvalidInput is returned by tools that fail to decode or validate
// their input. Callers treat it as a correctable failure: the result is
// reported back to the model instead of aborting the run.
var ErrInvalidInput = errors.New("invalid tool input")

// ITool is a tool for the llm agent to interact with different applications.
type ITool interface {
	// Name returns the name of the Tool.
	Name() string
	// Description returns the description of the tool, to be used in the prompt.
	// Should not exceed LLM model limit.
	Description() string
	// Parameters returns the parameters definition of the function, to be used in the prompt.
	Parameters() *jsonschema.Schema

	// Call executes the tool with the given input and returns the result.
	// Errors wrapping ErrInvalidInput signal a correctable input problem.
	Call(context.Context, string) (string, error)
}

type Callback interface {
	OnToolStart(context.Context, ITool, string)
	OnToolEnd(context.Context, ITool, string, string)
	OnToolError(context.Context, ITool, string, error)
}

type Tool[I any, O any] interface {
	ITool
	Run(context.Context, *I) (*O, error)
}

type toolDescription struct {
	Name        string `json:"Name" yaml:"Name"`
	Description string `json:"Description" yaml:"Description"`
}

type toolsDescription struct {
	Tools []toolDescription `json:"Tools" yaml:"Tools"`
}

func GetDescriptions(list ...ITool) string {
	var d toolsDescription
	for _, tool := range list {
		d.Tools = append(d.Tools, toolDescription{
			Name:        tool.Name(),
			Description: tool.Description(),
		})
	}
	return llmutils.BackticksJSON(llmutils.ToJSONIndent(d))
}
