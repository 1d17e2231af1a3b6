package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/effective-security/agentexec/pkg/llms"
	"github.com/effective-security/agentexec/pkg/llms/retry"
	"github.com/effective-security/agentexec/tools"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/agentexec", "agent")

//go:generate mockgen -source=agent.go -destination=../mocks/mockagent/agent_mock.gen.go -package mockagent

// IAgent identifies an agent in callbacks and prompts of other agents.
type IAgent interface {
	// Name returns the name of the agent.
	Name() string
	// Description returns the description of the agent, to be used in the prompt
	// of other agents or LLMs. Should not exceed LLM model limit.
	Description() string
}

// Callback observes the progress of a run. All methods are called
// synchronously from the run goroutine, except the tool methods which
// may be called from concurrent tool executions.
type Callback interface {
	tools.Callback
	OnRunStart(ctx context.Context, agent IAgent, input string)
	OnRunEnd(ctx context.Context, agent IAgent, input string, steps []Step)
	OnRunError(ctx context.Context, agent IAgent, input string, err error)
	OnStep(ctx context.Context, agent IAgent, step Step)
	OnLLMCallStart(ctx context.Context, agent IAgent, llm llms.Model, payload []llms.Message)
	OnLLMCallEnd(ctx context.Context, agent IAgent, llm llms.Model, resp *llms.ContentResponse)
	OnToolNotFound(ctx context.Context, agent IAgent, tool string)
	OnRetry(ctx context.Context, agent IAgent, event retry.Event)
}

// HasCallback is implemented by agents that carry their own callback.
type HasCallback interface {
	GetCallback() Callback
}

func GetDescriptions(list ...IAgent) string {
	var ts strings.Builder
	for _, item := range list {
		ts.WriteString(fmt.Sprintf("- `%s`: %s\n", item.Name(), item.Description()))
	}
	return ts.String()
}
