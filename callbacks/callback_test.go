package callbacks_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentexec/agent"
	"github.com/effective-security/agentexec/callbacks"
	"github.com/effective-security/agentexec/mocks/mockagent"
	"github.com/effective-security/agentexec/mocks/mockllms"
	"github.com/effective-security/agentexec/pkg/llms"
	"github.com/effective-security/agentexec/pkg/llms/llmerrors"
	"github.com/effective-security/agentexec/pkg/llms/retry"
	"github.com/effective-security/agentexec/tools/calculator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func Test_Printer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ag := mockagent.NewMockIAgent(ctrl)
	ag.EXPECT().Name().Return("Researcher").AnyTimes()

	llm := mockllms.NewMockModel(ctrl)
	llm.EXPECT().GetName().Return("gpt-test").AnyTimes()

	calc, err := calculator.New()
	require.NoError(t, err)

	ctx := context.Background()

	var buf bytes.Buffer
	cb := callbacks.NewPrinter(&buf, callbacks.ModeVerbose)

	cb.OnRunStart(ctx, ag, "What is 2+2?")
	cb.OnLLMCallStart(ctx, ag, llm, []llms.Message{
		llms.MessageFromTextParts(llms.RoleHuman, "What is 2+2?"),
	})
	cb.OnLLMCallEnd(ctx, ag, llm, &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: "4"}},
	})
	cb.OnStep(ctx, ag, agent.ThinkingStep{Text: "I should use the calculator"})
	cb.OnStep(ctx, ag, agent.ToolCallStep{ID: "call_1", Name: "Calculator", Arguments: `{"operation":"add"}`})
	cb.OnToolStart(ctx, calc, `{"operation":"add"}`)
	cb.OnToolEnd(ctx, calc, `{"operation":"add"}`, `{"Value":4}`)
	cb.OnStep(ctx, ag, agent.ToolResultStep{ID: "call_1", Name: "Calculator", Output: `{"Value":4}`})
	cb.OnStep(ctx, ag, agent.FinalResponseStep{Content: `{"content":"4"}`})
	cb.OnToolError(ctx, calc, `{}`, errors.New("division by zero"))
	cb.OnToolNotFound(ctx, ag, "Missing")
	cb.OnRetry(ctx, ag, retry.Event{
		Attempt: 0,
		Delay:   time.Second,
		Reason:  llmerrors.TypeRateLimit,
	})
	cb.OnRunEnd(ctx, ag, "What is 2+2?", []agent.Step{
		agent.FinalResponseStep{Content: `{"content":"4"}`},
	})
	cb.OnRunError(ctx, ag, "What is 2+2?", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "Run Start: Researcher")
	assert.Contains(t, out, "LLM Call: Researcher: gpt-test model, 1 messages")
	assert.Contains(t, out, "LLM Call End: Researcher: gpt-test model, 1 choices")
	assert.Contains(t, out, "Thinking: I should use the calculator")
	assert.Contains(t, out, "Tool Call: Calculator (call_1)")
	assert.Contains(t, out, `Arguments: {"operation":"add"}`)
	assert.Contains(t, out, "Tool Start: Calculator")
	assert.Contains(t, out, "Tool End: Calculator")
	assert.Contains(t, out, "Tool Result: Calculator (call_1), error=false")
	assert.Contains(t, out, "Final Response: 15 bytes")
	assert.Contains(t, out, "Tool Error: Calculator: division by zero")
	assert.Contains(t, out, "Tool Not Found: Missing")
	assert.Contains(t, out, "Retry: Researcher: attempt 0, delay 1s, reason rate_limit")
	assert.Contains(t, out, "Run End: Researcher, 1 steps")
	assert.Contains(t, out, "Run Error: Researcher: boom")
}

func Test_Fanout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ag := mockagent.NewMockIAgent(ctrl)

	first := mockagent.NewMockCallback(ctrl)
	second := mockagent.NewMockCallback(ctrl)

	ctx := context.Background()

	fan := callbacks.NewFanout(first)
	fan.Add(second)

	first.EXPECT().OnRunStart(ctx, ag, "input")
	second.EXPECT().OnRunStart(ctx, ag, "input")
	fan.OnRunStart(ctx, ag, "input")

	step := agent.ThinkingStep{Text: "thinking"}
	first.EXPECT().OnStep(ctx, ag, step)
	second.EXPECT().OnStep(ctx, ag, step)
	fan.OnStep(ctx, ag, step)

	first.EXPECT().OnToolNotFound(ctx, ag, "Missing")
	second.EXPECT().OnToolNotFound(ctx, ag, "Missing")
	fan.OnToolNotFound(ctx, ag, "Missing")

	err := errors.New("boom")
	first.EXPECT().OnRunError(ctx, ag, "input", err)
	second.EXPECT().OnRunError(ctx, ag, "input", err)
	fan.OnRunError(ctx, ag, "input", err)
}

func Test_Noop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ag := mockagent.NewMockIAgent(ctrl)
	ctx := context.Background()

	// the noop callback never touches the agent
	cb := callbacks.NewNoop()
	cb.OnRunStart(ctx, ag, "input")
	cb.OnStep(ctx, ag, agent.ThinkingStep{Text: "thinking"})
	cb.OnRunEnd(ctx, ag, "input", nil)
	cb.OnRunError(ctx, ag, "input", errors.New("boom"))
}
