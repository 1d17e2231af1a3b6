package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_CanonicalArguments(t *testing.T) {
	tcases := []struct {
		name string
		a    string
		b    string
		same bool
	}{
		{"key_order", `{"a":1,"b":2}`, `{"b":2,"a":1}`, true},
		{"whitespace", `{"a": 1}`, `{"a":1}`, true},
		{"nested", `{"a":{"x":1,"y":2}}`, `{"a":{"y":2,"x":1}}`, true},
		{"different_values", `{"a":1}`, `{"a":2}`, false},
		{"invalid_json_verbatim", `{not json`, `{not json`, true},
		{"invalid_json_differs", `{not json`, `{not  json`, false},
		{"array_order_matters", `[1,2]`, `[2,1]`, false},
	}
	for _, tc := range tcases {
		t.Run(tc.name, func(t *testing.T) {
			ka := callKey("tool", tc.a)
			kb := callKey("tool", tc.b)
			if tc.same {
				assert.Equal(t, ka, kb)
			} else {
				assert.NotEqual(t, ka, kb)
			}
		})
	}
}

func Test_CallKey_ToolName(t *testing.T) {
	// The same arguments for different tools are different calls.
	assert.NotEqual(t, callKey("a", `{"x":1}`), callKey("b", `{"x":1}`))
}

func Test_RunState_RecordCall(t *testing.T) {
	state := NewRunState()

	pair, total := state.recordCall("Calculator", `{"A":2,"B":2,"Operation":"add"}`)
	assert.Equal(t, 1, pair)
	assert.Equal(t, 1, total)

	// same pair, different key order
	pair, total = state.recordCall("Calculator", `{"Operation":"add","B":2,"A":2}`)
	assert.Equal(t, 2, pair)
	assert.Equal(t, 2, total)

	// different arguments, same tool
	pair, total = state.recordCall("Calculator", `{"A":3,"B":2,"Operation":"add"}`)
	assert.Equal(t, 1, pair)
	assert.Equal(t, 3, total)

	assert.Equal(t, 2, state.MaxDuplicateCount())
	name, max := state.MaxToolTotal()
	assert.Equal(t, "Calculator", name)
	assert.Equal(t, 3, max)
}

func Test_RunState_Phases(t *testing.T) {
	state := NewRunState()
	require.NotNil(t, state.Phase())

	state.setPhase(PhaseAwaitingModel{})
	assert.Equal(t, "awaiting_model", state.Phase().String())

	state.setPhase(PhaseExecutingTools{Pending: []ToolCallStep{{Name: "Calculator"}}})
	assert.Equal(t, "executing_tools(1)", state.Phase().String())

	state.setPhase(PhaseTerminated{Reason: ReasonCompleted})
	assert.Equal(t, "terminated(completed)", state.Phase().String())

	// terminated is final
	state.setPhase(PhaseAwaitingModel{})
	assert.Equal(t, "terminated(completed)", state.Phase().String())
}

func Test_RunState_Cancel(t *testing.T) {
	state := NewRunState()
	assert.False(t, state.IsCancelled())
	state.Cancel()
	assert.True(t, state.IsCancelled())
	// idempotent
	state.Cancel()
	assert.True(t, state.IsCancelled())
}

func Test_RunState_Rounds(t *testing.T) {
	state := NewRunState()
	assert.Equal(t, 0, state.Rounds())
	state.roundComplete()
	state.roundComplete()
	assert.Equal(t, 2, state.Rounds())
}

func Test_RunState_HistoryAndSteps_Copies(t *testing.T) {
	state := NewRunState()
	state.addStep(ThinkingStep{Text: "a"})
	steps := state.Steps()
	require.Len(t, steps, 1)

	steps[0] = ThinkingStep{Text: "mutated"}
	assert.Equal(t, ThinkingStep{Text: "a"}, state.Steps()[0])
}
