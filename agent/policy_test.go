package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_StandardPolicy(t *testing.T) {
	state := NewRunState()
	p := StandardPolicy{MaxSteps: 2}

	assert.False(t, p.Decide(state).Stop)

	state.roundComplete()
	assert.False(t, p.Decide(state).Stop)

	state.roundComplete()
	d := p.Decide(state)
	assert.True(t, d.Stop)
	assert.Equal(t, ReasonMaxStepsExceeded, d.Reason)

	// zero budget disables the policy
	assert.False(t, StandardPolicy{}.Decide(state).Stop)
}

func Test_DuplicateDetectionPolicy_Pairs(t *testing.T) {
	state := NewRunState()
	p := DuplicateDetectionPolicy{MaxDuplicateCalls: 2, MaxCallsPerTool: 20}

	state.recordCall("WebSearch", `{"Query":"golang"}`)
	state.recordCall("WebSearch", `{"Query":"golang"}`)
	assert.False(t, p.Decide(state).Stop, "at the limit is still allowed")

	state.recordCall("WebSearch", `{"Query":"golang"}`)
	d := p.Decide(state)
	assert.True(t, d.Stop)
	assert.Equal(t, ReasonDuplicateCallsDetected, d.Reason)
}

func Test_DuplicateDetectionPolicy_PerTool(t *testing.T) {
	state := NewRunState()
	p := DuplicateDetectionPolicy{MaxDuplicateCalls: 5, MaxCallsPerTool: 3}

	// distinct arguments, same tool
	state.recordCall("WebSearch", `{"Query":"a"}`)
	state.recordCall("WebSearch", `{"Query":"b"}`)
	state.recordCall("WebSearch", `{"Query":"c"}`)
	assert.False(t, p.Decide(state).Stop)

	state.recordCall("WebSearch", `{"Query":"d"}`)
	d := p.Decide(state)
	assert.True(t, d.Stop)
	assert.Equal(t, ReasonDuplicateCallsDetected, d.Reason)
	assert.Contains(t, d.Detail, "WebSearch")
}

func Test_ComposePolicies(t *testing.T) {
	state := NewRunState()
	state.roundComplete()

	first := StandardPolicy{MaxSteps: 1}
	second := DuplicateDetectionPolicy{MaxDuplicateCalls: 1}

	d := ComposePolicies(first, second).Decide(state)
	assert.True(t, d.Stop)
	assert.Equal(t, ReasonMaxStepsExceeded, d.Reason)

	// empty composition never stops
	assert.False(t, ComposePolicies().Decide(state).Stop)
}

func Test_Config_Policy(t *testing.T) {
	cfg := NewConfig()
	state := NewRunState()
	for i := 0; i < DefaultMaxSteps; i++ {
		assert.False(t, cfg.policy().Decide(state).Stop)
		state.roundComplete()
	}
	d := cfg.policy().Decide(state)
	assert.True(t, d.Stop)
	assert.Equal(t, ReasonMaxStepsExceeded, d.Reason)

	// overriding policies replaces the defaults entirely
	cfg = NewConfig(WithPolicies(DuplicateDetectionPolicy{MaxDuplicateCalls: 1}))
	assert.False(t, cfg.policy().Decide(state).Stop)
}
