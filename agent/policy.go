package agent

import (
	"fmt"
)

// Decision is the outcome of consulting a termination policy.
type Decision struct {
	Stop   bool
	Reason TerminationReason
	Detail string
}

// Policy decides whether a run should stop based on the accumulated
// run state. Policies are consulted at phase boundaries; the first
// policy that says stop wins.
type Policy interface {
	Decide(state *RunState) Decision
}

// StandardPolicy stops a run when the model round trip budget is spent.
type StandardPolicy struct {
	MaxSteps int
}

func (p StandardPolicy) Decide(state *RunState) Decision {
	if p.MaxSteps > 0 && state.Rounds() >= p.MaxSteps {
		return Decision{
			Stop:   true,
			Reason: ReasonMaxStepsExceeded,
			Detail: fmt.Sprintf("completed %d of %d allowed model round trips", state.Rounds(), p.MaxSteps),
		}
	}
	return Decision{}
}

// DuplicateDetectionPolicy stops a run when the model keeps issuing the
// same (tool, arguments) pair, or hammers one tool past its ceiling.
type DuplicateDetectionPolicy struct {
	// MaxDuplicateCalls is the allowed repeat count for one exact pair.
	MaxDuplicateCalls int
	// MaxCallsPerTool is the allowed total calls for any single tool.
	MaxCallsPerTool int
}

func (p DuplicateDetectionPolicy) Decide(state *RunState) Decision {
	if p.MaxDuplicateCalls > 0 && state.MaxDuplicateCount() > p.MaxDuplicateCalls {
		return Decision{
			Stop:   true,
			Reason: ReasonDuplicateCallsDetected,
			Detail: fmt.Sprintf("a tool call was repeated more than %d times with identical arguments", p.MaxDuplicateCalls),
		}
	}
	if p.MaxCallsPerTool > 0 {
		if name, total := state.MaxToolTotal(); total > p.MaxCallsPerTool {
			return Decision{
				Stop:   true,
				Reason: ReasonDuplicateCallsDetected,
				Detail: fmt.Sprintf("tool %s was called %d times, limit is %d", name, total, p.MaxCallsPerTool),
			}
		}
	}
	return Decision{}
}

type composedPolicy struct {
	policies []Policy
}

// ComposePolicies combines policies in order; the first stop decision wins.
func ComposePolicies(policies ...Policy) Policy {
	return composedPolicy{policies: policies}
}

func (p composedPolicy) Decide(state *RunState) Decision {
	for _, policy := range p.policies {
		if d := policy.Decide(state); d.Stop {
			return d
		}
	}
	return Decision{}
}
