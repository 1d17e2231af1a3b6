package agent

import (
	"fmt"
	"time"
)

// TerminationReason explains why a run stopped.
type TerminationReason string

const (
	ReasonCompleted              TerminationReason = "completed"
	ReasonMaxStepsExceeded       TerminationReason = "max_steps_exceeded"
	ReasonDuplicateCallsDetected TerminationReason = "duplicate_calls_detected"
	ReasonToolError              TerminationReason = "tool_error"
	ReasonToolNotFound           TerminationReason = "tool_not_found"
	ReasonProviderError          TerminationReason = "provider_error"
	ReasonCancelled              TerminationReason = "cancelled"
)

// Phase is the loop position of a run. It is a closed sum, not a set
// of flags: a run is in exactly one phase at a time.
type Phase interface {
	isPhase()
	String() string
}

// PhaseAwaitingModel means a model round trip is in flight or about to be.
type PhaseAwaitingModel struct{}

func (PhaseAwaitingModel) isPhase()       {}
func (PhaseAwaitingModel) String() string { return "awaiting_model" }

// PhaseExecutingTools means tool calls from the last model response are
// pending or running.
type PhaseExecutingTools struct {
	Pending []ToolCallStep
}

func (PhaseExecutingTools) isPhase() {}
func (p PhaseExecutingTools) String() string {
	return fmt.Sprintf("executing_tools(%d)", len(p.Pending))
}

// PhaseRetrying means the provider decorator is waiting out a backoff
// delay before re-sending the round trip.
type PhaseRetrying struct {
	Attempt   int
	NextDelay time.Duration
}

func (PhaseRetrying) isPhase() {}
func (p PhaseRetrying) String() string {
	return fmt.Sprintf("retrying(attempt=%d, delay=%s)", p.Attempt, p.NextDelay)
}

// PhaseTerminated is final. No transitions leave it.
type PhaseTerminated struct {
	Reason TerminationReason
}

func (PhaseTerminated) isPhase() {}
func (p PhaseTerminated) String() string {
	return fmt.Sprintf("terminated(%s)", p.Reason)
}
