package agent

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/effective-security/agentexec/pkg/llms"
)

// RunState is the execution context of a single run. It is owned by one
// run from start to termination: history is append-only, the round
// counter is monotonic, and the duplicate multiset only grows.
type RunState struct {
	mu        sync.Mutex
	phase     Phase
	history   []llms.Message
	steps     []Step
	rounds    int
	dupCounts map[uint64]int
	dupMax    int
	toolCalls map[string]int
	cancelled atomic.Bool
}

func NewRunState() *RunState {
	return &RunState{
		phase:     PhaseAwaitingModel{},
		dupCounts: make(map[uint64]int),
		toolCalls: make(map[string]int),
	}
}

// Phase returns a snapshot of the current loop phase.
func (s *RunState) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *RunState) setPhase(p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, done := s.phase.(PhaseTerminated); done {
		// terminated is final
		return
	}
	s.phase = p
}

// Cancel requests a cooperative stop. The flag is observed at phase
// boundaries only; in-flight model or tool calls are never interrupted.
func (s *RunState) Cancel() {
	s.cancelled.Store(true)
}

func (s *RunState) IsCancelled() bool {
	return s.cancelled.Load()
}

// Rounds returns the number of completed model round trips.
func (s *RunState) Rounds() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rounds
}

func (s *RunState) roundComplete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds++
}

// History returns the message history accumulated so far.
func (s *RunState) History() []llms.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history
}

func (s *RunState) appendMessages(msgs ...llms.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, msgs...)
}

// Steps returns the steps emitted so far.
func (s *RunState) Steps() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps
}

func (s *RunState) addStep(step Step) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps = append(s.steps, step)
}

// recordCall counts a (tool, arguments) pair in the duplicate multiset
// and bumps the per-tool total. Returns the repeat count for this exact
// pair and the total calls seen for the tool, both including this call.
func (s *RunState) recordCall(name, arguments string) (pairCount, toolTotal int) {
	key := callKey(name, arguments)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dupCounts[key]++
	if s.dupCounts[key] > s.dupMax {
		s.dupMax = s.dupCounts[key]
	}
	s.toolCalls[name]++
	return s.dupCounts[key], s.toolCalls[name]
}

// MaxDuplicateCount returns the highest repeat count of any single
// (tool, arguments) pair seen in this run.
func (s *RunState) MaxDuplicateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dupMax
}

// MaxToolTotal returns the tool with the most calls so far.
func (s *RunState) MaxToolTotal() (string, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var name string
	var max int
	for n, c := range s.toolCalls {
		if c > max {
			name, max = n, c
		}
	}
	return name, max
}

// callKey hashes a (tool, canonical arguments) pair for the duplicate
// multiset.
func callKey(name, arguments string) uint64 {
	return xxhash.Sum64String(name + "\x00" + canonicalArguments(arguments))
}

// canonicalArguments normalizes an arguments JSON document so that
// semantically equal payloads compare equal: whitespace is dropped and
// object keys are sorted by a decode/encode round trip. Invalid JSON is
// compared verbatim.
func canonicalArguments(arguments string) string {
	var v any
	if err := json.Unmarshal([]byte(arguments), &v); err != nil {
		return arguments
	}
	bs, err := json.Marshal(v)
	if err != nil {
		return arguments
	}
	return string(bs)
}
