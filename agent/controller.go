package agent

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentexec/chatmodel"
)

// Controller drives a run on a background goroutine and streams its
// steps. One Controller serves one run.
type Controller[O chatmodel.ContentProvider] struct {
	engine *Engine[O]
	state  *RunState

	mu      sync.Mutex
	started bool
	steps   chan Step
	done    chan struct{}
	result  *Result[O]
	err     error
}

// NewController wraps the engine for a single observed run.
func NewController[O chatmodel.ContentProvider](engine *Engine[O]) *Controller[O] {
	return &Controller[O]{
		engine: engine,
		state:  NewRunState(),
		steps:  make(chan Step, 16),
		done:   make(chan struct{}),
	}
}

// Start launches the run and returns the step stream. The channel is
// closed when the run terminates; Result and Err are valid after that.
func (c *Controller[O]) Start(ctx context.Context, req *RunInput) (<-chan Step, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.started {
		return nil, errors.New("run already started")
	}
	c.started = true

	req.Options = append(req.Options, withStepSink(func(step Step) {
		c.steps <- step
	}))

	go func() {
		defer close(c.done)
		defer close(c.steps)
		res, err := c.engine.RunWithState(ctx, c.state, req)
		c.mu.Lock()
		c.result, c.err = res, err
		c.mu.Unlock()
	}()

	return c.steps, nil
}

// Cancel requests a cooperative stop. The run observes the flag at the
// next phase boundary; in-flight tool calls are not interrupted.
func (c *Controller[O]) Cancel() {
	c.state.Cancel()
}

// Phase reports the current loop phase.
func (c *Controller[O]) Phase() Phase {
	return c.state.Phase()
}

// State exposes the run state for inspection.
func (c *Controller[O]) State() *RunState {
	return c.state
}

// Wait blocks until the run terminates or the context expires.
func (c *Controller[O]) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.Err()
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "run still in progress")
	}
}

// Result returns the run outcome. Valid after the step channel closes.
func (c *Controller[O]) Result() *Result[O] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

// Err returns the terminal error, if any. Valid after the step channel
// closes.
func (c *Controller[O]) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.err
}
