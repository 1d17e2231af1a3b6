package callbacks

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/effective-security/agentexec/agent"
	"github.com/effective-security/agentexec/pkg/llms"
	"github.com/effective-security/agentexec/pkg/llms/retry"
	"github.com/effective-security/agentexec/tools"
	"github.com/effective-security/xlog"
)

// ensure that the callbacks implement the correct interfaces
var (
	_ agent.Callback = (*Noop)(nil)
	_ tools.Callback = (*Noop)(nil)
	_ agent.Callback = (*Printer)(nil)
	_ tools.Callback = (*Printer)(nil)
	_ agent.Callback = (*PackageLogger)(nil)
	_ tools.Callback = (*PackageLogger)(nil)
	_ agent.Callback = (*Fanout)(nil)
	_ tools.Callback = (*Fanout)(nil)
)

// Mode defines the mode for callback printing
type Mode int

const (
	// ModeDefault is the default mode for callback printing
	ModeDefault Mode = iota
	// ModeVerbose is the verbose mode for callback printing
	ModeVerbose
)

// Fanout is a callback handler that forwards the events to multiple callbacks.
type Fanout struct {
	callbacks []agent.Callback
}

func NewFanout(callbacks ...agent.Callback) *Fanout {
	return &Fanout{callbacks: callbacks}
}

func (l *Fanout) Add(callback agent.Callback) {
	l.callbacks = append(l.callbacks, callback)
}

func (l *Fanout) OnRunStart(ctx context.Context, a agent.IAgent, input string) {
	for _, callback := range l.callbacks {
		callback.OnRunStart(ctx, a, input)
	}
}

func (l *Fanout) OnRunEnd(ctx context.Context, a agent.IAgent, input string, steps []agent.Step) {
	for _, callback := range l.callbacks {
		callback.OnRunEnd(ctx, a, input, steps)
	}
}

func (l *Fanout) OnRunError(ctx context.Context, a agent.IAgent, input string, err error) {
	for _, callback := range l.callbacks {
		callback.OnRunError(ctx, a, input, err)
	}
}

func (l *Fanout) OnStep(ctx context.Context, a agent.IAgent, step agent.Step) {
	for _, callback := range l.callbacks {
		callback.OnStep(ctx, a, step)
	}
}

func (l *Fanout) OnLLMCallStart(ctx context.Context, a agent.IAgent, llm llms.Model, payload []llms.Message) {
	for _, callback := range l.callbacks {
		callback.OnLLMCallStart(ctx, a, llm, payload)
	}
}

func (l *Fanout) OnLLMCallEnd(ctx context.Context, a agent.IAgent, llm llms.Model, resp *llms.ContentResponse) {
	for _, callback := range l.callbacks {
		callback.OnLLMCallEnd(ctx, a, llm, resp)
	}
}

func (l *Fanout) OnToolNotFound(ctx context.Context, a agent.IAgent, tool string) {
	for _, callback := range l.callbacks {
		callback.OnToolNotFound(ctx, a, tool)
	}
}

func (l *Fanout) OnRetry(ctx context.Context, a agent.IAgent, event retry.Event) {
	for _, callback := range l.callbacks {
		callback.OnRetry(ctx, a, event)
	}
}

func (l *Fanout) OnToolStart(ctx context.Context, tool tools.ITool, input string) {
	for _, callback := range l.callbacks {
		callback.OnToolStart(ctx, tool, input)
	}
}

func (l *Fanout) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
	for _, callback := range l.callbacks {
		callback.OnToolEnd(ctx, tool, input, output)
	}
}

func (l *Fanout) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {
	for _, callback := range l.callbacks {
		callback.OnToolError(ctx, tool, input, err)
	}
}

// Noop does nothing.
type Noop struct{}

func NewNoop() *Noop {
	return &Noop{}
}

func (l *Noop) OnRunStart(ctx context.Context, a agent.IAgent, input string) {}
func (l *Noop) OnRunEnd(ctx context.Context, a agent.IAgent, input string, steps []agent.Step) {
}
func (l *Noop) OnRunError(ctx context.Context, a agent.IAgent, input string, err error) {}
func (l *Noop) OnStep(ctx context.Context, a agent.IAgent, step agent.Step)             {}
func (l *Noop) OnLLMCallStart(ctx context.Context, a agent.IAgent, llm llms.Model, payload []llms.Message) {
}
func (l *Noop) OnLLMCallEnd(ctx context.Context, a agent.IAgent, llm llms.Model, resp *llms.ContentResponse) {
}
func (l *Noop) OnToolNotFound(ctx context.Context, a agent.IAgent, tool string)         {}
func (l *Noop) OnRetry(ctx context.Context, a agent.IAgent, event retry.Event)          {}
func (l *Noop) OnToolStart(ctx context.Context, tool tools.ITool, input string)         {}
func (l *Noop) OnToolEnd(ctx context.Context, tool tools.ITool, input, output string)   {}
func (l *Noop) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {
}

// Printer is a callback handler that prints to the Writer.
type Printer struct {
	Out  io.Writer
	Mode Mode

	lock sync.Mutex
}

func NewPrinter(out io.Writer, mode Mode) *Printer {
	return &Printer{Out: out, Mode: mode}
}

func (l *Printer) OnRunStart(ctx context.Context, a agent.IAgent, input string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Run Start: %s\n", a.Name())
	fmt.Fprintf(l.Out, "Input: %s\n", input)
}

func (l *Printer) OnRunEnd(ctx context.Context, a agent.IAgent, input string, steps []agent.Step) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Run End: %s, %d steps\n", a.Name(), len(steps))
	if l.Mode == ModeVerbose {
		for _, step := range steps {
			if final, ok := step.(agent.FinalResponseStep); ok {
				fmt.Fprintln(l.Out, final.Content)
			}
		}
	}
}

func (l *Printer) OnRunError(ctx context.Context, a agent.IAgent, input string, err error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Run Error: %s: %s\n", a.Name(), err.Error())
}

func (l *Printer) OnStep(ctx context.Context, a agent.IAgent, step agent.Step) {
	l.lock.Lock()
	defer l.lock.Unlock()
	switch s := step.(type) {
	case agent.ThinkingStep:
		fmt.Fprintf(l.Out, "Thinking: %s\n", s.Text)
	case agent.ToolCallStep:
		fmt.Fprintf(l.Out, "Tool Call: %s (%s)\n", s.Name, s.ID)
		if l.Mode == ModeVerbose {
			fmt.Fprintf(l.Out, "Arguments: %s\n", s.Arguments)
		}
	case agent.ToolResultStep:
		fmt.Fprintf(l.Out, "Tool Result: %s (%s), error=%t\n", s.Name, s.ID, s.IsError)
		if l.Mode == ModeVerbose {
			fmt.Fprintf(l.Out, "Output: %s\n", s.Output)
		}
	case agent.FinalResponseStep:
		fmt.Fprintf(l.Out, "Final Response: %d bytes\n", len(s.Content))
	}
}

func (l *Printer) OnLLMCallStart(ctx context.Context, a agent.IAgent, llm llms.Model, payload []llms.Message) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "LLM Call: %s: %s model, %d messages\n", a.Name(), llm.GetName(), len(payload))
}

func (l *Printer) OnLLMCallEnd(ctx context.Context, a agent.IAgent, llm llms.Model, resp *llms.ContentResponse) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "LLM Call End: %s: %s model, %d choices\n", a.Name(), llm.GetName(), len(resp.Choices))
}

func (l *Printer) OnToolNotFound(ctx context.Context, a agent.IAgent, tool string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Not Found: %s\n", tool)
}

func (l *Printer) OnRetry(ctx context.Context, a agent.IAgent, event retry.Event) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Retry: %s: attempt %d, delay %s, reason %s\n",
		a.Name(), event.Attempt, event.Delay, event.Reason)
}

func (l *Printer) OnToolStart(ctx context.Context, tool tools.ITool, input string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Start: %s\n", tool.Name())
	fmt.Fprintf(l.Out, "Input: %s\n", input)
}

func (l *Printer) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool End: %s\n", tool.Name())
	if l.Mode == ModeVerbose {
		fmt.Fprintf(l.Out, "Output: %s\n", output)
	}
}

func (l *Printer) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintf(l.Out, "Tool Error: %s: %s\n", tool.Name(), err.Error())
}

// PackageLogger is a callback handler that prints to the logger.
type PackageLogger struct {
	logger *xlog.PackageLogger
}

func NewPackageLogger(logger *xlog.PackageLogger) *PackageLogger {
	return &PackageLogger{logger: logger}
}

func (l *PackageLogger) OnRunStart(ctx context.Context, a agent.IAgent, input string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "run_start",
		"agent", a.Name(),
		"input", input,
	)
}

func (l *PackageLogger) OnRunEnd(ctx context.Context, a agent.IAgent, input string, steps []agent.Step) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "run_end",
		"agent", a.Name(),
		"steps", len(steps),
	)
}

func (l *PackageLogger) OnRunError(ctx context.Context, a agent.IAgent, input string, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"event", "run_error",
		"agent", a.Name(),
		"err", err.Error(),
	)
}

func (l *PackageLogger) OnStep(ctx context.Context, a agent.IAgent, step agent.Step) {
	switch s := step.(type) {
	case agent.ThinkingStep:
		l.logger.ContextKV(ctx, xlog.DEBUG,
			"event", "thinking",
			"agent", a.Name(),
			"size", len(s.Text),
		)
	case agent.ToolCallStep:
		l.logger.ContextKV(ctx, xlog.DEBUG,
			"event", "tool_call",
			"agent", a.Name(),
			"tool", s.Name,
			"tool_call_id", s.ID,
		)
	case agent.ToolResultStep:
		l.logger.ContextKV(ctx, xlog.DEBUG,
			"event", "tool_result",
			"agent", a.Name(),
			"tool", s.Name,
			"tool_call_id", s.ID,
			"is_error", s.IsError,
		)
	case agent.FinalResponseStep:
		l.logger.ContextKV(ctx, xlog.DEBUG,
			"event", "final_response",
			"agent", a.Name(),
			"size", len(s.Content),
		)
	}
}

func (l *PackageLogger) OnLLMCallStart(ctx context.Context, a agent.IAgent, llm llms.Model, payload []llms.Message) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "llm_call_start",
		"agent", a.Name(),
		"model", llm.GetName(),
		"messages", len(payload),
	)
}

func (l *PackageLogger) OnLLMCallEnd(ctx context.Context, a agent.IAgent, llm llms.Model, resp *llms.ContentResponse) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "llm_call_end",
		"agent", a.Name(),
		"model", llm.GetName(),
		"choices", len(resp.Choices),
	)
}

func (l *PackageLogger) OnToolNotFound(ctx context.Context, a agent.IAgent, tool string) {
	l.logger.ContextKV(ctx, xlog.WARNING,
		"event", "tool_not_found",
		"agent", a.Name(),
		"tool", tool,
	)
}

func (l *PackageLogger) OnRetry(ctx context.Context, a agent.IAgent, event retry.Event) {
	l.logger.ContextKV(ctx, xlog.WARNING,
		"event", "retry",
		"agent", a.Name(),
		"attempt", event.Attempt,
		"delay", event.Delay.String(),
		"reason", event.Reason.String(),
	)
}

func (l *PackageLogger) OnToolStart(ctx context.Context, tool tools.ITool, input string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_start",
		"tool", tool.Name(),
		"input", input,
	)
}

func (l *PackageLogger) OnToolEnd(ctx context.Context, tool tools.ITool, input string, output string) {
	l.logger.ContextKV(ctx, xlog.DEBUG,
		"event", "tool_end",
		"tool", tool.Name(),
		"output", output,
	)
}

func (l *PackageLogger) OnToolError(ctx context.Context, tool tools.ITool, input string, err error) {
	l.logger.ContextKV(ctx, xlog.ERROR,
		"event", "tool_error",
		"tool", tool.Name(),
		"err", err.Error(),
	)
}
