package agent

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentexec/chatmodel"
	"github.com/effective-security/agentexec/encoding"
	"github.com/effective-security/agentexec/pkg/llms"
	"github.com/effective-security/agentexec/pkg/llms/retry"
	"github.com/effective-security/agentexec/pkg/llmutils"
	"github.com/effective-security/agentexec/pkg/metricskey"
	"github.com/effective-security/agentexec/pkg/schema"
	"github.com/effective-security/agentexec/tools"
	"github.com/effective-security/x/slices"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xlog"
)

// RunInput carries the user turn and per-run overrides.
type RunInput struct {
	// Input is the user message. May be empty when Messages carry the turn.
	Input string
	// Messages are extra messages appended after the input, such as
	// tool results supplied by an external executor.
	Messages []llms.Message
	// Options override the engine configuration for this run only.
	Options []Option
}

// Result is the outcome of a completed or suspended run.
type Result[O chatmodel.ContentProvider] struct {
	// Output is the parsed final answer. Nil when the run suspended
	// with pending tool calls.
	Output *O
	// Content is the raw final text before parsing.
	Content string
	// Steps is the ordered step trace of the run.
	Steps []Step
	// Messages is the full message history at the end of the run.
	Messages []llms.Message
	// PendingCalls holds unexecuted tool calls when AutoExecuteTools
	// is disabled. The caller executes them and resumes with the
	// results in RunInput.Messages.
	PendingCalls []ToolCallStep
	// Reason is set when the run terminated.
	Reason TerminationReason
}

// Engine runs the bounded think, call, observe loop against an LLM.
// O is the expected type of the final answer.
type Engine[O chatmodel.ContentProvider] struct {
	LLM          llms.Model
	OutputParser chatmodel.OutputParser[O]

	registry    *tools.Registry
	llmToolDefs []llms.Tool

	cfg          *Config
	name         string
	description  string
	systemPrompt string
}

var _ IAgent = (*Engine[chatmodel.OutputResult])(nil)

// NewEngine initializes the Engine.
func NewEngine[O chatmodel.ContentProvider](
	llmModel llms.Model,
	systemPrompt string,
	options ...Option) *Engine[O] {
	ret := &Engine[O]{
		cfg:          NewConfig(options...),
		LLM:          llmModel,
		registry:     tools.MustRegistry(),
		systemPrompt: systemPrompt,
		name:         "Generic Agent",
		description:  "An AI agent that can perform various tasks.",
	}

	var output O
	parser, err := encoding.NewTypedOutputParser(output, ret.cfg.Mode)
	if err != nil {
		logger.KV(xlog.ERROR,
			"status", "failed_to_create_output_parser",
			"mode", string(ret.cfg.Mode),
			"err", err.Error(),
		)
		// Fall back to JSON so the engine always has a usable parser.
		parser, _ = encoding.NewTypedOutputParser(output, encoding.ModeJSON)
	}
	ret.OutputParser = parser

	if ret.cfg.ResponseFormat == nil {
		prov := llmModel.GetProviderType()
		strict := ret.cfg.Mode == encoding.ModeJSONSchemaStrict && prov.Supports(llms.CapabilityJSONSchemaStrict)
		jsonSchema := (ret.cfg.Mode == encoding.ModeJSONSchema || ret.cfg.Mode == encoding.ModeJSONSchemaStrict) &&
			prov.Supports(llms.CapabilityJSONSchema)
		if jsonSchema {
			rf, err := schema.NewResponseFormat(reflect.TypeOf(output), strict)
			if err != nil {
				logger.KV(xlog.ERROR,
					"status", "failed_to_create_response_format",
					"err", err.Error(),
				)
			}
			ret.cfg.ResponseFormat = rf
		}
	}

	return ret
}

// WithOutputParser replaces the typed output parser.
func (a *Engine[O]) WithOutputParser(outputParser chatmodel.OutputParser[O]) *Engine[O] {
	a.OutputParser = outputParser
	return a
}

// WithName sets the name of the Agent, when used in a prompt of other Agents or LLMs.
func (a *Engine[O]) WithName(name string) *Engine[O] {
	a.name = name
	return a
}

// WithDescription sets the description of the Agent, to be used in the prompt of other Agents or LLMs.
func (a *Engine[O]) WithDescription(description string) *Engine[O] {
	a.description = description
	return a
}

// Name returns the name of the Agent.
func (a *Engine[O]) Name() string {
	return a.name
}

// Description returns the description of the Agent.
// Should not exceed LLM model limit.
func (a *Engine[O]) Description() string {
	return a.description
}

// GetTools returns the registered tools.
func (a *Engine[O]) GetTools() []tools.ITool {
	return a.registry.List()
}

// WithTools registers tools with the engine,
// existing tools are not replaced.
func (a *Engine[O]) WithTools(list ...tools.ITool) (*Engine[O], error) {
	for _, tool := range list {
		if err := a.registry.Register(tool); err != nil {
			return nil, err
		}
		t := llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name(),
				Description: tool.Description(),
				Parameters:  tool.Parameters(),
			},
		}
		a.llmToolDefs = append(a.llmToolDefs, t)
	}
	return a, nil
}

// MustTools registers tools and panics on conflict.
func (a *Engine[O]) MustTools(list ...tools.ITool) *Engine[O] {
	ret, err := a.WithTools(list...)
	if err != nil {
		panic(err)
	}
	return ret
}

// GetCallConfig returns a per-run copy of the engine config.
func (a *Engine[O]) GetCallConfig(opts ...Option) *Config {
	return a.cfg.Apply(opts...)
}

// Run executes the loop to termination with a fresh state.
func (a *Engine[O]) Run(ctx context.Context, req *RunInput) (*Result[O], error) {
	return a.RunWithState(ctx, NewRunState(), req)
}

// RunWithState executes the loop against the given state. The state may
// be inspected and cancelled concurrently.
func (a *Engine[O]) RunWithState(ctx context.Context, state *RunState, req *RunInput) (*Result[O], error) {
	started := time.Now()
	defer metricskey.PerfAgentRun.MeasureSince(started, a.name)

	cfg := a.GetCallConfig(req.Options...)

	callback := cfg.CallbackHandler
	if callback != nil {
		callback.OnRunStart(ctx, a, req.Input)
	}

	res, err := a.execute(ctx, cfg, state, req)
	if err != nil {
		if ReasonOf(err) == ReasonCancelled {
			metricskey.StatsAgentRunsCancelled.IncrCounter(1, a.name)
		} else {
			metricskey.StatsAgentRunsFailed.IncrCounter(1, a.name)
		}
		if callback != nil {
			callback.OnRunError(ctx, a, req.Input, err)
		}
		return nil, err
	}
	metricskey.StatsAgentRunsSucceeded.IncrCounter(1, a.name)
	if callback != nil {
		callback.OnRunEnd(ctx, a, req.Input, state.Steps())
	}
	return res, nil
}

// terminate moves the state into the final phase and wraps the cause.
func (a *Engine[O]) terminate(state *RunState, reason TerminationReason, cause error) error {
	state.setPhase(PhaseTerminated{Reason: reason})
	return &RunError{Reason: reason, Err: cause}
}

func (a *Engine[O]) emit(ctx context.Context, cfg *Config, state *RunState, step Step) {
	state.addStep(step)
	if cfg.CallbackHandler != nil {
		cfg.CallbackHandler.OnStep(ctx, a, step)
	}
	if cfg.onStep != nil {
		cfg.onStep(step)
	}
}

func (a *Engine[O]) execute(ctx context.Context, cfg *Config, state *RunState, req *RunInput) (*Result[O], error) {
	agentName := a.name
	modelName := a.LLM.GetName()

	// runMessages accumulates the messages persisted to the store on
	// successful completion.
	var runMessages []llms.Message

	if len(state.History()) == 0 {
		systemPrompt := strings.TrimRight(a.systemPrompt, "\n")
		if cfg.ResponseFormat == nil {
			// The provider cannot enforce the schema, so the output
			// schema goes into the system prompt instead.
			outputSchema := strings.TrimRight(a.OutputParser.GetFormatInstructions(), "\n")
			if outputSchema != "" {
				systemPrompt = fmt.Sprintf("%s\n\n# OUTPUT SCHEMA\n%s", systemPrompt, outputSchema)
			}
		}
		if systemPrompt != "" {
			state.appendMessages(llms.MessageFromTextParts(llms.RoleSystem, systemPrompt))
		}

		if cfg.Store != nil {
			prevMessages := cfg.Store.Messages(ctx)
			logger.ContextKV(ctx, xlog.DEBUG,
				"agent", agentName,
				"message_history", len(prevMessages))
			state.appendMessages(prevMessages...)
		}
	}

	if req.Input != "" {
		userMessage := llms.MessageFromTextParts(llms.RoleHuman, req.Input)
		state.appendMessages(userMessage)
		runMessages = append(runMessages, userMessage)
	}
	if len(req.Messages) > 0 {
		state.appendMessages(req.Messages...)
	}

	var extraOptions []llms.CallOption
	if len(a.llmToolDefs) > 0 {
		prov := a.LLM.GetProviderType()
		if !prov.Supports(llms.CapabilityFunctionCalling) {
			return nil, a.terminate(state, ReasonProviderError,
				errors.Newf("agent %s: the LLM does not support function calling", agentName))
		}
		extraOptions = append(extraOptions, llms.WithTools(a.llmToolDefs))
	}
	callOpts := cfg.GetCallOptions(extraOptions...)

	// Backoff waits inside the provider decorator surface here as the
	// retrying phase and the retry callback.
	llmCtx := retry.WithEventObserver(ctx, func(ev retry.Event) {
		state.setPhase(PhaseRetrying{Attempt: ev.Attempt, NextDelay: ev.Delay})
		if cfg.CallbackHandler != nil {
			cfg.CallbackHandler.OnRetry(ctx, a, ev)
		}
	})

	policy := cfg.policy()

	for {
		if state.IsCancelled() {
			return nil, a.terminate(state, ReasonCancelled, nil)
		}
		if d := policy.Decide(state); d.Stop {
			return nil, a.terminate(state, d.Reason, errors.Newf("agent %s: %s", agentName, d.Detail))
		}

		state.setPhase(PhaseAwaitingModel{})

		messageHistory := state.History()
		if cfg.CallbackHandler != nil {
			cfg.CallbackHandler.OnLLMCallStart(ctx, a, a.LLM, messageHistory)
		}
		metricskey.StatsLLMMessagesSent.IncrCounter(float64(len(messageHistory)), agentName, modelName)

		rtStarted := time.Now()
		resp, err := a.LLM.GenerateContent(llmCtx, messageHistory, callOpts...)
		metricskey.PerfRoundTrip.MeasureSince(rtStarted, agentName)
		if err != nil {
			if state.IsCancelled() {
				return nil, a.terminate(state, ReasonCancelled, err)
			}
			return nil, a.terminate(state, ReasonProviderError,
				errors.WithMessagef(err, "agent %s: failed to generate content from LLM", agentName))
		}
		state.roundComplete()
		metricskey.StatsAgentSteps.IncrCounter(1, agentName)

		if cfg.CallbackHandler != nil {
			cfg.CallbackHandler.OnLLMCallEnd(ctx, a, a.LLM, resp)
		}

		tokensIn, tokensOut, _ := llmutils.CountTokens(resp)
		metricskey.StatsLLMInputTokens.IncrCounter(float64(tokensIn), agentName, modelName)
		metricskey.StatsLLMOutputTokens.IncrCounter(float64(tokensOut), agentName, modelName)

		if len(resp.Choices) == 0 {
			return nil, a.terminate(state, ReasonProviderError,
				errors.Newf("agent %s: LLM returned empty response with no choices", agentName))
		}

		// The model authored the prose before the tool calls, so the
		// trace keeps that order.
		var text strings.Builder
		var toolCalls []llms.ToolCall
		for _, choice := range resp.Choices {
			if choice.Content != "" {
				if text.Len() > 0 {
					text.WriteString("\n\n")
				}
				text.WriteString(choice.Content)
			}
			toolCalls = append(toolCalls, choice.ToolCalls...)
		}

		if len(toolCalls) == 0 {
			result := text.String()
			finalOutput, err := a.OutputParser.Parse(result)
			if err != nil {
				metricskey.StatsDecodeErrors.IncrCounter(1, agentName)
				logger.ContextKV(ctx, xlog.DEBUG,
					"agent", agentName,
					"status", "failed_to_parse_llm_response",
					"err", err.Error(),
					"output_parser", a.OutputParser.Type(),
					"result", slices.StringUpto(result, 64),
				)
				// Correctable: show the model its own output and the
				// expected schema, and let the step budget bound the
				// retries.
				a.emit(ctx, cfg, state, ThinkingStep{Text: result})
				state.appendMessages(
					llms.MessageFromTextParts(llms.RoleAI, result),
					llms.MessageFromTextParts(llms.RoleHuman,
						fmt.Sprintf("The response could not be decoded: %s. Respond again following the format instructions.\n%s",
							err.Error(), a.OutputParser.GetFormatInstructions())),
				)
				continue
			}

			content := result
			if prov, ok := (any)(finalOutput).(chatmodel.ContentProvider); ok && prov.GetContent() != "" {
				content = prov.GetContent()
			}

			a.emit(ctx, cfg, state, FinalResponseStep{Content: content})
			aiMessage := llms.MessageFromTextParts(llms.RoleAI, content)
			state.appendMessages(aiMessage)
			runMessages = append(runMessages, aiMessage)
			state.setPhase(PhaseTerminated{Reason: ReasonCompleted})

			if cfg.Store != nil && !cfg.SkipMessageHistory {
				for _, m := range runMessages {
					_ = cfg.Store.Add(ctx, m)
				}
			}

			return &Result[O]{
				Output:   finalOutput,
				Content:  content,
				Steps:    state.Steps(),
				Messages: state.History(),
				Reason:   ReasonCompleted,
			}, nil
		}

		if text.Len() > 0 {
			a.emit(ctx, cfg, state, ThinkingStep{Text: text.String()})
		}

		for i, toolCall := range toolCalls {
			if toolCall.ID == "" {
				toolCall.ID = fmt.Sprintf("%s_%d", toolCall.FunctionCall.Name, i)
			}
			toolCall.Type = values.StringsCoalesce(toolCall.Type, "function")
			toolCalls[i] = toolCall
		}

		// The assistant message carries both the prose and the tool
		// calls so the providers can replay the turn verbatim.
		parts := make([]llms.ContentPart, 0, len(toolCalls)+1)
		if text.Len() > 0 {
			parts = append(parts, llms.TextPart(text.String()))
		}
		for _, toolCall := range toolCalls {
			parts = append(parts, toolCall)
		}
		state.appendMessages(llms.MessageFromParts(llms.RoleAI, parts...))

		pending := make([]ToolCallStep, 0, len(toolCalls))
		for _, toolCall := range toolCalls {
			step := ToolCallStep{
				ID:        toolCall.ID,
				Name:      toolCall.FunctionCall.Name,
				Arguments: toolCall.FunctionCall.Arguments,
			}
			a.emit(ctx, cfg, state, step)
			state.recordCall(step.Name, step.Arguments)
			pending = append(pending, step)
		}

		// Duplicate and per-tool limits stop the run before any of the
		// offending calls execute.
		if d := policy.Decide(state); d.Stop && d.Reason != ReasonMaxStepsExceeded {
			return nil, a.terminate(state, d.Reason, errors.Newf("agent %s: %s", agentName, d.Detail))
		}

		// Resolve every call up front. An unknown tool aborts the run
		// before any call in the batch executes.
		resolved := make([]tools.ITool, len(toolCalls))
		for i, toolCall := range toolCalls {
			toolName := toolCall.FunctionCall.Name
			tool, ok := a.registry.Lookup(toolName)
			if !ok {
				metricskey.StatsToolCallsNotFound.IncrCounter(1, toolName)
				if cfg.CallbackHandler != nil {
					cfg.CallbackHandler.OnToolNotFound(ctx, a, toolName)
				}
				availableTools := strings.Join(a.registry.Names(), ", ")
				logger.ContextKV(ctx, xlog.WARNING,
					"agent", agentName,
					"status", "tool_not_found",
					"tool_name", toolName,
					"available_tools", availableTools,
				)
				return nil, a.terminate(state, ReasonToolNotFound,
					errors.Newf("agent %s: tool %s not found, available tools: %s", agentName, toolName, availableTools))
			}
			resolved[i] = tool
		}

		state.setPhase(PhaseExecutingTools{Pending: pending})

		if !cfg.AutoExecuteTools {
			return &Result[O]{
				Steps:        state.Steps(),
				Messages:     state.History(),
				PendingCalls: pending,
			}, nil
		}

		if state.IsCancelled() {
			return nil, a.terminate(state, ReasonCancelled, nil)
		}

		results := a.executeToolCalls(ctx, cfg, toolCalls, resolved)

		var fatal error
		for _, result := range results {
			a.emit(ctx, cfg, state, ToolResultStep{
				ID:      result.toolCall.ID,
				Name:    result.toolCall.FunctionCall.Name,
				Output:  result.response,
				IsError: result.isError,
			})
			state.appendMessages(llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
				ToolCallID: result.toolCall.ID,
				Name:       result.toolCall.FunctionCall.Name,
				Content:    result.response,
				IsError:    result.isError,
			}))
			if result.err != nil && fatal == nil {
				fatal = result.err
			}
		}
		if fatal != nil {
			return nil, a.terminate(state, ReasonToolError, fatal)
		}
	}
}

type toolCallResult struct {
	toolCall llms.ToolCall
	response string
	isError  bool
	err      error
	index    int
}

// executeToolCalls runs the batch concurrently and returns the results
// in the order the model requested the calls. A correctable failure is
// returned as an error response for the model; any other tool error is
// carried in err and aborts the run after the whole batch joins.
func (a *Engine[O]) executeToolCalls(ctx context.Context, cfg *Config, toolCalls []llms.ToolCall, resolved []tools.ITool) []toolCallResult {
	resultChan := make(chan toolCallResult, len(toolCalls))

	var wg sync.WaitGroup
	wg.Add(len(toolCalls))

	for i, toolCall := range toolCalls {
		go func(index int, tc llms.ToolCall, tool tools.ITool) {
			defer wg.Done()
			toolName := tc.FunctionCall.Name
			toolArgs := tc.FunctionCall.Arguments

			if cfg.CallbackHandler != nil {
				cfg.CallbackHandler.OnToolStart(ctx, tool, toolArgs)
			}

			started := time.Now()
			res, err := tool.Call(ctx, toolArgs)
			metricskey.PerfToolCall.MeasureSince(started, toolName)

			if err != nil {
				metricskey.StatsToolCallsFailed.IncrCounter(1, toolName)
				if cfg.CallbackHandler != nil {
					cfg.CallbackHandler.OnToolError(ctx, tool, toolArgs, err)
				}

				if errors.Is(err, tools.ErrInvalidInput) || errors.Is(err, chatmodel.ErrFailedUnmarshalInput) {
					resultChan <- toolCallResult{
						toolCall: tc,
						response: fmt.Sprintf("Invalid input for tool %s: %s. Check the JSON schema and try again.", toolName, err.Error()),
						isError:  true,
						index:    index,
					}
					return
				}

				resultChan <- toolCallResult{
					toolCall: tc,
					response: fmt.Sprintf("Tool %s failed: %s", toolName, err.Error()),
					isError:  true,
					err:      errors.WithMessagef(err, "failed to call tool %s", toolName),
					index:    index,
				}
				return
			}
			metricskey.StatsToolCallsSucceeded.IncrCounter(1, toolName)

			if cfg.CallbackHandler != nil {
				cfg.CallbackHandler.OnToolEnd(ctx, tool, toolArgs, res)
			}

			resultChan <- toolCallResult{
				toolCall: tc,
				response: res,
				index:    index,
			}
		}(i, toolCall, resolved[i])
	}

	wg.Wait()
	close(resultChan)

	results := make([]toolCallResult, len(toolCalls))
	for result := range resultChan {
		if result.index >= 0 && result.index < len(results) {
			results[result.index] = result
		}
	}
	return results
}
