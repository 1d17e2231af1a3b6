package agent

import (
	"github.com/effective-security/agentexec/encoding"
	"github.com/effective-security/agentexec/pkg/llms"
	"github.com/effective-security/agentexec/pkg/schema"
	"github.com/effective-security/agentexec/store"
)

const (
	// DefaultMaxSteps is the model round trip budget per run.
	DefaultMaxSteps = 10
	// DefaultMaxDuplicateToolCalls is the allowed repeat count for an
	// identical (tool, arguments) pair.
	DefaultMaxDuplicateToolCalls = 2
	// DefaultMaxToolCallsPerTool is the allowed total calls per tool in one run.
	DefaultMaxToolCallsPerTool = 20
)

// Option is a function that can be used to modify the behavior of the Agent Config.
type Option func(*Config)

type Config struct {
	// Model is the model to use in an LLM call.
	Model    string
	modelSet bool

	// MaxTokens is the maximum number of tokens to generate to use in an LLM call.
	MaxTokens    int
	maxTokensSet bool

	// Temperature is the temperature for sampling to use in an LLM call, between 0 and 1.
	Temperature    float64
	temperatureSet bool

	// TopP is the cumulative probability for top-p sampling in an LLM call.
	TopP    float64
	toppSet bool

	// StopWords is a list of words to stop on to use in an LLM call.
	StopWords    []string
	stopWordsSet bool

	// ToolChoice is the choice of tool to use, it can either be "none", "auto"
	// (the default behavior), or a specific tool as described in the ToolChoice type.
	ToolChoice    any
	toolChoiceSet bool

	//
	// Below are the options for the run loop, not related to a single LLM call
	//

	// MaxSteps caps the number of model round trips per run.
	MaxSteps int

	// AutoExecuteTools executes requested tools inline. When false, the
	// run returns with the pending calls unexecuted.
	AutoExecuteTools bool

	// MaxDuplicateToolCalls is the allowed repeat count for one exact
	// (tool, arguments) pair before the run stops.
	MaxDuplicateToolCalls int

	// MaxToolCallsPerTool is the allowed total calls for any single tool.
	MaxToolCallsPerTool int

	// CallbackHandler observes run progress.
	CallbackHandler Callback

	// Store persists conversation history between runs.
	Store store.MessageStore

	// Policies override the termination policies composed from the
	// limits above.
	Policies []Policy

	// ResponseFormat requests provider-side structured output. Set by
	// the engine when the provider supports it, or explicitly.
	ResponseFormat *schema.ResponseFormat

	PromptInput        map[string]any
	Mode               encoding.Mode
	SkipMessageHistory bool

	// onStep streams steps to a Controller in addition to the
	// CallbackHandler. Internal, set via withStepSink.
	onStep func(Step)
}

func NewConfig(opts ...Option) *Config {
	cfg := &Config{
		Mode:                  encoding.ModeDefault,
		MaxSteps:              DefaultMaxSteps,
		AutoExecuteTools:      true,
		MaxDuplicateToolCalls: DefaultMaxDuplicateToolCalls,
		MaxToolCallsPerTool:   DefaultMaxToolCallsPerTool,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Apply returns a copy of the config with the given options applied.
func (c *Config) Apply(opts ...Option) *Config {
	cfg := *c
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// policy returns the composed termination policy for this config.
func (c *Config) policy() Policy {
	if len(c.Policies) > 0 {
		return ComposePolicies(c.Policies...)
	}
	return ComposePolicies(
		StandardPolicy{MaxSteps: c.MaxSteps},
		DuplicateDetectionPolicy{
			MaxDuplicateCalls: c.MaxDuplicateToolCalls,
			MaxCallsPerTool:   c.MaxToolCallsPerTool,
		},
	)
}

func withStepSink(sink func(Step)) Option {
	return func(o *Config) {
		o.onStep = sink
	}
}

// WithMode is an option that allows to specify the encoding mode.
func WithMode(mode encoding.Mode) Option {
	return func(o *Config) {
		o.Mode = mode
	}
}

// WithMaxSteps caps the number of model round trips per run.
func WithMaxSteps(maxSteps int) Option {
	return func(o *Config) {
		o.MaxSteps = maxSteps
	}
}

// WithAutoExecuteTools controls whether requested tools execute inline.
func WithAutoExecuteTools(auto bool) Option {
	return func(o *Config) {
		o.AutoExecuteTools = auto
	}
}

// WithMaxDuplicateToolCalls sets the allowed repeat count for an
// identical (tool, arguments) pair.
func WithMaxDuplicateToolCalls(limit int) Option {
	return func(o *Config) {
		o.MaxDuplicateToolCalls = limit
	}
}

// WithMaxToolCallsPerTool sets the allowed total calls per tool.
func WithMaxToolCallsPerTool(limit int) Option {
	return func(o *Config) {
		o.MaxToolCallsPerTool = limit
	}
}

// WithResponseFormat overrides the provider-side response format.
func WithResponseFormat(format *schema.ResponseFormat) Option {
	return func(o *Config) {
		o.ResponseFormat = format
	}
}

// WithPolicies replaces the default termination policies.
func WithPolicies(policies ...Policy) Option {
	return func(o *Config) {
		o.Policies = policies
	}
}

// WithCallback allows setting a custom Callback Handler.
func WithCallback(callbackHandler Callback) Option {
	return func(o *Config) {
		o.CallbackHandler = callbackHandler
	}
}

// WithStore sets the message store used to seed and persist history.
func WithStore(s store.MessageStore) Option {
	return func(o *Config) {
		o.Store = s
	}
}

// WithSkipMessageHistory is an option that allows to skip adding run messages to History.
func WithSkipMessageHistory(skip bool) Option {
	return func(o *Config) {
		o.SkipMessageHistory = skip
	}
}

// WithPromptInput is an option that allows the user to specify the system prompt input.
func WithPromptInput(input map[string]any) Option {
	return func(o *Config) {
		o.PromptInput = input
	}
}

// WithModel is an option for LLM.Call.
func WithModel(model string) Option {
	return func(o *Config) {
		o.Model = model
		o.modelSet = true
	}
}

// WithMaxTokens is an option for LLM.Call.
func WithMaxTokens(maxTokens int) Option {
	return func(o *Config) {
		o.MaxTokens = maxTokens
		o.maxTokensSet = true
	}
}

// WithTemperature is an option for LLM.Call.
func WithTemperature(temperature float64) Option {
	return func(o *Config) {
		o.Temperature = temperature
		o.temperatureSet = true
	}
}

// WithTopP will add an option to use top-p sampling for LLM.Call.
func WithTopP(topP float64) Option {
	return func(o *Config) {
		o.TopP = topP
		o.toppSet = true
	}
}

// WithStopWords is an option for setting the stop words for LLM.Call.
func WithStopWords(stopWords []string) Option {
	return func(o *Config) {
		o.StopWords = stopWords
		o.stopWordsSet = true
	}
}

// WithToolChoice is an option for LLM.Call.
func WithToolChoice(choice any) Option {
	return func(o *Config) {
		o.ToolChoice = choice
		o.toolChoiceSet = true
	}
}

// GetCallOptions translates the config into per-call LLM options.
func (c *Config) GetCallOptions(extra ...llms.CallOption) []llms.CallOption {
	var callOptions []llms.CallOption
	if c.modelSet {
		callOptions = append(callOptions, llms.WithModel(c.Model))
	}
	if c.maxTokensSet {
		callOptions = append(callOptions, llms.WithMaxTokens(c.MaxTokens))
	}
	if c.temperatureSet {
		callOptions = append(callOptions, llms.WithTemperature(c.Temperature))
	}
	if c.toppSet {
		callOptions = append(callOptions, llms.WithTopP(c.TopP))
	}
	if c.stopWordsSet {
		callOptions = append(callOptions, llms.WithStopWords(c.StopWords))
	}
	if c.toolChoiceSet {
		callOptions = append(callOptions, llms.WithToolChoice(c.ToolChoice))
	}
	if c.ResponseFormat != nil {
		callOptions = append(callOptions, llms.WithResponseFormat(c.ResponseFormat))
	}
	callOptions = append(callOptions, extra...)
	return callOptions
}
