package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	StatsAgentRunsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_agent_runs_succeeded",
		Help:         "stats_agent_runs_succeeded provides total agent runs completed with a final response",
		RequiredTags: []string{"agent"},
	}

	StatsAgentRunsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_agent_runs_failed",
		Help:         "stats_agent_runs_failed provides total agent runs aborted with an error",
		RequiredTags: []string{"agent", "reason"},
	}

	StatsAgentRunsCancelled = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_agent_runs_cancelled",
		Help:         "stats_agent_runs_cancelled provides total agent runs cancelled by the caller",
		RequiredTags: []string{"agent"},
	}

	StatsAgentSteps = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_agent_steps",
		Help:         "stats_agent_steps provides total steps emitted by agent runs",
		RequiredTags: []string{"agent", "step"},
	}

	StatsRoundTripsRetried = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_round_trips_retried",
		Help:         "stats_round_trips_retried provides total provider round trips retried",
		RequiredTags: []string{"model", "reason"},
	}

	StatsLLMMessagesSent = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_messages_sent",
		Help:         "stats_llm_messages_sent provides total messages sent to LLM",
		RequiredTags: []string{"agent", "model"},
	}

	StatsLLMInputTokens = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_input_tokens",
		Help:         "stats_llm_input_tokens provides total input tokens sent to LLM",
		RequiredTags: []string{"agent", "model"},
	}

	StatsLLMOutputTokens = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_llm_output_tokens",
		Help:         "stats_llm_output_tokens provides total output tokens received from LLM",
		RequiredTags: []string{"agent", "model"},
	}

	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls failed",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsNotFound = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_not_found",
		Help:         "stats_tool_calls_not_found provides total tool calls with no registered tool",
		RequiredTags: []string{"tool"},
	}

	StatsDecodeErrors = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_decode_errors",
		Help:         "stats_decode_errors provides total final responses that failed schema decoding",
		RequiredTags: []string{"agent"},
	}
)

// Perf
var (
	PerfAgentRun = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_agent_run",
		Help:         "perf_agent_run provides duration of an agent run",
		RequiredTags: []string{"agent"},
	}

	PerfRoundTrip = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_round_trip",
		Help:         "perf_round_trip provides duration of a provider round trip",
		RequiredTags: []string{"model"},
	}

	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides duration of a tool call",
		RequiredTags: []string{"tool"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfAgentRun,
	&PerfRoundTrip,
	&PerfToolCall,
	&StatsAgentRunsCancelled,
	&StatsAgentRunsFailed,
	&StatsAgentRunsSucceeded,
	&StatsAgentSteps,
	&StatsDecodeErrors,
	&StatsLLMInputTokens,
	&StatsLLMMessagesSent,
	&StatsLLMOutputTokens,
	&StatsRoundTripsRetried,
	&StatsToolCallsFailed,
	&StatsToolCallsNotFound,
	&StatsToolCallsSucceeded,
}
