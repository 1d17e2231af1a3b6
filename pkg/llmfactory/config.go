package llmfactory

import (
	"slices"
	"time"

	"github.com/effective-security/agentexec/pkg/llms/retry"
	"github.com/effective-security/x/configloader"
)

type Config struct {
	// Providers specifies the list of providers to use
	Providers []*ProviderConfig `json:"providers" yaml:"providers"`
	// DefaultProvider specifies the default provider to use
	DefaultProvider string `json:"default_provider" yaml:"default_provider"`
	// AgentModels specifies the mapping of agents to models.
	// key is the agent name, value is the list of preferred models.
	// Use `default: <model_name>` as the default model for agents.
	AgentModels map[string][]string `json:"agent_models" yaml:"agent_models"`
	// ToolModels specifies the mapping of tools to models.
	// key is the tool name, value is the list of preferred models.
	// Use `default: <model_name>` as the default model for tools.
	ToolModels map[string][]string `json:"tool_models" yaml:"tool_models"`
}

// ProviderConfig for a single LLM provider
type ProviderConfig struct {
	Name string `json:"name" yaml:"name"`
	// APIType specifies the type of API to use:
	// OPENAI|ANTHROPIC|PERPLEXITY|AZURE
	APIType         string      `json:"api_type,omitempty" yaml:"api_type,omitempty"`
	Token           string      `json:"token,omitempty" yaml:"token,omitempty"`
	BaseURL         string      `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	OrgID           string      `json:"org_id,omitempty" yaml:"org_id,omitempty"`
	DefaultModel    string      `json:"default_model,omitempty" yaml:"default_model,omitempty"`
	AvailableModels []string    `json:"available_models,omitempty" yaml:"available_models,omitempty"`
	Retry           RetryConfig `json:"retry" yaml:"retry"`
}

// RetryConfig selects a named backoff policy, with optional overrides.
type RetryConfig struct {
	// Policy is one of: default, disabled, aggressive, conservative.
	Policy string `json:"policy,omitempty" yaml:"policy,omitempty"`
	// MaxRetries overrides the retry count of the named policy.
	MaxRetries *int `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
	// BaseDelay overrides the delay before the first retry.
	BaseDelay time.Duration `json:"base_delay,omitempty" yaml:"base_delay,omitempty"`
	// MaxDelay overrides the delay cap.
	MaxDelay time.Duration `json:"max_delay,omitempty" yaml:"max_delay,omitempty"`
}

// RetryPolicy resolves the configured policy.
func (c *RetryConfig) RetryPolicy() *retry.Policy {
	p := retry.NamedPolicy(retry.PolicyName(c.Policy))
	if c.MaxRetries != nil {
		p.MaxRetries = *c.MaxRetries
	}
	if c.BaseDelay > 0 {
		p.BaseDelay = c.BaseDelay
	}
	if c.MaxDelay > 0 {
		p.MaxDelay = c.MaxDelay
	}
	return p
}

func (c *ProviderConfig) FindModel(models ...string) string {
	for _, model := range models {
		if slices.Contains(c.AvailableModels, model) {
			return model
		}
	}
	return c.DefaultModel
}

// LoadConfig from file
func LoadConfig(file string) (*Config, error) {
	cfg := new(Config)
	if file == "" {
		return cfg, nil
	}

	err := configloader.UnmarshalAndExpand(file, cfg)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
