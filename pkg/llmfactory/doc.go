// Package llmfactory provides factories and configuration for LLM model instantiation, supporting multiple providers (OpenAI, Anthropic, etc.) with per-provider retry policies.
package llmfactory
