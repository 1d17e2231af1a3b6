package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/agentexec/pkg/llms"
	"github.com/effective-security/agentexec/pkg/llms/llmerrors"
	"github.com/effective-security/agentexec/pkg/schema"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

var (
	ErrEmptyResponse = errors.New("openai: no response")
	ErrMissingToken  = errors.New("openai: missing API key, set it in the OPENAI_API_KEY environment variable")
)

type LLM struct {
	Client  openai.Client
	Options *Options
}

var _ llms.Model = (*LLM)(nil)

// New returns a new OpenAI LLM backed by the official OpenAI SDK.
//
// The SDK's built-in retries are disabled so that retry behavior is owned
// entirely by the retry decorator wrapping this model.
func New(opts ...Option) (*LLM, error) {
	options := &Options{
		Token: os.Getenv(TokenEnvVarName),
	}
	for _, opt := range opts {
		opt(options)
	}

	if len(options.Token) == 0 {
		return nil, ErrMissingToken
	}
	if options.Model == "" {
		return nil, errors.New("openai: model is required")
	}

	sdkOpts := []option.RequestOption{
		option.WithAPIKey(options.Token),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(5 * time.Minute),
	}
	if options.BaseURL != "" {
		sdkOpts = append(sdkOpts, option.WithBaseURL(options.BaseURL))
	}
	if options.Organization != "" {
		sdkOpts = append(sdkOpts, option.WithOrganization(options.Organization))
	}
	if options.HttpClient != nil {
		sdkOpts = append(sdkOpts, option.WithHTTPClient(options.HttpClient))
	}

	return &LLM{
		Client:  openai.NewClient(sdkOpts...),
		Options: options,
	}, nil
}

// GetName implements the Model interface.
func (o *LLM) GetName() string {
	return o.Options.Model
}

// GetProviderType implements the Model interface.
func (o *LLM) GetProviderType() llms.ProviderType {
	return llms.ProviderOpenAI
}

// GenerateContent implements the Model interface.
func (o *LLM) GenerateContent(ctx context.Context, messages []llms.Message, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{
		Model: o.Options.Model,
	}
	for _, opt := range options {
		opt(&opts)
	}

	chatMsgs, err := ProcessMessages(messages)
	if err != nil {
		return nil, errors.Wrap(err, "openai: failed to process messages")
	}

	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(opts.Model),
		Messages: chatMsgs,
	}
	if opts.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.TopP > 0 {
		params.TopP = openai.Float(opts.TopP)
	}
	if len(opts.StopWords) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{
			OfStringArray: opts.StopWords,
		}
	}
	if len(opts.Tools) > 0 {
		tools, err := ToTools(opts.Tools)
		if err != nil {
			return nil, err
		}
		params.Tools = tools
	}
	if opts.ResponseFormat != nil {
		rf, err := toResponseFormat(opts.ResponseFormat)
		if err != nil {
			return nil, err
		}
		params.ResponseFormat = *rf
	}

	result, err := o.Client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, mapError(err)
	}
	if len(result.Choices) == 0 {
		return nil, ErrEmptyResponse
	}

	choices := make([]*llms.ContentChoice, len(result.Choices))
	for i, c := range result.Choices {
		choices[i] = &llms.ContentChoice{
			Content:    c.Message.Content,
			StopReason: string(c.FinishReason),
			GenerationInfo: map[string]any{
				"CompletionTokens": result.Usage.CompletionTokens,
				"PromptTokens":     result.Usage.PromptTokens,
				"TotalTokens":      result.Usage.TotalTokens,
				"ID":               result.ID,
			},
		}
		for _, tool := range c.Message.ToolCalls {
			choices[i].ToolCalls = append(choices[i].ToolCalls, llms.ToolCall{
				ID:   tool.ID,
				Type: string(tool.Type),
				FunctionCall: &llms.FunctionCall{
					Name:      tool.Function.Name,
					Arguments: tool.Function.Arguments,
				},
			})
		}
	}
	return &llms.ContentResponse{Choices: choices}, nil
}

// mapError converts SDK failures into the classified error form
// used by the retry decorator.
func mapError(err error) error {
	var apierr *openai.Error
	if errors.As(err, &apierr) {
		var header http.Header
		if apierr.Response != nil {
			header = apierr.Response.Header
		}
		return llmerrors.FromStatus(apierr.StatusCode, header, err)
	}
	return llmerrors.Classify(err)
}

// ProcessMessages converts generic message content to OpenAI SDK message parameters.
func ProcessMessages(messages []llms.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for _, msg := range messages {
		if len(msg.Parts) == 0 {
			continue
		}
		switch msg.Role {
		case llms.RoleSystem:
			out = append(out, openai.SystemMessage(msg.GetContent()))
		case llms.RoleHuman:
			out = append(out, openai.UserMessage(msg.GetContent()))
		case llms.RoleAI:
			m, err := handleAIMessage(msg)
			if err != nil {
				return nil, err
			}
			out = append(out, m)
		case llms.RoleTool:
			// one tool response per message
			if len(msg.Parts) != 1 {
				return nil, errors.Errorf("openai: expected exactly one part for role %v, got %d", msg.Role, len(msg.Parts))
			}
			p, ok := msg.Parts[0].(llms.ToolCallResponse)
			if !ok {
				return nil, errors.Errorf("openai: expected part of type ToolCallResponse for role %v, got %T", msg.Role, msg.Parts[0])
			}
			out = append(out, openai.ToolMessage(p.Content, p.ToolCallID))
		default:
			return nil, errors.Errorf("openai: role %v not supported", msg.Role)
		}
	}
	return out, nil
}

func handleAIMessage(msg llms.Message) (openai.ChatCompletionMessageParamUnion, error) {
	var content string
	var toolCalls []openai.ChatCompletionMessageToolCallUnionParam

	for _, part := range msg.Parts {
		switch p := part.(type) {
		case llms.TextContent:
			if content != "" {
				content += "\n"
			}
			content += p.Text
		case llms.ToolCall:
			toolCalls = append(toolCalls, openai.ChatCompletionMessageToolCallUnionParam{
				OfFunction: &openai.ChatCompletionMessageFunctionToolCallParam{
					ID: p.ID,
					Function: openai.ChatCompletionMessageFunctionToolCallFunctionParam{
						Name:      p.FunctionCall.Name,
						Arguments: p.FunctionCall.Arguments,
					},
				},
			})
		default:
			return openai.ChatCompletionMessageParamUnion{}, errors.Errorf("openai: unsupported AI message part type: %T", part)
		}
	}

	if len(toolCalls) == 0 {
		return openai.AssistantMessage(content), nil
	}

	assistant := openai.ChatCompletionAssistantMessageParam{ToolCalls: toolCalls}
	if content != "" {
		assistant.Content = openai.ChatCompletionAssistantMessageParamContentUnion{
			OfString: openai.String(content),
		}
	}
	return openai.ChatCompletionMessageParamUnion{OfAssistant: &assistant}, nil
}

// ToTools converts LLM tool definitions to OpenAI SDK tool parameters.
func ToTools(tools []llms.Tool) ([]openai.ChatCompletionToolUnionParam, error) {
	out := make([]openai.ChatCompletionToolUnionParam, 0, len(tools))
	for _, t := range tools {
		if t.Type != "function" {
			return nil, errors.Errorf("openai: tool type %v not supported", t.Type)
		}
		params, err := toFunctionParameters(t.Function.Parameters)
		if err != nil {
			return nil, err
		}
		fn := shared.FunctionDefinitionParam{
			Name:       t.Function.Name,
			Parameters: params,
		}
		if t.Function.Description != "" {
			fn.Description = openai.String(t.Function.Description)
		}
		if t.Function.Strict {
			fn.Strict = openai.Bool(true)
		}
		out = append(out, openai.ChatCompletionFunctionTool(fn))
	}
	return out, nil
}

func toFunctionParameters(s any) (shared.FunctionParameters, error) {
	bs, err := json.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(err, "openai: failed to marshal tool parameters")
	}
	var m map[string]any
	if err := json.Unmarshal(bs, &m); err != nil {
		return nil, errors.Wrap(err, "openai: failed to unmarshal tool parameters")
	}
	return shared.FunctionParameters(m), nil
}

func toResponseFormat(rf *schema.ResponseFormat) (*openai.ChatCompletionNewParamsResponseFormatUnion, error) {
	switch rf.Type {
	case "json_object":
		obj := shared.ResponseFormatJSONObjectParam{}
		return &openai.ChatCompletionNewParamsResponseFormatUnion{OfJSONObject: &obj}, nil
	case "json_schema":
		if rf.JSONSchema == nil {
			return nil, errors.New("openai: json_schema response format requires a schema")
		}
		bs, err := json.Marshal(rf.JSONSchema.Schema)
		if err != nil {
			return nil, errors.Wrap(err, "openai: failed to marshal response format schema")
		}
		var m map[string]any
		if err := json.Unmarshal(bs, &m); err != nil {
			return nil, errors.Wrap(err, "openai: failed to unmarshal response format schema")
		}
		js := shared.ResponseFormatJSONSchemaParam{
			JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   rf.JSONSchema.Name,
				Schema: m,
				Strict: openai.Bool(rf.JSONSchema.Strict),
			},
		}
		return &openai.ChatCompletionNewParamsResponseFormatUnion{OfJSONSchema: &js}, nil
	default:
		txt := shared.ResponseFormatTextParam{}
		return &openai.ChatCompletionNewParamsResponseFormatUnion{OfText: &txt}, nil
	}
}
