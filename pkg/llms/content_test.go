package llms_test

import (
	"encoding/json"
	"testing"

	"github.com/effective-security/agentexec/pkg/llms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_MessageHelpers(t *testing.T) {
	t.Parallel()

	m := llms.MessageFromTextParts(llms.RoleHuman, "one", "two")
	assert.Equal(t, llms.RoleHuman, m.Role)
	require.Len(t, m.Parts, 2)
	assert.Equal(t, "one\ntwo", m.GetContent())

	call := llms.ToolCall{
		ID:   "call_1",
		Type: "function",
		FunctionCall: &llms.FunctionCall{
			Name:      "Calculator",
			Arguments: `{"operation":"add"}`,
		},
	}
	m = llms.MessageFromToolCalls(llms.RoleAI, call)
	require.Len(t, m.Parts, 1)
	assert.Contains(t, m.Parts[0].(llms.ToolCall).String(), "Calculator")

	m = llms.MessageFromToolResponse(llms.RoleTool, llms.ToolCallResponse{
		ToolCallID: "call_1",
		Name:       "Calculator",
		Content:    "4",
	})
	require.Len(t, m.Parts, 1)
}

func Test_Message_JSONRoundTrip(t *testing.T) {
	t.Parallel()

	// single text part flattens to {role, text}
	m := llms.MessageFromTextParts(llms.RoleSystem, "be helpful")
	bs, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"role": "system", "text": "be helpful"}`, string(bs))

	var back llms.Message
	require.NoError(t, json.Unmarshal(bs, &back))
	assert.Equal(t, m, back)

	// mixed parts keep their types
	m = llms.MessageFromParts(llms.RoleAI,
		llms.TextPart("calling tools"),
		llms.BinaryPart("image/png", []byte{0x89, 0x50}),
		llms.ToolCall{
			ID:   "call_1",
			Type: "function",
			FunctionCall: &llms.FunctionCall{
				Name:      "Calculator",
				Arguments: `{"operation":"add"}`,
			},
		},
		llms.ToolCallResponse{
			ToolCallID: "call_1",
			Name:       "Calculator",
			Content:    "4",
			IsError:    false,
		},
	)
	bs, err = json.Marshal(m)
	require.NoError(t, err)

	back = llms.Message{}
	require.NoError(t, json.Unmarshal(bs, &back))
	assert.Equal(t, m, back)
}

func Test_ProviderCapabilities(t *testing.T) {
	t.Parallel()

	assert.True(t, llms.ProviderOpenAI.Supports(llms.CapabilityJSONSchema))
	assert.True(t, llms.ProviderOpenAI.Supports(llms.CapabilityJSONSchemaStrict))
	assert.False(t, llms.ProviderAnthropic.Supports(llms.CapabilityJSONSchema))
	assert.True(t, llms.ProviderAnthropic.Supports(llms.CapabilityFunctionCalling))
	assert.False(t, llms.ProviderType("UNKNOWN").Supports(llms.CapabilityText))
}
