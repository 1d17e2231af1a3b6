package llms

import (
	"encoding/base64"
	"encoding/json"

	"github.com/cockroachdb/errors"
)

// JSON shapes used to persist messages in a store and restore them with the
// part types intact. A single text part is flattened to {role, text}.

type messageJSON struct {
	Role  Role   `json:"role"`
	Text  string `json:"text,omitempty"`
	Parts []any  `json:"parts,omitempty"`
}

type contentPartJSON struct {
	Type         string            `json:"type"`
	Text         string            `json:"text,omitempty"`
	Binary       *binaryJSON       `json:"binary,omitempty"`
	ToolCall     *toolCallJSON     `json:"tool_call,omitempty"`
	ToolResponse *toolResponseJSON `json:"tool_response,omitempty"`
}

type binaryJSON struct {
	Data     string `json:"data"`
	MIMEType string `json:"mime_type"`
}

type toolCallJSON struct {
	ID           string        `json:"id"`
	Type         string        `json:"type"`
	FunctionCall *FunctionCall `json:"function"`
}

type toolResponseJSON struct {
	ToolCallID string `json:"tool_call_id"`
	Name       string `json:"name"`
	Content    string `json:"content"`
	IsError    bool   `json:"is_error,omitempty"`
}

// MarshalJSON implements json.Marshaler for Message.
func (m Message) MarshalJSON() ([]byte, error) {
	if len(m.Parts) == 1 {
		if tp, ok := m.Parts[0].(TextContent); ok {
			return json.Marshal(messageJSON{
				Role: m.Role,
				Text: tp.Text,
			})
		}
	}

	parts := make([]any, 0, len(m.Parts))
	for _, part := range m.Parts {
		switch p := part.(type) {
		case TextContent:
			parts = append(parts, contentPartJSON{Type: "text", Text: p.Text})
		case BinaryContent:
			parts = append(parts, contentPartJSON{
				Type: "binary",
				Binary: &binaryJSON{
					Data:     base64.StdEncoding.EncodeToString(p.Data),
					MIMEType: p.MIMEType,
				},
			})
		case ToolCall:
			parts = append(parts, contentPartJSON{
				Type: "tool_call",
				ToolCall: &toolCallJSON{
					ID:           p.ID,
					Type:         p.Type,
					FunctionCall: p.FunctionCall,
				},
			})
		case ToolCallResponse:
			parts = append(parts, contentPartJSON{
				Type: "tool_response",
				ToolResponse: &toolResponseJSON{
					ToolCallID: p.ToolCallID,
					Name:       p.Name,
					Content:    p.Content,
					IsError:    p.IsError,
				},
			})
		default:
			return nil, errors.Newf("unsupported content part: %T", part)
		}
	}
	return json.Marshal(messageJSON{Role: m.Role, Parts: parts})
}

// UnmarshalJSON implements json.Unmarshaler for Message.
func (m *Message) UnmarshalJSON(data []byte) error {
	var raw struct {
		Role  Role              `json:"role"`
		Text  string            `json:"text"`
		Parts []contentPartJSON `json:"parts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Role = raw.Role
	if raw.Text != "" {
		m.Parts = []ContentPart{TextContent{Text: raw.Text}}
		return nil
	}

	m.Parts = nil
	for _, pj := range raw.Parts {
		part, err := unmarshalContentPart(pj)
		if err != nil {
			return err
		}
		m.Parts = append(m.Parts, part)
	}
	return nil
}

func unmarshalContentPart(pj contentPartJSON) (ContentPart, error) {
	switch pj.Type {
	case "text", "":
		return TextContent{Text: pj.Text}, nil
	case "binary":
		if pj.Binary == nil {
			return nil, errors.New("binary field is required for binary type")
		}
		decoded, err := base64.StdEncoding.DecodeString(pj.Binary.Data)
		if err != nil {
			return nil, errors.Wrap(err, "failed to decode binary data")
		}
		return BinaryContent{
			MIMEType: pj.Binary.MIMEType,
			Data:     decoded,
		}, nil
	case "tool_call":
		if pj.ToolCall == nil {
			return nil, errors.New("tool_call field is required for tool_call type")
		}
		fc := pj.ToolCall.FunctionCall
		if fc == nil {
			fc = &FunctionCall{}
		}
		return ToolCall{
			ID:           pj.ToolCall.ID,
			Type:         pj.ToolCall.Type,
			FunctionCall: fc,
		}, nil
	case "tool_response":
		if pj.ToolResponse == nil {
			return nil, errors.New("tool_response field is required for tool_response type")
		}
		return ToolCallResponse{
			ToolCallID: pj.ToolResponse.ToolCallID,
			Name:       pj.ToolResponse.Name,
			Content:    pj.ToolResponse.Content,
			IsError:    pj.ToolResponse.IsError,
		}, nil
	default:
		return nil, errors.Newf("unknown content type: '%s'", pj.Type)
	}
}
