package encoding_test

import (
	"testing"

	"github.com/effective-security/agentexec/encoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_JSON_Encoding(t *testing.T) {
	e, err := encoding.PredefinedSchemaEncoder(encoding.ModeJSON, Search{})
	require.NoError(t, err)

	instr := e.GetFormatInstructions()
	assert.Contains(t, instr, "Respond with JSON in the following JSON schema:")
	assert.Contains(t, instr, "```json")
	assert.Contains(t, instr, `"title": "Topic"`)
	assert.Contains(t, instr, `"description": "Query to search for relevant content"`)
	assert.Contains(t, instr, `"default": "web"`)
	assert.Contains(t, instr, "Make sure to return an instance of the JSON, not the schema itself.")

	var s Search
	require.NoError(t, e.Unmarshal([]byte(`{"topic": "go", "query": "what is golang", "type": "web"}`), &s))
	assert.Equal(t, "go", s.Topic)
	assert.Equal(t, Web, s.Type)
}

func Test_YAML_Encoding(t *testing.T) {
	e, err := encoding.PredefinedSchemaEncoder(encoding.ModeYAML, Search{})
	require.NoError(t, err)

	exp := `
Respond with YAML in the following YAML schema without comments:
` + "```yaml" + `
topic: golang
query: what is golang
type: web
` + "```" + `
Make sure to return an instance of the YAML, not the schema itself.
`

	assert.Equal(t, exp, e.GetFormatInstructions())
}

func Test_TOML_Encoding(t *testing.T) {
	e, err := encoding.PredefinedSchemaEncoder(encoding.ModeTOML, Search{})
	require.NoError(t, err)

	exp := `
Respond with TOML in the following TOML schema:
` + "```toml" + `
Topic = "golang"
Query = "what is golang"
Type = "web"
` + "```" + `
Make sure to return an instance of the TOML, not the schema itself.
`

	assert.Equal(t, exp, e.GetFormatInstructions())
}

func Test_PlainText_Encoding(t *testing.T) {
	e, err := encoding.PredefinedSchemaEncoder(encoding.ModePlainText, Search{})
	require.NoError(t, err)
	assert.Empty(t, e.GetFormatInstructions())

	_, err = encoding.PredefinedSchemaEncoder(encoding.ModeCustom, Search{})
	assert.EqualError(t, err, "no predefined encoder")
}

type SearchType string

const (
	Web   SearchType = "web"
	Image SearchType = "image"
	Video SearchType = "video"
)

type Search struct {
	Topic string     `json:"topic" jsonschema:"title=Topic,description=Topic of the search,example=golang" fake:"golang"`
	Query string     `json:"query" jsonschema:"title=Query,description=Query to search for relevant content,example=what is golang" fake:"what is golang"`
	Type  SearchType `json:"type"  jsonschema:"title=Type,description=Type of search,default=web,enum=web,enum=image,enum=video" fake:"web"`
}
