package encoding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimpleOutputParser(t *testing.T) {
	t.Parallel()
	parser := NewSimpleOutputParser()
	require.NotNil(t, parser)
	assert.Equal(t, "simple_parser", parser.Type())
	assert.Empty(t, parser.GetFormatInstructions())

	tests := []struct {
		input string
		want  string
	}{
		{"hello world", "hello world"},
		{"  test\n", "test"},
		{"   ", ""},
		{"foo", "foo"},
		{"line one\nline two", "line one\nline two"},
	}

	for _, tt := range tests {
		val, err := parser.Parse(tt.input)
		require.NoError(t, err)
		require.NotNil(t, val)
		assert.Equal(t, tt.want, val.String())
		assert.Equal(t, tt.want, val.GetContent())
	}
}
