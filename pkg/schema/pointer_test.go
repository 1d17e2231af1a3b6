package schema

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type withOmitEmpty struct {
	RequiredField string `json:"requiredField" jsonschema:"title=Required Field,description=A required string field"`
	OptionalField string `json:"optionalField,omitempty" jsonschema:"title=Optional Field,description=An optional string field"`
}

type withPointer struct {
	RequiredField string  `json:"requiredField" jsonschema:"title=Required Field,description=A required string field"`
	OptionalField *string `json:"optionalField,omitempty" jsonschema:"title=Optional Field,description=An optional string field"`
}

func TestPointerTypeSchemaGeneration(t *testing.T) {
	t.Run("string field with omitempty", func(t *testing.T) {
		rf, err := NewResponseFormat(reflect.TypeOf(withOmitEmpty{}), true)
		require.NoError(t, err)

		// optionalField appears in properties but not in required
		assert.Contains(t, rf.JSONSchema.Schema.Properties, "optionalField")
		assert.NotContains(t, rf.JSONSchema.Schema.Required, "optionalField")
		assert.Contains(t, rf.JSONSchema.Schema.Required, "requiredField")
	})

	t.Run("pointer field with omitempty", func(t *testing.T) {
		rf, err := NewResponseFormat(reflect.TypeOf(withPointer{}), true)
		require.NoError(t, err)

		assert.Contains(t, rf.JSONSchema.Schema.Properties, "optionalField")
		assert.NotContains(t, rf.JSONSchema.Schema.Required, "optionalField")
		assert.Contains(t, rf.JSONSchema.Schema.Required, "requiredField")
	})
}
