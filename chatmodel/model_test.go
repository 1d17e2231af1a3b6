package chatmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type jsonOnly struct {
	Name string `json:"name"`
}

func TestOutputResult(t *testing.T) {
	t.Parallel()
	o := NewOutputResult("the answer")
	assert.Equal(t, "the answer", o.GetContent())

	var _ ContentProvider = o
}

func TestStringify(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "text", Stringify(NewString("text")))
	assert.Equal(t, "result", Stringify(OutputResult{Content: "result"}))
	assert.Equal(t, `{"name":"x"}`, Stringify(jsonOnly{Name: "x"}))
}

func TestToBytes(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []byte("text"), ToBytes(NewString("text")))
	assert.Equal(t, []byte("result"), ToBytes(OutputResult{Content: "result"}))
	assert.Equal(t, []byte(`{"name":"x"}`), ToBytes(jsonOnly{Name: "x"}))
}
