package dummy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type report struct {
	Title string `json:"title"`
}

func (r report) String() string {
	return `Report: ` + r.Title
}

func TestDummy_Marshal(t *testing.T) {
	enc := NewEncoder()
	assert.Empty(t, enc.GetFormatInstructions())

	js, err := enc.Marshal(&report{Title: "Q1"})
	require.NoError(t, err)
	assert.Equal(t, "Report: Q1", string(js))

	js, err = enc.Marshal("plain")
	require.NoError(t, err)
	assert.Equal(t, "plain", string(js))

	js, err = enc.Marshal([]byte("raw"))
	require.NoError(t, err)
	assert.Equal(t, "raw", string(js))
}

type sink struct {
	data string
}

func (s *sink) Unmarshal(bs []byte) error {
	s.data = string(bs)
	return nil
}

func TestDummy_Unmarshal(t *testing.T) {
	enc := NewEncoder()

	var s sink
	require.NoError(t, enc.Unmarshal([]byte("anything"), &s))
	assert.Equal(t, "anything", s.data)

	var str string
	require.NoError(t, enc.Unmarshal([]byte("text"), &str))
	assert.Equal(t, "text", str)

	var r report
	require.NoError(t, enc.Unmarshal([]byte(`{"title": "Q2"}`), &r))
	assert.Equal(t, "Q2", r.Title)

	require.NoError(t, enc.Validate(r))
}
