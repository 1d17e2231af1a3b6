package tools_test

import (
	"context"
	"testing"

	"github.com/effective-security/agentexec/tools"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoRequest struct {
	Text string `json:"Text"`
}

type echoResponse struct {
	Text string `json:"Text"`
}

func newEchoTool(t *testing.T, name string) tools.ITool {
	t.Helper()
	tool, err := tools.NewFunc(name, "echoes the input",
		func(_ context.Context, req *echoRequest) (*echoResponse, error) {
			return &echoResponse{Text: req.Text}, nil
		})
	require.NoError(t, err)
	return tool
}

func Test_Registry(t *testing.T) {
	echo := newEchoTool(t, "Echo")
	other := newEchoTool(t, "Other")

	reg, err := tools.NewRegistry(echo, other)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	// lookup is case insensitive
	found, ok := reg.Lookup("echo")
	require.True(t, ok)
	assert.Equal(t, "Echo", found.Name())

	found, ok = reg.Lookup("ECHO")
	require.True(t, ok)
	assert.Equal(t, "Echo", found.Name())

	_, ok = reg.Lookup("missing")
	assert.False(t, ok)

	// names keep the original case, sorted
	assert.Equal(t, []string{"Echo", "Other"}, reg.Names())
	assert.Len(t, reg.List(), 2)
}

func Test_Registry_Conflict(t *testing.T) {
	reg, err := tools.NewRegistry(newEchoTool(t, "Echo"))
	require.NoError(t, err)

	// conflicts are case insensitive too
	err = reg.Register(newEchoTool(t, "ECHO"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
	assert.Equal(t, 1, reg.Len())
}

func Test_MustRegistry_Panics(t *testing.T) {
	echo := newEchoTool(t, "Echo")
	assert.Panics(t, func() {
		tools.MustRegistry(echo, newEchoTool(t, "echo"))
	})
}
