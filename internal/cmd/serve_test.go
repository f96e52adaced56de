package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeRejectsBadLogLevel(t *testing.T) {
	_, err := execute(t, ServeCmd(), "", "serve", "--log-level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestServeStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cmd := ServeCmd()
	cmd.SetArgs([]string{"--addr", "127.0.0.1:0", "--log-level", "error"})
	assert.NoError(t, cmd.ExecuteContext(ctx))
}
