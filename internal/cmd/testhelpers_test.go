package cmd

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/gravitrone/khabri/internal/config"
	"github.com/gravitrone/khabri/internal/mockapi"
)

// isolate points HOME at a temp dir and clears the env overrides.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvLogFile, "")
	t.Setenv(config.EnvLogLevel, "")
}

// startBackend serves an in-memory collection and returns its URL.
func startBackend(t *testing.T, seed ...mockapi.Post) (string, *mockapi.Server) {
	t.Helper()
	backend := mockapi.New(nil, seed...)
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)
	return srv.URL + mockapi.DefaultPrefix, backend
}

// execute runs sub under a root carrying the global flags.
func execute(t *testing.T, sub *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "khabri", SilenceUsage: true, SilenceErrors: true}
	AddGlobalFlags(root)
	root.AddCommand(sub)

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
