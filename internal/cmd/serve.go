package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gravitrone/khabri/internal/logging"
	"github.com/gravitrone/khabri/internal/mockapi"
)

// ServeCmd returns the `khabri serve` command, which runs the in-memory
// collection API for local development.
func ServeCmd() *cobra.Command {
	var (
		addr     string
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run an in-memory student API for local development",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := logging.NewConsole(logLevel)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			return mockapi.New(logger).ListenAndServe(ctxOf(cmd), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8000", "listen address")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "console log level")
	return cmd
}
