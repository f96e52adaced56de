package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/khabri/internal/config"
)

const reachabilityTimeout = 2 * time.Second

// ConfigCmd returns the `khabri config` command group.
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or change the CLI configuration",
	}
	cmd.AddCommand(configShowCmd())
	cmd.AddCommand(configSetURLCmd())
	return cmd
}

func configShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration and whether the server answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fileCfg, err := config.LoadFile()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			s, err := Open(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "config:    %s\n", config.Path())
			fmt.Fprintf(out, "api_url:   %s (%s)\n", s.Config.APIURL, apiURLSource(cmd, fileCfg))
			fmt.Fprintf(out, "log_file:  %s\n", s.Config.LogFile)
			fmt.Fprintf(out, "log_level: %s\n", s.Config.LogLevel)

			ctx, cancel := context.WithTimeout(ctxOf(cmd), reachabilityTimeout)
			defer cancel()
			records, err := s.Client.WithTimeout(reachabilityTimeout).ListRecords(ctx)
			if err != nil {
				fmt.Fprintln(out, "server:    unreachable")
				return nil
			}
			fmt.Fprintf(out, "server:    ok (%d students)\n", len(records))
			return nil
		},
	}
}

func configSetURLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-url <url>",
		Short: "Persist the collection endpoint to the config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw := strings.TrimSpace(args[0])
			u, err := url.Parse(raw)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("invalid url %q: want http(s)://host/path", raw)
			}

			cfg, err := config.LoadFile()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg.APIURL = raw
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "api_url set to %s\n", raw)
			fmt.Fprintf(cmd.OutOrStdout(), "config saved to %s\n", config.Path())
			return nil
		},
	}
}

// apiURLSource names which layer supplied the effective endpoint.
func apiURLSource(cmd *cobra.Command, fileCfg *config.Config) string {
	switch {
	case strings.TrimSpace(flagString(cmd, FlagAPIURL)) != "":
		return "flag"
	case strings.TrimSpace(os.Getenv(config.EnvAPIURL)) != "":
		return "env"
	case fileCfg != nil && strings.TrimSpace(fileCfg.APIURL) != "":
		return "file"
	}
	return "default"
}
