package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gravitrone/khabri/internal/api"
	"github.com/gravitrone/khabri/internal/config"
	"github.com/gravitrone/khabri/internal/logging"
	"github.com/gravitrone/khabri/internal/store"
)

// Global flag names, registered on the root by AddGlobalFlags.
const (
	FlagAPIURL  = "api-url"
	FlagTimeout = "timeout"
)

// AddGlobalFlags registers the persistent flags every subcommand reads.
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().String(FlagAPIURL, "",
		"collection endpoint, overrides "+config.EnvAPIURL+" and the config file")
	root.PersistentFlags().Duration(FlagTimeout, 0,
		"per-request timeout (0 waits forever)")
}

// Session is everything a command needs to talk to the collection.
type Session struct {
	Config *config.Config
	Logger *zap.Logger
	Client *api.Client
	Store  *store.Store
}

// Open loads configuration, applies the global flags and builds the store.
func Open(cmd *cobra.Command) (*Session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	merged := cfg.WithAPIURL(flagString(cmd, FlagAPIURL))
	cfg = &merged

	logger, err := logging.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}
	client := api.NewClient(cfg.APIURL, logger, flagDuration(cmd, FlagTimeout))
	logger.Debug("session opened",
		zap.String("command", cmd.CommandPath()),
		zap.String("api_url", cfg.APIURL),
	)

	return &Session{
		Config: cfg,
		Logger: logger,
		Client: client,
		Store:  store.New(client, logger),
	}, nil
}

// Close flushes the logger.
func (s *Session) Close() {
	_ = s.Logger.Sync()
}

// flagString reads a flag that may not be registered on standalone commands.
func flagString(cmd *cobra.Command, name string) string {
	v, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return v
}

func flagDuration(cmd *cobra.Command, name string) time.Duration {
	v, err := cmd.Flags().GetDuration(name)
	if err != nil {
		return 0
	}
	return v
}
