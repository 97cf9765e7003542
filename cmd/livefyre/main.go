package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/totegamma/livefyre"
	"github.com/totegamma/livefyre/api"
	"github.com/totegamma/livefyre/client"
	"github.com/totegamma/livefyre/internal/config"
	"github.com/totegamma/livefyre/internal/tracing"
)

var (
	configFile string
	verbose    bool
)

// app holds everything a subcommand needs, built from the config file.
type app struct {
	config   config.Config
	logger   *zap.Logger
	network  *livefyre.Network
	registry *prometheus.Registry
	api      *api.Client
	shutdown func(context.Context) error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	shutdown := func(context.Context) error { return nil }
	if cfg.Trace.Enable {
		shutdown, err = tracing.Setup(ctx, cfg.Trace.Endpoint, cfg.Trace.Service)
		if err != nil {
			return nil, err
		}
	}

	if cfg.Network.Name == "" {
		return nil, fmt.Errorf("network.name is not configured in %s", configFile)
	}
	network := livefyre.NewNetwork(cfg.Network.Name, cfg.Network.Key)
	network.SetSSL(cfg.Network.UseSSL())

	registry := prometheus.NewRegistry()
	sender := client.New(client.Options{
		Timeout:   cfg.Client.Timeout,
		UserAgent: cfg.Client.UserAgent,
		Logger:    logger,
		Metrics:   client.NewMetrics(registry),
	})

	return &app{
		config:   cfg,
		logger:   logger,
		network:  network,
		registry: registry,
		api:      api.New(sender, api.WithLogger(logger), api.WithTokenTTL(cfg.Client.TokenTTL)),
		shutdown: shutdown,
	}, nil
}

func (a *app) site() (*livefyre.Site, error) {
	if a.config.Site.ID == "" {
		return nil, fmt.Errorf("site.id is not configured in %s", configFile)
	}
	return a.network.Site(a.config.Site.ID, a.config.Site.Key), nil
}

func (a *app) close(ctx context.Context) {
	if err := a.shutdown(ctx); err != nil {
		a.logger.Warn("tracer shutdown failed", zap.Error(err))
	}
	_ = a.logger.Sync()
}

func newLogger(cfg config.Log) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development || verbose {
		zc = zap.NewDevelopmentConfig()
	}
	if cfg.Level != "" && !verbose {
		level, err := zap.ParseAtomicLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		zc.Level = level
	}
	return zc.Build()
}

// withApp adapts a command body that needs an app.
func withApp(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.close(context.Background())
		return run(cmd, a, args)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "livefyre",
		Short:         "Livefyre network, site and collection tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "config file path")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(
		tokenCmd(),
		checksumCmd(),
		collectionCmd(),
		usersyncCmd(),
		topicsCmd(),
		timelineCmd(),
		serveCmd(),
	)
	return root
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
