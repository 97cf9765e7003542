package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/totegamma/livefyre/internal/config"
	"github.com/totegamma/livefyre/internal/infra/database"
	"github.com/totegamma/livefyre/profile"
)

func openStore(ctx context.Context, a *app) (profile.Store, error) {
	cfg := a.config.Profile

	var store profile.Store
	switch cfg.Store {
	case config.StorePostgres:
		db, err := database.NewPostgres(cfg.PostgresDsn, a.logger)
		if err != nil {
			return nil, errors.Wrap(err, "connect postgres")
		}
		if err := database.MigratePostgres(db); err != nil {
			return nil, errors.Wrap(err, "migrate postgres")
		}
		store = profile.NewPostgresStore(db)
	case config.StoreRedis:
		rdb, err := database.NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, err
		}
		store = profile.NewRedisStore(rdb, cfg.RedisPrefix)
	default:
		store = profile.NewMemoryStore()
	}

	if len(cfg.MemcachedAddr) > 0 {
		mc := database.NewMemcached(cfg.MemcachedAddr, time.Second)
		store = profile.NewCachedStore(store, mc, cfg.CacheTTL, a.logger)
	}
	return store, nil
}

func serveCmd() *cobra.Command {
	var registerURL string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve user profiles to Livefyre's user sync",
		Args:  cobra.NoArgs,
		RunE: withApp(func(cmd *cobra.Command, a *app, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, err := openStore(ctx, a)
			if err != nil {
				return err
			}

			opts := []profile.Option{
				profile.WithLogger(a.logger),
				profile.WithRegistry(a.registry),
			}
			if a.config.Profile.RefreshOnPut {
				opts = append(opts, profile.WithPinger(a.api))
			}
			e := profile.NewServer(a.network, store, opts...).Echo()

			if registerURL != "" {
				if err := a.api.SetUserSyncURL(ctx, a.network, registerURL); err != nil {
					return err
				}
				a.logger.Info("registered user sync url", zap.String("url", registerURL))
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("profile server listening", zap.String("addr", a.config.Profile.Listen))
				if err := e.Start(a.config.Profile.Listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		}),
	}
	cmd.Flags().StringVar(&registerURL, "register-url", "", "register this url template with Livefyre on start, e.g. https://example.com/profiles/{id}")
	return cmd
}
