package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/qcdash/qc-dashboard/services/api/config"
	"github.com/qcdash/qc-dashboard/services/api/db"
	httpserver "github.com/qcdash/qc-dashboard/services/api/http"
	"github.com/qcdash/qc-dashboard/services/api/logging"
	"github.com/qcdash/qc-dashboard/services/api/session"
	"github.com/qcdash/qc-dashboard/services/api/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogDev)
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("api failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	backend, closeBackend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeBackend()

	persister, err := session.OpenSQLite(ctx, cfg.SessionDBPath)
	if err != nil {
		return err
	}
	defer persister.Close()

	state := session.NewState(persister)
	if err := state.Init(ctx); err != nil {
		return fmt.Errorf("load session state: %w", err)
	}
	auth := session.NewAuthenticator(session.Credentials{User: cfg.AuthUser, Password: cfg.AuthPassword}, state)

	srv := httpserver.New(cfg, backend, auth, logger)
	logger.Info("REST API listening",
		zap.String("addr", cfg.ListenAddr()),
		zap.Bool("upstream", cfg.UsesUpstream()),
		zap.Bool("authenticated", state.Authenticated()),
	)
	return srv.Run(ctx)
}

func openBackend(ctx context.Context, cfg config.Config, logger *zap.Logger) (httpserver.Backend, func(), error) {
	if cfg.UsesUpstream() {
		client, err := upstream.New(cfg.UpstreamURL, cfg.UpstreamTimeout, upstream.WithToken(cfg.UpstreamToken))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using upstream backend", zap.String("url", cfg.UpstreamURL))
		return client, func() {}, nil
	}

	store, err := db.New(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
	if err != nil {
		return nil, nil, fmt.Errorf("db connection error: %w", err)
	}
	if cfg.Migrate {
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, nil, err
		}
		logger.Info("database schema ready")
	}
	return store, store.Close, nil
}
