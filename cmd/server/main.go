package main

import (
	"context"
	"errors"
	"log"
	stdhttp "net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/vncsmyrnk/voxen/internal/adapters/chain/ethereum"
	"github.com/vncsmyrnk/voxen/internal/adapters/oauth/google"
	"github.com/vncsmyrnk/voxen/internal/adapters/repository/postgres"
	"github.com/vncsmyrnk/voxen/internal/app"
	"github.com/vncsmyrnk/voxen/internal/config"
	"github.com/vncsmyrnk/voxen/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	if err := cfg.ValidateServer(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.App, cfg.Logger)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatalw("server stopped", "error", err)
	}
}

func run(cfg config.Config, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.DB.ConnString(), cfg.DB.ConnectAttempts, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	applied, err := postgres.Migrate(ctx, db)
	if err != nil {
		return err
	}
	if len(applied) > 0 {
		logger.Infow("applied migrations", "versions", applied)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	deps := app.Deps{
		DB:       db,
		Registry: registry,
		Logger:   logger,
	}
	if cfg.Auth.GoogleClientID != "" {
		deps.Google = google.NewVerifier()
	}
	if cfg.Chain.RPCURL != "" {
		reader, err := ethereum.Dial(ctx, cfg.Chain.RPCURL, cfg.Chain.DialAttempts, logger)
		if err != nil {
			return err
		}
		defer reader.Close()
		deps.Chain = reader
	} else {
		logger.Infow("no chain rpc configured, on-chain verification disabled")
	}

	handler := app.New(cfg, deps).Handler()
	server := &stdhttp.Server{Addr: cfg.HTTP.Addr, Handler: otelhttp.NewHandler(handler, "voxen-api")}

	serverErr := make(chan error, 1)
	go func() {
		logger.Infow("listening", "addr", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	logger.Infow("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
