package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/simaogato/networth-backend/internal/adapter/httpapi"
	"github.com/simaogato/networth-backend/internal/adapter/repository/postgres"
	"github.com/simaogato/networth-backend/internal/adapter/repository/sqlite"
	"github.com/simaogato/networth-backend/internal/config"
	"github.com/simaogato/networth-backend/internal/domain"
	"github.com/simaogato/networth-backend/internal/usecase/asset"
	"github.com/simaogato/networth-backend/internal/usecase/dashboard"
	"github.com/simaogato/networth-backend/internal/usecase/history"
	"github.com/simaogato/networth-backend/internal/usecase/transaction"
)

func main() {
	configPath := flag.String("config", "networth.toml", "path to the TOML config file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// 1. Setup storage
	assetRepo, transactionRepo, closeStorage, err := openStorage(ctx, cfg.Storage)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStorage()

	// 2. Initialize services (use cases)
	assetService := asset.NewService(assetRepo)
	transactionService := transaction.NewService(transactionRepo)
	historyService := history.NewService(assetRepo)
	dashboardService := dashboard.NewService(transactionRepo)

	// 3. Start HTTP server
	apiServer := httpapi.NewServer(assetService, transactionService, historyService, dashboardService, cfg.Server.APIToken)
	if cfg.Server.MetricsEnabled {
		apiServer.EnableMetrics()
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           apiServer.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", cfg.Server.Addr, "driver", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	waitForShutdown(srv)
}

// openStorage builds the repository pair for the configured driver
func openStorage(ctx context.Context, cfg config.StorageConfig) (domain.AssetRepository, domain.TransactionRepository, func(), error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewDB(cfg.PostgresConnStr())
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, nil, err
		}
		return postgres.NewAssetRepository(db), postgres.NewTransactionRepository(db), func() { db.Close() }, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.Path)
		if err != nil {
			return nil, nil, nil, err
		}
		return sqlite.NewAssetRepository(db), sqlite.NewTransactionRepository(db), func() { db.Close() }, nil
	}

	return nil, nil, nil, errors.New("unknown storage driver " + cfg.Driver)
}

// waitForShutdown waits for SIGTERM or SIGINT and gracefully shuts down the server
func waitForShutdown(srv *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	sig := <-sigChan
	slog.Info("received signal, shutting down gracefully", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}
	slog.Info("HTTP server stopped")
}
