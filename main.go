package main

import (
	bidding "bidexpert/internal/biddingService"
	"bidexpert/internal/config"
	"bidexpert/internal/repository"
	"bidexpert/internal/server"
	"bidexpert/utils"
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const (
	demoTenant      = "demo"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Fatal("invalid configuration", map[string]any{"error": err.Error()})
	}
	if err := utils.SetLevel(cfg.LogLevel); err != nil {
		utils.Fatal("invalid LOG_LEVEL", map[string]any{"error": err.Error()})
	}

	ctx := context.Background()
	repo, closer, err := openRepository(ctx, cfg)
	if err != nil {
		utils.Fatal("failed to open storage", map[string]any{"storage": cfg.Storage, "error": err.Error()})
	}
	defer closer.Close()

	if cfg.SeedDemoData {
		if err := repository.SeedDemo(ctx, repo, demoTenant); err != nil {
			utils.Fatal("failed to seed demo data", map[string]any{"error": err.Error()})
		}
		utils.Info("demo data seeded", map[string]any{"tenant_id": demoTenant})
	}
	if cfg.DefaultBidIncrement.IsZero() {
		utils.Warn("DEFAULT_BID_INCREMENT is not set, lots without an increment will refuse bids", nil)
	}

	biddingSvc := bidding.NewBiddingService(repo,
		bidding.WithDefaultIncrement(cfg.DefaultBidIncrement),
		bidding.WithMaxBidAttempts(cfg.MaxBidAttempts),
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           server.SetupRouter(biddingSvc),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		utils.Info("starting auction server", map[string]any{"addr": srv.Addr, "storage": cfg.Storage})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	utils.Info("shutting down server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("server forced to shutdown", map[string]any{"error": err.Error()})
		return
	}
	utils.Info("server exited", nil)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openRepository selects the storage backend named in cfg
func openRepository(ctx context.Context, cfg config.Config) (repository.AuctionDB, io.Closer, error) {
	if cfg.Storage != config.StorageMySQL {
		return repository.NewMemoryRepo(), nopCloser{}, nil
	}

	db, err := repository.OpenMySQL(ctx, cfg.MySQL.DSN())
	if err != nil {
		return nil, nil, err
	}
	return repository.NewMySQLRepo(db), db, nil
}
