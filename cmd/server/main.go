package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/config"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/infra"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/middleware"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/repository"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/router"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/state"
	"github.com/mahfuzbdasia1/inventory-for-export-pi/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	// Structured logger. dev: pretty, prod: JSON
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if !cfg.IsProduction() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, closeStore, err := infra.OpenStore(ctx, cfg)
	if err != nil {
		cancel()
		log.Fatal().Err(err).Msg("failed to open state store")
	}
	defer closeStore()

	repo := repository.NewStateRepository(store, cfg.StorePrefix)
	st, err := repo.Load(ctx)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load state")
	}
	log.Info().
		Int("products", len(st.Products)).
		Int("stock_rows", len(st.Ledger.Stock)).
		Int("sales", len(st.Ledger.Sales)).
		Msg("state loaded")

	ctrl := state.NewController(st, repo)

	// Background PDF archive pool, drained on shutdown.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	archiver := worker.NewArchiver(cfg.PDFStoragePath, 64)
	archiver.Start(workerCtx, cfg.WorkerPoolSize)

	opts := router.Options{
		LoginLimiter: middleware.NewLimiter(5, time.Minute),
		APILimiter:   middleware.NewLimiter(1000, time.Minute),
		Archiver:     archiver,
	}
	stop := make(chan struct{})
	go middleware.PurgeLoop(stop, opts.LoginLimiter, opts.APILimiter)

	r := router.New(cfg, store, ctrl, opts)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("SoleERP backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	close(stop)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	archiver.Close()
	log.Info().Msg("server exited")
}
