package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"salesboard/internal/config"
	"salesboard/internal/db"
	"salesboard/internal/excel"
	httpapi "salesboard/internal/http"
	"salesboard/internal/logger"
	"salesboard/internal/repository"
	"salesboard/internal/service"
)

func main() {
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info")
		bootLog.Fatal().Err(err).Msg("config error")
	}
	log := logger.New(cfg.LogLevel)

	ctx := context.Background()

	var history service.HistoryStore
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("database error")
		}
		defer pool.Close()

		if err := db.RunMigrations(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migration error")
		}
		history = repository.New(pool)
		log.Info().Msg("upload history enabled")
	} else {
		log.Info().Msg("DATABASE_URL not set, upload history disabled")
	}

	svc := service.New(history, service.Options{
		Location: cfg.Location,
		Amounts: excel.AmountParser{
			CentsHeuristic: cfg.CentsHeuristic,
			CentsThreshold: cfg.CentsThreshold,
		},
		Log: log,
	})
	handler := httpapi.NewHandler(svc, cfg.MaxUploadBytes)
	router := httpapi.NewRouter(handler, log)

	server := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Str("timezone", cfg.Location.String()).Msg("salesboard listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("force close failed")
		}
	}
}
