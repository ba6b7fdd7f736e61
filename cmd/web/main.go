package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/staffdesk/staffdesk-web/internal/api"
	"github.com/staffdesk/staffdesk-web/internal/infrastructure/backend"
	"github.com/staffdesk/staffdesk-web/internal/infrastructure/config"
	"github.com/staffdesk/staffdesk-web/pkg/logger"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	backendAPI, err := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout, log)
	if err != nil {
		log.Fatal().Err(err).Str("base_url", cfg.Backend.BaseURL).Msg("invalid backend configuration")
	}

	e := api.NewRouter(backendAPI, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.Backend.BaseURL).Msg("starting staffdesk web")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
