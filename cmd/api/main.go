package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/server"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if _, err := os.Stat("/.dockerenv"); os.IsNotExist(err) {
		if err := godotenv.Load(); err != nil {
			log.Debug().Err(err).Msg("no .env file loaded")
		}
	} else {
		log.Info().Msg("running in Docker container, skipping .env file loading")
	}
}

func gracefulShutdown(srv *server.Server, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exiting")

	done <- true
}

func main() {
	srv, err := server.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}

	done := make(chan bool, 1)
	go gracefulShutdown(srv, done)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server error")
	}

	<-done
	log.Info().Msg("graceful shutdown complete")
}
