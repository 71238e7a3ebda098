package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog/log"

	"github.com/jiangchenwo/gopher-mcp-tools/internal/server/handlers"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/server/middleware"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/server/ratelimit"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/server/router"
	"github.com/jiangchenwo/gopher-mcp-tools/internal/store"
)

const (
	defaultPort       = 8080
	defaultRateLimit  = 60
	defaultRateWindow = time.Minute
	statsCacheTTL     = 10 * time.Minute
	cleanupInterval   = 5 * time.Minute
)

// Server owns the database handle and the HTTP server built on it.
type Server struct {
	store      *store.Store
	httpServer *http.Server
}

// New builds a server from environment configuration. GRADES_DB_PATH must
// point at an existing GopherGrades database.
func New() (*Server, error) {
	dbPath := os.Getenv("GRADES_DB_PATH")
	if dbPath == "" {
		return nil, fmt.Errorf("GRADES_DB_PATH is required")
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening grades database: %w", err)
	}
	log.Info().Str("path", dbPath).Msg("grades database opened")

	limiter := ratelimit.NewLimiter(envInt("RATE_LIMIT", defaultRateLimit),
		time.Duration(envInt("RATE_WINDOW_SECONDS", int(defaultRateWindow.Seconds())))*time.Second)
	limiter.StartCleanup(cleanupInterval)

	statsCache := cache.New(statsCacheTTL, cleanupInterval)
	mw := middleware.NewManager(limiter, envList("CORS_ALLOWED_ORIGINS"))
	handler := handlers.New(db, statsCache)

	port := envInt("PORT", defaultPort)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router.New(handler, mw),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return &Server{store: db, httpServer: httpServer}, nil
}

// ListenAndServe runs the HTTP server until shutdown.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("listening")
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and closes the database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if closeErr := s.store.Close(); err == nil {
		err = closeErr
	}
	return err
}

func envInt(name string, fallback int) int {
	value := os.Getenv(name)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Warn().Str("name", name).Str("value", value).Msg("ignoring invalid env value")
		return fallback
	}
	return n
}

func envList(name string) []string {
	value := os.Getenv(name)
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
