// LifeOS backend - personal life-management server with a conversational agent.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/xonecas/lifeos/internal/agent"
	"github.com/xonecas/lifeos/internal/api"
	"github.com/xonecas/lifeos/internal/config"
	"github.com/xonecas/lifeos/internal/knowledge"
	"github.com/xonecas/lifeos/internal/middleware"
	"github.com/xonecas/lifeos/internal/provider"
	"github.com/xonecas/lifeos/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, using environment variables")
	}

	configPath := os.Getenv("LIFEOS_CONFIG")
	if configPath == "" {
		configPath = "lifeos.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogging(cfg.Log)

	log.Info().Str("port", cfg.Server.Port).Str("model", cfg.Provider.Model).Msg("Starting server")

	// Open the store once; it is passed explicitly to everything that needs
	// it and closed on shutdown.
	s, err := store.Open(cfg.Server.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close store")
		}
	}()

	if err := s.Ping(); err != nil {
		log.Fatal().Err(err).Msg("Database health check failed")
	}
	log.Info().Str("path", cfg.Server.DBPath).Msg("Database connected")

	var limiter *rate.Limiter
	if cfg.Provider.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.Provider.RateLimit), cfg.Provider.RateBurst)
	}

	llm := provider.NewGeminiWithTemp(
		cfg.Provider.Endpoint,
		cfg.Provider.Model,
		cfg.Provider.APIKey,
		cfg.Provider.Temperature,
		limiter,
	)

	loader := knowledge.NewLoader(cfg.Server.KnowledgeDir)
	registry := agent.NewRegistry(s, nil)
	orchestrator := agent.New(s, llm, loader, registry)

	handler := api.NewHandler(s, orchestrator)

	r := chi.NewRouter()
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(middleware.CORS([]string{"*"}))

	r.Route("/api/v1", func(r chi.Router) {
		handler.RegisterChatRoutes(r)
		handler.RegisterRecordRoutes(r)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 3 * time.Minute, // chat turns wait on two model rounds
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	stop()

	log.Info().Msg("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
