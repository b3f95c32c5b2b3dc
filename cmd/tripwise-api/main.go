// README: Entry point; loads config, wires services, starts the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"tripwise/internal/ai"
	"tripwise/internal/config"
	httptransport "tripwise/internal/http"
	"tripwise/internal/infra"
	"tripwise/internal/maps"
	"tripwise/internal/modules/chat"
	"tripwise/internal/modules/trip"
	"tripwise/internal/search"
)

func main() {
	// Missing .env is fine in deployed environments.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := infra.NewLogger(cfg.Env)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var completions ai.CompletionProvider
	switch cfg.AI.Provider {
	case "openai":
		completions = ai.NewOpenAIProvider(cfg.AI.OpenAIKey, cfg.AI.Model)
	default:
		gemini, err := ai.NewGeminiProvider(ctx, cfg.AI.GeminiKey, cfg.AI.Model)
		if err != nil {
			logger.Fatal("gemini init", zap.Error(err))
		}
		defer gemini.Close()
		completions = gemini
	}

	searchClient := search.NewSerpClient(cfg.Serp.APIKey, cfg.Serp.BaseURL, logger)

	var places trip.AttractionSource
	if cfg.Maps.APIKey != "" {
		placesService, err := maps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			logger.Fatal("maps init", zap.Error(err))
		}
		places = placesService
	} else {
		logger.Info("GOOGLE_MAPS_API_KEY not set, planning without attraction lookups")
	}

	var sessionStore chat.Store
	switch cfg.Session.Backend {
	case "postgres":
		dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
		if err != nil {
			logger.Fatal("postgres init", zap.Error(err))
		}
		defer dbPool.Close()
		sessionStore = chat.NewPGStore(dbPool)
	case "redis":
		redisClient := infra.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer redisClient.Close()
		sessionStore = chat.NewRedisStore(redisClient, cfg.Session.TTL)
	default:
		sessionStore = chat.NewMemoryStore()
	}
	logger.Info("session store ready", zap.String("backend", cfg.Session.Backend))

	tripService := trip.NewService(searchClient, completions, places, logger)
	chatService := chat.NewService(sessionStore, completions, logger)

	handler := httptransport.NewRouter(tripService, chatService, cfg.HTTP.AllowedOrigins, logger)
	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.HTTP.Addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("serve", zap.Error(err))
	}
}
