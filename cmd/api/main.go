package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/hotproperties/hot-properties/docs"
	"github.com/hotproperties/hot-properties/internal/api"
	"github.com/hotproperties/hot-properties/internal/core/service"
	"github.com/hotproperties/hot-properties/internal/infrastructure/config"
	mongodb "github.com/hotproperties/hot-properties/internal/infrastructure/db/mongo"
	redisdb "github.com/hotproperties/hot-properties/internal/infrastructure/db/redis"
	"github.com/hotproperties/hot-properties/pkg/logger"
)

// @title        Hot Properties API
// @version      1.0
// @description  Real-estate listings with cookie-based JWT authentication.
// @BasePath     /
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	// A missing signing key is a configuration error: abort now, never
	// handle it per-request.
	tokens, err := service.NewTokenService(cfg.JWTSecret, time.Duration(cfg.TokenTTLSec)*time.Second)
	if err != nil {
		log.Fatal().Err(err).Msg("token service configuration")
	}

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection")
	}
	defer func() { _ = client.Disconnect(ctx) }()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection")
	}
	defer func() { _ = rdb.Close() }()

	users := mongodb.NewUserRepository(db)
	properties := mongodb.NewPropertyRepository(db)
	favorites := mongodb.NewFavoriteRepository(db)
	messages := mongodb.NewMessageRepository(db)

	gate := redisdb.NewFixedWindowLimiter(rdb, cfg.RateLimit.Limit, time.Duration(cfg.RateLimit.WindowSec)*time.Second)

	e := api.NewRouter(api.Dependencies{
		Users:      users,
		Tokens:     tokens,
		Auth:       service.NewAuthService(users, tokens, log),
		Properties: service.NewPropertyService(properties, log),
		Favorites:  service.NewFavoriteService(favorites, properties, log),
		Messages:   service.NewMessageService(messages, properties, log),
		Accounts:   service.NewUserService(users, log),
		RateGate:   gate,
		Mongo:      db,
		Redis:      rdb,
		Logger:     log,
		CookieTTL:  tokens.TTL(),
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("hot-properties api listening")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
