package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-run/internal/config"
	"github.com/gokatarajesh/trivia-run/internal/game"
	"github.com/gokatarajesh/trivia-run/internal/joke"
	"github.com/gokatarajesh/trivia-run/internal/logging"
	"github.com/gokatarajesh/trivia-run/internal/play"
	"github.com/gokatarajesh/trivia-run/internal/server"
	"github.com/gokatarajesh/trivia-run/internal/trivia"
)

// Application aggregates shared infrastructure (token cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	redis *redis.Client
	http  *http.Server
}

// New bootstraps config, logger, the optional Redis token cache, upstream
// clients and the HTTP server.
func New(cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	var redisClient *redis.Client
	var tokenStore trivia.TokenStore = trivia.NopTokenStore{}
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		tokenStore = trivia.NewRedisTokenStore(redisClient, cfg.Redis.TokenTTL)
	} else {
		logger.Warn().Msg("REDIS_ADDR not set; token caching disabled, a fresh token is requested per run")
	}

	triviaClient := trivia.NewClient(cfg.Trivia.BaseURL, &http.Client{Timeout: cfg.Trivia.HTTPTimeout})
	tokens := trivia.NewTokenProvider(triviaClient, tokenStore, logger)
	jokeClient := joke.NewClient(cfg.Joke.BaseURL, &http.Client{Timeout: cfg.Joke.HTTPTimeout})

	playHandler := play.NewHandler(
		triviaClient,
		tokens,
		jokeClient,
		game.DefaultSections(),
		play.Config{
			SelectedDelay:  cfg.Game.SelectedDelay,
			RevealDelay:    cfg.Game.RevealDelay,
			EndScreenDelay: cfg.Game.EndScreenDelay,
		},
		logger,
	)

	apiServer := server.NewHTTPServer(cfg, logger, redisClient, playHandler.HandlePlay)

	return &Application{
		cfg:    cfg,
		logger: logger,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run() error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}
