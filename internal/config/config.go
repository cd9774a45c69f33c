package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration for the trivia service.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"trivia-run"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Trivia Trivia
	Joke   Joke
	Redis  Redis
	Game   Game
}

// Trivia configures the upstream question source.
type Trivia struct {
	BaseURL     string        `env:"TRIVIA_BASE_URL" envDefault:"https://opentdb.com"`
	HTTPTimeout time.Duration `env:"TRIVIA_HTTP_TIMEOUT" envDefault:"5s"`
}

// Joke configures the closing-remark source shown on the end screen.
type Joke struct {
	BaseURL     string        `env:"JOKE_BASE_URL" envDefault:"https://icanhazdadjoke.com"`
	HTTPTimeout time.Duration `env:"JOKE_HTTP_TIMEOUT" envDefault:"5s"`
}

// Redis holds the session token cache configuration. An empty Addr disables
// caching; a fresh API token is then requested per playthrough.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
	TokenTTL time.Duration `env:"REDIS_TOKEN_TTL" envDefault:"6h"`
}

// Game groups pacing defaults for reveal animations and the end screen.
type Game struct {
	SelectedDelay  time.Duration `env:"GAME_SELECTED_DELAY" envDefault:"1s"`
	RevealDelay    time.Duration `env:"GAME_REVEAL_DELAY" envDefault:"1500ms"`
	EndScreenDelay time.Duration `env:"GAME_END_SCREEN_DELAY" envDefault:"1s"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
