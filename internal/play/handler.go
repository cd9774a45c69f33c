// Package play serves interactive trivia runs over WebSocket. Each
// connection gets its own game loop; the session implements the
// presentation boundary the loop drives.
package play

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-run/internal/game"
	"github.com/gokatarajesh/trivia-run/internal/server"
)

// Config holds per-session pacing.
type Config struct {
	SelectedDelay  time.Duration // pause on the player's selected option
	RevealDelay    time.Duration // pause while the correct option flashes
	EndScreenDelay time.Duration // minimum hold before the end screen
}

// Handler upgrades play requests and runs one game loop per connection.
type Handler struct {
	fetcher  game.QuestionFetcher
	tokens   game.TokenSource
	remarks  game.RemarkFetcher
	sections []game.Section
	cfg      Config
	logger   zerolog.Logger
}

func NewHandler(fetcher game.QuestionFetcher, tokens game.TokenSource, remarks game.RemarkFetcher, sections []game.Section, cfg Config, logger zerolog.Logger) *Handler {
	return &Handler{
		fetcher:  fetcher,
		tokens:   tokens,
		remarks:  remarks,
		sections: sections,
		cfg:      cfg,
		logger:   logger,
	}
}

// HandlePlay upgrades the connection and blocks on the game loop until the
// player stops, the socket drops, or a fetch failure aborts the session.
func (h *Handler) HandlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := server.WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	logger := h.logger.With().Str("session_id", uuid.NewString()).Logger()
	logger.Info().Msg("play session started")

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	sess := newSession(conn, h.cfg, logger)
	go sess.readPump(cancel)

	runner := game.NewRunner(func() game.QuestionStream {
		return game.NewStream(h.fetcher, h.tokens, h.sections)
	}, h.remarks, sess, h.cfg.EndScreenDelay, logger)

	if err := runner.Run(ctx); err != nil {
		if ctx.Err() == nil {
			sess.sendError("run_failed", err)
		}
		logger.Warn().Err(err).Msg("play session aborted")
		return
	}
	logger.Info().Msg("play session finished")
}
