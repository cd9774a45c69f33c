package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-run/internal/config"
	"github.com/gokatarajesh/trivia-run/internal/logging"
)

// WSUpgrader handles WebSocket upgrades (configure CORS/security as needed).
var WSUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// TODO: implement proper origin checking for production
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NewHTTPServer wires base routes (health, metrics) plus the play endpoint.
// redisClient may be nil when the token cache is disabled.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, redisClient *redis.Client, playHandler http.HandlerFunc) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		ctx := logging.IntoContext(r.Context(), logger)
		if redisClient != nil {
			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.Error().Err(err).Msg("redis ping failed")
				http.Error(w, "upstream error", http.StatusBadGateway)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.HandleFunc("/ws/play", playHandler)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}
