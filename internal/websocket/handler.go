package websocket

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"pdxpulse/internal/config"
	"pdxpulse/internal/infrastructure"
)

// Handler upgrades HTTP requests and attaches the connection to a hub.
type Handler struct {
	hub      *Hub
	cfg      config.WebSocketConfig
	origins  []string
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHandler creates the websocket endpoint. Requests without an Origin
// header, same-host origins and origins listed in allowedOrigins ("*" allows
// all) are accepted.
func NewHandler(hub *Hub, cfg config.WebSocketConfig, allowedOrigins []string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}
	h := &Handler{
		hub:     hub,
		cfg:     cfg,
		origins: allowedOrigins,
		logger:  logger.With(slog.String("component", "websocket.handler")),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     h.checkOrigin,
		Error: func(w http.ResponseWriter, r *http.Request, status int, reason error) {
			h.logger.WarnContext(r.Context(), "WebSocket upgrade error",
				slog.Int("status", status),
				slog.String("reason", reason.Error()),
				slog.String("origin", r.Header.Get("Origin")))
			http.Error(w, http.StatusText(status), status)
		},
	}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || origin == "http://"+r.Host || origin == "https://"+r.Host {
		return true
	}
	for _, allowed := range h.origins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	h.logger.WarnContext(r.Context(), "WebSocket origin check - origin not allowed",
		slog.String("origin", origin),
		slog.Any("allowed_origins", h.origins))
	return false
}

// ServeHTTP upgrades the connection and starts the client pumps.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := infrastructure.EnsureTraceID(r.Context())
	traceID := infrastructure.GetTraceID(ctx)

	h.logger.InfoContext(ctx, "WebSocket upgrade request",
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("origin", r.Header.Get("Origin")),
		slog.String("user_agent", r.UserAgent()))

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader already replied.
		return
	}

	client := NewClient(h.hub, conn, h.cfg, traceID, h.logger)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
