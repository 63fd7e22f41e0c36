package http

import (
	"log/slog"
	"net/http"
	"strings"

	gorilla "github.com/gorilla/websocket"

	"retailcli/internal/config"
	ws "retailcli/internal/websocket"
)

// WebSocketHandler upgrades HTTP connections and hands them to the hub.
type WebSocketHandler struct {
	hub      *ws.Hub
	logger   *slog.Logger
	upgrader gorilla.Upgrader
}

// NewWebSocketHandler creates a websocket handler with origin checking
// against the configured allow list.
func NewWebSocketHandler(hub *ws.Hub, cfg *config.Config, logger *slog.Logger) *WebSocketHandler {
	allowed := cfg.Security.AllowedOrigins
	return &WebSocketHandler{
		hub:    hub,
		logger: logger.With(slog.String("component", "websocket_handler")),
		upgrader: gorilla.Upgrader{
			ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
			WriteBufferSize: cfg.WebSocket.WriteBufferSize,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(allowed) == 0 {
					return true
				}
				for _, o := range allowed {
					if o == "*" || strings.EqualFold(o, origin) {
						return true
					}
				}
				return false
			},
		},
	}
}

// ServeHTTP handles GET /ws
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "websocket upgrade failed",
			slog.String("error", err.Error()),
			slog.String("remote_addr", r.RemoteAddr),
		)
		return
	}
	ws.ServeWS(h.hub, conn)
}
