package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/DSEENAIAH/campus-preparation-backend/internal/config"
	"github.com/DSEENAIAH/campus-preparation-backend/internal/middleware"
	ws "github.com/DSEENAIAH/campus-preparation-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams freshly scored submissions to connected admins.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// ResultsMonitorStream godoc
// WS /ws/v1/admin/results/monitor
// Upgrades to WebSocket and relays every scored submission as it lands.
func (h *WSHandler) ResultsMonitorStream(c *gin.Context) {
	admin := middleware.GetAdmin(c)
	if admin == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("admin", admin.Username).Logger()
	wsLog.Info().Msg("Monitor connected")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub := h.rdb.Subscribe(ctx, config.CacheKey.ResultsMonitorChannel())
	defer sub.Close()

	// All outbound frames funnel through one pump; the relay goroutine and
	// the read loop below must never write to the connection directly.
	writer := ws.NewWriter(conn)
	defer writer.Stop()

	// Relay scored submissions until the subscription or connection dies.
	go func() {
		defer cancel()
		for msg := range sub.Channel() {
			event := ws.ResultEvent{
				Event:   ws.EventResult,
				Payload: json.RawMessage(msg.Payload),
			}
			if !writer.Send(event) {
				wsLog.Debug().Msg("Relay stopped, writer gone")
				return
			}
		}
	}()

	for {
		var msg ws.RequestEnvelope
		if err := ws.ReadJSON(conn, &msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			return
		}

		switch msg.Action {
		case ws.ActionPing:
			if !writer.Send(ws.PongResponse{Event: ws.EventPong}) {
				return
			}
		default:
			writer.Send(ws.ErrorResponse{Event: ws.EventError, Error: "unknown action"})
		}
	}
}
