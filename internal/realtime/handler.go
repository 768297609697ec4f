package realtime

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
	"github.com/DhavalSuthar-24/skillswap/pkg/responses"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Streamable tables. The listed columns hold member ids; a row is delivered only
// when one of them is the viewer. No columns means every member may see the row.
var Tables = map[string][]string{
	"users":         nil,
	"skills":        nil,
	"user_skills":   nil,
	"announcements": nil,
	"availability":  {"user_id"},
	"swap_requests": {"requester_id", "provider_id"},
	"ratings":       {"rater_id", "rated_id"},
}

// Visible reports whether viewer may receive ev for a table with the given owner columns.
func Visible(ownerColumns []string, viewer string, ev Event) bool {
	if len(ownerColumns) == 0 {
		return true
	}
	row := ev.Record()
	for _, col := range ownerColumns {
		if v, ok := row[col]; ok && v != nil && v == viewer {
			return true
		}
	}
	return false
}

type Handler struct {
	bus      Bus
	log      *logging.Logger
	upgrader websocket.Upgrader
}

// NewHandler streams bus events over websockets. allowedOrigin empty accepts any origin.
func NewHandler(bus Bus, log *logging.Logger, allowedOrigin string) *Handler {
	return &Handler{
		bus: bus,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return allowedOrigin == "" || origin == "" || origin == allowedOrigin
			},
		},
	}
}

// RegisterRealtimeRoutes mounts the websocket stream.
func RegisterRealtimeRoutes(router gin.IRouter, h *Handler) {
	router.GET("/realtime/:table", h.Stream)
}

// Stream godoc
// @Summary Subscribe to table changes
// @Description Upgrades to a websocket and pushes {eventType, table, new, old} messages until the client disconnects. When the server closes with code 1013 the client should refetch and resubscribe.
// @Tags Realtime
// @Param table path string true "Table name"
// @Param filter query string false "Row filter, column=eq.value or column:neq:value"
// @Success 101 {object} Event
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Router /realtime/{table} [get]
// @Security BearerAuth
func (h *Handler) Stream(c *gin.Context) {
	table := c.Param("table")
	owners, ok := Tables[table]
	if !ok {
		responses.NotFound(c, "Table")
		return
	}
	filter, err := ParseFilter(c.Query("filter"))
	if err != nil {
		responses.SendError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	identity, ok := middleware.RequireIdentity(c)
	if !ok {
		return
	}
	viewer := identity.UserID.String()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	sub, err := h.bus.Subscribe(ctx, table, filter)
	if err != nil {
		responses.SendError(c, http.StatusServiceUnavailable, "Realtime is unavailable", nil)
		return
	}
	defer sub.Close()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	go readPump(conn, cancel)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, open := <-sub.Events():
			if !open {
				code, reason := websocket.CloseNormalClosure, "subscription closed"
				if errors.Is(sub.Err(), ErrSlowConsumer) {
					code, reason = websocket.CloseTryAgainLater, "fell behind, resubscribe"
				}
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(writeWait))
				return
			}
			if !Visible(owners, viewer, ev) {
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so control messages are processed, and cancels on disconnect.
func readPump(conn *websocket.Conn, cancel context.CancelFunc) {
	defer cancel()
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
