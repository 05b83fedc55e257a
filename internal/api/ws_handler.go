package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/jonesrussell/shopsearch/internal/logger"
	"github.com/jonesrussell/shopsearch/internal/notifier"
)

const (
	wsWriteTimeout     = 10 * time.Second
	wsCloseGracePeriod = time.Second
)

// WSHandler streams search job updates over a WebSocket connection.
type WSHandler struct {
	monitor  *notifier.Monitor
	upgrader websocket.Upgrader
	logger   logger.Interface
}

// NewWSHandler creates a new WebSocket handler.
func NewWSHandler(monitor *notifier.Monitor, log logger.Interface) *WSHandler {
	return &WSHandler{
		monitor: monitor,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The API is origin-agnostic, same as the REST endpoints.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: log,
	}
}

// Watch handles GET /ws/search/:id. It upgrades the connection and
// pushes updates until the job reaches a terminal state or the client
// disconnects.
func (h *WSHandler) Watch(c *gin.Context) {
	jobID := c.Param("id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid search ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			"search_id", jobID,
			"error", err,
		)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	// Drain client frames so disconnects are noticed; a read error
	// cancels the watch.
	go func() {
		defer cancel()
		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	sink := &wsSink{conn: conn}
	if watchErr := h.monitor.Watch(ctx, jobID, sink); watchErr != nil {
		h.logger.Debug("websocket watch ended",
			"search_id", jobID,
			"error", watchErr,
		)
		return
	}

	// Terminal update delivered; close the connection cleanly.
	deadline := time.Now().Add(wsCloseGracePeriod)
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		deadline,
	)
}

// wsSink adapts a WebSocket connection to the notifier sink.
type wsSink struct {
	conn *websocket.Conn
}

// Send writes one update as a JSON text frame.
func (s *wsSink) Send(_ context.Context, update *notifier.Update) error {
	if err := s.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return s.conn.WriteJSON(update)
}
