package handlers

import (
	"net/http"
	"time"

	"calmwave/services/realtime"
	"calmwave/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Mobile clients send no Origin; tickets carry the authorization.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamHandler serves live topic updates over websockets.
type StreamHandler struct {
	Hub     *realtime.Hub
	Tickets *utils.TicketIssuer
}

func NewStreamHandler(hub *realtime.Hub, tickets *utils.TicketIssuer) *StreamHandler {
	return &StreamHandler{Hub: hub, Tickets: tickets}
}

type ticketRequest struct {
	Topic string `json:"topic" binding:"required"`
}

// TicketHandler issues a short-lived ticket for one topic the session may read.
func (h *StreamHandler) TicketHandler(c *gin.Context) {
	s, ok := currentSession(c)
	if !ok {
		return
	}
	var req ticketRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := realtime.Authorize(s, req.Topic); err != nil {
		utils.JSONError(c, http.StatusForbidden, "Topic not allowed", req.Topic)
		return
	}
	ticket, expires, err := h.Tickets.Issue(s, req.Topic)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to issue ticket", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ticket": ticket, "expiresAt": expires})
}

// ServeStream upgrades GET /api/stream?ticket=... and forwards the topic's events.
func (h *StreamHandler) ServeStream(c *gin.Context) {
	s, topic, err := h.Tickets.Validate(c.Query("ticket"))
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "Invalid ticket", "")
		return
	}
	if err := realtime.Authorize(s, topic); err != nil {
		utils.JSONError(c, http.StatusForbidden, "Topic not allowed", topic)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	sub := h.Hub.Subscribe(topic)
	logger := utils.GetLogger().With(zap.String("uid", s.UID), zap.String("topic", topic))
	logger.Debug("stream opened")

	done := make(chan struct{})
	go h.writeLoop(conn, sub, done, logger)

	// The read loop only watches for the client going away.
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	sub.Cancel()
	<-done
	logger.Debug("stream closed")
}

// writeLoop is the only writer on conn. It exits when the subscription ends or a write fails.
func (h *StreamHandler) writeLoop(conn *websocket.Conn, sub *realtime.Subscription, done chan<- struct{}, logger *zap.Logger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sub.Cancel()
		_ = conn.Close()
		close(done)
	}()

	for {
		select {
		case ev, ok := <-sub.Events():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				logger.Debug("stream write failed", zap.Error(err))
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
