package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"calmwave/models"
	"calmwave/services/realtime"
	"calmwave/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newStreamServer(t *testing.T) (*httptest.Server, *realtime.Hub, *utils.TicketIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.UseLogger(zap.NewNop())

	hub := realtime.NewHub()
	tickets := utils.NewTicketIssuer("stream-secret", time.Minute)
	h := NewStreamHandler(hub, tickets)

	r := gin.New()
	r.GET("/api/stream", h.ServeStream)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		hub.Close()
		srv.Close()
	})
	return srv, hub, tickets
}

func TestServeStreamDeliversTopicEvents(t *testing.T) {
	srv, hub, tickets := newStreamServer(t)
	session := utils.Session{UID: "u1", Email: "u1@x.io", Role: models.RoleUser}
	topic := realtime.CheckInsTopic("u1")

	ticket, _, err := tickets.Issue(session, topic)
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/stream?ticket=" + ticket
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool { return hub.Subscribers(topic) == 1 }, time.Second, 10*time.Millisecond)
	hub.Publish(topic, "checkin.created", map[string]string{"emotion": "happy"})
	hub.Publish(realtime.CheckInsTopic("u2"), "checkin.created", nil)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev realtime.Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, topic, ev.Topic)
	assert.Equal(t, "checkin.created", ev.Type)
	assert.JSONEq(t, `{"emotion":"happy"}`, string(ev.Data))

	require.NoError(t, conn.Close())
	assert.Eventually(t, func() bool { return hub.Subscribers(topic) == 0 }, time.Second, 10*time.Millisecond)
}

func TestServeStreamRejectsBadTickets(t *testing.T) {
	srv, _, _ := newStreamServer(t)
	other := utils.NewTicketIssuer("other-secret", time.Minute)
	ticket, _, err := other.Issue(utils.Session{UID: "u1"}, realtime.CheckInsTopic("u1"))
	require.NoError(t, err)

	for _, q := range []string{"", "?ticket=garbage", "?ticket=" + ticket} {
		resp, err := http.Get(srv.URL + "/api/stream" + q)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, q)
	}
}

func TestServeStreamRejectsForeignTopic(t *testing.T) {
	srv, _, tickets := newStreamServer(t)
	// A ticket minted for another user's topic still fails authorization at connect time.
	ticket, _, err := tickets.Issue(utils.Session{UID: "u1", Role: models.RoleUser}, realtime.BookingsTopic("u2"))
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/api/stream?ticket=" + ticket)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
