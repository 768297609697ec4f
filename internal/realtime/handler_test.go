package realtime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/skillswap/internal/middleware"
	"github.com/DhavalSuthar-24/skillswap/pkg/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newStreamServer(t *testing.T, bus Bus, viewer uuid.UUID) *httptest.Server {
	t.Helper()
	r := gin.New()
	r.Use(func(c *gin.Context) {
		middleware.SetIdentity(c, middleware.Identity{UserID: viewer})
		c.Next()
	})
	RegisterRealtimeRoutes(r, NewHandler(bus, logging.Discard(), ""))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestStream_DeliversOnlyParticipantRows(t *testing.T) {
	bus := NewMemoryBus(16, nil)
	viewer, other := uuid.New(), uuid.New()
	srv := newStreamServer(t, bus, viewer)
	conn := dial(t, srv, "/realtime/swap_requests")

	require.Eventually(t, func() bool { return bus.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	ctx := context.Background()
	hidden := Event{Type: Insert, Table: "swap_requests", New: Row{"id": "1", "requester_id": other.String(), "provider_id": uuid.NewString()}}
	mine := Event{Type: Insert, Table: "swap_requests", New: Row{"id": "2", "requester_id": other.String(), "provider_id": viewer.String()}}
	require.NoError(t, bus.Publish(ctx, hidden))
	require.NoError(t, bus.Publish(ctx, mine))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, Insert, got.Type)
	assert.Equal(t, "2", got.New.ID())
}

func TestStream_PublicTableWithFilter(t *testing.T) {
	bus := NewMemoryBus(16, nil)
	srv := newStreamServer(t, bus, uuid.New())
	conn := dial(t, srv, "/realtime/skills?filter=category=eq.Music")

	require.Eventually(t, func() bool { return bus.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, Event{Type: Insert, Table: "skills", New: Row{"id": "a", "category": "Cooking"}}))
	require.NoError(t, bus.Publish(ctx, Event{Type: Update, Table: "skills", New: Row{"id": "b", "category": "Music"}}))

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var got Event
	require.NoError(t, conn.ReadJSON(&got))
	assert.Equal(t, "b", got.New.ID())
}

func TestStream_DisconnectReleasesSubscription(t *testing.T) {
	bus := NewMemoryBus(16, nil)
	srv := newStreamServer(t, bus, uuid.New())
	conn := dial(t, srv, "/realtime/announcements")

	require.Eventually(t, func() bool { return bus.Subscribers() == 1 }, 2*time.Second, 10*time.Millisecond)
	conn.Close()
	assert.Eventually(t, func() bool { return bus.Subscribers() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestStream_RejectsUnknownTableAndBadFilter(t *testing.T) {
	bus := NewMemoryBus(16, nil)
	srv := newStreamServer(t, bus, uuid.New())

	resp, err := http.Get(srv.URL + "/realtime/admins")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/realtime/skills?filter=name=like.go")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVisible(t *testing.T) {
	viewer := uuid.NewString()
	rating := Event{Type: Insert, New: Row{"rater_id": uuid.NewString(), "rated_id": viewer}}
	assert.True(t, Visible(Tables["ratings"], viewer, rating))
	assert.False(t, Visible(Tables["ratings"], uuid.NewString(), rating))
	assert.True(t, Visible(Tables["skills"], viewer, Event{}))

	deleted := Event{Type: Delete, Old: Row{"user_id": viewer}}
	assert.True(t, Visible(Tables["availability"], viewer, deleted))
}
