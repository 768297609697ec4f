package realtime

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a real server only when REALTIME_TEST_REDIS_URL is set.
func TestRedisBus_RoundTrip(t *testing.T) {
	url := os.Getenv("REALTIME_TEST_REDIS_URL")
	if url == "" {
		t.Skip("REALTIME_TEST_REDIS_URL not set")
	}

	bus, err := NewRedisBusFromURL(url, nil, nil)
	require.NoError(t, err)
	defer bus.Close()

	table := "test_" + uuid.NewString()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sub, err := bus.Subscribe(ctx, table, Filter{Column: "status", Op: OpEq, Value: "accepted"})
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, bus.Publish(ctx, Event{Type: Update, Table: table, New: Row{"id": "1", "status": "rejected"}}))
	require.NoError(t, bus.Publish(ctx, Event{Type: Update, Table: table, New: Row{"id": "2", "status": "accepted"}}))

	select {
	case ev := <-sub.Events():
		assert.Equal(t, "2", ev.New.ID())
	case <-ctx.Done():
		t.Fatal("no event received")
	}
}
