package realtime

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestFeed(t *testing.T) (*Feed, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	feed := NewFeed(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { feed.Close() })

	return feed, mr
}

// waitForEvent publishes the event until the subscription delivers one,
// absorbing the window between Subscribe returning and the Redis
// subscription being active.
func waitForEvent(t *testing.T, feed *Feed, sub *Subscription, event ChangeEvent) *ChangeEvent {
	t.Helper()

	timeout := time.After(3 * time.Second)
	tick := time.NewTicker(25 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case got := <-sub.Events():
			require.NotNil(t, got)
			return got
		case err := <-sub.Errors():
			t.Fatalf("unexpected subscription error: %v", err)
		case <-tick.C:
			require.NoError(t, feed.Publish(context.Background(), event))
		case <-timeout:
			t.Fatal("timed out waiting for change event")
		}
	}
}

func TestPublishSubscribeRoundtrip(t *testing.T) {
	feed, _ := setupTestFeed(t)

	sub, err := feed.Subscribe(context.Background(), "bookings")
	require.NoError(t, err)
	defer sub.Close()

	event := ChangeEvent{
		EventType: EventInsert,
		Table:     "bookings",
		New:       json.RawMessage(`{"id":"b1","status":"pending"}`),
	}

	got := waitForEvent(t, feed, sub, event)
	assert.Equal(t, EventInsert, got.EventType)
	assert.Equal(t, "bookings", got.Table)
	assert.JSONEq(t, `{"id":"b1","status":"pending"}`, string(got.New))
}

func TestPublishValidatesEvent(t *testing.T) {
	feed, _ := setupTestFeed(t)
	ctx := context.Background()

	err := feed.Publish(ctx, ChangeEvent{EventType: "UPSERT", Table: "bookings"})
	assert.Error(t, err)

	err = feed.Publish(ctx, ChangeEvent{EventType: EventInsert, Table: ""})
	assert.Error(t, err)

	// INSERT without a new record is unpublishable.
	err = feed.Publish(ctx, ChangeEvent{EventType: EventInsert, Table: "bookings"})
	assert.Error(t, err)

	// DELETE requires the old record, not the new one.
	err = feed.Publish(ctx, ChangeEvent{
		EventType: EventDelete,
		Table:     "bookings",
		New:       json.RawMessage(`{"id":"b1"}`),
	})
	assert.Error(t, err)
}

func TestSubscribeEmptyTable(t *testing.T) {
	feed, _ := setupTestFeed(t)

	_, err := feed.Subscribe(context.Background(), "")
	assert.Error(t, err)
}

func TestTablesAreIsolated(t *testing.T) {
	feed, _ := setupTestFeed(t)
	ctx := context.Background()

	sub, err := feed.Subscribe(ctx, "disputes")
	require.NoError(t, err)
	defer sub.Close()

	bookingEvent := ChangeEvent{
		EventType: EventInsert,
		Table:     "bookings",
		New:       json.RawMessage(`{"id":"b1"}`),
	}
	disputeEvent := ChangeEvent{
		EventType: EventInsert,
		Table:     "disputes",
		New:       json.RawMessage(`{"id":"d1"}`),
	}

	// Interleave both tables; only dispute events may arrive.
	timeout := time.After(3 * time.Second)
	tick := time.NewTicker(25 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case got := <-sub.Events():
			assert.Equal(t, "disputes", got.Table)
			return
		case <-tick.C:
			require.NoError(t, feed.Publish(ctx, bookingEvent))
			require.NoError(t, feed.Publish(ctx, disputeEvent))
		case <-timeout:
			t.Fatal("timed out waiting for dispute event")
		}
	}
}

func TestBadPayloadReportsError(t *testing.T) {
	feed, mr := setupTestFeed(t)

	sub, err := feed.Subscribe(context.Background(), "bookings")
	require.NoError(t, err)
	defer sub.Close()

	// Raw client bypasses Publish validation.
	raw := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer raw.Close()

	timeout := time.After(3 * time.Second)
	tick := time.NewTicker(25 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case err := <-sub.Errors():
			assert.Error(t, err)
			return
		case got := <-sub.Events():
			t.Fatalf("unexpected event: %+v", got)
		case <-tick.C:
			require.NoError(t, raw.Publish(context.Background(), "marketplace:bookings:events", "not json").Err())
		case <-timeout:
			t.Fatal("timed out waiting for subscription error")
		}
	}
}

func TestSubscriptionClose(t *testing.T) {
	feed, _ := setupTestFeed(t)

	sub, err := feed.Subscribe(context.Background(), "bookings")
	require.NoError(t, err)

	require.NoError(t, sub.Close())
	// Close is idempotent.
	require.NoError(t, sub.Close())

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "events channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after Close")
	}
}

func TestContextCancelStopsSubscription(t *testing.T) {
	feed, _ := setupTestFeed(t)

	ctx, cancel := context.WithCancel(context.Background())
	sub, err := feed.Subscribe(ctx, "bookings")
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-sub.Events():
		assert.False(t, ok, "events channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("events channel not closed after context cancel")
	}
}

func TestFilterMatches(t *testing.T) {
	event := &ChangeEvent{
		EventType: EventUpdate,
		Table:     "bookings",
		New:       json.RawMessage(`{"id":"b1","customer_id":"c1"}`),
	}

	assert.True(t, Filter{Column: "customer_id", Value: "c1"}.Matches(event))
	assert.False(t, Filter{Column: "customer_id", Value: "c2"}.Matches(event))
	assert.False(t, Filter{Column: "missing", Value: "c1"}.Matches(event))

	// DELETE events match against the old record.
	deleted := &ChangeEvent{
		EventType: EventDelete,
		Table:     "bookings",
		Old:       json.RawMessage(`{"id":"b1","customer_id":"c1"}`),
	}
	assert.True(t, Filter{Column: "customer_id", Value: "c1"}.Matches(deleted))

	// Undecodable payloads never match.
	garbage := &ChangeEvent{
		EventType: EventInsert,
		Table:     "bookings",
		New:       json.RawMessage(`not json`),
	}
	assert.False(t, Filter{Column: "id", Value: "b1"}.Matches(garbage))
}
