package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teamsync/teamsync/go/internal/models"
	"github.com/teamsync/teamsync/go/internal/notify"
	"github.com/teamsync/teamsync/go/internal/store"
)

type capturingDelivery struct {
	mu            sync.Mutex
	notifications []notify.Notification
}

func (d *capturingDelivery) Deliver(n notify.Notification) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notifications = append(d.notifications, n)
	return nil
}

func (d *capturingDelivery) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.notifications)
}

func newTestListener(t *testing.T, envelopes []PushEvent) (*Listener, *store.Store, *capturingDelivery, chan string) {
	t.Helper()

	upgrader := websocket.Upgrader{}
	tokens := make(chan string, 1)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case tokens <- r.Header.Get("Authorization"):
		default:
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		for _, envelope := range envelopes {
			data, err := json.Marshal(envelope)
			require.NoError(t, err)
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		}

		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	t.Cleanup(server.Close)

	st := store.New()
	delivery := &capturingDelivery{}
	scheduler := notify.NewScheduler(clockwork.NewRealClock(), delivery)

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	listener := NewListener(DefaultListenerConfig(url, "push-token"), st, scheduler, clockwork.NewRealClock())
	return listener, st, delivery, tokens
}

func envelope(t *testing.T, teamID string, eventType EventType, payload interface{}) PushEvent {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return PushEvent{
		ID:        "push-1",
		TeamID:    teamID,
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func waitFor(t *testing.T, condition func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not reached")
}

func TestListener_SendsBearerToken(t *testing.T) {
	listener, _, _, tokens := newTestListener(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go listener.Run(ctx)

	select {
	case auth := <-tokens:
		assert.Equal(t, "Bearer push-token", auth)
	case <-time.After(2 * time.Second):
		t.Fatal("no connection arrived")
	}
}

func TestListener_AppliesPushedEventsToStore(t *testing.T) {
	envelopes := []PushEvent{
		envelope(t, "t1", EventTypeEventCreated, EventCreatedPayload{
			Event: models.Event{ID: "e1", Title: "Practice"},
		}),
		envelope(t, "t1", EventTypeMessageCreated, MessageCreatedPayload{
			Message: models.Message{ID: "m1", Content: "hello"},
		}),
		envelope(t, "t1", EventTypeEventDeleted, EventDeletedPayload{EventID: "e1"}),
	}
	listener, st, _, _ := newTestListener(t, envelopes)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go listener.Run(ctx)

	ts := st.Team("t1")
	waitFor(t, func() bool { return ts.Messages.Len() == 1 && ts.Events.Len() == 0 })

	msg, ok := ts.Messages.Get("m1")
	require.True(t, ok)
	assert.Equal(t, "hello", msg.Content)
}

func TestListener_AttendanceRequestNotifiesImmediately(t *testing.T) {
	envelopes := []PushEvent{
		envelope(t, "t1", EventTypeAttendanceRequested, AttendanceRequestedPayload{
			Event:      models.Event{ID: "e1", Title: "Saturday game"},
			Attendance: models.EventAttendance{ID: "att1", EventID: "e1"},
		}),
	}
	listener, st, delivery, _ := newTestListener(t, envelopes)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go listener.Run(ctx)

	waitFor(t, func() bool { return delivery.count() == 1 })

	_, ok := st.Team("t1").Attendance.Get("att1")
	assert.True(t, ok)
	assert.Contains(t, delivery.notifications[0].Body, "Saturday game")
}

func TestListener_BackoffRestartsAfterSuccessfulConnection(t *testing.T) {
	upgrader := websocket.Upgrader{}
	var conns atomic.Int32

	// Every connection is accepted and dropped immediately, so each
	// reconnect wait starts after a successful dial.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		conns.Add(1)
		conn.Close()
	}))
	t.Cleanup(server.Close)

	clock := clockwork.NewFakeClock()
	st := store.New()
	scheduler := notify.NewScheduler(clock, &capturingDelivery{})

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	config := DefaultListenerConfig(url, "push-token")
	listener := NewListener(config, st, scheduler, clock)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go listener.Run(ctx)

	waitFor(t, func() bool { return conns.Load() >= 1 })

	clock.BlockUntil(1)
	clock.Advance(config.InitialBackoff)
	waitFor(t, func() bool { return conns.Load() >= 2 })

	// A doubled backoff would still be waiting after this advance.
	clock.BlockUntil(1)
	clock.Advance(config.InitialBackoff)
	waitFor(t, func() bool { return conns.Load() >= 3 })
}

func TestListener_SkipsMalformedFrames(t *testing.T) {
	envelopes := []PushEvent{
		{ID: "bad", TeamID: "t1", Type: "Bogus", Data: json.RawMessage(`{}`)},
		envelope(t, "t1", EventTypeEventCreated, EventCreatedPayload{
			Event: models.Event{ID: "e1", Title: "Practice"},
		}),
	}
	listener, st, _, _ := newTestListener(t, envelopes)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go listener.Run(ctx)

	ts := st.Team("t1")
	waitFor(t, func() bool { return ts.Events.Len() == 1 })
}
