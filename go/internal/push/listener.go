package push

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/teamsync/teamsync/go/internal/notify"
	"github.com/teamsync/teamsync/go/internal/store"
)

// ListenerConfig holds connection tuning for the push channel
type ListenerConfig struct {
	URL            string
	Token          string
	WriteTimeout   time.Duration
	ReadTimeout    time.Duration
	PingInterval   time.Duration
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
}

// DefaultListenerConfig returns default push connection configuration
func DefaultListenerConfig(url, token string) ListenerConfig {
	return ListenerConfig{
		URL:            url,
		Token:          token,
		WriteTimeout:   10 * time.Second,
		ReadTimeout:    60 * time.Second,
		PingInterval:   30 * time.Second,
		InitialBackoff: time.Second,
		MaxBackoff:     30 * time.Second,
	}
}

// Listener keeps a WebSocket connection to the backend push endpoint and
// folds incoming events into the store. The store's subscribers (screens,
// notification watcher) see pushed changes the same way they see fetched
// ones.
type Listener struct {
	config    ListenerConfig
	store     *store.Store
	scheduler *notify.Scheduler
	clock     clockwork.Clock
	dialer    *websocket.Dialer
}

func NewListener(config ListenerConfig, st *store.Store, scheduler *notify.Scheduler, clock clockwork.Clock) *Listener {
	return &Listener{
		config:    config,
		store:     st,
		scheduler: scheduler,
		clock:     clock,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// Run connects and reads until ctx is cancelled, reconnecting with
// exponential backoff after any failure.
func (l *Listener) Run(ctx context.Context) {
	backoff := l.config.InitialBackoff

	for {
		if ctx.Err() != nil {
			return
		}

		connected, err := l.connectAndRead(ctx)
		if ctx.Err() != nil {
			return
		}
		if connected {
			// The dial succeeded, so the outage is fresh: start the
			// backoff ladder over.
			backoff = l.config.InitialBackoff
		}
		log.Warn().Err(err).Dur("backoff", backoff).Msg("push connection lost, reconnecting")

		select {
		case <-ctx.Done():
			return
		case <-l.clock.After(backoff):
		}

		backoff *= 2
		if backoff > l.config.MaxBackoff {
			backoff = l.config.MaxBackoff
		}
	}
}

func (l *Listener) connectAndRead(ctx context.Context) (bool, error) {
	header := http.Header{}
	header.Set("Authorization", "Bearer "+l.config.Token)

	conn, _, err := l.dialer.DialContext(ctx, l.config.URL, header)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	log.Info().Str("url", l.config.URL).Msg("push connection established")

	// Close the connection when ctx ends so the blocked read returns.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	go l.pingLoop(ctx, conn)

	conn.SetReadDeadline(time.Now().Add(l.config.ReadTimeout))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(l.config.ReadTimeout))
		return nil
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			return true, err
		}
		l.handleMessage(message)
		conn.SetReadDeadline(time.Now().Add(l.config.ReadTimeout))
	}
}

func (l *Listener) pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(l.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(l.config.WriteTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (l *Listener) handleMessage(message []byte) {
	var event PushEvent
	if err := json.Unmarshal(message, &event); err != nil {
		log.Error().Err(err).Msg("failed to decode push event envelope")
		return
	}

	payload, err := ParseEventPayload(&event)
	if err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("failed to parse push event payload")
		return
	}

	ts := l.store.Team(event.TeamID)

	switch p := payload.(type) {
	case MessageCreatedPayload:
		ts.Messages.Upsert(p.Message)

	case AnnouncementCreatedPayload:
		ts.Announcements.Upsert(p.Announcement)

	case EventCreatedPayload:
		ts.Events.Upsert(p.Event)

	case EventUpdatedPayload:
		ts.Events.Upsert(p.Event)

	case EventDeletedPayload:
		ts.Events.Remove(p.EventID)

	case AttendanceRequestedPayload:
		ts.Attendance.Upsert(p.Attendance)
		l.scheduler.NotifyAttendanceRequest(p.Event)
	}

	log.Debug().
		Str("type", string(event.Type)).
		Str("team_id", event.TeamID).
		Msg("push event applied")
}
