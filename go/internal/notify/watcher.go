package notify

import (
	"context"

	"github.com/teamsync/teamsync/go/internal/models"
	"github.com/teamsync/teamsync/go/internal/store"
)

// Watcher wires the scheduler to the store: it observes a team's
// collections and derives reminders and immediate notifications from what
// lands there, regardless of whether an update came from a fetch, the
// action executor, or the push listener.
type Watcher struct {
	scheduler   *Scheduler
	selfID      string
	leadMinutes int
}

// NewWatcher creates a watcher. selfID is the current user: their own
// messages and announcements never notify. leadMinutes sets how far ahead
// of an event its reminder fires; zero or negative falls back to
// DefaultLeadMinutes.
func NewWatcher(scheduler *Scheduler, selfID string, leadMinutes int) *Watcher {
	if leadMinutes <= 0 {
		leadMinutes = DefaultLeadMinutes
	}
	return &Watcher{
		scheduler:   scheduler,
		selfID:      selfID,
		leadMinutes: leadMinutes,
	}
}

// WatchTeam subscribes to a team's events, messages and announcements.
// The first snapshot of messages and announcements is treated as history
// and only primes deduplication; arrivals after that notify. The returned
// function stops watching.
func (w *Watcher) WatchTeam(ctx context.Context, ts *store.TeamStore) func() {
	known := make(map[string]struct{})
	unsubEvents := ts.Events.Subscribe(func(events []models.Event) {
		current := make(map[string]struct{}, len(events))
		for _, event := range events {
			current[event.ID] = struct{}{}
			w.scheduler.ScheduleEventReminder(ctx, event, w.leadMinutes)
		}
		for id := range known {
			if _, ok := current[id]; !ok {
				w.scheduler.CancelEventReminder(id, w.leadMinutes)
			}
		}
		known = current
	})

	primedMessages := false
	unsubMessages := ts.Messages.Subscribe(func(messages []models.Message) {
		if !primedMessages {
			for _, msg := range messages {
				w.scheduler.MarkDelivered("message-" + msg.ID)
			}
			primedMessages = true
			return
		}
		for _, msg := range messages {
			if msg.SenderID == w.selfID {
				continue
			}
			w.scheduler.NotifyNewMessage(msg)
		}
	})

	primedAnnouncements := false
	unsubAnnouncements := ts.Announcements.Subscribe(func(announcements []models.Announcement) {
		if !primedAnnouncements {
			for _, a := range announcements {
				w.scheduler.MarkDelivered("announcement-" + a.ID)
			}
			primedAnnouncements = true
			return
		}
		for _, a := range announcements {
			if a.AuthorID == w.selfID {
				continue
			}
			w.scheduler.NotifyNewAnnouncement(a)
		}
	})

	return func() {
		unsubEvents()
		unsubMessages()
		unsubAnnouncements()
	}
}
