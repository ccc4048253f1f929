package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/teamsync/teamsync/go/internal/models"
)

// DefaultLeadMinutes is how far ahead of an event the reminder fires.
const DefaultLeadMinutes = 60

// Scheduler derives local notifications from store content. Event
// reminders are deduplicated per (eventID, leadMinutes); immediate
// notifications are deduplicated per entity id.
type Scheduler struct {
	clock    clockwork.Clock
	delivery Delivery

	mu                 sync.Mutex
	timers             map[string]*pendingReminder
	scheduledFor       map[string]time.Time
	delivered          map[string]bool
	permissionReported bool
}

// pendingReminder pairs a timer with a cancel channel so cancelling also
// releases the goroutine waiting on the timer.
type pendingReminder struct {
	timer  clockwork.Timer
	cancel chan struct{}
}

func NewScheduler(clock clockwork.Clock, delivery Delivery) *Scheduler {
	return &Scheduler{
		clock:        clock,
		delivery:     delivery,
		timers:       make(map[string]*pendingReminder),
		scheduledFor: make(map[string]time.Time),
		delivered:    make(map[string]bool),
	}
}

func reminderID(eventID string, leadMinutes int) string {
	return fmt.Sprintf("event-%s-%dm", eventID, leadMinutes)
}

// ScheduleEventReminder schedules at most one reminder per
// (eventID, leadMinutes). Rescheduling with a changed start time cancels
// the prior timer first; rescheduling with the same start time is a no-op.
// Events that already started are not scheduled.
func (s *Scheduler) ScheduleEventReminder(ctx context.Context, event models.Event, leadMinutes int) {
	id := reminderID(event.ID, leadMinutes)

	if !event.StartTime.After(s.clock.Now()) {
		s.CancelEventReminder(event.ID, leadMinutes)
		return
	}

	trigger := event.StartTime.Add(-time.Duration(leadMinutes) * time.Minute)

	s.mu.Lock()
	if prior, ok := s.scheduledFor[id]; ok && prior.Equal(trigger) {
		s.mu.Unlock()
		log.Debug().Str("reminder_id", id).Msg("reminder already scheduled for this trigger time")
		return
	}
	if existing, ok := s.timers[id]; ok {
		s.cancelLocked(id, existing)
		log.Debug().Str("reminder_id", id).Msg("replaced reminder for rescheduled event")
	}
	s.scheduledFor[id] = trigger

	n := Notification{
		ID:    id,
		Title: event.Title,
		Body:  fmt.Sprintf("Your %s starts in %d minutes", event.EventType, leadMinutes),
		Sound: true,
		Payload: map[string]string{
			"type":    TypeEventReminder,
			"eventId": event.ID,
			"teamId":  event.TeamID,
		},
	}

	duration := trigger.Sub(s.clock.Now())
	if duration <= 0 {
		// Reminder point already passed but the event is still ahead.
		s.mu.Unlock()
		s.deliver(n)
		return
	}

	pending := &pendingReminder{
		timer:  s.clock.NewTimer(duration),
		cancel: make(chan struct{}),
	}
	s.timers[id] = pending
	s.mu.Unlock()

	go func() {
		select {
		case <-pending.timer.Chan():
			s.mu.Lock()
			if s.timers[id] == pending {
				delete(s.timers, id)
				delete(s.scheduledFor, id)
			}
			s.mu.Unlock()
			s.deliver(n)
		case <-pending.cancel:
		case <-ctx.Done():
			s.mu.Lock()
			if s.timers[id] == pending {
				s.cancelLocked(id, pending)
			}
			s.mu.Unlock()
		}
	}()

	log.Debug().
		Str("reminder_id", id).
		Time("trigger", trigger).
		Dur("in", duration).
		Msg("event reminder scheduled")
}

// CancelEventReminder cancels a pending reminder, if any.
func (s *Scheduler) CancelEventReminder(eventID string, leadMinutes int) {
	id := reminderID(eventID, leadMinutes)

	s.mu.Lock()
	defer s.mu.Unlock()

	if pending, ok := s.timers[id]; ok {
		s.cancelLocked(id, pending)
		log.Debug().Str("reminder_id", id).Msg("reminder cancelled")
	}
}

// cancelLocked stops a pending reminder and releases its goroutine.
// Callers hold s.mu.
func (s *Scheduler) cancelLocked(id string, pending *pendingReminder) {
	stopAndDrainTimer(pending.timer)
	close(pending.cancel)
	delete(s.timers, id)
	delete(s.scheduledFor, id)
}

// NotifyNewMessage delivers an immediate notification for a message,
// at most once per message id.
func (s *Scheduler) NotifyNewMessage(msg models.Message) {
	s.deliverOnce(Notification{
		ID:    "message-" + msg.ID,
		Title: msg.SenderName,
		Body:  msg.Content,
		Sound: true,
		Payload: map[string]string{
			"type":      TypeMessage,
			"messageId": msg.ID,
			"teamId":    msg.TeamID,
		},
	})
}

// NotifyNewAnnouncement delivers an immediate notification for an
// announcement, at most once per announcement id. Low and Medium
// priorities are silent.
func (s *Scheduler) NotifyNewAnnouncement(a models.Announcement) {
	s.deliverOnce(Notification{
		ID:    "announcement-" + a.ID,
		Title: a.Title,
		Body:  a.Content,
		Sound: a.Priority.Audible(),
		Payload: map[string]string{
			"type":           TypeAnnouncement,
			"announcementId": a.ID,
			"teamId":         a.TeamID,
			"priority":       string(a.Priority),
		},
	})
}

// NotifyAttendanceRequest asks the user to confirm attendance for an event,
// at most once per event id.
func (s *Scheduler) NotifyAttendanceRequest(event models.Event) {
	s.deliverOnce(Notification{
		ID:    "attendance-" + event.ID,
		Title: "Attendance Needed",
		Body:  fmt.Sprintf("Please confirm your attendance for %s", event.Title),
		Sound: true,
		Payload: map[string]string{
			"type":    TypeAttendanceRequest,
			"eventId": event.ID,
			"teamId":  event.TeamID,
		},
	})
}

// MarkDelivered suppresses future delivery for a notification id without
// delivering anything. Used to prime the dedup set with historical items.
func (s *Scheduler) MarkDelivered(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delivered[id] = true
}

// PendingCount returns the number of reminders waiting to fire.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// ClearAll cancels every pending reminder.
func (s *Scheduler) ClearAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, pending := range s.timers {
		s.cancelLocked(id, pending)
	}
}

func (s *Scheduler) deliverOnce(n Notification) {
	s.mu.Lock()
	if s.delivered[n.ID] {
		s.mu.Unlock()
		return
	}
	s.delivered[n.ID] = true
	s.mu.Unlock()

	s.deliver(n)
}

func (s *Scheduler) deliver(n Notification) {
	err := s.delivery.Deliver(n)
	if err == nil {
		s.mu.Lock()
		s.delivered[n.ID] = true
		s.mu.Unlock()
		return
	}

	if errors.Is(err, ErrPermissionDenied) {
		s.mu.Lock()
		reported := s.permissionReported
		s.permissionReported = true
		s.mu.Unlock()
		if !reported {
			log.Warn().Msg("notification permission denied, local notifications disabled for the session")
		}
		return
	}

	log.Error().Err(err).Str("notification_id", n.ID).Msg("failed to deliver notification")
}

// stopAndDrainTimer safely stops a timer and drains its channel so the
// waiting goroutine does not leak a fire.
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
