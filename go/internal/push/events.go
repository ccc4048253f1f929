package push

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/teamsync/teamsync/go/internal/models"
)

// PushEvent is the envelope for every realtime event from the backend
type PushEvent struct {
	ID        string          `json:"id"`
	TeamID    string          `json:"team_id"`
	Type      EventType       `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// EventType tags the payload inside a push envelope
type EventType string

const (
	EventTypeMessageCreated      EventType = "MessageCreated"
	EventTypeAnnouncementCreated EventType = "AnnouncementCreated"
	EventTypeEventCreated        EventType = "EventCreated"
	EventTypeEventUpdated        EventType = "EventUpdated"
	EventTypeEventDeleted        EventType = "EventDeleted"
	EventTypeAttendanceRequested EventType = "AttendanceRequested"
)

type MessageCreatedPayload struct {
	Message models.Message `json:"message"`
}

type AnnouncementCreatedPayload struct {
	Announcement models.Announcement `json:"announcement"`
}

type EventCreatedPayload struct {
	Event models.Event `json:"event"`
}

type EventUpdatedPayload struct {
	Event models.Event `json:"event"`
}

type EventDeletedPayload struct {
	EventID string `json:"event_id"`
}

type AttendanceRequestedPayload struct {
	Event      models.Event           `json:"event"`
	Attendance models.EventAttendance `json:"attendance"`
}

// ParseEventPayload parses event data into the appropriate payload struct
func ParseEventPayload(event *PushEvent) (interface{}, error) {
	switch event.Type {
	case EventTypeMessageCreated:
		var payload MessageCreatedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeAnnouncementCreated:
		var payload AnnouncementCreatedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeEventCreated:
		var payload EventCreatedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeEventUpdated:
		var payload EventUpdatedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeEventDeleted:
		var payload EventDeletedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	case EventTypeAttendanceRequested:
		var payload AttendanceRequestedPayload
		if err := json.Unmarshal(event.Data, &payload); err != nil {
			return nil, err
		}
		return payload, nil

	default:
		return nil, fmt.Errorf("unknown push event type: %s", event.Type)
	}
}
