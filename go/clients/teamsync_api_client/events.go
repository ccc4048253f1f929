package teamsync_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/teamsync/teamsync/go/internal/models"
)

func (c *TeamSyncApiClient) FetchEvents(ctx context.Context, teamID string) ([]models.Event, error) {
	body, err := c.Get(ctx, fmt.Sprintf(EventsEndpoint, teamID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	var events []models.Event
	if err := json.Unmarshal(body, &events); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}
	return events, nil
}

func (c *TeamSyncApiClient) FetchEvent(ctx context.Context, teamID, eventID string) (*models.Event, error) {
	body, err := c.Get(ctx, fmt.Sprintf(EventsEndpoint+"/%s", teamID, eventID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch event %s: %w", eventID, err)
	}

	var event models.Event
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}

func (c *TeamSyncApiClient) CreateEvent(ctx context.Context, teamID string, event models.Event) (*models.Event, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	body, err := c.Post(ctx, fmt.Sprintf(EventsEndpoint, teamID), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	var created models.Event
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &created, nil
}

func (c *TeamSyncApiClient) UpdateEvent(ctx context.Context, teamID string, event models.Event) (*models.Event, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	body, err := c.Put(ctx, fmt.Sprintf(EventsEndpoint+"/%s", teamID, event.ID), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to update event %s: %w", event.ID, err)
	}

	var updated models.Event
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &updated, nil
}

func (c *TeamSyncApiClient) DeleteEvent(ctx context.Context, teamID, eventID string) error {
	if _, err := c.Delete(ctx, fmt.Sprintf(EventsEndpoint+"/%s", teamID, eventID)); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	return nil
}

func (c *TeamSyncApiClient) FetchAttendance(ctx context.Context, teamID, eventID string) ([]models.EventAttendance, error) {
	body, err := c.Get(ctx, fmt.Sprintf(AttendanceEndpoint, teamID, eventID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch attendance: %w", err)
	}

	var attendance []models.EventAttendance
	if err := json.Unmarshal(body, &attendance); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attendance: %w", err)
	}
	return attendance, nil
}

func (c *TeamSyncApiClient) UpdateAttendance(ctx context.Context, teamID, eventID string, attendance models.EventAttendance) (*models.EventAttendance, error) {
	payload, err := json.Marshal(attendance)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal attendance: %w", err)
	}

	body, err := c.Put(ctx, fmt.Sprintf(AttendanceEndpoint+"/%s", teamID, eventID, attendance.PlayerID), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to update attendance: %w", err)
	}

	var updated models.EventAttendance
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attendance: %w", err)
	}
	return &updated, nil
}
