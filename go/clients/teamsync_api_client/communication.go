package teamsync_api_client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/teamsync/teamsync/go/internal/models"
)

func (c *TeamSyncApiClient) FetchMessages(ctx context.Context, teamID string) ([]models.Message, error) {
	body, err := c.Get(ctx, fmt.Sprintf(MessagesEndpoint, teamID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := json.Unmarshal(body, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	return messages, nil
}

// SendMessageRequest carries an outgoing message plus its delivery options.
type SendMessageRequest struct {
	Content     string             `json:"content"`
	MessageType models.MessageType `json:"message_type"`
	Recipients  []string           `json:"recipients"`
	SendEmail   bool               `json:"send_email"`
}

func (c *TeamSyncApiClient) SendMessage(ctx context.Context, teamID string, req SendMessageRequest) (*models.Message, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	body, err := c.Post(ctx, fmt.Sprintf(MessagesEndpoint, teamID), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var sent models.Message
	if err := json.Unmarshal(body, &sent); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &sent, nil
}

func (c *TeamSyncApiClient) FetchAnnouncements(ctx context.Context, teamID string) ([]models.Announcement, error) {
	body, err := c.Get(ctx, fmt.Sprintf(AnnouncementsEndpoint, teamID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch announcements: %w", err)
	}

	var announcements []models.Announcement
	if err := json.Unmarshal(body, &announcements); err != nil {
		return nil, fmt.Errorf("failed to unmarshal announcements: %w", err)
	}
	return announcements, nil
}

func (c *TeamSyncApiClient) MarkAnnouncementRead(ctx context.Context, teamID, announcementID string) error {
	endpoint := fmt.Sprintf(AnnouncementsEndpoint+"/%s/read", teamID, announcementID)
	if _, err := c.Put(ctx, endpoint, nil); err != nil {
		return fmt.Errorf("failed to mark announcement %s read: %w", announcementID, err)
	}
	return nil
}
