package models

import (
	"time"
)

// Message is a team chat message. Messages are append-only: once created
// they are never mutated, only read.
type Message struct {
	ID          string       `json:"id"`
	SenderID    string       `json:"sender_id"`
	SenderName  string       `json:"sender_name"`
	TeamID      string       `json:"team_id"`
	Content     string       `json:"content" validate:"required"`
	MessageType MessageType  `json:"message_type"`
	Attachments []Attachment `json:"attachments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// MessageType classifies message content
type MessageType string

const (
	MessageText  MessageType = "text"
	MessageImage MessageType = "image"
	MessageVideo MessageType = "video"
	MessageVoice MessageType = "voice"
)

// Attachment is a file attached to a message
type Attachment struct {
	ID        string `json:"id"`
	MessageID string `json:"message_id"`
	URL       string `json:"url"`
	Type      string `json:"type"`
	Size      int    `json:"size"`
}

// Announcement is a team-wide notice with a priority level
type Announcement struct {
	ID         string               `json:"id"`
	TeamID     string               `json:"team_id"`
	Title      string               `json:"title"`
	Content    string               `json:"content"`
	AuthorID   string               `json:"author_id"`
	AuthorName string               `json:"author_name"`
	Priority   AnnouncementPriority `json:"priority"`
	CreatedAt  time.Time            `json:"created_at"`
	ExpiresAt  *time.Time           `json:"expires_at,omitempty"`
	Read       bool                 `json:"read"`
}

// AnnouncementPriority orders announcements by urgency
type AnnouncementPriority string

const (
	PriorityLow    AnnouncementPriority = "Low"
	PriorityMedium AnnouncementPriority = "Medium"
	PriorityHigh   AnnouncementPriority = "High"
	PriorityUrgent AnnouncementPriority = "Urgent"
)

// Audible reports whether a notification for this priority should play a
// sound. Low and Medium announcements are delivered silently.
func (p AnnouncementPriority) Audible() bool {
	return p == PriorityHigh || p == PriorityUrgent
}
