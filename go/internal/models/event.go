package models

import (
	"time"
)

// Event represents a scheduled team activity
type Event struct {
	ID              string             `json:"id"`
	TeamID          string             `json:"team_id"`
	Title           string             `json:"title" validate:"required"`
	EventType       EventType          `json:"event_type" validate:"required"`
	StartTime       time.Time          `json:"start_time" validate:"required"`
	EndTime         time.Time          `json:"end_time" validate:"required,gtfield=StartTime"`
	Location        *string            `json:"location,omitempty"`
	Latitude        *float64           `json:"latitude,omitempty"`
	Longitude       *float64           `json:"longitude,omitempty"`
	Description     *string            `json:"description,omitempty"`
	Recurrence      *RecurrencePattern `json:"recurrence,omitempty"`
	EquipmentNeeded []string           `json:"equipment_needed"`
	Notes           *string            `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// EventType classifies an event on the schedule
type EventType string

const (
	EventPractice EventType = "Practice"
	EventGame     EventType = "Game"
	EventMeeting  EventType = "Meeting"
	EventSocial   EventType = "Social"
	EventTraining EventType = "Training"
)

// RecurrencePattern describes how an event repeats
type RecurrencePattern struct {
	Frequency RecurrenceFrequency `json:"frequency"`
	Interval  int                 `json:"interval"`
	EndDate   *time.Time          `json:"end_date,omitempty"`
}

// RecurrenceFrequency is the unit of recurrence
type RecurrenceFrequency string

const (
	RecurDaily    RecurrenceFrequency = "daily"
	RecurWeekly   RecurrenceFrequency = "weekly"
	RecurBiweekly RecurrenceFrequency = "biweekly"
	RecurMonthly  RecurrenceFrequency = "monthly"
)

// EventAttendance is one player's RSVP for one event
type EventAttendance struct {
	ID        string           `json:"id"`
	EventID   string           `json:"event_id"`
	PlayerID  string           `json:"player_id"`
	Status    AttendanceStatus `json:"status"`
	Notes     *string          `json:"notes,omitempty"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// AttendanceStatus is the RSVP state for an event
type AttendanceStatus string

const (
	Attending    AttendanceStatus = "Attending"
	NotAttending AttendanceStatus = "Not Attending"
	Maybe        AttendanceStatus = "Maybe"
	Pending      AttendanceStatus = "Pending"
)
