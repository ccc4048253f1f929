package models

import (
	"time"
)

// Team represents a sports team in the system
type Team struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Sport       string    `json:"sport"`
	AgeGroup    string    `json:"age_group"`
	CoachID     string    `json:"coach_id"`
	Description *string   `json:"description,omitempty"`
	MemberCount int       `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Player represents a roster member of a team
type Player struct {
	ID               string    `json:"id"`
	TeamID           string    `json:"team_id"`
	Name             string    `json:"name"`
	Age              int       `json:"age"`
	Position         string    `json:"position"`
	JerseyNumber     int       `json:"jersey_number"`
	Email            *string   `json:"email,omitempty"`
	Phone            *string   `json:"phone,omitempty"`
	EmergencyContact *string   `json:"emergency_contact,omitempty"`
	MedicalNotes     *string   `json:"medical_notes,omitempty"`
	PhotoURL         *string   `json:"photo_url,omitempty"`
	Active           bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
