package models

import (
	"time"
)

// User represents a user in the system
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Role         UserRole  `json:"role"`
	ProfilePhoto *string   `json:"profile_photo,omitempty"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRole distinguishes coaches from players and parents
type UserRole string

const (
	RoleCoach  UserRole = "coach"
	RoleParent UserRole = "parent"
	RolePlayer UserRole = "player"
)
