package models

import "time"

// Volunteer is an individual account that browses and applies to events.
type Volunteer struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Phone        string    `json:"phone" db:"phone"`
	Bio          string    `json:"bio" db:"bio"`
	Skills       []string  `json:"skills" db:"skills"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
