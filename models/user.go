package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an identity record in the user store.
// The identity embedded into a token (ID, Email, Name) is immutable once
// issued; the authoritative copy lives here.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// NewUser creates a new User instance
func NewUser(email, name, passwordHash string) *User {
	now := time.Now()
	return &User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Identity is the view of a user that rides inside a token. It carries no
// credential material and never changes for the lifetime of the token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Identity returns the token-embeddable view of the user
func (u *User) Identity() Identity {
	return Identity{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
	}
}
