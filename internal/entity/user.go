package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an inspector account from the remote users table.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the explicit acting-user context threaded through the
// orchestrator and sync calls. A zero Session is not valid.
type Session struct {
	User     User      `json:"user"`
	IssuedAt time.Time `json:"issued_at"`
}

// Valid reports whether the session carries an authenticated inspector.
func (s Session) Valid() bool {
	return s.User.ID != uuid.Nil
}
