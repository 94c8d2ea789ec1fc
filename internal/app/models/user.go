package models

import (
	"time"
)

// User defines the account record behind every profile, based on the 'users' table.
// Exactly one role profile exists per user id; the role tag recorded here names
// which profile table owns the attributes.
type User struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
