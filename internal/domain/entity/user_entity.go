package entity

import (
	"time"
)

// User is the aggregate root for the onboarding domain.
// Passwords are stored as bcrypt hashes in HashedPassword.
type User struct {
	ID             int64
	Email          string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
}
