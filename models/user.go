package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an admin account. Rows are created out-of-band (or seeded
// at startup); the API never exposes registration.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null"`
}
