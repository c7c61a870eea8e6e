package models

import (
	"time"

	"github.com/google/uuid"
)

// PasswordResetToken is a single-use credential for the password-reset
// flow. Only the SHA-256 of the raw token is stored; the raw value travels
// out-of-band in the reset email.
type PasswordResetToken struct {
	ID        uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	UserID    uuid.UUID  `json:"user_id" db:"user_id" gorm:"type:uuid;not null;index"`
	TokenHash string     `json:"-" db:"token_hash" gorm:"type:text;not null;uniqueIndex"`
	ExpiresAt time.Time  `json:"expires_at" db:"expires_at" gorm:"type:timestamp;not null"`
	UsedAt    *time.Time `json:"used_at,omitempty" db:"used_at" gorm:"type:timestamp"`
	CreatedAt time.Time  `json:"created_at" db:"created_at" gorm:"type:timestamp;not null"`
}

// Usable reports whether the token can still be consumed at time now.
func (t PasswordResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
