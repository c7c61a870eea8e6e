package models

import (
	"time"

	"github.com/google/uuid"
)

// Contact submission statuses. Transitions are admin-driven:
// new -> read -> responded.
const (
	ContactStatusNew       = "new"
	ContactStatusRead      = "read"
	ContactStatusResponded = "responded"
)

// ValidContactStatus reports whether s is one of the three named statuses.
func ValidContactStatus(s string) bool {
	return s == ContactStatusNew || s == ContactStatusRead || s == ContactStatusResponded
}

// Contact represents a contact-form submission
type Contact struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	FullName     string    `json:"full_name" db:"full_name" gorm:"type:text;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;index"`
	PhoneNumber  *string   `json:"phone_number,omitempty" db:"phone_number" gorm:"type:text"`
	Organization *string   `json:"organization,omitempty" db:"organization" gorm:"type:text"`
	Subject      string    `json:"subject" db:"subject" gorm:"type:text;not null"`
	Message      string    `json:"message" db:"message" gorm:"type:text;not null"`
	IPAddress    string    `json:"ip_address,omitempty" db:"ip_address" gorm:"type:text"`
	Status       string    `json:"status" db:"status" gorm:"type:text;not null;default:new;index"`
	CreatedAt    time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null"`
}
