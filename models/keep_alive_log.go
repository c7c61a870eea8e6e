package models

import (
	"time"

	"github.com/google/uuid"
)

// KeepAliveLog carries no business meaning. Rows exist solely to register
// write activity against the database so the hosting provider's inactivity
// timer never fires.
type KeepAliveLog struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Note      string    `json:"note" db:"note" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at" db:"created_at" gorm:"type:timestamp;not null;index"`
}
