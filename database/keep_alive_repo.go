package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/folio-labs/portfolio-backend/models"
)

type KeepAliveRepo struct {
	db *gorm.DB
}

func NewKeepAliveRepo(db *gorm.DB) *KeepAliveRepo {
	return &KeepAliveRepo{db}
}

// Add inserts one sentinel row
func (r *KeepAliveRepo) Add(entry *models.KeepAliveLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	return r.db.Create(entry).Error
}

// DeleteOlderThan prunes sentinel rows created before the cutoff and
// reports how many were removed
func (r *KeepAliveRepo) DeleteOlderThan(cutoff time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", cutoff).Delete(&models.KeepAliveLog{})
	return result.RowsAffected, result.Error
}

// Count returns how many sentinel rows remain
func (r *KeepAliveRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.KeepAliveLog{}).Count(&count).Error
	return count, err
}
