package database

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/folio-labs/portfolio-backend/models"
)

type PasswordResetRepo struct {
	db *gorm.DB
}

func NewPasswordResetRepo(db *gorm.DB) *PasswordResetRepo {
	return &PasswordResetRepo{db}
}

// Add stores a new reset token row
func (r *PasswordResetRepo) Add(token *models.PasswordResetToken) error {
	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	return r.db.Create(token).Error
}

// FindByTokenHash returns the row matching a hashed token value
func (r *PasswordResetRepo) FindByTokenHash(tokenHash string) (*models.PasswordResetToken, error) {
	var token models.PasswordResetToken
	err := r.db.First(&token, "token_hash = ?", tokenHash).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// Consume marks a token as used at time now. The used_at guard in the WHERE
// clause makes consumption exactly-once under concurrent confirms.
func (r *PasswordResetRepo) Consume(id uuid.UUID, now time.Time) error {
	result := r.db.Model(&models.PasswordResetToken{}).
		Where("id = ? AND used_at IS NULL", id).
		Update("used_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteExpired removes rows whose expiry has passed
func (r *PasswordResetRepo) DeleteExpired(now time.Time) (int64, error) {
	result := r.db.Where("expires_at < ?", now).Delete(&models.PasswordResetToken{})
	return result.RowsAffected, result.Error
}
