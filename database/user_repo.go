package database

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/folio-labs/portfolio-backend/models"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByEmail returns a user by email (case-insensitive)
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", strings.ToLower(strings.TrimSpace(email))).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns a user by its ID
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Add inserts a new admin user
func (r *UserRepo) Add(user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return r.db.Create(user).Error
}

// UpdatePasswordHash replaces the stored password hash for a user
func (r *UserRepo) UpdatePasswordHash(id uuid.UUID, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Count returns how many admin users exist
func (r *UserRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}
