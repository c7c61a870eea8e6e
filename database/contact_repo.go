package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/folio-labs/portfolio-backend/models"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// FindAll returns all contact submissions, newest first
func (r *ContactRepo) FindAll() ([]*models.Contact, error) {
	var contacts []*models.Contact
	err := r.db.Order("created_at DESC").Find(&contacts).Error
	return contacts, err
}

// FindByStatus returns all contact submissions with the given status, newest first
func (r *ContactRepo) FindByStatus(status string) ([]*models.Contact, error) {
	var contacts []*models.Contact
	err := r.db.Where("status = ?", status).Order("created_at DESC").Find(&contacts).Error
	return contacts, err
}

// FindByID returns a contact submission by its ID
func (r *ContactRepo) FindByID(id uuid.UUID) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// Add inserts a new contact submission into the database
func (r *ContactRepo) Add(contact *models.Contact) error {
	if contact.ID == uuid.Nil {
		contact.ID = uuid.New()
	}
	return r.db.Create(contact).Error
}

// UpdateStatus changes the status of an existing submission. Statuses are
// admin-driven; validity is checked at the handler.
func (r *ContactRepo) UpdateStatus(id uuid.UUID, status string) error {
	result := r.db.Model(&models.Contact{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountByStatus returns how many submissions carry the given status
func (r *ContactRepo) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Contact{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
