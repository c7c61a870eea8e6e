package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/folio-labs/portfolio-backend/models"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// FindAll returns all projects, published or not, in display order
func (r *ProjectRepo) FindAll() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order("display_order ASC, created_at DESC").Find(&projects).Error
	return projects, err
}

// FindPublished returns only published projects, display_order ascending
func (r *ProjectRepo) FindPublished() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Where("is_published = ?", true).
		Order("display_order ASC, created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindFeatured returns published projects flagged as featured, in the same
// order as the public list
func (r *ProjectRepo) FindFeatured() ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Where("is_published = ? AND is_featured = ?", true, true).
		Order("display_order ASC, created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// FindBySlug returns a project by its unique slug
func (r *ProjectRepo) FindBySlug(slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "slug = ?", slug).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// SlugTaken reports whether another project (excluding excludeID) already
// owns the slug. Soft-deleted rows keep their slug reserved.
func (r *ProjectRepo) SlugTaken(slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := r.db.Unscoped().Model(&models.Project{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	return r.db.Create(project).Error
}

// Update updates an existing project in the database
func (r *ProjectRepo) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete soft-deletes a project by id
func (r *ProjectRepo) Delete(id uuid.UUID) error {
	result := r.db.Delete(&models.Project{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
