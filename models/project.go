package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project represents a portfolio case study following the
// Problem-Process-Impact-Results narrative structure.
type Project struct {
	ID           uuid.UUID                     `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string                        `json:"title" db:"title" gorm:"type:text;not null"`
	Slug         string                        `json:"slug" db:"slug" gorm:"type:text;not null;uniqueIndex"`
	Description  string                        `json:"description" db:"description" gorm:"type:text;not null"`
	Problem      string                        `json:"problem" db:"problem" gorm:"type:text"`
	Process      string                        `json:"process" db:"process" gorm:"type:text"`
	Impact       string                        `json:"impact" db:"impact" gorm:"type:text"`
	Results      string                        `json:"results" db:"results" gorm:"type:text"`
	Technologies datatypes.JSONSlice[string]   `json:"technologies" db:"technologies"`
	LiveDemoURL  *string                       `json:"live_demo_url,omitempty" db:"live_demo_url" gorm:"type:text"`
	GithubURL    *string                       `json:"github_url,omitempty" db:"github_url" gorm:"type:text"`
	DisplayOrder int                           `json:"display_order" db:"display_order" gorm:"type:integer;not null;default:0;index"`
	IsPublished  bool                          `json:"is_published" db:"is_published" gorm:"not null;default:false;index"`
	IsFeatured   bool                          `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	CreatedAt    time.Time                     `json:"created_at" db:"created_at" gorm:"type:timestamp;not null"`
	UpdatedAt    time.Time                     `json:"updated_at" db:"updated_at" gorm:"type:timestamp;not null"`
	DeletedAt    gorm.DeletedAt                `json:"-" db:"deleted_at" gorm:"index"`
}
