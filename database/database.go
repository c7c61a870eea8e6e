package database

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/folio-labs/portfolio-backend/models"
)

type Database struct {
	contactRepo       *ContactRepo
	projectRepo       *ProjectRepo
	userRepo          *UserRepo
	passwordResetRepo *PasswordResetRepo
	keepAliveRepo     *KeepAliveRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		contactRepo:       NewContactRepo(db),
		projectRepo:       NewProjectRepo(db),
		userRepo:          NewUserRepo(db),
		passwordResetRepo: NewPasswordResetRepo(db),
		keepAliveRepo:     NewKeepAliveRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) PasswordResetRepo() *PasswordResetRepo {
	return d.passwordResetRepo
}

func (d Database) KeepAliveRepo() *KeepAliveRepo {
	return d.keepAliveRepo
}

// Migrate creates or updates the schema for every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Contact{},
		&models.Project{},
		&models.User{},
		&models.PasswordResetToken{},
		&models.KeepAliveLog{},
	)
}

// Ping verifies database reachability with a lightweight round trip. Used by
// the health check, so it must stay cheap.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.contactRepo.db.DB()
	if err != nil {
		return err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return sqlDB.PingContext(pingCtx)
}
