package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/domain"
)

func AutoMigrateAll(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Subject{},
		&domain.Grade{},
		&domain.Tag{},
		&domain.Resource{},
		&domain.LearningModule{},
		&domain.ResourceTag{},
		&domain.LearningModuleTag{},
		&domain.ResourceVote{},
		&domain.LearningModuleVote{},
		&domain.UserResource{},
		&domain.UserLearningModule{},
		&domain.ResourceModuleMapping{},
		&domain.UserSettings{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

func (s *PostgresService) AutoMigrateAll() error {
	return AutoMigrateAll(s.db)
}
