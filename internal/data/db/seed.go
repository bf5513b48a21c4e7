package db

import (
	_ "embed"
	"fmt"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/edushare/edushare-backend/internal/domain"
)

//go:embed reference_data.yaml
var referenceData []byte

type referenceSeed struct {
	Subjects []string `yaml:"subjects"`
	Grades   []string `yaml:"grades"`
}

// SeedReferenceData inserts the baseline subject and grade catalog. Names
// that already exist are left untouched, so re-running is safe.
func SeedReferenceData(db *gorm.DB) error {
	var seed referenceSeed
	if err := yaml.Unmarshal(referenceData, &seed); err != nil {
		return fmt.Errorf("parse reference data: %w", err)
	}

	subjects := make([]*domain.Subject, 0, len(seed.Subjects))
	for _, name := range seed.Subjects {
		subjects = append(subjects, &domain.Subject{ID: uuid.New(), Name: name})
	}
	if len(subjects) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&subjects).Error; err != nil {
			return fmt.Errorf("seed subjects: %w", err)
		}
	}

	grades := make([]*domain.Grade, 0, len(seed.Grades))
	for _, name := range seed.Grades {
		grades = append(grades, &domain.Grade{ID: uuid.New(), Name: name})
	}
	if len(grades) > 0 {
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).Create(&grades).Error; err != nil {
			return fmt.Errorf("seed grades: %w", err)
		}
	}

	return nil
}
