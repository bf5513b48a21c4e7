package domain

import (
	"time"

	"github.com/google/uuid"
)

const (
	EntityTypeResource       = "resource"
	EntityTypeLearningModule = "learningmodule"
)

// UserSettings persists a user's default discovery filter per entity type.
// Facet id sets are stored as semicolon-delimited lists.
type UserSettings struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_settings,unique,priority:1" json:"user_id"`
	EntityType string    `gorm:"column:entity_type;not null;index:idx_user_settings,unique,priority:2" json:"entity_type"`

	SubjectIDs   string `gorm:"column:subject_ids" json:"subject_ids"`
	GradeIDs     string `gorm:"column:grade_ids" json:"grade_ids"`
	TagIDs       string `gorm:"column:tag_ids" json:"tag_ids"`
	CreatedByIDs string `gorm:"column:created_by_ids" json:"created_by_ids"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserSettings) TableName() string { return "user_settings" }
