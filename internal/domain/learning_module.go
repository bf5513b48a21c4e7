package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LearningModule is a curated bundle of resources sharing the same facet
// metadata shape as Resource, with a many-to-many mapping to resources.
type LearningModule struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title       string    `gorm:"column:title;not null" json:"title"`
	Description string    `gorm:"column:description;type:text" json:"description"`

	SubjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"subject_id"`
	Subject   *Subject  `gorm:"foreignKey:SubjectID;references:ID" json:"subject,omitempty"`
	GradeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"grade_id"`
	Grade     *Grade    `gorm:"foreignKey:GradeID;references:ID" json:"grade,omitempty"`

	ImageURL    string         `gorm:"column:image_url" json:"image_url,omitempty"`
	Attachments datatypes.JSON `gorm:"column:attachments;type:jsonb" json:"attachments,omitempty"`

	CreatedByID uuid.UUID  `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID;references:ID" json:"created_by,omitempty"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by_id,omitempty"`

	CreatedAt time.Time      `gorm:"column:created_at;not null;default:now();index" json:"created_at"`
	UpdatedAt *time.Time     `gorm:"column:updated_at;autoUpdateTime:false" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearningModule) TableName() string { return "learning_module" }
