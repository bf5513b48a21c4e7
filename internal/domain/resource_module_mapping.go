package domain

import (
	"time"

	"github.com/google/uuid"
)

type ResourceModuleMapping struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearningModuleID uuid.UUID `gorm:"type:uuid;not null;index:idx_resource_module_mapping,unique,priority:1" json:"learning_module_id"`
	ResourceID       uuid.UUID `gorm:"type:uuid;not null;index:idx_resource_module_mapping,unique,priority:2" json:"resource_id"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ResourceModuleMapping) TableName() string { return "resource_module_mapping" }
