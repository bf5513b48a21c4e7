package domain

import (
	"time"

	"github.com/google/uuid"
)

// Saved-list membership. Unlike votes, a duplicate save is surfaced to the
// caller as a conflict, so the unique index doubles as the detection point.
type UserResource struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_resource,unique,priority:1" json:"user_id"`
	ResourceID uuid.UUID `gorm:"type:uuid;not null;index:idx_user_resource,unique,priority:2" json:"resource_id"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (UserResource) TableName() string { return "user_resource" }

type UserLearningModule struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index:idx_user_learning_module,unique,priority:1" json:"user_id"`
	LearningModuleID uuid.UUID `gorm:"type:uuid;not null;index:idx_user_learning_module,unique,priority:2" json:"learning_module_id"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (UserLearningModule) TableName() string { return "user_learning_module" }
