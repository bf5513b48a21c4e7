package domain

import (
	"time"

	"github.com/google/uuid"
)

// A vote is presence/absence, never a counter: the unique index keeps at
// most one row per (entity, user) pair even under concurrent upvotes.
type ResourceVote struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResourceID uuid.UUID `gorm:"type:uuid;not null;index:idx_resource_vote,unique,priority:1" json:"resource_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_resource_vote,unique,priority:2" json:"user_id"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ResourceVote) TableName() string { return "resource_vote" }

type LearningModuleVote struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearningModuleID uuid.UUID `gorm:"type:uuid;not null;index:idx_learning_module_vote,unique,priority:1" json:"learning_module_id"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index:idx_learning_module_vote,unique,priority:2" json:"user_id"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (LearningModuleVote) TableName() string { return "learning_module_vote" }
