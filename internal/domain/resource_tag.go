package domain

import (
	"time"

	"github.com/google/uuid"
)

// Join rows are hard-deleted: a unique (resource, tag) pair cannot coexist
// with a soft-deleted tombstone of itself.
type ResourceTag struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ResourceID uuid.UUID `gorm:"type:uuid;not null;index:idx_resource_tag,unique,priority:1" json:"resource_id"`
	TagID      uuid.UUID `gorm:"type:uuid;not null;index:idx_resource_tag,unique,priority:2" json:"tag_id"`
	Tag        *Tag      `gorm:"foreignKey:TagID;references:ID" json:"tag,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ResourceTag) TableName() string { return "resource_tag" }
