package domain

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"column:name;uniqueIndex;not null" json:"name"`

	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (Subject) TableName() string { return "subject" }
