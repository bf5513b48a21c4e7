package discovery

import (
	"time"

	"github.com/google/uuid"
)

// ResourceRow is one raw joined row produced by the batched aggregation
// fetch: resource × tag join × vote. Scalar fields repeat across every row
// of the same resource; the nullable join columns vary. A resource with no
// tags or votes still yields one row with the join columns nil.
type ResourceRow struct {
	ID          uuid.UUID  `gorm:"column:id"`
	Title       string     `gorm:"column:title"`
	Description string     `gorm:"column:description"`
	SubjectID   uuid.UUID  `gorm:"column:subject_id"`
	SubjectName string     `gorm:"column:subject_name"`
	GradeID     uuid.UUID  `gorm:"column:grade_id"`
	GradeName   string     `gorm:"column:grade_name"`
	ImageURL    string     `gorm:"column:image_url"`
	LinkURL     string     `gorm:"column:link_url"`
	CreatedByID uuid.UUID  `gorm:"column:created_by_id"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`

	TagID      *uuid.UUID `gorm:"column:tag_id"`
	TagName    *string    `gorm:"column:tag_name"`
	VoteID     *uuid.UUID `gorm:"column:vote_id"`
	VoteUserID *uuid.UUID `gorm:"column:vote_user_id"`
}

// ModuleRow additionally carries the module→resource mapping join.
type ModuleRow struct {
	ID          uuid.UUID  `gorm:"column:id"`
	Title       string     `gorm:"column:title"`
	Description string     `gorm:"column:description"`
	SubjectID   uuid.UUID  `gorm:"column:subject_id"`
	SubjectName string     `gorm:"column:subject_name"`
	GradeID     uuid.UUID  `gorm:"column:grade_id"`
	GradeName   string     `gorm:"column:grade_name"`
	ImageURL    string     `gorm:"column:image_url"`
	CreatedByID uuid.UUID  `gorm:"column:created_by_id"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`

	TagID            *uuid.UUID `gorm:"column:tag_id"`
	TagName          *string    `gorm:"column:tag_name"`
	VoteID           *uuid.UUID `gorm:"column:vote_id"`
	VoteUserID       *uuid.UUID `gorm:"column:vote_user_id"`
	MappingID        *uuid.UUID `gorm:"column:mapping_id"`
	MappedResourceID *uuid.UUID `gorm:"column:mapped_resource_id"`
}
