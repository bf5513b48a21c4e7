package discovery

import (
	"time"

	"github.com/google/uuid"
)

// ResourceView is the caller-facing shape of one grouped resource with its
// computed aggregates and the creator's resolved display name.
type ResourceView struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SubjectID   uuid.UUID  `json:"subject_id"`
	SubjectName string     `json:"subject_name"`
	GradeID     uuid.UUID  `json:"grade_id"`
	GradeName   string     `json:"grade_name"`
	ImageURL    string     `json:"image_url,omitempty"`
	LinkURL     string     `json:"link_url,omitempty"`
	Tags        []TagRef   `json:"tags"`
	CreatedByID uuid.UUID  `json:"created_by_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	VoteCount       int    `json:"vote_count"`
	IsLikedByUser   bool   `json:"is_liked_by_user"`
	UserDisplayName string `json:"user_display_name"`
}

type ModuleView struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	SubjectID   uuid.UUID  `json:"subject_id"`
	SubjectName string     `json:"subject_name"`
	GradeID     uuid.UUID  `json:"grade_id"`
	GradeName   string     `json:"grade_name"`
	ImageURL    string     `json:"image_url,omitempty"`
	Tags        []TagRef   `json:"tags"`
	CreatedByID uuid.UUID  `json:"created_by_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	ResourceCount   int    `json:"resource_count"`
	VoteCount       int    `json:"vote_count"`
	IsLikedByUser   bool   `json:"is_liked_by_user"`
	UserDisplayName string `json:"user_display_name"`
}

type ResourcePage struct {
	Items   []ResourceView `json:"items"`
	Page    int            `json:"page"`
	HasMore bool           `json:"has_more"`
}

type ModulePage struct {
	Items   []ModuleView `json:"items"`
	Page    int          `json:"page"`
	HasMore bool         `json:"has_more"`
}

// DistinctCreatorIDs collects creator ids for one result page in first-seen
// order, capped at max for the batched display-name resolution call.
func DistinctCreatorIDs[T any](items []T, creatorOf func(T) uuid.UUID, max int) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(items))
	out := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		id := creatorOf(it)
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		if max > 0 && len(out) >= max {
			break
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AssembleResourceViews combines grouped records with vote aggregates for
// the viewing user and resolved names. Missing names degrade to empty, the
// row is never dropped for that.
func AssembleResourceViews(recs []ResourceRecord, viewer uuid.UUID, names map[uuid.UUID]string) []ResourceView {
	out := make([]ResourceView, 0, len(recs))
	for i := range recs {
		rec := &recs[i]
		tags := rec.Tags
		if tags == nil {
			tags = []TagRef{}
		}
		out = append(out, ResourceView{
			ID:              rec.ID,
			Title:           rec.Title,
			Description:     rec.Description,
			SubjectID:       rec.SubjectID,
			SubjectName:     rec.SubjectName,
			GradeID:         rec.GradeID,
			GradeName:       rec.GradeName,
			ImageURL:        rec.ImageURL,
			LinkURL:         rec.LinkURL,
			Tags:            tags,
			CreatedByID:     rec.CreatedByID,
			CreatedAt:       rec.CreatedAt,
			UpdatedAt:       rec.UpdatedAt,
			VoteCount:       rec.VoteCount(),
			IsLikedByUser:   rec.IsLikedBy(viewer),
			UserDisplayName: names[rec.CreatedByID],
		})
	}
	return out
}

func AssembleModuleViews(recs []ModuleRecord, viewer uuid.UUID, names map[uuid.UUID]string) []ModuleView {
	out := make([]ModuleView, 0, len(recs))
	for i := range recs {
		rec := &recs[i]
		tags := rec.Tags
		if tags == nil {
			tags = []TagRef{}
		}
		out = append(out, ModuleView{
			ID:              rec.ID,
			Title:           rec.Title,
			Description:     rec.Description,
			SubjectID:       rec.SubjectID,
			SubjectName:     rec.SubjectName,
			GradeID:         rec.GradeID,
			GradeName:       rec.GradeName,
			ImageURL:        rec.ImageURL,
			Tags:            tags,
			CreatedByID:     rec.CreatedByID,
			CreatedAt:       rec.CreatedAt,
			UpdatedAt:       rec.UpdatedAt,
			ResourceCount:   rec.ResourceCount(),
			VoteCount:       rec.VoteCount(),
			IsLikedByUser:   rec.IsLikedBy(viewer),
			UserDisplayName: names[rec.CreatedByID],
		})
	}
	return out
}
