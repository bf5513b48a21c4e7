package discovery

import (
	"time"

	"github.com/google/uuid"

	"github.com/edushare/edushare-backend/internal/platform/logger"
)

type TagRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ResourceRecord is one logical discovery result after grouping: scalar
// fields come from a representative row, sub-collections are the distinct
// union over the group.
type ResourceRecord struct {
	ID          uuid.UUID
	Title       string
	Description string
	SubjectID   uuid.UUID
	SubjectName string
	GradeID     uuid.UUID
	GradeName   string
	ImageURL    string
	LinkURL     string
	CreatedByID uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time

	Tags        []TagRef
	VoteUserIDs []uuid.UUID
}

func (r *ResourceRecord) VoteCount() int { return len(r.VoteUserIDs) }

func (r *ResourceRecord) IsLikedBy(userID uuid.UUID) bool {
	for _, v := range r.VoteUserIDs {
		if v == userID {
			return true
		}
	}
	return false
}

type ModuleRecord struct {
	ID          uuid.UUID
	Title       string
	Description string
	SubjectID   uuid.UUID
	SubjectName string
	GradeID     uuid.UUID
	GradeName   string
	ImageURL    string
	CreatedByID uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   *time.Time

	Tags              []TagRef
	VoteUserIDs       []uuid.UUID
	MappedResourceIDs []uuid.UUID
}

func (m *ModuleRecord) VoteCount() int     { return len(m.VoteUserIDs) }
func (m *ModuleRecord) ResourceCount() int { return len(m.MappedResourceIDs) }

func (m *ModuleRecord) IsLikedBy(userID uuid.UUID) bool {
	for _, v := range m.VoteUserIDs {
		if v == userID {
			return true
		}
	}
	return false
}

// GroupResourceRows collapses raw joined rows into one record per resource
// id. Any row of a group may supply the scalars; they are identical by
// construction. Rows whose required reference names failed to resolve are
// logged and skipped so one inconsistent entity never fails a whole page.
func GroupResourceRows(log *logger.Logger, rows []ResourceRow) []ResourceRecord {
	byID := make(map[uuid.UUID]*ResourceRecord, len(rows))
	order := make([]uuid.UUID, 0, len(rows))
	seenTag := make(map[uuid.UUID]map[uuid.UUID]struct{})
	seenVote := make(map[uuid.UUID]map[uuid.UUID]struct{})

	for i := range rows {
		row := &rows[i]
		rec, ok := byID[row.ID]
		if !ok {
			if row.SubjectName == "" || row.GradeName == "" {
				if log != nil {
					log.Error("discovery row missing required reference, skipping entity",
						"resource_id", row.ID,
						"subject_id", row.SubjectID,
						"grade_id", row.GradeID)
				}
				continue
			}
			rec = &ResourceRecord{
				ID:          row.ID,
				Title:       row.Title,
				Description: row.Description,
				SubjectID:   row.SubjectID,
				SubjectName: row.SubjectName,
				GradeID:     row.GradeID,
				GradeName:   row.GradeName,
				ImageURL:    row.ImageURL,
				LinkURL:     row.LinkURL,
				CreatedByID: row.CreatedByID,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			}
			byID[row.ID] = rec
			order = append(order, row.ID)
			seenTag[row.ID] = make(map[uuid.UUID]struct{})
			seenVote[row.ID] = make(map[uuid.UUID]struct{})
		}
		if row.TagID != nil && row.TagName != nil {
			if _, dup := seenTag[row.ID][*row.TagID]; !dup {
				seenTag[row.ID][*row.TagID] = struct{}{}
				rec.Tags = append(rec.Tags, TagRef{ID: *row.TagID, Name: *row.TagName})
			}
		}
		if row.VoteUserID != nil {
			if _, dup := seenVote[row.ID][*row.VoteUserID]; !dup {
				seenVote[row.ID][*row.VoteUserID] = struct{}{}
				rec.VoteUserIDs = append(rec.VoteUserIDs, *row.VoteUserID)
			}
		}
	}

	out := make([]ResourceRecord, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}

// GroupModuleRows is GroupResourceRows for the module family, with the
// mapped-resource union on top of tags and votes.
func GroupModuleRows(log *logger.Logger, rows []ModuleRow) []ModuleRecord {
	byID := make(map[uuid.UUID]*ModuleRecord, len(rows))
	order := make([]uuid.UUID, 0, len(rows))
	seenTag := make(map[uuid.UUID]map[uuid.UUID]struct{})
	seenVote := make(map[uuid.UUID]map[uuid.UUID]struct{})
	seenMap := make(map[uuid.UUID]map[uuid.UUID]struct{})

	for i := range rows {
		row := &rows[i]
		rec, ok := byID[row.ID]
		if !ok {
			if row.SubjectName == "" || row.GradeName == "" {
				if log != nil {
					log.Error("discovery row missing required reference, skipping entity",
						"learning_module_id", row.ID,
						"subject_id", row.SubjectID,
						"grade_id", row.GradeID)
				}
				continue
			}
			rec = &ModuleRecord{
				ID:          row.ID,
				Title:       row.Title,
				Description: row.Description,
				SubjectID:   row.SubjectID,
				SubjectName: row.SubjectName,
				GradeID:     row.GradeID,
				GradeName:   row.GradeName,
				ImageURL:    row.ImageURL,
				CreatedByID: row.CreatedByID,
				CreatedAt:   row.CreatedAt,
				UpdatedAt:   row.UpdatedAt,
			}
			byID[row.ID] = rec
			order = append(order, row.ID)
			seenTag[row.ID] = make(map[uuid.UUID]struct{})
			seenVote[row.ID] = make(map[uuid.UUID]struct{})
			seenMap[row.ID] = make(map[uuid.UUID]struct{})
		}
		if row.TagID != nil && row.TagName != nil {
			if _, dup := seenTag[row.ID][*row.TagID]; !dup {
				seenTag[row.ID][*row.TagID] = struct{}{}
				rec.Tags = append(rec.Tags, TagRef{ID: *row.TagID, Name: *row.TagName})
			}
		}
		if row.VoteUserID != nil {
			if _, dup := seenVote[row.ID][*row.VoteUserID]; !dup {
				seenVote[row.ID][*row.VoteUserID] = struct{}{}
				rec.VoteUserIDs = append(rec.VoteUserIDs, *row.VoteUserID)
			}
		}
		if row.MappedResourceID != nil {
			if _, dup := seenMap[row.ID][*row.MappedResourceID]; !dup {
				seenMap[row.ID][*row.MappedResourceID] = struct{}{}
				rec.MappedResourceIDs = append(rec.MappedResourceIDs, *row.MappedResourceID)
			}
		}
	}

	out := make([]ModuleRecord, 0, len(order))
	for _, id := range order {
		out = append(out, *byID[id])
	}
	return out
}
