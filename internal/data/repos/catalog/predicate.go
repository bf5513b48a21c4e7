package catalog

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/edushare/edushare-backend/internal/discovery"
)

// containsPattern builds the LIKE pattern for fuzzy title search. LIKE
// metacharacters in user text are escaped so "50%" only matches literally.
func containsPattern(text string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(strings.ToLower(text))
	return "%" + escaped + "%"
}

// applyResourceFilter compiles a FilterSpec onto the aliased resource join:
// AND across facet categories, IN (OR) within each facet's id set. Empty
// facet sets add no condition. restrictIDs, when non-nil, narrows the
// candidate set up front (the "your content" overlay).
func applyResourceFilter(q *gorm.DB, f discovery.FilterSpec, restrictIDs []uuid.UUID) *gorm.DB {
	if len(f.SubjectIDs) > 0 {
		q = q.Where("r.subject_id IN ?", f.SubjectIDs)
	}
	if len(f.GradeIDs) > 0 {
		q = q.Where("r.grade_id IN ?", f.GradeIDs)
	}
	if len(f.CreatedByIDs) > 0 {
		q = q.Where("r.created_by_id IN ?", f.CreatedByIDs)
	}
	if len(f.TagIDs) > 0 {
		q = q.Where("r.id IN (SELECT resource_id FROM resource_tag WHERE tag_id IN ?)", f.TagIDs)
	}
	if f.SearchText != "" {
		if f.ExactMatch {
			q = q.Where("LOWER(r.title) = LOWER(?)", f.SearchText)
		} else {
			q = q.Where("LOWER(r.title) LIKE ?", containsPattern(f.SearchText))
		}
	}
	if restrictIDs != nil {
		q = q.Where("r.id IN ?", restrictIDs)
	}
	return q
}

// applyModuleFilter is the learning-module flavor; it adds the
// exclude-empty condition over the mapping table.
func applyModuleFilter(q *gorm.DB, f discovery.FilterSpec, restrictIDs []uuid.UUID) *gorm.DB {
	if len(f.SubjectIDs) > 0 {
		q = q.Where("lm.subject_id IN ?", f.SubjectIDs)
	}
	if len(f.GradeIDs) > 0 {
		q = q.Where("lm.grade_id IN ?", f.GradeIDs)
	}
	if len(f.CreatedByIDs) > 0 {
		q = q.Where("lm.created_by_id IN ?", f.CreatedByIDs)
	}
	if len(f.TagIDs) > 0 {
		q = q.Where("lm.id IN (SELECT learning_module_id FROM learning_module_tag WHERE tag_id IN ?)", f.TagIDs)
	}
	if f.SearchText != "" {
		if f.ExactMatch {
			q = q.Where("LOWER(lm.title) = LOWER(?)", f.SearchText)
		} else {
			q = q.Where("LOWER(lm.title) LIKE ?", containsPattern(f.SearchText))
		}
	}
	if f.ExcludeEmptyModules {
		q = q.Where("lm.id IN (SELECT learning_module_id FROM resource_module_mapping)")
	}
	if restrictIDs != nil {
		q = q.Where("lm.id IN ?", restrictIDs)
	}
	return q
}
