package discovery

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultPageSize bounds one discovery page when the caller does not
	// override it.
	DefaultPageSize = 10

	// IDListSeparator delimits persisted facet id lists (user settings).
	IDListSeparator = ";"
)

// FilterSpec describes one discovery request. Facets combine with AND
// across categories and OR within a category's id set; an empty id set
// imposes no constraint on that facet.
type FilterSpec struct {
	SubjectIDs   []uuid.UUID `json:"subject_ids"`
	GradeIDs     []uuid.UUID `json:"grade_ids"`
	TagIDs       []uuid.UUID `json:"tag_ids"`
	CreatedByIDs []uuid.UUID `json:"created_by_ids"`

	SearchText string `json:"search_text"`
	ExactMatch bool   `json:"exact_match"`

	// ExcludeEmptyModules only applies to learning-module discovery.
	ExcludeEmptyModules bool `json:"exclude_empty_modules"`

	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Normalized returns a copy with nil/duplicate facet ids dropped, the
// search text trimmed, and page/pageSize clamped to sane values. Malformed
// ids are ignored rather than rejected: a semantically empty facet simply
// matches nothing it names.
func (f FilterSpec) Normalized() FilterSpec {
	out := f
	out.SubjectIDs = dedupeIDs(f.SubjectIDs)
	out.GradeIDs = dedupeIDs(f.GradeIDs)
	out.TagIDs = dedupeIDs(f.TagIDs)
	out.CreatedByIDs = dedupeIDs(f.CreatedByIDs)
	out.SearchText = strings.TrimSpace(f.SearchText)
	if out.Page < 0 {
		out.Page = 0
	}
	if out.PageSize <= 0 {
		out.PageSize = DefaultPageSize
	}
	// Exact match against nothing is not a constraint; the contract used
	// by title validation requires non-empty text.
	if out.SearchText == "" {
		out.ExactMatch = false
	}
	return out
}

// HasConstraints reports whether any facet or text constraint is present.
// When false the engine takes the windowed unfiltered feed path.
func (f FilterSpec) HasConstraints() bool {
	return len(f.SubjectIDs) > 0 ||
		len(f.GradeIDs) > 0 ||
		len(f.TagIDs) > 0 ||
		len(f.CreatedByIDs) > 0 ||
		f.SearchText != "" ||
		f.ExcludeEmptyModules
}

// MatchesTitle applies the text-search rule to a title: exact means
// case-insensitive full equality, otherwise case-insensitive containment.
// An empty search text matches everything.
func (f FilterSpec) MatchesTitle(title string) bool {
	if f.SearchText == "" {
		return true
	}
	if f.ExactMatch {
		return strings.EqualFold(title, f.SearchText)
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(f.SearchText))
}

func dedupeIDs(ids []uuid.UUID) []uuid.UUID {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ParseIDList parses a delimited id list as stored in user settings.
// Tokens that do not parse as uuids are skipped.
func ParseIDList(s string) []uuid.UUID {
	parts := strings.Split(s, IDListSeparator)
	out := make([]uuid.UUID, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := uuid.Parse(p)
		if err != nil {
			continue
		}
		out = append(out, id)
	}
	return dedupeIDs(out)
}

// FormatIDList renders ids into the delimited form used by user settings.
func FormatIDList(ids []uuid.UUID) string {
	ids = dedupeIDs(ids)
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, id.String())
	}
	return strings.Join(parts, IDListSeparator)
}
