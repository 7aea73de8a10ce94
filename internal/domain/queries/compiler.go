package queries

import (
	"strconv"
	"strings"

	"github.com/digitallife/lessonhub/internal/domain/entities"
)

// Listing defaults
const (
	DefaultPage  = 1
	DefaultLimit = 12

	// RecommendationLimit caps the related-lessons result
	RecommendationLimit = 6

	// FilterAll is the sentinel meaning "do not filter on this field"
	FilterAll = "all"
)

// ListParams carries the raw, untrusted query parameters of a listing
// request. Every field is a string straight off the URL; Compile is the only
// place that interprets them.
type ListParams struct {
	Search   string
	Category string
	Tone     string
	Sort     string
	Page     string
	Limit    string
	Access   string
}

// Compile turns raw listing parameters and the caller identity into a
// canonical LessonQuery. It is a pure function; compiling the same inputs
// always yields the same query.
//
// Tier gating is enforced here and cannot be bypassed by client parameters:
// a non-premium viewer is always restricted to free lessons no matter what
// `access` was requested.
func Compile(params ListParams, viewer entities.Viewer) LessonQuery {
	q := LessonQuery{
		Visibility: Equals(entities.VisibilityPublic),
		Search:     strings.TrimSpace(params.Search),
		Sort:       compileSort(params.Sort),
		Page:       positiveOrDefault(params.Page, DefaultPage),
		Limit:      positiveOrDefault(params.Limit, DefaultLimit),
	}

	if params.Category != "" && params.Category != FilterAll {
		q.Category = Equals(params.Category)
	}
	if params.Tone != "" && params.Tone != FilterAll {
		q.Tone = Equals(params.Tone)
	}

	if !viewer.IsPremium {
		// Requested premium content is silently excluded, not rejected
		q.AccessLevel = Equals(entities.AccessFree)
	} else if params.Access == entities.AccessFree || params.Access == entities.AccessPremium {
		q.AccessLevel = Equals(params.Access)
	}

	return q
}

// Recommendation builds the fixed related-lessons query
func Recommendation(category, tone, excludeID string) RecommendationQuery {
	q := RecommendationQuery{
		ExcludeID: excludeID,
		Limit:     RecommendationLimit,
	}
	if category != "" && category != FilterAll {
		q.Category = Equals(category)
	}
	if tone != "" && tone != FilterAll {
		q.Tone = Equals(tone)
	}
	return q
}

// TotalPages returns ceil(total/limit)
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func compileSort(raw string) SortKey {
	switch raw {
	case "mostSaved":
		return SortMostSaved
	case "mostLiked":
		return SortMostLiked
	default:
		// Unknown sort values fall back to newest
		return SortNewest
	}
}

func positiveOrDefault(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
