package queries_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/queries"
)

func TestCompile_Defaults(t *testing.T) {
	q := queries.Compile(queries.ListParams{}, entities.Viewer{})

	assert.Equal(t, queries.Equals(entities.VisibilityPublic), q.Visibility)
	assert.Equal(t, "", q.Search)
	assert.Equal(t, queries.MatchAbsent, q.Category.Kind)
	assert.Equal(t, queries.MatchAbsent, q.Tone.Kind)
	assert.Equal(t, queries.SortNewest, q.Sort)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 12, q.Limit)
	assert.Equal(t, 0, q.Offset())
}

func TestCompile_SearchIsTrimmed(t *testing.T) {
	t.Run("whitespace-only search means no filter", func(t *testing.T) {
		q := queries.Compile(queries.ListParams{Search: "   "}, entities.Viewer{})
		assert.Equal(t, "", q.Search)
	})

	t.Run("surrounding whitespace is stripped", func(t *testing.T) {
		q := queries.Compile(queries.ListParams{Search: "  grief  "}, entities.Viewer{})
		assert.Equal(t, "grief", q.Search)
	})
}

func TestCompile_CategoryAndTone(t *testing.T) {
	q := queries.Compile(queries.ListParams{Category: "grief", Tone: "hopeful"}, entities.Viewer{})
	assert.Equal(t, queries.Equals("grief"), q.Category)
	assert.Equal(t, queries.Equals("hopeful"), q.Tone)

	// "all" is a sentinel, not a value
	q = queries.Compile(queries.ListParams{Category: "all", Tone: "all"}, entities.Viewer{})
	assert.Equal(t, queries.MatchAbsent, q.Category.Kind)
	assert.Equal(t, queries.MatchAbsent, q.Tone.Kind)
}

func TestCompile_TierGating(t *testing.T) {
	anonymous := entities.Viewer{}
	premium := entities.Viewer{Email: "p@example.com", IsPremium: true}

	t.Run("non-premium viewer is forced to free regardless of access param", func(t *testing.T) {
		for _, access := range []string{"", "all", "free", "premium", "garbage"} {
			q := queries.Compile(queries.ListParams{Access: access}, anonymous)
			assert.Equal(t, queries.Equals(entities.AccessFree), q.AccessLevel, "access=%q", access)
		}
	})

	t.Run("premium viewer picks the requested level", func(t *testing.T) {
		q := queries.Compile(queries.ListParams{Access: "premium"}, premium)
		assert.Equal(t, queries.Equals(entities.AccessPremium), q.AccessLevel)

		q = queries.Compile(queries.ListParams{Access: "free"}, premium)
		assert.Equal(t, queries.Equals(entities.AccessFree), q.AccessLevel)
	})

	t.Run("premium viewer with all or unknown access sees everything", func(t *testing.T) {
		for _, access := range []string{"", "all", "garbage"} {
			q := queries.Compile(queries.ListParams{Access: access}, premium)
			assert.Equal(t, queries.MatchAbsent, q.AccessLevel.Kind, "access=%q", access)
		}
	})
}

func TestCompile_Sort(t *testing.T) {
	cases := map[string]queries.SortKey{
		"newest":    queries.SortNewest,
		"mostSaved": queries.SortMostSaved,
		"mostLiked": queries.SortMostLiked,
		"bogus":     queries.SortNewest,
		"":          queries.SortNewest,
	}
	for raw, want := range cases {
		q := queries.Compile(queries.ListParams{Sort: raw}, entities.Viewer{})
		assert.Equal(t, want, q.Sort, "sort=%q", raw)
	}
}

func TestCompile_Pagination(t *testing.T) {
	q := queries.Compile(queries.ListParams{Page: "3", Limit: "20"}, entities.Viewer{})
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, 40, q.Offset())

	// Non-numeric and non-positive values fall back to defaults
	for _, raw := range []string{"", "abc", "0", "-2", "1.5"} {
		q := queries.Compile(queries.ListParams{Page: raw, Limit: raw}, entities.Viewer{})
		assert.Equal(t, 1, q.Page, "page=%q", raw)
		assert.Equal(t, 12, q.Limit, "limit=%q", raw)
	}
}

func TestCompile_IsPure(t *testing.T) {
	params := queries.ListParams{Search: "loss", Category: "grief", Sort: "mostLiked", Page: "2"}
	viewer := entities.Viewer{Email: "u@example.com", IsPremium: true}

	assert.Equal(t, queries.Compile(params, viewer), queries.Compile(params, viewer))
}

func TestRecommendation(t *testing.T) {
	q := queries.Recommendation("grief", "hopeful", "lesson-1")
	assert.Equal(t, queries.Equals("grief"), q.Category)
	assert.Equal(t, queries.Equals("hopeful"), q.Tone)
	assert.Equal(t, "lesson-1", q.ExcludeID)
	assert.Equal(t, 6, q.Limit)

	q = queries.Recommendation("", "all", "lesson-1")
	assert.Equal(t, queries.MatchAbsent, q.Category.Kind)
	assert.Equal(t, queries.MatchAbsent, q.Tone.Kind)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 2, queries.TotalPages(13, 12))
	assert.Equal(t, 1, queries.TotalPages(12, 12))
	assert.Equal(t, 0, queries.TotalPages(0, 12))
	assert.Equal(t, 1, queries.TotalPages(1, 12))
}
