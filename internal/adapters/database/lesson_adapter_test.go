package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/queries"
	"github.com/digitallife/lessonhub/internal/domain/repositories"
)

func TestPredicateOf_CompiledFilters(t *testing.T) {
	q := queries.LessonQuery{
		Visibility:  queries.Equals(entities.VisibilityPublic),
		Category:    queries.Equals("grief"),
		Tone:        queries.Equals("hopeful"),
		AccessLevel: queries.Equals(entities.AccessFree),
	}

	exprs := predicateOf(q)
	assert.Len(t, exprs, 4)
}

func TestPredicateOf_AbsentFieldsProduceNoPredicates(t *testing.T) {
	exprs := predicateOf(queries.LessonQuery{})
	assert.Empty(t, exprs)
}

func TestPredicateOf_SearchAddsOneDisjunction(t *testing.T) {
	q := queries.LessonQuery{
		Visibility: queries.Equals(entities.VisibilityPublic),
		Search:     "winter",
	}

	exprs := predicateOf(q)
	// visibility plus one OR over title/short_description
	assert.Len(t, exprs, 2)
}

func TestOrderOf_SortKeys(t *testing.T) {
	tests := []struct {
		name   string
		sort   queries.SortKey
		column string
	}{
		{"newest", queries.SortNewest, "created_at"},
		{"most saved", queries.SortMostSaved, "save_count"},
		{"most liked", queries.SortMostLiked, "likes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ordered := orderOf(tt.sort)
			col, ok := ordered.SortExpression().(interface{ GetCol() interface{} })
			require.True(t, ok)
			assert.Equal(t, tt.column, col.GetCol())
			assert.False(t, ordered.IsAsc())
		})
	}
}

func TestEngagementColumns(t *testing.T) {
	arrayCol, countCol := engagementColumns(repositories.EngagementLike)
	assert.Equal(t, "likes_array", arrayCol)
	assert.Equal(t, "likes", countCol)

	arrayCol, countCol = engagementColumns(repositories.EngagementSave)
	assert.Equal(t, "saves_array", arrayCol)
	assert.Equal(t, "save_count", countCol)
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain text", "plain text"},
		{"50% off", `50\% off`},
		{"snake_case", `snake\_case`},
		{`back\slash`, `back\\slash`},
		{`%_\`, `\%\_\\`},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeLike(tt.input))
	}
}
