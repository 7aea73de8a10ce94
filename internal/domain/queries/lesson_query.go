package queries

// MatchKind says how a field participates in a predicate
type MatchKind int

const (
	// MatchAbsent leaves the field out of the predicate
	MatchAbsent MatchKind = iota

	// MatchEquals restricts the field to an exact value
	MatchEquals
)

// Match is a tagged predicate variant for one field. The zero value is
// MatchAbsent, so an unset Match never filters anything.
type Match struct {
	Kind  MatchKind
	Value string
}

// Equals builds an exact-match variant
func Equals(value string) Match {
	return Match{Kind: MatchEquals, Value: value}
}

// SortKey selects the listing sort order
type SortKey int

const (
	// SortNewest orders by createdAt descending (default)
	SortNewest SortKey = iota

	// SortMostSaved orders by saveCount descending
	SortMostSaved

	// SortMostLiked orders by likes descending
	SortMostLiked
)

// LessonQuery is the canonical compiled form of a listing request: every
// filter is an explicit variant, never an open-ended map. Adapters translate
// it to storage-specific predicates; Count and List must use the same value.
type LessonQuery struct {
	Visibility  Match
	Search      string // trimmed case-insensitive substring on title/shortDescription; "" = no filter
	Category    Match
	Tone        Match
	AccessLevel Match
	Sort        SortKey
	Page        int
	Limit       int
}

// Offset returns the pagination window start
func (q LessonQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// RecommendationQuery is the fixed-shape related-lessons predicate: same
// category and tone as a reference lesson, excluding the lesson itself.
type RecommendationQuery struct {
	Category  Match
	Tone      Match
	ExcludeID string
	Limit     int
}
