//go:build integration

package database

import (
	"context"
	"database/sql"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/queries"
	"github.com/digitallife/lessonhub/internal/domain/repositories"
	"github.com/digitallife/lessonhub/internal/infrastructure/clients/postgres"
	"github.com/digitallife/lessonhub/pkg/config"
	apperrors "github.com/digitallife/lessonhub/pkg/errors"
)

// LessonAdapterIntegrationTestSuite exercises the lesson adapter against a
// real Postgres instance. Run with -tags integration and a test database.
type LessonAdapterIntegrationTestSuite struct {
	suite.Suite
	client  *postgres.Client
	adapter repositories.LessonRepository
	db      *sql.DB
}

func (s *LessonAdapterIntegrationTestSuite) SetupSuite() {
	cfg := &config.DatabaseConfig{
		Host:     getTestEnv("TEST_DB_HOST", "localhost"),
		Port:     getTestEnvAsInt("TEST_DB_PORT", 5432),
		User:     getTestEnv("TEST_DB_USER", "postgres"),
		Password: getTestEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getTestEnv("TEST_DB_NAME", "lessonhub_test"),
		SSLMode:  getTestEnv("TEST_DB_SSLMODE", "disable"),
	}

	client, err := postgres.NewClient(cfg)
	require.NoError(s.T(), err, "Failed to create postgres client")

	s.client = client
	s.db = client.DB()
	s.adapter = NewLessonAdapter(client)

	migrationSQL, err := os.ReadFile("../../../migrations/001_init.sql")
	require.NoError(s.T(), err, "Failed to read migration file")
	_, err = s.db.Exec(string(migrationSQL))
	require.NoError(s.T(), err, "Failed to run migrations")
}

func (s *LessonAdapterIntegrationTestSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
}

func (s *LessonAdapterIntegrationTestSuite) SetupTest() {
	s.truncate()
}

func (s *LessonAdapterIntegrationTestSuite) TearDownTest() {
	s.truncate()
}

func (s *LessonAdapterIntegrationTestSuite) truncate() {
	_, err := s.db.Exec(`TRUNCATE TABLE reports, comments, favorites, lessons RESTART IDENTITY CASCADE`)
	require.NoError(s.T(), err)
}

func (s *LessonAdapterIntegrationTestSuite) newLesson(title, category, access string) *entities.Lesson {
	return &entities.Lesson{
		ID:               uuid.New().String(),
		Title:            title,
		ShortDescription: "about " + title,
		Category:         category,
		EmotionalTone:    "hopeful",
		Visibility:       entities.VisibilityPublic,
		AccessLevel:      access,
		CreatorEmail:     "author@example.com",
		CreatedAt:        time.Now().UTC(),
	}
}

func (s *LessonAdapterIntegrationTestSuite) TestToggleIdempotenceAndSymmetry() {
	ctx := context.Background()
	lesson := s.newLesson("Toggle target", "grief", entities.AccessFree)
	require.NoError(s.T(), s.adapter.Create(ctx, lesson))

	// Apply twice: second call is a no-op and the counter holds
	first, err := s.adapter.Toggle(ctx, lesson.ID, "u@example.com", repositories.EngagementLike, true)
	require.NoError(s.T(), err)
	assert.True(s.T(), first.Changed)
	assert.Equal(s.T(), 1, first.Count)

	second, err := s.adapter.Toggle(ctx, lesson.ID, "u@example.com", repositories.EngagementLike, true)
	require.NoError(s.T(), err)
	assert.False(s.T(), second.Changed)
	assert.Equal(s.T(), 1, second.Count)

	// Revoke restores the pre-apply state exactly
	revoked, err := s.adapter.Toggle(ctx, lesson.ID, "u@example.com", repositories.EngagementLike, false)
	require.NoError(s.T(), err)
	assert.True(s.T(), revoked.Changed)
	assert.Equal(s.T(), 0, revoked.Count)

	stored, err := s.adapter.GetByID(ctx, lesson.ID)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), stored.LikesArray)
	assert.Equal(s.T(), 0, stored.Likes)
}

func (s *LessonAdapterIntegrationTestSuite) TestCounterTracksMembershipSet() {
	ctx := context.Background()
	lesson := s.newLesson("Counter target", "grief", entities.AccessFree)
	require.NoError(s.T(), s.adapter.Create(ctx, lesson))

	actors := []string{"a@example.com", "b@example.com", "c@example.com"}
	for _, actor := range actors {
		_, err := s.adapter.Toggle(ctx, lesson.ID, actor, repositories.EngagementSave, true)
		require.NoError(s.T(), err)
	}
	_, err := s.adapter.Toggle(ctx, lesson.ID, "b@example.com", repositories.EngagementSave, false)
	require.NoError(s.T(), err)

	stored, err := s.adapter.GetByID(ctx, lesson.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), len(stored.SavesArray), stored.SaveCount)
	assert.Equal(s.T(), 2, stored.SaveCount)
}

func (s *LessonAdapterIntegrationTestSuite) TestToggleUnknownLesson() {
	_, err := s.adapter.Toggle(context.Background(), uuid.New().String(), "u@example.com", repositories.EngagementLike, true)
	assert.True(s.T(), apperrors.IsNotFound(err))
}

func (s *LessonAdapterIntegrationTestSuite) TestGetAndCountViewIncrements() {
	ctx := context.Background()
	lesson := s.newLesson("Viewed lesson", "grief", entities.AccessFree)
	require.NoError(s.T(), s.adapter.Create(ctx, lesson))

	for i := 1; i <= 3; i++ {
		fetched, err := s.adapter.GetAndCountView(ctx, lesson.ID)
		require.NoError(s.T(), err)
		assert.Equal(s.T(), i, fetched.Views)
	}
}

func (s *LessonAdapterIntegrationTestSuite) TestListPaginationScenario() {
	ctx := context.Background()
	for i := 0; i < 13; i++ {
		lesson := s.newLesson("Grief lesson "+strconv.Itoa(i), "grief", entities.AccessFree)
		lesson.CreatedAt = time.Now().UTC().Add(-time.Duration(i) * time.Hour)
		require.NoError(s.T(), s.adapter.Create(ctx, lesson))
	}

	query := queries.Compile(queries.ListParams{Category: "grief", Limit: "12", Page: "1"}, entities.Viewer{})
	page1, err := s.adapter.List(ctx, query)
	require.NoError(s.T(), err)
	assert.Len(s.T(), page1, 12)

	total, err := s.adapter.Count(ctx, query)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), int64(13), total)
	assert.Equal(s.T(), 2, queries.TotalPages(total, query.Limit))

	query.Page = 2
	page2, err := s.adapter.List(ctx, query)
	require.NoError(s.T(), err)
	assert.Len(s.T(), page2, 1)

	// Beyond the last page: empty, not an error
	query.Page = 3
	page3, err := s.adapter.List(ctx, query)
	require.NoError(s.T(), err)
	assert.Empty(s.T(), page3)
}

func (s *LessonAdapterIntegrationTestSuite) TestTierGatingExcludesPremium() {
	ctx := context.Background()
	require.NoError(s.T(), s.adapter.Create(ctx, s.newLesson("Free one", "grief", entities.AccessFree)))
	require.NoError(s.T(), s.adapter.Create(ctx, s.newLesson("Premium one", "grief", entities.AccessPremium)))

	query := queries.Compile(queries.ListParams{Access: "premium"}, entities.Viewer{Email: "basic@example.com"})
	lessons, err := s.adapter.List(ctx, query)
	require.NoError(s.T(), err)

	require.Len(s.T(), lessons, 1)
	assert.Equal(s.T(), entities.AccessFree, lessons[0].AccessLevel)
}

func (s *LessonAdapterIntegrationTestSuite) TestSearchMatchesTitleOrDescription() {
	ctx := context.Background()
	a := s.newLesson("Walking through winter", "grief", entities.AccessFree)
	a.ShortDescription = "cold months after a loss"
	b := s.newLesson("Second spring", "grief", entities.AccessFree)
	b.ShortDescription = "finding winter's end"
	c := s.newLesson("Unrelated", "career", entities.AccessFree)
	for _, l := range []*entities.Lesson{a, b, c} {
		require.NoError(s.T(), s.adapter.Create(ctx, l))
	}

	query := queries.Compile(queries.ListParams{Search: "WINTER"}, entities.Viewer{})
	lessons, err := s.adapter.List(ctx, query)
	require.NoError(s.T(), err)
	assert.Len(s.T(), lessons, 2)
}

func (s *LessonAdapterIntegrationTestSuite) TestDuplicateFavoriteDoesNotDoubleIncrement() {
	ctx := context.Background()
	lesson := s.newLesson("Favorited lesson", "grief", entities.AccessFree)
	require.NoError(s.T(), s.adapter.Create(ctx, lesson))

	favorites := NewFavoriteAdapter(s.client)
	favorite := &entities.Favorite{
		ID:        uuid.New().String(),
		UserEmail: "u@example.com",
		LessonID:  lesson.ID,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(s.T(), favorites.Create(ctx, favorite))

	dup := &entities.Favorite{
		ID:        uuid.New().String(),
		UserEmail: "u@example.com",
		LessonID:  lesson.ID,
		CreatedAt: time.Now().UTC(),
	}
	err := favorites.Create(ctx, dup)
	assert.True(s.T(), apperrors.IsConflict(err))
}

func (s *LessonAdapterIntegrationTestSuite) TestFavoriteUnknownLessonNotFound() {
	ctx := context.Background()

	favorites := NewFavoriteAdapter(s.client)
	err := favorites.Create(ctx, &entities.Favorite{
		ID:        uuid.New().String(),
		UserEmail: "u@example.com",
		LessonID:  uuid.New().String(),
		CreatedAt: time.Now().UTC(),
	})
	assert.True(s.T(), apperrors.IsNotFound(err))

	comments := NewCommentAdapter(s.client)
	err = comments.Create(ctx, &entities.Comment{
		ID:        uuid.New().String(),
		LessonID:  uuid.New().String(),
		UserID:    "u@example.com",
		Text:      "hello",
		CreatedAt: time.Now().UTC(),
	})
	assert.True(s.T(), apperrors.IsNotFound(err))
}

func TestLessonAdapterIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(LessonAdapterIntegrationTestSuite))
}

func getTestEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getTestEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
