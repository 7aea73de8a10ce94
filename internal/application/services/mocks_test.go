package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/digitallife/lessonhub/internal/domain/entities"
	"github.com/digitallife/lessonhub/internal/domain/queries"
	"github.com/digitallife/lessonhub/internal/domain/repositories"
)

// Mocks shared by the service tests in this package.

type MockLessonRepo struct {
	mock.Mock
}

func (m *MockLessonRepo) Create(ctx context.Context, lesson *entities.Lesson) error {
	return m.Called(ctx, lesson).Error(0)
}

func (m *MockLessonRepo) List(ctx context.Context, query queries.LessonQuery) ([]*entities.Lesson, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Lesson), args.Error(1)
}

func (m *MockLessonRepo) Count(ctx context.Context, query queries.LessonQuery) (int64, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLessonRepo) GetAndCountView(ctx context.Context, id string) (*entities.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lesson), args.Error(1)
}

func (m *MockLessonRepo) GetByID(ctx context.Context, id string) (*entities.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Lesson), args.Error(1)
}

func (m *MockLessonRepo) Recommend(ctx context.Context, query queries.RecommendationQuery) ([]*entities.Lesson, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Lesson), args.Error(1)
}

func (m *MockLessonRepo) Toggle(ctx context.Context, lessonID, actorID string, kind repositories.EngagementKind, apply bool) (repositories.EngagementResult, error) {
	args := m.Called(ctx, lessonID, actorID, kind, apply)
	return args.Get(0).(repositories.EngagementResult), args.Error(1)
}

func (m *MockLessonRepo) CountByCreator(ctx context.Context, creatorEmail string) (int, error) {
	args := m.Called(ctx, creatorEmail)
	return args.Int(0), args.Error(1)
}

func (m *MockLessonRepo) RecentByCreator(ctx context.Context, creatorEmail string, limit int) ([]*entities.LessonSummary, error) {
	args := m.Called(ctx, creatorEmail, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.LessonSummary), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepo) TouchLastLogin(ctx context.Context, email string, at time.Time) error {
	return m.Called(ctx, email, at).Error(0)
}

func (m *MockUserRepo) UpdateProfile(ctx context.Context, email, name, photoURL string, at time.Time) error {
	return m.Called(ctx, email, name, photoURL, at).Error(0)
}

type MockFavoriteRepo struct {
	mock.Mock
}

func (m *MockFavoriteRepo) Create(ctx context.Context, favorite *entities.Favorite) error {
	return m.Called(ctx, favorite).Error(0)
}

func (m *MockFavoriteRepo) CountByUser(ctx context.Context, userEmail string) (int, error) {
	args := m.Called(ctx, userEmail)
	return args.Int(0), args.Error(1)
}

type MockCommentRepo struct {
	mock.Mock
}

func (m *MockCommentRepo) Create(ctx context.Context, comment *entities.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *MockCommentRepo) ListByLesson(ctx context.Context, lessonID string) ([]*entities.Comment, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Comment), args.Error(1)
}

type MockReportRepo struct {
	mock.Mock
}

func (m *MockReportRepo) Create(ctx context.Context, report *entities.Report) error {
	return m.Called(ctx, report).Error(0)
}

type MockEventBus struct {
	mock.Mock
}

func (m *MockEventBus) Publish(ctx context.Context, channel string, event *entities.LessonEvent) error {
	return m.Called(ctx, channel, event).Error(0)
}

func (m *MockEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.LessonEvent, error) {
	args := m.Called(ctx, channel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(<-chan *entities.LessonEvent), args.Error(1)
}

func (m *MockEventBus) Unsubscribe(ctx context.Context, channel string) error {
	return m.Called(ctx, channel).Error(0)
}

func (m *MockEventBus) Close() error {
	return m.Called().Error(0)
}

type MockCacheProvider struct {
	mock.Mock
}

func (m *MockCacheProvider) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCacheProvider) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	return m.Called(ctx, key, value, expirationSeconds).Error(0)
}

func (m *MockCacheProvider) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *MockCacheProvider) DeleteByPrefix(ctx context.Context, prefix string) error {
	return m.Called(ctx, prefix).Error(0)
}

func (m *MockCacheProvider) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}
