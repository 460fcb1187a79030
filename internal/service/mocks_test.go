package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"moviereview/internal/events"
	"moviereview/internal/model"
	"moviereview/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockMovieRepository is a mock implementation of MovieRepository.
type MockMovieRepository struct {
	mock.Mock
}

func (m *MockMovieRepository) Upsert(ctx context.Context, movie *model.Movie) error {
	args := m.Called(ctx, movie)
	return args.Error(0)
}

func (m *MockMovieRepository) FindByID(ctx context.Context, id string) (*model.Movie, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Movie), args.Error(1)
}

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	if args.Error(0) == nil {
		review.ID = 10
		review.CreatedAt = time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	}
	return args.Error(0)
}

func (m *MockReviewRepository) List(ctx context.Context, q repository.ReviewQuery) ([]model.Review, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) Latest(ctx context.Context) ([]model.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) RatingSummary(ctx context.Context, movieID string) (repository.RatingSummary, error) {
	args := m.Called(ctx, movieID)
	return args.Get(0).(repository.RatingSummary), args.Error(1)
}

// MockSearcher is a mock implementation of MovieSearcher.
type MockSearcher struct {
	mock.Mock
}

func (m *MockSearcher) SearchMovies(ctx context.Context, query string) ([]model.MovieSearchResult, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MovieSearchResult), args.Error(1)
}

func (m *MockSearcher) Language() string { return "ja-JP" }

// MockPublisher is a mock implementation of events.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishReviewCreated(ctx context.Context, event events.ReviewCreated) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error { return nil }

// memoryCache is an in-process SearchCache.
type memoryCache struct {
	items map[string]interface{}
	ttls  map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string]interface{}{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dst interface{}) bool {
	v, ok := c.items[key]
	if !ok {
		return false
	}
	*(dst.(*[]model.MovieSearchResult)) = v.([]model.MovieSearchResult)
	return true
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value interface{}, ttl time.Duration) {
	c.items[key] = value
	c.ttls[key] = ttl
}
