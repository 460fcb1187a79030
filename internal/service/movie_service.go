package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "moviereview/internal/errors"
	"moviereview/internal/model"
	"moviereview/internal/repository"
	"moviereview/internal/validation"
)

// MovieSearcher looks movies up in the external metadata API.
type MovieSearcher interface {
	SearchMovies(ctx context.Context, query string) ([]model.MovieSearchResult, error)
	Language() string
}

// SearchCache stores search results. *cache.Client satisfies it.
type SearchCache interface {
	GetJSON(ctx context.Context, key string, dst interface{}) bool
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration)
}

// SaveMovieInput is a movie picked from search results.
type SaveMovieInput struct {
	ID          int64
	Title       string
	ReleaseDate *string
	PosterPath  *string
	Overview    *string
}

// MovieDetail is a stored movie with its review statistics.
type MovieDetail struct {
	model.Movie
	ReviewCount   int64           `json:"review_count"`
	AverageRating decimal.Decimal `json:"average_rating" swaggertype:"string"`
}

// MovieService handles movie search and persistence.
type MovieService interface {
	Search(ctx context.Context, query string) ([]model.MovieSearchResult, error)
	Save(ctx context.Context, input SaveMovieInput) (*model.Movie, error)
	Get(ctx context.Context, id string) (*MovieDetail, error)
}

type movieService struct {
	searcher   MovieSearcher
	movieRepo  repository.MovieRepository
	reviewRepo repository.ReviewRepository
	cache      SearchCache
	cacheTTL   time.Duration
}

// NewMovieService creates a new movie service. Search results are cached for cacheTTL;
// a non-positive TTL disables caching.
func NewMovieService(
	searcher MovieSearcher,
	movieRepo repository.MovieRepository,
	reviewRepo repository.ReviewRepository,
	cache SearchCache,
	cacheTTL time.Duration,
) MovieService {
	return &movieService{
		searcher:   searcher,
		movieRepo:  movieRepo,
		reviewRepo: reviewRepo,
		cache:      cache,
		cacheTTL:   cacheTTL,
	}
}

func (s *movieService) cacheKey(query string) string {
	return fmt.Sprintf("tmdb:search:%s:%s", s.searcher.Language(), query)
}

func (s *movieService) cacheEnabled() bool {
	return s.cache != nil && s.cacheTTL > 0
}

// Search returns metadata API results for query, served from cache when possible.
func (s *movieService) Search(ctx context.Context, query string) ([]model.MovieSearchResult, error) {
	key := s.cacheKey(query)
	if s.cacheEnabled() {
		var cached []model.MovieSearchResult
		if s.cache.GetJSON(ctx, key, &cached) {
			return cached, nil
		}
	}

	results, err := s.searcher.SearchMovies(ctx, query)
	if err != nil {
		return nil, err
	}

	if s.cacheEnabled() {
		s.cache.SetJSON(ctx, key, results, s.cacheTTL)
	}
	return results, nil
}

// Save upserts the movie keyed by its metadata API id.
func (s *movieService) Save(ctx context.Context, input SaveMovieInput) (*model.Movie, error) {
	movie := &model.Movie{
		ID:         strconv.FormatInt(input.ID, 10),
		Title:      input.Title,
		PosterPath: nonEmpty(input.PosterPath),
		Overview:   nonEmpty(input.Overview),
	}
	if date := nonEmpty(input.ReleaseDate); date != nil {
		released, err := validation.ParseReleaseDate(*date)
		if err != nil {
			return nil, apperrors.NewValidationError("release_date", apperrors.MsgInvalidDate)
		}
		movie.ReleaseDate = &released
	}

	if err := s.movieRepo.Upsert(ctx, movie); err != nil {
		return nil, fmt.Errorf("upsert movie: %w", err)
	}

	saved, err := s.movieRepo.FindByID(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("reload movie: %w", err)
	}
	return saved, nil
}

// Get returns a stored movie with its review count and average rating rounded to one decimal.
func (s *movieService) Get(ctx context.Context, id string) (*MovieDetail, error) {
	movie, err := s.movieRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMovieNotFound
		}
		return nil, fmt.Errorf("find movie: %w", err)
	}

	summary, err := s.reviewRepo.RatingSummary(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}

	return &MovieDetail{
		Movie:         *movie,
		ReviewCount:   summary.Count,
		AverageRating: decimal.NewFromFloat(summary.Average).Round(1),
	}, nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
