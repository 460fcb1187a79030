package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"moviereview/internal/auth"
	apperrors "moviereview/internal/errors"
	"moviereview/internal/events"
	"moviereview/internal/model"
	"moviereview/internal/repository"
)

// CreateReviewInput is a validated review submission.
type CreateReviewInput struct {
	MovieID        string
	Rating         int
	CommentGeneral string
	CommentSpoiler string
}

// ReviewService handles review creation and listing.
type ReviewService interface {
	Create(ctx context.Context, author auth.Identity, input CreateReviewInput) (*model.Review, error)
	List(ctx context.Context, q repository.ReviewQuery) ([]model.Review, error)
	Latest(ctx context.Context) ([]model.Review, error)
}

type reviewService struct {
	repo      repository.ReviewRepository
	publisher events.Publisher
	log       *zap.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(repo repository.ReviewRepository, publisher events.Publisher, log *zap.Logger) ReviewService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &reviewService{repo: repo, publisher: publisher, log: log}
}

// Create stores a review authored by the given identity and announces it.
func (s *reviewService) Create(ctx context.Context, author auth.Identity, input CreateReviewInput) (*model.Review, error) {
	if author.UserID == 0 {
		return nil, apperrors.ErrTokenMissing
	}

	review := &model.Review{
		MovieID:        input.MovieID,
		UserID:         author.UserID,
		Rating:         input.Rating,
		CommentGeneral: nonEmpty(&input.CommentGeneral),
		CommentSpoiler: nonEmpty(&input.CommentSpoiler),
	}
	if err := s.repo.Create(ctx, review); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, apperrors.NewValidationError("movieId", apperrors.MsgMovieReference)
		}
		return nil, fmt.Errorf("create review: %w", err)
	}

	err := s.publisher.PublishReviewCreated(ctx, events.ReviewCreated{
		ReviewID:  review.ID,
		MovieID:   review.MovieID,
		UserID:    review.UserID,
		Rating:    review.Rating,
		CreatedAt: review.CreatedAt,
	})
	if err != nil {
		s.log.Warn("publish review_created failed", zap.Uint("review_id", review.ID), zap.Error(err))
	}

	return review, nil
}

// List returns reviews matching q with author and movie loaded.
func (s *reviewService) List(ctx context.Context, q repository.ReviewQuery) ([]model.Review, error) {
	reviews, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// Latest returns the most recent reviews.
func (s *reviewService) Latest(ctx context.Context) ([]model.Review, error) {
	reviews, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest reviews: %w", err)
	}
	return reviews, nil
}
