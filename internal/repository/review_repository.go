package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moviereview/internal/model"
)

// ReviewSortColumn names a column reviews may be ordered by.
type ReviewSortColumn string

const (
	SortByCreatedAt ReviewSortColumn = "created_at"
	SortByRating    ReviewSortColumn = "rating"
)

// LatestReviewsLimit is the number of reviews returned by Latest.
const LatestReviewsLimit = 5

// ReviewQuery describes a review listing. Only the SortBy constants reach the
// ORDER BY clause; any other value falls back to created_at.
type ReviewQuery struct {
	SortBy ReviewSortColumn
	Desc   bool
	Rating *int
	Limit  int
}

// RatingSummary aggregates the ratings stored for one movie.
type RatingSummary struct {
	Count   int64
	Average float64
}

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	List(ctx context.Context, q ReviewQuery) ([]model.Review, error)
	Latest(ctx context.Context) ([]model.Review, error)
	RatingSummary(ctx context.Context, movieID string) (RatingSummary, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository builds a GORM-backed repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error
}

func (r *reviewRepository) List(ctx context.Context, q ReviewQuery) ([]model.Review, error) {
	column := SortByCreatedAt
	if q.SortBy == SortByRating {
		column = SortByRating
	}

	tx := r.withRelations(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Name: string(column)}, Desc: q.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: q.Desc})
	if q.Rating != nil {
		tx = tx.Where("rating = ?", *q.Rating)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}

	reviews := make([]model.Review, 0)
	if err := tx.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) Latest(ctx context.Context) ([]model.Review, error) {
	return r.List(ctx, ReviewQuery{SortBy: SortByCreatedAt, Desc: true, Limit: LatestReviewsLimit})
}

func (r *reviewRepository) RatingSummary(ctx context.Context, movieID string) (RatingSummary, error) {
	var summary RatingSummary
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COUNT(*) AS count, COALESCE(AVG(rating), 0) AS average").
		Where("movie_id = ?", movieID).
		Scan(&summary).Error
	return summary, err
}

// withRelations eager-loads the author's id and name and the movie's public fields.
func (r *reviewRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Movie", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "poster_path", "release_date")
		})
}
