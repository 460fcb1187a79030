package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moviereview/internal/model"
)

// MovieRepository persists local copies of metadata API movies.
type MovieRepository interface {
	// Upsert inserts the movie or refreshes the stored copy with the same id.
	// On conflict title and release_date are always overwritten; poster_path
	// and overview only when set.
	Upsert(ctx context.Context, movie *model.Movie) error
	FindByID(ctx context.Context, id string) (*model.Movie, error)
}

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository builds a GORM-backed repository.
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

func (r *movieRepository) Upsert(ctx context.Context, movie *model.Movie) error {
	columns := []string{"title", "release_date", "updated_at"}
	if movie.PosterPath != nil {
		columns = append(columns, "poster_path")
	}
	if movie.Overview != nil {
		columns = append(columns, "overview")
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(movie).Error
}

func (r *movieRepository) FindByID(ctx context.Context, id string) (*model.Movie, error) {
	var movie model.Movie
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&movie).Error; err != nil {
		return nil, err
	}
	return &movie, nil
}
