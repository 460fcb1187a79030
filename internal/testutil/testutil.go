// Package testutil provides an in-memory database and fixtures for tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"moviereview/internal/auth"
	"moviereview/internal/db"
	"moviereview/internal/model"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// NewTestDB opens a migrated in-memory sqlite database with foreign keys enforced.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gormDB, err := db.Open("sqlite", "file::memory:?_pragma=foreign_keys(1)")
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// Every connection to :memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return gormDB
}

// CreateUser stores an active USER with TestPassword.
func CreateUser(t *testing.T, gormDB *gorm.DB, name, email string) *model.User {
	t.Helper()

	hash, err := auth.HashPassword(TestPassword)
	require.NoError(t, err)

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
		Status:       model.UserStatusActive,
	}
	require.NoError(t, gormDB.Create(user).Error)
	return user
}

// CreateMovie stores a movie with the given id and title.
func CreateMovie(t *testing.T, gormDB *gorm.DB, id, title string) *model.Movie {
	t.Helper()

	poster := "/" + id + ".jpg"
	released := time.Date(2010, 7, 16, 0, 0, 0, 0, time.UTC)
	movie := &model.Movie{ID: id, Title: title, PosterPath: &poster, ReleaseDate: &released}
	require.NoError(t, gormDB.Create(movie).Error)
	return movie
}

// CreateReview stores a review with an explicit creation time so ordering is deterministic.
func CreateReview(t *testing.T, gormDB *gorm.DB, userID uint, movieID string, rating int, createdAt time.Time) *model.Review {
	t.Helper()

	comment := "comment"
	review := &model.Review{
		MovieID:        movieID,
		UserID:         userID,
		Rating:         rating,
		CommentGeneral: &comment,
		CreatedAt:      createdAt,
	}
	require.NoError(t, gormDB.Create(review).Error)
	return review
}
