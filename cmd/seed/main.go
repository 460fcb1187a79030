package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"gorm.io/gorm"

	"moviereview/internal/auth"
	"moviereview/internal/config"
	"moviereview/internal/db"
	"moviereview/internal/model"
	"moviereview/internal/repository"
)

const seedUserCount = 10

var seedMovies = []model.Movie{
	{ID: "1", Title: "テスト映画1"},
	{ID: "2", Title: "テスト映画2"},
}

type seeder struct {
	users    repository.UserRepository
	movies   repository.MovieRepository
	reviews  repository.ReviewRepository
	password string
	rating   func() int
}

func main() {
	log.Println("Starting seed script...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "seedpass123"
	}

	s := &seeder{
		users:    repository.NewUserRepository(gormDB),
		movies:   repository.NewMovieRepository(gormDB),
		reviews:  repository.NewReviewRepository(gormDB),
		password: password,
		rating:   func() int { return rand.IntN(5) + 1 },
	}

	created, reused, err := s.run(context.Background())
	if err != nil {
		log.Fatalf("Failed to seed: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New users with reviews created: %d", created)
	log.Printf("  - Existing users reused: %d", reused)
}

// run ensures the seed movies exist and creates each seed user with one review.
// Users already present are left untouched.
func (s *seeder) run(ctx context.Context) (created int, reused int, err error) {
	for i := range seedMovies {
		movie := seedMovies[i]
		_, err := s.movies.FindByID(ctx, movie.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, reused, fmt.Errorf("error checking movie %s: %w", movie.ID, err)
		}
		if err := s.movies.Upsert(ctx, &movie); err != nil {
			return created, reused, fmt.Errorf("error creating movie %s: %w", movie.ID, err)
		}
	}

	hash, err := auth.HashPassword(s.password)
	if err != nil {
		return created, reused, err
	}

	for i := 1; i <= seedUserCount; i++ {
		email := fmt.Sprintf("seeduser%d@example.com", i)

		existing, err := s.users.FindByEmail(ctx, email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return created, reused, fmt.Errorf("error checking user %s: %w", email, err)
		}
		if existing != nil {
			reused++
			continue
		}

		user := &model.User{
			Name:         fmt.Sprintf("Seed User %d", i),
			Email:        email,
			PasswordHash: hash,
			Role:         model.RoleUser,
			Status:       model.UserStatusActive,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return created, reused, fmt.Errorf("error creating user %s: %w", email, err)
		}

		comment := fmt.Sprintf("Test comment by %s", user.Name)
		movieID := seedMovies[1].ID
		if i%2 == 0 {
			movieID = seedMovies[0].ID
		}
		review := &model.Review{
			MovieID:        movieID,
			UserID:         user.ID,
			Rating:         s.rating(),
			CommentGeneral: &comment,
		}
		if err := s.reviews.Create(ctx, review); err != nil {
			return created, reused, fmt.Errorf("error creating review for %s: %w", email, err)
		}

		log.Printf("Created user: %s and their review.", user.Name)
		created++
	}

	return created, reused, nil
}
