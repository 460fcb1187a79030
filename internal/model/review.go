package model

import "time"

// Review is a user's rating and commentary on a movie.
type Review struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	MovieID        string    `json:"movieId" gorm:"size:32;not null;index"`
	UserID         uint      `json:"userId" gorm:"not null;index"`
	Rating         int       `json:"rating" gorm:"not null;index"`
	CommentGeneral *string   `json:"comment_general" gorm:"size:1000"`
	CommentSpoiler *string   `json:"comment_spoiler" gorm:"size:1000"`
	CreatedAt      time.Time `json:"created_at" gorm:"index"`

	// Relations, only populated by list queries.
	Author *ReviewAuthor `json:"author,omitempty" gorm:"foreignKey:UserID"`
	Movie  *ReviewMovie  `json:"movie,omitempty" gorm:"foreignKey:MovieID"`
}

// ReviewAuthor is the public projection of a review's author.
type ReviewAuthor struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// TableName maps the projection onto the users table.
func (ReviewAuthor) TableName() string { return "users" }

// ReviewMovie is the projection of the reviewed movie embedded in review listings.
type ReviewMovie struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	PosterPath  *string    `json:"poster_path"`
	ReleaseDate *time.Time `json:"release_date"`
}

// TableName maps the projection onto the movies table.
func (ReviewMovie) TableName() string { return "movies" }
