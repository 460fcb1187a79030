package model

import "time"

// Movie is a locally persisted copy of an external (TMDb) movie record.
type Movie struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	Title       string     `json:"title" gorm:"size:255;not null"`
	ReleaseDate *time.Time `json:"release_date"`
	PosterPath  *string    `json:"poster_path" gorm:"size:255"`
	Overview    *string    `json:"overview" gorm:"type:text"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// MovieSearchResult is a single hit returned by the metadata API search.
type MovieSearchResult struct {
	ID            int64   `json:"id"`
	Title         string  `json:"title"`
	OriginalTitle string  `json:"original_title,omitempty"`
	Overview      string  `json:"overview,omitempty"`
	ReleaseDate   string  `json:"release_date,omitempty"`
	PosterPath    *string `json:"poster_path"`
	BackdropPath  *string `json:"backdrop_path,omitempty"`
	GenreIDs      []int   `json:"genre_ids,omitempty"`
	Popularity    float64 `json:"popularity,omitempty"`
	VoteAverage   float64 `json:"vote_average,omitempty"`
	VoteCount     int     `json:"vote_count,omitempty"`
	Adult         bool    `json:"adult"`
}
