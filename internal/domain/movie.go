package domain

import (
	"time"
)

// Movie is the domain model for a catalog movie. Actors holds the cast
// loaded from the association table; ordering of the slice carries no
// meaning.
type Movie struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Language    string    `json:"language" db:"language"`
	ReleaseDate time.Time `json:"releaseDate" db:"release_date"`
	CoverImage  string    `json:"coverImage" db:"cover_image"`
	Actors      []Person  `json:"actors" db:"-"`
	CreatedAt   time.Time `json:"-" db:"created_at"`
	UpdatedAt   time.Time `json:"-" db:"updated_at"`
}

// CreateMovieRequest is the request body for creating a movie. Actors lists
// the person ids making up the initial cast; every id must resolve to an
// existing person.
type CreateMovieRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Language    string    `json:"language" validate:"required"`
	ReleaseDate time.Time `json:"releaseDate"`
	CoverImage  string    `json:"coverImage"`
	Actors      []int64   `json:"actors"`
}

// UpdateMovieRequest is the request body for updating a movie. Scalar fields
// overwrite the stored record; Actors is the full requested cast, reconciled
// against the current one.
type UpdateMovieRequest struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Language    string    `json:"language" validate:"required"`
	ReleaseDate time.Time `json:"releaseDate"`
	CoverImage  string    `json:"coverImage"`
	Actors      []int64   `json:"actors"`
}
