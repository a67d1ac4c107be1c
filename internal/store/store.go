package store

import (
	"context"
	"errors"

	"catalog-service/internal/domain"
)

var (
	ErrMovieNotFound  = errors.New("movie not found")
	ErrPersonNotFound = errors.New("person not found")
)

// ListParams is the shared pagination contract: PageIndex is zero-based,
// PageSize is the number of records per page. Stores return pages in
// ascending id order, sliced at [PageIndex*PageSize, PageIndex*PageSize+PageSize).
type ListParams struct {
	PageIndex int
	PageSize  int
}

// Offset returns the number of records to skip.
func (p ListParams) Offset() int {
	return p.PageIndex * p.PageSize
}

// MovieStore is the persistence contract for movies and their casts.
type MovieStore interface {
	// Create persists a new movie together with its cast and assigns its id.
	// movie.Actors must already be resolved to existing people.
	Create(ctx context.Context, movie *domain.Movie) error
	// GetByID returns the movie with its cast loaded, or ErrMovieNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Movie, error)
	// List returns one page of movies (casts loaded) and the total count.
	List(ctx context.Context, params ListParams) ([]*domain.Movie, int, error)
	// Update overwrites the movie's scalar fields and applies the cast delta.
	// Returns ErrMovieNotFound when the id does not exist.
	Update(ctx context.Context, movie *domain.Movie, delta domain.CastDelta) error
	// TitlesByActor returns the titles of all movies whose cast contains the
	// given person, in ascending movie id order.
	TitlesByActor(ctx context.Context, personID int64) ([]string, error)
}

// PersonStore is the persistence contract for people.
type PersonStore interface {
	// Create persists a new person, assigns its id and sets CreatedAt.
	Create(ctx context.Context, person *domain.Person) error
	// GetByID returns the person or ErrPersonNotFound.
	GetByID(ctx context.Context, id int64) (*domain.Person, error)
	// GetByIDs returns the people matching the given ids. Missing ids are
	// simply absent from the result; callers compare counts to detect them.
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Person, error)
	// List returns one page of people and the total count.
	List(ctx context.Context, params ListParams) ([]*domain.Person, int, error)
	// Search returns all people whose name contains text, case-insensitively.
	Search(ctx context.Context, text string) ([]*domain.Person, error)
	// Update overwrites the person's fields and sets ModifiedAt. Returns
	// ErrPersonNotFound when the id does not exist.
	Update(ctx context.Context, person *domain.Person) error
	// Delete removes the person and, through the association table's cascade,
	// any cast rows referencing them. Returns ErrPersonNotFound when absent.
	Delete(ctx context.Context, id int64) error
}
