package domain

import (
	"time"
)

// Read-facing view shapes. Each projection below is a plain function mapping
// a persisted entity to one view, so every exposed field is explicit.

// ActorView is the cast entry shown inside movie views.
type ActorView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

// MovieListView is the movie shape returned by the list endpoint.
type MovieListView struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Actors      []ActorView `json:"actors"`
	Language    string      `json:"language"`
	ReleaseDate time.Time   `json:"releaseDate"`
	CoverImage  string      `json:"coverImage"`
}

// MovieDetailView is the movie shape returned by get, create and update.
type MovieDetailView struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Actors      []ActorView `json:"actors"`
	Language    string      `json:"language"`
	ReleaseDate time.Time   `json:"releaseDate"`
	CoverImage  string      `json:"coverImage"`
}

// PersonSummary is the person shape returned by list, create and update.
type PersonSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

// PersonDetailView adds the derived list of movie titles the person
// appears in.
type PersonDetailView struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Movies      []string  `json:"movies"`
}

// PersonSearchResult is the shape returned by the name search endpoint.
type PersonSearchResult struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// NewActorView projects a Person into a movie cast entry.
func NewActorView(p Person) ActorView {
	return ActorView{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
	}
}

func newActorViews(cast []Person) []ActorView {
	views := make([]ActorView, 0, len(cast))
	for _, p := range cast {
		views = append(views, NewActorView(p))
	}
	return views
}

// NewMovieListView projects a Movie into its list shape.
func NewMovieListView(m *Movie) MovieListView {
	return MovieListView{
		ID:          m.ID,
		Title:       m.Title,
		Actors:      newActorViews(m.Actors),
		Language:    m.Language,
		ReleaseDate: m.ReleaseDate,
		CoverImage:  m.CoverImage,
	}
}

// NewMovieDetailView projects a Movie into its detail shape.
func NewMovieDetailView(m *Movie) MovieDetailView {
	return MovieDetailView{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Actors:      newActorViews(m.Actors),
		Language:    m.Language,
		ReleaseDate: m.ReleaseDate,
		CoverImage:  m.CoverImage,
	}
}

// NewPersonSummary projects a Person into its summary shape.
func NewPersonSummary(p *Person) PersonSummary {
	return PersonSummary{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
	}
}

// NewPersonDetailView projects a Person plus the derived movie titles into
// the detail shape.
func NewPersonDetailView(p *Person, movieTitles []string) PersonDetailView {
	if movieTitles == nil {
		movieTitles = []string{}
	}
	return PersonDetailView{
		ID:          p.ID,
		Name:        p.Name,
		DateOfBirth: p.DateOfBirth,
		Movies:      movieTitles,
	}
}

// NewPersonSearchResult projects a Person into a search hit.
func NewPersonSearchResult(p *Person) PersonSearchResult {
	return PersonSearchResult{
		ID:   p.ID,
		Name: p.Name,
	}
}
