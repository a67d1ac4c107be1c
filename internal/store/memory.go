package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"catalog-service/internal/domain"
)

// memoryState is the shared backing state for the in-memory stores. Movies,
// people and the cast association live together, so the cast invariants
// (actor existence, cascade on person delete, derived movie titles) behave
// the same as with the relational backend. Entities are copied on the way in
// and out; callers never share memory with the store.
type memoryState struct {
	mu           sync.RWMutex
	movies       map[int64]*domain.Movie
	people       map[int64]*domain.Person
	cast         map[int64]map[int64]bool // movie id -> set of person ids
	nextMovieID  int64
	nextPersonID int64
}

// MemoryMovieStore implements MovieStore in memory.
type MemoryMovieStore struct {
	state *memoryState
}

// MemoryPersonStore implements PersonStore in memory.
type MemoryPersonStore struct {
	state *memoryState
}

// NewMemoryStores creates a movie store and a person store over one shared
// in-memory state.
func NewMemoryStores() (*MemoryMovieStore, *MemoryPersonStore) {
	state := &memoryState{
		movies: make(map[int64]*domain.Movie),
		people: make(map[int64]*domain.Person),
		cast:   make(map[int64]map[int64]bool),
	}
	return &MemoryMovieStore{state: state}, &MemoryPersonStore{state: state}
}

// --- MovieStore ---

func (s *MemoryMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	m := s.state
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, actor := range movie.Actors {
		if _, ok := m.people[actor.ID]; !ok {
			return ErrPersonNotFound
		}
	}

	m.nextMovieID++
	movie.ID = m.nextMovieID
	movie.CreatedAt = time.Now().UTC()
	movie.UpdatedAt = movie.CreatedAt

	stored := *movie
	stored.Actors = nil
	m.movies[movie.ID] = &stored

	members := make(map[int64]bool, len(movie.Actors))
	for _, actor := range movie.Actors {
		members[actor.ID] = true
	}
	m.cast[movie.ID] = members
	return nil
}

func (s *MemoryMovieStore) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	m := s.state
	m.mu.RLock()
	defer m.mu.RUnlock()

	movie, ok := m.movies[id]
	if !ok {
		return nil, ErrMovieNotFound
	}
	return m.movieCopy(movie), nil
}

func (s *MemoryMovieStore) List(ctx context.Context, params ListParams) ([]*domain.Movie, int, error) {
	m := s.state
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.movies))
	for id := range m.movies {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	totalCount := len(ids)
	page := slicePage(ids, params)

	movies := make([]*domain.Movie, 0, len(page))
	for _, id := range page {
		movies = append(movies, m.movieCopy(m.movies[id]))
	}
	return movies, totalCount, nil
}

func (s *MemoryMovieStore) Update(ctx context.Context, movie *domain.Movie, delta domain.CastDelta) error {
	m := s.state
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.movies[movie.ID]
	if !ok {
		return ErrMovieNotFound
	}
	for _, actor := range delta.ToAdd {
		if _, ok := m.people[actor.ID]; !ok {
			return ErrPersonNotFound
		}
	}

	stored.Title = movie.Title
	stored.Description = movie.Description
	stored.Language = movie.Language
	stored.ReleaseDate = movie.ReleaseDate
	stored.CoverImage = movie.CoverImage
	stored.UpdatedAt = time.Now().UTC()
	movie.UpdatedAt = stored.UpdatedAt

	members := m.cast[movie.ID]
	if members == nil {
		members = make(map[int64]bool)
		m.cast[movie.ID] = members
	}
	for _, actor := range delta.ToRemove {
		delete(members, actor.ID)
	}
	for _, actor := range delta.ToAdd {
		members[actor.ID] = true
	}
	return nil
}

func (s *MemoryMovieStore) TitlesByActor(ctx context.Context, personID int64) ([]string, error) {
	m := s.state
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0)
	for movieID, members := range m.cast {
		if members[personID] {
			ids = append(ids, movieID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	titles := make([]string, 0, len(ids))
	for _, id := range ids {
		titles = append(titles, m.movies[id].Title)
	}
	return titles, nil
}

// --- PersonStore ---

func (s *MemoryPersonStore) Create(ctx context.Context, person *domain.Person) error {
	m := s.state
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextPersonID++
	person.ID = m.nextPersonID
	person.CreatedAt = time.Now().UTC()
	person.ModifiedAt = nil

	stored := *person
	m.people[person.ID] = &stored
	return nil
}

func (s *MemoryPersonStore) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	m := s.state
	m.mu.RLock()
	defer m.mu.RUnlock()

	person, ok := m.people[id]
	if !ok {
		return nil, ErrPersonNotFound
	}
	personCopy := *person
	return &personCopy, nil
}

func (s *MemoryPersonStore) GetByIDs(ctx context.Context, ids []int64) ([]domain.Person, error) {
	m := s.state
	m.mu.RLock()
	defer m.mu.RUnlock()

	found := make([]domain.Person, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if person, ok := m.people[id]; ok {
			found = append(found, *person)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found, nil
}

func (s *MemoryPersonStore) List(ctx context.Context, params ListParams) ([]*domain.Person, int, error) {
	m := s.state
	m.mu.RLock()
	defer m.mu.RUnlock()

	ids := make([]int64, 0, len(m.people))
	for id := range m.people {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	totalCount := len(ids)
	page := slicePage(ids, params)

	people := make([]*domain.Person, 0, len(page))
	for _, id := range page {
		personCopy := *m.people[id]
		people = append(people, &personCopy)
	}
	return people, totalCount, nil
}

func (s *MemoryPersonStore) Search(ctx context.Context, text string) ([]*domain.Person, error) {
	m := s.state
	m.mu.RLock()
	defer m.mu.RUnlock()

	needle := strings.ToLower(text)
	matches := make([]*domain.Person, 0)
	for _, person := range m.people {
		if strings.Contains(strings.ToLower(person.Name), needle) {
			personCopy := *person
			matches = append(matches, &personCopy)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches, nil
}

func (s *MemoryPersonStore) Update(ctx context.Context, person *domain.Person) error {
	m := s.state
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.people[person.ID]
	if !ok {
		return ErrPersonNotFound
	}
	modifiedAt := time.Now().UTC()
	stored.Name = person.Name
	stored.DateOfBirth = person.DateOfBirth
	stored.ModifiedAt = &modifiedAt
	person.ModifiedAt = &modifiedAt
	person.CreatedAt = stored.CreatedAt
	return nil
}

func (s *MemoryPersonStore) Delete(ctx context.Context, id int64) error {
	m := s.state
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.people[id]; !ok {
		return ErrPersonNotFound
	}
	delete(m.people, id)
	// Mirror the relational ON DELETE CASCADE on the association table.
	for _, members := range m.cast {
		delete(members, id)
	}
	return nil
}

// --- helpers ---

func (m *memoryState) movieCopy(movie *domain.Movie) *domain.Movie {
	movieCopy := *movie
	movieCopy.Actors = m.castOf(movie.ID)
	return &movieCopy
}

// castOf returns the movie's cast copied out in ascending person id order.
// Callers must hold at least the read lock.
func (m *memoryState) castOf(movieID int64) []domain.Person {
	members := m.cast[movieID]
	ids := make([]int64, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	actors := make([]domain.Person, 0, len(ids))
	for _, id := range ids {
		if person, ok := m.people[id]; ok {
			actors = append(actors, *person)
		}
	}
	return actors
}

func slicePage(ids []int64, params ListParams) []int64 {
	start := params.Offset()
	if start < 0 || start >= len(ids) {
		return nil
	}
	end := start + params.PageSize
	if end > len(ids) {
		end = len(ids)
	}
	return ids[start:end]
}
