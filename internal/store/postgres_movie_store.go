package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"catalog-service/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// PostgresMovieStore implements MovieStore for PostgreSQL.
//
// Expected schema:
//
//	movies(id BIGSERIAL PRIMARY KEY, title TEXT NOT NULL, description TEXT,
//	       language TEXT NOT NULL, release_date TIMESTAMPTZ,
//	       cover_image TEXT, created_at TIMESTAMPTZ, updated_at TIMESTAMPTZ)
//	movie_actors(movie_id BIGINT REFERENCES movies(id) ON DELETE CASCADE,
//	             person_id BIGINT REFERENCES people(id) ON DELETE CASCADE,
//	             PRIMARY KEY (movie_id, person_id))
type PostgresMovieStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresMovieStore creates a new PostgresMovieStore.
func NewPostgresMovieStore(db *sqlx.DB, logger *slog.Logger) (*PostgresMovieStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresMovieStore{db: db, logger: logger}, nil
}

// Create inserts the movie and its cast rows in one transaction.
func (s *PostgresMovieStore) Create(ctx context.Context, movie *domain.Movie) error {
	query := `INSERT INTO movies (title, description, language, release_date, cover_image, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	movie.CreatedAt = time.Now().UTC()
	movie.UpdatedAt = movie.CreatedAt

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	s.logger.DebugContext(ctx, "Executing Create movie query", slog.String("title", movie.Title))
	err = tx.QueryRowxContext(ctx, query,
		movie.Title, movie.Description, movie.Language, movie.ReleaseDate,
		movie.CoverImage, movie.CreatedAt, movie.UpdatedAt,
	).Scan(&movie.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create movie in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create movie: %w", err)
	}

	if err := s.insertCast(ctx, tx, movie.ID, movie.Actors); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit movie creation: %w", err)
	}
	s.logger.InfoContext(ctx, "Movie created successfully in DB", slog.Int64("movieID", movie.ID))
	return nil
}

// GetByID returns the movie with its cast loaded.
func (s *PostgresMovieStore) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	query := `SELECT id, title, description, language, release_date, cover_image, created_at, updated_at
              FROM movies WHERE id = $1`
	var movie domain.Movie

	s.logger.DebugContext(ctx, "Executing GetMovieByID query", slog.Int64("movieID", id))
	err := s.db.GetContext(ctx, &movie, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Movie not found by ID in DB", slog.Int64("movieID", id))
			return nil, ErrMovieNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get movie by ID from DB", slog.Int64("movieID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get movie by ID: %w", err)
	}

	cast, err := s.loadCast(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	movie.Actors = cast[id]
	if movie.Actors == nil {
		movie.Actors = []domain.Person{}
	}
	return &movie, nil
}

// List returns one page of movies in ascending id order plus the total count.
func (s *PostgresMovieStore) List(ctx context.Context, params ListParams) ([]*domain.Movie, int, error) {
	var totalCount int
	if err := s.db.GetContext(ctx, &totalCount, `SELECT COUNT(*) FROM movies`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to count movies in DB", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to count movies: %w", err)
	}

	if totalCount == 0 {
		return []*domain.Movie{}, 0, nil
	}

	query := `SELECT id, title, description, language, release_date, cover_image, created_at, updated_at
              FROM movies ORDER BY id ASC LIMIT $1 OFFSET $2`

	var rows []*domain.Movie
	s.logger.DebugContext(ctx, "Executing List movies query", slog.Int("pageIndex", params.PageIndex), slog.Int("pageSize", params.PageSize))
	if err := s.db.SelectContext(ctx, &rows, query, params.PageSize, params.Offset()); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list movies from DB", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to list movies: %w", err)
	}

	ids := make([]int64, 0, len(rows))
	for _, m := range rows {
		ids = append(ids, m.ID)
	}
	cast, err := s.loadCast(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for _, m := range rows {
		m.Actors = cast[m.ID]
		if m.Actors == nil {
			m.Actors = []domain.Person{}
		}
	}
	return rows, totalCount, nil
}

// Update overwrites the movie's scalar fields and applies the cast delta in
// one transaction.
func (s *PostgresMovieStore) Update(ctx context.Context, movie *domain.Movie, delta domain.CastDelta) error {
	query := `UPDATE movies SET title = $1, description = $2, language = $3, release_date = $4, cover_image = $5, updated_at = $6
              WHERE id = $7`

	movie.UpdatedAt = time.Now().UTC()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	s.logger.DebugContext(ctx, "Executing Update movie query", slog.Int64("movieID", movie.ID))
	result, err := tx.ExecContext(ctx, query,
		movie.Title, movie.Description, movie.Language, movie.ReleaseDate,
		movie.CoverImage, movie.UpdatedAt, movie.ID,
	)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update movie in DB", slog.Int64("movieID", movie.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update movie: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No movie found to update in DB", slog.Int64("movieID", movie.ID))
		return ErrMovieNotFound
	}

	if len(delta.ToRemove) > 0 {
		removeIDs := make([]int64, 0, len(delta.ToRemove))
		for _, p := range delta.ToRemove {
			removeIDs = append(removeIDs, p.ID)
		}
		_, err = tx.ExecContext(ctx,
			`DELETE FROM movie_actors WHERE movie_id = $1 AND person_id = ANY($2)`,
			movie.ID, pq.Array(removeIDs),
		)
		if err != nil {
			s.logger.ErrorContext(ctx, "Failed to remove cast members in DB", slog.Int64("movieID", movie.ID), slog.String("error", err.Error()))
			return fmt.Errorf("failed to remove cast members: %w", err)
		}
	}

	if err := s.insertCast(ctx, tx, movie.ID, delta.ToAdd); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit movie update: %w", err)
	}
	s.logger.InfoContext(ctx, "Movie updated successfully in DB",
		slog.Int64("movieID", movie.ID),
		slog.Int("castAdded", len(delta.ToAdd)),
		slog.Int("castRemoved", len(delta.ToRemove)))
	return nil
}

// TitlesByActor returns the titles of movies whose cast contains the person.
func (s *PostgresMovieStore) TitlesByActor(ctx context.Context, personID int64) ([]string, error) {
	query := `SELECT m.title FROM movies m
              JOIN movie_actors ma ON ma.movie_id = m.id
              WHERE ma.person_id = $1 ORDER BY m.id ASC`

	titles := []string{}
	s.logger.DebugContext(ctx, "Executing TitlesByActor query", slog.Int64("personID", personID))
	if err := s.db.SelectContext(ctx, &titles, query, personID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to load movie titles for person from DB", slog.Int64("personID", personID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load movie titles for person: %w", err)
	}
	return titles, nil
}

func (s *PostgresMovieStore) insertCast(ctx context.Context, tx *sqlx.Tx, movieID int64, actors []domain.Person) error {
	for _, actor := range actors {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO movie_actors (movie_id, person_id) VALUES ($1, $2)`,
			movieID, actor.ID,
		)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code == "23503" { // foreign_key_violation
				s.logger.WarnContext(ctx, "Cast member does not exist (FK violation in DB)",
					slog.Int64("movieID", movieID),
					slog.Int64("personID", actor.ID),
					slog.String("constraint", pqErr.Constraint))
				return ErrPersonNotFound
			}
			s.logger.ErrorContext(ctx, "Failed to insert cast member in DB",
				slog.Int64("movieID", movieID),
				slog.Int64("personID", actor.ID),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to insert cast member: %w", err)
		}
	}
	return nil
}

// loadCast returns the cast of each given movie id, keyed by movie id.
func (s *PostgresMovieStore) loadCast(ctx context.Context, movieIDs []int64) (map[int64][]domain.Person, error) {
	cast := make(map[int64][]domain.Person, len(movieIDs))
	if len(movieIDs) == 0 {
		return cast, nil
	}

	query := `SELECT ma.movie_id, p.id, p.name, p.date_of_birth, p.created_at, p.modified_at
              FROM movie_actors ma
              JOIN people p ON p.id = ma.person_id
              WHERE ma.movie_id = ANY($1) ORDER BY ma.movie_id, p.id`

	rows, err := s.db.QueryxContext(ctx, query, pq.Array(movieIDs))
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to load movie casts from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load movie casts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var movieID int64
		var p domain.Person
		if err := rows.Scan(&movieID, &p.ID, &p.Name, &p.DateOfBirth, &p.CreatedAt, &p.ModifiedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cast row: %w", err)
		}
		cast[movieID] = append(cast[movieID], p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cast rows: %w", err)
	}
	return cast, nil
}
