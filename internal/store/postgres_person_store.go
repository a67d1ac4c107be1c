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

// PostgresPersonStore implements PersonStore for PostgreSQL.
//
// Expected schema:
//
//	people(id BIGSERIAL PRIMARY KEY, name TEXT NOT NULL,
//	       date_of_birth TIMESTAMPTZ, created_at TIMESTAMPTZ NOT NULL,
//	       modified_at TIMESTAMPTZ)
type PostgresPersonStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewPostgresPersonStore creates a new PostgresPersonStore.
func NewPostgresPersonStore(db *sqlx.DB, logger *slog.Logger) (*PostgresPersonStore, error) {
	if db == nil {
		return nil, errors.New("database connection (db) cannot be nil")
	}
	return &PostgresPersonStore{db: db, logger: logger}, nil
}

// Create inserts a new person and assigns the store-generated id.
func (s *PostgresPersonStore) Create(ctx context.Context, person *domain.Person) error {
	query := `INSERT INTO people (name, date_of_birth, created_at)
              VALUES ($1, $2, $3) RETURNING id`

	person.CreatedAt = time.Now().UTC()
	person.ModifiedAt = nil

	s.logger.DebugContext(ctx, "Executing Create person query", slog.String("name", person.Name))
	err := s.db.QueryRowxContext(ctx, query, person.Name, person.DateOfBirth, person.CreatedAt).Scan(&person.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to create person in DB", slog.String("error", err.Error()))
		return fmt.Errorf("failed to create person: %w", err)
	}
	s.logger.InfoContext(ctx, "Person created successfully in DB", slog.Int64("personID", person.ID))
	return nil
}

// GetByID finds a person by id.
func (s *PostgresPersonStore) GetByID(ctx context.Context, id int64) (*domain.Person, error) {
	query := `SELECT id, name, date_of_birth, created_at, modified_at
              FROM people WHERE id = $1`
	var person domain.Person

	s.logger.DebugContext(ctx, "Executing GetPersonByID query", slog.Int64("personID", id))
	err := s.db.GetContext(ctx, &person, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.WarnContext(ctx, "Person not found by ID in DB", slog.Int64("personID", id))
			return nil, ErrPersonNotFound
		}
		s.logger.ErrorContext(ctx, "Failed to get person by ID from DB", slog.Int64("personID", id), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get person by ID: %w", err)
	}
	return &person, nil
}

// GetByIDs returns all people whose id is in ids. Ids that match no record
// are absent from the result; callers detect dangling references by
// comparing the result length with the number of distinct requested ids.
func (s *PostgresPersonStore) GetByIDs(ctx context.Context, ids []int64) ([]domain.Person, error) {
	people := []domain.Person{}
	if len(ids) == 0 {
		return people, nil
	}

	query := `SELECT id, name, date_of_birth, created_at, modified_at
              FROM people WHERE id = ANY($1) ORDER BY id ASC`

	s.logger.DebugContext(ctx, "Executing GetPersonsByIDs query", slog.Any("personIDs", ids))
	if err := s.db.SelectContext(ctx, &people, query, pq.Array(ids)); err != nil {
		s.logger.ErrorContext(ctx, "Failed to get people by IDs from DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get people by IDs: %w", err)
	}
	return people, nil
}

// List returns one page of people in ascending id order plus the total count.
func (s *PostgresPersonStore) List(ctx context.Context, params ListParams) ([]*domain.Person, int, error) {
	var totalCount int
	if err := s.db.GetContext(ctx, &totalCount, `SELECT COUNT(*) FROM people`); err != nil {
		s.logger.ErrorContext(ctx, "Failed to count people in DB", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to count people: %w", err)
	}

	if totalCount == 0 {
		return []*domain.Person{}, 0, nil
	}

	query := `SELECT id, name, date_of_birth, created_at, modified_at
              FROM people ORDER BY id ASC LIMIT $1 OFFSET $2`

	var people []*domain.Person
	s.logger.DebugContext(ctx, "Executing List people query", slog.Int("pageIndex", params.PageIndex), slog.Int("pageSize", params.PageSize))
	if err := s.db.SelectContext(ctx, &people, query, params.PageSize, params.Offset()); err != nil {
		s.logger.ErrorContext(ctx, "Failed to list people from DB", slog.String("error", err.Error()))
		return nil, 0, fmt.Errorf("failed to list people: %w", err)
	}
	return people, totalCount, nil
}

// Search returns all people whose name contains text, matched
// case-insensitively. The result is not paginated.
func (s *PostgresPersonStore) Search(ctx context.Context, text string) ([]*domain.Person, error) {
	query := `SELECT id, name, date_of_birth, created_at, modified_at
              FROM people WHERE LOWER(name) LIKE LOWER($1) ORDER BY id ASC`

	var people []*domain.Person
	s.logger.DebugContext(ctx, "Executing Search people query", slog.String("text", text))
	if err := s.db.SelectContext(ctx, &people, query, "%"+text+"%"); err != nil {
		s.logger.ErrorContext(ctx, "Failed to search people in DB", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to search people: %w", err)
	}
	if people == nil {
		people = []*domain.Person{}
	}
	return people, nil
}

// Update overwrites the person's fields and stamps ModifiedAt.
func (s *PostgresPersonStore) Update(ctx context.Context, person *domain.Person) error {
	query := `UPDATE people SET name = $1, date_of_birth = $2, modified_at = $3 WHERE id = $4`

	modifiedAt := time.Now().UTC()
	person.ModifiedAt = &modifiedAt

	s.logger.DebugContext(ctx, "Executing Update person query", slog.Int64("personID", person.ID))
	result, err := s.db.ExecContext(ctx, query, person.Name, person.DateOfBirth, person.ModifiedAt, person.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to update person in DB", slog.Int64("personID", person.ID), slog.String("error", err.Error()))
		return fmt.Errorf("failed to update person: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No person found to update in DB", slog.Int64("personID", person.ID))
		return ErrPersonNotFound
	}
	s.logger.InfoContext(ctx, "Person updated successfully in DB", slog.Int64("personID", person.ID))
	return nil
}

// Delete removes the person. Cast rows referencing them go away through the
// association table's ON DELETE CASCADE.
func (s *PostgresPersonStore) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM people WHERE id = $1`

	s.logger.DebugContext(ctx, "Executing Delete person query", slog.Int64("personID", id))
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete person from DB", slog.Int64("personID", id), slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete person: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		s.logger.WarnContext(ctx, "No person found to delete in DB", slog.Int64("personID", id))
		return ErrPersonNotFound
	}
	s.logger.InfoContext(ctx, "Person deleted successfully from DB", slog.Int64("personID", id))
	return nil
}
