package domain

import (
	"time"
)

// Person is the domain model for an actor. The movies a person appears in
// are not stored on the record; they are derived from the association table
// when the detail view is built.
type Person struct {
	ID          int64      `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	DateOfBirth time.Time  `json:"dateOfBirth" db:"date_of_birth"`
	CreatedAt   time.Time  `json:"-" db:"created_at"`
	ModifiedAt  *time.Time `json:"-" db:"modified_at"`
}

// CreatePersonRequest is the request body for creating a person.
type CreatePersonRequest struct {
	Name        string    `json:"name" validate:"required,max=50"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}

// UpdatePersonRequest is the request body for updating a person. The stored
// record is fully overwritten with the submitted fields.
type UpdatePersonRequest struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name" validate:"required,max=50"`
	DateOfBirth time.Time `json:"dateOfBirth"`
}
