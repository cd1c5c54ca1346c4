// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mfonseca/acamp/internal/models"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists is returned when an insert violates a uniqueness
	// constraint (tribe/sector names, edition sequence numbers, user
	// emails).
	ErrAlreadyExists = errors.New("already exists")
)

// Store defines the interface for the camp manager's storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// Editions.
	CreateEdition(ctx context.Context, edition *models.Edition) error
	GetEdition(ctx context.Context, id string) (*models.Edition, error)
	ListEditions(ctx context.Context) ([]models.Edition, error)
	UpdateEdition(ctx context.Context, edition *models.Edition) error
	// DeleteEdition removes the edition and, via schema cascade, its
	// people and their payments.
	DeleteEdition(ctx context.Context, id string) error

	// People.
	CreatePerson(ctx context.Context, person *models.Person) error
	// GetPersonDetail returns the person joined with edition, tribe
	// name, payments and sector assignments.
	GetPersonDetail(ctx context.Context, id string) (*models.PersonDetail, error)
	// ListPeople returns the people of an edition ordered by name. kind
	// filters by participant/staff when non-empty.
	ListPeople(ctx context.Context, editionID string, kind models.PersonKind) ([]models.Person, error)
	UpdatePerson(ctx context.Context, person *models.Person) error
	// SetTribe assigns (or, with empty tribeID, clears) a person's tribe.
	SetTribe(ctx context.Context, personID, tribeID string) error
	// ReplaceSectors replaces a person's sector assignments with exactly
	// sectorIDs, atomically: either the full new set is stored or the
	// prior set survives.
	ReplaceSectors(ctx context.Context, personID string, sectorIDs []string) error
	ListPersonSectors(ctx context.Context, personID string) ([]models.Sector, error)

	// Tribes and sectors.
	CreateTribe(ctx context.Context, tribe *models.Tribe) error
	ListTribes(ctx context.Context) ([]models.Tribe, error)
	DeleteTribe(ctx context.Context, id string) error
	CreateSector(ctx context.Context, sector *models.Sector) error
	ListSectors(ctx context.Context) ([]models.Sector, error)
	DeleteSector(ctx context.Context, id string) error

	// Payments.
	CreatePayment(ctx context.Context, payment *models.Payment) error
	DeletePayment(ctx context.Context, id string) error
	ListPayments(ctx context.Context, personID string) ([]models.Payment, error)

	// Users and profiles.
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	UpsertProfile(ctx context.Context, profile *models.Profile) error

	// Close releases any resources held by the store.
	Close() error
}
