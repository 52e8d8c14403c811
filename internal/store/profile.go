package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
)

// ProfileStore defines the interface for birth profile persistence.
type ProfileStore interface {
	// Create saves a new profile.
	// Returns validation errors from the domain Profile if data is invalid.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByID retrieves a profile by its unique ID.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// ListByUser returns the user's profiles, oldest first.
	// Returns an empty slice if the user has none.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Profile, error)

	// Update saves changes to an existing profile.
	// Returns ErrProfileNotFound if the profile does not exist.
	Update(ctx context.Context, profile *domain.Profile) error

	// Delete removes a profile and, through the schema, its readings.
	// Returns ErrProfileNotFound if the profile does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a ProfileStore that uses the provided transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
