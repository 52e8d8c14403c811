package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
)

// ReadingStore defines the interface for chart reading persistence.
type ReadingStore interface {
	// Create saves a new reading.
	// Returns validation errors from the domain Reading if data is invalid.
	Create(ctx context.Context, reading *domain.Reading) error

	// GetByID retrieves a reading by its unique ID.
	// Returns ErrReadingNotFound if the reading does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Reading, error)

	// Update saves the status and content of an existing reading.
	// Returns ErrReadingNotFound if the reading does not exist.
	Update(ctx context.Context, reading *domain.Reading) error

	// UpdateStatus updates only the status of an existing reading.
	// Returns ErrReadingNotFound if the reading does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReadingStatus) error

	// WithTx returns a ReadingStore that uses the provided transaction.
	WithTx(tx *sql.Tx) ReadingStore
}
