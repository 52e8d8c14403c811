package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
)

// UserStore persists accounts. Users returned by the getters carry the
// password hash and never the plaintext.
type UserStore interface {
	// Create validates the user, hashes its plaintext password and saves
	// it. A taken email yields ErrEmailExists.
	Create(ctx context.Context, user *domain.User) error

	// GetByID returns ErrUserNotFound for an unknown ID.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail matches case-insensitively and returns ErrUserNotFound
	// when nothing matches.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update saves the email and password. A non-empty Password is
	// re-hashed; otherwise HashedPassword is kept as is.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes the user together with its profiles and readings.
	Delete(ctx context.Context, id uuid.UUID) error

	WithTx(tx *sql.Tx) UserStore
}
