package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/platform/logger"
	"github.com/phrazzld/ziwei-api/internal/redact"
	"github.com/phrazzld/ziwei-api/internal/store"
)

// PostgresReadingStore implements store.ReadingStore on the readings table.
type PostgresReadingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.ReadingStore = (*PostgresReadingStore)(nil)

// NewPostgresReadingStore creates a reading store. If log is nil the
// default logger is used.
func NewPostgresReadingStore(db store.DBTX, log *slog.Logger) *PostgresReadingStore {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresReadingStore{db: db, logger: log.With(slog.String("component", "reading_store"))}
}

// WithTx implements store.ReadingStore.WithTx
func (s *PostgresReadingStore) WithTx(tx *sql.Tx) store.ReadingStore {
	return &PostgresReadingStore{db: tx, logger: s.logger}
}

// Create implements store.ReadingStore.Create
func (s *PostgresReadingStore) Create(ctx context.Context, r *domain.Reading) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if err := r.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO readings (id, user_id, profile_id, status, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.ID, r.UserID, r.ProfileID, string(r.Status), r.Content, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		log.Error("failed to create reading",
			slog.String("error", redact.Error(err)),
			slog.String("reading_id", r.ID.String()),
			slog.String("profile_id", r.ProfileID.String()))
		return MapError(err, store.ErrReadingNotFound)
	}
	log.Info("reading created",
		slog.String("reading_id", r.ID.String()),
		slog.String("profile_id", r.ProfileID.String()))
	return nil
}

// GetByID implements store.ReadingStore.GetByID
func (s *PostgresReadingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reading, error) {
	var r domain.Reading
	var status string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, profile_id, status, content, created_at, updated_at
		FROM readings WHERE id = $1`, id).Scan(
		&r.ID, &r.UserID, &r.ProfileID, &status, &r.Content, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, MapError(err, store.ErrReadingNotFound)
	}
	r.Status = domain.ReadingStatus(status)
	return &r, nil
}

// Update implements store.ReadingStore.Update
func (s *PostgresReadingStore) Update(ctx context.Context, r *domain.Reading) error {
	if err := r.Validate(); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE readings SET status = $1, content = $2, updated_at = $3
		WHERE id = $4`,
		string(r.Status), r.Content, r.UpdatedAt, r.ID)
	if err != nil {
		return MapError(err, store.ErrReadingNotFound)
	}
	return CheckRowsAffected(result, store.ErrReadingNotFound)
}

// UpdateStatus implements store.ReadingStore.UpdateStatus
func (s *PostgresReadingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReadingStatus) error {
	probe := domain.Reading{ID: id}
	if err := probe.UpdateStatus(status); err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, `
		UPDATE readings SET status = $1, updated_at = $2 WHERE id = $3`,
		string(status), time.Now().UTC(), id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update reading status",
			slog.String("error", redact.Error(err)),
			slog.String("reading_id", id.String()),
			slog.String("status", string(status)))
		return MapError(err, store.ErrReadingNotFound)
	}
	return CheckRowsAffected(result, store.ErrReadingNotFound)
}
