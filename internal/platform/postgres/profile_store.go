package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/phrazzld/ziwei-api/internal/platform/logger"
	"github.com/phrazzld/ziwei-api/internal/redact"
	"github.com/phrazzld/ziwei-api/internal/store"
)

const profileColumns = `id, user_id, name, lunar_year, lunar_month, lunar_day, hour,
	year_stem, year_branch, created_at, updated_at`

// PostgresProfileStore implements store.ProfileStore on the birth_profiles table.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// NewPostgresProfileStore creates a profile store. If log is nil the
// default logger is used.
func NewPostgresProfileStore(db store.DBTX, log *slog.Logger) *PostgresProfileStore {
	if log == nil {
		log = slog.Default()
	}
	return &PostgresProfileStore{db: db, logger: log.With(slog.String("component", "profile_store"))}
}

// WithTx implements store.ProfileStore.WithTx
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{db: tx, logger: s.logger}
}

func nullStem(s *ziwei.Stem) sql.NullInt16 {
	if s == nil {
		return sql.NullInt16{}
	}
	return sql.NullInt16{Int16: int16(*s), Valid: true}
}

func nullBranch(b *ziwei.Branch) sql.NullInt16 {
	if b == nil {
		return sql.NullInt16{}
	}
	return sql.NullInt16{Int16: int16(*b), Valid: true}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*domain.Profile, error) {
	var p domain.Profile
	var hour int16
	var stem, branch sql.NullInt16
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.LunarYear, &p.LunarMonth, &p.LunarDay,
		&hour, &stem, &branch, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Hour = ziwei.Branch(hour)
	if stem.Valid {
		s := ziwei.Stem(stem.Int16)
		p.YearStem = &s
	}
	if branch.Valid {
		b := ziwei.Branch(branch.Int16)
		p.YearBranch = &b
	}
	return &p, nil
}

// Create implements store.ProfileStore.Create
func (s *PostgresProfileStore) Create(ctx context.Context, p *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := p.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", redact.Error(err)),
			slog.String("profile_id", p.ID.String()))
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO birth_profiles (`+profileColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.UserID, p.Name, p.LunarYear, p.LunarMonth, p.LunarDay, int16(p.Hour),
		nullStem(p.YearStem), nullBranch(p.YearBranch), p.CreatedAt, p.UpdatedAt)
	if err != nil {
		log.Error("failed to create profile",
			slog.String("error", redact.Error(err)),
			slog.String("profile_id", p.ID.String()),
			slog.String("user_id", p.UserID.String()))
		return MapError(err, store.ErrProfileNotFound)
	}

	log.Info("profile created",
		slog.String("profile_id", p.ID.String()),
		slog.String("user_id", p.UserID.String()))
	return nil
}

// GetByID implements store.ProfileStore.GetByID
func (s *PostgresProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM birth_profiles WHERE id = $1`, id)
	p, err := scanProfile(row)
	if err != nil {
		return nil, MapError(err, store.ErrProfileNotFound)
	}
	return p, nil
}

// ListByUser implements store.ProfileStore.ListByUser
func (s *PostgresProfileStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Profile, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+profileColumns+` FROM birth_profiles
		WHERE user_id = $1
		ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to list profiles",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
		return nil, MapError(err, nil)
	}
	defer func() { _ = rows.Close() }()

	profiles := make([]*domain.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, MapError(err, nil)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err, nil)
	}
	return profiles, nil
}

// Update implements store.ProfileStore.Update
func (s *PostgresProfileStore) Update(ctx context.Context, p *domain.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	p.UpdatedAt = time.Now().UTC()

	result, err := s.db.ExecContext(ctx, `
		UPDATE birth_profiles
		SET name = $1, lunar_year = $2, lunar_month = $3, lunar_day = $4, hour = $5,
		    year_stem = $6, year_branch = $7, updated_at = $8
		WHERE id = $9`,
		p.Name, p.LunarYear, p.LunarMonth, p.LunarDay, int16(p.Hour),
		nullStem(p.YearStem), nullBranch(p.YearBranch), p.UpdatedAt, p.ID)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update profile",
			slog.String("error", redact.Error(err)),
			slog.String("profile_id", p.ID.String()))
		return MapError(err, store.ErrProfileNotFound)
	}
	return CheckRowsAffected(result, store.ErrProfileNotFound)
}

// Delete implements store.ProfileStore.Delete
func (s *PostgresProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM birth_profiles WHERE id = $1`, id)
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to delete profile",
			slog.String("error", redact.Error(err)),
			slog.String("profile_id", id.String()))
		return MapError(err, store.ErrProfileNotFound)
	}
	return CheckRowsAffected(result, store.ErrProfileNotFound)
}
