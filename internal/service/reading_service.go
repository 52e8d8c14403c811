package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/events"
	"github.com/phrazzld/ziwei-api/internal/platform/logger"
	"github.com/phrazzld/ziwei-api/internal/store"
	"github.com/phrazzld/ziwei-api/internal/task"
)

// ReadingService manages chart readings. It also serves the reading
// generation task, which calls the methods without a user ID.
type ReadingService interface {
	task.ReadingService

	// RequestReading stores a pending reading for an owned, complete
	// profile and emits the event that starts generation.
	RequestReading(ctx context.Context, userID, profileID uuid.UUID) (*domain.Reading, error)

	// GetUserReading retrieves a reading the user owns.
	GetUserReading(ctx context.Context, userID, readingID uuid.UUID) (*domain.Reading, error)
}

type readingService struct {
	readings store.ReadingStore
	profiles store.ProfileStore
	db       store.TxBeginner
	emitter  events.EventEmitter
	logger   *slog.Logger
}

var _ task.ReadingService = (*readingService)(nil)

// NewReadingService creates a ReadingService. It returns an error if any
// dependency is nil.
func NewReadingService(
	readings store.ReadingStore,
	profiles store.ProfileStore,
	db store.TxBeginner,
	emitter events.EventEmitter,
	log *slog.Logger,
) (ReadingService, error) {
	switch {
	case readings == nil:
		return nil, NewServiceError("reading", "create_service", errors.New("reading store cannot be nil"))
	case profiles == nil:
		return nil, NewServiceError("reading", "create_service", errors.New("profile store cannot be nil"))
	case db == nil:
		return nil, NewServiceError("reading", "create_service", errors.New("db cannot be nil"))
	case emitter == nil:
		return nil, NewServiceError("reading", "create_service", errors.New("event emitter cannot be nil"))
	}
	if log == nil {
		log = slog.Default()
	}
	return &readingService{
		readings: readings,
		profiles: profiles,
		db:       db,
		emitter:  emitter,
		logger:   log.With("component", "reading_service"),
	}, nil
}

func (s *readingService) RequestReading(ctx context.Context, userID, profileID uuid.UUID) (*domain.Reading, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	profile, err := ownedProfile(ctx, s.profiles, userID, profileID)
	if err != nil {
		return nil, wrapError("reading", "request", err)
	}
	// An incomplete profile would only fail later inside the task.
	if _, err := profile.BirthFacts(); err != nil {
		return nil, err
	}

	reading, err := domain.NewReading(userID, profileID)
	if err != nil {
		return nil, NewServiceError("reading", "request", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.readings.WithTx(tx).Create(ctx, reading)
	})
	if err != nil {
		log.Error("failed to save reading",
			"error", err,
			"profile_id", profileID,
			"user_id", userID)
		return nil, NewServiceError("reading", "request", err)
	}

	event, err := task.NewReadingGenerationEvent(reading.ID)
	if err != nil {
		return nil, s.abandon(ctx, reading, err)
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Error("failed to emit reading generation event",
			"error", err,
			"reading_id", reading.ID,
			"event_id", event.ID)
		return nil, s.abandon(ctx, reading, err)
	}

	log.Info("reading requested",
		"reading_id", reading.ID,
		"profile_id", profileID,
		"user_id", userID,
		"event_id", event.ID)
	return reading, nil
}

// abandon marks a reading failed when its generation could not be
// scheduled and returns the scheduling error.
func (s *readingService) abandon(ctx context.Context, reading *domain.Reading, cause error) error {
	if err := s.readings.UpdateStatus(ctx, reading.ID, domain.ReadingStatusFailed); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to mark unscheduled reading as failed",
			"error", err,
			"reading_id", reading.ID)
	}
	return NewServiceError("reading", "request", cause)
}

func (s *readingService) GetUserReading(ctx context.Context, userID, readingID uuid.UUID) (*domain.Reading, error) {
	reading, err := s.readings.GetByID(ctx, readingID)
	if err != nil {
		return nil, wrapError("reading", "get", err)
	}
	if reading.UserID != userID {
		return nil, ErrNotOwned
	}
	return reading, nil
}

func (s *readingService) GetReading(ctx context.Context, readingID uuid.UUID) (*domain.Reading, error) {
	reading, err := s.readings.GetByID(ctx, readingID)
	if err != nil {
		return nil, wrapError("reading", "get", err)
	}
	return reading, nil
}

func (s *readingService) UpdateReadingStatus(
	ctx context.Context,
	readingID uuid.UUID,
	status domain.ReadingStatus,
) error {
	if err := s.readings.UpdateStatus(ctx, readingID, status); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to update reading status",
			"error", err,
			"reading_id", readingID,
			"status", status)
		return wrapError("reading", "update_status", err)
	}
	return nil
}

// CompleteReading stores generated content. The read and write share a
// transaction so a concurrent status change is not overwritten.
func (s *readingService) CompleteReading(ctx context.Context, readingID uuid.UUID, content string) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txReadings := s.readings.WithTx(tx)
		reading, err := txReadings.GetByID(ctx, readingID)
		if err != nil {
			return err
		}
		if err := reading.Complete(content); err != nil {
			return err
		}
		return txReadings.Update(ctx, reading)
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to complete reading",
			"error", err,
			"reading_id", readingID)
		return wrapError("reading", "complete", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("reading completed", "reading_id", readingID)
	return nil
}
