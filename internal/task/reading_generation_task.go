package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/generation"
)

// Common errors
var (
	ErrNilReadingService = errors.New("reading service cannot be nil")
	ErrNilReadingSource  = errors.New("reading source cannot be nil")
	ErrNilGenerator      = errors.New("generator cannot be nil")
	ErrNilLogger         = errors.New("logger cannot be nil")
	ErrEmptyReadingID    = errors.New("reading ID cannot be empty")
)

// ReadingService is the reading lifecycle the task drives.
type ReadingService interface {
	// GetReading retrieves a reading by its ID without an ownership check
	GetReading(ctx context.Context, readingID uuid.UUID) (*domain.Reading, error)

	// UpdateReadingStatus moves a reading to a new status
	UpdateReadingStatus(ctx context.Context, readingID uuid.UUID, status domain.ReadingStatus) error

	// CompleteReading stores the generated text and marks the reading completed
	CompleteReading(ctx context.Context, readingID uuid.UUID, content string) error
}

// ReadingSource builds the generator input for a reading: the profile's
// chart and matched patterns.
type ReadingSource interface {
	ReadingRequest(ctx context.Context, reading *domain.Reading) (generation.ReadingRequest, error)
}

type readingGenerationPayload struct {
	ReadingID uuid.UUID `json:"reading_id"`
}

// ReadingGenerationTask writes the LLM reading for one stored reading.
type ReadingGenerationTask struct {
	id        uuid.UUID
	readingID uuid.UUID
	readings  ReadingService
	source    ReadingSource
	generator generation.Generator
	logger    *slog.Logger
	status    TaskStatus
}

// NewReadingGenerationTask creates a new task for readingID.
func NewReadingGenerationTask(
	readingID uuid.UUID,
	readings ReadingService,
	source ReadingSource,
	generator generation.Generator,
	logger *slog.Logger,
) (*ReadingGenerationTask, error) {
	return newReadingGenerationTask(uuid.New(), readingID, readings, source, generator, logger)
}

func newReadingGenerationTask(
	id, readingID uuid.UUID,
	readings ReadingService,
	source ReadingSource,
	generator generation.Generator,
	logger *slog.Logger,
) (*ReadingGenerationTask, error) {
	switch {
	case readings == nil:
		return nil, ErrNilReadingService
	case source == nil:
		return nil, ErrNilReadingSource
	case generator == nil:
		return nil, ErrNilGenerator
	case logger == nil:
		return nil, ErrNilLogger
	case readingID == uuid.Nil:
		return nil, ErrEmptyReadingID
	}

	return &ReadingGenerationTask{
		id:        id,
		readingID: readingID,
		readings:  readings,
		source:    source,
		generator: generator,
		logger:    logger.With("task_type", TaskTypeReadingGeneration, "reading_id", readingID),
		status:    TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *ReadingGenerationTask) ID() uuid.UUID { return t.id }

// Type returns TaskTypeReadingGeneration
func (t *ReadingGenerationTask) Type() string { return TaskTypeReadingGeneration }

// ReadingID returns the reading this task generates
func (t *ReadingGenerationTask) ReadingID() uuid.UUID { return t.readingID }

// Payload returns the JSON encoded reading ID
func (t *ReadingGenerationTask) Payload() []byte {
	data, err := json.Marshal(readingGenerationPayload{ReadingID: t.readingID})
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}
	return data
}

// Status returns the current task status
func (t *ReadingGenerationTask) Status() TaskStatus { return t.status }

// Execute loads the reading and its chart, calls the generator and stores
// the result. The reading is marked failed when generation fails.
func (t *ReadingGenerationTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting reading generation task")

	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	reading, err := t.readings.GetReading(ctx, t.readingID)
	if err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to retrieve reading: %w", err)
	}

	if err := t.readings.UpdateReadingStatus(ctx, t.readingID, domain.ReadingStatusProcessing); err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("failed to update reading status to processing: %w", err)
	}

	req, err := t.source.ReadingRequest(ctx, reading)
	if err != nil {
		return t.fail(ctx, fmt.Errorf("failed to build chart for reading: %w", err))
	}

	text, err := t.generator.GenerateReading(ctx, req)
	if err != nil {
		return t.fail(ctx, fmt.Errorf("failed to generate reading: %w", err))
	}

	if err := t.readings.CompleteReading(ctx, t.readingID, text); err != nil {
		return t.fail(ctx, fmt.Errorf("failed to save reading: %w", err))
	}

	t.status = TaskStatusCompleted
	t.logger.Info("reading generation task completed", "reading_length", len(text))
	return nil
}

func (t *ReadingGenerationTask) fail(ctx context.Context, err error) error {
	if updateErr := t.readings.UpdateReadingStatus(ctx, t.readingID, domain.ReadingStatusFailed); updateErr != nil {
		t.logger.Error("failed to mark reading failed", "error", updateErr)
	}
	t.status = TaskStatusFailed
	t.logger.Error("reading generation task failed", "error", err)
	return err
}
