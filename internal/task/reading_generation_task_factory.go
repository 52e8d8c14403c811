package task

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/generation"
)

// ReadingGenerationTaskFactory creates ReadingGenerationTask instances
type ReadingGenerationTaskFactory struct {
	readings  ReadingService
	source    ReadingSource
	generator generation.Generator
	logger    *slog.Logger
}

// NewReadingGenerationTaskFactory creates a new factory for ReadingGenerationTasks
func NewReadingGenerationTaskFactory(
	readings ReadingService,
	source ReadingSource,
	generator generation.Generator,
	logger *slog.Logger,
) *ReadingGenerationTaskFactory {
	return &ReadingGenerationTaskFactory{
		readings:  readings,
		source:    source,
		generator: generator,
		logger:    logger.With("component", "reading_generation_task_factory"),
	}
}

// CreateTask creates a new task for the reading
func (f *ReadingGenerationTaskFactory) CreateTask(readingID uuid.UUID) (Task, error) {
	return NewReadingGenerationTask(readingID, f.readings, f.source, f.generator, f.logger)
}

// Restore rebuilds a stored reading generation task, keeping its ID.
func (f *ReadingGenerationTaskFactory) Restore(rec Record) (Task, error) {
	var payload readingGenerationPayload
	if err := json.Unmarshal(rec.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode reading generation payload: %w", err)
	}
	t, err := newReadingGenerationTask(rec.ID, payload.ReadingID, f.readings, f.source, f.generator, f.logger)
	if err != nil {
		return nil, err
	}
	t.status = rec.Status
	return t, nil
}
