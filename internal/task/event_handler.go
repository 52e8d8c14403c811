package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/events"
)

// TaskFactory creates the task for a reading.
type TaskFactory interface {
	CreateTask(readingID uuid.UUID) (Task, error)
}

// Submitter accepts tasks for execution. *TaskRunner satisfies it.
type Submitter interface {
	Submit(ctx context.Context, task Task) error
}

// TaskFactoryEventHandler turns reading generation events into submitted tasks.
type TaskFactoryEventHandler struct {
	factory TaskFactory
	runner  Submitter
	logger  *slog.Logger
}

var _ events.EventHandler = (*TaskFactoryEventHandler)(nil)

// NewTaskFactoryEventHandler creates a handler that creates tasks with
// factory and submits them to runner.
func NewTaskFactoryEventHandler(factory TaskFactory, runner Submitter, logger *slog.Logger) *TaskFactoryEventHandler {
	return &TaskFactoryEventHandler{
		factory: factory,
		runner:  runner,
		logger:  logger.With("component", "task_factory_event_handler"),
	}
}

// HandleEvent creates and submits a task for reading generation events
// and ignores every other event type.
func (h *TaskFactoryEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if event.Type != TaskTypeReadingGeneration {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload readingGenerationPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	task, err := h.factory.CreateTask(payload.ReadingID)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"reading_id", payload.ReadingID,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.runner.Submit(ctx, task); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", task.ID(),
			"reading_id", payload.ReadingID,
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("task created and submitted",
		"task_id", task.ID(),
		"reading_id", payload.ReadingID,
		"event_id", event.ID)
	return nil
}

// NewReadingGenerationEvent builds the event that requests a reading.
func NewReadingGenerationEvent(readingID uuid.UUID) (*events.TaskRequestEvent, error) {
	return events.NewTaskRequestEvent(TaskTypeReadingGeneration, readingGenerationPayload{ReadingID: readingID})
}
