package mocks

import (
	"context"

	"github.com/phrazzld/ziwei-api/internal/events"
	"github.com/stretchr/testify/mock"
)

// EventEmitter is a testify mock of events.EventEmitter.
type EventEmitter struct {
	mock.Mock
}

var _ events.EventEmitter = (*EventEmitter)(nil)

func (m *EventEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	return m.Called(ctx, event).Error(0)
}
