package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// ReadingStore is a testify mock of store.ReadingStore.
type ReadingStore struct {
	mock.Mock
}

var _ store.ReadingStore = (*ReadingStore)(nil)

func (m *ReadingStore) Create(ctx context.Context, reading *domain.Reading) error {
	return m.Called(ctx, reading).Error(0)
}

func (m *ReadingStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reading, error) {
	args := m.Called(ctx, id)
	reading, _ := args.Get(0).(*domain.Reading)
	return reading, args.Error(1)
}

func (m *ReadingStore) Update(ctx context.Context, reading *domain.Reading) error {
	return m.Called(ctx, reading).Error(0)
}

func (m *ReadingStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ReadingStatus) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *ReadingStore) WithTx(tx *sql.Tx) store.ReadingStore {
	return m
}
