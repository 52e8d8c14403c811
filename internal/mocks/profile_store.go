package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// ProfileStore is a testify mock of store.ProfileStore.
type ProfileStore struct {
	mock.Mock
}

var _ store.ProfileStore = (*ProfileStore)(nil)

func (m *ProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	args := m.Called(ctx, id)
	profile, _ := args.Get(0).(*domain.Profile)
	return profile, args.Error(1)
}

func (m *ProfileStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Profile, error) {
	args := m.Called(ctx, userID)
	profiles, _ := args.Get(0).([]*domain.Profile)
	return profiles, args.Error(1)
}

func (m *ProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	return m.Called(ctx, profile).Error(0)
}

func (m *ProfileStore) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *ProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return m
}
