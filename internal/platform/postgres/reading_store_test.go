package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadingStore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		r, err := domain.NewReading(uuid.New(), uuid.New())
		require.NoError(t, err)
		mock.ExpectExec("INSERT INTO readings").
			WithArgs(r.ID, r.UserID, r.ProfileID, "pending", "", r.CreatedAt, r.UpdatedAt).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, NewPostgresReadingStore(db, nil).Create(ctx, r))
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		id := uuid.New()
		now := time.Now().UTC()
		mock.ExpectQuery("FROM readings WHERE id").WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "profile_id", "status", "content", "created_at", "updated_at"}).
				AddRow(id.String(), uuid.NewString(), uuid.NewString(), "completed", "A reading.", now, now))

		r, err := NewPostgresReadingStore(db, nil).GetByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, domain.ReadingStatusCompleted, r.Status)
		assert.Equal(t, "A reading.", r.Content)
	})

	t.Run("get missing", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		id := uuid.New()
		mock.ExpectQuery("FROM readings").WithArgs(id).WillReturnError(sql.ErrNoRows)
		_, err := NewPostgresReadingStore(db, nil).GetByID(ctx, id)
		assert.ErrorIs(t, err, store.ErrReadingNotFound)
	})

	t.Run("update rejects completed without content", func(t *testing.T) {
		t.Parallel()
		db, _ := newMock(t)
		r := &domain.Reading{ID: uuid.New(), UserID: uuid.New(), ProfileID: uuid.New(), Status: domain.ReadingStatusCompleted}
		assert.ErrorIs(t, NewPostgresReadingStore(db, nil).Update(ctx, r), domain.ErrEmptyReadingContent)
	})

	t.Run("update status", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		id := uuid.New()
		mock.ExpectExec("UPDATE readings SET status").
			WithArgs("processing", sqlmock.AnyArg(), id).
			WillReturnResult(sqlmock.NewResult(0, 1))
		assert.NoError(t, NewPostgresReadingStore(db, nil).UpdateStatus(ctx, id, domain.ReadingStatusProcessing))
	})

	t.Run("update status invalid", func(t *testing.T) {
		t.Parallel()
		db, _ := newMock(t)
		err := NewPostgresReadingStore(db, nil).UpdateStatus(ctx, uuid.New(), domain.ReadingStatus("archived"))
		assert.ErrorIs(t, err, domain.ErrInvalidReadingStatus)
	})

	t.Run("update status missing", func(t *testing.T) {
		t.Parallel()
		db, mock := newMock(t)
		mock.ExpectExec("UPDATE readings").WillReturnResult(sqlmock.NewResult(0, 0))
		err := NewPostgresReadingStore(db, nil).UpdateStatus(ctx, uuid.New(), domain.ReadingStatusFailed)
		assert.ErrorIs(t, err, store.ErrReadingNotFound)
	})
}
