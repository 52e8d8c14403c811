package service_test

import (
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newMockDB returns a sqlmock database for services that open
// transactions. Store calls go to testify mocks, so only BEGIN, COMMIT
// and ROLLBACK are expected here.
func newMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return db, mock
}

// workedExampleFacts is lunar 12/7, 寅 hour, in a 庚午 year.
func workedExampleFacts() ziwei.BirthFacts {
	return ziwei.BirthFacts{
		LunarYear:  1990,
		LunarMonth: 12,
		LunarDay:   7,
		Hour:       ziwei.BranchYin,
		Year:       ziwei.StemBranch{Stem: ziwei.StemGeng, Branch: ziwei.BranchWu},
	}
}

func completeProfile(t *testing.T, userID uuid.UUID) *domain.Profile {
	t.Helper()
	stem, branch := ziwei.StemGeng, ziwei.BranchWu
	profile, err := domain.NewProfile(userID, domain.ProfileFacts{
		Name:       "Lin",
		LunarYear:  1990,
		LunarMonth: 12,
		LunarDay:   7,
		Hour:       ziwei.BranchYin,
		YearStem:   &stem,
		YearBranch: &branch,
	})
	require.NoError(t, err)
	return profile
}

func incompleteProfile(t *testing.T, userID uuid.UUID) *domain.Profile {
	t.Helper()
	profile, err := domain.NewProfile(userID, domain.ProfileFacts{
		Name:       "Unknown year",
		LunarYear:  1990,
		LunarMonth: 3,
		LunarDay:   15,
		Hour:       ziwei.BranchZi,
	})
	require.NoError(t, err)
	return profile
}
