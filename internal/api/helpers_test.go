package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/api/shared"
	"github.com/phrazzld/ziwei-api/internal/domain"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// workedExampleBody is the request form of the 1990 庚午 reference
// chart: Life Palace on 亥, bureau number 5.
func workedExampleBody() map[string]any {
	return map[string]any{
		"lunar_year":  1990,
		"lunar_month": 12,
		"lunar_day":   7,
		"hour":        "寅",
		"year":        "庚午",
	}
}

func workedExampleFacts() ziwei.BirthFacts {
	return ziwei.BirthFacts{
		LunarYear:  1990,
		LunarMonth: 12,
		LunarDay:   7,
		Hour:       ziwei.BranchYin,
		Year:       ziwei.StemBranch{Stem: ziwei.StemGeng, Branch: ziwei.BranchWu},
	}
}

func newJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var reader io.Reader = http.NoBody
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func asUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(shared.WithUserID(req.Context(), userID))
}

func serve(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
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
		Name:       "Mei",
		LunarYear:  1985,
		LunarMonth: 3,
		LunarDay:   15,
		Hour:       ziwei.BranchZi,
	})
	require.NoError(t, err)
	return profile
}
