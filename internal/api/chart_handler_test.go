package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/ziwei-api/internal/api"
	"github.com/phrazzld/ziwei-api/internal/api/shared"
	"github.com/phrazzld/ziwei-api/internal/domain/ziwei"
	"github.com/phrazzld/ziwei-api/internal/mocks"
	"github.com/phrazzld/ziwei-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newChartRouter(charts service.ChartService) http.Handler {
	h := api.NewChartHandler(charts, discardLogger())
	r := chi.NewRouter()
	r.Post("/api/charts", h.ComputeChart)
	r.Post("/api/charts/relations", h.Relations)
	r.Post("/api/charts/patterns", h.Patterns)
	return r
}

func engineChartService() service.ChartService {
	return service.NewChartService(ziwei.NewDefaultService(), &mocks.ProfileStore{}, 2, discardLogger())
}

func TestChartHandler_ComputeChart(t *testing.T) {
	t.Parallel()

	router := newChartRouter(engineChartService())

	t.Run("worked example", func(t *testing.T) {
		t.Parallel()
		rec := serve(router, newJSONRequest(t, http.MethodPost, "/api/charts", workedExampleBody()))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		chart := decodeBody[map[string]any](t, rec)
		assert.Equal(t, "亥", chart["life_branch"])
		assert.EqualValues(t, 0, chart["life_palace_ordinal"])
		bureau, ok := chart["bureau"].(map[string]any)
		require.True(t, ok)
		assert.EqualValues(t, 5, bureau["number"])
		palaces, ok := chart["palaces"].([]any)
		require.True(t, ok)
		assert.Len(t, palaces, 12)
	})

	t.Run("pinyin hour", func(t *testing.T) {
		t.Parallel()
		body := workedExampleBody()
		body["hour"] = "yin"
		rec := serve(router, newJSONRequest(t, http.MethodPost, "/api/charts", body))
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "亥", decodeBody[map[string]any](t, rec)["life_branch"])
	})
}

func TestChartHandler_ComputeChart_Rejects(t *testing.T) {
	t.Parallel()

	router := newChartRouter(engineChartService())

	tests := []struct {
		name        string
		body        any
		wantStatus  int
		wantMessage string
	}{
		{"malformed json", "{", http.StatusBadRequest, "Invalid request format"},
		{"unknown field", map[string]any{"lunar_year": 1990, "solar_date": "1991-01-22"}, http.StatusBadRequest, "Invalid request format"},
		{"month out of range", withField(workedExampleBody(), "lunar_month", 13), http.StatusBadRequest, "Invalid lunar_month: too large"},
		{"missing hour", withField(workedExampleBody(), "hour", ""), http.StatusBadRequest, "Invalid hour: required field"},
		{"unknown branch", withField(workedExampleBody(), "hour", "dragon"), http.StatusBadRequest, `invalid stem or branch symbol: branch "dragon"`},
		{"bad year pair", withField(workedExampleBody(), "year", "庚"), http.StatusBadRequest, `invalid stem or branch symbol: stem-branch "庚"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(router, newJSONRequest(t, http.MethodPost, "/api/charts", tt.body))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMessage, decodeBody[shared.ErrorResponse](t, rec).Error)
		})
	}
}

func withField(body map[string]any, key string, value any) map[string]any {
	body[key] = value
	return body
}

func TestChartHandler_Relations(t *testing.T) {
	t.Parallel()

	router := newChartRouter(engineChartService())

	tests := []struct {
		name       string
		palace     string
		wantTarget int
		wantSet    int
	}{
		{"by english name", "Life", 0, 4},
		{"by chinese label", "命宫", 0, 4},
		{"by ordinal", "4", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			body := withField(workedExampleBody(), "palace", tt.palace)
			rec := serve(router, newJSONRequest(t, http.MethodPost, "/api/charts/relations", body))
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

			resp := decodeBody[map[string]any](t, rec)
			rel, ok := resp["relation"].(map[string]any)
			require.True(t, ok)
			assert.EqualValues(t, tt.wantTarget, rel["target"])
			assert.EqualValues(t, (tt.wantTarget+6)%12, rel["opposite"])
			palaces, ok := resp["palaces"].([]any)
			require.True(t, ok)
			assert.Len(t, palaces, tt.wantSet)
		})
	}

	t.Run("unknown palace", func(t *testing.T) {
		t.Parallel()
		body := withField(workedExampleBody(), "palace", "Kitchen")
		rec := serve(router, newJSONRequest(t, http.MethodPost, "/api/charts/relations", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("ordinal out of range", func(t *testing.T) {
		t.Parallel()
		body := withField(workedExampleBody(), "palace", "12")
		rec := serve(router, newJSONRequest(t, http.MethodPost, "/api/charts/relations", body))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestChartHandler_Patterns(t *testing.T) {
	t.Parallel()

	router := newChartRouter(engineChartService())
	rec := serve(router, newJSONRequest(t, http.MethodPost, "/api/charts/patterns", workedExampleBody()))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[struct {
		LifeBranch string `json:"life_branch"`
		Patterns   []struct {
			ID string `json:"id"`
		} `json:"patterns"`
	}](t, rec)
	assert.Equal(t, "亥", resp.LifeBranch)

	ids := make([]string, 0, len(resp.Patterns))
	for _, p := range resp.Patterns {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"junchen-qinghui", "zifu-chaoyuan"}, ids)
}

func TestChartHandler_LookupMissIsInternal(t *testing.T) {
	t.Parallel()

	charts := &mocks.ChartService{}
	charts.On("ComputeChart", mock.Anything, workedExampleFacts()).
		Return(nil, fmt.Errorf("%w: bureau table has no entry for 99", ziwei.ErrLookupMiss))

	rec := serve(newChartRouter(charts), newJSONRequest(t, http.MethodPost, "/api/charts", workedExampleBody()))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeBody[shared.ErrorResponse](t, rec)
	assert.Equal(t, "Failed to compute chart", resp.Error)
	assert.NotContains(t, rec.Body.String(), "bureau table")
	charts.AssertExpectations(t)
}
