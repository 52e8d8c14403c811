package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/phrazzld/ziwei-api/internal/config"
	"github.com/phrazzld/ziwei-api/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		Server:   config.ServerConfig{Port: 8080, LogLevel: "debug"},
		Database: config.DatabaseConfig{URL: "postgres://localhost:5432/ziwei"},
		Auth: config.AuthConfig{
			JWTSecret:                   "router-test-secret-0123456789abcdef",
			BCryptCost:                  4,
			TokenLifetimeMinutes:        60,
			RefreshTokenLifetimeMinutes: 1440,
		},
		LLM: config.LLMConfig{
			GeminiAPIKey:      "unused",
			ModelName:         "gemini-test",
			RetryDelaySeconds: 1,
		},
		Task:  config.TaskConfig{WorkerCount: 1, QueueSize: 4, StuckTaskAgeMinutes: 30},
		Chart: config.ChartConfig{MaxParallel: 2},
	}
}

func newTestApplication(t *testing.T) (*application, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	app, err := assembleApplication(testConfig(), slog.New(slog.DiscardHandler), db, &mocks.MockGenerator{})
	require.NoError(t, err)
	return app, mock
}

func TestRouter_Health(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t)
	rr := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRouter_PublicChart(t *testing.T) {
	t.Parallel()

	app, mock := newTestApplication(t)
	body := `{"lunar_year":1990,"lunar_month":12,"lunar_day":7,"hour":"寅","year":"庚午"}`
	req := httptest.NewRequest(http.MethodPost, "/api/charts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	app.setupRouter().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var chart struct {
		LifeBranch string `json:"life_branch"`
		Bureau     struct {
			Number int `json:"number"`
		} `json:"bureau"`
		Palaces []json.RawMessage `json:"palaces"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &chart))
	assert.Equal(t, "亥", chart.LifeBranch)
	assert.Equal(t, 5, chart.Bureau.Number)
	assert.Len(t, chart.Palaces, 12)
	assert.NotEmpty(t, rr.Header().Get("Content-Type"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	t.Parallel()

	app, _ := newTestApplication(t)
	router := app.setupRouter()
	id := uuid.NewString()

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/profiles"},
		{http.MethodPost, "/api/profiles"},
		{http.MethodGet, "/api/profiles/charts"},
		{http.MethodGet, "/api/profiles/" + id},
		{http.MethodGet, "/api/profiles/" + id + "/chart"},
		{http.MethodGet, "/api/profiles/" + id + "/relations/life"},
		{http.MethodGet, "/api/profiles/" + id + "/patterns"},
		{http.MethodPost, "/api/profiles/" + id + "/readings"},
		{http.MethodGet, "/api/readings/" + id},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(route.method, route.path, nil))
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
		})
	}
}

func TestRouter_ListProfilesWithToken(t *testing.T) {
	t.Parallel()

	app, mock := newTestApplication(t)
	userID := uuid.New()
	token, err := app.jwtService.GenerateToken(context.Background(), userID)
	require.NoError(t, err)

	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "name", "lunar_year", "lunar_month", "lunar_day", "hour",
		"year_stem", "year_branch", "created_at", "updated_at",
	}).AddRow(uuid.NewString(), userID.String(), "Mei", 1990, 12, 7, 2, 6, 6, created, created)
	mock.ExpectQuery(`SELECT .+ FROM birth_profiles`).WithArgs(userID).WillReturnRows(rows)

	req := httptest.NewRequest(http.MethodGet, "/api/profiles", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	app.setupRouter().ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var profiles []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &profiles))
	require.Len(t, profiles, 1)
	assert.Equal(t, "Mei", profiles[0]["name"])
	assert.Equal(t, "寅", profiles[0]["hour"])
	assert.Equal(t, "庚午", profiles[0]["year"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
