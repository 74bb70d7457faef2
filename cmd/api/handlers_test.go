package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doRequest(t *testing.T, app *Application, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var request *http.Request
	if body == "" {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(body))
		request.Header.Set("Content-Type", "application/json")
	}
	recorder := httptest.NewRecorder()
	app.routes().ServeHTTP(recorder, request)
	return recorder
}

func TestHealthcheck(t *testing.T) {
	app, _ := NewTestApplication(t)
	recorder := doRequest(t, app, http.MethodGet, "/api/v1/healthcheck", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	assert.Equal(t, "available", body["status"])
	assert.Equal(t, version, body["version"])
}

func TestListGenres(t *testing.T) {
	app, mock := NewTestApplication(t)
	mock.ExpectQuery(`SELECT id, name, slug FROM genres`).
		WillReturnRows(mock.NewRows([]string{"id", "name", "slug"}).
			AddRow(int64(1), "Drama", "drama").
			AddRow(int64(2), "Science Fiction", "science-fiction"))

	recorder := doRequest(t, app, http.MethodGet, "/api/v1/genres/", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"slug":"science-fiction"`)
	assert.NotContains(t, recorder.Body.String(), `"id"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAnonymousCannotWrite(t *testing.T) {
	app, mock := NewTestApplication(t)
	targets := []struct{ method, path, body string }{
		{http.MethodPost, "/api/v1/genres", `{"name":"Drama"}`},
		{http.MethodDelete, "/api/v1/categories/films", ""},
		{http.MethodPost, "/api/v1/titles", `{"name":"Dune","year":2021,"genre":["drama"]}`},
		{http.MethodPost, "/api/v1/titles/1/reviews", `{"text":"x","score":5}`},
		{http.MethodGet, "/api/v1/users", ""},
		{http.MethodGet, "/api/v1/users/me", ""},
	}
	for _, tc := range targets {
		recorder := doRequest(t, app, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code, tc.method+" "+tc.path)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSignupBadBody(t *testing.T) {
	app, _ := NewTestApplication(t)
	recorder := doRequest(t, app, http.MethodPost, "/api/v1/auth/signup", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	recorder = doRequest(t, app, http.MethodPost, "/api/v1/auth/signup", `{"username":"me","email":"me@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestTokenUnknownUser(t *testing.T) {
	app, mock := NewTestApplication(t)
	mock.ExpectQuery(`SELECT (.+) FROM users WHERE username = \$1`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	recorder := doRequest(t, app, http.MethodPost, "/api/v1/auth/token", `{"username":"ghost","confirmation_code":"abc"}`)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListTitlesBadQuery(t *testing.T) {
	app, _ := NewTestApplication(t)
	recorder := doRequest(t, app, http.MethodGet, "/api/v1/titles?year=abc", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	recorder = doRequest(t, app, http.MethodGet, "/api/v1/titles?page=2", "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestInvalidIDParam(t *testing.T) {
	app, _ := NewTestApplication(t)
	recorder := doRequest(t, app, http.MethodGet, "/api/v1/titles/abc", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
	recorder = doRequest(t, app, http.MethodGet, "/api/v1/titles/1/reviews/0", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	app, _ := NewTestApplication(t)
	doRequest(t, app, http.MethodGet, "/api/v1/healthcheck", "")
	recorder := doRequest(t, app, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "yamdb_http_requests_total")
}
