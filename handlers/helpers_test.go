package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Dosada05/fitness-challenge/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadJSON(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	read := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var dst payload
		return readJSON(httptest.NewRecorder(), req, &dst)
	}

	t.Run("valid body", func(t *testing.T) {
		assert.NoError(t, read(`{"name": "alice"}`))
	})

	t.Run("empty body", func(t *testing.T) {
		err := read("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "must not be empty")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		err := read(`{"name": `)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "badly-formed")
	})

	t.Run("unknown field", func(t *testing.T) {
		err := read(`{"name": "alice", "admin": true}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown key")
	})

	t.Run("wrong type", func(t *testing.T) {
		err := read(`{"name": 42}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "incorrect JSON type")
	})

	t.Run("multiple JSON values", func(t *testing.T) {
		err := read(`{"name": "alice"}{"name": "bob"}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "single JSON value")
	})
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	err := writeJSON(rec, http.StatusCreated, jsonResponse{"ok": true}, http.Header{"X-Request-Id": []string{"abc"}})
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "abc", rec.Header().Get("X-Request-Id"))
	assert.JSONEq(t, `{"ok": true}`, rec.Body.String())
}

func TestMapServiceErrorToHTTP(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", services.ErrSportNotFound, http.StatusNotFound},
		{"conflict", services.ErrUsernameTaken, http.StatusConflict},
		{"validation", services.ErrNegativeValue, http.StatusBadRequest},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized},
		{"uploads disabled", services.ErrUploadsDisabled, http.StatusServiceUnavailable},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			mapServiceErrorToHTTP(rec, req, tc.err)
			assert.Equal(t, tc.want, rec.Code)
		})
	}
}
