package json_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmatch/internal/domain"
	"quizmatch/internal/infrastructure/json"
)

func TestRead(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("decodes body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Alice"}`))

		var p payload
		require.NoError(t, json.Read(req, &p))
		assert.Equal(t, "Alice", p.Name)
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))

		var p payload
		assert.ErrorIs(t, json.Read(req, &p), domain.ErrMissingBody)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))

		var p payload
		err := json.Read(req, &p)
		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrMissingBody)
	})
}

func TestWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	json.Write(rec, http.StatusTeapot, map[string]string{"status": "brewing"})

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"brewing"}`, rec.Body.String())
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	json.WriteNotFoundError(rec, assert.AnError)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Not Found")
}
