package quizzes_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmatch/internal/infrastructure/repository"
	"quizmatch/internal/presentation/handler/quizzes"
	"quizmatch/internal/service"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	roomService := service.NewRoomService(repository.NewRoomStore(), service.RoomConfig{
		Expiry:     30 * time.Minute,
		MaxPlayers: 10,
	})
	quizService := service.NewQuizService(repository.NewQuizRegistry(), roomService)
	quizService.SeedSamples()

	handler := quizzes.NewHandler(quizService)

	r := chi.NewRouter()
	r.Route("/api/quizzes", func(r chi.Router) {
		r.Get("/", handler.ListQuizzesHandler)
		r.Post("/", handler.CreateQuizHandler)
		r.Get("/{quizId}", handler.GetQuizDataHandler)
		r.Get("/{quizId}/html", handler.GetQuizHTMLHandler)
		r.Post("/{quizId}/submit", handler.SubmitAnswerHandler)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestListQuizzesHandler(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/quizzes", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode(t, rec)
	assert.Equal(t, float64(3), resp["total"])
	assert.Contains(t, resp["quizzes"], "basic_001")
}

func TestCreateQuizHandler(t *testing.T) {
	router := newTestRouter(t)

	payload := map[string]any{
		"question": map[string]any{"type": "text", "content": "2 + 2?"},
		"answers": []any{
			map[string]any{"type": "text", "content": "3"},
			map[string]any{"type": "text", "content": "4"},
		},
		"correct_index": 1,
		"metadata":      map[string]any{"points": 5},
	}

	t.Run("with explicit id", func(t *testing.T) {
		payload["quiz_id"] = "math_001"
		rec := doJSON(t, router, http.MethodPost, "/api/quizzes", payload)

		require.Equal(t, http.StatusCreated, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, "math_001", resp["quiz_id"])
		assert.Equal(t, "Quiz created successfully", resp["message"])
	})

	t.Run("generates id when omitted", func(t *testing.T) {
		delete(payload, "quiz_id")
		rec := doJSON(t, router, http.MethodPost, "/api/quizzes", payload)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.NotEmpty(t, decode(t, rec)["quiz_id"])
	})

	t.Run("missing correct_index returns 400", func(t *testing.T) {
		invalid := map[string]any{
			"question": map[string]any{"type": "text", "content": "2 + 2?"},
			"answers": []any{
				map[string]any{"type": "text", "content": "4"},
			},
		}
		rec := doJSON(t, router, http.MethodPost, "/api/quizzes", invalid)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing body returns 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/quizzes", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetQuizDataHandler(t *testing.T) {
	router := newTestRouter(t)

	t.Run("solution stays server side", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/quizzes/basic_001", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, "basic_001", resp["quiz_id"])
		assert.Len(t, resp["answers"], 4)
		assert.NotContains(t, resp, "correct_index")
	})

	t.Run("unknown quiz returns 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/quizzes/nope", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestGetQuizHTMLHandler(t *testing.T) {
	router := newTestRouter(t)

	t.Run("without solution", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/quizzes/basic_001/html", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		html := resp["html"].(string)
		assert.Contains(t, html, "quiz-container")
		assert.NotContains(t, html, "quiz-answer correct")
	})

	t.Run("show_solution marks the answer", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/quizzes/basic_001/html?show_solution=true", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		assert.Contains(t, resp["html"], "quiz-answer correct")

		metadata := resp["metadata"].(map[string]any)
		assert.Equal(t, float64(10), metadata["points"])
	})

	t.Run("unknown quiz returns 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/quizzes/nope/html", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSubmitAnswerHandler(t *testing.T) {
	router := newTestRouter(t)

	t.Run("correct answer earns points", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/quizzes/basic_001/submit", map[string]any{
			"answer": 1,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, true, resp["correct"])
		assert.Equal(t, float64(10), resp["points_earned"])
		assert.NotContains(t, resp, "correct_answer")
	})

	t.Run("wrong answer reveals the solution", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/quizzes/basic_001/submit", map[string]any{
			"answer": 0,
		})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decode(t, rec)
		assert.Equal(t, false, resp["correct"])
		assert.Equal(t, float64(0), resp["points_earned"])
		assert.Equal(t, float64(1), resp["correct_answer"])
	})

	t.Run("out of range answer returns 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/quizzes/basic_001/submit", map[string]any{
			"answer": 42,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing answer returns 400", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/quizzes/basic_001/submit", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown quiz returns 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/quizzes/nope/submit", map[string]any{
			"answer": 0,
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
