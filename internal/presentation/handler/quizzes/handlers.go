package quizzes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"quizmatch/internal/domain"
	"quizmatch/internal/infrastructure/json"
	"quizmatch/internal/service"
)

type Handler struct {
	quizzes *service.QuizService
}

func NewHandler(quizzes *service.QuizService) *Handler {
	return &Handler{
		quizzes: quizzes,
	}
}

// ListQuizzesHandler godoc
// @Summary      List available quizzes
// @Description  Returns the IDs of every registered quiz template
// @Tags         quizzes
// @Produce      json
// @Success      200 {object} listQuizzesResponse "Quiz catalogue"
// @Router       /quizzes [get]
func (h *Handler) ListQuizzesHandler(w http.ResponseWriter, r *http.Request) {
	ids := h.quizzes.List()

	json.Write(w, http.StatusOK, listQuizzesResponse{
		Quizzes: ids,
		Total:   len(ids),
	})
}

// CreateQuizHandler godoc
// @Summary      Register a quiz template
// @Description  Validates and stores a quiz from its typed-item wire form
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        request body createQuizRequest true "Quiz definition"
// @Success      201 {object} createQuizResponse "Quiz registered"
// @Failure      400 {object} map[string]interface{} "Malformed quiz definition"
// @Router       /quizzes [post]
func (h *Handler) CreateQuizHandler(w http.ResponseWriter, r *http.Request) {
	var req createQuizRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	quizID, err := h.quizzes.Create(req.QuizID, req.QuizData)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	json.Write(w, http.StatusCreated, createQuizResponse{
		QuizID:  quizID,
		Message: "Quiz created successfully",
	})
}

// GetQuizDataHandler godoc
// @Summary      Get quiz data
// @Description  Returns the quiz in structured form, correct answer omitted
// @Tags         quizzes
// @Produce      json
// @Param        quizId path string true "Quiz ID"
// @Success      200 {object} domain.QuizData "Quiz data"
// @Failure      404 {object} map[string]interface{} "Quiz not found"
// @Router       /quizzes/{quizId} [get]
func (h *Handler) GetQuizDataHandler(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizId")

	data, err := h.quizzes.Data(quizID)
	if err != nil {
		writeQuizError(w, err)
		return
	}

	json.Write(w, http.StatusOK, data)
}

// GetQuizHTMLHandler godoc
// @Summary      Get quiz as HTML
// @Description  Renders the quiz as an HTML fragment for web clients
// @Tags         quizzes
// @Produce      json
// @Param        quizId path string true "Quiz ID"
// @Param        show_solution query boolean false "Mark the correct answer"
// @Success      200 {object} quizHTMLResponse "Rendered quiz"
// @Failure      404 {object} map[string]interface{} "Quiz not found"
// @Router       /quizzes/{quizId}/html [get]
func (h *Handler) GetQuizHTMLHandler(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizId")
	showSolution := strings.EqualFold(r.URL.Query().Get("show_solution"), "true")

	html, metadata, err := h.quizzes.HTML(quizID, showSolution)
	if err != nil {
		writeQuizError(w, err)
		return
	}

	json.Write(w, http.StatusOK, quizHTMLResponse{
		QuizID:   quizID,
		HTML:     html,
		Metadata: metadata,
	})
}

// SubmitAnswerHandler godoc
// @Summary      Submit a quiz answer
// @Description  Checks the answer and reports points earned; reveals the correct index on a miss
// @Tags         quizzes
// @Accept       json
// @Produce      json
// @Param        quizId path string true "Quiz ID"
// @Param        request body submitAnswerRequest true "Selected answer index"
// @Success      200 {object} submitAnswerResponse "Submission outcome"
// @Failure      400 {object} map[string]interface{} "Missing or out-of-range answer"
// @Failure      404 {object} map[string]interface{} "Quiz not found"
// @Router       /quizzes/{quizId}/submit [post]
func (h *Handler) SubmitAnswerHandler(w http.ResponseWriter, r *http.Request) {
	quizID := chi.URLParam(r, "quizId")

	var req submitAnswerRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}
	if req.Answer == nil {
		json.WriteBadRequestError(w, "Answer is required")
		return
	}

	result, err := h.quizzes.Submit(quizID, *req.Answer)
	if err != nil {
		writeQuizError(w, err)
		return
	}

	json.Write(w, http.StatusOK, submitAnswerResponse{
		QuizID:        quizID,
		Correct:       result.Correct,
		PointsEarned:  result.PointsEarned,
		CorrectAnswer: result.CorrectAnswer,
	})
}

func writeQuizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQuizNotFound):
		json.WriteError(w, http.StatusNotFound, err, "Quiz not found")
	case errors.Is(err, domain.ErrInvalidAnswer):
		json.WriteValidationError(w, err)
	default:
		json.WriteInternalError(w, err)
	}
}
