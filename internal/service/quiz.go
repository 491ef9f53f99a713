package service

import (
	"strings"

	"github.com/google/uuid"

	"quizmatch/internal/domain"
	"quizmatch/internal/infrastructure/repository"
)

// QuizService exposes the quiz template operations: registration, rendering
// and answer checking. Rooms are consulted only when a quiz is assigned to
// one, to confirm the room is live.
type QuizService struct {
	registry *repository.QuizRegistry
	rooms    *RoomService
}

func NewQuizService(registry *repository.QuizRegistry, rooms *RoomService) *QuizService {
	return &QuizService{
		registry: registry,
		rooms:    rooms,
	}
}

// SubmitResult is the outcome of an answer submission. CorrectAnswer is
// revealed only on wrong answers.
type SubmitResult struct {
	Correct       bool
	PointsEarned  int
	CorrectAnswer *int
}

// Create validates and registers a quiz from its wire form. When no ID is
// supplied a fresh UUID is issued.
func (s *QuizService) Create(quizID string, data domain.QuizData) (string, error) {
	template, err := domain.QuizFromData(data)
	if err != nil {
		return "", err
	}

	quizID = strings.TrimSpace(quizID)
	if quizID == "" {
		quizID = uuid.NewString()
	}

	s.registry.Register(quizID, template)
	return quizID, nil
}

// List returns the registered quiz IDs in sorted order.
func (s *QuizService) List() []string {
	return s.registry.ListIDs()
}

// HTML renders the quiz as an HTML fragment, optionally marking the correct
// answer.
func (s *QuizService) HTML(quizID string, showSolution bool) (string, map[string]any, error) {
	template, err := s.registry.Get(quizID)
	if err != nil {
		return "", nil, err
	}
	return template.Render(showSolution, nil), template.Metadata, nil
}

// Data returns the client-safe wire form, solution omitted.
func (s *QuizService) Data(quizID string) (domain.QuizData, error) {
	template, err := s.registry.Get(quizID)
	if err != nil {
		return domain.QuizData{}, err
	}

	data, err := template.Data(false)
	if err != nil {
		return domain.QuizData{}, err
	}
	data.QuizID = quizID
	return data, nil
}

// Submit checks an answer and computes the points earned from the quiz
// metadata.
func (s *QuizService) Submit(quizID string, answer int) (SubmitResult, error) {
	template, err := s.registry.Get(quizID)
	if err != nil {
		return SubmitResult{}, err
	}

	if answer < 0 || answer >= len(template.Answers) {
		return SubmitResult{}, domain.ErrInvalidAnswer
	}

	result := SubmitResult{Correct: template.CheckAnswer(answer)}
	if result.Correct {
		result.PointsEarned = template.Points()
	} else {
		idx := template.CorrectIndex
		result.CorrectAnswer = &idx
	}
	return result, nil
}

// AssignToRoom pairs a quiz with a live room: the room must exist and be
// unexpired. The rendered quiz and its client-safe data are returned; the
// room record itself is not touched.
func (s *QuizService) AssignToRoom(code, quizID string) (*domain.Room, *domain.QuizTemplate, error) {
	room, err := s.rooms.GetRoom(code)
	if err != nil {
		return nil, nil, err
	}

	template, err := s.registry.Get(quizID)
	if err != nil {
		return nil, nil, err
	}

	return room, template, nil
}

// SeedSamples registers a starter set of quizzes when the registry is empty,
// so a fresh instance has something to serve. Returns the number added.
func (s *QuizService) SeedSamples() int {
	if s.registry.Count() > 0 {
		return 0
	}

	samples := map[string]*domain.QuizTemplate{
		"basic_001": mustQuiz(
			domain.TextItem{Content: "What is the capital of France?"},
			[]domain.Item{
				domain.TextItem{Content: "London"},
				domain.TextItem{Content: "Paris"},
				domain.TextItem{Content: "Berlin"},
				domain.TextItem{Content: "Madrid"},
			},
			1,
			map[string]any{"difficulty": "easy", "points": 10, "time_limit": 30, "category": "geography"},
		),
		"image_001": mustQuiz(
			domain.ImageItem{URL: "https://example.com/flags/flag.png", Alt: "Country flag", Width: "300px"},
			[]domain.Item{
				domain.TextItem{Content: "United States"},
				domain.TextItem{Content: "France"},
				domain.TextItem{Content: "United Kingdom"},
				domain.TextItem{Content: "Netherlands"},
			},
			2,
			map[string]any{"difficulty": "medium", "points": 15, "time_limit": 25, "category": "geography"},
		),
		"mixed_001": mustQuiz(
			domain.TextItem{Content: "Which logo represents the Go programming language?"},
			[]domain.Item{
				domain.ImageItem{URL: "https://example.com/logos/go.png", Alt: "Logo 1", Width: "120px"},
				domain.ImageItem{URL: "https://example.com/logos/java.png", Alt: "Logo 2", Width: "120px"},
				domain.ImageItem{URL: "https://example.com/logos/ruby.png", Alt: "Logo 3", Width: "120px"},
				domain.ImageItem{URL: "https://example.com/logos/python.png", Alt: "Logo 4", Width: "120px"},
			},
			0,
			map[string]any{"difficulty": "easy", "points": 10, "time_limit": 20, "category": "programming"},
		),
	}

	for id, template := range samples {
		s.registry.Register(id, template)
	}
	return len(samples)
}

func mustQuiz(question domain.Item, answers []domain.Item, correctIndex int, metadata map[string]any) *domain.QuizTemplate {
	template, err := domain.NewQuizTemplate(question, answers, correctIndex, metadata)
	if err != nil {
		panic(err)
	}
	return template
}
