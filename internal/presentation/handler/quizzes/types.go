package quizzes

import "quizmatch/internal/domain"

// createQuizRequest is the wire form of a new quiz template. Question and
// answer items carry a "type" discriminator (text/image/video/audio).
type createQuizRequest struct {
	domain.QuizData
}

// createQuizResponse returns the ID under which the quiz was registered
type createQuizResponse struct {
	QuizID  string `json:"quiz_id" example:"basic_001"`
	Message string `json:"message" example:"Quiz created successfully"`
}

// listQuizzesResponse represents the quiz catalogue
type listQuizzesResponse struct {
	Quizzes []string `json:"quizzes"`
	Total   int      `json:"total" example:"4"`
}

// quizHTMLResponse carries a rendered quiz fragment
type quizHTMLResponse struct {
	QuizID   string         `json:"quiz_id" example:"basic_001"`
	HTML     string         `json:"html"`
	Metadata map[string]any `json:"metadata"`
}

// submitAnswerRequest represents an answer submission
type submitAnswerRequest struct {
	Answer *int `json:"answer" example:"1"` // Index of the selected answer
}

// submitAnswerResponse represents the outcome of a submission
type submitAnswerResponse struct {
	QuizID        string `json:"quiz_id" example:"basic_001"`
	Correct       bool   `json:"correct" example:"true"`
	PointsEarned  int    `json:"points_earned" example:"10"`
	CorrectAnswer *int   `json:"correct_answer,omitempty"` // Revealed only on wrong answers
}
