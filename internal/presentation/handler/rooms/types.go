package rooms

import (
	"time"

	"quizmatch/internal/domain"
)

// createRoomRequest represents the request to open a new room
type createRoomRequest struct {
	HostName   string `json:"hostName" example:"Alice"` // Display name of the host, defaults to "Host"
	MaxPlayers int    `json:"maxPlayers" example:"4"`   // Requested capacity, clamped to the server ceiling
}

// createRoomResponse represents the response after creating a room
type createRoomResponse struct {
	Code       string    `json:"code" example:"482913"`                    // 6-digit join code
	HostName   string    `json:"hostName" example:"Alice"`                 // Host display name
	CreatedAt  time.Time `json:"createdAt" example:"2024-01-01T12:00:00Z"` // Room creation timestamp
	ExpiresAt  time.Time `json:"expiresAt" example:"2024-01-01T12:30:00Z"` // Instant after which the room is gone
	MaxPlayers int       `json:"maxPlayers" example:"4"`                   // Effective capacity after clamping
}

// joinRoomRequest represents the request to join an existing room
type joinRoomRequest struct {
	Code       string `json:"code" example:"482913"`  // 6-digit join code
	PlayerName string `json:"playerName" example:"Bob"` // Display name to join with
}

// joinRoomResponse represents the room view returned after a join
type joinRoomResponse struct {
	Code        string   `json:"code" example:"482913"`
	PlayerName  string   `json:"playerName" example:"Bob"`
	Players     []string `json:"players"`
	HostName    string   `json:"hostName" example:"Alice"`
	PlayerCount int      `json:"playerCount" example:"2"`
	MaxPlayers  int      `json:"maxPlayers" example:"4"`
	Status      string   `json:"status" example:"waiting"`
}

// updateStatusRequest represents a status overwrite
type updateStatusRequest struct {
	Status string `json:"status" example:"playing" enum:"waiting,ready,playing,finished"`
}

// updateStatusResponse echoes the applied status
type updateStatusResponse struct {
	Code    string `json:"code" example:"482913"`
	Status  string `json:"status" example:"playing"`
	Message string `json:"message" example:"Room status updated successfully"`
}

// roomResponse represents detailed room information
type roomResponse struct {
	Code        string    `json:"code" example:"482913"`
	HostName    string    `json:"hostName" example:"Alice"`
	Players     []string  `json:"players"`
	PlayerCount int       `json:"playerCount" example:"2"`
	MaxPlayers  int       `json:"maxPlayers" example:"4"`
	Status      string    `json:"status" example:"waiting"`
	CreatedAt   time.Time `json:"createdAt" example:"2024-01-01T12:00:00Z"`
	ExpiresAt   time.Time `json:"expiresAt" example:"2024-01-01T12:30:00Z"`
}

// roomSummary is the condensed per-room entry in listings
type roomSummary struct {
	Code        string `json:"code" example:"482913"`
	HostName    string `json:"hostName" example:"Alice"`
	PlayerCount int    `json:"playerCount" example:"2"`
	MaxPlayers  int    `json:"maxPlayers" example:"4"`
	Status      string `json:"status" example:"waiting"`
}

// listRoomsResponse represents the listing of all live rooms
type listRoomsResponse struct {
	Rooms []roomSummary `json:"rooms"`
	Total int           `json:"total" example:"3"`
}

// assignQuizRequest represents the request to point a room at a quiz
type assignQuizRequest struct {
	QuizID string `json:"quizId" example:"basic_001"`
}

// assignQuizResponse carries the rendered quiz for the room's clients
type assignQuizResponse struct {
	Code     string          `json:"code" example:"482913"`
	QuizID   string          `json:"quizId" example:"basic_001"`
	QuizHTML string          `json:"quizHtml"`
	QuizData domain.QuizData `json:"quizData"`
	Metadata map[string]any  `json:"metadata"`
}
