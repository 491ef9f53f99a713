package messaging

import "quizmatch/internal/domain"

const (
	RoomsQueue      = "rooms"
	DeadLetterQueue = "dead_letter_queue"
)

type RoomEventData struct {
	Room       domain.Room `json:"room"`
	PlayerName string      `json:"playerName,omitempty"`
	OldStatus  string      `json:"oldStatus,omitempty"`
	NewStatus  string      `json:"newStatus,omitempty"`
}
