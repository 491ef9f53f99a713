package ws

import "quizmatch/internal/domain"

type RoomEvent struct {
	Type     string `json:"type"`
	RoomCode string `json:"roomCode"`
	Data     any    `json:"data,omitempty"`
}

// Payload structs
type PlayerJoinedPayload struct {
	PlayerName  string `json:"playerName"`
	PlayerCount int    `json:"playerCount"`
	MaxPlayers  int    `json:"maxPlayers"`
}

type StatusChangedPayload struct {
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

func NewRoomState(room domain.Room) *RoomEvent {
	return &RoomEvent{
		Type:     RoomState,
		RoomCode: room.Code,
		Data:     room,
	}
}

func NewPlayerJoined(room domain.Room, playerName string) *RoomEvent {
	return &RoomEvent{
		Type:     PlayerJoined,
		RoomCode: room.Code,
		Data: PlayerJoinedPayload{
			PlayerName:  playerName,
			PlayerCount: len(room.Players),
			MaxPlayers:  room.MaxPlayers,
		},
	}
}

func NewStatusChanged(roomCode, oldStatus, newStatus string) *RoomEvent {
	return &RoomEvent{
		Type:     StatusChanged,
		RoomCode: roomCode,
		Data: StatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: newStatus,
		},
	}
}

func NewRoomExpired(roomCode string) *RoomEvent {
	return &RoomEvent{
		Type:     RoomExpired,
		RoomCode: roomCode,
	}
}

func NewError(roomCode, message string) *RoomEvent {
	return &RoomEvent{
		Type:     ErrorEvent,
		RoomCode: roomCode,
		Data: ErrorPayload{
			Message: message,
		},
	}
}
