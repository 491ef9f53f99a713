package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RoomEventType string

const (
	EventRoomCreated   RoomEventType = "room_created"
	EventRoomExpired   RoomEventType = "room_expired"
	EventPlayerJoined  RoomEventType = "player_joined"
	EventStatusChanged RoomEventType = "status_changed"
	EventRoomFull      RoomEventType = "room_full_rejected"
)

type RoomAuditLog struct {
	ID        string         `bson:"_id" json:"id"`
	RoomCode  string         `bson:"room_code" json:"roomCode"`
	EventType RoomEventType  `bson:"event_type" json:"eventType"`
	Timestamp time.Time      `bson:"timestamp" json:"timestamp"`
	Metadata  map[string]any `bson:"metadata,omitempty" json:"metadata,omitempty"`
}

type RoomAuditRepository interface {
	Log(ctx context.Context, log *RoomAuditLog) error
	GetByRoomCode(ctx context.Context, roomCode string, limit int) ([]RoomAuditLog, error)
	GetByEventType(ctx context.Context, eventType RoomEventType, from, to time.Time) ([]RoomAuditLog, error)
	DeleteOlderThan(ctx context.Context, before time.Time) error
	EnsureIndexes(ctx context.Context) error
}

func NewRoomCreatedLog(roomCode, hostName string, maxPlayers int, expiresAt time.Time) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomCode:  roomCode,
		EventType: EventRoomCreated,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"host_name":   hostName,
			"max_players": maxPlayers,
			"expires_at":  expiresAt,
		},
	}
}

func NewRoomExpiredLog(roomCode string) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomCode:  roomCode,
		EventType: EventRoomExpired,
		Timestamp: time.Now(),
		Metadata:  map[string]any{},
	}
}

func NewPlayerJoinedLog(roomCode, playerName string, playerCount int) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomCode:  roomCode,
		EventType: EventPlayerJoined,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"player_name":  playerName,
			"player_count": playerCount,
		},
	}
}

func NewStatusChangedLog(roomCode string, status RoomStatus) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomCode:  roomCode,
		EventType: EventStatusChanged,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"status": string(status),
		},
	}
}

func NewRoomFullRejectionLog(roomCode, playerName string) *RoomAuditLog {
	return &RoomAuditLog{
		ID:        uuid.NewString(),
		RoomCode:  roomCode,
		EventType: EventRoomFull,
		Timestamp: time.Now(),
		Metadata: map[string]any{
			"player_name": playerName,
		},
	}
}
