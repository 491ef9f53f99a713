package service

import (
	"strings"
	"time"

	"quizmatch/internal/domain"
	"quizmatch/internal/infrastructure/repository"
)

// RoomConfig carries the lifecycle policy knobs. Clock defaults to time.Now
// and exists so expiry boundaries can be pinned in tests.
type RoomConfig struct {
	Expiry     time.Duration
	MaxPlayers int
	Clock      func() time.Time
}

// RoomService implements the externally visible room operations on top of
// the store: defaults and clamping on create, ordered validation on join,
// vocabulary enforcement on status updates. The store itself sweeps expired
// rooms at the head of every operation, so the service never observes one.
type RoomService struct {
	store      *repository.RoomStore
	expiry     time.Duration
	maxPlayers int
	now        func() time.Time
}

func NewRoomService(store *repository.RoomStore, cfg RoomConfig) *RoomService {
	now := cfg.Clock
	if now == nil {
		now = time.Now
	}
	return &RoomService{
		store:      store,
		expiry:     cfg.Expiry,
		maxPlayers: cfg.MaxPlayers,
		now:        now,
	}
}

// MaxPlayers returns the global per-room ceiling.
func (s *RoomService) MaxPlayers() int {
	return s.maxPlayers
}

// CreateRoom builds a new room with the caller as host. An empty host name
// falls back to "Host"; the requested capacity is clamped to the global
// ceiling rather than rejected, and a non-positive request means "as many
// as allowed".
func (s *RoomService) CreateRoom(hostName string, maxPlayers int) (*domain.Room, error) {
	hostName = strings.TrimSpace(hostName)
	if hostName == "" {
		hostName = "Host"
	}

	if maxPlayers < 1 || maxPlayers > s.maxPlayers {
		maxPlayers = s.maxPlayers
	}

	now := s.now()
	return s.store.Create(now, func(code string) *domain.Room {
		return domain.NewRoom(code, hostName, maxPlayers, now, s.expiry)
	})
}

// JoinRoom appends playerName to the room's member list. Checks run in a
// fixed order and the first failure wins: code format, player name, room
// existence, duplicate membership, capacity.
func (s *RoomService) JoinRoom(code, playerName string) (*domain.Room, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrMissingCode
	}
	if !domain.ValidCode(code) {
		return nil, domain.ErrInvalidCodeFormat
	}

	playerName = strings.TrimSpace(playerName)
	if playerName == "" {
		return nil, domain.ErrMissingPlayerName
	}

	return s.store.Mutate(s.now(), code, func(room *domain.Room) error {
		return room.AddPlayer(playerName)
	})
}

// UpdateStatus overwrites the room's status. Any member of the vocabulary
// may follow any other; there is no transition graph.
func (s *RoomService) UpdateStatus(code, status string) (*domain.Room, error) {
	code = strings.TrimSpace(code)
	if !domain.ValidCode(code) {
		return nil, domain.ErrInvalidCodeFormat
	}

	status = strings.TrimSpace(status)
	if !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	return s.store.Mutate(s.now(), code, func(room *domain.Room) error {
		room.Status = domain.RoomStatus(status)
		return nil
	})
}

// GetRoom returns a snapshot of the room.
func (s *RoomService) GetRoom(code string) (*domain.Room, error) {
	code = strings.TrimSpace(code)
	if !domain.ValidCode(code) {
		return nil, domain.ErrInvalidCodeFormat
	}

	return s.store.Get(s.now(), code)
}

// ListRooms returns snapshots of every live room, ordered by code.
func (s *RoomService) ListRooms() []*domain.Room {
	return s.store.ListAll(s.now())
}

// Sweep evicts expired rooms and reports how many went. Expiry is otherwise
// lazy; this backs the optional periodic sweep task.
func (s *RoomService) Sweep() int {
	return s.store.SweepExpired(s.now())
}

// Count reports how many rooms are currently in the table, expired or not.
func (s *RoomService) Count() int {
	return s.store.Len()
}
