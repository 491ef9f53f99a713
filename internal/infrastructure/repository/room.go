package repository

import (
	"sort"
	"sync"
	"time"

	"quizmatch/internal/domain"
)

// EvictFunc observes rooms removed by the expiry sweep. It runs after the
// store's lock has been released, so implementations may publish events or
// touch metrics freely.
type EvictFunc func(room *domain.Room)

// RoomStore is the authoritative table of active rooms. Every operation,
// reads included, is serialized through one exclusive mutex, and every
// operation sweeps expired rooms before doing its own work, so an expired
// room is never observable from outside. Rooms handed out are deep copies;
// nothing aliases the table past the lock.
type RoomStore struct {
	mu      sync.Mutex
	rooms   map[string]*domain.Room
	onEvict EvictFunc
}

func NewRoomStore() *RoomStore {
	return &RoomStore{
		rooms: make(map[string]*domain.Room),
	}
}

// SetEvictHook registers the sweep observer. Call before the store is shared.
func (s *RoomStore) SetEvictHook(fn EvictFunc) {
	s.onEvict = fn
}

// SweepExpired removes every room past its expiry instant and returns the
// number removed. Public operations sweep on their own; this exists for the
// optional periodic sweep task.
func (s *RoomStore) SweepExpired(now time.Time) int {
	s.mu.Lock()
	evicted := s.sweepLocked(now)
	s.mu.Unlock()

	s.notify(evicted)
	return len(evicted)
}

// Create generates a collision-free code and inserts the room built from it,
// all within one lock acquisition: the sweep runs first, so a freshly
// expired code is evicted before the generator consults the key set, and no
// concurrent insert can race the uniqueness check.
func (s *RoomStore) Create(now time.Time, build func(code string) *domain.Room) (*domain.Room, error) {
	s.mu.Lock()
	evicted := s.sweepLocked(now)

	var code string
	for {
		c, err := domain.GenerateRoomCode()
		if err != nil {
			s.mu.Unlock()
			s.notify(evicted)
			return nil, err
		}
		if _, exists := s.rooms[c]; !exists {
			code = c
			break
		}
	}

	room := build(code)
	s.rooms[code] = room
	snapshot := room.Clone()
	s.mu.Unlock()

	s.notify(evicted)
	return snapshot, nil
}

// Get returns a snapshot of the room, or ErrRoomNotFound when the code is
// absent or the room just expired.
func (s *RoomStore) Get(now time.Time, code string) (*domain.Room, error) {
	s.mu.Lock()
	evicted := s.sweepLocked(now)

	room, ok := s.rooms[code]
	var snapshot *domain.Room
	if ok {
		snapshot = room.Clone()
	}
	s.mu.Unlock()

	s.notify(evicted)
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return snapshot, nil
}

// Mutate looks up the room and applies fn to it under the lock. When fn
// returns an error the room is left as fn left it, so transformations must
// validate before mutating. On success a snapshot of the updated room is
// returned.
func (s *RoomStore) Mutate(now time.Time, code string, fn func(*domain.Room) error) (*domain.Room, error) {
	s.mu.Lock()
	evicted := s.sweepLocked(now)

	room, ok := s.rooms[code]
	if !ok {
		s.mu.Unlock()
		s.notify(evicted)
		return nil, domain.ErrRoomNotFound
	}

	if err := fn(room); err != nil {
		s.mu.Unlock()
		s.notify(evicted)
		return nil, err
	}

	snapshot := room.Clone()
	s.mu.Unlock()

	s.notify(evicted)
	return snapshot, nil
}

// ListAll returns snapshots of every live room, ordered by code so repeated
// listings without intervening mutations are identical.
func (s *RoomStore) ListAll(now time.Time) []*domain.Room {
	s.mu.Lock()
	evicted := s.sweepLocked(now)

	rooms := make([]*domain.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room.Clone())
	}
	s.mu.Unlock()

	s.notify(evicted)
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].Code < rooms[j].Code })
	return rooms
}

// Len reports the current table size, sweep not included.
func (s *RoomStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rooms)
}

// sweepLocked evicts expired rooms. Caller holds the lock. The evicted
// snapshots are returned so observers can be notified after unlock.
func (s *RoomStore) sweepLocked(now time.Time) []*domain.Room {
	var evicted []*domain.Room
	for code, room := range s.rooms {
		if room.Expired(now) {
			evicted = append(evicted, room)
			delete(s.rooms, code)
		}
	}
	return evicted
}

func (s *RoomStore) notify(evicted []*domain.Room) {
	if s.onEvict == nil {
		return
	}
	for _, room := range evicted {
		s.onEvict(room)
	}
}
