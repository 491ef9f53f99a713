package repository_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizmatch/internal/domain"
	"quizmatch/internal/infrastructure/repository"
)

func newRoom(code string, now time.Time) *domain.Room {
	return domain.NewRoom(code, "Host", 4, now, 30*time.Minute)
}

func TestRoomStore_Create(t *testing.T) {
	store := repository.NewRoomStore()
	now := time.Now()

	room, err := store.Create(now, func(code string) *domain.Room {
		return newRoom(code, now)
	})
	require.NoError(t, err)

	assert.True(t, domain.ValidCode(room.Code))
	assert.Equal(t, 1, store.Len())

	got, err := store.Get(now, room.Code)
	require.NoError(t, err)
	assert.Equal(t, room.Code, got.Code)
}

func TestRoomStore_CreateUniqueCodes(t *testing.T) {
	store := repository.NewRoomStore()
	now := time.Now()

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		room, err := store.Create(now, func(code string) *domain.Room {
			return newRoom(code, now)
		})
		require.NoError(t, err)
		require.False(t, seen[room.Code], "code %s issued twice", room.Code)
		seen[room.Code] = true
	}

	assert.Equal(t, 100, store.Len())
}

func TestRoomStore_GetMissing(t *testing.T) {
	store := repository.NewRoomStore()

	_, err := store.Get(time.Now(), "123456")
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
}

func TestRoomStore_SweepOnEveryOperation(t *testing.T) {
	store := repository.NewRoomStore()
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	room, err := store.Create(created, func(code string) *domain.Room {
		return newRoom(code, created)
	})
	require.NoError(t, err)

	// Still visible exactly at the expiry instant.
	atExpiry := created.Add(30 * time.Minute)
	_, err = store.Get(atExpiry, room.Code)
	assert.NoError(t, err)

	// One second later every entry point reports it gone.
	past := atExpiry.Add(time.Second)

	_, err = store.Get(past, room.Code)
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)
	assert.Equal(t, 0, store.Len())

	_, err = store.Mutate(past, room.Code, func(r *domain.Room) error { return nil })
	assert.ErrorIs(t, err, domain.ErrRoomNotFound)

	assert.Empty(t, store.ListAll(past))
}

func TestRoomStore_ExpiredCodeIsReusable(t *testing.T) {
	store := repository.NewRoomStore()
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	old, err := store.Create(created, func(code string) *domain.Room {
		return newRoom(code, created)
	})
	require.NoError(t, err)

	// After expiry the sweep inside Create frees the code before the
	// generator consults the key set, so a later create may legitimately
	// reuse it. We only assert the old room is gone and the new one lives.
	past := created.Add(31 * time.Minute)
	fresh, err := store.Create(past, func(code string) *domain.Room {
		return domain.NewRoom(code, "Host", 4, past, 30*time.Minute)
	})
	require.NoError(t, err)

	assert.Equal(t, 1, store.Len())
	got, err := store.Get(past, fresh.Code)
	require.NoError(t, err)
	assert.Equal(t, past, got.CreatedAt)
	_ = old
}

func TestRoomStore_SnapshotIsolation(t *testing.T) {
	store := repository.NewRoomStore()
	now := time.Now()

	room, err := store.Create(now, func(code string) *domain.Room {
		return newRoom(code, now)
	})
	require.NoError(t, err)

	// Mutating the returned snapshot must not leak into the table.
	room.Players = append(room.Players, "Intruder")
	room.Status = domain.StatusPlaying

	got, err := store.Get(now, room.Code)
	require.NoError(t, err)
	assert.Equal(t, []string{"Host"}, got.Players)
	assert.Equal(t, domain.StatusWaiting, got.Status)
}

func TestRoomStore_MutateFailureLeavesRoomIntact(t *testing.T) {
	store := repository.NewRoomStore()
	now := time.Now()

	room, err := store.Create(now, func(code string) *domain.Room {
		return newRoom(code, now)
	})
	require.NoError(t, err)

	_, err = store.Mutate(now, room.Code, func(r *domain.Room) error {
		return r.AddPlayer("Host")
	})
	assert.ErrorIs(t, err, domain.ErrDuplicatePlayer)

	got, err := store.Get(now, room.Code)
	require.NoError(t, err)
	assert.Equal(t, []string{"Host"}, got.Players)
}

func TestRoomStore_ListAllSorted(t *testing.T) {
	store := repository.NewRoomStore()
	now := time.Now()

	for i := 0; i < 20; i++ {
		_, err := store.Create(now, func(code string) *domain.Room {
			return newRoom(code, now)
		})
		require.NoError(t, err)
	}

	first := store.ListAll(now)
	second := store.ListAll(now)
	require.Equal(t, len(first), len(second))

	for i := range first {
		assert.Equal(t, first[i].Code, second[i].Code)
		if i > 0 {
			assert.Less(t, first[i-1].Code, first[i].Code)
		}
	}
}

func TestRoomStore_EvictHook(t *testing.T) {
	store := repository.NewRoomStore()
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	var mu sync.Mutex
	var evicted []string
	store.SetEvictHook(func(room *domain.Room) {
		mu.Lock()
		evicted = append(evicted, room.Code)
		mu.Unlock()
	})

	room, err := store.Create(created, func(code string) *domain.Room {
		return newRoom(code, created)
	})
	require.NoError(t, err)

	n := store.SweepExpired(created.Add(31 * time.Minute))
	assert.Equal(t, 1, n)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{room.Code}, evicted)
}

func TestRoomStore_ConcurrentJoinLastSlot(t *testing.T) {
	store := repository.NewRoomStore()
	now := time.Now()

	room, err := store.Create(now, func(code string) *domain.Room {
		return domain.NewRoom(code, "Host", 2, now, time.Hour)
	})
	require.NoError(t, err)

	// Two racers, one open slot: exactly one join succeeds.
	names := []string{"Bob", "Carol"}
	errs := make([]error, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			_, err := store.Mutate(now, room.Code, func(r *domain.Room) error {
				return r.AddPlayer(name)
			})
			errs[i] = err
		}(i, name)
	}
	wg.Wait()

	var full, ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrRoomFull)
		full++
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, full)

	got, err := store.Get(now, room.Code)
	require.NoError(t, err)
	assert.Len(t, got.Players, 2)
}

func TestRoomStore_ConcurrentStress(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	store := repository.NewRoomStore()
	now := time.Now()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				room, err := store.Create(now, func(code string) *domain.Room {
					return newRoom(code, now)
				})
				if err != nil {
					t.Error(err)
					return
				}
				if _, err := store.Get(now, room.Code); err != nil {
					t.Error(err)
					return
				}
				store.ListAll(now)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 8*200, store.Len())
}
