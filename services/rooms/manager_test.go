package rooms

import (
	"context"
	"strings"
	"sync"
	"testing"

	game_constants "memora/constants/game"
	redis_models "memora/models/redis"
	"memora/services/store"

	"github.com/stretchr/testify/assert"
)

// collidingStore rejects the first n creations with ErrRoomExists
type collidingStore struct {
	*store.MemoryRoomStore
	collisions int
}

func (s *collidingStore) CreateRoom(ctx context.Context, room *redis_models.Room) error {
	if s.collisions > 0 {
		s.collisions--
		return store.ErrRoomExists
	}
	return s.MemoryRoomStore.CreateRoom(ctx, room)
}

func TestCreateRoom(t *testing.T) {
	manager := NewManager(store.NewMemoryRoomStore())

	room, err := manager.Create(context.Background(), "alice", redis_models.GameMemoryMatch)
	assert.NoError(t, err)
	assert.Len(t, room.Code, game_constants.ROOM_CODE_LENGTH)
	assert.Equal(t, redis_models.PhaseWaiting, room.Phase)
	assert.Equal(t, "alice", room.InitiatorID)
	assert.Empty(t, room.JoinerID)
	assert.Len(t, room.Rounds, game_constants.MEMORY_MATCH_ROUNDS)
	assert.Equal(t, map[string]int{"alice": 0}, room.Scores)
	assert.NotZero(t, room.CreatedAt)

	for _, c := range room.Code {
		assert.True(t, strings.ContainsRune(codeCharset, c), "unexpected code character %q", c)
	}
}

func TestCreateRoomConcurrent(t *testing.T) {
	st := store.NewMemoryRoomStore()
	manager := NewManager(st)

	const creators = 8
	var wg sync.WaitGroup
	codes := make([]string, creators)
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			room, err := manager.Create(context.Background(), "alice", redis_models.GameTrivia)
			assert.NoError(t, err)
			codes[i] = room.Code
		}(i)
	}
	wg.Wait()

	// Every creation got its own room
	seen := map[string]bool{}
	for _, code := range codes {
		assert.NotEmpty(t, code)
		assert.False(t, seen[code], "code %s handed out twice", code)
		seen[code] = true
	}
}

func TestCreateRoomUnknownGame(t *testing.T) {
	manager := NewManager(store.NewMemoryRoomStore())
	_, err := manager.Create(context.Background(), "alice", "chess")
	assert.Error(t, err)
}

func TestCreateRoomCodeCollision(t *testing.T) {
	st := &collidingStore{MemoryRoomStore: store.NewMemoryRoomStore(), collisions: 2}
	manager := NewManager(st)

	room, err := manager.Create(context.Background(), "alice", redis_models.GameTrivia)
	assert.NoError(t, err)
	assert.NotEmpty(t, room.Code)
}

func TestCreateRoomCodeExhausted(t *testing.T) {
	st := &collidingStore{
		MemoryRoomStore: store.NewMemoryRoomStore(),
		collisions:      game_constants.MAX_CODE_ATTEMPTS,
	}
	manager := NewManager(st)

	_, err := manager.Create(context.Background(), "alice", redis_models.GameTrivia)
	assert.ErrorIs(t, err, ErrCodeExhausted)
}

func TestJoinRoom(t *testing.T) {
	st := store.NewMemoryRoomStore()
	manager := NewManager(st)
	room, err := manager.Create(context.Background(), "alice", redis_models.GameMemoryMatch)
	assert.NoError(t, err)

	joined, err := manager.Join(context.Background(), room.Code, "bob")
	assert.NoError(t, err)
	assert.Equal(t, "bob", joined.JoinerID)
	assert.Equal(t, redis_models.PhaseActive, joined.Phase)
	assert.Equal(t, map[string]int{"alice": 0, "bob": 0}, joined.Scores)
	assert.Contains(t, joined.LastSeen, "bob")
}

func TestJoinRoomErrors(t *testing.T) {
	st := store.NewMemoryRoomStore()
	manager := NewManager(st)
	room, err := manager.Create(context.Background(), "alice", redis_models.GameMemoryMatch)
	assert.NoError(t, err)

	_, err = manager.Join(context.Background(), room.Code, "alice")
	assert.ErrorIs(t, err, ErrSelfJoin)

	_, err = manager.Join(context.Background(), room.Code, "bob")
	assert.NoError(t, err)

	// The seat is taken exactly once
	_, err = manager.Join(context.Background(), room.Code, "carol")
	assert.ErrorIs(t, err, ErrRoomFull)

	_, err = manager.Join(context.Background(), "ZZZZ", "bob")
	assert.ErrorIs(t, err, store.ErrRoomNotFound)
}

func TestLeaveWaitingRoomDeletesIt(t *testing.T) {
	st := store.NewMemoryRoomStore()
	manager := NewManager(st)
	room, err := manager.Create(context.Background(), "alice", redis_models.GameMemoryMatch)
	assert.NoError(t, err)

	err = manager.Leave(context.Background(), room.Code, "alice")
	assert.NoError(t, err)

	_, err = st.GetRoom(context.Background(), room.Code)
	assert.ErrorIs(t, err, store.ErrRoomNotFound)
}

func TestLeaveRunningRoomForfeits(t *testing.T) {
	st := store.NewMemoryRoomStore()
	manager := NewManager(st)
	room, err := manager.Create(context.Background(), "alice", redis_models.GameMemoryMatch)
	assert.NoError(t, err)
	_, err = manager.Join(context.Background(), room.Code, "bob")
	assert.NoError(t, err)

	err = manager.Leave(context.Background(), room.Code, "bob")
	assert.NoError(t, err)

	final, err := st.GetRoom(context.Background(), room.Code)
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseFinished, final.Phase)
	assert.Equal(t, "bob", final.ForfeitBy)
}

func TestLeaveErrors(t *testing.T) {
	st := store.NewMemoryRoomStore()
	manager := NewManager(st)
	room, err := manager.Create(context.Background(), "alice", redis_models.GameMemoryMatch)
	assert.NoError(t, err)

	err = manager.Leave(context.Background(), room.Code, "mallory")
	assert.ErrorIs(t, err, ErrNotParticipant)

	err = manager.Leave(context.Background(), "ZZZZ", "alice")
	assert.ErrorIs(t, err, store.ErrRoomNotFound)
}
