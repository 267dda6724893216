package rooms

import (
	"context"
	"testing"
	"time"

	game_constants "memora/constants/game"
	redis_models "memora/models/redis"
	"memora/services/store"

	"github.com/stretchr/testify/assert"
)

type fakeRecorder struct {
	recorded []string
}

func (r *fakeRecorder) RecordMatch(ctx context.Context, room *redis_models.Room) error {
	r.recorded = append(r.recorded, room.Code)
	return nil
}

func seedRoom(t *testing.T, st store.RoomStore, room *redis_models.Room) {
	t.Helper()
	if err := st.CreateRoom(context.Background(), room); err != nil {
		t.Fatalf("Failed to seed room %s: %v", room.Code, err)
	}
}

func TestSweepRemovesExpiredRooms(t *testing.T) {
	st := store.NewMemoryRoomStore()
	recorder := &fakeRecorder{}
	sweeper := NewSweeper(st, recorder)

	now := time.Unix(100_000, 0)
	sweeper.now = func() time.Time { return now }
	old := now.Add(-game_constants.ROOM_RETENTION - time.Minute).Unix()

	seedRoom(t, st, &redis_models.Room{
		Code: "OLDW", InitiatorID: "alice",
		Phase: redis_models.PhaseWaiting, CreatedAt: old,
	})
	seedRoom(t, st, &redis_models.Room{
		Code: "OLDF", InitiatorID: "alice", JoinerID: "bob",
		Phase: redis_models.PhaseFinished, CreatedAt: old, FinishedAt: old,
		Scores: map[string]int{"alice": 3, "bob": 1},
	})
	seedRoom(t, st, &redis_models.Room{
		Code: "FRSH", InitiatorID: "carol",
		Phase: redis_models.PhaseWaiting, CreatedAt: now.Unix(),
	})

	err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)

	_, err = st.GetRoom(context.Background(), "OLDW")
	assert.ErrorIs(t, err, store.ErrRoomNotFound)
	_, err = st.GetRoom(context.Background(), "OLDF")
	assert.ErrorIs(t, err, store.ErrRoomNotFound)
	_, err = st.GetRoom(context.Background(), "FRSH")
	assert.NoError(t, err)

	// Only the finished room's result was persisted before deletion
	assert.Equal(t, []string{"OLDF"}, recorder.recorded)
}

func TestSweepForfeitsSilentParticipant(t *testing.T) {
	st := store.NewMemoryRoomStore()
	sweeper := NewSweeper(st, &fakeRecorder{})

	now := time.Unix(100_000, 0)
	sweeper.now = func() time.Time { return now }
	silent := now.Add(-game_constants.PRESENCE_TIMEOUT - time.Second).Unix()

	seedRoom(t, st, &redis_models.Room{
		Code: "GAME", InitiatorID: "alice", JoinerID: "bob",
		Phase: redis_models.PhaseActive, CreatedAt: now.Unix(),
		Scores:   map[string]int{"alice": 0, "bob": 0},
		LastSeen: map[string]int64{"alice": now.Unix(), "bob": silent},
	})

	err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)

	room, err := st.GetRoom(context.Background(), "GAME")
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseFinished, room.Phase)
	assert.Equal(t, "bob", room.ForfeitBy)
}

func TestSweepKeepsPresentParticipants(t *testing.T) {
	st := store.NewMemoryRoomStore()
	sweeper := NewSweeper(st, &fakeRecorder{})

	now := time.Unix(100_000, 0)
	sweeper.now = func() time.Time { return now }

	seedRoom(t, st, &redis_models.Room{
		Code: "GAME", InitiatorID: "alice", JoinerID: "bob",
		Phase: redis_models.PhaseActive, CreatedAt: now.Unix(),
		Scores:   map[string]int{"alice": 0, "bob": 0},
		LastSeen: map[string]int64{"alice": now.Unix(), "bob": now.Unix()},
	})

	err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)

	room, err := st.GetRoom(context.Background(), "GAME")
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseActive, room.Phase)
}

func TestSweepRecordsFinishedRooms(t *testing.T) {
	st := store.NewMemoryRoomStore()
	recorder := &fakeRecorder{}
	sweeper := NewSweeper(st, recorder)

	now := time.Unix(100_000, 0)
	sweeper.now = func() time.Time { return now }

	seedRoom(t, st, &redis_models.Room{
		Code: "DONE", InitiatorID: "alice", JoinerID: "bob",
		Phase: redis_models.PhaseFinished, CreatedAt: now.Unix(), FinishedAt: now.Unix(),
		Scores: map[string]int{"alice": 5, "bob": 3},
	})

	err := sweeper.Sweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, []string{"DONE"}, recorder.recorded)

	// The document stays visible until retention removes it
	_, err = st.GetRoom(context.Background(), "DONE")
	assert.NoError(t, err)
}
