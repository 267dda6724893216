package worker

import (
	"context"
	"io"
	"testing"
	"time"

	redis_models "memora/models/redis"
	"memora/services/store"
	"memora/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type captureRecorder struct {
	recorded []string
}

func (r *captureRecorder) RecordMatch(ctx context.Context, room *redis_models.Room) error {
	r.recorded = append(r.recorded, room.Code)
	return nil
}

func testWorker(st store.RoomStore, recorder *captureRecorder) *WorkerServer {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewWorkerServer(asynq.RedisClientOpt{Addr: "localhost:6379"}, st, recorder, logger)
}

func resolvedRoom(code string, round, totalRounds int) *redis_models.Room {
	rounds := make([]redis_models.GameRound, totalRounds)
	for i := range rounds {
		rounds[i] = redis_models.GameRound{
			Prompt: "p",
			Items:  []redis_models.RoundItem{{Label: "a"}, {Label: "b"}},
			Answer: 0,
		}
	}
	return &redis_models.Room{
		Code:        code,
		GameType:    redis_models.GameTrivia,
		InitiatorID: "alice",
		JoinerID:    "bob",
		Phase:       redis_models.PhaseResolved,
		Round:       round,
		Rounds:      rounds,
		Selection:   &redis_models.Selection{By: "alice", Item: 0, Correct: true},
		Scores:      map[string]int{"alice": 1, "bob": 0},
		CreatedAt:   time.Now().Unix(),
	}
}

func TestHandleRoundAdvance(t *testing.T) {
	st := store.NewMemoryRoomStore()
	recorder := &captureRecorder{}
	worker := testWorker(st, recorder)

	assert.NoError(t, st.CreateRoom(context.Background(), resolvedRoom("AAAA", 0, 3)))

	task, err := tasks.NewRoundAdvanceTask("AAAA", 0)
	assert.NoError(t, err)
	assert.NoError(t, worker.handleRoundAdvance(context.Background(), task))

	room, err := st.GetRoom(context.Background(), "AAAA")
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseActive, room.Phase)
	assert.Equal(t, 1, room.Round)
	assert.Nil(t, room.Selection)
	assert.Empty(t, recorder.recorded)
}

func TestHandleRoundAdvanceDuplicate(t *testing.T) {
	st := store.NewMemoryRoomStore()
	worker := testWorker(st, &captureRecorder{})

	assert.NoError(t, st.CreateRoom(context.Background(), resolvedRoom("AAAA", 1, 3)))

	// A task scheduled for a round that already advanced is a clean no-op
	task, err := tasks.NewRoundAdvanceTask("AAAA", 0)
	assert.NoError(t, err)
	assert.NoError(t, worker.handleRoundAdvance(context.Background(), task))

	room, err := st.GetRoom(context.Background(), "AAAA")
	assert.NoError(t, err)
	assert.Equal(t, 1, room.Round)
}

func TestHandleRoundAdvanceVanishedRoom(t *testing.T) {
	worker := testWorker(store.NewMemoryRoomStore(), &captureRecorder{})

	task, err := tasks.NewRoundAdvanceTask("GONE", 0)
	assert.NoError(t, err)
	assert.NoError(t, worker.handleRoundAdvance(context.Background(), task))
}

func TestHandleRoundAdvanceFinishRecordsMatch(t *testing.T) {
	st := store.NewMemoryRoomStore()
	recorder := &captureRecorder{}
	worker := testWorker(st, recorder)

	assert.NoError(t, st.CreateRoom(context.Background(), resolvedRoom("AAAA", 2, 3)))

	task, err := tasks.NewRoundAdvanceTask("AAAA", 2)
	assert.NoError(t, err)
	assert.NoError(t, worker.handleRoundAdvance(context.Background(), task))

	room, err := st.GetRoom(context.Background(), "AAAA")
	assert.NoError(t, err)
	assert.Equal(t, redis_models.PhaseFinished, room.Phase)
	assert.Equal(t, []string{"AAAA"}, recorder.recorded)
}

func TestHandleRoomSweep(t *testing.T) {
	st := store.NewMemoryRoomStore()
	worker := testWorker(st, &captureRecorder{})

	assert.NoError(t, worker.handleRoomSweep(context.Background(), tasks.NewRoomSweepTask()))
}
