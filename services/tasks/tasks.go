package tasks

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type constants
const (
	TypeRoundAdvance = "room:advance" // scheduled phase advance after a round resolves
	TypeRoomSweep    = "room:sweep"   // periodic retention/presence cleanup
)

// RoundAdvancePayload identifies which round the advance was scheduled
// for. A stale payload is rejected by the state machine's precondition, so
// duplicated or late tasks are harmless.
type RoundAdvancePayload struct {
	Code  string `json:"code"`
	Round int    `json:"round"`
}

func NewRoundAdvanceTask(code string, round int) (*asynq.Task, error) {
	payload, err := json.Marshal(RoundAdvancePayload{Code: code, Round: round})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRoundAdvance, payload), nil
}

func NewRoomSweepTask() *asynq.Task {
	return asynq.NewTask(TypeRoomSweep, nil)
}

// AdvanceScheduler enqueues the server-side round advance through asynq.
// Implements game.AdvanceScheduler.
type AdvanceScheduler struct {
	client *asynq.Client
}

func NewAdvanceScheduler(client *asynq.Client) *AdvanceScheduler {
	return &AdvanceScheduler{client: client}
}

func (s *AdvanceScheduler) ScheduleAdvance(ctx context.Context, code string, round int, delay time.Duration) error {
	task, err := NewRoundAdvanceTask(code, round)
	if err != nil {
		return err
	}
	_, err = s.client.EnqueueContext(ctx, task,
		asynq.ProcessIn(delay),
		asynq.MaxRetry(3),
		asynq.Queue("critical"))
	return err
}
