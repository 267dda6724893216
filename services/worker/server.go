package worker

import (
	"context"
	"encoding/json"
	"errors"

	redis_models "memora/models/redis"
	"memora/services/game"
	"memora/services/rooms"
	"memora/services/store"
	"memora/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// WorkerServer processes the background tasks: scheduled round advances and
// the periodic room sweep.
type WorkerServer struct {
	server   *asynq.Server
	machine  *game.Machine
	sweeper  *rooms.Sweeper
	recorder rooms.MatchRecorder
	log      *logrus.Entry
}

func NewWorkerServer(redisOpt asynq.RedisClientOpt, st store.RoomStore,
	recorder rooms.MatchRecorder, logger *logrus.Logger) *WorkerServer {

	logEntry := logger.WithField("component", "worker")

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				logEntry.WithFields(logrus.Fields{
					"task_type": task.Type(),
				}).Errorf("Task failed: %v", err)
			}),
		},
	)

	return &WorkerServer{
		server:   server,
		machine:  game.NewMachine(st, nil),
		sweeper:  rooms.NewSweeper(st, recorder),
		recorder: recorder,
		log:      logEntry,
	}
}

// Start runs the worker server. Blocks until Shutdown.
func (w *WorkerServer) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeRoundAdvance, w.handleRoundAdvance)
	mux.HandleFunc(tasks.TypeRoomSweep, w.handleRoomSweep)
	return w.server.Run(mux)
}

func (w *WorkerServer) Shutdown() {
	w.server.Shutdown()
}

// handleRoundAdvance performs the scheduled advance. Only the first attempt
// per round commits; precondition losses and vanished rooms are the normal
// outcome of duplicated schedules and are dropped without retry.
func (w *WorkerServer) handleRoundAdvance(ctx context.Context, t *asynq.Task) error {
	var p tasks.RoundAdvancePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return asynq.SkipRetry
	}

	room, err := w.machine.AdvanceRound(ctx, p.Code, p.Round)
	if err != nil {
		if errors.Is(err, store.ErrPreconditionFailed) || errors.Is(err, store.ErrRoomNotFound) {
			w.log.WithFields(logrus.Fields{
				"room":  p.Code,
				"round": p.Round,
			}).Debug("Advance already handled, skipping")
			return nil
		}
		return err
	}

	if room.Phase == redis_models.PhaseFinished && w.recorder != nil {
		if err := w.recorder.RecordMatch(ctx, room); err != nil {
			w.log.WithField("room", p.Code).Errorf("Failed to record match: %v", err)
			// The sweep records it on a later pass, no retry needed
		}
	}
	return nil
}

func (w *WorkerServer) handleRoomSweep(ctx context.Context, t *asynq.Task) error {
	return w.sweeper.Sweep(ctx)
}
