package worker

import (
	"fmt"

	game_constants "memora/constants/game"
	"memora/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// NewSweepScheduler returns an asynq scheduler that enqueues the periodic
// room sweep
func NewSweepScheduler(redisOpt asynq.RedisClientOpt, logger *logrus.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, nil)

	spec := fmt.Sprintf("@every %s", game_constants.SWEEP_INTERVAL)
	if _, err := scheduler.Register(spec, tasks.NewRoomSweepTask()); err != nil {
		return nil, fmt.Errorf("error registering sweep task: %v", err)
	}
	logger.WithField("interval", game_constants.SWEEP_INTERVAL.String()).
		Info("Room sweep scheduled")
	return scheduler, nil
}
