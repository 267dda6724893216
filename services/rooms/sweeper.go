package rooms

import (
	"context"
	"errors"
	"log"
	"time"

	game_constants "memora/constants/game"
	redis_models "memora/models/redis"
	"memora/services/game"
	"memora/services/store"
)

// MatchRecorder persists a finished room's outcome before its document is
// removed. Implementations must be idempotent per room code.
type MatchRecorder interface {
	RecordMatch(ctx context.Context, room *redis_models.Room) error
}

// Sweeper is the background cleanup pass: it forfeits rooms whose peer went
// silent, persists finished rooms, and deletes rooms past the retention
// window.
type Sweeper struct {
	store    store.RoomStore
	machine  *game.Machine
	recorder MatchRecorder
	now      func() time.Time
}

func NewSweeper(st store.RoomStore, recorder MatchRecorder) *Sweeper {
	return &Sweeper{
		store:    st,
		machine:  game.NewMachine(st, nil),
		recorder: recorder,
		now:      time.Now,
	}
}

// Sweep runs one cleanup pass over every live room. Individual room
// failures are logged and skipped so one bad document cannot stall the
// whole pass.
func (s *Sweeper) Sweep(ctx context.Context) error {
	codes, err := s.store.ListCodes(ctx)
	if err != nil {
		return &store.SyncError{Op: "sweep", Err: err}
	}

	now := s.now().Unix()
	for _, code := range codes {
		room, err := s.store.GetRoom(ctx, code)
		if err != nil {
			if !errors.Is(err, store.ErrRoomNotFound) {
				log.Printf("[SWEEP-ERROR] Error reading room %s: %v", code, err)
			}
			continue
		}

		// Retention: anything older than the window goes, whatever state
		// it is in
		if now-room.CreatedAt > int64(game_constants.ROOM_RETENTION.Seconds()) {
			s.retire(ctx, room)
			continue
		}

		switch room.Phase {
		case redis_models.PhaseActive, redis_models.PhaseResolved:
			s.forfeitIfSilent(ctx, room, now)
		case redis_models.PhaseFinished:
			// Persist promptly; the document itself stays visible so both
			// clients can observe the final state, retention removes it
			if s.recorder != nil {
				if err := s.recorder.RecordMatch(ctx, room); err != nil {
					log.Printf("[SWEEP-ERROR] Error recording match %s: %v", room.Code, err)
				}
			}
		}
	}
	return nil
}

// forfeitIfSilent ends the game when a seated participant has missed
// heartbeats past the presence window
func (s *Sweeper) forfeitIfSilent(ctx context.Context, room *redis_models.Room, now int64) {
	window := int64(game_constants.PRESENCE_TIMEOUT.Seconds())
	for _, id := range []string{room.InitiatorID, room.JoinerID} {
		if id == "" {
			continue
		}
		if now-room.LastSeen[id] <= window {
			continue
		}
		if _, err := s.machine.Forfeit(ctx, room.Code, id); err != nil {
			if !errors.Is(err, store.ErrPreconditionFailed) {
				log.Printf("[SWEEP-ERROR] Error forfeiting room %s: %v", room.Code, err)
			}
		} else {
			log.Printf("[SWEEP] Room %s forfeited, %s silent for over %s",
				room.Code, id, game_constants.PRESENCE_TIMEOUT)
		}
		return
	}
}

// retire persists a finished room's result and deletes the document
func (s *Sweeper) retire(ctx context.Context, room *redis_models.Room) {
	if room.Phase == redis_models.PhaseFinished && s.recorder != nil {
		if err := s.recorder.RecordMatch(ctx, room); err != nil {
			log.Printf("[SWEEP-ERROR] Error recording match %s before delete: %v", room.Code, err)
		}
	}
	if err := s.store.DeleteRoom(ctx, room.Code); err != nil {
		log.Printf("[SWEEP-ERROR] Error deleting room %s: %v", room.Code, err)
	} else {
		log.Printf("[SWEEP] Room %s removed after retention window", room.Code)
	}
}
