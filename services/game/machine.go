package game

import (
	"context"
	"errors"
	"log"
	"time"

	game_constants "memora/constants/game"
	redis_models "memora/models/redis"
	"memora/services/store"
)

var (
	ErrNotParticipant   = errors.New("not a participant of this room")
	ErrInvalidSelection = errors.New("selection out of range")
	ErrGameFinished     = errors.New("game already finished")
)

// AdvanceScheduler schedules the single server-side round advance that runs
// after the resolve delay. Duplicate schedules are harmless: AdvanceRound's
// precondition rejects every attempt after the first successful one.
type AdvanceScheduler interface {
	ScheduleAdvance(ctx context.Context, code string, round int, delay time.Duration) error
}

// Machine drives a room through active -> resolved -> active/finished with
// preconditioned store updates. It holds no room state of its own; the
// store document is the single source of truth.
type Machine struct {
	store     store.RoomStore
	scheduler AdvanceScheduler
	now       func() time.Time
}

func NewMachine(st store.RoomStore, scheduler AdvanceScheduler) *Machine {
	return &Machine{store: st, scheduler: scheduler, now: time.Now}
}

// SubmitAnswer records the first answer for the given round. Exactly one
// concurrent submitter wins; every other caller gets
// store.ErrPreconditionFailed and must wait for the peer's snapshot instead
// of surfacing an error.
func (m *Machine) SubmitAnswer(ctx context.Context, code, participantID string, round, item int) (*redis_models.Room, error) {
	updated, err := m.store.UpdateRoom(ctx, code, func(room *redis_models.Room) error {
		if !room.IsParticipant(participantID) {
			return ErrNotParticipant
		}
		if room.Phase != redis_models.PhaseActive || room.Round != round || room.Selection != nil {
			return store.ErrPreconditionFailed
		}
		current := room.CurrentRound()
		if current == nil {
			return store.ErrPreconditionFailed
		}
		if item < 0 || item >= len(current.Items) {
			return ErrInvalidSelection
		}

		correct := item == current.Answer
		room.Selection = &redis_models.Selection{
			By:      participantID,
			Item:    item,
			Correct: correct,
			At:      m.now().Unix(),
		}
		if correct {
			room.Scores[participantID]++
		}
		room.Phase = redis_models.PhaseResolved
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr("submit", err)
	}

	if m.scheduler != nil {
		if err := m.scheduler.ScheduleAdvance(ctx, code, round, game_constants.RESOLVE_DELAY); err != nil {
			// The commit already happened; a lost schedule only delays the
			// next round until a client retries or the sweep notices
			log.Printf("[GAME-WARN] Failed to schedule advance for room %s round %d: %v", code, round, err)
		}
	}
	return updated, nil
}

// AdvanceRound moves a resolved round forward: next round, or finished when
// no rounds remain. Preconditioned on the round index being unchanged so
// that redundant advances (a second timer, a retried task) are no-ops.
func (m *Machine) AdvanceRound(ctx context.Context, code string, round int) (*redis_models.Room, error) {
	updated, err := m.store.UpdateRoom(ctx, code, func(room *redis_models.Room) error {
		if room.Phase != redis_models.PhaseResolved || room.Round != round {
			return store.ErrPreconditionFailed
		}
		if round+1 >= len(room.Rounds) {
			room.Phase = redis_models.PhaseFinished
			room.FinishedAt = m.now().Unix()
			return nil
		}
		room.Round++
		room.Selection = nil
		room.Phase = redis_models.PhaseActive
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr("advance", err)
	}
	return updated, nil
}

// Heartbeat stamps the participant's presence time
func (m *Machine) Heartbeat(ctx context.Context, code, participantID string) error {
	_, err := m.store.UpdateRoom(ctx, code, func(room *redis_models.Room) error {
		if !room.IsParticipant(participantID) {
			return ErrNotParticipant
		}
		if room.Phase == redis_models.PhaseFinished {
			return ErrGameFinished
		}
		if room.LastSeen == nil {
			room.LastSeen = make(map[string]int64)
		}
		room.LastSeen[participantID] = m.now().Unix()
		return nil
	})
	return wrapStoreErr("heartbeat", err)
}

// Forfeit ends a running game because the given participant left or went
// silent. The peer is the winner regardless of scores.
func (m *Machine) Forfeit(ctx context.Context, code, participantID string) (*redis_models.Room, error) {
	updated, err := m.store.UpdateRoom(ctx, code, func(room *redis_models.Room) error {
		if !room.IsParticipant(participantID) {
			return ErrNotParticipant
		}
		if room.Phase != redis_models.PhaseActive && room.Phase != redis_models.PhaseResolved {
			return store.ErrPreconditionFailed
		}
		room.Phase = redis_models.PhaseFinished
		room.ForfeitBy = participantID
		room.FinishedAt = m.now().Unix()
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr("forfeit", err)
	}
	return updated, nil
}

// wrapStoreErr wraps transient store failures in a retryable SyncError
// while passing domain sentinels through untouched
func wrapStoreErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, store.ErrPreconditionFailed) ||
		errors.Is(err, store.ErrRoomNotFound) ||
		errors.Is(err, ErrNotParticipant) ||
		errors.Is(err, ErrInvalidSelection) ||
		errors.Is(err, ErrGameFinished) {
		return err
	}
	return &store.SyncError{Op: op, Err: err}
}
