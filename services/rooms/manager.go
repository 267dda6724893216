package rooms

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	game_constants "memora/constants/game"
	redis_models "memora/models/redis"
	"memora/services/game"
	"memora/services/store"
)

// Room code alphabet. Human-typable, no lookalike characters (0/O, 1/I/l)
const codeCharset = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// Manager owns the room lifecycle: creation with a fresh code, seating the
// second participant, leaving, and deletion of abandoned rooms.
type Manager struct {
	store store.RoomStore
	// rngMu guards rng: Create is called from concurrent HTTP and socket
	// handlers and *rand.Rand is not goroutine safe
	rngMu sync.Mutex
	rng   *rand.Rand
	now   func() time.Time
}

func NewManager(st store.RoomStore) *Manager {
	return &Manager{
		store: st,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		now:   time.Now,
	}
}

func (m *Manager) generateCode() string {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()

	b := make([]byte, game_constants.ROOM_CODE_LENGTH)
	for i := range b {
		b[i] = codeCharset[m.rng.Intn(len(codeCharset))]
	}
	return string(b)
}

func (m *Manager) buildRounds(variant game.Variant) []redis_models.GameRound {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return variant.BuildRounds(m.rng)
}

// Create builds a room for the initiator with pre-built rounds for the
// requested game type and a collision-retried short code. The room starts
// in the waiting phase with only the initiator seated.
func (m *Manager) Create(ctx context.Context, initiatorID, gameType string) (*redis_models.Room, error) {
	variant, err := game.VariantFor(gameType)
	if err != nil {
		return nil, err
	}

	room := &redis_models.Room{
		GameType:    gameType,
		InitiatorID: initiatorID,
		Phase:       redis_models.PhaseWaiting,
		Rounds:      m.buildRounds(variant),
		Scores:      map[string]int{initiatorID: 0},
		LastSeen:    map[string]int64{initiatorID: m.now().Unix()},
		CreatedAt:   m.now().Unix(),
	}

	for attempt := 0; attempt < game_constants.MAX_CODE_ATTEMPTS; attempt++ {
		room.Code = m.generateCode()
		err := m.store.CreateRoom(ctx, room)
		if err == nil {
			return room, nil
		}
		if errors.Is(err, store.ErrRoomExists) {
			log.Printf("[ROOM-CREATE] Code collision on %s, retrying", room.Code)
			continue
		}
		return nil, &store.SyncError{Op: "create", Err: err}
	}
	return nil, ErrCodeExhausted
}

// Join seats joinerID as the second participant and starts the game. The
// seat is taken atomically: two concurrent joins can never both succeed.
func (m *Manager) Join(ctx context.Context, code, joinerID string) (*redis_models.Room, error) {
	updated, err := m.store.UpdateRoom(ctx, code, func(room *redis_models.Room) error {
		if joinerID == room.InitiatorID {
			return ErrSelfJoin
		}
		if room.JoinerID != "" {
			return ErrRoomFull
		}
		room.JoinerID = joinerID
		room.Scores[joinerID] = 0
		if room.LastSeen == nil {
			room.LastSeen = make(map[string]int64)
		}
		room.LastSeen[joinerID] = m.now().Unix()
		room.Phase = redis_models.PhaseActive
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) ||
			errors.Is(err, ErrRoomFull) || errors.Is(err, ErrSelfJoin) {
			return nil, err
		}
		return nil, &store.SyncError{Op: "join", Err: err}
	}
	return updated, nil
}

// Leave removes a participant from the room's point of view. An initiator
// abandoning an empty lobby deletes it outright; leaving a game that has
// already begun forfeits it to the peer.
func (m *Manager) Leave(ctx context.Context, code, participantID string) error {
	room, err := m.store.GetRoom(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrRoomNotFound) {
			return err
		}
		return &store.SyncError{Op: "leave", Err: err}
	}
	if !room.IsParticipant(participantID) {
		return ErrNotParticipant
	}

	if room.Phase == redis_models.PhaseWaiting && participantID == room.InitiatorID {
		// No point keeping an empty lobby around
		if err := m.store.DeleteRoom(ctx, code); err != nil {
			return &store.SyncError{Op: "leave", Err: err}
		}
		log.Printf("[ROOM-LEAVE] Initiator %s left waiting room %s, deleted", participantID, code)
		return nil
	}

	if room.Phase == redis_models.PhaseActive || room.Phase == redis_models.PhaseResolved {
		machine := game.NewMachine(m.store, nil)
		if _, err := machine.Forfeit(ctx, code, participantID); err != nil {
			// Losing the forfeit race means the room already finished some
			// other way, which is fine
			if errors.Is(err, store.ErrPreconditionFailed) {
				return nil
			}
			return err
		}
		log.Printf("[ROOM-LEAVE] %s left running room %s, forfeited", participantID, code)
	}
	return nil
}

// Get returns the current room document
func (m *Manager) Get(ctx context.Context, code string) (*redis_models.Room, error) {
	return m.store.GetRoom(ctx, code)
}
