package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	postgres_models "memora/models/postgres"
	redis_models "memora/models/redis"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncManager moves finished game state from the real-time store into
// PostgreSQL. Implements rooms.MatchRecorder.
type SyncManager struct {
	db *gorm.DB
}

// NewSyncManager creates a new instance of the synchronization manager
func NewSyncManager(db *gorm.DB) *SyncManager {
	return &SyncManager{db: db}
}

// RecordMatch persists a finished room's outcome as a MatchRecord.
// Idempotent per room code: the sweep and the advance worker may both try
// to record the same match.
func (sm *SyncManager) RecordMatch(ctx context.Context, room *redis_models.Room) error {
	if room.Phase != redis_models.PhaseFinished {
		return fmt.Errorf("room %s is not finished (phase: %s)", room.Code, room.Phase)
	}

	scores, err := json.Marshal(room.Scores)
	if err != nil {
		return fmt.Errorf("error marshaling scores: %v", err)
	}

	record := postgres_models.MatchRecord{
		RoomCode:          room.Code,
		GameType:          room.GameType,
		InitiatorUsername: room.InitiatorID,
		JoinerUsername:    room.JoinerID,
		Scores:            scores,
		WinnerUsername:    winnerOf(room),
		ForfeitBy:         room.ForfeitBy,
		FinishedAt:        time.Unix(room.FinishedAt, 0),
	}

	err = sm.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error
	if err != nil {
		return fmt.Errorf("error persisting match record: %v", err)
	}
	return nil
}

// winnerOf decides the recorded winner: a forfeit hands the game to the
// peer, otherwise the higher score wins and a tie records no winner
func winnerOf(room *redis_models.Room) string {
	if room.ForfeitBy != "" {
		return room.Peer(room.ForfeitBy)
	}
	initiator := room.Scores[room.InitiatorID]
	joiner := room.Scores[room.JoinerID]
	switch {
	case initiator > joiner:
		return room.InitiatorID
	case joiner > initiator:
		return room.JoinerID
	default:
		return ""
	}
}
