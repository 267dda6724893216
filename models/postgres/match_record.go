package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'MatchRecord' is the durable outcome of one finished room, written when
 * the live document is retired from the real-time store.
 */
type MatchRecord struct {
	ID                string         `gorm:"primaryKey;size:36;not null"`
	RoomCode          string         `gorm:"size:50;not null;uniqueIndex:idx_match_records_room"`
	GameType          string         `gorm:"size:50;not null"`
	InitiatorUsername string         `gorm:"size:50;not null;index"`
	JoinerUsername    string         `gorm:"size:50;index"`
	Scores            datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	WinnerUsername    string         `gorm:"size:50"`
	ForfeitBy         string         `gorm:"size:50"`
	FinishedAt        time.Time      `gorm:""`
	CreatedAt         time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}

func (m *MatchRecord) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
