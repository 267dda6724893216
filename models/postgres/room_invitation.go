package postgres

import (
	"time"
)

/*
 * 'RoomInvitation' represents an invitation to join a game room. The room
 * itself lives in the real-time store, so only its code is referenced here.
 */
type RoomInvitation struct {
	RoomCode        string    `gorm:"primaryKey;size:50;not null"`
	SenderUsername  string    `gorm:"primaryKey;size:50;not null"`
	InvitedUsername string    `gorm:"primaryKey;size:50;not null"`
	GameType        string    `gorm:"size:50;not null"`
	CreatedAt       time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	SenderProfile  PlayerProfile `gorm:"foreignKey:SenderUsername;constraint:OnDelete:CASCADE"`
	InvitedProfile PlayerProfile `gorm:"foreignKey:InvitedUsername;constraint:OnDelete:CASCADE"`
}
