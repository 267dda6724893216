package postgres

import (
	"time"
)

/*
 * 'BuddyRequest' is a pending request from one user to become buddies with
 * another. Accepting it creates a Buddy row and deletes the request.
 */
type BuddyRequest struct {
	SenderUsername   string    `gorm:"primaryKey;size:50;not null"`
	ReceiverUsername string    `gorm:"primaryKey;size:50;not null"`
	CreatedAt        time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	SenderProfile   PlayerProfile `gorm:"foreignKey:SenderUsername;constraint:OnDelete:CASCADE"`
	ReceiverProfile PlayerProfile `gorm:"foreignKey:ReceiverUsername;constraint:OnDelete:CASCADE"`
}
