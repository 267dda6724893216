package postgres

import (
	"time"
)

/*
 * 'User' is one account of the companion app. Authentication is a short
 * numeric PIN, stored only as a bcrypt hash. It contains a reference to
 * PlayerProfile.
 */
type User struct {
	Username    string    `gorm:"primaryKey;size:50;not null"`
	PinHash     string    `gorm:"size:255;not null"`
	FullName    string    `gorm:"size:100"`
	MemberSince time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with the player profile
	PlayerProfile PlayerProfile `gorm:"foreignKey:Username;constraint:OnDelete:CASCADE"`
}
