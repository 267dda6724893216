package postgres

import (
	"gorm.io/datatypes"
)

/*
 * 'PlayerProfile' defines the structure for a user's game profile. It is
 * referenced in User, Buddy, BuddyRequest, RoomInvitation and MatchRecord.
 */
type PlayerProfile struct {
	Username   string         `gorm:"primaryKey;size:50;not null"`
	GameStats  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	AvatarIcon int            `gorm:"default:0"`

	Buddies1        []Buddy          `gorm:"foreignKey:Username1"`
	Buddies2        []Buddy          `gorm:"foreignKey:Username2"`
	BuddyRequests1  []BuddyRequest   `gorm:"foreignKey:SenderUsername"`
	BuddyRequests2  []BuddyRequest   `gorm:"foreignKey:ReceiverUsername"`
	RoomInvitations []RoomInvitation `gorm:"foreignKey:InvitedUsername"`
}
