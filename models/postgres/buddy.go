package postgres

import (
	"errors"

	"gorm.io/gorm"
)

/*
 * 'Buddy' represents an established buddy link between two users.
 */
type Buddy struct {
	Username1 string `gorm:"primaryKey;type:varchar(50);index:idx_buddies_username2"`
	Username2 string `gorm:"primaryKey;type:varchar(50)"`

	// Relationships
	Profile1 PlayerProfile `gorm:"foreignKey:Username1;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Profile2 PlayerProfile `gorm:"foreignKey:Username2;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// GORM hook to ensure that both usernames are different
func (b *Buddy) BeforeSave(tx *gorm.DB) error {
	if b.Username1 == b.Username2 {
		return errors.New("cannot create a buddy link with yourself")
	}
	return nil
}
