package utils

import (
	models "memora/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ErrorHandler handles global errors
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// UserExists reports whether an account with the given username exists
func UserExists(db *gorm.DB, username string) error {
	var user models.User
	return db.Where("username = ?", username).First(&user).Error
}

// AreBuddies reports whether two users share a buddy link, in either order
func AreBuddies(db *gorm.DB, username1 string, username2 string) (bool, error) {
	var count int64
	err := db.Model(&models.Buddy{}).
		Where("(username1 = ? AND username2 = ?) OR (username1 = ? AND username2 = ?)",
			username1, username2, username2, username1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AvatarIcon returns the avatar icon of the user, falling back to the default
func AvatarIcon(db *gorm.DB, username string) int {
	var icon int
	err := db.Model(&models.PlayerProfile{}).
		Select("avatar_icon").
		Where("username = ?", username).
		Find(&icon).Error
	if err != nil {
		return 1
	}
	return icon
}
