package controllers

import (
	"net/http"

	models "memora/models/postgres"
	"memora/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Get a list of a user's buddies
// @Description Returns a list of the user's buddies
// @Tags buddies
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{username=string,icon=integer}
// @Failure 500 {object} object{error=string}
// @Router /auth/buddies [get]
// @Security ApiKeyAuth
func ListBuddies(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")

		var buddies []models.Buddy
		result := db.Where("username1 = ? OR username2 = ?", username, username).Find(&buddies)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching buddies"})
			return
		}

		buddyUsernames := []string{}
		for _, buddy := range buddies {
			if buddy.Username1 == username {
				buddyUsernames = append(buddyUsernames, buddy.Username2)
			} else {
				buddyUsernames = append(buddyUsernames, buddy.Username1)
			}
		}

		// Fetch buddy profiles
		var profiles []models.PlayerProfile
		if len(buddyUsernames) > 0 {
			result = db.Where("username IN (?)", buddyUsernames).Find(&profiles)
			if result.Error != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching buddies data"})
				return
			}
		}

		simplified := make([]gin.H, len(profiles))
		for i, profile := range profiles {
			simplified[i] = gin.H{
				"username": profile.Username,
				"icon":     profile.AvatarIcon,
			}
		}
		c.JSON(http.StatusOK, simplified)
	}
}

// @Summary Send a buddy request
// @Description Creates a pending buddy request towards another user
// @Tags buddies
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param buddy_username formData string true "Username to befriend"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/sendBuddyRequest [post]
// @Security ApiKeyAuth
func SendBuddyRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")
		buddyUsername := c.PostForm("buddy_username")

		if buddyUsername == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Buddy username is required"})
			return
		}
		if buddyUsername == username {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot befriend yourself"})
			return
		}

		var profile models.PlayerProfile
		if err := db.Where("username = ?", buddyUsername).First(&profile).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		// Already buddies?
		buddies, err := utils.AreBuddies(db, username, buddyUsername)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking buddies"})
			return
		}
		if buddies {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Already buddies"})
			return
		}

		request := models.BuddyRequest{
			SenderUsername:   username,
			ReceiverUsername: buddyUsername,
		}
		if err := db.Create(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending buddy request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Buddy request sent"})
	}
}

// @Summary List incoming buddy requests
// @Description Returns all pending buddy requests sent to the user
// @Tags buddies
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{sender=string,created_at=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/buddy_requests [get]
// @Security ApiKeyAuth
func GetAllBuddyRequests(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")

		var requests []models.BuddyRequest
		if err := db.Where("receiver_username = ?", username).Find(&requests).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching buddy requests"})
			return
		}

		simplified := make([]gin.H, len(requests))
		for i, request := range requests {
			simplified[i] = gin.H{
				"sender":     request.SenderUsername,
				"created_at": request.CreatedAt,
			}
		}
		c.JSON(http.StatusOK, simplified)
	}
}

// @Summary Accept a buddy request
// @Description Turns a pending request into a buddy link
// @Tags buddies
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param sender_username formData string true "Sender of the request"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/acceptBuddyRequest [post]
// @Security ApiKeyAuth
func AcceptBuddyRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")
		senderUsername := c.PostForm("sender_username")

		var request models.BuddyRequest
		result := db.Where("sender_username = ? AND receiver_username = ?",
			senderUsername, username).First(&request)
		if result.Error != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Buddy request not found"})
			return
		}

		buddy := models.Buddy{
			Username1: senderUsername,
			Username2: username,
		}
		if err := db.Create(&buddy).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating buddy link"})
			return
		}

		if err := db.Delete(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing buddy request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Buddy request accepted"})
	}
}

// @Summary Delete a buddy request
// @Description Declines (removes) a pending buddy request
// @Tags buddies
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param sender_username formData string true "Sender of the request"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/delete_buddy_request [delete]
// @Security ApiKeyAuth
func DeleteBuddyRequest(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")
		senderUsername := c.PostForm("sender_username")

		var request models.BuddyRequest
		result := db.Where("sender_username = ? AND receiver_username = ?",
			senderUsername, username).First(&request)
		if result.Error != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Buddy request not found"})
			return
		}

		if err := db.Delete(&request).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting buddy request"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Buddy request deleted"})
	}
}

// @Summary Remove a buddy
// @Description Deletes the buddy link between the user and another user
// @Tags buddies
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param buddy_username formData string true "Buddy to remove"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/removeBuddy [delete]
// @Security ApiKeyAuth
func RemoveBuddy(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")
		buddyUsername := c.PostForm("buddy_username")

		var buddy models.Buddy
		result := db.Where(
			"(username1 = ? AND username2 = ?) OR (username1 = ? AND username2 = ?)",
			username, buddyUsername, buddyUsername, username,
		).First(&buddy)
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Buddy link not found"})
			return
		}

		// Delete the buddy link
		if err := db.Delete(&buddy).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing buddy"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Buddy removed successfully"})
	}
}
