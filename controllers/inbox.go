package controllers

import (
	"net/http"

	models "memora/models/postgres"
	"memora/services/rooms"
	"memora/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary Invite a buddy to a room
// @Description Sends a room invitation to one of the user's buddies
// @Tags inbox
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param room_code formData string true "Room code"
// @Param buddy_username formData string true "Buddy to invite"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/sendRoomInvitation [post]
// @Security ApiKeyAuth
func SendRoomInvitation(db *gorm.DB, manager *rooms.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")
		roomCode := c.PostForm("room_code")
		buddyUsername := c.PostForm("buddy_username")

		if roomCode == "" || buddyUsername == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Room code and buddy username are required"})
			return
		}

		// Only buddies can be invited
		buddies, err := utils.AreBuddies(db, username, buddyUsername)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error checking buddies"})
			return
		}
		if !buddies {
			c.JSON(http.StatusBadRequest, gin.H{"error": "You can only invite your buddies"})
			return
		}

		room, err := manager.Get(c.Request.Context(), roomCode)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			return
		}
		if room.InitiatorID != username {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only the room's creator can invite"})
			return
		}

		invitation := models.RoomInvitation{
			RoomCode:        roomCode,
			SenderUsername:  username,
			InvitedUsername: buddyUsername,
			GameType:        room.GameType,
		}
		if err := db.Create(&invitation).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error sending invitation"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invitation sent"})
	}
}

// @Summary List room invitations
// @Description Returns all pending room invitations sent to the user
// @Tags inbox
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{room_code=string,sender=string,game_type=string,created_at=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/room_invitations [get]
// @Security ApiKeyAuth
func GetAllRoomInvitations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")

		var invitations []models.RoomInvitation
		if err := db.Where("invited_username = ?", username).Find(&invitations).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching invitations"})
			return
		}

		simplified := make([]gin.H, len(invitations))
		for i, invitation := range invitations {
			simplified[i] = gin.H{
				"room_code":  invitation.RoomCode,
				"sender":     invitation.SenderUsername,
				"game_type":  invitation.GameType,
				"created_at": invitation.CreatedAt,
			}
		}
		c.JSON(http.StatusOK, simplified)
	}
}

// @Summary Delete a room invitation
// @Description Removes an invitation from the user's inbox
// @Tags inbox
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param room_code formData string true "Room code"
// @Param sender_username formData string true "Sender of the invitation"
// @Success 200 {object} object{message=string}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/delete_room_invitation [delete]
// @Security ApiKeyAuth
func DeleteRoomInvitation(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")
		roomCode := c.PostForm("room_code")
		senderUsername := c.PostForm("sender_username")

		var invitation models.RoomInvitation
		result := db.Where(
			"room_code = ? AND sender_username = ? AND invited_username = ?",
			roomCode, senderUsername, username).First(&invitation)
		if result.Error != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Invitation not found"})
			return
		}

		if err := db.Delete(&invitation).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting invitation"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invitation deleted"})
	}
}
