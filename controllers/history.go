package controllers

import (
	"net/http"

	models "memora/models/postgres"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// @Summary List the user's finished matches
// @Description Returns the user's match history, most recent first
// @Tags history
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{room_code=string,game_type=string,initiator=string,joiner=string,winner=string,finished_at=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/matchHistory [get]
// @Security ApiKeyAuth
func GetMatchHistory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")

		var records []models.MatchRecord
		err := db.Where("initiator_username = ? OR joiner_username = ?", username, username).
			Order("finished_at DESC").
			Limit(50).
			Find(&records).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching match history"})
			return
		}

		history := make([]gin.H, len(records))
		for i, record := range records {
			entry := gin.H{
				"room_code":   record.RoomCode,
				"game_type":   record.GameType,
				"initiator":   record.InitiatorUsername,
				"joiner":      record.JoinerUsername,
				"scores":      record.Scores,
				"winner":      record.WinnerUsername,
				"finished_at": record.FinishedAt,
			}
			if record.ForfeitBy != "" {
				entry["forfeit_by"] = record.ForfeitBy
			}
			history[i] = entry
		}
		c.JSON(http.StatusOK, history)
	}
}
