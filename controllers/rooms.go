package controllers

import (
	"errors"
	"net/http"

	redis_models "memora/models/redis"
	"memora/services/rooms"
	"memora/services/store"

	"github.com/gin-gonic/gin"
)

// @Summary Creates a new room
// @Description Creates a room for the chosen game and returns its code
// @Tags rooms
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param game_type formData string true "Game type (memory_match, trivia, shopping_list)"
// @Success 200 {object} object{room_code=string,message=string}
// @Failure 400 {object} object{error=string}
// @Failure 503 {object} object{error=string}
// @Router /auth/createRoom [post]
// @Security ApiKeyAuth
func CreateRoom(manager *rooms.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")
		gameType := c.PostForm("game_type")

		room, err := manager.Create(c.Request.Context(), username, gameType)
		if err != nil {
			if errors.Is(err, rooms.ErrCodeExhausted) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Could not allocate a room code, try again"})
				return
			}
			var syncErr *store.SyncError
			if errors.As(err, &syncErr) {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary problem creating the room, try again"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"room_code": room.Code, "message": "Room created successfully"})
	}
}

// @Summary Gives info of a room
// @Description Given a room code, it will return the current room document
// @Tags rooms
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param room_code path string true "Code of the room wanted"
// @Success 200 {object} object{room=object}
// @Failure 404 {object} object{error=string}
// @Failure 503 {object} object{error=string}
// @Router /auth/roomInfo/{room_code} [get]
// @Security ApiKeyAuth
func GetRoomInfo(manager *rooms.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomCode := c.Param("room_code")

		room, err := manager.Get(c.Request.Context(), roomCode)
		if err != nil {
			if errors.Is(err, store.ErrRoomNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			} else {
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary problem reading the room, try again"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"room": roomView(room)})
	}
}

// @Summary Inserts a user into a room
// @Description Seats the user as the room's second participant and starts the game
// @Tags rooms
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param room_code path string true "room_code"
// @Success 200 {object} object{room=object,message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 503 {object} object{error=string}
// @Router /auth/joinRoom/{room_code} [post]
// @Security ApiKeyAuth
func JoinRoom(manager *rooms.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")
		roomCode := c.Param("room_code")

		room, err := manager.Join(c.Request.Context(), roomCode, username)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrRoomNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			case errors.Is(err, rooms.ErrRoomFull):
				c.JSON(http.StatusBadRequest, gin.H{"error": "Room is already full"})
			case errors.Is(err, rooms.ErrSelfJoin):
				c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot join your own room"})
			default:
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary problem joining the room, try again"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"room": roomView(room), "message": "Joined room successfully"})
	}
}

// @Summary Removes the user from the room
// @Description Deletes a waiting room, or forfeits a running game
// @Tags rooms
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param room_code path string true "room_code"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 503 {object} object{error=string}
// @Router /auth/leaveRoom/{room_code} [post]
// @Security ApiKeyAuth
func LeaveRoom(manager *rooms.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")
		roomCode := c.Param("room_code")

		err := manager.Leave(c.Request.Context(), roomCode, username)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrRoomNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			case errors.Is(err, rooms.ErrNotParticipant):
				c.JSON(http.StatusBadRequest, gin.H{"error": "You are not in that room"})
			default:
				c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary problem leaving the room, try again"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Left room successfully"})
	}
}

// roomView shapes a room document for API responses. Round answers are
// never sent to clients.
func roomView(room *redis_models.Room) gin.H {
	view := gin.H{
		"room_code":  room.Code,
		"game_type":  room.GameType,
		"initiator":  room.InitiatorID,
		"joiner":     room.JoinerID,
		"phase":      room.Phase,
		"round":      room.Round,
		"rounds":     len(room.Rounds),
		"scores":     room.Scores,
		"created_at": room.CreatedAt,
	}
	if current := room.CurrentRound(); current != nil && room.Phase != redis_models.PhaseWaiting {
		items := make([]string, len(current.Items))
		for i, item := range current.Items {
			items[i] = item.Label
		}
		view["prompt"] = current.Prompt
		view["items"] = items
	}
	if room.Selection != nil {
		view["selection"] = gin.H{
			"by":      room.Selection.By,
			"item":    room.Selection.Item,
			"correct": room.Selection.Correct,
		}
	}
	if room.Phase == redis_models.PhaseFinished {
		view["finished_at"] = room.FinishedAt
		if room.ForfeitBy != "" {
			view["forfeit_by"] = room.ForfeitBy
		}
	}
	return view
}
