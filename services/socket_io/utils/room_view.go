package socketio_utils

import (
	redis_models "memora/models/redis"

	"github.com/gin-gonic/gin"
)

// RoomView shapes a room document for emission to clients. The correct
// answer index never leaves the server.
func RoomView(room *redis_models.Room) gin.H {
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
