package handlers

import (
	"context"
	"errors"
	"log"

	"memora/services/game"
	"memora/services/notifier"
	"memora/services/rooms"
	socketio_types "memora/services/socket_io/types"
	socketio_utils "memora/services/socket_io/utils"
	"memora/services/store"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// toInt converts a socket.io argument (JSON number or int) to an int
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// watchRoom subscribes the client to a room's snapshot feed and replaces
// any previous watch. Every authoritative snapshot reaches the client as a
// room_update event; deletion arrives as room_closed.
func watchRoom(notif *notifier.Notifier, sio *socketio_types.SocketServer,
	client *socket.Socket, username, roomCode string) error {
	stop, err := notif.Watch(context.Background(), roomCode, func(snap store.Snapshot) {
		if snap.Deleted || snap.Room == nil {
			client.Emit("room_closed", gin.H{"room_code": roomCode})
			return
		}
		client.Emit("room_update", socketio_utils.RoomView(snap.Room))
	})
	if err != nil {
		return err
	}
	sio.SetWatch(username, stop)
	return nil
}

// HandleCreateRoom creates a room for the requested game type and starts
// following its snapshots
func HandleCreateRoom(manager *rooms.Manager, notif *notifier.Notifier,
	client *socket.Socket, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			log.Printf("[CREATE-ERROR] Missing game type for user %s", username)
			client.Emit("error", gin.H{"error": "Missing game type"})
			return
		}
		gameType, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid game type"})
			return
		}

		room, err := manager.Create(context.Background(), username, gameType)
		if err != nil {
			log.Printf("[CREATE-ERROR] User %s could not create room: %v", username, err)
			if errors.Is(err, rooms.ErrCodeExhausted) {
				client.Emit("error", gin.H{"error": "Could not allocate a room code, try again"})
			} else {
				client.Emit("error", gin.H{"error": "Error creating room"})
			}
			return
		}

		if err := watchRoom(notif, sio, client, username, room.Code); err != nil {
			log.Printf("[CREATE-ERROR] Error watching room %s: %v", room.Code, err)
			client.Emit("error", gin.H{"error": "Error following room updates"})
			return
		}

		log.Printf("[CREATE-SUCCESS] User %s created room %s (%s)", username, room.Code, gameType)
		client.Emit("room_created", gin.H{
			"room_code": room.Code,
			"game_type": room.GameType,
		})
	}
}

// HandleJoinRoom seats the user in an existing room
func HandleJoinRoom(manager *rooms.Manager, notif *notifier.Notifier,
	client *socket.Socket, username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			log.Printf("[JOIN-ERROR] Missing room code for user %s", username)
			client.Emit("error", gin.H{"error": "Missing room code"})
			return
		}
		roomCode, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room code"})
			return
		}

		room, err := manager.Join(context.Background(), roomCode, username)
		if err != nil {
			log.Printf("[JOIN-ERROR] User %s could not join room %s: %v", username, roomCode, err)
			switch {
			case errors.Is(err, store.ErrRoomNotFound):
				client.Emit("error", gin.H{"error": "Room not found"})
			case errors.Is(err, rooms.ErrRoomFull):
				client.Emit("error", gin.H{"error": "Room is already full"})
			case errors.Is(err, rooms.ErrSelfJoin):
				client.Emit("error", gin.H{"error": "You cannot join your own room"})
			default:
				client.Emit("error", gin.H{"error": "Error joining room, try again"})
			}
			return
		}

		if err := watchRoom(notif, sio, client, username, roomCode); err != nil {
			log.Printf("[JOIN-ERROR] Error watching room %s: %v", roomCode, err)
			client.Emit("error", gin.H{"error": "Error following room updates"})
			return
		}

		log.Printf("[JOIN-SUCCESS] User %s joined room %s", username, roomCode)
		client.Emit("room_joined", socketio_utils.RoomView(room))
	}
}

// HandleSubmitAnswer records the user's answer for the current round.
// Losing the submit race is not an error: the authoritative result arrives
// with the next room_update.
func HandleSubmitAnswer(machine *game.Machine, client *socket.Socket,
	username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 3 {
			client.Emit("error", gin.H{"error": "Missing room code, round or item"})
			return
		}
		roomCode, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room code"})
			return
		}
		round, okRound := toInt(args[1])
		item, okItem := toInt(args[2])
		if !okRound || !okItem {
			client.Emit("error", gin.H{"error": "Invalid round or item"})
			return
		}

		_, err := machine.SubmitAnswer(context.Background(), roomCode, username, round, item)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrPreconditionFailed):
				// The peer got there first, the snapshot will tell
				log.Printf("[SUBMIT] User %s lost the submit race in room %s round %d",
					username, roomCode, round)
				client.Emit("submission_ignored", gin.H{"room_code": roomCode, "round": round})
			case errors.Is(err, store.ErrRoomNotFound):
				client.Emit("error", gin.H{"error": "Room not found"})
			case errors.Is(err, game.ErrInvalidSelection):
				client.Emit("error", gin.H{"error": "Selection out of range"})
			case errors.Is(err, game.ErrNotParticipant):
				client.Emit("error", gin.H{"error": "You are not in that room"})
			default:
				log.Printf("[SUBMIT-ERROR] User %s in room %s: %v", username, roomCode, err)
				client.Emit("error", gin.H{"error": "Error submitting answer, try again"})
			}
			return
		}

		log.Printf("[SUBMIT-SUCCESS] User %s answered round %d in room %s", username, round, roomCode)
		client.Emit("answer_accepted", gin.H{"room_code": roomCode, "round": round})
	}
}

// HandleGetRoomInfo returns a one-off snapshot of a room
func HandleGetRoomInfo(manager *rooms.Manager, client *socket.Socket,
	username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room code"})
			return
		}
		roomCode, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room code"})
			return
		}

		room, err := manager.Get(context.Background(), roomCode)
		if err != nil {
			if errors.Is(err, store.ErrRoomNotFound) {
				client.Emit("error", gin.H{"error": "Room not found"})
			} else {
				client.Emit("error", gin.H{"error": "Error fetching room info"})
			}
			return
		}

		client.Emit("room_info", socketio_utils.RoomView(room))
	}
}

// HandleHeartbeat stamps the user's presence in a room
func HandleHeartbeat(machine *game.Machine, client *socket.Socket,
	username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			return
		}
		roomCode, ok := args[0].(string)
		if !ok {
			return
		}
		if err := machine.Heartbeat(context.Background(), roomCode, username); err != nil {
			// Heartbeats are best effort, a missed one is recovered by the next
			log.Printf("[HEARTBEAT-WARN] User %s room %s: %v", username, roomCode, err)
		}
	}
}

// HandleLeaveRoom exits a room voluntarily
func HandleLeaveRoom(manager *rooms.Manager, client *socket.Socket,
	username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing room code"})
			return
		}
		roomCode, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Invalid room code"})
			return
		}

		sio.StopWatch(username)
		if err := manager.Leave(context.Background(), roomCode, username); err != nil {
			log.Printf("[LEAVE-ERROR] User %s leaving room %s: %v", username, roomCode, err)
			if errors.Is(err, store.ErrRoomNotFound) {
				client.Emit("error", gin.H{"error": "Room not found"})
			} else if errors.Is(err, rooms.ErrNotParticipant) {
				client.Emit("error", gin.H{"error": "You are not in that room"})
			} else {
				client.Emit("error", gin.H{"error": "Error leaving room"})
			}
			return
		}

		log.Printf("[LEAVE-SUCCESS] User %s left room %s", username, roomCode)
		client.Emit("room_left", gin.H{"room_code": roomCode})
	}
}

// Function to handle socket.io client disconnections.
func HandleDisconnecting(username string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] User %s disconnecting", username)

		// Stop following room updates; missed heartbeats let the sweep
		// decide the game's fate if the user does not come back in time
		sio.StopWatch(username)
		sio.RemoveConnection(username)
	}
}
