package rooms

import "errors"

var (
	// ErrRoomFull: the second seat is already taken
	ErrRoomFull = errors.New("room is full")
	// ErrSelfJoin: the initiator tried to join their own room
	ErrSelfJoin = errors.New("cannot join your own room")
	// ErrCodeExhausted: code generation kept colliding; the caller should
	// just try again
	ErrCodeExhausted = errors.New("could not generate a unique room code")
	// ErrNotParticipant: the caller does not occupy a seat in the room
	ErrNotParticipant = errors.New("not a participant of this room")
)
