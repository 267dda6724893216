package store

import (
	"context"
	"errors"

	redis_models "memora/models/redis"
)

// Store errors. ErrPreconditionFailed is the expected outcome of losing a
// race and is never surfaced to users as a failure.
var (
	ErrRoomNotFound       = errors.New("room not found")
	ErrRoomExists         = errors.New("room already exists")
	ErrPreconditionFailed = errors.New("precondition failed")
)

// UpdateFunc inspects the current document and either mutates it in place
// or returns ErrPreconditionFailed to abort without side effects. It may be
// re-run against a fresh document if a concurrent writer got there first,
// so it must not carry state between invocations.
type UpdateFunc func(room *redis_models.Room) error

// Snapshot is one delivery on a room's change feed. Room is nil when the
// document was deleted.
type Snapshot struct {
	Room    *redis_models.Room
	Deleted bool
}

// RoomStore is the contract over the real-time document store. One document
// per room; all mutation after creation goes through UpdateRoom.
type RoomStore interface {
	// GetRoom retrieves a room document, or ErrRoomNotFound
	GetRoom(ctx context.Context, code string) (*redis_models.Room, error)

	// CreateRoom writes a new document only if the code is unused,
	// otherwise ErrRoomExists
	CreateRoom(ctx context.Context, room *redis_models.Room) error

	// SaveRoom writes a document unconditionally
	SaveRoom(ctx context.Context, room *redis_models.Room) error

	// UpdateRoom applies fn as an atomic read-modify-write. The commit only
	// happens if no concurrent write landed in between; on contention fn is
	// re-run against the fresh document. Returns the committed document.
	UpdateRoom(ctx context.Context, code string, fn UpdateFunc) (*redis_models.Room, error)

	// DeleteRoom removes the document and pushes a deletion notice to
	// subscribers
	DeleteRoom(ctx context.Context, code string) error

	// Subscribe returns a feed of full snapshots for one room. Rapid
	// updates may be coalesced; only last-write-visible-wins is guaranteed.
	// The returned stop function releases the subscription.
	Subscribe(ctx context.Context, code string) (<-chan Snapshot, func(), error)

	// ListCodes returns the codes of all live rooms, for the sweep
	ListCodes(ctx context.Context) ([]string, error)
}
