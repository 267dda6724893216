package notifier

import (
	"context"
	"errors"
	"sync"

	"memora/services/store"
)

// Notifier turns the store's subscription feed into per-room callbacks.
// Every delivery carries a full snapshot; there is no diffing and no
// guarantee that intermediate states are seen, only that the last write is.
type Notifier struct {
	store store.RoomStore
}

func New(st store.RoomStore) *Notifier {
	return &Notifier{store: st}
}

// Watch delivers the room's current state, then every subsequent snapshot
// (or deletion notice), to fn on a dedicated goroutine. The returned stop
// function releases the subscription; once it returns, fn is not invoked
// again and any in-flight invocation has completed.
func (n *Notifier) Watch(ctx context.Context, code string, fn func(store.Snapshot)) (func(), error) {
	// Subscribe before the initial read so a commit between the two is
	// still delivered
	feed, stop, err := n.store.Subscribe(ctx, code)
	if err != nil {
		return nil, &store.SyncError{Op: "watch", Err: err}
	}

	current, err := n.store.GetRoom(ctx, code)
	if err != nil && !errors.Is(err, store.ErrRoomNotFound) {
		stop()
		return nil, &store.SyncError{Op: "watch", Err: err}
	}

	// The mutex serializes fn against stop: stop flips the flag under the
	// lock and waits out any delivery already in progress, so no callback
	// can begin after stop returns
	var mu sync.Mutex
	stopped := false
	deliver := func(snap store.Snapshot) {
		mu.Lock()
		defer mu.Unlock()
		if stopped {
			return
		}
		fn(snap)
	}

	go func() {
		if current != nil {
			deliver(store.Snapshot{Room: current})
		} else {
			deliver(store.Snapshot{Deleted: true})
		}
		for snap := range feed {
			deliver(snap)
		}
	}()

	return func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
		stop()
	}, nil
}
