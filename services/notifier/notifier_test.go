package notifier

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	redis_models "memora/models/redis"
	"memora/services/store"

	"github.com/stretchr/testify/assert"
)

func seedRoom(t *testing.T, st store.RoomStore, code string) {
	t.Helper()
	err := st.CreateRoom(context.Background(), &redis_models.Room{
		Code:        code,
		GameType:    redis_models.GameTrivia,
		InitiatorID: "alice",
		Phase:       redis_models.PhaseWaiting,
		Scores:      map[string]int{"alice": 0},
		CreatedAt:   time.Now().Unix(),
	})
	if err != nil {
		t.Fatalf("Failed to seed room: %v", err)
	}
}

func collect(ch chan store.Snapshot, t *testing.T) store.Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for snapshot")
		return store.Snapshot{}
	}
}

func TestWatchDeliversInitialAndUpdates(t *testing.T) {
	st := store.NewMemoryRoomStore()
	seedRoom(t, st, "AAAA")

	got := make(chan store.Snapshot, 16)
	stop, err := New(st).Watch(context.Background(), "AAAA", func(snap store.Snapshot) {
		got <- snap
	})
	assert.NoError(t, err)
	defer stop()

	// The current state arrives first, unprompted
	initial := collect(got, t)
	assert.False(t, initial.Deleted)
	assert.Equal(t, redis_models.PhaseWaiting, initial.Room.Phase)

	_, err = st.UpdateRoom(context.Background(), "AAAA", func(room *redis_models.Room) error {
		room.JoinerID = "bob"
		room.Phase = redis_models.PhaseActive
		return nil
	})
	assert.NoError(t, err)

	update := collect(got, t)
	assert.Equal(t, redis_models.PhaseActive, update.Room.Phase)
	assert.Equal(t, "bob", update.Room.JoinerID)
}

func TestWatchDeliversDeletion(t *testing.T) {
	st := store.NewMemoryRoomStore()
	seedRoom(t, st, "AAAA")

	got := make(chan store.Snapshot, 16)
	stop, err := New(st).Watch(context.Background(), "AAAA", func(snap store.Snapshot) {
		got <- snap
	})
	assert.NoError(t, err)
	defer stop()

	collect(got, t) // initial

	assert.NoError(t, st.DeleteRoom(context.Background(), "AAAA"))
	tombstone := collect(got, t)
	assert.True(t, tombstone.Deleted)
}

func TestWatchMissingRoom(t *testing.T) {
	st := store.NewMemoryRoomStore()

	got := make(chan store.Snapshot, 16)
	stop, err := New(st).Watch(context.Background(), "ZZZZ", func(snap store.Snapshot) {
		got <- snap
	})
	assert.NoError(t, err)
	defer stop()

	// A missing room is reported as already deleted
	snap := collect(got, t)
	assert.True(t, snap.Deleted)
}

func TestWatchStopBeforeInitialDelivery(t *testing.T) {
	st := store.NewMemoryRoomStore()
	seedRoom(t, st, "AAAA")

	var stopped atomic.Bool
	stop, err := New(st).Watch(context.Background(), "AAAA", func(snap store.Snapshot) {
		if stopped.Load() {
			t.Error("callback invoked after stop returned")
		}
	})
	assert.NoError(t, err)

	// Stop right away; the initial delivery goroutine may not have run yet
	// and must not fire afterwards
	stop()
	stopped.Store(true)

	time.Sleep(50 * time.Millisecond)
}

func TestWatchStopEndsDeliveries(t *testing.T) {
	st := store.NewMemoryRoomStore()
	seedRoom(t, st, "AAAA")

	got := make(chan store.Snapshot, 16)
	stop, err := New(st).Watch(context.Background(), "AAAA", func(snap store.Snapshot) {
		got <- snap
	})
	assert.NoError(t, err)

	collect(got, t) // initial
	stop()

	// Writes after stop never reach the callback
	_, err = st.UpdateRoom(context.Background(), "AAAA", func(room *redis_models.Room) error {
		room.Phase = redis_models.PhaseActive
		return nil
	})
	assert.NoError(t, err)

	select {
	case snap, ok := <-got:
		if ok {
			t.Fatalf("unexpected snapshot after stop: %+v", snap)
		}
	case <-time.After(100 * time.Millisecond):
	}
}
