package store

import (
	"context"
	"encoding/json"
	"sync"

	redis_models "memora/models/redis"
)

// MemoryRoomStore implements RoomStore in process memory with the same
// semantics as the Redis store. Used by unit tests and local development
// without a Redis instance. Documents are kept as JSON so callers never
// share pointers with the store.
type MemoryRoomStore struct {
	mu     sync.Mutex
	rooms  map[string][]byte
	subs   map[string]map[int]chan Snapshot
	nextID int
}

func NewMemoryRoomStore() *MemoryRoomStore {
	return &MemoryRoomStore{
		rooms: make(map[string][]byte),
		subs:  make(map[string]map[int]chan Snapshot),
	}
}

func decodeRoom(data []byte) (*redis_models.Room, error) {
	var room redis_models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *MemoryRoomStore) GetRoom(ctx context.Context, code string) (*redis_models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return decodeRoom(data)
}

func (s *MemoryRoomStore) CreateRoom(ctx context.Context, room *redis_models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[room.Code]; ok {
		return ErrRoomExists
	}
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	s.rooms[room.Code] = data
	return nil
}

func (s *MemoryRoomStore) SaveRoom(ctx context.Context, room *redis_models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	s.rooms[room.Code] = data
	s.notifyLocked(room.Code, Snapshot{Room: room})
	return nil
}

func (s *MemoryRoomStore) UpdateRoom(ctx context.Context, code string, fn UpdateFunc) (*redis_models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.rooms[code]
	if !ok {
		return nil, ErrRoomNotFound
	}
	room, err := decodeRoom(data)
	if err != nil {
		return nil, err
	}

	if err := fn(room); err != nil {
		return nil, err
	}

	newData, err := json.Marshal(room)
	if err != nil {
		return nil, err
	}
	s.rooms[code] = newData
	s.notifyLocked(code, Snapshot{Room: room})
	return room, nil
}

func (s *MemoryRoomStore) DeleteRoom(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, code)
	s.notifyLocked(code, Snapshot{Deleted: true})
	return nil
}

func (s *MemoryRoomStore) Subscribe(ctx context.Context, code string) (<-chan Snapshot, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	ch := make(chan Snapshot, 16)
	if s.subs[code] == nil {
		s.subs[code] = make(map[int]chan Snapshot)
	}
	s.subs[code][id] = ch

	stop := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[code][id]; ok {
			delete(s.subs[code], id)
			close(sub)
		}
	}
	return ch, stop, nil
}

func (s *MemoryRoomStore) ListCodes(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	codes := make([]string, 0, len(s.rooms))
	for code := range s.rooms {
		codes = append(codes, code)
	}
	return codes, nil
}

// notifyLocked delivers a snapshot to every subscriber of the room,
// dropping the oldest buffered snapshot when a consumer lags. Callers must
// hold s.mu. Snapshots are re-decoded per subscriber so consumers never
// alias each other's documents.
func (s *MemoryRoomStore) notifyLocked(code string, snap Snapshot) {
	for _, ch := range s.subs[code] {
		out := snap
		if snap.Room != nil {
			data, err := json.Marshal(snap.Room)
			if err != nil {
				continue
			}
			room, err := decodeRoom(data)
			if err != nil {
				continue
			}
			out = Snapshot{Room: room}
		}
		select {
		case ch <- out:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- out:
			default:
			}
		}
	}
}
