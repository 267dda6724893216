package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	redis_models "memora/models/redis"

	"github.com/redis/go-redis/v9"
)

// Key format: "room:{code}"
// Feed channel format: "room:{code}:feed"

// How many times a watched transaction is retried when a concurrent write
// invalidates it. The update func re-checks its precondition on every run,
// so retries can only turn contention into an honest ErrPreconditionFailed.
const maxTxRetries = 5

type feedMessage struct {
	Deleted bool               `json:"deleted,omitempty"`
	Room    *redis_models.Room `json:"room,omitempty"`
}

// RedisRoomStore keeps each room as a single JSON value and fans out
// snapshots over pub/sub
type RedisRoomStore struct {
	rdb *redis.Client
}

func NewRedisRoomStore(rdb *redis.Client) *RedisRoomStore {
	return &RedisRoomStore{rdb: rdb}
}

func roomKey(code string) string {
	return fmt.Sprintf("room:%s", code)
}

func feedChannel(code string) string {
	return fmt.Sprintf("room:%s:feed", code)
}

// publish pushes a snapshot (or deletion notice) onto the room's feed
func (s *RedisRoomStore) publish(ctx context.Context, code string, msg feedMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error marshaling feed message: %v", err)
	}
	if err := s.rdb.Publish(ctx, feedChannel(code), data).Err(); err != nil {
		return fmt.Errorf("error publishing feed message: %v", err)
	}
	return nil
}

func (s *RedisRoomStore) GetRoom(ctx context.Context, code string) (*redis_models.Room, error) {
	data, err := s.rdb.Get(ctx, roomKey(code)).Bytes()
	if err == redis.Nil {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting room data: %v", err)
	}

	var room redis_models.Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("error unmarshaling room data: %v", err)
	}
	return &room, nil
}

func (s *RedisRoomStore) CreateRoom(ctx context.Context, room *redis_models.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("error marshaling room data: %v", err)
	}

	ok, err := s.rdb.SetNX(ctx, roomKey(room.Code), data, 0).Result()
	if err != nil {
		return fmt.Errorf("error creating room: %v", err)
	}
	if !ok {
		return ErrRoomExists
	}
	return nil
}

func (s *RedisRoomStore) SaveRoom(ctx context.Context, room *redis_models.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return fmt.Errorf("error marshaling room data: %v", err)
	}
	if err := s.rdb.Set(ctx, roomKey(room.Code), data, 0).Err(); err != nil {
		return fmt.Errorf("error saving room data: %v", err)
	}
	return s.publish(ctx, room.Code, feedMessage{Room: room})
}

// UpdateRoom runs fn inside a WATCH/MULTI/EXEC transaction so the commit
// only lands if the document is unchanged since the read. The committed
// snapshot is published on the room's feed in the same transaction.
func (s *RedisRoomStore) UpdateRoom(ctx context.Context, code string, fn UpdateFunc) (*redis_models.Room, error) {
	key := roomKey(code)
	var committed *redis_models.Room

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}

		var room redis_models.Room
		if err := json.Unmarshal(data, &room); err != nil {
			return fmt.Errorf("error unmarshaling room data: %v", err)
		}

		if err := fn(&room); err != nil {
			return err
		}

		newData, err := json.Marshal(&room)
		if err != nil {
			return fmt.Errorf("error marshaling room data: %v", err)
		}

		msg, err := json.Marshal(feedMessage{Room: &room})
		if err != nil {
			return fmt.Errorf("error marshaling feed message: %v", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, newData, 0)
			pipe.Publish(ctx, feedChannel(code), msg)
			return nil
		})
		if err != nil {
			return err
		}

		committed = &room
		return nil
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if err == redis.TxFailedErr {
			// Lost the race to another writer, retry against the fresh doc
			continue
		}
		if err != nil {
			return nil, err
		}
		return committed, nil
	}
	return nil, fmt.Errorf("error updating room %s: too many transaction retries", code)
}

func (s *RedisRoomStore) DeleteRoom(ctx context.Context, code string) error {
	msg, err := json.Marshal(feedMessage{Deleted: true})
	if err != nil {
		return fmt.Errorf("error marshaling feed message: %v", err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, roomKey(code))
	pipe.Publish(ctx, feedChannel(code), msg)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("error deleting room data: %v", err)
	}
	return nil
}

func (s *RedisRoomStore) Subscribe(ctx context.Context, code string) (<-chan Snapshot, func(), error) {
	pubsub := s.rdb.Subscribe(ctx, feedChannel(code))

	// Force the subscription to be established before returning, so a
	// commit right after Subscribe is not missed
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, nil, fmt.Errorf("error subscribing to room feed: %v", err)
	}

	out := make(chan Snapshot, 16)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			var fm feedMessage
			if err := json.Unmarshal([]byte(msg.Payload), &fm); err != nil {
				continue
			}
			snap := Snapshot{Room: fm.Room, Deleted: fm.Deleted}
			select {
			case out <- snap:
			default:
				// Feed consumers only need the latest state; drop the
				// oldest buffered snapshot to make room
				select {
				case <-out:
				default:
				}
				out <- snap
			}
		}
	}()

	stop := func() { pubsub.Close() }
	return out, stop, nil
}

func (s *RedisRoomStore) ListCodes(ctx context.Context) ([]string, error) {
	var codes []string
	iter := s.rdb.Scan(ctx, 0, "room:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if strings.HasSuffix(key, ":feed") {
			continue
		}
		codes = append(codes, strings.TrimPrefix(key, "room:"))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("error scanning room keys: %v", err)
	}
	return codes, nil
}
