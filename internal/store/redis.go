package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"spicysweet/internal/model"
)

const (
	// maxTxRetries bounds optimistic retries after WATCH invalidation.
	maxTxRetries = 16
	// sessionTTL keeps abandoned sessions from living forever in Redis.
	sessionTTL = 24 * time.Hour
)

// RedisStore implements SessionStore on a Redis instance: one JSON
// document per session, WATCH-based optimistic transactions, and a
// pub/sub channel per session carrying committed snapshots.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a session store backed by the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func sessionKey(code string) string {
	return fmt.Sprintf("session:%s", code)
}

func changeChannel(code string) string {
	return fmt.Sprintf("session:%s:changes", code)
}

func (r *RedisStore) Create(ctx context.Context, s *model.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	ok, err := r.client.SetNX(ctx, sessionKey(s.Code), data, sessionTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return ErrExists
	}
	return nil
}

func (r *RedisStore) Read(ctx context.Context, code string) (*model.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(code)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var s model.Session
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Transact runs fn against the current record under WATCH. A concurrent
// commit between read and write fails the EXEC and the whole function
// re-runs against the fresh record; fn returning an error aborts with no
// write. The committed snapshot is published to the change channel in
// the same pipeline as the write.
func (r *RedisStore) Transact(ctx context.Context, code string, fn TxFunc) (*model.Session, error) {
	key := sessionKey(code)
	var committed *model.Session

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, func(tx *redis.Tx) error {
			data, err := tx.Get(ctx, key).Result()
			if err == redis.Nil {
				return ErrNotFound
			}
			if err != nil {
				return err
			}

			var s model.Session
			if err := json.Unmarshal([]byte(data), &s); err != nil {
				return err
			}

			if err := fn(&s); err != nil {
				return err
			}
			s.UpdatedAt = time.Now().UTC()

			payload, err := json.Marshal(&s)
			if err != nil {
				return err
			}

			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.Set(ctx, key, payload, sessionTTL)
				pipe.Publish(ctx, changeChannel(code), payload)
				return nil
			})
			if err == nil {
				committed = &s
			}
			return err
		}, key)

		if err == redis.TxFailedErr {
			continue
		}
		if err != nil {
			return nil, err
		}
		return committed, nil
	}
	return nil, ErrConflict
}

// Subscribe streams committed snapshots for one session until the
// returned unsubscribe function is called or ctx is cancelled.
func (r *RedisStore) Subscribe(ctx context.Context, code string, onChange OnChange) (func(), error) {
	ps := r.client.Subscribe(ctx, changeChannel(code))
	if _, err := ps.Receive(ctx); err != nil {
		ps.Close()
		return nil, err
	}

	go func() {
		for msg := range ps.Channel() {
			var s model.Session
			if err := json.Unmarshal([]byte(msg.Payload), &s); err != nil {
				log.Printf("[store] bad change payload for %s: %v", code, err)
				continue
			}
			onChange(&s)
		}
	}()

	return func() { ps.Close() }, nil
}

func (r *RedisStore) Delete(ctx context.Context, code string) error {
	return r.client.Del(ctx, sessionKey(code)).Err()
}
