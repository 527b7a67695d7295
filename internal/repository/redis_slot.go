package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const redisSlotMaxAttempts = 16

// RedisSlot stores the value under one Redis key. Update uses WATCH/MULTI so
// a write that raced another writer is retried against the fresh value.
type RedisSlot struct {
	client *redis.Client
	key    string
}

// NewRedisSlot binds a slot to key.
func NewRedisSlot(client *redis.Client, key string) *RedisSlot {
	return &RedisSlot{client: client, key: key}
}

func (s *RedisSlot) Load(ctx context.Context) ([]byte, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisSlot) Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, s.key).Bytes()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if errors.Is(err, redis.Nil) {
			current = nil
		}
		next, err := fn(current)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, next, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < redisSlotMaxAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrSlotContention
}
