package myredis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"myregistry/helpers"
	"myregistry/service"

	"github.com/go-redis/redis/v8"
)

const scanBatch = 256

type redisMirror[T any] struct {
	client    redis.UniversalClient
	prefix    string
	marshal   func(T) ([]byte, error)
	unmarshal func([]byte) (T, error)
	zero      T
}

// NewMirror creates the redis implementation of interfaces.Mirror. Keys are stored as "<prefix>:<key>".
func NewMirror[T any](client redis.UniversalClient, prefix string, marshal func(T) ([]byte, error), unmarshal func([]byte) (T, error)) *redisMirror[T] {
	var zero T
	return &redisMirror[T]{
		client:    helpers.NilPanic(client, "adapters.myredis.mirror.go: redis client is required"),
		prefix:    helpers.StrPanic(prefix, "adapters.myredis.mirror.go: prefix is required"),
		zero:      zero,
		marshal:   helpers.NilPanic(marshal, "adapters.myredis.mirror.go: marshal is required"),
		unmarshal: helpers.NilPanic(unmarshal, "adapters.myredis.mirror.go: unmarshal is required"),
	}
}

// NewJSONMirror creates a mirror storing values as JSON.
func NewJSONMirror[T any](client redis.UniversalClient, prefix string) *redisMirror[T] {
	return NewMirror(client, prefix,
		func(item T) ([]byte, error) { return json.Marshal(item) },
		func(b []byte) (T, error) {
			var item T
			err := json.Unmarshal(b, &item)
			return item, err
		},
	)
}

func (r *redisMirror[T]) WriteValue(ctx context.Context, key string, item T, ttlMs int) error {
	bytes, err := r.marshal(item)
	if err != nil {
		return service.NewInternalServerError("Redis marshal item error", fmt.Errorf("can't marshal item of type %T, err: %w", item, err))
	}

	err = r.client.Set(ctx, r.generateKey(key), bytes, time.Duration(ttlMs)*time.Millisecond).Err()
	if err != nil {
		return service.NewInternalServerError("Redis write key error", fmt.Errorf("can't write item of type %T to redis (key='%s'), err: %w", item, key, err))
	}

	return nil
}

func (r *redisMirror[T]) DeleteValue(ctx context.Context, key string) error {
	err := r.client.Del(ctx, r.generateKey(key)).Err()
	if err != nil {
		return service.NewInternalServerError("Redis delete key error", fmt.Errorf("can't delete item of type %T from redis (key='%s'), err: %w", r.zero, key, err))
	}
	return nil
}

// ListAllValues walks the prefix with SCAN and fetches each value. Keys that expire
// between SCAN and GET, or that do not decode, are skipped.
func (r *redisMirror[T]) ListAllValues(ctx context.Context) ([]T, error) {
	items := make([]T, 0)
	iter := r.client.Scan(ctx, 0, r.prefix+":*", scanBatch).Iterator()
	for iter.Next(ctx) {
		bytes, err := r.client.Get(ctx, iter.Val()).Bytes()
		if err != nil {
			continue
		}

		item, err := r.unmarshal(bytes)
		if err != nil {
			continue
		}

		items = append(items, item)
	}
	if err := iter.Err(); err != nil {
		return nil, service.NewInternalServerError("Redis scan keys error", fmt.Errorf("redis scan keys error, err: %w", err))
	}

	return items, nil
}

func (r *redisMirror[T]) generateKey(key string) string {
	return r.prefix + ":" + key
}
