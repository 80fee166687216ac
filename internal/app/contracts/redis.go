package contracts

import (
	"context"
	"time"
)

type RedisRepository interface {
	Delete(ctx context.Context, key string) error
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	// NextSequence atomically increments and returns the named counter.
	NextSequence(ctx context.Context, key string) (int64, error)
	// SeedSequence sets the counter only when it does not exist yet.
	SeedSequence(ctx context.Context, key string, value int64) error
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
}
