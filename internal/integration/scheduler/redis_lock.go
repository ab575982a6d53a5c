package scheduler

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/finance-ledger/backend/internal/application/adapter"
)

const lockKey = "scheduler:recurring-transactions:lock"

// releaseScript deletes the lock only when it still holds this instance's
// token, so an expired lock reacquired by another instance is never removed.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// redisLock implements adapter.SchedulerLock on top of Redis SET NX.
type redisLock struct {
	client *redis.Client
	token  string
}

// NewRedisLock creates a Redis-backed scheduler lock.
func NewRedisLock(client *redis.Client) adapter.SchedulerLock {
	return &redisLock{
		client: client,
		token:  uuid.New().String(),
	}
}

// Acquire attempts to take the lock for ttl. It returns false without error
// when another instance holds it.
func (l *redisLock) Acquire(ctx context.Context, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, lockKey, l.token, ttl).Result()
}

// Release frees the lock if this instance still owns it.
func (l *redisLock) Release(ctx context.Context) error {
	return releaseScript.Run(ctx, l.client, []string{lockKey}, l.token).Err()
}
