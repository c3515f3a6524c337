package redisx

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var ErrLockNotAcquired = errors.New("lock not acquired")

// Locker serializes work on a key across API instances.
type Locker interface {
	// Lock blocks until the key is held, the wait budget runs out
	// (ErrLockNotAcquired) or ctx is done. unlock is safe to call once.
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Only the holder's token may delete the key.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

type redisLocker struct {
	client   *redis.Client
	ttl      time.Duration
	wait     time.Duration
	interval time.Duration
}

func NewLocker(client *redis.Client) Locker {
	return &redisLocker{
		client:   client,
		ttl:      TTLCartLock,
		wait:     LockWait,
		interval: LockInterval,
	}
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			return func() {
				// Detached so a cancelled request still releases its lock.
				_ = releaseScript.Run(context.WithoutCancel(ctx), l.client, []string{key}, token).Err()
			}, nil
		}

		if time.Now().After(deadline) {
			return nil, ErrLockNotAcquired
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.interval):
		}
	}
}

type noopLocker struct{}

// NewNoopLocker is used when no redis is configured.
func NewNoopLocker() Locker { return noopLocker{} }

func (noopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}
