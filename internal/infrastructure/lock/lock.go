// Package lock provides short-lived named locks used to keep one request key
// from being processed twice at the same time.
package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// ErrNotObtained is returned when the key is already held.
var ErrNotObtained = errors.New("lock: not obtained")

// Release gives a held lock back.
type Release func(ctx context.Context) error

// Locker hands out non-blocking locks that expire after ttl even if never released.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Release, error)
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
		PoolSize: 100,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}

type redisLocker struct {
	client *redislock.Client
}

// NewRedisLocker returns a Locker shared by every process using rdb.
func NewRedisLocker(rdb redis.UniversalClient) Locker {
	return &redisLocker{client: redislock.New(rdb)}
}

func (l *redisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Release, error) {
	lk, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrNotObtained
	}
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		err := lk.Release(ctx)
		if errors.Is(err, redislock.ErrLockNotHeld) {
			return nil
		}
		return err
	}, nil
}

type localLocker struct {
	mu    sync.Mutex
	held  map[string]localHold
	seq   uint64
	clock func() time.Time
}

type localHold struct {
	token   uint64
	expires time.Time
}

// NewLocalLocker returns a Locker that only coordinates within this process.
func NewLocalLocker() Locker {
	return &localLocker{held: map[string]localHold{}, clock: time.Now}
}

func (l *localLocker) Obtain(_ context.Context, key string, ttl time.Duration) (Release, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock()
	for k, h := range l.held {
		if !now.Before(h.expires) {
			delete(l.held, k)
		}
	}
	if _, ok := l.held[key]; ok {
		return nil, ErrNotObtained
	}

	l.seq++
	token := l.seq
	l.held[key] = localHold{token: token, expires: now.Add(ttl)}

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		if h, ok := l.held[key]; ok && h.token == token {
			delete(l.held, key)
		}
		return nil
	}, nil
}
