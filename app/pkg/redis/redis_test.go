package redis_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"backend/insurance-platform/app/internal/config"
	"backend/insurance-platform/app/pkg/redis"
)

type cached struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewRedisClientFromUniversal(goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()}), zap.NewNop())
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestSetGet(t *testing.T) {
	ctx := context.Background()
	client, mr := newClient(t)

	require.NoError(t, client.Set(ctx, "k", cached{Name: "a", Count: 2}, time.Minute))

	var got cached
	require.NoError(t, client.Get(ctx, "k", &got))
	assert.Equal(t, cached{Name: "a", Count: 2}, got)
	assert.Equal(t, time.Minute, mr.TTL("k"))

	err := client.Get(ctx, "missing", &got)
	assert.True(t, redis.IsNotFound(err))

	exists, err := client.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, client.Delete(ctx, "k"))
	exists, err = client.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestIncrement(t *testing.T) {
	ctx := context.Background()
	client, _ := newClient(t)

	n, err := client.Increment(ctx, "seq", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = client.Increment(ctx, "seq", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(6), n)
}

func TestWrap(t *testing.T) {
	ctx := context.Background()
	client, mr := newClient(t)

	calls := 0
	load := func() (cached, error) {
		calls++
		return cached{Name: "fresh", Count: calls}, nil
	}

	var first cached
	require.NoError(t, redis.Wrap(ctx, client, "wrap", &first, time.Hour, load))
	assert.Equal(t, cached{Name: "fresh", Count: 1}, first)
	assert.True(t, mr.Exists("wrap"))

	var second cached
	require.NoError(t, redis.Wrap(ctx, client, "wrap", &second, time.Hour, load))
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)

	mr.FastForward(2 * time.Hour)
	var third cached
	require.NoError(t, redis.Wrap(ctx, client, "wrap", &third, time.Hour, load))
	assert.Equal(t, 2, third.Count)
}

func TestWrapPropagatesCallbackError(t *testing.T) {
	client, mr := newClient(t)
	boom := errors.New("boom")

	var out cached
	err := redis.Wrap(context.Background(), client, "wrap", &out, time.Hour, func() (cached, error) {
		return cached{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, mr.Exists("wrap"))
}

func TestWithLockSerializes(t *testing.T) {
	ctx := context.Background()
	client, mr := newClient(t)

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := redis.WithLock(ctx, client, "lock", time.Second, 5*time.Second, func() error {
				n := atomic.AddInt32(&inside, 1)
				for {
					cur := atomic.LoadInt32(&maxInside)
					if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				atomic.AddInt32(&inside, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
	assert.False(t, mr.Exists("lock"))
}

func TestWithLockTimeout(t *testing.T) {
	ctx := context.Background()
	client, _ := newClient(t)

	ok, err := client.AcquireLock(ctx, "held", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	err = redis.WithLock(ctx, client, "held", time.Second, 50*time.Millisecond, func() error {
		t.Fatal("must not run while the lock is held")
		return nil
	})
	assert.ErrorIs(t, err, redis.ErrLockTimeout)
}

func TestNewRedisClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := redis.NewRedisClient(config.RedisConfig{Hosts: " " + mr.Addr() + " ,"}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	_, isCluster := client.GetUniversalClient().(*goRedis.ClusterClient)
	assert.False(t, isCluster)
	require.NoError(t, client.SetPrimitive(context.Background(), "ping", "pong", time.Minute))
	got, err := mr.Get("ping")
	require.NoError(t, err)
	assert.Equal(t, "pong", got)

	_, err = redis.NewRedisClient(config.RedisConfig{}, zap.NewNop())
	assert.Error(t, err)
}
