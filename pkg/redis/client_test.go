package redis

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/lushka-backend/pkg/config"
)

func TestFixedWindowAllow(t *testing.T) {
	ctx := context.Background()
	fake := newFakeCommands()
	client := &Client{cmd: fake}

	for i, want := range []bool{true, true, false} {
		allowed, count, err := client.FixedWindowAllow(ctx, "quiz:127.0.0.1", 2, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, allowed, "hit %d", i+1)
		assert.Equal(t, int64(i+1), count)
	}

	key := "lushka:window:quiz:127.0.0.1"
	require.Len(t, fake.setNXCalls, 3)
	assert.Equal(t, time.Minute, fake.ttl[key], "window ttl is set when the counter is created")

	fake.expire(key)
	allowed, count, err := client.FixedWindowAllow(ctx, "quiz:127.0.0.1", 2, time.Minute)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.Equal(t, int64(1), count, "an expired window starts over")
}

func TestFixedWindowAllowErrors(t *testing.T) {
	ctx := context.Background()

	_, _, err := (&Client{cmd: newFakeCommands()}).FixedWindowAllow(ctx, "s", 1, 0)
	require.Error(t, err)

	fake := newFakeCommands()
	fake.failIncr = errors.New("connection reset")
	_, _, err = (&Client{cmd: fake}).FixedWindowAllow(ctx, "s", 1, time.Second)
	require.ErrorIs(t, err, fake.failIncr)

	_, _, err = (&Client{}).FixedWindowAllow(ctx, "s", 1, time.Second)
	require.Error(t, err)
}

func TestCartSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := &Client{cmd: newFakeCommands()}
	key := client.CartKey("lushka_cart", "sess-1")

	require.NoError(t, client.Set(ctx, key, `{"items":[]}`, time.Hour))
	got, err := client.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, got)

	require.NoError(t, client.Del(ctx, key))
	_, err = client.Get(ctx, key)
	assert.True(t, IsNil(err), "expected nil error after delete, got %v", err)
}

func TestIsNilMatchesWrappedMiss(t *testing.T) {
	assert.True(t, IsNil(ErrNil))
	assert.True(t, IsNil(fmt.Errorf("load cart: %w", redis.Nil)))
	assert.False(t, IsNil(errors.New("i/o timeout")))
	assert.False(t, IsNil(nil))
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	assert.Equal(t, "lushka:window:scope", client.WindowKey("scope"))
	assert.Equal(t, "lushka:cart:lushka_cart:abc", client.CartKey("lushka_cart", "abc"))
	assert.Equal(t, "lushka:cart:abc", client.CartKey(" ", "abc"), "blank parts are skipped")
}

func TestUninitializedClient(t *testing.T) {
	var nilClient *Client
	require.Error(t, nilClient.Ping(context.Background()))
	require.Error(t, (&Client{}).Set(context.Background(), "k", "v", 0))
	require.NoError(t, (&Client{}).Close())
}

func TestOptionsFromConfig(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	require.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", PoolSize: 7, DB: 2, DialTimeout: time.Second})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 7, opts.PoolSize)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, time.Second, opts.DialTimeout)

	opts, err = optionsFromConfig(config.RedisConfig{URL: "redis://localhost:6380/3", PoolSize: 4})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6380", opts.Addr)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, 4, opts.PoolSize)

	_, err = optionsFromConfig(config.RedisConfig{URL: "://nope"})
	require.Error(t, err)
}

type fakeCommands struct {
	data       map[string]string
	ttl        map[string]time.Duration
	setNXCalls []string
	failIncr   error
}

func newFakeCommands() *fakeCommands {
	return &fakeCommands{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeCommands) expire(key string) {
	delete(f.data, key)
	delete(f.ttl, key)
}

func (f *fakeCommands) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeCommands) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCommands) Set(_ context.Context, key string, value any, ttl time.Duration) *redis.StatusCmd {
	f.data[key] = fmt.Sprint(value)
	f.ttl[key] = ttl
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeCommands) SetNX(_ context.Context, key string, value any, ttl time.Duration) *redis.BoolCmd {
	f.setNXCalls = append(f.setNXCalls, key)
	if _, ok := f.data[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.data[key] = fmt.Sprint(value)
	f.ttl[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (f *fakeCommands) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.failIncr != nil {
		return redis.NewIntResult(0, f.failIncr)
	}
	var n int64
	_, _ = fmt.Sscan(f.data[key], &n)
	n++
	f.data[key] = fmt.Sprint(n)
	return redis.NewIntResult(n, nil)
}

func (f *fakeCommands) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		f.expire(key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
