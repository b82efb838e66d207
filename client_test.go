package smc

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macsmc/smc/wire"
)

func TestClientRead(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{MaxSessions: 2})

	val, err := client.Read(context.Background(), "TC0P")
	require.NoError(t, err)
	assert.Equal(t, "TC0P", val.Key)
	assert.Equal(t, wire.TypeFloat, val.DataType)

	celsius, err := val.Float64()
	require.NoError(t, err)
	assert.InDelta(t, 58.25, celsius, 0.001)
}

func TestClientReadCachesKeyInfo(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := client.Read(ctx, "TC0P")
		require.NoError(t, err)
	}

	// Only the first read pays for the metadata phase.
	assert.Len(t, fake.CallsFor(wire.CmdReadKeyInfo), 1)
	assert.Len(t, fake.CallsFor(wire.CmdReadBytes), 3)

	stats := client.Stats()
	assert.Equal(t, uint64(3), stats.Reads)
	assert.Equal(t, uint64(2), stats.CacheHits)
}

func TestClientReadWithoutCache(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{DisableInfoCache: true})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := client.Read(ctx, "TC0P")
		require.NoError(t, err)
	}

	// Every read runs the full two-phase exchange.
	assert.Len(t, fake.CallsFor(wire.CmdReadKeyInfo), 3)
	assert.Len(t, fake.CallsFor(wire.CmdReadBytes), 3)
	assert.Zero(t, client.Stats().CacheHits)
}

func TestClientReadMissingKey(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{})

	_, err := client.Read(context.Background(), "ZZZZ")
	require.Error(t, err)
	assert.True(t, IsKeyNotFound(err))

	stats := client.Stats()
	assert.Equal(t, uint64(1), stats.NotFound)
	assert.Zero(t, stats.Errors)
}

func TestClientReadInvalidKey(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{})

	_, err := client.Read(context.Background(), "xy")

	var ike *wire.InvalidKeyError
	require.ErrorAs(t, err, &ike)

	// Rejected before a session is acquired.
	assert.Empty(t, fake.Calls())
	assert.Zero(t, client.PoolStats().AcquireCount)
}

func TestClientInfo(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{})

	ctx := context.Background()
	info, err := client.Info(ctx, "TC0D")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), info.DataSize)
	assert.Equal(t, wire.TypeSP78, info.DataType)

	// The second Info is served from the cache.
	_, err = client.Info(ctx, "TC0D")
	require.NoError(t, err)
	assert.Len(t, fake.CallsFor(wire.CmdReadKeyInfo), 1)
	assert.Equal(t, uint64(2), client.Stats().Infos)
}

func TestClientInfoAfterRead(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{})

	ctx := context.Background()
	_, err := client.Read(ctx, "TC0P")
	require.NoError(t, err)

	// Read already cached the metadata; Info reuses it.
	_, err = client.Info(ctx, "TC0P")
	require.NoError(t, err)
	assert.Len(t, fake.CallsFor(wire.CmdReadKeyInfo), 1)
}

func TestClientFloat(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{})

	rpm, err := client.Float(context.Background(), "F0Ac")
	require.NoError(t, err)
	assert.Equal(t, 1220.0, rpm)
}

func TestClientSessionSurvivesMissingKeys(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := client.Read(ctx, "ZZZZ")
		assert.True(t, IsKeyNotFound(err))
	}
	_, err := client.Read(ctx, "TC0P")
	require.NoError(t, err)

	// Missing keys are answers, not session failures.
	stats := client.PoolStats()
	assert.Equal(t, uint64(1), stats.CreatedSessions)
	assert.Zero(t, stats.DestroyedSessions)
}

func TestClientSessionDestroyedOnFatalStatus(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{})

	ctx := context.Background()
	_, err := client.Read(ctx, "TC0P")
	require.NoError(t, err)

	fake.CallStatus = wire.StatusNotOpen

	_, err = client.Read(ctx, "TC0P")
	assertCallErrorStatus(t, err, wire.StatusNotOpen)

	// A not-open status condemns the pooled session.
	assert.Equal(t, uint64(1), client.PoolStats().DestroyedSessions)
}

func TestClientClosed(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{})
	client.Close()

	_, err := client.Read(context.Background(), "TC0P")
	assert.ErrorIs(t, err, ErrClientClosed)

	_, err = client.Info(context.Background(), "TC0D")
	assert.ErrorIs(t, err, ErrClientClosed)
}

func TestClientDefaultsToOneSession(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{})

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.Read(ctx, "TC0P")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// MaxSessions zero means a single session serializing all access.
	stats := client.PoolStats()
	assert.Equal(t, uint64(1), stats.CreatedSessions)
	assert.LessOrEqual(t, stats.TotalSessions, int32(1))
}

func TestClientConcurrentReads(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{MaxSessions: 4})

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err := client.Read(ctx, "TC0D")
			if !assert.NoError(t, err) {
				return
			}
			celsius, err := val.Float64()
			assert.NoError(t, err)
			assert.InDelta(t, 61.5, celsius, 0.001)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, client.PoolStats().CreatedSessions, uint64(4))
}

func TestClientWithCircuitBreaker(t *testing.T) {
	fake := newTestFake()
	fake.CallStatus = wire.StatusIOError

	client := newTestClient(t, fake, Config{
		NewCircuitBreaker: NewCircuitBreakerConfig(1, time.Minute, time.Minute),
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		_, err := client.Read(ctx, "TC0P")
		require.Error(t, err)
	}

	// The breaker is open now; calls fail fast without touching the pool.
	before := len(fake.Calls())
	_, err := client.Read(ctx, "TC0P")
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Len(t, fake.Calls(), before)
}

func TestClientCircuitBreakerIgnoresMissingKeys(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{
		NewCircuitBreaker: NewCircuitBreakerConfig(1, time.Minute, time.Minute),
	})

	ctx := context.Background()
	for i := 0; i < 10; i++ {
		_, err := client.Read(ctx, "ZZZZ")
		assert.True(t, IsKeyNotFound(err))
	}

	// Missing keys never open the breaker.
	_, err := client.Read(ctx, "TC0P")
	require.NoError(t, err)
}

func TestClientStats(t *testing.T) {
	fake := newTestFake()
	client := newTestClient(t, fake, Config{})

	ctx := context.Background()
	_, _ = client.Read(ctx, "TC0P")
	_, _ = client.Read(ctx, "TC0P")
	_, _ = client.Read(ctx, "ZZZZ")
	_, _ = client.Info(ctx, "TC0D")

	stats := client.Stats()
	assert.Equal(t, uint64(2), stats.Reads)
	assert.Equal(t, uint64(1), stats.CacheHits)
	assert.Equal(t, uint64(1), stats.Infos)
	assert.Equal(t, uint64(1), stats.NotFound)
	assert.Zero(t, stats.Errors)

	pool := client.PoolStats()
	assert.Equal(t, uint64(1), pool.CreatedSessions)
	assert.GreaterOrEqual(t, pool.AcquireCount, uint64(4))
}
