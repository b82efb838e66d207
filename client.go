package smc

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/puddle/v2"
	"github.com/sony/gobreaker/v2"

	"github.com/macsmc/smc/wire"
)

// Config holds configuration for the client's session pool.
type Config struct {
	// MaxSessions is the maximum number of controller sessions in the pool.
	// Zero or negative means one session, which serializes hardware access.
	MaxSessions int32

	// OpenTransport opens the transport under each pooled session.
	// If nil, the platform transport is used.
	OpenTransport func() (Transport, error)

	// NewCircuitBreaker creates a circuit breaker guarding the controller.
	// Called once when the client is created.
	// If nil, no circuit breaker is used.
	NewCircuitBreaker func() *gobreaker.CircuitBreaker[bool]

	// DisableInfoCache turns off key metadata caching, forcing the full
	// two-phase exchange on every read.
	DisableInfoCache bool
}

// Client reads controller keys on behalf of concurrent callers. It owns a
// pool of sessions, caches key metadata, and optionally wraps the hardware
// calls in a circuit breaker.
type Client struct {
	pool    *sessionPool
	breaker *gobreaker.CircuitBreaker[bool]
	cache   *infoCache // nil when disabled
	stats   *clientStatsCollector
}

// NewClient creates a new client with the given configuration.
func NewClient(config Config) (*Client, error) {
	maxSessions := config.MaxSessions
	if maxSessions <= 0 {
		maxSessions = 1
	}

	open := config.OpenTransport
	if open == nil {
		open = openTransport
	}

	pool, err := newSessionPool(open, maxSessions)
	if err != nil {
		return nil, fmt.Errorf("smc: create session pool: %w", err)
	}

	client := &Client{
		pool:  pool,
		stats: newClientStatsCollector(),
	}
	if config.NewCircuitBreaker != nil {
		client.breaker = config.NewCircuitBreaker()
	}
	if !config.DisableInfoCache {
		client.cache = newInfoCache()
	}
	return client, nil
}

// Close closes the client and every session in the pool. It blocks until
// acquired sessions are released. Operations after Close return
// ErrClientClosed.
func (c *Client) Close() {
	c.pool.Close()
}

// exec runs fn on a pooled session. If a circuit breaker is configured, the
// call is wrapped with it.
func (c *Client) exec(ctx context.Context, fn func(*Conn) error) error {
	if c.breaker != nil {
		_, err := c.breaker.Execute(func() (bool, error) {
			return true, c.execDirect(ctx, fn)
		})
		return err
	}
	return c.execDirect(ctx, fn)
}

// execDirect performs the actual session call without the circuit breaker.
// The context governs pool acquisition only; the hardware exchange itself
// does not take a context and cannot be canceled.
func (c *Client) execDirect(ctx context.Context, fn func(*Conn) error) error {
	resource, err := c.pool.Acquire(ctx)
	if err != nil {
		if errors.Is(err, puddle.ErrClosedPool) {
			return ErrClientClosed
		}
		return err
	}

	err = fn(resource.Value())
	if err != nil && ShouldCloseSession(err) {
		resource.Destroy()
		return err
	}

	resource.Release()
	return err
}

// Read reads a key's current value. With the metadata cache enabled (the
// default), the two-phase exchange runs only on the first read of each key;
// later reads reuse the cached metadata and issue the read phase alone.
//
// Keys longer than four bytes are truncated to the first four; shorter keys
// are rejected with *wire.InvalidKeyError.
func (c *Client) Read(ctx context.Context, key string) (wire.KeyValue, error) {
	if len(key) > wire.KeyLen {
		key = key[:wire.KeyLen]
	}
	if err := wire.ValidateKey(key); err != nil {
		return wire.KeyValue{}, err
	}

	var val wire.KeyValue
	var cacheHit bool
	err := c.exec(ctx, func(conn *Conn) error {
		if c.cache == nil {
			var err error
			val, err = conn.ReadKey(key)
			return err
		}

		info, ok := c.cache.get(key)
		if ok {
			cacheHit = true
		} else {
			var err error
			info, err = conn.GetKeyInfo(wire.EncodeKey(key))
			if err != nil {
				val = wire.KeyValue{Key: key}
				return err
			}
			c.cache.put(key, info)
		}

		var err error
		val, err = conn.ReadKeyWithInfo(key, info)
		return err
	})

	switch {
	case err == nil:
		c.stats.recordRead(cacheHit)
	case IsKeyNotFound(err):
		c.stats.recordNotFound()
	default:
		c.stats.recordError()
	}
	return val, err
}

// Info returns a key's metadata. Served from the cache when one is enabled;
// a miss queries the controller and fills the cache. Keys are truncated and
// validated as in Read.
func (c *Client) Info(ctx context.Context, key string) (wire.KeyInfo, error) {
	if len(key) > wire.KeyLen {
		key = key[:wire.KeyLen]
	}
	if err := wire.ValidateKey(key); err != nil {
		return wire.KeyInfo{}, err
	}

	if c.cache != nil {
		if info, ok := c.cache.get(key); ok {
			c.stats.recordInfo()
			return info, nil
		}
	}

	var info wire.KeyInfo
	err := c.exec(ctx, func(conn *Conn) error {
		var err error
		info, err = conn.GetKeyInfo(wire.EncodeKey(key))
		return err
	})

	switch {
	case err == nil:
		if c.cache != nil {
			c.cache.put(key, info)
		}
		c.stats.recordInfo()
	case IsKeyNotFound(err):
		c.stats.recordNotFound()
	default:
		c.stats.recordError()
	}
	if err != nil {
		return wire.KeyInfo{}, err
	}
	return info, nil
}

// Float reads a key and decodes its value as a number. This is the common
// path for temperature, fan and power keys.
func (c *Client) Float(ctx context.Context, key string) (float64, error) {
	val, err := c.Read(ctx, key)
	if err != nil {
		return 0, err
	}
	return val.Float64()
}

// Stats returns a snapshot of client statistics.
func (c *Client) Stats() ClientStats {
	return c.stats.snapshot()
}

// PoolStats returns a snapshot of session pool statistics.
func (c *Client) PoolStats() PoolStats {
	return c.pool.Stats()
}
