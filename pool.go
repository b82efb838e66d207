package smc

import (
	"context"
	"sync/atomic"

	"github.com/jackc/puddle/v2"
)

// newSessionPool creates the pool of controller sessions behind a Client.
// Each pooled resource is a Conn over its own transport.
func newSessionPool(open func() (Transport, error), maxSize int32) (*sessionPool, error) {
	p := &sessionPool{}

	poolConfig := &puddle.Config[*Conn]{
		Constructor: func(context.Context) (*Conn, error) {
			t, err := open()
			if err != nil {
				return nil, err
			}
			p.createdSessions.Add(1)
			return OpenTransport(t), nil
		},
		Destructor: func(c *Conn) {
			p.destroyedSessions.Add(1)
			_ = c.Close()
		},
		MaxSize: maxSize,
	}

	pool, err := puddle.NewPool(poolConfig)
	if err != nil {
		return nil, err
	}
	p.pool = pool
	return p, nil
}

// sessionPool wraps puddle.Pool and counts session churn.
type sessionPool struct {
	pool              *puddle.Pool[*Conn]
	createdSessions   atomic.Int64
	destroyedSessions atomic.Int64
}

func (p *sessionPool) Acquire(ctx context.Context) (*puddle.Resource[*Conn], error) {
	return p.pool.Acquire(ctx)
}

func (p *sessionPool) Close() {
	p.pool.Close()
}

// Stats returns a snapshot of pool statistics by converting puddle's stats to our format.
func (p *sessionPool) Stats() PoolStats {
	s := p.pool.Stat()

	return PoolStats{
		TotalSessions:     s.TotalResources(),
		IdleSessions:      s.IdleResources(),
		ActiveSessions:    s.AcquiredResources(),
		AcquireCount:      uint64(s.AcquireCount()),
		AcquireWaitCount:  uint64(s.EmptyAcquireCount()), // Acquires that had to wait (pool was empty)
		CreatedSessions:   uint64(p.createdSessions.Load()),
		DestroyedSessions: uint64(p.destroyedSessions.Load()),
		AcquireErrors:     uint64(s.CanceledAcquireCount()),
		AcquireWaitTimeNs: uint64(s.EmptyAcquireWaitTime().Nanoseconds()),
	}
}
