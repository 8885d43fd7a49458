package admission

import (
	"net"
	"sync"
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/semaphore"
)

// Stats is a point-in-time view of pool counters.
type Stats struct {
	MaxThreads int   `json:"max_threads"`
	MaxQueued  int   `json:"max_queued"`
	Open       int64 `json:"open"`
	Busy       int64 `json:"busy"`
	Admitted   int64 `json:"admitted"`
	Refused    int64 `json:"refused"`
}

// Pool bounds open connections and concurrently running handlers.
type Pool struct {
	maxThreads int
	maxQueued  int

	conns   *semaphore.Weighted
	workers *semaphore.Weighted

	open     atomic.Int64
	busy     atomic.Int64
	admitted atomic.Int64
	refused  atomic.Int64
}

// NewPool creates a Pool. maxThreads below 1 is raised to 1.
func NewPool(maxThreads, maxQueued int) *Pool {
	if maxThreads < 1 {
		maxThreads = 1
	}
	if maxQueued < 0 {
		maxQueued = 0
	}
	return &Pool{
		maxThreads: maxThreads,
		maxQueued:  maxQueued,
		conns:      semaphore.NewWeighted(int64(maxThreads + maxQueued)),
		workers:    semaphore.NewWeighted(int64(maxThreads)),
	}
}

// Stats returns the current counters.
func (p *Pool) Stats() Stats {
	return Stats{
		MaxThreads: p.maxThreads,
		MaxQueued:  p.maxQueued,
		Open:       p.open.Load(),
		Busy:       p.busy.Load(),
		Admitted:   p.admitted.Load(),
		Refused:    p.refused.Load(),
	}
}

// Listener wraps ln so that connections beyond capacity are refused.
func (p *Pool) Listener(ln net.Listener) net.Listener {
	return &listener{Listener: ln, pool: p}
}

// Middleware returns a fiber handler that holds a worker slot for the rest of the chain.
func (p *Pool) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := p.workers.Acquire(c.Context(), 1); err != nil {
			return fiber.ErrServiceUnavailable
		}
		p.busy.Add(1)
		defer func() {
			p.busy.Add(-1)
			p.workers.Release(1)
		}()
		return c.Next()
	}
}

type listener struct {
	net.Listener
	pool *Pool
}

// Accept returns the next admitted connection, closing any it cannot admit.
func (l *listener) Accept() (net.Conn, error) {
	for {
		conn, err := l.Listener.Accept()
		if err != nil {
			return nil, err
		}

		if !l.pool.conns.TryAcquire(1) {
			l.pool.refused.Add(1)
			_ = conn.Close()
			continue
		}

		l.pool.admitted.Add(1)
		l.pool.open.Add(1)
		return &admittedConn{Conn: conn, pool: l.pool}, nil
	}
}

type admittedConn struct {
	net.Conn
	pool *Pool
	once sync.Once
}

// Close releases the connection slot exactly once.
func (c *admittedConn) Close() error {
	err := c.Conn.Close()
	c.once.Do(func() {
		c.pool.open.Add(-1)
		c.pool.conns.Release(1)
	})
	return err
}
