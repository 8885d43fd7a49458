package wui

import (
	"context"
	"net"
	"sync"
	"sync/atomic"

	"particle-wui/core/admission"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// State is the lifecycle state of a Handle.
type State int32

const (
	StateUnstarted State = iota
	StateRunning
	StateDisabled
	StateFailed
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateUnstarted:
		return "unstarted"
	case StateRunning:
		return "running"
	case StateDisabled:
		return "disabled"
	case StateFailed:
		return "failed"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Handle owns a started server: its listener, worker pool and fiber app.
// A Handle for a disabled server is inert; all methods are safe on it.
type Handle struct {
	app    *fiber.App
	ln     net.Listener
	pool   *admission.Pool
	logger *zap.Logger

	state atomic.Int32
	done  chan struct{}
	once  sync.Once
}

func (h *Handle) setState(s State) {
	h.state.Store(int32(s))
}

// State returns the current lifecycle state.
func (h *Handle) State() State {
	if h == nil {
		return StateUnstarted
	}
	return State(h.state.Load())
}

// Addr returns the bound address, or "" when no socket is held.
func (h *Handle) Addr() string {
	if h == nil || h.ln == nil {
		return ""
	}
	return h.ln.Addr().String()
}

// Port returns the bound TCP port, or 0 when no socket is held.
func (h *Handle) Port() int {
	if h == nil || h.ln == nil {
		return 0
	}
	if tcp, ok := h.ln.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return 0
}

// Stats returns the admission counters.
func (h *Handle) Stats() admission.Stats {
	if h == nil || h.pool == nil {
		return admission.Stats{}
	}
	return h.pool.Stats()
}

// Done is closed once the serve loop has returned.
// It is nil for a disabled handle.
func (h *Handle) Done() <-chan struct{} {
	if h == nil {
		return nil
	}
	return h.done
}

func (h *Handle) serve() {
	defer close(h.done)

	err := h.app.Listener(h.pool.Listener(h.ln))
	if h.State() == StateRunning {
		h.setState(StateFailed)
		h.logger.Error("Diagnostics server stopped unexpectedly", zap.Error(err))
	}
}

// Shutdown stops accepting connections and waits for in-flight requests until ctx
// expires. The socket is released when it returns.
func (h *Handle) Shutdown(ctx context.Context) error {
	if h == nil || h.app == nil {
		return nil
	}

	var err error
	h.once.Do(func() {
		if h.State() == StateRunning {
			h.setState(StateStopped)
		}
		err = h.app.ShutdownWithContext(ctx)
		_ = h.ln.Close()

		select {
		case <-h.done:
		case <-ctx.Done():
			if err == nil {
				err = ctx.Err()
			}
		}

		h.logger.Info("Diagnostics server stopped", zap.Any("stats", h.pool.Stats()))
	})
	return err
}
