package telemetry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	coretelemetry "particle-wui/core/telemetry"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const writeWait = 2 * time.Second

// Stream pushes snapshots to websocket clients.
type Stream struct {
	cell     *coretelemetry.Cell
	interval time.Duration
	logger   *zap.Logger
	upgrader websocket.Upgrader

	server  *http.Server
	ln      net.Listener
	done    chan struct{}
	once    sync.Once
	mu      sync.Mutex
	clients atomic.Int64
	wg      sync.WaitGroup
}

// NewStream creates a stream publishing cell every interval.
func NewStream(cell *coretelemetry.Cell, interval time.Duration, logger *zap.Logger) *Stream {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Stream{
		cell:     cell,
		interval: interval,
		logger:   logger,
		upgrader: websocket.Upgrader{
			// The stream is read-only diagnostics data served to local dashboards.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		done: make(chan struct{}),
	}
}

// Handler returns the HTTP handler serving /ws.
func (s *Stream) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// Clients returns the number of connected clients.
func (s *Stream) Clients() int64 {
	return s.clients.Load()
}

// Start binds addr and serves in the background.
func (s *Stream) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind telemetry stream on %s: %w", addr, err)
	}

	s.ln = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Telemetry stream failed", zap.Error(err))
		}
	}()

	s.logger.Info("Telemetry stream started", zap.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or "" before Start.
func (s *Stream) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Shutdown disconnects every client and stops the server.
func (s *Stream) Shutdown(ctx context.Context) error {
	s.once.Do(func() {
		s.mu.Lock()
		close(s.done)
		s.mu.Unlock()
	})

	var err error
	if s.server != nil {
		err = s.server.Shutdown(ctx)
	}

	waited := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(waited)
	}()
	select {
	case <-waited:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}

// track reserves a wait group slot unless Shutdown has begun.
// Hijacked connections are invisible to http.Server.Shutdown, so the slot is
// taken before the upgrade.
func (s *Stream) track() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	select {
	case <-s.done:
		return false
	default:
	}
	s.wg.Add(1)
	return true
}

func (s *Stream) handleWS(w http.ResponseWriter, r *http.Request) {
	if !s.track() {
		http.Error(w, "telemetry stream is shutting down", http.StatusServiceUnavailable)
		return
	}
	defer s.wg.Done()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	s.clients.Add(1)
	defer s.clients.Add(-1)

	// Drain client frames so close messages and pings are processed.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := s.push(conn); err != nil {
			s.logger.Debug("WebSocket client dropped", zap.Error(err))
			return
		}

		select {
		case <-closed:
			return
		case <-s.done:
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
				time.Now().Add(writeWait))
			return
		case <-ticker.C:
		}
	}
}

func (s *Stream) push(conn *websocket.Conn) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(s.cell.Load())
}
