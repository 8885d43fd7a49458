package telemetry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Recorder periodically persists snapshots through the Service.
type Recorder struct {
	service  *Service
	interval time.Duration
	logger   *zap.Logger

	stopCh   chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewRecorder creates a recorder writing every interval.
func NewRecorder(service *Service, interval time.Duration, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{
		service:  service,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the recording goroutine. It ends on Stop or when ctx is done.
func (r *Recorder) Start(ctx context.Context) {
	r.wg.Add(1)
	go r.run(ctx)
	r.logger.Info("Telemetry recorder started",
		zap.Duration("interval", r.interval),
		zap.String("session", r.service.Session()),
	)
}

func (r *Recorder) run(ctx context.Context) {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-r.stopCh:
			return
		case <-ticker.C:
			if _, err := r.service.Record(ctx); err != nil {
				r.logger.Warn("Failed to record telemetry", zap.Error(err))
			}
		}
	}
}

// Stop ends recording, persists one final sample and waits for the goroutine.
func (r *Recorder) Stop(ctx context.Context) error {
	var err error
	r.stopOnce.Do(func() {
		close(r.stopCh)

		done := make(chan struct{})
		go func() {
			r.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
		case <-ctx.Done():
			err = ctx.Err()
			return
		}

		if _, rerr := r.service.Record(ctx); rerr != nil {
			r.logger.Warn("Failed to record final telemetry", zap.Error(rerr))
		}
		r.logger.Info("Telemetry recorder stopped")
	})
	return err
}
