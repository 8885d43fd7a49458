package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"particle-wui/core/database"
	coretelemetry "particle-wui/core/telemetry"
	"particle-wui/feature/telemetry/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoDatabase is returned by history operations when no database is attached.
var ErrNoDatabase = errors.New("telemetry history requires a database")

// maxHistory caps how many samples a single history query returns.
const maxHistory = 1000

// Service reads live snapshots and manages their history.
type Service struct {
	cell    *coretelemetry.Cell
	db      *gorm.DB
	cfg     coretelemetry.Config
	session string
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a telemetry service. db may be nil.
func NewService(cell *coretelemetry.Cell, db *gorm.DB, cfg coretelemetry.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cell:    cell,
		db:      db,
		cfg:     cfg,
		session: uuid.NewString(),
		logger:  logger,
		now:     time.Now,
	}
}

// Session returns the ID stamped on every sample this process records.
func (s *Service) Session() string {
	return s.session
}

// HasHistory reports whether a database is attached.
func (s *Service) HasHistory() bool {
	return s.db != nil
}

// Current returns the latest snapshot.
func (s *Service) Current() coretelemetry.Snapshot {
	return s.cell.Load()
}

// Migrate creates or updates the samples table and warns about columns it could not add.
func (s *Service) Migrate(ctx context.Context) error {
	if s.db == nil {
		return ErrNoDatabase
	}

	db := s.db.WithContext(ctx)
	if err := db.AutoMigrate(&models.FrameSample{}); err != nil {
		return fmt.Errorf("failed to migrate frame samples: %w", err)
	}

	missing, err := database.MissingColumns(db, models.FrameSample{}.TableName(), models.Columns())
	if err != nil {
		return err
	}
	if len(missing) > 0 {
		s.logger.Warn("Frame samples table is missing columns", zap.Strings("columns", missing))
	}
	return nil
}

// Record persists the current snapshot.
func (s *Service) Record(ctx context.Context) (*models.FrameSample, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}

	snap := s.cell.Load()
	sample := &models.FrameSample{
		SessionID:    s.session,
		FPS:          snap.FPS,
		Frames:       snap.Frames,
		TotalSeconds: snap.TotalSeconds,
		RecordedAt:   s.now(),
	}

	if err := s.db.WithContext(ctx).Create(sample).Error; err != nil {
		return nil, fmt.Errorf("failed to record frame sample: %w", err)
	}
	return sample, nil
}

// History returns up to limit samples, newest first. A non-positive limit uses
// telemetry.history_limit.
func (s *Service) History(ctx context.Context, limit int) ([]models.FrameSample, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}

	if limit <= 0 {
		limit = s.cfg.HistoryLimit
	}
	if limit > maxHistory {
		limit = maxHistory
	}

	var samples []models.FrameSample
	err := s.db.WithContext(ctx).
		Order("recorded_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&samples).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load frame samples: %w", err)
	}
	return samples, nil
}
