package models

import "time"

// FrameSample is one persisted telemetry snapshot.
type FrameSample struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	SessionID    string    `gorm:"size:36;index" json:"session_id"`
	FPS          int       `json:"fps"`
	Frames       uint64    `json:"frames"`
	TotalSeconds float64   `json:"total_seconds"`
	RecordedAt   time.Time `gorm:"index" json:"recorded_at"`
}

// TableName overrides the table name used by FrameSample.
func (FrameSample) TableName() string {
	return "frame_samples"
}

// Columns lists the columns the current model expects.
func Columns() []string {
	return []string{"id", "session_id", "fps", "frames", "total_seconds", "recorded_at"}
}
