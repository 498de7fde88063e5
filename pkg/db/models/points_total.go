package models

import (
	"time"

	"github.com/google/uuid"
)

// PointsTotal is the per-member running total, maintained atomically alongside
// the attendance ledger and reconciled from it by the cron worker.
type PointsTotal struct {
	UserID         uuid.UUID `gorm:"type:uuid;column:user_id;primaryKey"`
	Total          int       `gorm:"column:total;not null;default:0"`
	EventsAttended int       `gorm:"column:events_attended;not null;default:0"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the table name.
func (PointsTotal) TableName() string {
	return "points_totals"
}
