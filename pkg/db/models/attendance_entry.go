package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/enums"
	"gorm.io/gorm"
)

// AttendanceEntry is the immutable ledger row recording one member at one event.
// The (event_id, user_id) pair is unique so a member can never double check-in.
type AttendanceEntry struct {
	ID           uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	EventID      uuid.UUID           `gorm:"type:uuid;column:event_id;not null;uniqueIndex:idx_attendance_event_user"`
	UserID       uuid.UUID           `gorm:"type:uuid;column:user_id;not null;uniqueIndex:idx_attendance_event_user"`
	PointsEarned int                 `gorm:"column:points_earned;not null"`
	Method       enums.CheckinMethod `gorm:"column:method;type:text;not null"`
	RecordedBy   *uuid.UUID          `gorm:"type:uuid;column:recorded_by"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the plural ledger table name.
func (AttendanceEntry) TableName() string {
	return "attendance_entries"
}

// BeforeCreate assigns the row id when the caller left it unset.
func (e *AttendanceEntry) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
