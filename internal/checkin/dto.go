package checkin

import (
	"time"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"github.com/jalvarado-dev/memberhub-backend/pkg/enums"
)

// CheckInRequest is the member payload for a code-based check-in.
type CheckInRequest struct {
	Code string `json:"code" validate:"required,len=6"`
}

// ManualCheckInRequest is the admin payload for recording attendance directly.
type ManualCheckInRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	// Points overrides the event's point value when set. Zero is legal;
	// retreats and externals are often tracked without points.
	Points *int `json:"points,omitempty" validate:"omitempty,gte=0"`
}

// EntryDTO is the transport shape for one ledger row.
type EntryDTO struct {
	ID           uuid.UUID           `json:"id"`
	EventID      uuid.UUID           `json:"event_id"`
	UserID       uuid.UUID           `json:"user_id"`
	PointsEarned int                 `json:"points_earned"`
	Method       enums.CheckinMethod `json:"method"`
	RecordedBy   *uuid.UUID          `json:"recorded_by,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

// HistoryItemDTO is one attendance row joined with its event summary.
type HistoryItemDTO struct {
	EntryDTO
	EventTitle    string              `json:"event_title"`
	EventCategory enums.EventCategory `json:"event_category"`
	EventStartsAt time.Time           `json:"event_starts_at"`
}

// CreateEntryDTO holds the data the repo needs to persist one ledger row and
// bump the member's running total in the same transaction.
type CreateEntryDTO struct {
	EventID      uuid.UUID
	UserID       uuid.UUID
	PointsEarned int
	Method       enums.CheckinMethod
	RecordedBy   *uuid.UUID
}

// FromModel maps a stored ledger row to its transport shape.
func FromModel(e *models.AttendanceEntry) *EntryDTO {
	if e == nil {
		return nil
	}
	return &EntryDTO{
		ID:           e.ID,
		EventID:      e.EventID,
		UserID:       e.UserID,
		PointsEarned: e.PointsEarned,
		Method:       e.Method,
		RecordedBy:   e.RecordedBy,
		CreatedAt:    e.CreatedAt,
	}
}
