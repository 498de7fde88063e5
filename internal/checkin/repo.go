package checkin

import (
	"context"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/internal/points"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"github.com/jalvarado-dev/memberhub-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository persists attendance ledger rows. Recording an entry and bumping
// the member's running total happen in one transaction so the two never drift
// on the happy path.
type Repository struct {
	client *db.Client
	points *points.Repository
}

// NewRepository constructs an attendance repo backed by the shared DB client.
func NewRepository(client *db.Client) *Repository {
	return &Repository{
		client: client,
		points: points.NewRepository(client.DB()),
	}
}

// RecordAttendance inserts the ledger row and increments points_totals
// atomically. The UNIQUE(event_id, user_id) index is the final word on
// duplicates; callers should map unique violations to a conflict.
func (r *Repository) RecordAttendance(ctx context.Context, dto CreateEntryDTO) (*models.AttendanceEntry, error) {
	entry := &models.AttendanceEntry{
		EventID:      dto.EventID,
		UserID:       dto.UserID,
		PointsEarned: dto.PointsEarned,
		Method:       dto.Method,
		RecordedBy:   dto.RecordedBy,
	}

	err := r.client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(entry).Error; err != nil {
			return err
		}
		return r.points.WithTx(tx).Add(ctx, dto.UserID, dto.PointsEarned)
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// HasEntry reports whether the member already checked into the event.
func (r *Repository) HasEntry(ctx context.Context, eventID, userID uuid.UUID) (bool, error) {
	var count int64
	err := r.client.DB().WithContext(ctx).
		Model(&models.AttendanceEntry{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser returns the member's attendance joined with event summaries,
// newest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]HistoryItemDTO, error) {
	query := r.client.DB().WithContext(ctx).
		Table("attendance_entries").
		Select(`attendance_entries.id, attendance_entries.event_id, attendance_entries.user_id,
			attendance_entries.points_earned, attendance_entries.method, attendance_entries.recorded_by,
			attendance_entries.created_at,
			events.title AS event_title, events.category AS event_category, events.starts_at AS event_starts_at`).
		Joins("JOIN events ON events.id = attendance_entries.event_id").
		Where("attendance_entries.user_id = ?", userID).
		Order("attendance_entries.created_at DESC, attendance_entries.id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(attendance_entries.created_at, attendance_entries.id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var items []HistoryItemDTO
	if err := query.Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByEvent returns all ledger rows for an event, oldest first.
func (r *Repository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]models.AttendanceEntry, error) {
	var entries []models.AttendanceEntry
	err := r.client.DB().WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&entries).Error
	return entries, err
}
