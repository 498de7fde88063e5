package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"github.com/jalvarado-dev/memberhub-backend/pkg/pagination"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Repository exposes event persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an events repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new event and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateEventDTO) (*models.Event, error) {
	event := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// FindByID loads an event by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Update applies the provided column updates and reloads the event.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Event, error) {
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Event{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes the event row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, "id = ?", id).Error
}

// CountAttendance returns how many ledger rows reference the event.
func (r *Repository) CountAttendance(ctx context.Context, eventID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AttendanceEntry{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	return count, err
}

// SetCheckinCode overwrites the event's code and its absolute expiry.
func (r *Repository) SetCheckinCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"checkin_code":    code,
			"code_expires_at": expiresAt,
		}).Error
}

// ExpireCode forces the code expiry to the provided instant.
func (r *Repository) ExpireCode(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Event{}).
		Where("id = ?", id).
		UpdateColumn("code_expires_at", at).Error
}

// List returns events ordered by start time descending using cursor pagination.
func (r *Repository) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Event, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Event{}).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Tag != "" {
		query = query.Where("tags @> ?", pq.StringArray{filter.Tag})
	}
	if filter.From != nil {
		query = query.Where("starts_at >= ?", *filter.From)
	}
	if filter.Until != nil {
		query = query.Where("starts_at <= ?", *filter.Until)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
