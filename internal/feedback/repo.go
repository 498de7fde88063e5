package feedback

import (
	"context"

	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"github.com/jalvarado-dev/memberhub-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository persists feedback items.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a feedback repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a new feedback item.
func (r *Repository) Create(ctx context.Context, item *models.FeedbackItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// List returns feedback items newest first, cursor paginated.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.FeedbackItem, error) {
	query := r.db.WithContext(ctx).
		Model(&models.FeedbackItem{}).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var items []models.FeedbackItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
