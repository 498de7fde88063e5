package chat

import (
	"context"
	"time"

	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists assistant exchanges for audit and retention pruning.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a chat log repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Log stores one exchange.
func (r *Repository) Log(ctx context.Context, log *models.ChatLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

// DeleteOlderThan prunes exchanges created before the cutoff and returns how
// many rows were removed.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.ChatLog{})
	return result.RowsAffected, result.Error
}
