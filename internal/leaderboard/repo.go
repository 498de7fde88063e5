package leaderboard

import (
	"context"

	"gorm.io/gorm"
)

// Repository reads ranked standings from users joined with points_totals.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a leaderboard repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// TopByPoints returns active non-admin members ordered by total points.
// Ties break on user id ascending so pagination stays deterministic.
func (r *Repository) TopByPoints(ctx context.Context, limit int) ([]Row, error) {
	return r.top(ctx, limit, "total DESC, users.id ASC")
}

// TopByAttendance returns active non-admin members ordered by events attended.
func (r *Repository) TopByAttendance(ctx context.Context, limit int) ([]Row, error) {
	return r.top(ctx, limit, "events_attended DESC, users.id ASC")
}

func (r *Repository) top(ctx context.Context, limit int, order string) ([]Row, error) {
	var rows []Row
	err := r.db.WithContext(ctx).
		Table("users").
		Select(`users.id AS user_id, users.first_name, users.last_name, users.avatar_url,
			COALESCE(points_totals.total, 0) AS total,
			COALESCE(points_totals.events_attended, 0) AS events_attended`).
		Joins("LEFT JOIN points_totals ON points_totals.user_id = users.id").
		Where("users.role <> ? AND users.is_active", "admin").
		Order(order).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
