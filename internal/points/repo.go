package points

import (
	"context"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository maintains the per-member running totals derived from the
// attendance ledger.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a points repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// TotalFor returns the member's running total, zero-valued when no row exists.
func (r *Repository) TotalFor(ctx context.Context, userID uuid.UUID) (*models.PointsTotal, error) {
	var total models.PointsTotal
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&total).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.PointsTotal{UserID: userID}, nil
		}
		return nil, err
	}
	return &total, nil
}

// Add bumps the member's total atomically, inserting the row if absent.
func (r *Repository) Add(ctx context.Context, userID uuid.UUID, points int) error {
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO points_totals (user_id, total, events_attended, updated_at)
		VALUES (?, ?, 1, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id) DO UPDATE
		SET total = points_totals.total + excluded.total,
		    events_attended = points_totals.events_attended + 1,
		    updated_at = CURRENT_TIMESTAMP
	`, userID, points).Error
}

// RecomputeFromLedger rebuilds every running total from the attendance ledger.
// The ledger is the source of truth; totals are a cache that can drift if a
// partial failure ever splits the pair, so the cron worker calls this to heal.
func (r *Repository) RecomputeFromLedger(ctx context.Context) (int64, error) {
	upserted := r.db.WithContext(ctx).Exec(`
		INSERT INTO points_totals (user_id, total, events_attended, updated_at)
		SELECT user_id, COALESCE(SUM(points_earned), 0), COUNT(*), CURRENT_TIMESTAMP
		FROM attendance_entries
		GROUP BY user_id
		ON CONFLICT (user_id) DO UPDATE
		SET total = excluded.total,
		    events_attended = excluded.events_attended,
		    updated_at = CURRENT_TIMESTAMP
	`)
	if upserted.Error != nil {
		return 0, upserted.Error
	}

	zeroed := r.db.WithContext(ctx).Exec(`
		UPDATE points_totals
		SET total = 0, events_attended = 0, updated_at = CURRENT_TIMESTAMP
		WHERE user_id NOT IN (SELECT DISTINCT user_id FROM attendance_entries)
		  AND (total <> 0 OR events_attended <> 0)
	`)
	if zeroed.Error != nil {
		return 0, zeroed.Error
	}

	return upserted.RowsAffected + zeroed.RowsAffected, nil
}
