package cron

import (
	"context"
	"fmt"

	"github.com/jalvarado-dev/memberhub-backend/pkg/logger"
)

// PointsReconcileJobParams configure the points reconcile job.
type PointsReconcileJobParams struct {
	Logger     *logger.Logger
	Repository pointsReconcileRepo
}

type pointsReconcileRepo interface {
	RecomputeFromLedger(ctx context.Context) (int64, error)
}

// NewPointsReconcileJob builds the job that rebuilds cached points totals
// from the attendance ledger. The ledger is the source of truth; the totals
// table can drift after partial failures and this heals it.
func NewPointsReconcileJob(params PointsReconcileJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("points repository required")
	}
	return &pointsReconcileJob{
		logg: params.Logger,
		repo: params.Repository,
	}, nil
}

type pointsReconcileJob struct {
	logg *logger.Logger
	repo pointsReconcileRepo
}

func (j *pointsReconcileJob) Name() string { return "points-reconcile" }

func (j *pointsReconcileJob) Run(ctx context.Context) error {
	updated, err := j.repo.RecomputeFromLedger(ctx)
	if err != nil {
		return fmt.Errorf("points reconcile: %w", err)
	}
	logCtx := j.logg.WithField(ctx, "rows_updated", updated)
	j.logg.Info(logCtx, "points reconcile complete")
	return nil
}
