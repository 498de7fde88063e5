package leaderboard

import (
	"context"
	"fmt"

	"github.com/jalvarado-dev/memberhub-backend/pkg/pagination"

	pkgerrors "github.com/jalvarado-dev/memberhub-backend/pkg/errors"
)

// Service defines the behavior needed by the leaderboard controllers.
type Service interface {
	Top(ctx context.Context, sort SortKey, limit int) ([]RankedRow, error)
}

type repository interface {
	TopByPoints(ctx context.Context, limit int) ([]Row, error)
	TopByAttendance(ctx context.Context, limit int) ([]Row, error)
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build a leaderboard service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a leaderboard service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("leaderboard repository is required")
	}
	return &service{repo: params.Repo}, nil
}

// Top returns the ranked standings for the requested sort. Rank is the
// 1-based row position; equal scores keep distinct ranks because the repo
// orders ties by user id.
func (s *service) Top(ctx context.Context, sort SortKey, limit int) ([]RankedRow, error) {
	if sort == "" {
		sort = SortByPoints
	}
	if !sort.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown leaderboard sort")
	}
	limit = pagination.NormalizeLimit(limit)

	var (
		rows []Row
		err  error
	)
	switch sort {
	case SortByAttendance:
		rows, err = s.repo.TopByAttendance(ctx, limit)
	default:
		rows, err = s.repo.TopByPoints(ctx, limit)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load leaderboard")
	}

	ranked := make([]RankedRow, 0, len(rows))
	for i, row := range rows {
		ranked = append(ranked, RankedRow{Rank: i + 1, Row: row})
	}
	return ranked, nil
}
