package leaderboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	pkgerrors "github.com/jalvarado-dev/memberhub-backend/pkg/errors"
)

type fakeLeaderboardRepo struct {
	byPoints     []Row
	byAttendance []Row
	lastLimit    int
}

func (f *fakeLeaderboardRepo) TopByPoints(ctx context.Context, limit int) ([]Row, error) {
	f.lastLimit = limit
	return f.byPoints, nil
}

func (f *fakeLeaderboardRepo) TopByAttendance(ctx context.Context, limit int) ([]Row, error) {
	f.lastLimit = limit
	return f.byAttendance, nil
}

func TestTopAssignsSequentialRanks(t *testing.T) {
	repo := &fakeLeaderboardRepo{byPoints: []Row{
		{UserID: uuid.New(), Total: 50},
		{UserID: uuid.New(), Total: 50},
		{UserID: uuid.New(), Total: 10},
	}}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	ranked, err := svc.Top(context.Background(), SortByPoints, 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	for i, row := range ranked {
		if row.Rank != i+1 {
			t.Fatalf("expected rank %d at position %d, got %d", i+1, i, row.Rank)
		}
	}
}

func TestTopDefaultsToPointsSort(t *testing.T) {
	repo := &fakeLeaderboardRepo{
		byPoints:     []Row{{UserID: uuid.New(), Total: 5}},
		byAttendance: []Row{{UserID: uuid.New(), EventsAttended: 9}},
	}
	svc, _ := NewService(ServiceParams{Repo: repo})

	ranked, err := svc.Top(context.Background(), "", 10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(ranked) != 1 || ranked[0].Total != 5 {
		t.Fatalf("expected points ranking, got %+v", ranked)
	}
}

func TestTopRejectsUnknownSort(t *testing.T) {
	svc, _ := NewService(ServiceParams{Repo: &fakeLeaderboardRepo{}})

	_, err := svc.Top(context.Background(), SortKey("bogus"), 10)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestTopClampsLimit(t *testing.T) {
	repo := &fakeLeaderboardRepo{}
	svc, _ := NewService(ServiceParams{Repo: repo})

	if _, err := svc.Top(context.Background(), SortByAttendance, 10_000); err != nil {
		t.Fatalf("top: %v", err)
	}
	if repo.lastLimit != 100 {
		t.Fatalf("expected limit clamped to 100, got %d", repo.lastLimit)
	}
}
