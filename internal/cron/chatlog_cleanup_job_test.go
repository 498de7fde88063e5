package cron

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeChatLogRepo struct {
	lastCutoff  time.Time
	deletedRows int64
	err         error
	called      int
}

func (f *fakeChatLogRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return f.deletedRows, nil
}

func TestChatLogCleanupJobDeletesPastRetention(t *testing.T) {
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeChatLogRepo{deletedRows: 7}
	job := newChatLogCleanupJob(t, repo, 30*24*time.Hour)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	expectedCutoff := now.UTC().Add(-30 * 24 * time.Hour)
	if !repo.lastCutoff.Equal(expectedCutoff) {
		t.Fatalf("expected cutoff %s, got %s", expectedCutoff, repo.lastCutoff)
	}
	if repo.called != 1 {
		t.Fatalf("expected repo called once, got %d", repo.called)
	}
}

func TestChatLogCleanupJobDefaultsRetention(t *testing.T) {
	job := newChatLogCleanupJob(t, &fakeChatLogRepo{}, 0)
	if job.maxAge != defaultChatLogMaxAge {
		t.Fatalf("expected default retention, got %s", job.maxAge)
	}
}

func TestChatLogCleanupJobPropagatesErrors(t *testing.T) {
	job := newChatLogCleanupJob(t, &fakeChatLogRepo{err: errors.New("boom")}, time.Hour)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func newChatLogCleanupJob(t *testing.T, repo *fakeChatLogRepo, maxAge time.Duration) *chatLogCleanupJob {
	t.Helper()
	jobIface, err := NewChatLogCleanupJob(ChatLogCleanupJobParams{
		Logger:     cronTestLogger(),
		Repository: repo,
		MaxAge:     maxAge,
	})
	if err != nil {
		t.Fatalf("NewChatLogCleanupJob: %v", err)
	}
	job, ok := jobIface.(*chatLogCleanupJob)
	if !ok {
		t.Fatalf("expected chatLogCleanupJob, got %T", jobIface)
	}
	return job
}
