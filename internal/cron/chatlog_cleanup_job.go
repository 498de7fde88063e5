package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/jalvarado-dev/memberhub-backend/pkg/logger"
)

const defaultChatLogMaxAge = 90 * 24 * time.Hour

// ChatLogCleanupJobParams configure the chat log cleanup job.
type ChatLogCleanupJobParams struct {
	Logger     *logger.Logger
	Repository chatLogCleanupRepo
	MaxAge     time.Duration
}

type chatLogCleanupRepo interface {
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// NewChatLogCleanupJob builds the job that prunes assistant exchanges past
// the retention window.
func NewChatLogCleanupJob(params ChatLogCleanupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("chat log repository required")
	}
	maxAge := params.MaxAge
	if maxAge <= 0 {
		maxAge = defaultChatLogMaxAge
	}
	return &chatLogCleanupJob{
		logg:   params.Logger,
		repo:   params.Repository,
		maxAge: maxAge,
		now:    time.Now,
	}, nil
}

type chatLogCleanupJob struct {
	logg   *logger.Logger
	repo   chatLogCleanupRepo
	maxAge time.Duration
	now    func() time.Time
}

func (j *chatLogCleanupJob) Name() string { return "chatlog-cleanup" }

func (j *chatLogCleanupJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.maxAge)
	deleted, err := j.repo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return fmt.Errorf("chat log cleanup: %w", err)
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"max_age":      j.maxAge.String(),
		"rows_deleted": deleted,
	})
	j.logg.Info(logCtx, "chat log cleanup complete")
	return nil
}
