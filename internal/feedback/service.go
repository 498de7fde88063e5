package feedback

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	pkgerrors "github.com/jalvarado-dev/memberhub-backend/pkg/errors"
	"github.com/jalvarado-dev/memberhub-backend/pkg/pagination"
)

// Service defines the behavior needed by the feedback controllers.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, req CreateFeedbackRequest) (*FeedbackDTO, error)
	List(ctx context.Context, params pagination.Params) ([]FeedbackDTO, error)
}

type repository interface {
	Create(ctx context.Context, item *models.FeedbackItem) error
	List(ctx context.Context, params pagination.Params) ([]models.FeedbackItem, error)
}

type service struct {
	repo repository
}

// ServiceParams bundles the dependencies required to build a feedback service.
type ServiceParams struct {
	Repo repository
}

// NewService constructs a feedback service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("feedback repository is required")
	}
	return &service{repo: params.Repo}, nil
}

// Create stores the submission. Anonymous submissions drop the author before
// the row is written, so authorship is never recoverable from the database.
func (s *service) Create(ctx context.Context, userID uuid.UUID, req CreateFeedbackRequest) (*FeedbackDTO, error) {
	subject := strings.TrimSpace(req.Subject)
	body := strings.TrimSpace(req.Body)
	if subject == "" || body == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "subject and body are required")
	}

	item := &models.FeedbackItem{
		Subject:   subject,
		Body:      body,
		Anonymous: req.Anonymous,
	}
	if !req.Anonymous {
		item.UserID = &userID
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create feedback")
	}
	return FromModel(item), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) ([]FeedbackDTO, error) {
	items, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list feedback")
	}
	dtos := make([]FeedbackDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, *FromModel(&items[i]))
	}
	return dtos, nil
}
