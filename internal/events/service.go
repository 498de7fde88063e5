package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/config"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"github.com/jalvarado-dev/memberhub-backend/pkg/enums"
	pkgerrors "github.com/jalvarado-dev/memberhub-backend/pkg/errors"
	"github.com/jalvarado-dev/memberhub-backend/pkg/pagination"
	"github.com/jalvarado-dev/memberhub-backend/pkg/security"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the events controllers.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, req CreateEventRequest) (*AdminEventDTO, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*AdminEventDTO, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Get(ctx context.Context, id uuid.UUID) (*EventDTO, error)
	GetAdmin(ctx context.Context, id uuid.UUID) (*AdminEventDTO, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]EventDTO, error)
	GenerateCode(ctx context.Context, id uuid.UUID) (*CodeDTO, error)
	ExpireCode(ctx context.Context, id uuid.UUID) error
}

type repository interface {
	Create(ctx context.Context, dto CreateEventDTO) (*models.Event, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Event, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Event, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountAttendance(ctx context.Context, eventID uuid.UUID) (int64, error)
	SetCheckinCode(ctx context.Context, id uuid.UUID, code string, expiresAt time.Time) error
	ExpireCode(ctx context.Context, id uuid.UUID, at time.Time) error
	List(ctx context.Context, filter ListFilter, params pagination.Params) ([]models.Event, error)
}

type service struct {
	repo    repository
	cfg     config.CheckinConfig
	nowFunc func() time.Time
}

// ServiceParams bundles the dependencies required to build an events service.
type ServiceParams struct {
	Repo          repository
	CheckinConfig config.CheckinConfig

	// NowFunc overrides the clock in tests.
	NowFunc func() time.Time
}

// NewService constructs an events service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("events repository is required")
	}
	nowFunc := params.NowFunc
	if nowFunc == nil {
		nowFunc = func() time.Time { return time.Now().UTC() }
	}
	return &service{
		repo:    params.Repo,
		cfg:     params.CheckinConfig,
		nowFunc: nowFunc,
	}, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, req CreateEventRequest) (*AdminEventDTO, error) {
	category, err := enums.ParseEventCategory(strings.TrimSpace(req.Category))
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid event category")
	}
	if req.Points < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "points must be non-negative")
	}
	if req.EndsAt != nil && req.EndsAt.Before(req.StartsAt) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ends_at must not precede starts_at")
	}

	event, err := s.repo.Create(ctx, CreateEventDTO{
		Title:           strings.TrimSpace(req.Title),
		Description:     req.Description,
		Category:        category,
		Location:        strings.TrimSpace(req.Location),
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		Points:          req.Points,
		Tags:            normalizeTags(req.Tags),
		ImageURL:        req.ImageURL,
		ExternalFormURL: req.ExternalFormURL,
		CreatedBy:       actorID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create event")
	}
	return AdminFromModel(event, s.nowFunc()), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateEventRequest) (*AdminEventDTO, error) {
	existing, err := s.findEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != nil {
		category, err := enums.ParseEventCategory(strings.TrimSpace(*req.Category))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid event category")
		}
		updates["category"] = category
	}
	if req.Location != nil {
		updates["location"] = strings.TrimSpace(*req.Location)
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.EndsAt != nil {
		updates["ends_at"] = *req.EndsAt
	}
	if req.Points != nil {
		if *req.Points < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "points must be non-negative")
		}
		updates["points"] = *req.Points
	}
	if req.Tags != nil {
		updates["tags"] = normalizeTags(req.Tags)
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.ExternalFormURL != nil {
		updates["external_form_url"] = *req.ExternalFormURL
	}

	event, err := s.repo.Update(ctx, existing.ID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update event")
	}
	return AdminFromModel(event, s.nowFunc()), nil
}

// Delete refuses to remove events that already have attendance on the ledger;
// history stays immutable.
func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.findEvent(ctx, id); err != nil {
		return err
	}

	count, err := s.repo.CountAttendance(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count attendance")
	}
	if count > 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "event has recorded attendance and cannot be deleted")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete event")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*EventDTO, error) {
	event, err := s.findEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(event, s.nowFunc()), nil
}

func (s *service) GetAdmin(ctx context.Context, id uuid.UUID) (*AdminEventDTO, error) {
	event, err := s.findEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	return AdminFromModel(event, s.nowFunc()), nil
}

func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) ([]EventDTO, error) {
	events, err := s.repo.List(ctx, filter, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list events")
	}
	now := s.nowFunc()
	dtos := make([]EventDTO, 0, len(events))
	for i := range events {
		dtos = append(dtos, *FromModel(&events[i], now))
	}
	return dtos, nil
}

// GenerateCode mints a fresh code with an absolute expiry. Overwriting a live
// code is allowed; the new code immediately replaces the old one.
func (s *service) GenerateCode(ctx context.Context, id uuid.UUID) (*CodeDTO, error) {
	event, err := s.findEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	// Events created without a point value pick up their category default
	// the moment check-in opens.
	if event.Points == 0 {
		if _, err := s.repo.Update(ctx, id, map[string]any{"points": event.Category.DefaultPoints()}); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "apply default points")
		}
	}

	code, err := security.GenerateCheckinCode()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate code")
	}

	expiresAt := s.nowFunc().Add(s.cfg.CodeTTL)
	if err := s.repo.SetCheckinCode(ctx, id, code, expiresAt); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store code")
	}

	return &CodeDTO{Code: code, ExpiresAt: expiresAt}, nil
}

// ExpireCode sets the code expiry to now so no further check-ins succeed with it.
func (s *service) ExpireCode(ctx context.Context, id uuid.UUID) error {
	event, err := s.findEvent(ctx, id)
	if err != nil {
		return err
	}
	if event.CheckinCode == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "event has no check-in code")
	}
	if err := s.repo.ExpireCode(ctx, id, s.nowFunc()); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "expire code")
	}
	return nil
}

func (s *service) findEvent(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "event not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup event")
	}
	return event, nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := map[string]bool{}
	for _, tag := range tags {
		cleaned := strings.ToLower(strings.TrimSpace(tag))
		if cleaned == "" || seen[cleaned] {
			continue
		}
		seen[cleaned] = true
		out = append(out, cleaned)
	}
	return out
}
