package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"github.com/jalvarado-dev/memberhub-backend/pkg/enums"
	pkgerrors "github.com/jalvarado-dev/memberhub-backend/pkg/errors"
	"github.com/jalvarado-dev/memberhub-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Service defines the behavior needed by the members controllers.
type Service interface {
	Me(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error)
	ListMembers(ctx context.Context, params pagination.Params) ([]MemberRow, error)
	UpdateMember(ctx context.Context, actorID, memberID uuid.UUID, req UpdateMemberRequest) (*UserDTO, error)
}

type repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, dto UpdateProfileDTO) (*models.User, error)
	UpdateRole(ctx context.Context, id uuid.UUID, role enums.MemberRole) error
	SetActive(ctx context.Context, id uuid.UUID, active bool) error
	ListWithTotals(ctx context.Context, params pagination.Params) ([]MemberRow, error)
}

type pointsReader interface {
	TotalFor(ctx context.Context, userID uuid.UUID) (*models.PointsTotal, error)
}

type service struct {
	repo   repository
	points pointsReader
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo   repository
	Points pointsReader
}

// NewService constructs a users service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Points == nil {
		return nil, fmt.Errorf("points reader is required")
	}
	return &service{repo: params.Repo, points: params.Points}, nil
}

func (s *service) Me(ctx context.Context, userID uuid.UUID) (*ProfileDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, err := s.points.TotalFor(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load points total")
	}
	return &ProfileDTO{
		UserDTO:        *FromModel(user),
		Points:         total.Total,
		EventsAttended: total.EventsAttended,
	}, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}
	user, err := s.repo.UpdateProfile(ctx, userID, UpdateProfileDTO{
		FirstName: trimmed(req.FirstName),
		LastName:  trimmed(req.LastName),
		AvatarURL: req.AvatarURL,
		GradYear:  req.GradYear,
		Major:     req.Major,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}
	return FromModel(user), nil
}

func (s *service) ListMembers(ctx context.Context, params pagination.Params) ([]MemberRow, error) {
	rows, err := s.repo.ListWithTotals(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list members")
	}
	return rows, nil
}

// UpdateMember applies admin role/active changes. Admins cannot modify their
// own account, so an org always keeps at least one working admin.
func (s *service) UpdateMember(ctx context.Context, actorID, memberID uuid.UUID, req UpdateMemberRequest) (*UserDTO, error) {
	if actorID == memberID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot modify your own account")
	}
	if _, err := s.findUser(ctx, memberID); err != nil {
		return nil, err
	}

	if req.Role != nil {
		role, err := enums.ParseMemberRole(strings.TrimSpace(*req.Role))
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid role")
		}
		if err := s.repo.UpdateRole(ctx, memberID, role); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update role")
		}
	}
	if req.IsActive != nil {
		if err := s.repo.SetActive(ctx, memberID, *req.IsActive); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "set active")
		}
	}

	user, err := s.findUser(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "member not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup member")
	}
	return user, nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := strings.TrimSpace(*value)
	return &cleaned
}
