package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"github.com/jalvarado-dev/memberhub-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID        `json:"id"`
	Email       string           `json:"email"`
	FirstName   string           `json:"first_name"`
	LastName    string           `json:"last_name"`
	Role        enums.MemberRole `json:"role"`
	AvatarURL   *string          `json:"avatar_url,omitempty"`
	GradYear    *int             `json:"grad_year,omitempty"`
	Major       *string          `json:"major,omitempty"`
	IsActive    bool             `json:"is_active"`
	LastLoginAt *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         enums.MemberRole
	AvatarURL    *string
	GradYear     *int
	Major        *string
	IsActive     *bool
}

// UpdateProfileDTO carries the member-editable profile fields.
type UpdateProfileDTO struct {
	FirstName *string
	LastName  *string
	AvatarURL *string
	GradYear  *int
	Major     *string
}

// UpdateProfileRequest is the payload for PATCH /members/me.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	GradYear  *int    `json:"grad_year,omitempty" validate:"omitempty,gte=1900,lte=2200"`
	Major     *string `json:"major,omitempty" validate:"omitempty,max=200"`
}

// UpdateMemberRequest is the admin payload for role/active changes.
type UpdateMemberRequest struct {
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=member admin"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ProfileDTO is a user plus their attendance standing.
type ProfileDTO struct {
	UserDTO
	Points         int `json:"points"`
	EventsAttended int `json:"events_attended"`
}

// MemberRow is one admin-list entry joined with cached totals.
type MemberRow struct {
	ID             uuid.UUID        `json:"id"`
	Email          string           `json:"email"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	Role           enums.MemberRole `json:"role"`
	AvatarURL      *string          `json:"avatar_url,omitempty"`
	GradYear       *int             `json:"grad_year,omitempty"`
	Major          *string          `json:"major,omitempty"`
	IsActive       bool             `json:"is_active"`
	LastLoginAt    *time.Time       `json:"last_login_at,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
	Total          int              `json:"points"`
	EventsAttended int              `json:"events_attended"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		AvatarURL:   u.AvatarURL,
		GradYear:    u.GradYear,
		Major:       u.Major,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	role := c.Role
	if role == "" {
		role = enums.MemberRoleMember
	}

	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		Role:         role,
		AvatarURL:    c.AvatarURL,
		GradYear:     c.GradYear,
		Major:        c.Major,
		IsActive:     isActive,
	}
}
