package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
	"github.com/jalvarado-dev/memberhub-backend/pkg/enums"
	"github.com/lib/pq"
)

// EventDTO is the transport shape for an event.
type EventDTO struct {
	ID              uuid.UUID           `json:"id"`
	Title           string              `json:"title"`
	Description     string              `json:"description"`
	Category        enums.EventCategory `json:"category"`
	Location        string              `json:"location"`
	StartsAt        time.Time           `json:"starts_at"`
	EndsAt          *time.Time          `json:"ends_at,omitempty"`
	Points          int                 `json:"points"`
	Tags            []string            `json:"tags"`
	ImageURL        *string             `json:"image_url,omitempty"`
	ExternalFormURL *string             `json:"external_form_url,omitempty"`
	CodeActive      bool                `json:"code_active"`
	CreatedBy       uuid.UUID           `json:"created_by"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// AdminEventDTO extends EventDTO with the code fields only admins may see.
type AdminEventDTO struct {
	EventDTO
	CheckinCode   *string    `json:"checkin_code,omitempty"`
	CodeExpiresAt *time.Time `json:"code_expires_at,omitempty"`
}

// CreateEventRequest is the admin payload for creating an event.
type CreateEventRequest struct {
	Title           string     `json:"title" validate:"required"`
	Description     string     `json:"description"`
	Category        string     `json:"category" validate:"required"`
	Location        string     `json:"location"`
	StartsAt        time.Time  `json:"starts_at" validate:"required"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	Points          int        `json:"points" validate:"gte=0"`
	Tags            []string   `json:"tags,omitempty"`
	ImageURL        *string    `json:"image_url,omitempty" validate:"omitempty,url"`
	ExternalFormURL *string    `json:"external_form_url,omitempty" validate:"omitempty,url"`
}

// UpdateEventRequest carries the admin-editable fields; nil means unchanged.
type UpdateEventRequest struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Category        *string    `json:"category,omitempty"`
	Location        *string    `json:"location,omitempty"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	Points          *int       `json:"points,omitempty" validate:"omitempty,gte=0"`
	Tags            []string   `json:"tags,omitempty"`
	ImageURL        *string    `json:"image_url,omitempty" validate:"omitempty,url"`
	ExternalFormURL *string    `json:"external_form_url,omitempty" validate:"omitempty,url"`
}

// ListFilter narrows event listing.
type ListFilter struct {
	Category *enums.EventCategory
	Tag      string
	From     *time.Time
	Until    *time.Time
}

// CodeDTO is returned to admins after generating a check-in code.
type CodeDTO struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CreateEventDTO holds the data the repo needs to persist a new event.
type CreateEventDTO struct {
	Title           string
	Description     string
	Category        enums.EventCategory
	Location        string
	StartsAt        time.Time
	EndsAt          *time.Time
	Points          int
	Tags            []string
	ImageURL        *string
	ExternalFormURL *string
	CreatedBy       uuid.UUID
}

func (c CreateEventDTO) ToModel() *models.Event {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return &models.Event{
		Title:           c.Title,
		Description:     c.Description,
		Category:        c.Category,
		Location:        c.Location,
		StartsAt:        c.StartsAt,
		EndsAt:          c.EndsAt,
		Points:          c.Points,
		Tags:            pq.StringArray(tags),
		ImageURL:        c.ImageURL,
		ExternalFormURL: c.ExternalFormURL,
		CreatedBy:       c.CreatedBy,
	}
}

// FromModel maps a stored event to its public transport shape.
func FromModel(e *models.Event, now time.Time) *EventDTO {
	if e == nil {
		return nil
	}
	return &EventDTO{
		ID:              e.ID,
		Title:           e.Title,
		Description:     e.Description,
		Category:        e.Category,
		Location:        e.Location,
		StartsAt:        e.StartsAt,
		EndsAt:          e.EndsAt,
		Points:          e.Points,
		Tags:            append([]string(nil), e.Tags...),
		ImageURL:        e.ImageURL,
		ExternalFormURL: e.ExternalFormURL,
		CodeActive:      e.CodeActive(now),
		CreatedBy:       e.CreatedBy,
		CreatedAt:       e.CreatedAt,
		UpdatedAt:       e.UpdatedAt,
	}
}

// AdminFromModel maps a stored event to the admin transport shape.
func AdminFromModel(e *models.Event, now time.Time) *AdminEventDTO {
	dto := FromModel(e, now)
	if dto == nil {
		return nil
	}
	return &AdminEventDTO{
		EventDTO:      *dto,
		CheckinCode:   e.CheckinCode,
		CodeExpiresAt: e.CodeExpiresAt,
	}
}
