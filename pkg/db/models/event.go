package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/enums"
	"github.com/lib/pq"
)

// Event is a scheduled org activity members can check into for points.
type Event struct {
	ID              uuid.UUID           `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title           string              `gorm:"type:text;not null"`
	Description     string              `gorm:"type:text;not null;default:''"`
	Category        enums.EventCategory `gorm:"column:category;type:text;not null;default:general"`
	Location        string              `gorm:"type:text;not null;default:''"`
	StartsAt        time.Time           `gorm:"column:starts_at;not null"`
	EndsAt          *time.Time          `gorm:"column:ends_at"`
	Points          int                 `gorm:"column:points;not null;default:0"`
	Tags            pq.StringArray      `gorm:"type:text[];column:tags;not null;default:ARRAY[]::text[]"`
	ImageURL        *string             `gorm:"column:image_url"`
	ExternalFormURL *string             `gorm:"column:external_form_url"`
	CheckinCode     *string             `gorm:"column:checkin_code"`
	CodeExpiresAt   *time.Time          `gorm:"column:code_expires_at"`
	CreatedBy       uuid.UUID           `gorm:"type:uuid;column:created_by;not null"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

// CodeActive reports whether a check-in code exists and has not expired at now.
func (e Event) CodeActive(now time.Time) bool {
	if e.CheckinCode == nil || e.CodeExpiresAt == nil {
		return false
	}
	return now.Before(*e.CodeExpiresAt)
}
