package models

import (
	"time"

	"github.com/google/uuid"
)

// FeedbackItem is a free-form suggestion submitted by a member.
type FeedbackItem struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID `gorm:"type:uuid;column:user_id"`
	Subject   string     `gorm:"type:text;not null"`
	Body      string     `gorm:"type:text;not null"`
	Anonymous bool       `gorm:"column:anonymous;not null;default:false"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
