package models

import (
	"time"

	"github.com/google/uuid"
)

// ChatLog captures one assistant exchange for audit and retention pruning.
type ChatLog struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    *uuid.UUID `gorm:"type:uuid;column:user_id"`
	Prompt    string     `gorm:"type:text;not null"`
	Response  string     `gorm:"type:text;not null"`
	Fallback  bool       `gorm:"column:fallback;not null;default:false"`
	TurnCount int        `gorm:"column:turn_count;not null;default:0"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
}
