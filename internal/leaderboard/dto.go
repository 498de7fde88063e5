package leaderboard

import (
	"github.com/google/uuid"
)

// SortKey selects which ranking a leaderboard query returns.
type SortKey string

const (
	SortByPoints     SortKey = "points"
	SortByAttendance SortKey = "attendance"
)

// IsValid reports whether the value is a known SortKey.
func (s SortKey) IsValid() bool {
	return s == SortByPoints || s == SortByAttendance
}

// Row is one member's standing before ranks are assigned.
type Row struct {
	UserID         uuid.UUID `json:"user_id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	AvatarURL      *string   `json:"avatar_url,omitempty"`
	Total          int       `json:"total"`
	EventsAttended int       `json:"events_attended"`
}

// RankedRow is a leaderboard row with its 1-based position.
type RankedRow struct {
	Rank int `json:"rank"`
	Row
}
