package feedback

import (
	"time"

	"github.com/google/uuid"
	"github.com/jalvarado-dev/memberhub-backend/pkg/db/models"
)

// CreateFeedbackRequest is the payload for submitting a suggestion.
type CreateFeedbackRequest struct {
	Subject   string `json:"subject" validate:"required,max=200"`
	Body      string `json:"body" validate:"required,max=5000"`
	Anonymous bool   `json:"anonymous"`
}

// FeedbackDTO is the API representation of a feedback item. UserID is nil for
// anonymous submissions.
type FeedbackDTO struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body"`
	Anonymous bool       `json:"anonymous"`
	CreatedAt time.Time  `json:"created_at"`
}

// FromModel maps a persisted feedback item to its API shape.
func FromModel(item *models.FeedbackItem) *FeedbackDTO {
	return &FeedbackDTO{
		ID:        item.ID,
		UserID:    item.UserID,
		Subject:   item.Subject,
		Body:      item.Body,
		Anonymous: item.Anonymous,
		CreatedAt: item.CreatedAt,
	}
}
