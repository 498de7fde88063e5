package controllers

import (
	"net/http"

	"github.com/jalvarado-dev/memberhub-backend/api/responses"
	"github.com/jalvarado-dev/memberhub-backend/api/validators"
	"github.com/jalvarado-dev/memberhub-backend/internal/feedback"
	"github.com/jalvarado-dev/memberhub-backend/pkg/logger"
)

// CreateFeedback stores a member suggestion, optionally anonymous.
func CreateFeedback(svc feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := actorUUID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req feedback.CreateFeedbackRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), userID, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// ListFeedback is the admin view of submitted suggestions.
func ListFeedback(svc feedback.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := paginationParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}
