package controllers

import (
	"net/http"

	"github.com/jalvarado-dev/memberhub-backend/api/responses"
	"github.com/jalvarado-dev/memberhub-backend/api/validators"
	"github.com/jalvarado-dev/memberhub-backend/internal/chat"
	"github.com/jalvarado-dev/memberhub-backend/pkg/logger"
)

// PublicChat proxies the unauthenticated assistant widget.
func PublicChat(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req chat.PublicChatRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.RespondPublic(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}

// Chat answers an authenticated member, logging the exchange.
func Chat(svc chat.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actorID, err := actorUUID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req chat.ChatRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resp, err := svc.Respond(r.Context(), &actorID, req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, resp)
	}
}
