package controllers

import (
	"net/http"
	"strings"

	"github.com/jalvarado-dev/memberhub-backend/api/responses"
	"github.com/jalvarado-dev/memberhub-backend/api/validators"
	"github.com/jalvarado-dev/memberhub-backend/internal/leaderboard"
	pkgerrors "github.com/jalvarado-dev/memberhub-backend/pkg/errors"
	"github.com/jalvarado-dev/memberhub-backend/pkg/logger"
	"github.com/jalvarado-dev/memberhub-backend/pkg/pagination"
)

// Leaderboard returns ranked standings, sorted by points or events attended.
func Leaderboard(svc leaderboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sort, err := sortKeyFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.Top(r.Context(), sort, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rows)
	}
}

func sortKeyFromQuery(r *http.Request) (leaderboard.SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("by"))) {
	case "", "points":
		return leaderboard.SortByPoints, nil
	case "events":
		return leaderboard.SortByAttendance, nil
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "by must be points or events")
	}
}
