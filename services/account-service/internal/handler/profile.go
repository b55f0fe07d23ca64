package handler

import (
	"errors"
	"net/http"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/payload"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/account-api/shared/middleware"
	"github.com/vasapolrittideah/account-api/shared/utilities"
)

func (h *accountHTTPHandler) Profile(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		utilities.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	profile, err := h.accountUsecase.GetProfile(r.Context(), email)
	if err != nil {
		h.protectedError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.ProfileResponse{
		User: payload.ProfileUser{
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
		},
		Message: profile.Message,
	})
}

func (h *accountHTTPHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	email, ok := middleware.SubjectFromContext(r.Context())
	if !ok {
		utilities.WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	dashboard, err := h.accountUsecase.GetDashboard(r.Context(), email)
	if err != nil {
		h.protectedError(w, r, err)
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.DashboardResponse{
		Message: dashboard.Message,
		DashboardData: payload.DashboardData{
			RecentActivity: dashboard.RecentActivity,
			Stats: payload.DashboardStats{
				TotalLogins: dashboard.Stats.TotalLogins,
				LastLogin:   dashboard.Stats.LastLogin,
			},
		},
	})
}

func (h *accountHTTPHandler) protectedError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		utilities.WriteError(w, http.StatusNotFound, "User not found")
	default:
		h.internalError(w, r, err, "failed to load account")
	}
}
