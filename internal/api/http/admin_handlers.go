package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mind-engage/reasoned/internal/account"
	auth "github.com/mind-engage/reasoned/internal/auth/middleware"
)

// POST /api/admin/users/{username}/plan {"is_paid": true}
func SetPlanHandler(users *account.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			IsPaid *bool `json:"is_paid"`
		}
		if !decode(w, r, &req) {
			return
		}
		if req.IsPaid == nil {
			http.Error(w, "is_paid required", http.StatusBadRequest)
			return
		}
		u, err := users.SetPlan(r.Context(), chi.URLParam(r, "username"), *req.IsPaid)
		if err != nil {
			writeTargetError(w, err)
			return
		}
		log.Info("plan changed", zap.String("by", auth.SubjectFromContext(r.Context())),
			zap.String("user", u.Username), zap.Bool("is_paid", u.IsPaid))
		respondJSON(w, http.StatusOK, u)
	}
}

// POST /api/admin/users/{username}/reset_attempts
func ResetAttemptsHandler(users *account.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := users.ResetAttempts(r.Context(), chi.URLParam(r, "username"))
		if err != nil {
			writeTargetError(w, err)
			return
		}
		log.Info("attempts reset", zap.String("by", auth.SubjectFromContext(r.Context())),
			zap.String("user", u.Username))
		respondJSON(w, http.StatusOK, u)
	}
}

// POST /api/admin/users/{username}/role {"role": "admin"}
func SetRoleHandler(users *account.Store, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Role string `json:"role"`
		}
		if !decode(w, r, &req) {
			return
		}
		target := chi.URLParam(r, "username")
		if account.NormalizeUsername(target) == auth.SubjectFromContext(r.Context()) {
			http.Error(w, "cannot change your own role", http.StatusBadRequest)
			return
		}
		u, err := users.SetRole(r.Context(), target, strings.ToLower(strings.TrimSpace(req.Role)))
		if err != nil {
			writeTargetError(w, err)
			return
		}
		log.Info("role changed", zap.String("by", auth.SubjectFromContext(r.Context())),
			zap.String("user", u.Username), zap.String("role", u.Role))
		respondJSON(w, http.StatusOK, u)
	}
}

// writeTargetError reports a missing target user as 404 rather than 401.
func writeTargetError(w http.ResponseWriter, err error) {
	if errors.Is(err, account.ErrUserNotFound) {
		http.Error(w, "user not found", http.StatusNotFound)
		return
	}
	writeError(w, err)
}
