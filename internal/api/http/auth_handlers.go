package http

import (
	"net/http"

	"github.com/mind-engage/reasoned/internal/account"
	auth "github.com/mind-engage/reasoned/internal/auth/middleware"
	"github.com/mind-engage/reasoned/internal/quota"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	Token  string `json:"token"`
	User   string `json:"user"`
	Role   string `json:"role"`
	IsPaid bool   `json:"is_paid"`
}

func session(a *auth.AuthService, w http.ResponseWriter, status int, u account.User) {
	tok, err := a.IssueJWT(u)
	if err != nil {
		http.Error(w, "issue token", http.StatusInternalServerError)
		return
	}
	respondJSON(w, status, sessionResponse{Token: tok, User: u.Username, Role: u.Role, IsPaid: u.IsPaid})
}

// POST /api/register {"username": "...", "password": "..."}
func RegisterHandler(users *account.Store, a *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if !decode(w, r, &req) {
			return
		}
		u, err := users.Register(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		session(a, w, http.StatusCreated, u)
	}
}

// POST /api/login {"username": "...", "password": "..."}
func LoginHandler(users *account.Store, a *auth.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req credentials
		if !decode(w, r, &req) {
			return
		}
		u, err := users.Authenticate(r.Context(), req.Username, req.Password)
		if err != nil {
			writeError(w, err)
			return
		}
		session(a, w, http.StatusOK, u)
	}
}

func MeHandler(policy quota.Policy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := auth.CallerFromContext(r.Context())
		if !ok {
			http.Error(w, "unauthenticated", http.StatusUnauthorized)
			return
		}
		respondJSON(w, http.StatusOK, map[string]any{
			"user":          c.Username,
			"role":          c.Role,
			"is_paid":       c.IsPaid,
			"attempts_used": c.AttemptsUsed,
			"free_limit":    policy.FreeLimit,
			"remaining":     policy.Remaining(c),
		})
	}
}
