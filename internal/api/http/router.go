package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/mind-engage/reasoned/internal/account"
	auth "github.com/mind-engage/reasoned/internal/auth/middleware"
	"github.com/mind-engage/reasoned/internal/exam"
	"github.com/mind-engage/reasoned/internal/material"
	"github.com/mind-engage/reasoned/internal/rbac"
)

type Deps struct {
	Exams     *exam.Service
	Accounts  *account.Store
	Materials *material.Store
	Auth      *auth.AuthService
	Log       *zap.Logger

	CORSOrigins []string
	// Ready reports whether backing storage is reachable.
	Ready func(ctx context.Context) error
}

func NewRouter(d Deps) http.Handler {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	tutor := material.NewTutor(d.Materials)

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(log), middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if d.Ready != nil {
			if err := d.Ready(r.Context()); err != nil {
				http.Error(w, "not ready", http.StatusServiceUnavailable)
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]any{"rejected_tokens": d.Exams.RejectedTokens()})
	})

	r.Route("/api", func(ar chi.Router) {
		ar.Post("/register", RegisterHandler(d.Accounts, d.Auth))
		ar.Post("/login", LoginHandler(d.Accounts, d.Auth))
		ar.Get("/meta", MetaHandler(d.Exams))

		// Protected API (JWT → caller from storage → RBAC)
		ar.Group(func(pr chi.Router) {
			pr.Use(auth.JWTMiddleware(d.Auth), auth.AttachCaller(d.Accounts))

			pr.With(rbac.Require(rbac.PermAccountView)).
				Get("/me", MeHandler(d.Exams.Policy()))

			pr.With(rbac.Require(rbac.PermSetGenerate)).
				Post("/generate_set", GenerateSetHandler(d.Exams))
			pr.With(rbac.Require(rbac.PermSetCheck)).
				Post("/check_set", CheckSetHandler(d.Exams))
			pr.With(rbac.Require(rbac.PermSetExplain)).
				Post("/explain", ExplainHandler(d.Exams))

			pr.With(rbac.Require(rbac.PermMaterialView)).
				Get("/materials", ListMaterialsHandler(d.Materials))
			pr.With(rbac.Require(rbac.PermMaterialView)).
				Get("/material/{id}", GetMaterialHandler(d.Materials))
			pr.With(rbac.Require(rbac.PermTutorChat)).
				Post("/tutor_chat", TutorChatHandler(tutor))

			pr.Route("/admin/users/{username}", func(ur chi.Router) {
				ur.Use(rbac.Require(rbac.PermUsersManage))
				ur.Post("/plan", SetPlanHandler(d.Accounts, log))
				ur.Post("/reset_attempts", ResetAttemptsHandler(d.Accounts, log))
				ur.Post("/role", SetRoleHandler(d.Accounts, log))
			})
		})
	})
	return r
}
