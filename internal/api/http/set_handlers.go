package http

import (
	"net/http"

	auth "github.com/mind-engage/reasoned/internal/auth/middleware"
	"github.com/mind-engage/reasoned/internal/exam"
)

func GenerateSetHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exam.GenerateRequest
		if !decode(w, r, &req) {
			return
		}
		set, err := svc.GenerateSet(r.Context(), auth.SubjectFromContext(r.Context()), req)
		if err != nil {
			writeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, set)
	}
}

func CheckSetHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Answers []exam.Answer `json:"answers"`
		}
		if !decode(w, r, &req) {
			return
		}
		res, err := svc.CheckSet(r.Context(), req.Answers)
		if err != nil {
			writeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

func ExplainHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exam.ExplainRequest
		if !decode(w, r, &req) {
			return
		}
		res, err := svc.Explain(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, res)
	}
}

func MetaHandler(svc *exam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, svc.Meta())
	}
}
