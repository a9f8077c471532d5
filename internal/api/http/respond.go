package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mind-engage/reasoned/internal/account"
	"github.com/mind-engage/reasoned/internal/exam"
	"github.com/mind-engage/reasoned/internal/material"
	"github.com/mind-engage/reasoned/internal/question"
	"github.com/mind-engage/reasoned/internal/quota"
	"github.com/mind-engage/reasoned/internal/token"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

// statusFor maps domain errors to a status and a caller-visible message.
// Token failures share one message so callers cannot tell which check failed.
func statusFor(err error) (int, string) {
	var ve *exam.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, account.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, account.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, account.ErrUserNotFound):
		return http.StatusUnauthorized, "user not found"
	case errors.Is(err, quota.ErrQuotaExceeded):
		return http.StatusPaymentRequired, "free attempt limit reached"
	case token.IsIntegrityError(err):
		return http.StatusForbidden, "invalid token"
	case errors.Is(err, question.ErrUnknownSubject):
		return http.StatusNotFound, "unknown subject"
	case errors.Is(err, material.ErrNotFound):
		return http.StatusNotFound, "material not found"
	case errors.Is(err, account.ErrUsernameTaken):
		return http.StatusConflict, "username already used"
	case errors.Is(err, exam.ErrUnknownCategory):
		return http.StatusConflict, "unknown category"
	case errors.Is(err, exam.ErrTokenExpired):
		return http.StatusGone, "token expired"
	case errors.Is(err, exam.ErrSubjectNotAllowed):
		return http.StatusUnprocessableEntity, "subject not allowed for this exam/track"
	}
	return http.StatusInternalServerError, "internal error"
}

func writeError(w http.ResponseWriter, err error) {
	status, msg := statusFor(err)
	http.Error(w, msg, status)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return false
	}
	return true
}
