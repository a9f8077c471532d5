package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mind-engage/reasoned/internal/material"
)

// GET /api/materials?subject=FISIKA
func ListMaterialsHandler(store *material.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		subject := strings.TrimSpace(r.URL.Query().Get("subject"))
		if subject == "" {
			http.Error(w, "subject required", http.StatusBadRequest)
			return
		}
		list, err := store.List(r.Context(), subject)
		if err != nil {
			writeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, list)
	}
}

// GET /api/material/{id}
func GetMaterialHandler(store *material.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "bad id", http.StatusBadRequest)
			return
		}
		m, err := store.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, m)
	}
}

// POST /api/tutor_chat {"chapter_id": 1, "question": "formula"}
func TutorChatHandler(tutor *material.Tutor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ChapterID int64  `json:"chapter_id"`
			Question  string `json:"question"`
		}
		if !decode(w, r, &req) {
			return
		}
		if req.ChapterID <= 0 {
			http.Error(w, "chapter_id required", http.StatusBadRequest)
			return
		}
		answer, err := tutor.Chat(r.Context(), req.ChapterID, req.Question)
		if err != nil {
			writeError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"answer": answer})
	}
}
