package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"

	"github.com/ce-fello/standup-agent/src/internal/api/apiErrors"
	"github.com/ce-fello/standup-agent/src/internal/service"
)

type Handler struct {
	svc *service.Service
	log *zap.Logger
}

func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{svc: svc, log: logger}
}

func RegisterRoutes(r *chi.Mux, h *Handler) {
	r.Post("/standup/submit", withTimeout(h.submitEntry))
	r.Post("/questions/answer", withTimeout(h.answerQuestion))
	r.Get("/questions/open", withTimeout(h.openQuestions))
	r.Get("/progress", withTimeout(h.teamProgress))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	})
}

// Submissions wait on the text-generation round trip, so the budget
// is wider than a plain CRUD call.
func withTimeout(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
		defer cancel()
		next(w, r.WithContext(ctx))
	}
}

func (h *Handler) submitEntry(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MemberName string `json:"member_name"`
		Notes      string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apiErrors.InternalError, "invalid body")
		return
	}
	if req.MemberName == "" {
		writeError(w, http.StatusBadRequest, apiErrors.InternalError, "member_name required")
		return
	}
	if req.Notes == "" {
		writeError(w, http.StatusBadRequest, apiErrors.InternalError, "notes required")
		return
	}

	entry, questions, err := h.svc.ProcessEntry(r.Context(), req.Notes, req.MemberName)
	if err != nil {
		handleSvcError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry, "questions": questions})
}

func (h *Handler) answerQuestion(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuestionID string `json:"question_id"`
		Answer     string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.QuestionID == "" || req.Answer == "" {
		writeError(w, http.StatusBadRequest, apiErrors.InternalError, "question_id and answer required")
		return
	}

	followUps, err := h.svc.RecordAnswer(r.Context(), req.QuestionID, req.Answer)
	if err != nil {
		handleSvcError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"question_id": req.QuestionID, "follow_ups": followUps})
}

func (h *Handler) openQuestions(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("member_id")

	questions, err := h.svc.ListOpenQuestions(r.Context(), memberID)
	if err != nil {
		handleSvcError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (h *Handler) teamProgress(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, apiErrors.InternalError, "days must be a non-negative integer")
			return
		}
		days = parsed
	}

	progress, err := h.svc.TeamProgress(r.Context(), days)
	if err != nil {
		handleSvcError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, code int, errCode apiErrors.ErrorCode, message string) {
	writeJSON(w, code, map[string]any{
		"error": map[string]any{"code": errCode, "message": message},
	})
}

func handleSvcError(w http.ResponseWriter, err error) {
	var e apiErrors.APIError
	switch {
	case errors.As(err, &e):
		switch e.Code {
		case apiErrors.NotFound:
			writeError(w, http.StatusNotFound, e.Code, e.Message)
		case apiErrors.QuestionAnswered:
			writeError(w, http.StatusConflict, e.Code, e.Message)
		default:
			writeError(w, http.StatusInternalServerError, apiErrors.InternalError, e.Message)
		}
	default:
		writeError(w, http.StatusInternalServerError, apiErrors.InternalError, err.Error())
	}
}
