// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/danielhkuo/premios/middleware"
	"github.com/danielhkuo/premios/models"
	"github.com/danielhkuo/premios/store"
)

type AdminHandler struct {
	store *store.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewAdminHandler(st *store.Store, log *zap.Logger, now func() time.Time) *AdminHandler {
	return &AdminHandler{store: st, log: log, now: now}
}

// storeError maps a store failure onto a JSON error response
func (h *AdminHandler) storeError(w http.ResponseWriter, err error, what string) {
	var verrs models.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		middleware.ValidationErrorResponse(w, h.log, verrs)
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, h.log, http.StatusNotFound, what+" not found")
	default:
		h.log.Error("admin store operation failed", zap.String("entity", what), zap.Error(err))
		middleware.ErrorResponse(w, h.log, http.StatusInternalServerError, "Database error")
	}
}

func parsePage(r *http.Request) (int, bool) {
	p := r.URL.Query().Get("page")
	if p == "" {
		return 1, true
	}
	n, err := strconv.Atoi(p)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

func questionResponse(qc models.QuestionWithChoices, now time.Time) models.QuestionAdminResponse {
	// Inline choices never expose votes
	choices := make([]models.InlineChoice, 0, len(qc.Choices))
	for _, c := range qc.Choices {
		choices = append(choices, models.InlineChoice{ID: c.ID, ChoiceText: c.ChoiceText})
	}
	return models.QuestionAdminResponse{
		Question:             qc.Question,
		WasPublishedRecently: qc.Question.WasPublishedRecently(now),
		Choices:              choices,
	}
}

// ListQuestions handles GET /admin/questions
// Supports ?q= search terms, ?pub_date= date buckets and ?page=.
func (h *AdminHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	now := h.now()
	query := r.URL.Query()

	filter := models.QuestionFilter{
		Search:  query.Get("q"),
		PubDate: query.Get("pub_date"),
	}
	if filter.PubDate != "" && filter.PubDate != models.DateFilterAny {
		if _, _, ok := models.DateRange(filter.PubDate, now); !ok {
			middleware.ErrorResponse(w, h.log, http.StatusBadRequest, "Invalid pub_date filter")
			return
		}
	}

	page, ok := parsePage(r)
	if !ok {
		middleware.ErrorResponse(w, h.log, http.StatusBadRequest, "Invalid page")
		return
	}
	filter.Page = page

	questions, total, err := h.store.ListQuestions(r.Context(), filter, now)
	if err != nil {
		h.storeError(w, err, "Question")
		return
	}

	rows := make([]models.QuestionRow, 0, len(questions))
	for _, q := range questions {
		rows = append(rows, q.Row(now))
	}

	middleware.JSONResponse(w, h.log, http.StatusOK, models.QuestionListResponse{
		Results: rows,
		Count:   total,
		Page:    page,
		PerPage: models.AdminPageSize,
	})
}

// CreateQuestion handles POST /admin/questions
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	var form models.QuestionForm
	if err := middleware.ParseJSONBody(r, &form); err != nil {
		middleware.ErrorResponse(w, h.log, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := form.Validate(); err != nil {
		h.storeError(w, err, "Question")
		return
	}

	created, err := h.store.CreateQuestion(r.Context(), form)
	if err != nil {
		h.storeError(w, err, "Question")
		return
	}

	h.log.Info("question created", zap.String("question_id", created.Question.ID))

	middleware.JSONResponse(w, h.log, http.StatusCreated, questionResponse(created, h.now()))
}

// GetQuestion handles GET /admin/questions/{id}
func (h *AdminHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, h.log, http.StatusNotFound, "Question not found")
		return
	}

	qc, err := h.store.QuestionWithChoices(r.Context(), id)
	if err != nil {
		h.storeError(w, err, "Question")
		return
	}

	middleware.JSONResponse(w, h.log, http.StatusOK, questionResponse(qc, h.now()))
}

// UpdateQuestion handles PUT /admin/questions/{id}
func (h *AdminHandler) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, h.log, http.StatusNotFound, "Question not found")
		return
	}

	var form models.QuestionForm
	if err := middleware.ParseJSONBody(r, &form); err != nil {
		middleware.ErrorResponse(w, h.log, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := form.Validate(); err != nil {
		h.storeError(w, err, "Question")
		return
	}

	updated, err := h.store.UpdateQuestion(r.Context(), id, form)
	if err != nil {
		h.storeError(w, err, "Question")
		return
	}

	h.log.Info("question updated", zap.String("question_id", id))

	middleware.JSONResponse(w, h.log, http.StatusOK, questionResponse(updated, h.now()))
}

// DeleteQuestion handles DELETE /admin/questions/{id}
// Choices are removed with the question.
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, h.log, http.StatusNotFound, "Question not found")
		return
	}

	if err := h.store.DeleteQuestion(r.Context(), id); err != nil {
		h.storeError(w, err, "Question")
		return
	}

	h.log.Info("question deleted", zap.String("question_id", id))

	w.WriteHeader(http.StatusNoContent)
}

// ListChoices handles GET /admin/choices
func (h *AdminHandler) ListChoices(w http.ResponseWriter, r *http.Request) {
	page, ok := parsePage(r)
	if !ok {
		middleware.ErrorResponse(w, h.log, http.StatusBadRequest, "Invalid page")
		return
	}

	choices, err := h.store.ListChoices(r.Context(), r.URL.Query().Get("question"), page)
	if err != nil {
		h.storeError(w, err, "Choice")
		return
	}

	middleware.JSONResponse(w, h.log, http.StatusOK, choices)
}

// GetChoice handles GET /admin/choices/{id}
func (h *AdminHandler) GetChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, h.log, http.StatusNotFound, "Choice not found")
		return
	}

	choice, err := h.store.Choice(r.Context(), id)
	if err != nil {
		h.storeError(w, err, "Choice")
		return
	}

	middleware.JSONResponse(w, h.log, http.StatusOK, choice)
}

// UpdateChoice handles PUT /admin/choices/{id}
// This is the only place a vote count can be corrected downwards.
func (h *AdminHandler) UpdateChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, h.log, http.StatusNotFound, "Choice not found")
		return
	}

	var req models.UpdateChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, h.log, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := req.Validate(); err != nil {
		h.storeError(w, err, "Choice")
		return
	}

	choice, err := h.store.UpdateChoice(r.Context(), id, req)
	if err != nil {
		h.storeError(w, err, "Choice")
		return
	}

	h.log.Info("choice updated", zap.String("choice_id", id), zap.Int("votes", choice.Votes))

	middleware.JSONResponse(w, h.log, http.StatusOK, choice)
}

// DeleteChoice handles DELETE /admin/choices/{id}
func (h *AdminHandler) DeleteChoice(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, h.log, http.StatusNotFound, "Choice not found")
		return
	}

	if err := h.store.DeleteChoice(r.Context(), id); err != nil {
		h.storeError(w, err, "Choice")
		return
	}

	h.log.Info("choice deleted", zap.String("choice_id", id))

	w.WriteHeader(http.StatusNoContent)
}
