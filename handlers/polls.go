// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danielhkuo/premios/models"
	"github.com/danielhkuo/premios/store"
)

type PollsHandler struct {
	store *store.Store
	log   *zap.Logger
	now   func() time.Time
}

func NewPollsHandler(st *store.Store, log *zap.Logger, now func() time.Time) *PollsHandler {
	return &PollsHandler{store: st, log: log, now: now}
}

// pathID returns the {id} URL parameter when it is a well-formed identifier.
func pathID(r *http.Request) (string, bool) {
	id := chi.URLParam(r, "id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// Index handles GET /polls/
func (h *PollsHandler) Index(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	questions, err := h.store.LatestQuestions(r.Context(), now, models.LatestQuestionsLimit)
	if err != nil {
		h.log.Error("failed to query latest questions", zap.Error(err))
		h.renderStatus(w, http.StatusInternalServerError)
		return
	}

	h.render(w, http.StatusOK, "index", indexPage{
		LatestQuestionList: questions,
		Now:                now,
	})
}

// Detail handles GET /polls/{id}/
// Questions scheduled for the future are reported as missing.
func (h *PollsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	page, ok := h.visibleQuestion(w, r)
	if !ok {
		return
	}
	h.render(w, http.StatusOK, "detail", page)
}

// visibleQuestion loads the question named in the URL with its choices and
// writes a 404/500 itself when it cannot be shown.
func (h *PollsHandler) visibleQuestion(w http.ResponseWriter, r *http.Request) (questionPage, bool) {
	now := h.now()

	id, ok := pathID(r)
	if !ok {
		h.renderStatus(w, http.StatusNotFound)
		return questionPage{}, false
	}

	qc, err := h.store.QuestionWithChoices(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.renderStatus(w, http.StatusNotFound)
		return questionPage{}, false
	}
	if err != nil {
		h.log.Error("failed to query question", zap.String("question_id", id), zap.Error(err))
		h.renderStatus(w, http.StatusInternalServerError)
		return questionPage{}, false
	}

	if !qc.Question.IsListable(now) {
		h.renderStatus(w, http.StatusNotFound)
		return questionPage{}, false
	}

	return questionPage{Question: qc.Question, Choices: qc.Choices, Now: now}, true
}

// Results handles GET /polls/{id}/results/
// Results need at least two choices to mean anything.
func (h *PollsHandler) Results(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.renderStatus(w, http.StatusNotFound)
		return
	}

	qc, err := h.store.QuestionWithChoices(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		h.renderStatus(w, http.StatusNotFound)
		return
	}
	if err != nil {
		h.log.Error("failed to query question", zap.String("question_id", id), zap.Error(err))
		h.renderStatus(w, http.StatusInternalServerError)
		return
	}

	if !models.HasResults(len(qc.Choices)) {
		h.renderStatus(w, http.StatusNotFound)
		return
	}

	h.render(w, http.StatusOK, "results", questionPage{
		Question: qc.Question,
		Choices:  qc.Choices,
		Now:      h.now(),
	})
}

// Vote handles POST /polls/{id}/vote/
func (h *PollsHandler) Vote(w http.ResponseWriter, r *http.Request) {
	page, ok := h.visibleQuestion(w, r)
	if !ok {
		return
	}

	choiceID := r.PostFormValue("choice")
	if choiceID == "" {
		page.ErrorMessage = NoSelectionMessage
		h.render(w, http.StatusOK, "detail", page)
		return
	}

	err := h.store.Vote(r.Context(), page.Question.ID, choiceID)
	if errors.Is(err, store.ErrNotFound) {
		page.ErrorMessage = NoSelectionMessage
		h.render(w, http.StatusOK, "detail", page)
		return
	}
	if err != nil {
		h.log.Error("failed to record vote", zap.String("question_id", page.Question.ID), zap.Error(err))
		h.renderStatus(w, http.StatusInternalServerError)
		return
	}

	h.log.Info("vote recorded", zap.String("question_id", page.Question.ID), zap.String("choice_id", choiceID))

	// Redirect so a browser refresh does not vote twice
	http.Redirect(w, r, "/polls/"+page.Question.ID+"/results/", http.StatusFound)
}
