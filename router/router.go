// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/danielhkuo/premios/cliparse"
	"github.com/danielhkuo/premios/handlers"
	"github.com/danielhkuo/premios/middleware"
	"github.com/danielhkuo/premios/store"
)

func NewRouter(st *store.Store, cfg cliparse.Config, log *zap.Logger, now func() time.Time) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	// Initialize handlers
	pollsHandler := handlers.NewPollsHandler(st, log, now)
	adminHandler := handlers.NewAdminHandler(st, log, now)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Public pages
	r.Get("/polls/", middleware.WithLogging(log, pollsHandler.Index))
	r.Get("/polls/{id}/", middleware.WithLogging(log, pollsHandler.Detail))
	r.Get("/polls/{id}/results/", middleware.WithLogging(log, pollsHandler.Results))
	r.Post("/polls/{id}/vote/", middleware.WithLogging(log, pollsHandler.Vote))

	// Administration (only when a key is configured)
	if cfg.AdminKey != "" {
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.CORS)
			r.Use(middleware.RequireAdmin(cfg.AdminKey, log))

			r.Get("/questions", middleware.WithLogging(log, adminHandler.ListQuestions))
			r.Post("/questions", middleware.WithLogging(log, adminHandler.CreateQuestion))
			r.Get("/questions/{id}", middleware.WithLogging(log, adminHandler.GetQuestion))
			r.Put("/questions/{id}", middleware.WithLogging(log, adminHandler.UpdateQuestion))
			r.Delete("/questions/{id}", middleware.WithLogging(log, adminHandler.DeleteQuestion))

			r.Get("/choices", middleware.WithLogging(log, adminHandler.ListChoices))
			r.Get("/choices/{id}", middleware.WithLogging(log, adminHandler.GetChoice))
			r.Put("/choices/{id}", middleware.WithLogging(log, adminHandler.UpdateChoice))
			r.Delete("/choices/{id}", middleware.WithLogging(log, adminHandler.DeleteChoice))
		})
	}

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/polls/", http.StatusFound)
	})

	return r
}
