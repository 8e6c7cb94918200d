// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"context"
	"database/sql"
	"net/http"

	"github.com/danielhkuo/baseball-dictionary/auth"
	"github.com/danielhkuo/baseball-dictionary/cliparse"
	"github.com/danielhkuo/baseball-dictionary/db"
	"github.com/danielhkuo/baseball-dictionary/handlers"
	"github.com/danielhkuo/baseball-dictionary/middleware"
	"github.com/danielhkuo/baseball-dictionary/models"
	"github.com/danielhkuo/baseball-dictionary/notify"
	"github.com/danielhkuo/baseball-dictionary/search"
)

// Services are the collaborators the API handlers share. Nil fields get
// database-backed or no-op defaults.
type Services struct {
	Search   *search.Service
	Notifier notify.Notifier
	Verifier middleware.KeyVerifier
}

// plainKey verifies against cfg.AdminAPIKey when no verifier is injected
type plainKey string

func (k plainKey) Verify(provided string) error {
	return auth.ValidateAdminKey(provided, string(k))
}

func NewRouter(conn *sql.DB, cfg cliparse.Config, svc Services) *http.ServeMux {
	mux := http.NewServeMux()

	if svc.Search == nil {
		svc.Search = search.NewService(nil, search.TermSourceFunc(func(ctx context.Context) ([]models.Term, error) {
			return db.LoadTerms(ctx, conn)
		}))
	}
	if svc.Notifier == nil {
		svc.Notifier = notify.Nop{}
	}
	if svc.Verifier == nil {
		svc.Verifier = plainKey(cfg.AdminAPIKey)
	}

	// Initialize handlers
	termHandler := handlers.NewTermHandler(conn, svc.Search)
	submissionHandler := handlers.NewSubmissionHandler(conn, svc.Notifier)
	adminHandler := handlers.NewAdminHandler(conn, svc.Search, svc.Notifier)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdminKey(svc.Verifier, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Catalog (public)
	mux.HandleFunc("GET /api/terms", middleware.WithLogging(termHandler.ListTerms))
	mux.HandleFunc("GET /api/search", middleware.WithLogging(termHandler.Search))

	// Suggestions (public)
	mux.HandleFunc("POST /api/submit", middleware.WithLogging(submissionHandler.Submit))

	// Review queue (admin key)
	mux.HandleFunc("GET /api/admin/submissions", admin(adminHandler.ListPending))
	mux.HandleFunc("POST /api/admin/approve/{id}", admin(adminHandler.Approve))
	mux.HandleFunc("POST /api/admin/reject/{id}", admin(adminHandler.Reject))

	// API root
	mux.HandleFunc("GET /api/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("baseball-dictionary API v1"))
	})

	return mux
}
