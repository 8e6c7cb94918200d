// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/baseball-dictionary/db"
	"github.com/danielhkuo/baseball-dictionary/middleware"
	"github.com/danielhkuo/baseball-dictionary/models"
	"github.com/danielhkuo/baseball-dictionary/search"
)

type TermHandler struct {
	db     *sql.DB
	search *search.Service
}

func NewTermHandler(db *sql.DB, search *search.Service) *TermHandler {
	return &TermHandler{db: db, search: search}
}

// ListTerms handles GET /api/terms
func (h *TermHandler) ListTerms(w http.ResponseWriter, r *http.Request) {
	terms, err := db.LoadTerms(r.Context(), h.db)
	if err != nil {
		slog.Error("failed to load terms", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load terms")
		return
	}
	if terms == nil {
		terms = []models.Term{}
	}

	middleware.JSONResponse(w, http.StatusOK, terms)
}

// Search handles GET /api/search?q=&category=
func (h *TermHandler) Search(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := search.Query{
		Text:     params.Get("q"),
		Category: params.Get("category"),
	}

	middleware.JSONResponse(w, http.StatusOK, h.search.Search(r.Context(), q))
}
