// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/baseball-dictionary/auth"
	"github.com/danielhkuo/baseball-dictionary/middleware"
	"github.com/danielhkuo/baseball-dictionary/models"
	"github.com/danielhkuo/baseball-dictionary/notify"
	"github.com/danielhkuo/baseball-dictionary/repository"
	"github.com/danielhkuo/baseball-dictionary/submission"
)

type SubmissionHandler struct {
	db       *sql.DB
	notifier notify.Notifier
}

func NewSubmissionHandler(db *sql.DB, notifier notify.Notifier) *SubmissionHandler {
	return &SubmissionHandler{db: db, notifier: notifier}
}

// Submit handles POST /api/submit
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var body models.SubmitTermRequest
	if err := middleware.ParseJSONBody(w, r, &body); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Same defaults as the form: blank submitter is "Anonymous", blank email is null
	draft := submission.Draft{
		Term:        body.Term,
		Analogy:     body.Analogy,
		Category:    body.Category,
		SubmittedBy: body.SubmittedBy,
	}
	if body.Email != nil {
		draft.Email = *body.Email
	}
	req := draft.Request()

	if err := submission.Validate(req); err != nil {
		var repoErr *repository.Error
		msg := err.Error()
		if errors.As(err, &repoErr) {
			msg = repoErr.Message
		}
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	sub := models.Submission{
		ID:            auth.GenerateID(),
		Term:          req.Term,
		Analogy:       req.Analogy,
		Category:      req.Category,
		SubmittedBy:   req.SubmittedBy,
		SubmittedDate: time.Now().UTC(),
		Email:         req.Email,
	}

	_, err := h.db.ExecContext(r.Context(), `
		INSERT INTO submission (id, term, analogy, category, submitted_by, email, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, sub.ID, sub.Term, sub.Analogy, sub.Category, sub.SubmittedBy, sub.Email, models.StatusPending, sub.SubmittedDate)
	if err != nil {
		slog.Error("failed to insert submission", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit term")
		return
	}

	slog.Info("term submitted", "submission_id", sub.ID, "term", sub.Term, "category", sub.Category)
	h.notifier.SubmissionReceived(sub)

	middleware.JSONResponse(w, http.StatusOK, models.SubmitTermResponse{
		Success: true,
		Message: "Term submitted successfully",
		ID:      sub.ID,
	})
}
