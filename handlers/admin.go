// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/baseball-dictionary/db"
	"github.com/danielhkuo/baseball-dictionary/middleware"
	"github.com/danielhkuo/baseball-dictionary/models"
	"github.com/danielhkuo/baseball-dictionary/notify"
	"github.com/danielhkuo/baseball-dictionary/search"
)

type AdminHandler struct {
	db       *sql.DB
	search   *search.Service
	notifier notify.Notifier
}

func NewAdminHandler(db *sql.DB, search *search.Service, notifier notify.Notifier) *AdminHandler {
	return &AdminHandler{db: db, search: search, notifier: notifier}
}

// ListPending handles GET /api/admin/submissions
func (h *AdminHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), `
		SELECT id, term, analogy, category, submitted_by, email, submitted_at
		FROM submission
		WHERE status = $1
		ORDER BY submitted_at ASC
	`, models.StatusPending)
	if err != nil {
		slog.Error("failed to query submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	subs := []models.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			slog.Error("failed to scan submission", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		subs = append(subs, sub)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to iterate submissions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, subs)
}

// Approve handles POST /api/admin/approve/{id}
func (h *AdminHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	ctx := r.Context()
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	sub, ok := h.resolve(ctx, w, tx, id, models.StatusApproved, nil, now)
	if !ok {
		return
	}

	row, err := db.InsertTerm(ctx, tx, models.Term{Term: sub.Term, Analogy: sub.Analogy, Category: sub.Category}, now)
	if err != nil {
		slog.Error("failed to insert approved term", "submission_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to approve submission")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit approval", "submission_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to approve submission")
		return
	}

	slog.Info("submission approved", "submission_id", id, "term", sub.Term, "position", row.Position)

	h.search.IndexTerm(search.TermRecord{
		ID:       row.ID,
		Term:     sub.Term,
		Analogy:  sub.Analogy,
		Category: sub.Category,
		Position: row.Position,
	})
	h.notifier.SubmissionApproved(sub)

	middleware.JSONResponse(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Message: "Submission approved",
	})
}

// Reject handles POST /api/admin/reject/{id}
func (h *AdminHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	// The body is optional
	var body models.RejectRequest
	if err := middleware.ParseJSONBody(w, r, &body); err != nil && !errors.Is(err, io.EOF) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	reason := strings.TrimSpace(body.Reason)
	var reasonArg *string
	if reason != "" {
		reasonArg = &reason
	}

	ctx := r.Context()
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	sub, ok := h.resolve(ctx, w, tx, id, models.StatusRejected, reasonArg, time.Now().UTC())
	if !ok {
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit rejection", "submission_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reject submission")
		return
	}

	slog.Info("submission rejected", "submission_id", id, "term", sub.Term, "has_reason", reason != "")
	h.notifier.SubmissionRejected(sub, reason)

	middleware.JSONResponse(w, http.StatusOK, models.ActionResponse{
		Success: true,
		Message: "Submission rejected",
	})
}

// resolve moves a pending submission to status inside tx and returns it.
// The status guard sits in the UPDATE itself, so of two concurrent reviews
// only one changes the row. It writes the error response and returns false
// when the submission is missing or already reviewed.
func (h *AdminHandler) resolve(ctx context.Context, w http.ResponseWriter, tx *sql.Tx, id, status string, reason *string, now time.Time) (models.Submission, bool) {
	res, err := tx.ExecContext(ctx, `
		UPDATE submission SET status = $1, reason = $2, reviewed_at = $3
		WHERE id = $4 AND status = $5
	`, status, reason, now, id, models.StatusPending)
	if err != nil {
		slog.Error("failed to update submission", "submission_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Submission{}, false
	}
	n, err := res.RowsAffected()
	if err != nil {
		slog.Error("failed to read affected rows", "submission_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Submission{}, false
	}
	if n != 1 {
		h.writeUnresolvable(ctx, w, tx, id)
		return models.Submission{}, false
	}

	sub, err := scanSubmission(tx.QueryRowContext(ctx, `
		SELECT id, term, analogy, category, submitted_by, email, submitted_at
		FROM submission
		WHERE id = $1
	`, id))
	if err != nil {
		slog.Error("failed to query submission", "submission_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.Submission{}, false
	}
	return sub, true
}

// writeUnresolvable answers 404 for an unknown id and 409 for one that was
// already reviewed.
func (h *AdminHandler) writeUnresolvable(ctx context.Context, w http.ResponseWriter, tx *sql.Tx, id string) {
	var current string
	err := tx.QueryRowContext(ctx, `SELECT status FROM submission WHERE id = $1`, id).Scan(&current)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Submission not found")
		return
	}
	if err != nil {
		slog.Error("failed to query submission", "submission_id", id, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.ErrorResponse(w, http.StatusConflict, "Submission already "+current)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (models.Submission, error) {
	var (
		sub   models.Submission
		email sql.NullString
	)
	if err := row.Scan(&sub.ID, &sub.Term, &sub.Analogy, &sub.Category, &sub.SubmittedBy, &email, &sub.SubmittedDate); err != nil {
		return models.Submission{}, err
	}
	if email.Valid {
		sub.Email = &email.String
	}
	return sub, nil
}
