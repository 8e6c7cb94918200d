// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/baseball-dictionary/catalog"
	"github.com/danielhkuo/baseball-dictionary/models"
	"github.com/danielhkuo/baseball-dictionary/moderation"
	"github.com/danielhkuo/baseball-dictionary/repository"
	"github.com/danielhkuo/baseball-dictionary/submission"
)

type page struct {
	Title   string
	Refresh string
}

type indexData struct {
	page
	Categories []string
	Selected   string
	Query      string
	View       catalog.View
	LoadError  string
	NoResults  string
}

type submitData struct {
	page
	Categories []string
	Form       submission.Snapshot
	Draft      submission.Draft
	Error      string
}

type adminData struct {
	page
	Admin moderation.State
}

type confirmData struct {
	page
	Prompt     string
	Submission models.Submission
	Reason     bool
}

// index handles GET /
func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = models.CategoryAll
	}
	query := r.URL.Query().Get("q")

	data := indexData{
		page:       page{Title: "Dictionary"},
		Categories: append([]string{models.CategoryAll}, models.Categories()...),
		Selected:   category,
		Query:      query,
		NoResults:  catalog.NoResultsMessage,
	}

	terms, err := s.repo.Terms(r.Context())
	if err != nil {
		slog.Error("Error loading terms", "error", err)
		data.LoadError = LoadErrorMessage
		s.render(w, http.StatusOK, "index.html", data)
		return
	}

	data.View = catalog.Filter(terms, category, query)
	s.render(w, http.StatusOK, "index.html", data)
}

// openForm handles GET /submit
func (s *Server) openForm(w http.ResponseWriter, r *http.Request) {
	v, err := s.visitor(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}

	status := http.StatusOK
	if err := v.form.Open(); errors.Is(err, submission.ErrInFlight) {
		status = http.StatusConflict
	}
	s.renderForm(w, status, v.form.Snapshot(), submission.Draft{}, "")
}

// submitForm handles POST /submit
func (s *Server) submitForm(w http.ResponseWriter, r *http.Request) {
	v, err := s.visitor(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	draft := submission.Draft{
		Term:        r.FormValue("term"),
		Analogy:     r.FormValue("analogy"),
		Category:    r.FormValue("category"),
		SubmittedBy: r.FormValue("submittedBy"),
		Email:       r.FormValue("email"),
	}

	_, err = v.form.Submit(r.Context(), draft)
	switch {
	case err == nil:
		s.renderForm(w, http.StatusOK, v.form.Snapshot(), submission.Draft{}, "")
	case errors.Is(err, submission.ErrInFlight):
		s.renderForm(w, http.StatusConflict, v.form.Snapshot(), draft, "")
	case errors.Is(err, submission.ErrNotComposing):
		http.Redirect(w, r, "/submit", http.StatusSeeOther)
	case repository.KindOf(err) == repository.KindValidation:
		var repoErr *repository.Error
		msg := err.Error()
		if errors.As(err, &repoErr) {
			msg = repoErr.Message
		}
		s.renderForm(w, http.StatusBadRequest, v.form.Snapshot(), draft, msg)
	default:
		// Failed keeps the draft so the user can retry
		s.renderForm(w, http.StatusBadGateway, v.form.Snapshot(), draft, "")
	}
}

// cancelForm handles POST /submit/cancel
func (s *Server) cancelForm(w http.ResponseWriter, r *http.Request) {
	v, err := s.visitor(w, r)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	if err := v.form.Cancel(); err != nil {
		s.renderForm(w, http.StatusConflict, v.form.Snapshot(), submission.Draft{}, "")
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) renderForm(w http.ResponseWriter, status int, snap submission.Snapshot, draft submission.Draft, errMsg string) {
	data := submitData{
		page:       page{Title: "Submit a Term"},
		Categories: models.Categories(),
		Form:       snap,
		Draft:      draft,
		Error:      errMsg,
	}
	if snap.State == submission.Succeeded {
		data.Refresh = strconv.Itoa(int(s.closeDelay.Seconds()))
	}
	s.render(w, status, "submit.html", data)
}

// adminPage handles GET /admin
func (s *Server) adminPage(w http.ResponseWriter, r *http.Request) {
	v, ok := s.adminVisitor(w, r)
	if !ok {
		return
	}

	if v.admin.Snapshot().LoggedIn {
		if _, err := v.admin.Load(r.Context()); err != nil {
			slog.Error("Error loading submissions", "error", err)
		}
	}
	s.renderAdmin(w, http.StatusOK, v)
}

// login handles POST /admin/login
func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	v, ok := s.adminVisitor(w, r)
	if !ok {
		return
	}

	// Every login attempt moves to a new id, so an id known beforehand
	// never carries the admin key
	if err := s.rotateSession(w, r, v); err != nil {
		s.sessionError(w, err)
		return
	}
	if err := v.admin.Login(r.Context(), r.FormValue("key")); err != nil {
		s.renderAdmin(w, http.StatusUnauthorized, v)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// logout handles POST /admin/logout
func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	v, ok := s.adminVisitor(w, r)
	if !ok {
		return
	}
	if err := v.admin.Logout(r.Context()); err != nil {
		slog.Error("Logout error", "error", err)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// confirmApprove handles GET /admin/approve/{id}
func (s *Server) confirmApprove(w http.ResponseWriter, r *http.Request) {
	s.confirmPage(w, r, "Approve Submission", moderation.ApprovePrompt, false)
}

// confirmReject handles GET /admin/reject/{id}
func (s *Server) confirmReject(w http.ResponseWriter, r *http.Request) {
	s.confirmPage(w, r, "Reject Submission", moderation.RejectPrompt, true)
}

func (s *Server) confirmPage(w http.ResponseWriter, r *http.Request, title, prompt string, reason bool) {
	v, ok := s.adminVisitor(w, r)
	if !ok {
		return
	}
	if !v.admin.Snapshot().LoggedIn {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}

	id := r.PathValue("id")
	sub, found := v.admin.Find(id)
	if !found {
		// The queue may not have been loaded in this session yet
		if _, err := v.admin.Load(r.Context()); err != nil {
			slog.Error("Error loading submissions", "error", err)
		}
		sub, found = v.admin.Find(id)
	}
	if !found {
		http.Error(w, "Submission not found", http.StatusNotFound)
		return
	}

	s.render(w, http.StatusOK, "confirm.html", confirmData{
		page:       page{Title: title},
		Prompt:     prompt,
		Submission: sub,
		Reason:     reason,
	})
}

// approve handles POST /admin/approve/{id}
func (s *Server) approve(w http.ResponseWriter, r *http.Request) {
	v, ok := s.adminVisitor(w, r)
	if !ok {
		return
	}

	confirmed := r.FormValue("confirm") == "yes"
	err := v.admin.Approve(r.Context(), r.PathValue("id"), moderation.Confirmed(confirmed))
	switch {
	case err == nil:
		if c, ok := s.repo.(Refresher); ok {
			c.Refresh()
		}
	case !errors.Is(err, moderation.ErrCancelled):
		slog.Error("Error approving submission", "error", err)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// reject handles POST /admin/reject/{id}
func (s *Server) reject(w http.ResponseWriter, r *http.Request) {
	v, ok := s.adminVisitor(w, r)
	if !ok {
		return
	}

	answer := moderation.Answered(r.FormValue("reason"), r.FormValue("action") == "reject")
	err := v.admin.Reject(r.Context(), r.PathValue("id"), answer)
	if err != nil && !errors.Is(err, moderation.ErrCancelled) {
		slog.Error("Error rejecting submission", "error", err)
	}
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// adminVisitor returns the session, logging it back in from the credential
// store the first time this process sees it.
func (s *Server) adminVisitor(w http.ResponseWriter, r *http.Request) (*visitor, bool) {
	v, err := s.visitor(w, r)
	if err != nil {
		s.sessionError(w, err)
		return nil, false
	}

	v.restore.Do(func() {
		if _, err := v.admin.Restore(r.Context()); err != nil {
			slog.Error("failed to restore admin session", "error", err)
		}
	})
	return v, true
}

// renderAdmin shows the admin page. Alerts and login errors are shown once.
func (s *Server) renderAdmin(w http.ResponseWriter, status int, v *visitor) {
	state := v.admin.Snapshot()
	v.admin.DismissAlert()
	v.admin.DismissLoginError()
	s.render(w, status, "admin.html", adminData{
		page:  page{Title: "Admin"},
		Admin: state,
	})
}

func (s *Server) sessionError(w http.ResponseWriter, err error) {
	slog.Error("failed to set up session", "error", err)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
