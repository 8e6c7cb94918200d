// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/baseball-dictionary/auth"
	"github.com/danielhkuo/baseball-dictionary/models"
	"github.com/danielhkuo/baseball-dictionary/moderation"
	"github.com/danielhkuo/baseball-dictionary/repository"
	"github.com/danielhkuo/baseball-dictionary/submission"
)

// CookieName is the browser session cookie
const CookieName = "baseball_session"

// LoadErrorMessage replaces the catalog when the term list cannot be loaded
const LoadErrorMessage = "Failed to load terms. Please refresh the page."

//go:embed templates/*.html
var templatesFS embed.FS

// Refresher is implemented by repositories that cache the term list.
type Refresher interface {
	Refresh()
}

type Server struct {
	repo       repository.Repository
	store      moderation.CredentialStore
	tmpl       *template.Template
	sessions   *Registry
	closeDelay time.Duration
	idle       time.Duration
	afterFunc  submission.AfterFunc
	now        func() time.Time
}

type Option func(*Server)

func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) { s.idle = d }
}

// WithCloseDelay sets how long the submit success page stays up.
func WithCloseDelay(d time.Duration) Option {
	return func(s *Server) { s.closeDelay = d }
}

func WithAfterFunc(fn submission.AfterFunc) Option {
	return func(s *Server) { s.afterFunc = fn }
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

func New(repo repository.Repository, store moderation.CredentialStore, opts ...Option) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		repo:       repo,
		store:      store,
		tmpl:       tmpl,
		closeDelay: submission.CloseDelay,
		idle:       DefaultIdleTimeout,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.sessions = newRegistry(s.idle, func(sessionID string) *visitor {
		formOpts := []submission.Option{submission.WithCloseDelay(s.closeDelay)}
		if s.afterFunc != nil {
			formOpts = append(formOpts, submission.WithAfterFunc(s.afterFunc))
		}
		return &visitor{
			form:  submission.New(s.repo, formOpts...),
			admin: moderation.NewController(s.repo, s.store, sessionID),
		}
	})
	return s, nil
}

// Register mounts the page routes on mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", s.index)

	mux.HandleFunc("GET /submit", s.openForm)
	mux.HandleFunc("POST /submit", s.submitForm)
	mux.HandleFunc("POST /submit/cancel", s.cancelForm)

	mux.HandleFunc("GET /admin", s.adminPage)
	mux.HandleFunc("POST /admin/login", s.login)
	mux.HandleFunc("POST /admin/logout", s.logout)
	mux.HandleFunc("GET /admin/approve/{id}", s.confirmApprove)
	mux.HandleFunc("POST /admin/approve/{id}", s.approve)
	mux.HandleFunc("GET /admin/reject/{id}", s.confirmReject)
	mux.HandleFunc("POST /admin/reject/{id}", s.reject)
}

// Sessions exposes the session registry.
func (s *Server) Sessions() *Registry {
	return s.sessions
}

// Run evicts idle sessions until ctx is done.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(s.idle / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sessions.Sweep(s.now()); n > 0 {
				slog.Debug("evicted idle sessions", "count", n, "live", s.sessions.Len())
			}
		}
	}
}

// visitor returns the caller's session state. Only ids this server issued
// are honoured: a live session, or an evicted one whose admin key is still
// in the credential store. Any other cookie gets a fresh id.
func (s *Server) visitor(w http.ResponseWriter, r *http.Request) (*visitor, error) {
	now := s.now()
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		if v, ok := s.sessions.lookup(c.Value, now); ok {
			return v, nil
		}
		_, stored, err := s.store.Lookup(r.Context(), c.Value)
		if err != nil {
			slog.Error("failed to look up session", "error", err)
		} else if stored {
			return s.sessions.get(c.Value, now), nil
		}
	}

	id, err := s.issueSession(w)
	if err != nil {
		return nil, err
	}
	return s.sessions.get(id, now), nil
}

// rotateSession gives v a new session id and cookie.
func (s *Server) rotateSession(w http.ResponseWriter, r *http.Request, v *visitor) error {
	id, err := s.issueSession(w)
	if err != nil {
		return err
	}
	oldID := v.admin.SessionID()
	if err := v.admin.Rotate(r.Context(), id); err != nil {
		return err
	}
	s.sessions.rekey(oldID, id)
	return nil
}

func (s *Server) issueSession(w http.ResponseWriter) (string, error) {
	id, err := auth.GenerateSessionID()
	if err != nil {
		return "", err
	}
	// No Expires: the cookie lives as long as the browser session
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id, nil
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"categoryLabel": func(c string) string {
			if c == models.CategoryAll {
				return "All"
			}
			return c
		},
		"categoryURL": func(category, query string) string {
			v := url.Values{}
			if category != models.CategoryAll {
				v.Set("category", category)
			}
			if query != "" {
				v.Set("q", query)
			}
			if len(v) == 0 {
				return "/"
			}
			return "/?" + v.Encode()
		},
		"date": func(t time.Time) string {
			return t.Local().Format("Jan 2, 2006")
		},
		"ago": humanize.Time,
	}

	return template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
}
