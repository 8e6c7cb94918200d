// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package moderation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/danielhkuo/baseball-dictionary/models"
)

const (
	ApprovePrompt        = "Are you sure you want to approve this submission?"
	RejectPrompt         = "Enter rejection reason (optional):"
	EmptyMessage         = "No pending submissions"
	LoadErrorMessage     = "Error loading submissions"
	LoginFailedMessage   = "Invalid admin key"
	ApproveFailedMessage = "Failed to approve submission. Please try again."
	RejectFailedMessage  = "Failed to reject submission. Please try again."
)

var (
	ErrLoginFailed = errors.New("admin login failed")
	ErrNotLoggedIn = errors.New("admin is not logged in")
	ErrCancelled   = errors.New("action cancelled")
)

// Moderator is the part of the repository moderation needs.
type Moderator interface {
	Pending(ctx context.Context, key string) ([]models.Submission, error)
	Approve(ctx context.Context, key, id string) error
	Reject(ctx context.Context, key, id, reason string) error
}

// Confirmer asks a yes/no question.
type Confirmer func(message string) bool

// Prompter asks for optional free text. ok is false when the prompt was
// cancelled.
type Prompter func(message string) (answer string, ok bool)

// Confirmed returns a Confirmer with a fixed answer.
func Confirmed(answer bool) Confirmer {
	return func(string) bool { return answer }
}

// Answered returns a Prompter with a fixed answer.
func Answered(answer string, ok bool) Prompter {
	return func(string) (string, bool) { return answer, ok }
}

type ViewStatus int

const (
	ViewNone ViewStatus = iota
	ViewLoading
	ViewLoaded
	ViewEmpty
	ViewError
)

func (s ViewStatus) String() string {
	switch s {
	case ViewLoading:
		return "loading"
	case ViewLoaded:
		return "loaded"
	case ViewEmpty:
		return "empty"
	case ViewError:
		return "error"
	default:
		return "none"
	}
}

// PendingView is the rendered state of the pending queue.
type PendingView struct {
	Status      ViewStatus
	Submissions []models.Submission
	Message     string
}

// State is everything the admin page renders.
type State struct {
	LoggedIn   bool
	LoginError string
	View       PendingView
	Alert      string
}

// Controller is one admin session. Loads are tagged with a generation so only
// the most recently issued load publishes its result.
type Controller struct {
	repo      Moderator
	store     CredentialStore
	sessionID string

	mu         sync.Mutex
	key        string
	loggedIn   bool
	loginError string
	view       PendingView
	alert      string
	gen        uint64
}

func NewController(repo Moderator, store CredentialStore, sessionID string) *Controller {
	return &Controller{repo: repo, store: store, sessionID: sessionID}
}

// Restore logs in from a previously persisted key.
func (c *Controller) Restore(ctx context.Context) (bool, error) {
	key, ok, err := c.store.Lookup(ctx, c.SessionID())
	if err != nil {
		return false, fmt.Errorf("failed to restore admin key: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ok && key != "" {
		c.key = key
		c.loggedIn = true
	}
	return c.loggedIn, nil
}

// Login verifies key against the backend by listing pending submissions. The
// key is persisted only on success.
func (c *Controller) Login(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		c.setLoginError(LoginFailedMessage)
		return ErrLoginFailed
	}

	subs, err := c.repo.Pending(ctx, key)
	if err != nil {
		slog.Error("Login error", "error", err)
		c.setLoginError(LoginFailedMessage)
		return fmt.Errorf("%w: %w", ErrLoginFailed, err)
	}

	if err := c.store.Save(ctx, c.SessionID(), key); err != nil {
		c.setLoginError(LoginFailedMessage)
		return fmt.Errorf("failed to persist admin key: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = key
	c.loggedIn = true
	c.loginError = ""
	c.alert = ""
	c.gen++
	c.view = viewFor(subs, nil)
	return nil
}

// Logout clears the persisted key. In-flight loads are discarded.
func (c *Controller) Logout(ctx context.Context) error {
	c.mu.Lock()
	c.key = ""
	c.loggedIn = false
	c.loginError = ""
	c.alert = ""
	c.view = PendingView{}
	c.gen++
	sessionID := c.sessionID
	c.mu.Unlock()

	if err := c.store.Revoke(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to clear admin key: %w", err)
	}
	return nil
}

// SessionID returns the session the credential is persisted under.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Rotate moves the controller to a new session id. A persisted key is saved
// under the new id before the old one is revoked.
func (c *Controller) Rotate(ctx context.Context, sessionID string) error {
	c.mu.Lock()
	oldID, key, loggedIn := c.sessionID, c.key, c.loggedIn
	c.mu.Unlock()

	if loggedIn {
		if err := c.store.Save(ctx, sessionID, key); err != nil {
			return fmt.Errorf("failed to persist admin key: %w", err)
		}
	}

	c.mu.Lock()
	c.sessionID = sessionID
	c.mu.Unlock()

	if err := c.store.Revoke(ctx, oldID); err != nil {
		return fmt.Errorf("failed to clear admin key: %w", err)
	}
	return nil
}

// Load fetches the pending queue. The returned view is this call's outcome;
// it is published only if no newer load was issued meanwhile.
func (c *Controller) Load(ctx context.Context) (PendingView, error) {
	c.mu.Lock()
	if !c.loggedIn {
		c.mu.Unlock()
		return PendingView{}, ErrNotLoggedIn
	}
	c.gen++
	gen := c.gen
	key := c.key
	c.view = PendingView{Status: ViewLoading}
	c.mu.Unlock()

	subs, err := c.repo.Pending(ctx, key)
	if err != nil {
		slog.Error("Error loading submissions", "error", err)
	}
	view := viewFor(subs, err)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.view = view
	}
	return view, nil
}

// Approve asks for confirmation, then approves id and reloads the queue.
func (c *Controller) Approve(ctx context.Context, id string, confirm Confirmer) error {
	key, err := c.actionKey()
	if err != nil {
		return err
	}
	if !confirm(ApprovePrompt) {
		return ErrCancelled
	}

	if err := c.repo.Approve(ctx, key, id); err != nil {
		slog.Error("Error approving submission", "id", id, "error", err)
		c.setAlert(ApproveFailedMessage)
		return err
	}

	c.setAlert("")
	_, err = c.Load(ctx)
	return err
}

// Reject asks for an optional reason, then rejects id and reloads the queue.
func (c *Controller) Reject(ctx context.Context, id string, prompt Prompter) error {
	key, err := c.actionKey()
	if err != nil {
		return err
	}
	reason, ok := prompt(RejectPrompt)
	if !ok {
		return ErrCancelled
	}

	if err := c.repo.Reject(ctx, key, id, strings.TrimSpace(reason)); err != nil {
		slog.Error("Error rejecting submission", "id", id, "error", err)
		c.setAlert(RejectFailedMessage)
		return err
	}

	c.setAlert("")
	_, err = c.Load(ctx)
	return err
}

// Find returns a submission from the current view.
func (c *Controller) Find(id string) (models.Submission, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, sub := range c.view.Submissions {
		if sub.ID == id {
			return sub, true
		}
	}
	return models.Submission{}, false
}

// DismissAlert clears the action alert.
func (c *Controller) DismissAlert() {
	c.setAlert("")
}

// DismissLoginError clears the inline login error.
func (c *Controller) DismissLoginError() {
	c.setLoginError("")
}

func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	view := c.view
	view.Submissions = append([]models.Submission(nil), c.view.Submissions...)
	return State{
		LoggedIn:   c.loggedIn,
		LoginError: c.loginError,
		View:       view,
		Alert:      c.alert,
	}
}

func (c *Controller) actionKey() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loggedIn {
		return "", ErrNotLoggedIn
	}
	return c.key, nil
}

func (c *Controller) setAlert(msg string) {
	c.mu.Lock()
	c.alert = msg
	c.mu.Unlock()
}

func (c *Controller) setLoginError(msg string) {
	c.mu.Lock()
	c.loginError = msg
	c.mu.Unlock()
}

func viewFor(subs []models.Submission, err error) PendingView {
	switch {
	case err != nil:
		return PendingView{Status: ViewError, Message: LoadErrorMessage}
	case len(subs) == 0:
		return PendingView{Status: ViewEmpty, Message: EmptyMessage}
	default:
		return PendingView{Status: ViewLoaded, Submissions: subs}
	}
}
