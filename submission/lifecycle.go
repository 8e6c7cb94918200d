// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/baseball-dictionary/models"
)

// CloseDelay is how long the success message stays up before the form closes.
const CloseDelay = 2 * time.Second

const (
	ButtonSubmit     = "Submit Term"
	ButtonSubmitting = "Submitting..."
	SuccessMessage   = "Thanks! Your term was submitted and is waiting for review."
	FailureMessage   = "Failed to submit term. Please try again."
)

var (
	// ErrInFlight is returned while a submission is already outstanding.
	ErrInFlight = errors.New("submission already in progress")
	// ErrNotComposing is returned when the form is not open.
	ErrNotComposing = errors.New("submission form is not open")
)

type State int

const (
	Idle State = iota
	Composing
	Submitting
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Composing:
		return "composing"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Submitter is the part of the repository the form needs.
type Submitter interface {
	Submit(ctx context.Context, req models.SubmitTermRequest) (models.SubmitTermResponse, error)
}

// Timer is the handle returned by an AfterFunc.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. time.AfterFunc is the default.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Snapshot is what the form renders.
type Snapshot struct {
	State         State
	Open          bool
	SubmitEnabled bool
	ButtonLabel   string
	Message       string
	Err           error
}

type Option func(*Lifecycle)

func WithAfterFunc(fn AfterFunc) Option {
	return func(l *Lifecycle) { l.afterFunc = fn }
}

func WithCloseDelay(d time.Duration) Option {
	return func(l *Lifecycle) { l.closeDelay = d }
}

// Lifecycle drives a single submission form. It is safe for concurrent use;
// the in-flight check is the only duplicate-submission guard.
type Lifecycle struct {
	repo       Submitter
	afterFunc  AfterFunc
	closeDelay time.Duration

	mu      sync.Mutex
	state   State
	message string
	err     error
	gen     uint64
	timer   Timer
}

func New(repo Submitter, opts ...Option) *Lifecycle {
	l := &Lifecycle{
		repo:       repo,
		afterFunc:  realAfterFunc,
		closeDelay: CloseDelay,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Open shows an empty form. Opening an already open form is a no-op.
func (l *Lifecycle) Open() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch l.state {
	case Submitting:
		return ErrInFlight
	case Composing, Failed:
		return nil
	}
	l.resetLocked(Composing)
	return nil
}

// Cancel closes the form without side effects.
func (l *Lifecycle) Cancel() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.state == Submitting {
		return ErrInFlight
	}
	l.resetLocked(Idle)
	return nil
}

// Submit validates the draft and sends it. A validation failure keeps the
// form in Composing and issues no request.
func (l *Lifecycle) Submit(ctx context.Context, draft Draft) (models.SubmitTermResponse, error) {
	l.mu.Lock()
	switch l.state {
	case Submitting:
		l.mu.Unlock()
		return models.SubmitTermResponse{}, ErrInFlight
	case Idle, Succeeded:
		l.mu.Unlock()
		return models.SubmitTermResponse{}, ErrNotComposing
	}

	req := draft.Request()
	if err := Validate(req); err != nil {
		l.state = Composing
		l.message = ""
		l.err = err
		l.mu.Unlock()
		return models.SubmitTermResponse{}, err
	}

	l.state = Submitting
	l.message = ""
	l.err = nil
	l.mu.Unlock()

	resp, err := l.repo.Submit(ctx, req)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		slog.Error("Submission error", "term", req.Term, "error", err)
		l.state = Failed
		l.message = FailureMessage
		l.err = err
		return models.SubmitTermResponse{}, err
	}

	l.state = Succeeded
	l.message = SuccessMessage
	l.gen++
	gen := l.gen
	l.timer = l.afterFunc(l.closeDelay, func() { l.autoClose(gen) })
	return resp, nil
}

// Snapshot returns the current render state.
func (l *Lifecycle) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := Snapshot{
		State:         l.state,
		Open:          l.state != Idle,
		SubmitEnabled: l.state == Composing || l.state == Failed,
		ButtonLabel:   ButtonSubmit,
		Message:       l.message,
		Err:           l.err,
	}
	if l.state == Submitting {
		snap.ButtonLabel = ButtonSubmitting
	}
	return snap
}

// Stop cancels a pending auto-close.
func (l *Lifecycle) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

func (l *Lifecycle) autoClose(gen uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// A form reopened after this timer was armed must stay open
	if l.gen != gen || l.state != Succeeded {
		return
	}
	l.state = Idle
	l.message = ""
	l.err = nil
	l.timer = nil
}

func (l *Lifecycle) resetLocked(state State) {
	l.gen++
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.state = state
	l.message = ""
	l.err = nil
}
