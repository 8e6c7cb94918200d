// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repository

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/baseball-dictionary/models"
)

// Latency is the simulated delay of each sample operation.
type Latency struct {
	Terms   time.Duration
	Submit  time.Duration
	Pending time.Duration
	Action  time.Duration
}

// DefaultLatency mimics a slow-ish backend during local development.
var DefaultLatency = Latency{
	Terms:   300 * time.Millisecond,
	Submit:  500 * time.Millisecond,
	Pending: 500 * time.Millisecond,
	Action:  300 * time.Millisecond,
}

// Sample serves the built-in dataset without a backend. Any non-empty admin
// key is accepted.
type Sample struct {
	mu      sync.Mutex
	latency Latency
	terms   []models.Term
	pending []models.Submission
	nextID  int
	now     func() time.Time
}

func NewSample(latency Latency) *Sample {
	now := time.Now()
	pending := models.SampleSubmissions(now)
	return &Sample{
		latency: latency,
		terms:   models.SampleTerms(),
		pending: pending,
		nextID:  len(pending) + 1,
		now:     time.Now,
	}
}

func (s *Sample) Terms(ctx context.Context) ([]models.Term, error) {
	if err := wait(ctx, "fetch terms", s.latency.Terms); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Term, len(s.terms))
	copy(out, s.terms)
	return out, nil
}

func (s *Sample) Submit(ctx context.Context, req models.SubmitTermRequest) (models.SubmitTermResponse, error) {
	if err := wait(ctx, "submit term", s.latency.Submit); err != nil {
		return models.SubmitTermResponse{}, err
	}
	if strings.TrimSpace(req.Term) == "" || strings.TrimSpace(req.Analogy) == "" || !models.IsKnownCategory(req.Category) {
		return models.SubmitTermResponse{}, &Error{
			Kind: KindValidation, Op: "submit term", Status: http.StatusBadRequest,
			Message: "term, analogy and a known category are required",
		}
	}

	s.mu.Lock()
	id := strconv.Itoa(s.nextID)
	s.nextID++
	s.pending = append(s.pending, models.Submission{
		ID:            id,
		Term:          req.Term,
		Analogy:       req.Analogy,
		Category:      req.Category,
		SubmittedBy:   req.SubmittedBy,
		SubmittedDate: s.now(),
		Email:         req.Email,
	})
	s.mu.Unlock()

	slog.Info("sample submission recorded", "id", id, "term", req.Term)
	return models.SubmitTermResponse{Success: true, Message: "Term submitted successfully", ID: id}, nil
}

func (s *Sample) Pending(ctx context.Context, key string) ([]models.Submission, error) {
	if err := checkKey("load submissions", key); err != nil {
		return nil, err
	}
	if err := wait(ctx, "load submissions", s.latency.Pending); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Submission, len(s.pending))
	copy(out, s.pending)
	return out, nil
}

func (s *Sample) Approve(ctx context.Context, key, id string) error {
	if err := checkKey("approve submission", key); err != nil {
		return err
	}
	if err := wait(ctx, "approve submission", s.latency.Action); err != nil {
		return err
	}
	sub, err := s.take("approve submission", id)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.terms = append(s.terms, models.Term{Term: sub.Term, Analogy: sub.Analogy, Category: sub.Category})
	s.mu.Unlock()

	slog.Info("sample submission approved", "id", id)
	return nil
}

func (s *Sample) Reject(ctx context.Context, key, id, reason string) error {
	if err := checkKey("reject submission", key); err != nil {
		return err
	}
	if err := wait(ctx, "reject submission", s.latency.Action); err != nil {
		return err
	}
	if _, err := s.take("reject submission", id); err != nil {
		return err
	}

	slog.Info("sample submission rejected", "id", id, "reason", reason)
	return nil
}

func (s *Sample) take(op, id string) (models.Submission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, sub := range s.pending {
		if sub.ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return sub, nil
		}
	}
	return models.Submission{}, &Error{Kind: KindServer, Op: op, Status: http.StatusNotFound, Message: "Submission not found"}
}

func checkKey(op, key string) error {
	if strings.TrimSpace(key) == "" {
		return &Error{Kind: KindAuth, Op: op, Status: http.StatusUnauthorized, Message: "Invalid API key"}
	}
	return nil
}

func wait(ctx context.Context, op string, d time.Duration) error {
	if d <= 0 {
		if err := ctx.Err(); err != nil {
			return &Error{Kind: KindNetwork, Op: op, Err: err}
		}
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return &Error{Kind: KindNetwork, Op: op, Err: ctx.Err()}
	case <-timer.C:
		return nil
	}
}
