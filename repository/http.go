// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/baseball-dictionary/models"
)

// APIKeyHeader carries the admin key on moderation requests.
const APIKeyHeader = "X-API-Key"

// DefaultTimeout bounds every call made by an HTTP repository built without
// its own client.
const DefaultTimeout = 10 * time.Second

// HTTP talks to the dictionary REST API.
type HTTP struct {
	baseURL string
	client  *http.Client
}

// NewHTTP returns a repository rooted at baseURL (for example
// "https://baseball.example.com/api"). A nil client gets DefaultTimeout.
func NewHTTP(baseURL string, client *http.Client) *HTTP {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

// BaseURL returns the API root this repository calls.
func (h *HTTP) BaseURL() string {
	return h.baseURL
}

// Terms handles GET /terms
func (h *HTTP) Terms(ctx context.Context) ([]models.Term, error) {
	var terms []models.Term
	if err := h.do(ctx, "fetch terms", http.MethodGet, "/terms", "", nil, &terms); err != nil {
		return nil, err
	}
	if terms == nil {
		terms = []models.Term{}
	}
	return terms, nil
}

// Submit handles POST /submit
func (h *HTTP) Submit(ctx context.Context, req models.SubmitTermRequest) (models.SubmitTermResponse, error) {
	var resp models.SubmitTermResponse
	if err := h.do(ctx, "submit term", http.MethodPost, "/submit", "", req, &resp); err != nil {
		return models.SubmitTermResponse{}, err
	}
	return resp, nil
}

// Pending handles GET /admin/submissions
func (h *HTTP) Pending(ctx context.Context, key string) ([]models.Submission, error) {
	var subs []models.Submission
	if err := h.do(ctx, "load submissions", http.MethodGet, "/admin/submissions", key, nil, &subs); err != nil {
		return nil, err
	}
	if subs == nil {
		subs = []models.Submission{}
	}
	return subs, nil
}

// Approve handles POST /admin/approve/:id
func (h *HTTP) Approve(ctx context.Context, key, id string) error {
	return h.do(ctx, "approve submission", http.MethodPost, "/admin/approve/"+url.PathEscape(id), key, nil, nil)
}

// Reject handles POST /admin/reject/:id
func (h *HTTP) Reject(ctx context.Context, key, id, reason string) error {
	body := models.RejectRequest{Reason: reason}
	return h.do(ctx, "reject submission", http.MethodPost, "/admin/reject/"+url.PathEscape(id), key, body, nil)
}

func (h *HTTP) do(ctx context.Context, op, method, path, key string, body, out any) error {
	err := h.roundTrip(ctx, op, method, path, key, body, out)
	if err != nil {
		slog.Error("api request failed", "op", op, "method", method, "path", path, "error", err)
	}
	return err
}

func (h *HTTP) roundTrip(ctx context.Context, op, method, path, key string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindValidation, Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr models.ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		msg := apiErr.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &Error{Kind: kindForStatus(resp.StatusCode), Op: op, Status: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Kind: KindServer, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
