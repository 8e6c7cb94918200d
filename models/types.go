// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Submission status constants
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// AnonymousSubmitter is recorded when a submission leaves submittedBy blank.
const AnonymousSubmitter = "Anonymous"

// Request types

type SubmitTermRequest struct {
	Term        string  `json:"term"`
	Analogy     string  `json:"analogy"`
	Category    string  `json:"category"`
	SubmittedBy string  `json:"submittedBy"`
	Email       *string `json:"email"`
}

type RejectRequest struct {
	Reason string `json:"reason"`
}

// Response types

type SubmitTermResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}

type ActionResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Domain types

// Term is a public catalog entry. It has no stable id; its identity is its
// position in the catalog.
type Term struct {
	Term     string `json:"term"`
	Analogy  string `json:"analogy"`
	Category string `json:"category"`
}

// Submission is a pending term proposal as shown to admins.
type Submission struct {
	ID            string    `json:"id"`
	Term          string    `json:"term"`
	Analogy       string    `json:"analogy"`
	Category      string    `json:"category"`
	SubmittedBy   string    `json:"submittedBy"`
	SubmittedDate time.Time `json:"submittedDate"`
	Email         *string   `json:"email,omitempty"`
}

// HasEmail reports whether the submitter left a contact address.
func (s Submission) HasEmail() bool {
	return s.Email != nil && *s.Email != ""
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
