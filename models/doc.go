// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the dictionary.

# Request Types

Types for parsing incoming JSON:

  - SubmitTermRequest: term, analogy, category, submittedBy, email
  - RejectRequest: reason

# Response Types

Types for JSON responses:

  - SubmitTermResponse: success, message, id
  - ActionResponse: success, message
  - ErrorResponse: error, message

# Domain Types

  - Term: a public catalog entry (term, analogy, category). Terms carry no
    id; their identity is their position in the catalog.
  - Submission: a pending proposal as seen by admins (id, submittedBy,
    submittedDate, optional email).

# Categories

The catalog has exactly seven categories. Their order matters, since grouped
views list them in this order:

	Scoring Plays
	Base Running
	On the Mound
	Positions & Equipment
	Game Day
	Plays & Calls
	The Stat Sheet

CategoryAll ("all") is the selector for the grouped view and is not itself a
category.

# Submission Status

	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"

A blank submittedBy is recorded as AnonymousSubmitter ("Anonymous").

# Sample Data

SampleTerms and SampleSubmissions provide the fixed reference dataset used in
sample mode and for seeding an empty database.
*/
package models
