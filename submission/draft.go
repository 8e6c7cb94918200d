// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"fmt"
	"strings"

	"github.com/danielhkuo/baseball-dictionary/models"
	"github.com/danielhkuo/baseball-dictionary/repository"
)

// Draft is the raw form input before it becomes a request.
type Draft struct {
	Term        string
	Analogy     string
	Category    string
	SubmittedBy string
	Email       string
}

// Request trims the draft and applies the defaults: a blank submitter becomes
// "Anonymous" and a blank email becomes nil.
func (d Draft) Request() models.SubmitTermRequest {
	req := models.SubmitTermRequest{
		Term:        strings.TrimSpace(d.Term),
		Analogy:     strings.TrimSpace(d.Analogy),
		Category:    strings.TrimSpace(d.Category),
		SubmittedBy: strings.TrimSpace(d.SubmittedBy),
	}
	if req.SubmittedBy == "" {
		req.SubmittedBy = models.AnonymousSubmitter
	}
	if email := strings.TrimSpace(d.Email); email != "" {
		req.Email = &email
	}
	return req
}

// Validate checks the required fields of a request.
func Validate(req models.SubmitTermRequest) error {
	switch {
	case strings.TrimSpace(req.Term) == "":
		return repository.ValidationError("submit term", "Term is required")
	case strings.TrimSpace(req.Analogy) == "":
		return repository.ValidationError("submit term", "Analogy is required")
	case strings.TrimSpace(req.Category) == "":
		return repository.ValidationError("submit term", "Category is required")
	case !models.IsKnownCategory(req.Category):
		return repository.ValidationError("submit term", fmt.Sprintf("Unknown category: %s", req.Category))
	}
	return nil
}
