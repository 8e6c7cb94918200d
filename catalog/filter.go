// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"strings"

	"github.com/danielhkuo/baseball-dictionary/models"
)

// NoResultsMessage is shown when a filter matches nothing.
const NoResultsMessage = "No terms found. Try adjusting your search or category filter."

// Group is one rendered category section.
type Group struct {
	Category string        `json:"category"`
	Terms    []models.Term `json:"terms"`
}

// View is the render-ready result of Filter.
type View struct {
	Category  string        `json:"category"`
	Query     string        `json:"query"`
	Grouped   bool          `json:"grouped"`
	Groups    []Group       `json:"groups"`
	Terms     []models.Term `json:"terms"`
	Count     int           `json:"count"`
	NoResults bool          `json:"noResults"`
}

// Filter derives the view for a category selection and a free-text query.
// The query is matched first, then the category; the two compose as AND.
//
// With category "all" (or empty) the matches are partitioned into the seven
// fixed categories in display order, empty groups are dropped, and terms keep
// their original relative order. Terms whose category is not one of the seven
// are not shown. Any other category returns the single section for that
// category; a category outside the seven matches nothing.
func Filter(terms []models.Term, category, query string) View {
	category = strings.TrimSpace(category)
	if category == "" {
		category = models.CategoryAll
	}
	query = strings.TrimSpace(query)

	matched := make([]models.Term, 0, len(terms))
	for _, t := range terms {
		if Match(t, query) {
			matched = append(matched, t)
		}
	}

	view := View{
		Category: category,
		Query:    query,
		Groups:   []Group{},
		Terms:    []models.Term{},
	}

	if category == models.CategoryAll {
		view.Grouped = true
		for _, c := range models.Categories() {
			inCategory := byCategory(matched, c)
			if len(inCategory) == 0 {
				continue
			}
			view.Groups = append(view.Groups, Group{Category: c, Terms: inCategory})
			view.Terms = append(view.Terms, inCategory...)
		}
	} else if models.IsKnownCategory(category) {
		inCategory := byCategory(matched, category)
		if len(inCategory) > 0 {
			view.Groups = append(view.Groups, Group{Category: category, Terms: inCategory})
			view.Terms = inCategory
		}
	}

	view.Count = len(view.Terms)
	view.NoResults = view.Count == 0
	return view
}

// Match reports whether the term name or analogy contains query,
// ignoring case. An empty query matches everything.
func Match(t models.Term, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Term), q) ||
		strings.Contains(strings.ToLower(t.Analogy), q)
}

func byCategory(terms []models.Term, category string) []models.Term {
	var out []models.Term
	for _, t := range terms {
		if t.Category == category {
			out = append(out, t)
		}
	}
	return out
}
