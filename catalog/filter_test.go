// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/baseball-dictionary/models"
)

func termNames(terms []models.Term) []string {
	names := make([]string, 0, len(terms))
	for _, t := range terms {
		names = append(names, t.Term)
	}
	return names
}

func groupNames(groups []Group) []string {
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Category)
	}
	return names
}

func TestFilter_AllGroupsInFixedOrder(t *testing.T) {
	// Deliberately shuffled so grouping cannot rely on input order
	terms := []models.Term{
		{Term: "Rookie", Analogy: "Someone potty training", Category: models.CategoryStatSheet},
		{Term: "Walk", Analogy: "Sweet time", Category: models.CategoryBaseRunning},
		{Term: "Single", Analogy: "Basic trip", Category: models.CategoryScoringPlays},
		{Term: "Bunt", Analogy: "Pit stop", Category: models.CategoryBaseRunning},
	}

	view := Filter(terms, models.CategoryAll, "")

	assert.True(t, view.Grouped)
	assert.False(t, view.NoResults)
	assert.Equal(t, []string{
		models.CategoryScoringPlays,
		models.CategoryBaseRunning,
		models.CategoryStatSheet,
	}, groupNames(view.Groups))
	assert.Equal(t, []string{"Walk", "Bunt"}, termNames(view.Groups[1].Terms))
	assert.Equal(t, []string{"Single", "Walk", "Bunt", "Rookie"}, termNames(view.Terms))
	assert.Equal(t, 4, view.Count)
}

func TestFilter_EmptyCategoryMeansAll(t *testing.T) {
	view := Filter(models.SampleTerms(), "", "")
	assert.Equal(t, models.CategoryAll, view.Category)
	assert.True(t, view.Grouped)
	assert.Len(t, view.Groups, 7)
}

func TestFilter_WalkExample(t *testing.T) {
	view := Filter(models.SampleTerms(), models.CategoryAll, "walk")

	require.False(t, view.NoResults)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, models.CategoryBaseRunning, view.Groups[0].Category)
	assert.Equal(t, []string{"Walk", "Intentional walk"}, termNames(view.Groups[0].Terms))
}

func TestFilter_QueryMatchesAnalogyCaseInsensitive(t *testing.T) {
	view := Filter(models.SampleTerms(), models.CategoryAll, "  PLUNGER ")

	assert.Equal(t, "PLUNGER", view.Query)
	assert.Equal(t, []string{"Catcher", "Pinch hitter"}, termNames(view.Terms))
	assert.Equal(t, []string{models.CategoryPositionsEquipment, models.CategoryGameDay}, groupNames(view.Groups))
}

func TestFilter_SingleCategory(t *testing.T) {
	view := Filter(models.SampleTerms(), models.CategoryOnTheMound, "")

	assert.False(t, view.Grouped)
	require.Len(t, view.Groups, 1)
	assert.Equal(t, models.CategoryOnTheMound, view.Groups[0].Category)
	assert.Equal(t, 7, view.Count)
	for _, term := range view.Terms {
		assert.Equal(t, models.CategoryOnTheMound, term.Category)
	}
}

func TestFilter_CategoryAndQueryCompose(t *testing.T) {
	// "bathroom" appears across several categories; only Base Running should survive
	view := Filter(models.SampleTerms(), models.CategoryBaseRunning, "bathroom")
	assert.Equal(t, []string{"Stealing bases", "Caught stealing", "Intentional walk"}, termNames(view.Terms))
}

func TestFilter_NoResults(t *testing.T) {
	tests := []struct {
		name     string
		category string
		query    string
	}{
		{"query matches nothing", models.CategoryAll, "zamboni"},
		{"category and query disjoint", models.CategoryStatSheet, "walk"},
		{"unknown category", "Bullpen Snacks", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := Filter(models.SampleTerms(), tt.category, tt.query)
			assert.True(t, view.NoResults)
			assert.Zero(t, view.Count)
			assert.Empty(t, view.Groups)
			assert.NotNil(t, view.Terms)
		})
	}
}

func TestFilter_UnknownCategoryHiddenEverywhere(t *testing.T) {
	terms := append(models.SampleTerms(), models.Term{
		Term: "Walk-off", Analogy: "Leaving mid-flush", Category: "Clubhouse",
	})

	grouped := Filter(terms, models.CategoryAll, "walk")
	assert.NotContains(t, termNames(grouped.Terms), "Walk-off")

	single := Filter(terms, "Clubhouse", "")
	assert.True(t, single.NoResults)
}

func TestFilter_SubsetOfUnfiltered(t *testing.T) {
	terms := models.SampleTerms()
	all := Filter(terms, models.CategoryAll, "")

	for _, q := range []string{"bathroom", "the", "Double", "x", "toilet"} {
		t.Run(q, func(t *testing.T) {
			var want []string
			for _, term := range all.Terms {
				if Match(term, q) {
					want = append(want, term.Term)
				}
			}
			got := Filter(terms, models.CategoryAll, q)
			assert.Equal(t, want, termNames(got.Terms))
		})
	}
}

func TestFilter_Idempotent(t *testing.T) {
	terms := models.SampleTerms()
	cases := []struct{ category, query string }{
		{models.CategoryAll, ""},
		{models.CategoryAll, "go"},
		{models.CategoryGameDay, "the"},
		{models.CategoryPlaysCalls, ""},
	}

	for _, c := range cases {
		once := Filter(terms, c.category, c.query)
		twice := Filter(once.Terms, c.category, c.query)
		assert.Equal(t, once, twice, "category=%q query=%q", c.category, c.query)
	}
}

func TestMatch(t *testing.T) {
	term := models.Term{Term: "Grand slam", Analogy: "Bases loaded chaos"}

	assert.True(t, Match(term, ""))
	assert.True(t, Match(term, "grand"))
	assert.True(t, Match(term, "LOADED"))
	assert.False(t, Match(term, "walk"))
}
