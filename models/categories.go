// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

// Category tags. The order of Categories() is the order groups are rendered in.
const (
	CategoryScoringPlays       = "Scoring Plays"
	CategoryBaseRunning        = "Base Running"
	CategoryOnTheMound         = "On the Mound"
	CategoryPositionsEquipment = "Positions & Equipment"
	CategoryGameDay            = "Game Day"
	CategoryPlaysCalls         = "Plays & Calls"
	CategoryStatSheet          = "The Stat Sheet"
)

// CategoryAll selects every category (grouped view).
const CategoryAll = "all"

var categories = [...]string{
	CategoryScoringPlays,
	CategoryBaseRunning,
	CategoryOnTheMound,
	CategoryPositionsEquipment,
	CategoryGameDay,
	CategoryPlaysCalls,
	CategoryStatSheet,
}

// Categories returns the seven category tags in display order.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories[:])
	return out
}

// IsKnownCategory reports whether c is one of the seven category tags.
func IsKnownCategory(c string) bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}
