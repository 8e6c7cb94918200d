// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

var sampleTerms = []Term{
	{Term: "Single", Analogy: "A basic trip to the toilet", Category: CategoryScoringPlays},
	{Term: "Double", Analogy: "Two trips in quick succession (might want to see a doctor)", Category: CategoryScoringPlays},
	{Term: "Triple", Analogy: "Three trips in a short span (definitely see a doctor)", Category: CategoryScoringPlays},
	{Term: "Home run", Analogy: "When everything comes out perfectly in one go", Category: CategoryScoringPlays},
	{Term: "Grand slam", Analogy: "When the whole family needs to go at the exact same time (bases loaded chaos)", Category: CategoryScoringPlays},
	{Term: "Inside-the-park home run", Analogy: "Making it just in time without any stops", Category: CategoryScoringPlays},

	{Term: "Stealing bases", Analogy: "When someone's taking too long and you sneak to another bathroom", Category: CategoryBaseRunning},
	{Term: "Caught stealing", Analogy: "When you try to sneak to another bathroom but someone's already in there", Category: CategoryBaseRunning},
	{Term: "Bunt", Analogy: "A quick, strategic pit stop", Category: CategoryBaseRunning},
	{Term: "Sacrifice fly", Analogy: "Taking one for the team with a courtesy flush", Category: CategoryBaseRunning},
	{Term: "Walk", Analogy: "When you take your sweet time getting there", Category: CategoryBaseRunning},
	{Term: "Intentional walk", Analogy: "Deliberately waiting for a better bathroom to open up", Category: CategoryBaseRunning},

	{Term: "Strike out", Analogy: "When you sit down three times but nothing happens", Category: CategoryOnTheMound},
	{Term: "Perfect game", Analogy: "No issues whatsoever, in and out, smooth operation", Category: CategoryOnTheMound},
	{Term: "No-hitter", Analogy: "When nothing happens despite your best efforts and concentration", Category: CategoryOnTheMound},
	{Term: "Complete game", Analogy: "Finishing the job without needing to return", Category: CategoryOnTheMound},
	{Term: "Bullpen", Analogy: "The backup bathroom", Category: CategoryOnTheMound},
	{Term: "Relief pitcher", Analogy: "Someone coming in to finish what you started (bringing toilet paper)", Category: CategoryOnTheMound},
	{Term: "Closer", Analogy: "The person who finally fixes the clogged toilet", Category: CategoryOnTheMound},

	{Term: "Pitcher's mound", Analogy: "The throne itself", Category: CategoryPositionsEquipment},
	{Term: "Catcher", Analogy: "The plunger (catching problems)", Category: CategoryPositionsEquipment},
	{Term: "First base", Analogy: "The initial urge", Category: CategoryPositionsEquipment},
	{Term: "Dugout", Analogy: "The stall you hide in during emergencies", Category: CategoryPositionsEquipment},
	{Term: "On deck circle", Analogy: "Waiting anxiously right outside the door", Category: CategoryPositionsEquipment},

	{Term: "Rain delay", Analogy: "Plumbing issues cause an unexpected wait", Category: CategoryGameDay},
	{Term: "Extra innings", Analogy: "When you thought you were done but need to go back for round two", Category: CategoryGameDay},
	{Term: "Seventh inning stretch", Analogy: "The mid-day bathroom break", Category: CategoryGameDay},
	{Term: "Pinch hitter", Analogy: "When you need backup (plunger required)", Category: CategoryGameDay},
	{Term: "Designated hitter", Analogy: "The family member who always gets to use the main bathroom", Category: CategoryGameDay},
	{Term: "Ejection", Analogy: "When someone kicks you out for taking too long", Category: CategoryGameDay},

	{Term: "Foul ball", Analogy: "When things don't go quite right (missed the bowl)", Category: CategoryPlaysCalls},
	{Term: "Fair ball", Analogy: "Everything lands where it should", Category: CategoryPlaysCalls},
	{Term: "Error", Analogy: "An obvious mistake (forgot to flush)", Category: CategoryPlaysCalls},
	{Term: "Double play", Analogy: "Two people done in rapid succession (efficient household)", Category: CategoryPlaysCalls},
	{Term: "Strikeout looking", Analogy: "False alarm, didn't actually need to go", Category: CategoryPlaysCalls},

	{Term: "Batting average", Analogy: "Your daily success rate", Category: CategoryStatSheet},
	{Term: "ERA (Emergency Relief Average)", Analogy: "How often you make it in time", Category: CategoryStatSheet},
	{Term: "RBI (Runs Bathed In)", Analogy: "The quality of your shower afterward", Category: CategoryStatSheet},
	{Term: "Save", Analogy: "Successfully preventing a disaster", Category: CategoryStatSheet},
	{Term: "Rookie", Analogy: "Someone potty training", Category: CategoryStatSheet},
}

// SampleTerms returns the reference dataset in source order. Callers get a copy.
func SampleTerms() []Term {
	out := make([]Term, len(sampleTerms))
	copy(out, sampleTerms)
	return out
}

// SampleSubmissions returns the two pending submissions used in sample mode,
// stamped with the given time.
func SampleSubmissions(now time.Time) []Submission {
	email := "user@example.com"
	return []Submission{
		{
			ID:            "1",
			Term:          "Popup fly",
			Analogy:       "A sudden urge that goes away just as quickly",
			Category:      CategoryPlaysCalls,
			SubmittedBy:   "User123",
			SubmittedDate: now,
			Email:         &email,
		},
		{
			ID:            "2",
			Term:          "Bases loaded",
			Analogy:       "When everyone in the house needs to go at the same time",
			Category:      CategoryGameDay,
			SubmittedBy:   AnonymousSubmitter,
			SubmittedDate: now,
		},
	}
}
