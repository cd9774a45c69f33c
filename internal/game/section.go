package game

import (
	"time"

	"github.com/gokatarajesh/trivia-run/internal/trivia"
)

// Section is a configured block of play at one difficulty: a per-question
// time budget and a fixed prize ladder. Immutable once constructed; the
// number of prizes is the number of questions fetched for the section.
type Section struct {
	Difficulty string
	Duration   time.Duration
	Prizes     []int
}

// Length is the number of questions in the section.
func (s Section) Length() int { return len(s.Prizes) }

// DefaultSections returns the standard run: five questions each of easy,
// medium and hard, with rising prizes and time budgets.
func DefaultSections() []Section {
	return []Section{
		{
			Difficulty: trivia.DifficultyEasy,
			Duration:   3 * time.Second,
			Prizes:     []int{100, 150, 200, 250, 300},
		},
		{
			Difficulty: trivia.DifficultyMedium,
			Duration:   4 * time.Second,
			Prizes:     []int{500, 550, 600, 650, 700},
		},
		{
			Difficulty: trivia.DifficultyHard,
			Duration:   5 * time.Second,
			Prizes:     []int{1000, 1100, 1200, 1300, 1400},
		},
	}
}
