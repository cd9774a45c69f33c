package trivia

// Difficulty values accepted by the question source.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// ValidDifficulty reports whether d is one of the accepted difficulty values.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Question is a normalized trivia question with shuffled answer options.
// Options always contains the correct answer exactly once, at CorrectIndex.
type Question struct {
	Category     string
	Difficulty   string
	Text         string
	Options      []string
	CorrectIndex int
}
