package trivia

import "math/rand"

// shuffleOptions permutes the incorrect answers uniformly, then inserts the
// correct answer at a uniformly random position. Returns the full option list
// and the insertion index. Intentionally non-deterministic: a replayed
// section reshuffles on every fetch.
func shuffleOptions(correct string, incorrect []string) ([]string, int) {
	options := make([]string, len(incorrect), len(incorrect)+1)
	copy(options, incorrect)
	rand.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	insertAt := rand.Intn(len(options) + 1)
	options = append(options, "")
	copy(options[insertAt+1:], options[insertAt:])
	options[insertAt] = correct

	return options, insertAt
}
