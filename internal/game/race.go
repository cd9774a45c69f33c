package game

import (
	"context"
	"time"
)

// Outcome is the resolved result of a single question. OptionIndex is only
// meaningful when Answered is true.
type Outcome struct {
	Answered    bool
	OptionIndex int
}

// Correct reports whether the outcome selects the question's correct option.
// A timed-out question is never correct.
func (o Outcome) Correct(q Question) bool {
	return o.Answered && o.OptionIndex == q.CorrectIndex
}

// AnswerSignal delivers at most one answer selection for the current
// question. Detach releases the underlying listener; it must be safe to call
// more than once and is called on every exit path of the race so handlers
// never accumulate across questions.
type AnswerSignal interface {
	Answers() <-chan int
	Detach()
}

// Race waits for whichever settles first: the question's countdown or the
// answer signal. Exactly one of the two contributes the outcome; the loser
// is discarded. The timer is stopped on exit so a fast answer leaves nothing
// pending behind it.
func Race(ctx context.Context, q Question, signal AnswerSignal) (Outcome, error) {
	defer signal.Detach()

	timer := time.NewTimer(q.Duration)
	defer timer.Stop()

	select {
	case optionIndex := <-signal.Answers():
		return Outcome{Answered: true, OptionIndex: optionIndex}, nil
	case <-timer.C:
		return Outcome{}, nil
	case <-ctx.Done():
		return Outcome{}, ctx.Err()
	}
}
