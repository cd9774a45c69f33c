package game

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// QuestionStream is the stream contract consumed by the runner. Satisfied by
// *Stream; kept narrow so tests can script question sequences.
type QuestionStream interface {
	Next(ctx context.Context) bool
	Question() Question
	Err() error
}

// Presenter is the presentation boundary. Implementations render questions,
// expose an answer signal the race engine listens on, reveal outcomes, and
// collect the replay decision. All methods are called from a single
// goroutine, strictly in question order.
type Presenter interface {
	// ShowQuestion renders q and returns a fresh one-shot answer signal
	// for it. score is the session score before this question.
	ShowQuestion(ctx context.Context, q Question, score int) (AnswerSignal, error)

	// Reveal shows the outcome and the correct option, pacing included.
	// The runner does not present the next question until Reveal returns.
	Reveal(ctx context.Context, q Question, outcome Outcome) error

	// ShowEnd renders the end screen and blocks for the replay decision.
	ShowEnd(ctx context.Context, score int, remark string) (playAgain bool, err error)
}

// RemarkFetcher supplies the closing remark for the end screen.
type RemarkFetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// Runner drives full passes over fresh question streams, scoring answers and
// looping until the player declines a replay. The only unbounded loop in the
// system.
type Runner struct {
	newStream func() QuestionStream
	remarks   RemarkFetcher
	presenter Presenter
	endDelay  time.Duration
	logger    zerolog.Logger
}

const defaultEndScreenDelay = time.Second

// NewRunner builds a runner. endDelay is the minimum time the run holds
// before the end screen appears, raced against the remark fetch.
func NewRunner(newStream func() QuestionStream, remarks RemarkFetcher, presenter Presenter, endDelay time.Duration, logger zerolog.Logger) *Runner {
	if endDelay <= 0 {
		endDelay = defaultEndScreenDelay
	}
	return &Runner{
		newStream: newStream,
		remarks:   remarks,
		presenter: presenter,
		endDelay:  endDelay,
		logger:    logger,
	}
}

// Run plays passes until the player stops or a failure aborts the session.
// Every pass starts from a fresh stream with the score reset to zero.
func (r *Runner) Run(ctx context.Context) error {
	for {
		score, err := r.playOnce(ctx)
		if err != nil {
			return err
		}
		runsCompleted.Inc()

		remark, err := r.fetchRemark(ctx)
		if err != nil {
			return err
		}

		again, err := r.presenter.ShowEnd(ctx, score, remark)
		if err != nil {
			return err
		}
		if !again {
			r.logger.Info().Int("final_score", score).Msg("player stopped")
			return nil
		}
		r.logger.Info().Int("final_score", score).Msg("replaying")
	}
}

// playOnce walks one full pass over a fresh stream. For each question it
// presents, races, awards the prize on a correct answer, then reveals.
// Question i is fully resolved, reveal pacing included, before i+1 is
// presented.
func (r *Runner) playOnce(ctx context.Context) (int, error) {
	stream := r.newStream()
	score := 0

	for stream.Next(ctx) {
		q := stream.Question()

		signal, err := r.presenter.ShowQuestion(ctx, q, score)
		if err != nil {
			return score, err
		}

		outcome, err := Race(ctx, q, signal)
		if err != nil {
			return score, err
		}
		observeOutcome(outcome)

		if outcome.Correct(q) {
			score += q.Prize
		}

		r.logger.Debug().
			Int("question_index", q.Index).
			Bool("answered", outcome.Answered).
			Bool("correct", outcome.Correct(q)).
			Int("score", score).
			Msg("question resolved")

		if err := r.presenter.Reveal(ctx, q, outcome); err != nil {
			return score, err
		}
	}

	return score, stream.Err()
}

// fetchRemark gets the closing remark concurrently with the fixed minimum
// end-screen delay; both must settle before the end screen shows.
func (r *Runner) fetchRemark(ctx context.Context) (string, error) {
	var remark string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		remark, err = r.remarks.Fetch(gctx)
		return err
	})
	g.Go(func() error {
		select {
		case <-time.After(r.endDelay):
			return nil
		case <-gctx.Done():
			return gctx.Err()
		}
	})
	if err := g.Wait(); err != nil {
		return "", err
	}
	return remark, nil
}
