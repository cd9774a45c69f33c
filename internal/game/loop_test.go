package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-run/internal/trivia"
)

type scriptStream struct {
	questions []Question
	pos       int
	err       error
}

func (s *scriptStream) Next(ctx context.Context) bool {
	if s.err != nil || s.pos >= len(s.questions) {
		return false
	}
	s.pos++
	return true
}

func (s *scriptStream) Question() Question { return s.questions[s.pos-1] }

func (s *scriptStream) Err() error { return s.err }

type endScreen struct {
	score  int
	remark string
}

// scriptPresenter answers each question via answerFn and replies to end
// screens from a fixed list of replay decisions.
type scriptPresenter struct {
	answerFn func(q Question) (int, bool)
	replays  []bool

	shown   []Question
	reveals []Outcome
	ends    []endScreen
}

func (p *scriptPresenter) ShowQuestion(ctx context.Context, q Question, score int) (AnswerSignal, error) {
	p.shown = append(p.shown, q)
	signal := newTestSignal()
	if p.answerFn != nil {
		if option, ok := p.answerFn(q); ok {
			signal.ch <- option
		}
	}
	return signal, nil
}

func (p *scriptPresenter) Reveal(ctx context.Context, q Question, outcome Outcome) error {
	p.reveals = append(p.reveals, outcome)
	return nil
}

func (p *scriptPresenter) ShowEnd(ctx context.Context, score int, remark string) (bool, error) {
	p.ends = append(p.ends, endScreen{score: score, remark: remark})
	again := p.replays[len(p.ends)-1]
	return again, nil
}

type stubRemarks struct {
	remark string
	err    error
	calls  int
}

func (s *stubRemarks) Fetch(ctx context.Context) (string, error) {
	s.calls++
	return s.remark, s.err
}

func scriptQuestions(prizes ...int) []Question {
	qs := make([]Question, len(prizes))
	for i, prize := range prizes {
		qs[i] = Question{
			Question: trivia.Question{
				Text:         "q",
				Options:      []string{"a", "b", "c"},
				CorrectIndex: 1,
			},
			Index:    i + 1,
			Prize:    prize,
			Duration: 20 * time.Millisecond,
		}
	}
	return qs
}

func TestRunnerScoresOnlyCorrectAnswers(t *testing.T) {
	questions := scriptQuestions(100, 150, 200)
	presenter := &scriptPresenter{
		answerFn: func(q Question) (int, bool) {
			switch q.Index {
			case 1:
				return 1, true // correct
			case 2:
				return 0, true // wrong option
			default:
				return 0, false // timeout
			}
		},
		replays: []bool{false},
	}
	remarks := &stubRemarks{remark: "ba dum tss"}

	runner := NewRunner(func() QuestionStream {
		return &scriptStream{questions: questions}
	}, remarks, presenter, time.Millisecond, zerolog.Nop())

	require.NoError(t, runner.Run(context.Background()))

	require.Len(t, presenter.ends, 1)
	assert.Equal(t, 100, presenter.ends[0].score)
	assert.Equal(t, "ba dum tss", presenter.ends[0].remark)

	require.Len(t, presenter.reveals, 3)
	assert.True(t, presenter.reveals[0].Answered)
	assert.True(t, presenter.reveals[1].Answered)
	assert.False(t, presenter.reveals[2].Answered)
}

func TestRunnerReplayResetsScore(t *testing.T) {
	streams := 0
	presenter := &scriptPresenter{
		answerFn: func(q Question) (int, bool) { return q.CorrectIndex, true },
		replays:  []bool{true, false},
	}

	runner := NewRunner(func() QuestionStream {
		streams++
		return &scriptStream{questions: scriptQuestions(100, 200)}
	}, &stubRemarks{remark: "again?"}, presenter, time.Millisecond, zerolog.Nop())

	require.NoError(t, runner.Run(context.Background()))

	assert.Equal(t, 2, streams, "each pass consumes a fresh stream")
	require.Len(t, presenter.ends, 2)
	assert.Equal(t, 300, presenter.ends[0].score)
	assert.Equal(t, 300, presenter.ends[1].score, "score resets between passes")
	require.Len(t, presenter.shown, 4)
	assert.Equal(t, 1, presenter.shown[2].Index, "numbering restarts with the new stream")
}

func TestRunnerFullPassOverDefaultSections(t *testing.T) {
	fetcher := &stubFetcher{}
	tokens := &stubTokens{token: "tok"}
	presenter := &scriptPresenter{
		answerFn: func(q Question) (int, bool) { return q.CorrectIndex, true },
		replays:  []bool{false},
	}

	runner := NewRunner(func() QuestionStream {
		return NewStream(fetcher, tokens, DefaultSections())
	}, &stubRemarks{remark: "dad joke"}, presenter, time.Millisecond, zerolog.Nop())

	require.NoError(t, runner.Run(context.Background()))

	require.Len(t, presenter.shown, 15)
	assert.Equal(t, 15, presenter.shown[14].Index)

	wantTotal := 0
	for _, section := range DefaultSections() {
		for _, prize := range section.Prizes {
			wantTotal += prize
		}
	}
	require.Len(t, presenter.ends, 1)
	assert.Equal(t, wantTotal, presenter.ends[0].score)
}

func TestRunnerStreamErrorAborts(t *testing.T) {
	boom := errors.New("fetch failed")
	presenter := &scriptPresenter{replays: []bool{false}}

	runner := NewRunner(func() QuestionStream {
		return &scriptStream{err: boom}
	}, &stubRemarks{}, presenter, time.Millisecond, zerolog.Nop())

	err := runner.Run(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, presenter.ends, "no end screen after an aborted pass")
}

func TestRunnerRemarkErrorAborts(t *testing.T) {
	boom := errors.New("joke api down")
	presenter := &scriptPresenter{replays: []bool{false}}

	runner := NewRunner(func() QuestionStream {
		return &scriptStream{}
	}, &stubRemarks{err: boom}, presenter, time.Millisecond, zerolog.Nop())

	assert.ErrorIs(t, runner.Run(context.Background()), boom)
}

func TestRunnerHoldsMinimumEndDelay(t *testing.T) {
	delay := 60 * time.Millisecond
	presenter := &scriptPresenter{replays: []bool{false}}

	runner := NewRunner(func() QuestionStream {
		return &scriptStream{}
	}, &stubRemarks{remark: "instant"}, presenter, delay, zerolog.Nop())

	start := time.Now()
	require.NoError(t, runner.Run(context.Background()))
	assert.GreaterOrEqual(t, time.Since(start), delay)
}

func TestRunnerRemarkFetchedPerPass(t *testing.T) {
	remarks := &stubRemarks{remark: "each time"}
	presenter := &scriptPresenter{replays: []bool{true, true, false}}

	runner := NewRunner(func() QuestionStream {
		return &scriptStream{}
	}, remarks, presenter, time.Millisecond, zerolog.Nop())

	require.NoError(t, runner.Run(context.Background()))
	assert.Equal(t, 3, remarks.calls)
}
