package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gokatarajesh/trivia-run/internal/trivia"
)

// Question is a section question composed with its position in the run.
// Index is 1-based and strictly increasing across the whole playthrough.
type Question struct {
	trivia.Question
	Index    int
	Prize    int
	Duration time.Duration
}

// QuestionFetcher fetches one batch of normalized questions.
type QuestionFetcher interface {
	FetchQuestions(ctx context.Context, token, difficulty string, amount int) ([]trivia.Question, error)
}

// TokenSource yields the credential required by the question source.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Stream lazily walks an ordered list of sections and yields their questions
// one at a time. Each section's batch is fetched on demand at the section
// boundary, so the consumer blocks there until the fetch resolves; the next
// section is never prefetched. A Stream is single-pass and non-restartable:
// a new playthrough needs a new Stream.
//
// Usage follows the scanner idiom:
//
//	for s.Next(ctx) {
//		q := s.Question()
//		...
//	}
//	if err := s.Err(); err != nil { ... }
type Stream struct {
	fetcher  QuestionFetcher
	tokens   TokenSource
	sections []Section

	token   string
	next    int // next section to fetch
	batch   []trivia.Question
	section Section // section the current batch belongs to
	offset  int     // next question within batch
	counter int     // global 1-based question numbering
	current Question
	err     error
	done    bool
}

func NewStream(fetcher QuestionFetcher, tokens TokenSource, sections []Section) *Stream {
	return &Stream{
		fetcher:  fetcher,
		tokens:   tokens,
		sections: sections,
	}
}

// Next advances the stream, fetching the next section's batch when the
// current one is exhausted. It returns false once every section has been
// yielded or a fetch failed; check Err afterwards. Any failure is fatal to
// the stream, there are no retries.
func (s *Stream) Next(ctx context.Context) bool {
	if s.done || s.err != nil {
		return false
	}

	if s.token == "" {
		token, err := s.tokens.Token(ctx)
		if err != nil {
			s.err = fmt.Errorf("obtain token: %w", err)
			return false
		}
		s.token = token
	}

	for s.offset >= len(s.batch) {
		if s.next >= len(s.sections) {
			s.done = true
			return false
		}
		section := s.sections[s.next]
		s.next++
		if section.Length() == 0 {
			continue
		}

		batch, err := s.fetcher.FetchQuestions(ctx, s.token, section.Difficulty, section.Length())
		if err != nil {
			s.err = fmt.Errorf("fetch %s section: %w", section.Difficulty, err)
			return false
		}
		if len(batch) > section.Length() {
			batch = batch[:section.Length()]
		}
		s.batch = batch
		s.section = section
		s.offset = 0
	}

	q := s.batch[s.offset]
	prize := s.section.Prizes[s.offset]
	s.offset++
	s.counter++

	s.current = Question{
		Question: q,
		Index:    s.counter,
		Prize:    prize,
		Duration: s.section.Duration,
	}
	return true
}

// Question returns the question produced by the last successful Next.
func (s *Stream) Question() Question { return s.current }

// Err returns the error that terminated the stream, if any.
func (s *Stream) Err() error { return s.err }
