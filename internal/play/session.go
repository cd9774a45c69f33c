package play

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-run/internal/game"
	ws "github.com/gokatarajesh/trivia-run/pkg/http/ws"
)

type answerEvent struct {
	questionIndex int
	optionIndex   int
}

// session presents one game run over a single WebSocket connection. The
// runner goroutine is the only writer; readPump is the only reader.
type session struct {
	conn   *websocket.Conn
	cfg    Config
	logger zerolog.Logger

	answers chan answerEvent
	replays chan bool
}

var _ game.Presenter = (*session)(nil)

func newSession(conn *websocket.Conn, cfg Config, logger zerolog.Logger) *session {
	return &session{
		conn:    conn,
		cfg:     cfg,
		logger:  logger,
		answers: make(chan answerEvent, 1),
		replays: make(chan bool, 1),
	}
}

// readPump decodes client messages into the answer and replay channels until
// the connection drops, then cancels the game loop. Events nobody is
// listening for are dropped rather than buffered across questions.
func (s *session) readPump(cancel context.CancelFunc) {
	defer cancel()
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.logger.Debug().Err(err).Msg("connection closed")
			return
		}
		var msg ws.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			s.logger.Warn().Err(err).Msg("malformed message")
			continue
		}
		switch msg.Type {
		case ws.TypeSubmitAnswer:
			var p ws.SubmitAnswerPayload
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				s.logger.Warn().Err(err).Msg("malformed submit_answer payload")
				continue
			}
			select {
			case s.answers <- answerEvent{questionIndex: p.QuestionIndex, optionIndex: p.OptionIndex}:
			default:
			}
		case ws.TypeReplay:
			var p ws.ReplayPayload
			if err := json.Unmarshal(msg.Payload, &p); err != nil {
				s.logger.Warn().Err(err).Msg("malformed replay payload")
				continue
			}
			select {
			case s.replays <- p.PlayAgain:
			default:
			}
		default:
			s.logger.Warn().Str("type", msg.Type).Msg("unknown message type")
		}
	}
}

// answerSignal forwards the first valid answer for one question. Detach
// stops the forwarder so no listener outlives its question.
type answerSignal struct {
	ch   chan int
	stop chan struct{}
	once sync.Once
}

func (a *answerSignal) Answers() <-chan int { return a.ch }

func (a *answerSignal) Detach() {
	a.once.Do(func() { close(a.stop) })
}

// ShowQuestion renders the question and registers a fresh one-shot answer
// listener for it. Submissions for other questions or with an out-of-range
// option index are ignored.
func (s *session) ShowQuestion(ctx context.Context, q game.Question, score int) (game.AnswerSignal, error) {
	err := s.send(ws.TypeQuestion, ws.QuestionPayload{
		Index:           q.Index,
		Prize:           q.Prize,
		Category:        q.Category,
		Question:        q.Text,
		Options:         q.Options,
		DurationSeconds: int(q.Duration / time.Second),
		Score:           score,
	})
	if err != nil {
		return nil, err
	}

	sig := &answerSignal{
		ch:   make(chan int),
		stop: make(chan struct{}),
	}
	go func() {
		for {
			select {
			case ev := <-s.answers:
				select {
				case <-sig.stop:
					// raced with detach; hand the event to the next listener
					select {
					case s.answers <- ev:
					default:
					}
					return
				default:
				}
				if ev.questionIndex != q.Index || ev.optionIndex < 0 || ev.optionIndex >= len(q.Options) {
					continue
				}
				select {
				case sig.ch <- ev.optionIndex:
				case <-sig.stop:
				}
				return
			case <-sig.stop:
				return
			}
		}
	}()
	return sig, nil
}

// Reveal shows the outcome and the correct option, then holds for the reveal
// pacing so the client animation finishes before the next question.
func (s *session) Reveal(ctx context.Context, q game.Question, outcome game.Outcome) error {
	payload := ws.RevealPayload{
		QuestionIndex: q.Index,
		CorrectIndex:  q.CorrectIndex,
		Answered:      outcome.Answered,
		Correct:       outcome.Correct(q),
	}
	if outcome.Answered {
		payload.OptionIndex = outcome.OptionIndex
	}
	if err := s.send(ws.TypeReveal, payload); err != nil {
		return err
	}

	if outcome.Answered {
		if err := sleep(ctx, s.cfg.SelectedDelay); err != nil {
			return err
		}
	}
	return sleep(ctx, s.cfg.RevealDelay)
}

// ShowEnd renders the end screen and blocks for the replay decision.
func (s *session) ShowEnd(ctx context.Context, score int, remark string) (bool, error) {
	err := s.send(ws.TypeGameOver, ws.GameOverPayload{
		FinalScore: score,
		Remark:     remark,
	})
	if err != nil {
		return false, err
	}

	select {
	case again := <-s.replays:
		return again, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (s *session) send(msgType string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return s.conn.WriteJSON(ws.Message{Type: msgType, Payload: data})
}

func (s *session) sendError(code string, err error) {
	data, merr := json.Marshal(ws.ErrorPayload{Code: code, Message: err.Error()})
	if merr != nil {
		return
	}
	_ = s.conn.WriteJSON(ws.Message{Type: ws.TypeError, Payload: data})
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
