package ws

import "encoding/json"

// MessageType constants for the play WebSocket protocol.
const (
	// Client -> Server
	TypeSubmitAnswer = "submit_answer"
	TypeReplay       = "replay"

	// Server -> Client
	TypeQuestion = "question"
	TypeReveal   = "reveal"
	TypeGameOver = "game_over"
	TypeError    = "error"
)

// Message wraps all WebSocket payloads with a type tag.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Client Messages (incoming)

type SubmitAnswerPayload struct {
	QuestionIndex int `json:"question_index"`
	OptionIndex   int `json:"option_index"`
}

type ReplayPayload struct {
	PlayAgain bool `json:"play_again"`
}

// Server Messages (outgoing)

type QuestionPayload struct {
	Index           int      `json:"index"`
	Prize           int      `json:"prize"`
	Category        string   `json:"category"`
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	DurationSeconds int      `json:"duration_seconds"`
	Score           int      `json:"score"`
}

type RevealPayload struct {
	QuestionIndex int  `json:"question_index"`
	CorrectIndex  int  `json:"correct_index"`
	Answered      bool `json:"answered"`
	OptionIndex   int  `json:"option_index,omitempty"`
	Correct       bool `json:"correct"`
	Score         int  `json:"score"`
}

type GameOverPayload struct {
	FinalScore int    `json:"final_score"`
	Remark     string `json:"remark"`
}

type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
