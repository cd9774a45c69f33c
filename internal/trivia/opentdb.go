package trivia

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Amount bounds enforced by the question source per request.
const (
	MinAmount = 1
	MaxAmount = 50
)

// Client fetches questions and session tokens from the Open Trivia DB.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = "https://opentdb.com"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

type rawQuestion struct {
	Category         string   `json:"category"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type questionsResponse struct {
	ResponseCode int           `json:"response_code"`
	Results      []rawQuestion `json:"results"`
}

type tokenResponse struct {
	ResponseCode int    `json:"response_code"`
	Token        string `json:"token"`
}

// RequestToken asks the source for a fresh session token.
func (c *Client) RequestToken(ctx context.Context) (string, error) {
	var payload tokenResponse
	if err := c.get(ctx, "/api_token.php?command=request", &payload); err != nil {
		return "", err
	}
	if payload.ResponseCode != 0 {
		return "", fmt.Errorf("opentdb token response code %d", payload.ResponseCode)
	}
	return payload.Token, nil
}

// FetchQuestions returns amount normalized questions at the given difficulty.
// Parameters are validated before any network call; each violation is a
// distinct sentinel error. One HTTP request per call, no retry.
func (c *Client) FetchQuestions(ctx context.Context, token, difficulty string, amount int) ([]Question, error) {
	if amount < MinAmount || amount > MaxAmount {
		return nil, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidAmount, amount, MinAmount, MaxAmount)
	}
	if !ValidDifficulty(difficulty) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDifficulty, difficulty)
	}
	if token == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidToken)
	}

	values := url.Values{}
	values.Set("amount", fmt.Sprint(amount))
	values.Set("difficulty", difficulty)
	values.Set("encode", "url3986")

	var payload questionsResponse
	if err := c.get(ctx, "/api.php?"+values.Encode(), &payload); err != nil {
		return nil, err
	}
	if payload.ResponseCode != 0 {
		return nil, fmt.Errorf("opentdb response code %d", payload.ResponseCode)
	}

	questions := make([]Question, 0, len(payload.Results))
	for _, raw := range payload.Results {
		q, err := normalize(raw)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("opentdb non-200: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// normalize percent-decodes every text field of a raw record and shuffles its
// options. Fields arrive RFC 3986 encoded (encode=url3986).
func normalize(raw rawQuestion) (Question, error) {
	category, err := url.PathUnescape(raw.Category)
	if err != nil {
		return Question{}, fmt.Errorf("decode category: %w", err)
	}
	difficulty, err := url.PathUnescape(raw.Difficulty)
	if err != nil {
		return Question{}, fmt.Errorf("decode difficulty: %w", err)
	}
	text, err := url.PathUnescape(raw.Question)
	if err != nil {
		return Question{}, fmt.Errorf("decode question: %w", err)
	}
	correct, err := url.PathUnescape(raw.CorrectAnswer)
	if err != nil {
		return Question{}, fmt.Errorf("decode correct answer: %w", err)
	}
	incorrect := make([]string, len(raw.IncorrectAnswers))
	for i, enc := range raw.IncorrectAnswers {
		if incorrect[i], err = url.PathUnescape(enc); err != nil {
			return Question{}, fmt.Errorf("decode incorrect answer: %w", err)
		}
	}

	options, correctIndex := shuffleOptions(correct, incorrect)
	return Question{
		Category:     category,
		Difficulty:   difficulty,
		Text:         text,
		Options:      options,
		CorrectIndex: correctIndex,
	}, nil
}
