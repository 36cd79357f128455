// Package gateway is the HTTP client of the course server.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/learn-scripting/internal/domain/entities"
)

var errMalformed = errors.New("malformed response")

// Client calls the REST API. It never retries; callers decide how to degrade.
type Client struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		log:     log,
	}
}

// Health reports whether the server answers 2xx. The body is informational;
// an empty or non-JSON body from a 2xx answer is still healthy.
func (c *Client) Health(ctx context.Context) (Health, error) {
	data, _, err := c.send(ctx, "health", http.MethodGet, "/api/health", nil)
	if err != nil {
		return Health{}, err
	}

	var out Health
	_ = json.Unmarshal(data, &out)
	return out, nil
}

func (c *Client) Stats(ctx context.Context) (entities.Stats, error) {
	var out entities.Stats
	err := c.do(ctx, "stats", http.MethodGet, "/api/stats", nil, &out)
	return out, err
}

func (c *Client) Lessons(ctx context.Context, subject entities.Subject) ([]entities.Lesson, error) {
	var out []entities.Lesson
	if err := c.do(ctx, "lessons", http.MethodGet, "/api/"+string(subject)+"/lessons", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Quiz(ctx context.Context, subject entities.Subject) ([]entities.QuizQuestion, error) {
	var out []entities.QuizQuestion
	if err := c.do(ctx, "quiz", http.MethodGet, "/api/quiz/"+string(subject), nil, &out); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, &Error{Op: "quiz", Err: fmt.Errorf("%w: no questions", errMalformed)}
	}
	return out, nil
}

func (c *Client) CheckExercise(ctx context.Context, subject entities.Subject, lessonID int, answer string) (ExerciseVerdict, error) {
	in := exerciseRequest{Language: string(subject), LessonID: lessonID, Answer: answer}

	var out ExerciseVerdict
	err := c.do(ctx, "check exercise", http.MethodPost, "/api/check-exercise", in, &out)
	return out, err
}

// CheckQuiz submits answers; a verdict with a non-positive total is rejected as malformed.
func (c *Client) CheckQuiz(ctx context.Context, subject entities.Subject, answers entities.QuizAnswers) (QuizVerdict, error) {
	in := quizRequest{Language: string(subject), Answers: make(map[string]int, len(answers))}
	for q, opt := range answers {
		in.Answers[strconv.Itoa(q)] = opt
	}

	var out QuizVerdict
	if err := c.do(ctx, "check quiz", http.MethodPost, "/api/check-quiz", in, &out); err != nil {
		return QuizVerdict{}, err
	}
	if out.Total <= 0 || out.Score < 0 || out.Score > out.Total {
		return QuizVerdict{}, &Error{Op: "check quiz", Err: fmt.Errorf("%w: score %d of %d", errMalformed, out.Score, out.Total)}
	}
	return out, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, "login", http.MethodPost, "/api/login", credentials{Username: username, Password: password}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	var out AuthResult
	err := c.do(ctx, "register", http.MethodPost, "/api/register",
		credentials{Username: username, Email: email, Password: password}, &out)
	return out, err
}

func (c *Client) Ranking(ctx context.Context) ([]entities.RankingEntry, error) {
	var out []entities.RankingEntry
	if err := c.do(ctx, "ranking", http.MethodGet, "/api/ranking", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any) error {
	data, status, err := c.send(ctx, op, method, path, in)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Op: op, Status: status, Err: fmt.Errorf("%w: %v", errMalformed, err)}
	}
	return nil
}

// send performs the request and returns the body and status of a 2xx response.
func (c *Client) send(ctx context.Context, op, method, path string, in any) ([]byte, int, error) {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, &Error{Op: op, Err: err}
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("op", op),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, 0, &Error{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, &Error{Op: op, Status: resp.StatusCode, Err: err}
	}

	c.log.Debug("request done",
		zap.String("op", op),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, &Error{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status: %s", errorText(data))}
	}
	return data, resp.StatusCode, nil
}

// errorText extracts {"error": "..."} from a failed response, or returns the raw body.
func errorText(data []byte) string {
	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		return body.Error
	}
	return strings.TrimSpace(string(data))
}
