// Package remote talks to the label service over HTTP.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Rican7/retry"
	"github.com/Rican7/retry/backoff"
	"github.com/Rican7/retry/strategy"
	"github.com/google/uuid"

	"labelterm/internal/model"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultAttempts = 3
	defaultBackoff  = 250 * time.Millisecond

	requestIDHeader = "X-Request-Id"
)

// ErrMalformed wraps responses that could not be decoded. They are not
// retried.
var ErrMalformed = errors.New("malformed response")

// Error is a non-2xx answer from the label service.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("label service: http %d", e.Status)
	}
	return fmt.Sprintf("label service: http %d: %s", e.Status, e.Message)
}

// Temporary reports whether the request may succeed if repeated.
func (e *Error) Temporary() bool {
	return e.Status >= 500 || e.Status == http.StatusTooManyRequests
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRetry sets how often idempotent reads are attempted and the linear
// backoff between attempts.
func WithRetry(attempts uint, wait time.Duration) Option {
	return func(c *Client) {
		c.attempts = attempts
		c.backoff = wait
	}
}

// Client implements action.Gateway and action.Displayer against the label
// service's /api routes.
type Client struct {
	baseURL  string
	client   *http.Client
	logger   *slog.Logger
	attempts uint
	backoff  time.Duration
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		baseURL:  baseURL,
		client:   &http.Client{Timeout: timeout},
		attempts: defaultAttempts,
		backoff:  defaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With(slog.String("component", "remote"))
	if c.attempts == 0 {
		c.attempts = 1
	}
	return c
}

// Edit appends an edit to the project's log. Every argument is sent as a
// JSON-encoded form value.
func (c *Client) Edit(ctx context.Context, session, kind string, args map[string]any) (*model.Payload, error) {
	form := url.Values{}
	for key, value := range args {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", key, err)
		}
		form.Set(key, string(encoded))
	}
	var payload model.Payload
	path := "/api/edit/" + url.PathEscape(session) + "/" + url.PathEscape(kind)
	if err := c.do(ctx, http.MethodPost, path, form, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) Undo(ctx context.Context, session string) (*model.Payload, error) {
	var payload model.Payload
	if err := c.do(ctx, http.MethodPost, "/api/undo/"+url.PathEscape(session), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

func (c *Client) Redo(ctx context.Context, session string) (*model.Payload, error) {
	var payload model.Payload
	if err := c.do(ctx, http.MethodPost, "/api/redo/"+url.PathEscape(session), nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// ChangeDisplay asks for the frame, channel or feature shown. It does not
// touch the edit log and is retried.
func (c *Client) ChangeDisplay(ctx context.Context, session, attr string, value int) (*model.Payload, error) {
	var payload model.Payload
	path := "/api/changedisplay/" + url.PathEscape(session) + "/" + url.PathEscape(attr) + "/" + strconv.Itoa(value)
	err := c.withRetry(ctx, func() error {
		return c.do(ctx, http.MethodPost, path, nil, &payload)
	})
	if err != nil {
		return nil, err
	}
	return &payload, nil
}

// Project loads a project's shape and first frame.
func (c *Client) Project(ctx context.Context, session string) (*Project, error) {
	var project Project
	err := c.withRetry(ctx, func() error {
		return c.do(ctx, http.MethodGet, "/api/getproject/"+url.PathEscape(session), nil, &project)
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// withRetry repeats fn while it fails with a transport or temporary server
// error.
func (c *Client) withRetry(ctx context.Context, fn func() error) error {
	var final error
	err := retry.Retry(func(attempt uint) error {
		err := fn()
		if err != nil && retryable(ctx, err) {
			c.logger.Warn("request failed, retrying", slog.Uint64("attempt", uint64(attempt)), slog.Any("error", err))
			return err
		}
		final = err
		return nil
	}, strategy.Limit(c.attempts), strategy.Backoff(backoff.Linear(c.backoff)))
	if err != nil {
		return err
	}
	return final
}

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var remoteErr *Error
	if errors.As(err, &remoteErr) {
		return remoteErr.Temporary()
	}
	return !errors.Is(err, ErrMalformed)
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	requestID := uuid.NewString()
	request.Header.Set("Accept", "application/json")
	request.Header.Set(requestIDHeader, requestID)
	if form != nil {
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Error("request failed", slog.String("method", method), slog.String("path", path), slog.String("request_id", requestID), slog.Any("error", err))
		return err
	}
	defer response.Body.Close()
	c.logger.Debug("request done",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", response.StatusCode),
		slog.String("request_id", requestID),
		slog.Duration("elapsed", time.Since(start)),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(response.Body, 4096))
		return decodeRemoteError(response.StatusCode, payload)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(response.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w: %w", path, ErrMalformed, err)
	}
	return nil
}

// decodeRemoteError reads the service's {"error": ...} or {"message": ...}
// bodies and falls back to the raw text.
func decodeRemoteError(status int, payload []byte) error {
	var wrapper struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload, &wrapper); err == nil {
		if msg := strings.TrimSpace(wrapper.Error); msg != "" {
			return &Error{Status: status, Message: msg}
		}
		if msg := strings.TrimSpace(wrapper.Message); msg != "" {
			return &Error{Status: status, Message: msg}
		}
	}
	return &Error{Status: status, Message: strings.TrimSpace(string(payload))}
}
