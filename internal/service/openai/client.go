package openai

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"StockLens/internal/domain/failure"
	drepo "StockLens/internal/domain/repository"
	xhttp "StockLens/pkg/http"
	applogger "StockLens/pkg/logger"

	"github.com/goccy/go-json"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client talks to an OpenAI-compatible REST API. Every call is bounded by the
// client timeout and retried on transport errors up to the configured
// attempt count.
type Client struct {
	baseURL     string
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration
	doer        xhttp.Doer
	log         *applogger.Logger
	http        *xhttp.Client
}

// Option configures Client.
type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

func WithHTTPClient(d xhttp.Doer) Option {
	return func(c *Client) { c.doer = d }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithRetry sets the total attempt count and linear backoff step.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = attempts
		c.backoff = backoff
	}
}

func WithLogger(l *applogger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds the client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL:     defaultBaseURL,
		timeout:     30 * time.Second,
		maxAttempts: 3,
		backoff:     200 * time.Millisecond,
		log:         applogger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	httpOpts := []xhttp.ClientOption{
		xhttp.WithTimeout(c.timeout),
		xhttp.WithRetry(c.maxAttempts, c.backoff),
	}
	if c.doer != nil {
		httpOpts = append(httpOpts, xhttp.WithDoer(c.doer))
	}
	c.http = xhttp.NewClient(httpOpts...)
	return c
}

var _ drepo.AIProvider = (*Client)(nil)

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}

type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []drepo.ChatMessage `json:"messages"`
	Temperature    *float64            `json:"temperature,omitempty"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat     `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ListModels probes the models listing. It is the cheapest authenticated
// call the API offers.
func (c *Client) ListModels(ctx context.Context, secret string) error {
	_, err := c.do(ctx, secret, xhttp.MethodGet, "/models", nil)
	return err
}

// Complete runs a chat completion and returns the message contents of every
// choice.
func (c *Client) Complete(ctx context.Context, secret string, req drepo.CompletionRequest) (drepo.CompletionResponse, error) {
	body := chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONOutput {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return drepo.CompletionResponse{}, failure.Wrap(failure.TransportFailure, err)
	}

	raw, err := c.do(ctx, secret, xhttp.MethodPost, "/chat/completions", payload)
	if err != nil {
		return drepo.CompletionResponse{}, err
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return drepo.CompletionResponse{}, failure.Wrap(failure.TransportFailure, err)
	}
	out := drepo.CompletionResponse{Choices: make([]string, 0, len(resp.Choices))}
	for _, ch := range resp.Choices {
		out.Choices = append(out.Choices, ch.Message.Content)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, secret, method, path string, body []byte) ([]byte, error) {
	opts := &xhttp.RequestOptions{
		Method:  method,
		URL:     c.baseURL + path,
		Headers: map[string]string{"Authorization": "Bearer " + secret},
	}
	if body != nil {
		opts.Body = body
		opts.Headers["Content-Type"] = "application/json"
	}

	resp, err := c.http.SendRequest(ctx, opts)
	if err != nil {
		c.log.Warn("openai: request failed", applogger.String("path", path), applogger.Error(err))
		return nil, failure.Wrap(failure.TransportFailure, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, failure.Wrap(failure.TransportFailure, err)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return raw, nil
	}

	err = classify(resp.StatusCode, raw)
	c.log.Warn("openai: request rejected",
		applogger.String("path", path),
		applogger.Int("status", resp.StatusCode),
		applogger.String("kind", string(failure.KindOf(err))),
	)
	return nil, err
}

// classify maps a rejected response to a failure kind.
func classify(status int, body []byte) error {
	var ae apiError
	_ = json.Unmarshal(body, &ae)
	cause := fmt.Errorf("openai: status %d: %s", status, ae.Error.Message)

	if ae.Error.Code == "insufficient_quota" || ae.Error.Type == "insufficient_quota" {
		return failure.Wrap(failure.QuotaExceeded, cause)
	}
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return failure.Wrap(failure.AuthenticationFailure, cause)
	case http.StatusTooManyRequests:
		return failure.Wrap(failure.QuotaExceeded, cause)
	default:
		return failure.Wrap(failure.TransportFailure, cause)
	}
}
