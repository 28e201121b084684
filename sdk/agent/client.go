// Package agent provides a Go SDK for the AeroPilot aviation agent server.
//
// The server streams planning, tool and message events over SSE; this
// package decodes that stream into typed events and offers small helpers
// for assembling streamed text and correlating tool calls.
//
// Example usage:
//
//	client := agent.NewClient("http://localhost:8000")
//
//	events, errs, err := client.Chat(ctx, &agent.ChatRequest{
//	    Message: "Plan a route from EGLL to KJFK",
//	})
//	for event := range events {
//	    // Handle typed events
//	}
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client talks to the aviation agent server. It owns connection concerns
// only; retry and backoff policy belong to the caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *Logger
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client for non-streaming requests.
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout for non-streaming requests.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.httpClient.Timeout = d
	}
}

// WithLogger sets the logger used by this client.
func WithLogger(l *Logger) ClientOption {
	return func(client *Client) {
		if l != nil {
			client.logger = l
		}
	}
}

// NewClient creates a new client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: GetLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Health checks the server health.
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	rl := c.logger.StartRequest(http.MethodGet, "/health")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		rl.Error(err)
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		err := fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(body))
		rl.Error(err)
		return nil, err
	}

	var result HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	rl.Success(resp.StatusCode)
	return &result, nil
}

// Chat sends a message and streams the decoded response events. The event
// channel is closed when the stream ends; cancel the context to stop early.
// Malformed frames surface as UnknownEvent values, never on the error
// channel, which carries transport-level failures only.
func (c *Client) Chat(ctx context.Context, req *ChatRequest) (<-chan Event, <-chan error, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")
	httpReq.Header.Set("Cache-Control", "no-cache")

	rl := c.logger.StartRequest(http.MethodPost, "/chat")

	// Streaming responses must not inherit the request timeout.
	sseClient := &http.Client{Transport: c.httpClient.Transport}
	resp, err := sseClient.Do(httpReq)
	if err != nil {
		rl.Error(err)
		return nil, nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		err := fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(bodyBytes))
		rl.Error(err)
		return nil, nil, err
	}
	rl.Success(resp.StatusCode)

	events := make(chan Event, 100)
	errCh := make(chan error, 1)

	go func() {
		defer close(events)
		defer close(errCh)
		defer resp.Body.Close()

		decoder := NewDecoder(resp.Body)
		for {
			ev, err := decoder.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				// Context cancellation closes the body mid-read; report
				// the cancellation rather than the read error it caused.
				if ctx.Err() != nil {
					errCh <- ctx.Err()
				} else {
					errCh <- err
				}
				return
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
	}()

	return events, errCh, nil
}

// ChatResult is the outcome of a synchronous chat exchange.
type ChatResult struct {
	Text        string // assembled streamed message text
	FinalAnswer string // final_answer payload, when the server sent one
	SessionID   string
	Tokens      TokenUsage
	Err         string // terminal error event message, when the server sent one
}

// ChatSync sends a message and waits for the stream to finish, assembling
// the streamed text. Useful for one-shot, non-interactive callers.
func (c *Client) ChatSync(ctx context.Context, req *ChatRequest) (*ChatResult, error) {
	events, errCh, err := c.Chat(ctx, req)
	if err != nil {
		return nil, err
	}

	var assembler MessageAssembler
	result := &ChatResult{}

	for ev := range events {
		assembler.Apply(ev)
		switch ev := ev.(type) {
		case FinalAnswerEvent:
			result.FinalAnswer = ev.Answer
		case DoneEvent:
			result.SessionID = ev.SessionID
			result.Tokens = ev.Tokens
		case ErrorEvent:
			result.Err = ev.Message
		}
	}
	if err := <-errCh; err != nil {
		return nil, err
	}

	result.Text = assembler.Text()
	return result, nil
}
