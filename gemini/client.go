package gemini

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

const (
	// DefaultModel is the text model used when none is configured
	DefaultModel = "gemini-2.5-flash"
	//DefaultModel = "gemini-3-flash-preview"
)

// Client sends single-shot text prompts to Gemini using the official SDK
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a Gemini text client. A zero timeout leaves calls
// bounded only by the caller's context.
func NewClient(ctx context.Context, apiKey, model string, timeout time.Duration) (*Client, error) {
	// Initialize the Client
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	if model == "" {
		model = DefaultModel
	}

	return &Client{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.model
}

// Generate sends one prompt and returns the generated text. An empty
// string with a nil error means the model produced no text.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	c.mu.RLock()
	closed := c.closed
	c.mu.RUnlock()

	if closed {
		return "", fmt.Errorf("gemini client is closed")
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := ExtractText(resp)
	log.Printf("📥 Received from Gemini: %d chars in %s", len(text), time.Since(start).Round(time.Millisecond))
	return text, nil
}

// ExtractText pulls plain text out of a response: the SDK's aggregated
// text first, then every text part of every candidate joined by newlines.
func ExtractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if text := resp.Text(); strings.TrimSpace(text) != "" {
		return text
	}

	var parts []string
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part != nil && part.Text != "" {
				parts = append(parts, part.Text)
			}
		}
	}
	return strings.Join(parts, "\n")
}

// Close marks the client closed; later calls fail
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	return nil
}
