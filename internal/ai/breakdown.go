// Package ai provides the AI task-breakdown provider: free-text task
// descriptions in, a structured main task plus subtask list out. The
// rest of the application treats the provider as opaque and only
// converts its duration shape into minutes.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 4096
	apiURL           = "https://api.anthropic.com/v1/messages"
	apiVersion       = "2023-06-01"
)

// ErrNoAPIKey is returned when no API key is configured.
var ErrNoAPIKey = errors.New("breakdown unavailable: no API key configured")

// ErrUnavailable wraps transport or API failures so callers can show a
// single "breakdown unavailable" state.
var ErrUnavailable = errors.New("breakdown unavailable")

// Duration is the {hours, minutes} shape the provider returns.
type Duration struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

// TotalMinutes flattens the duration into minutes for the scorer.
func (d Duration) TotalMinutes() int {
	return d.Hours*60 + d.Minutes
}

// BreakdownTask is the refined main task in a breakdown result.
type BreakdownTask struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    Duration `json:"duration"`
}

// BreakdownSubtask is one proposed subtask in a breakdown result.
type BreakdownSubtask struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Duration         Duration `json:"duration"`
	ImportanceFactor int      `json:"importance_factor"`
	Order            int      `json:"order"`
}

// BreakdownResult is the provider's fixed response shape.
type BreakdownResult struct {
	MainTask BreakdownTask      `json:"main_task"`
	Subtasks []BreakdownSubtask `json:"subtasks"`
}

// Provider turns a task description into a structured breakdown.
type Provider interface {
	BreakDown(ctx context.Context, description string) (*BreakdownResult, error)
}

// Client is the Claude-backed Provider implementation.
type Client struct {
	apiKey    string
	model     string
	maxTokens int
	client    *http.Client
}

// New creates a breakdown client. Empty model or non-positive maxTokens
// fall back to defaults.
func New(apiKey, modelName string, maxTokens int) *Client {
	if modelName == "" {
		modelName = defaultModel
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	return &Client{
		apiKey:    apiKey,
		model:     modelName,
		maxTokens: maxTokens,
		client:    &http.Client{},
	}
}

// BreakDown asks the model to split the described work into a refined
// main task and ordered subtasks. The call is read-only with respect to
// application state; callers persist the result only after it returns
// successfully.
func (c *Client) BreakDown(ctx context.Context, description string) (*BreakdownResult, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("breakdown: empty description")
	}

	resp, err := c.callAPI(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	result, err := parseBreakdown(text.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return result, nil
}

// parseBreakdown decodes the model's JSON reply, tolerating surrounding
// prose or markdown fences.
func parseBreakdown(text string) (*BreakdownResult, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in response")
	}

	var result BreakdownResult
	if err := json.Unmarshal([]byte(text[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("decoding breakdown: %w", err)
	}
	if result.MainTask.Title == "" {
		return nil, fmt.Errorf("breakdown missing main task")
	}
	return &result, nil
}

const systemPrompt = `You break a described piece of work into a refined main task and concrete subtasks.
Respond with ONLY a JSON object of this exact shape, no other text:
{
  "main_task": {"title": "...", "description": "...", "duration": {"hours": 0, "minutes": 0}},
  "subtasks": [
    {"title": "...", "description": "...", "duration": {"hours": 0, "minutes": 0}, "importance_factor": 5, "order": 1}
  ]
}
importance_factor is 1-10. order starts at 1 and increments. Keep subtasks actionable and under 2 hours each.`

// callAPI makes a single request to the Claude Messages API.
func (c *Client) callAPI(ctx context.Context, description string) (*apiResponse, error) {
	reqBody := apiRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		System:    systemPrompt,
		Messages: []apiMessage{
			{Role: "user", Content: description},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, apiURL, bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling Claude API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(respBody))
	}

	var result apiResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	return &result, nil
}

// apiRequest is the Claude Messages API request body.
type apiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	System    string       `json:"system"`
	Messages  []apiMessage `json:"messages"`
}

// apiMessage is a single conversation turn.
type apiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// apiContentBlock is one block of a response message.
type apiContentBlock struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// apiResponse is the Claude Messages API response body.
type apiResponse struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Role       string            `json:"role"`
	Content    []apiContentBlock `json:"content"`
	Model      string            `json:"model"`
	StopReason string            `json:"stop_reason"`
}

// apiErrorResponse is the Claude API error envelope.
type apiErrorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
