package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

const (
	defaultDeepSeekBaseURL = "https://api.deepseek.com"
	defaultDeepSeekModel   = "deepseek-chat"
)

// DeepSeekConfig configures the DeepSeek adapter.
type DeepSeekConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

// DeepSeek answers queries through the OpenAI-compatible chat completions
// endpoint.
type DeepSeek struct {
	cfg    DeepSeekConfig
	client *http.Client
}

// NewDeepSeek creates the adapter, filling in the default model and URL.
func NewDeepSeek(cfg DeepSeekConfig) *DeepSeek {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultDeepSeekBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultDeepSeekModel
	}
	return &DeepSeek{cfg: cfg, client: defaultClient(cfg.Client)}
}

// Name returns "DeepSeek".
func (d *DeepSeek) Name() string { return DeepSeekName }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Solve sends the query as a single user turn.
func (d *DeepSeek) Solve(ctx context.Context, query string) (string, error) {
	if d.cfg.APIKey == "" {
		return "", ErrNotConfigured
	}
	body, err := json.Marshal(chatRequest{
		Model: d.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: "You are a precise math assistant. Give the final answer clearly."},
			{Role: "user", Content: query},
		},
	})
	if err != nil {
		return "", err
	}
	endpoint := strings.TrimRight(d.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+d.cfg.APIKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var out chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", ErrNoAnswer
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
