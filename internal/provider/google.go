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
	defaultGoogleBaseURL = "https://generativelanguage.googleapis.com"
	defaultGoogleModel   = "gemini-2.0-flash"
)

// GoogleAIConfig configures the Gemini adapter.
type GoogleAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Client  *http.Client
}

// GoogleAI answers queries with the Gemini generateContent API. It also
// serves as the text generator of the Gemini arbiter.
type GoogleAI struct {
	cfg    GoogleAIConfig
	client *http.Client
}

// NewGoogleAI creates the adapter, filling in the default model and URL.
func NewGoogleAI(cfg GoogleAIConfig) *GoogleAI {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultGoogleBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultGoogleModel
	}
	return &GoogleAI{cfg: cfg, client: defaultClient(cfg.Client)}
}

// Name returns "Google AI".
func (g *GoogleAI) Name() string { return GoogleAIName }

// Solve asks the model for a worked answer.
func (g *GoogleAI) Solve(ctx context.Context, query string) (string, error) {
	return g.Generate(ctx, "Solve the following math problem. Show the key steps and state the final answer clearly.\n\n"+query)
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends a single-turn prompt and returns the concatenated text
// parts of the first candidate.
func (g *GoogleAI) Generate(ctx context.Context, prompt string) (string, error) {
	if g.cfg.APIKey == "" {
		return "", ErrNotConfigured
	}
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", strings.TrimRight(g.cfg.BaseURL, "/"), g.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.cfg.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var out geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", ErrNoAnswer
	}
	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
