package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"net/url"
	"strings"
)

const (
	defaultStackExchangeBaseURL = "https://api.stackexchange.com"
	defaultStackExchangeSite    = "math"
)

// StackExchangeConfig configures the Stack Exchange adapter. Key is
// optional; it raises the anonymous request quota.
type StackExchangeConfig struct {
	Key     string
	Site    string
	BaseURL string
	Client  *http.Client
}

// StackExchange searches Mathematics Stack Exchange for an answered
// question matching the query.
type StackExchange struct {
	cfg    StackExchangeConfig
	client *http.Client
}

// NewStackExchange creates the adapter.
func NewStackExchange(cfg StackExchangeConfig) *StackExchange {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultStackExchangeBaseURL
	}
	if cfg.Site == "" {
		cfg.Site = defaultStackExchangeSite
	}
	return &StackExchange{cfg: cfg, client: defaultClient(cfg.Client)}
}

// Name returns "Stack Exchange".
func (s *StackExchange) Name() string { return StackExchangeName }

type seSearchResponse struct {
	Items []struct {
		Title      string `json:"title"`
		Link       string `json:"link"`
		IsAnswered bool   `json:"is_answered"`
		Score      int    `json:"score"`
	} `json:"items"`
	ErrorMessage string `json:"error_message"`
}

// Solve returns the title and link of the most relevant answered question.
func (s *StackExchange) Solve(ctx context.Context, query string) (string, error) {
	params := url.Values{}
	params.Set("order", "desc")
	params.Set("sort", "relevance")
	params.Set("q", query)
	params.Set("answers", "1")
	params.Set("site", s.cfg.Site)
	params.Set("pagesize", "5")
	if s.cfg.Key != "" {
		params.Set("key", s.cfg.Key)
	}
	endpoint := strings.TrimRight(s.cfg.BaseURL, "/") + "/2.3/search/advanced?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var out seSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if out.ErrorMessage != "" {
		return "", fmt.Errorf("stack exchange: %s", out.ErrorMessage)
	}
	for _, item := range out.Items {
		if item.IsAnswered {
			return fmt.Sprintf("%s\n%s", html.UnescapeString(item.Title), item.Link), nil
		}
	}
	return "", ErrNoAnswer
}
