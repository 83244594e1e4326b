package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const defaultWolframBaseURL = "https://api.wolframalpha.com"

// WolframAlphaConfig configures the Wolfram Alpha adapter.
type WolframAlphaConfig struct {
	AppID   string
	BaseURL string
	Client  *http.Client
}

// WolframAlpha queries the Short Answers API, which returns a single line of
// plain text.
type WolframAlpha struct {
	cfg    WolframAlphaConfig
	client *http.Client
}

// NewWolframAlpha creates the adapter.
func NewWolframAlpha(cfg WolframAlphaConfig) *WolframAlpha {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultWolframBaseURL
	}
	return &WolframAlpha{cfg: cfg, client: defaultClient(cfg.Client)}
}

// Name returns "Wolfram Alpha".
func (w *WolframAlpha) Name() string { return WolframAlphaName }

// Solve returns the short answer. HTTP 501 means Wolfram Alpha did not
// understand the input and maps to ErrNoAnswer.
func (w *WolframAlpha) Solve(ctx context.Context, query string) (string, error) {
	if w.cfg.AppID == "" {
		return "", ErrNotConfigured
	}
	params := url.Values{}
	params.Set("appid", w.cfg.AppID)
	params.Set("i", query)
	endpoint := strings.TrimRight(w.cfg.BaseURL, "/") + "/v1/result?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	resp, err := w.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotImplemented {
		return "", ErrNoAnswer
	}
	if err := checkStatus(resp); err != nil {
		return "", err
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
