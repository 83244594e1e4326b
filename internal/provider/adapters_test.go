package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agbru/mathsolve/internal/config"
)

func configCredentials() config.ProviderCredentials {
	return config.ProviderCredentials{}
}

func TestGoogleAI_Solve(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-test:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		assert.Contains(t, req.Contents[0].Parts[0].Text, "solve x^2 - 4 = 0")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"x = 2 "},{"text":"or x = -2"}]}}]}`))
	}))
	defer server.Close()

	g := NewGoogleAI(GoogleAIConfig{APIKey: "test-key", Model: "gemini-test", BaseURL: server.URL})
	got, err := g.Solve(context.Background(), "solve x^2 - 4 = 0")
	require.NoError(t, err)
	assert.Equal(t, "x = 2 or x = -2", got)
	assert.Equal(t, "Google AI", g.Name())
}

func TestGoogleAI_Errors(t *testing.T) {
	t.Parallel()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()
		_, err := NewGoogleAI(GoogleAIConfig{}).Solve(context.Background(), "1+1")
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("upstream status", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
		}))
		defer server.Close()
		_, err := NewGoogleAI(GoogleAIConfig{APIKey: "k", BaseURL: server.URL}).Solve(context.Background(), "1+1")
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusTooManyRequests, statusErr.Code)
		assert.Contains(t, statusErr.Body, "quota")
	})

	t.Run("no candidates", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"candidates":[]}`))
		}))
		defer server.Close()
		_, err := NewGoogleAI(GoogleAIConfig{APIKey: "k", BaseURL: server.URL}).Solve(context.Background(), "1+1")
		assert.ErrorIs(t, err, ErrNoAnswer)
	})
}

func TestDeepSeek_Solve(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer ds-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "deepseek-chat", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "user", req.Messages[1].Role)
		assert.Equal(t, "integrate 2x", req.Messages[1].Content)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  x^2 + C\n"}}]}`))
	}))
	defer server.Close()

	d := NewDeepSeek(DeepSeekConfig{APIKey: "ds-key", BaseURL: server.URL})
	got, err := d.Solve(context.Background(), "integrate 2x")
	require.NoError(t, err)
	assert.Equal(t, "x^2 + C", got)
}

func TestDeepSeek_MissingKey(t *testing.T) {
	t.Parallel()
	_, err := NewDeepSeek(DeepSeekConfig{}).Solve(context.Background(), "1+1")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestWolframAlpha_Solve(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/result", r.URL.Path)
		assert.Equal(t, "APP", r.URL.Query().Get("appid"))
		if r.URL.Query().Get("i") == "gibberish" {
			w.WriteHeader(http.StatusNotImplemented)
			_, _ = w.Write([]byte("Wolfram|Alpha did not understand your input"))
			return
		}
		_, _ = w.Write([]byte("x = -2 or x = 2\n"))
	}))
	defer server.Close()

	wa := NewWolframAlpha(WolframAlphaConfig{AppID: "APP", BaseURL: server.URL})
	got, err := wa.Solve(context.Background(), "x^2 - 4 = 0")
	require.NoError(t, err)
	assert.Equal(t, "x = -2 or x = 2", got)

	_, err = wa.Solve(context.Background(), "gibberish")
	assert.ErrorIs(t, err, ErrNoAnswer)
}

func TestStackExchange_Solve(t *testing.T) {
	t.Parallel()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2.3/search/advanced", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "math", q.Get("site"))
		if q.Get("q") == "nothing" {
			_, _ = w.Write([]byte(`{"items":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"items":[
			{"title":"Unanswered","link":"https://math.stackexchange.com/q/1","is_answered":false},
			{"title":"Solving x^2 &amp; roots","link":"https://math.stackexchange.com/q/2","is_answered":true}
		]}`))
	}))
	defer server.Close()

	se := NewStackExchange(StackExchangeConfig{BaseURL: server.URL})
	got, err := se.Solve(context.Background(), "x^2 - 4 = 0")
	require.NoError(t, err)
	assert.Equal(t, "Solving x^2 & roots\nhttps://math.stackexchange.com/q/2", got)

	_, err = se.Solve(context.Background(), "nothing")
	assert.ErrorIs(t, err, ErrNoAnswer)
}

func TestAdapters_HonorContextCancellation(t *testing.T) {
	t.Parallel()
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-block:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(block)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	adapters := []Provider{
		NewGoogleAI(GoogleAIConfig{APIKey: "k", BaseURL: server.URL}),
		NewDeepSeek(DeepSeekConfig{APIKey: "k", BaseURL: server.URL}),
		NewWolframAlpha(WolframAlphaConfig{AppID: "k", BaseURL: server.URL}),
		NewStackExchange(StackExchangeConfig{BaseURL: server.URL}),
	}
	for _, p := range adapters {
		_, err := p.Solve(ctx, "1+1")
		assert.ErrorIs(t, err, context.Canceled, p.Name())
	}
}
