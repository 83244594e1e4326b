package provider

import (
	"net/http"

	"github.com/agbru/mathsolve/internal/config"
)

// DefaultNames lists the built-in providers in registration order.
var DefaultNames = []string{GoogleAIName, DeepSeekName, SymPyName, WolframAlphaName, StackExchangeName}

// NewDefaultRegistry builds the five built-in adapters from creds. Adapters
// whose credentials are missing are still registered; they fail with
// ErrNotConfigured and show up as placeholders.
func NewDefaultRegistry(creds config.ProviderCredentials, client *http.Client) *Registry {
	return NewRegistry(
		NewGoogleAI(GoogleAIConfig{
			APIKey: creds.GoogleAPIKey, Model: creds.GoogleModel, BaseURL: creds.GoogleBaseURL, Client: client,
		}),
		NewDeepSeek(DeepSeekConfig{
			APIKey: creds.DeepSeekAPIKey, Model: creds.DeepSeekModel, BaseURL: creds.DeepSeekBaseURL, Client: client,
		}),
		NewSymbolic(),
		NewWolframAlpha(WolframAlphaConfig{
			AppID: creds.WolframAppID, BaseURL: creds.WolframBaseURL, Client: client,
		}),
		NewStackExchange(StackExchangeConfig{
			Key: creds.StackExchangeKey, Site: creds.StackExchangeSite, BaseURL: creds.StackExchangeURL, Client: client,
		}),
	)
}
