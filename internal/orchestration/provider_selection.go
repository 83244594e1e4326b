package orchestration

import (
	"github.com/agbru/mathsolve/internal/config"
	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/provider"
)

// GetProvidersToRun determines which providers should be queried based on
// the configuration. The result is always in registration order.
func GetProvidersToRun(cfg config.AppConfig, factory provider.Factory) ([]provider.Provider, error) {
	providers, err := factory.Select(cfg.Providers)
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}
	if len(providers) == 0 {
		return nil, apperrors.NewConfigError("no providers selected")
	}
	return providers, nil
}
