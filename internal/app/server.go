package app

import (
	"context"
	"io"
	"os/signal"
	"syscall"
	"time"

	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/logging"
	"github.com/agbru/mathsolve/internal/server"
	"github.com/agbru/mathsolve/internal/sysmon"
)

// sysmonInterval is the sampling period of the /health system stats.
const sysmonInterval = 5 * time.Second

// runServer serves the pipeline over HTTP until ctx or a signal ends it.
func (a *Application) runServer(ctx context.Context, _ io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := a.Logger
	if logger == nil {
		logger = logging.NewLogger(a.ErrWriter, "server")
	}

	metrics := server.NewMetrics()
	p, err := a.buildPipeline(ctx, logger, metrics.Registry())
	if err != nil {
		return apperrors.HandleQueryError(err, 0, a.ErrWriter)
	}
	defer p.close()

	monitor := sysmon.NewMonitor(sysmonInterval)
	go monitor.Run(ctx)

	cfg := server.DefaultConfig()
	cfg.Addr = a.Config.Addr
	cfg.QueryTimeout = a.Config.Timeout
	cfg.RateLimit = a.Config.RateLimit
	cfg.RateBurst = a.Config.RateBurst
	cfg.Providers = providerNames(p.providers)
	if len(a.Config.AllowedOrigins) > 0 {
		cfg.Security.AllowedOrigins = a.Config.AllowedOrigins
	}

	srv := server.New(p.aggregator, p.renderer, cfg,
		server.WithLogger(logger),
		server.WithMetrics(metrics),
		server.WithSystemMonitor(monitor),
	)
	if err := srv.Start(ctx); err != nil {
		logger.Error("server stopped", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}
