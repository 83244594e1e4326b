package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/agbru/mathsolve/internal/arbiter"
	"github.com/agbru/mathsolve/internal/cli"
	"github.com/agbru/mathsolve/internal/config"
	apperrors "github.com/agbru/mathsolve/internal/errors"
	"github.com/agbru/mathsolve/internal/graph"
	"github.com/agbru/mathsolve/internal/logging"
	"github.com/agbru/mathsolve/internal/orchestration"
	"github.com/agbru/mathsolve/internal/provider"
	"github.com/agbru/mathsolve/internal/tui"
	"github.com/agbru/mathsolve/internal/ui"
)

// Application represents the mathsolve application instance.
type Application struct {
	Config    config.AppConfig
	Factory   provider.Factory
	ErrWriter io.Writer
	// Logger receives provider, arbiter and graph faults. When nil, Run
	// picks one suited to the mode.
	Logger logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom provider Factory for the application.
func WithFactory(f provider.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger sets the application logger.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	available := provider.DefaultNames
	if app.Factory != nil {
		available = app.Factory.List()
	}

	programName := "mathsolve"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, available)
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	if app.Factory == nil {
		app.Factory = provider.NewDefaultRegistry(cfg.Credentials, &http.Client{})
	}
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	ui.InitTheme(false)

	switch {
	case a.Config.Serve:
		return a.runServer(ctx, out)
	case a.Config.REPL:
		return a.runREPL(ctx, out)
	case a.Config.TUI:
		return a.runTUI(ctx, out)
	default:
		return a.runQuery(ctx, out)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	names := a.Factory.List()
	slugs := make([]string, len(names))
	for i, n := range names {
		slugs[i] = provider.Slug(n)
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, slugs); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// logger returns the configured logger or a console logger whose level
// follows the output flags.
func (a *Application) logger() logging.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	level := zerolog.ErrorLevel
	switch {
	case a.Config.Quiet || a.Config.JSON:
		level = zerolog.Disabled
	case a.Config.Verbose:
		level = zerolog.DebugLevel
	}
	return logging.NewConsoleLogger(a.ErrWriter, "mathsolve", level)
}

// pipeline holds the assembled query pipeline of one run.
type pipeline struct {
	aggregator *orchestration.Aggregator
	providers  []provider.Provider
	// renderer plots graphs; it is built even when graphs are disabled for
	// queries so the server can still serve /graph.
	renderer graph.Renderer
	close    func()
}

// buildPipeline assembles providers, arbiter, renderer and coordinator.
// reg, when non-nil, receives the per-provider outcome metrics.
func (a *Application) buildPipeline(ctx context.Context, logger logging.Logger, reg prometheus.Registerer) (*pipeline, error) {
	providers, err := orchestration.GetProvidersToRun(a.Config, a.Factory)
	if err != nil {
		return nil, err
	}

	arb, err := arbiter.New(a.Config.Arbiter, a.generator(), orchestration.Placeholders(providers))
	if err != nil {
		return nil, apperrors.NewConfigError("%v", err)
	}

	coordOpts := []orchestration.CoordinatorOption{orchestration.WithLogger(logger)}
	if reg != nil {
		coordOpts = append(coordOpts, orchestration.WithMetrics(orchestration.NewProviderMetrics(reg)))
	}

	p := &pipeline{providers: providers, close: func() {}}
	p.renderer, p.close = a.graphRenderer(ctx, logger)

	aggOpts := []orchestration.AggregatorOption{
		orchestration.WithCoordinator(orchestration.NewCoordinator(a.Config.ProviderTimeout, coordOpts...)),
		orchestration.WithAggregatorLogger(logger),
	}
	if a.Config.Graph {
		aggOpts = append(aggOpts, orchestration.WithGraphRenderer(p.renderer))
	}
	p.aggregator = orchestration.NewAggregator(providers, arb, aggOpts...)
	return p, nil
}

// generator returns the Google AI provider as the judge model, or nil when
// the factory has none.
func (a *Application) generator() arbiter.Generator {
	p, err := a.Factory.Get(provider.GoogleAIName)
	if err != nil {
		return nil
	}
	gen, _ := p.(arbiter.Generator)
	return gen
}

// graphRenderer builds the plot renderer, fronted by the redis cache when
// an address is configured. An unreachable redis disables the cache only.
func (a *Application) graphRenderer(ctx context.Context, logger logging.Logger) (graph.Renderer, func()) {
	var renderer graph.Renderer = graph.NewPlotRenderer()
	if a.Config.RedisAddr == "" {
		return renderer, func() {}
	}
	client, err := graph.DialRedis(ctx, a.Config.RedisAddr)
	if err != nil {
		logger.Error("graph cache disabled", err, logging.String("addr", a.Config.RedisAddr))
		return renderer, func() {}
	}
	cache := graph.NewRedisCache(client, a.Config.GraphCacheTTL)
	return graph.NewCachedRenderer(renderer, cache, logger), func() { _ = client.Close() }
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context, _ io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	// The dashboard owns the terminal; log lines would corrupt it.
	logger := a.Logger
	if logger == nil {
		logger = logging.NopLogger{}
	}
	p, err := a.buildPipeline(ctx, logger, nil)
	if err != nil {
		return apperrors.HandleQueryError(err, 0, a.ErrWriter)
	}
	defer p.close()

	return tui.Run(ctx, p.aggregator, providerNames(p.providers), a.Config, Version)
}

// runREPL starts the interactive session.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	p, err := a.buildPipeline(ctx, a.logger(), nil)
	if err != nil {
		return apperrors.HandleQueryError(err, 0, a.ErrWriter)
	}
	defer p.close()

	repl := cli.NewREPL(p.aggregator, cli.REPLConfig{
		Timeout:   a.Config.Timeout,
		Verbose:   a.Config.Verbose,
		Providers: providerNames(p.providers),
		Arbiter:   a.Config.Arbiter,
	})
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

func providerNames(providers []provider.Provider) []string {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	return names
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
