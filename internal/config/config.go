// Package config defines the application configuration and its resolution
// from command-line flags, MATHSOLVE_* environment variables and an optional
// YAML file.
package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/mathsolve/internal/errors"
)

// EnvPrefix is the prefix shared by every environment variable override.
const EnvPrefix = "MATHSOLVE_"

// Default values applied before file, environment and flag resolution.
const (
	DefaultProviderTimeout = 10 * time.Second
	DefaultTimeout         = 60 * time.Second
	DefaultArbiter         = "gemini"
	DefaultAddr            = ":8080"
	DefaultRateLimit       = 5.0
	DefaultRateBurst       = 10
	DefaultGraphCacheTTL   = 10 * time.Minute
)

// Arbiters lists the accepted values of the --arbiter flag.
var Arbiters = []string{"gemini", "majority", "first"}

// ProviderCredentials holds the secrets and endpoints of the remote
// providers. None of these fields are exposed as flags.
type ProviderCredentials struct {
	GoogleAPIKey      string `yaml:"google_api_key"`
	GoogleModel       string `yaml:"google_model"`
	GoogleBaseURL     string `yaml:"google_base_url"`
	DeepSeekAPIKey    string `yaml:"deepseek_api_key"`
	DeepSeekModel     string `yaml:"deepseek_model"`
	DeepSeekBaseURL   string `yaml:"deepseek_base_url"`
	WolframAppID      string `yaml:"wolfram_app_id"`
	WolframBaseURL    string `yaml:"wolfram_base_url"`
	StackExchangeKey  string `yaml:"stackexchange_key"`
	StackExchangeSite string `yaml:"stackexchange_site"`
	StackExchangeURL  string `yaml:"stackexchange_base_url"`
}

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Query is the math problem to solve in one-shot mode.
	Query string
	// Providers restricts the run to the named providers. Empty means all,
	// in registration order.
	Providers []string
	// Arbiter selects the best-answer strategy.
	Arbiter string
	// ProviderTimeout bounds every individual provider call.
	ProviderTimeout time.Duration
	// Timeout bounds a whole query, arbitration included.
	Timeout time.Duration
	// Graph enables plotting of the expression after the first "=".
	Graph bool

	Quiet      bool
	Verbose    bool
	JSON       bool
	OutputFile string

	REPL  bool
	TUI   bool
	Serve bool

	// Addr is the HTTP listen address in server mode.
	Addr           string
	RateLimit      float64
	RateBurst      int
	AllowedOrigins []string

	// RedisAddr enables the graph image cache when non-empty.
	RedisAddr     string
	GraphCacheTTL time.Duration

	ConfigFile string
	Completion string

	Credentials ProviderCredentials
}

// ParseConfig parses the command-line arguments and resolves the final
// configuration with the priority: CLI flags > environment > config file >
// defaults.
//
// Positional arguments are joined into the query when -q is not given.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableProviders []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [flags] [query]\n\n", programName)
		fmt.Fprintf(errorWriter, "Dispatches a math query to every provider concurrently and selects the best answer.\n\n")
		fs.PrintDefaults()
	}

	config := AppConfig{}
	var providers, origins string
	fs.StringVar(&config.Query, "q", "", "Math query to solve.")
	fs.StringVar(&config.Query, "query", "", "Math query to solve (alias for -q).")
	fs.StringVar(&providers, "providers", "", "Comma-separated providers to query ("+strings.Join(availableProviders, ", ")+"). Empty means all.")
	fs.StringVar(&config.Arbiter, "arbiter", DefaultArbiter, "Best-answer strategy ("+strings.Join(Arbiters, ", ")+").")
	fs.DurationVar(&config.ProviderTimeout, "provider-timeout", DefaultProviderTimeout, "Deadline for each provider call.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Deadline for a whole query.")
	fs.BoolVar(&config.Graph, "graph", true, "Render a graph of the expression after '='.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print only the best answer.")
	fs.BoolVar(&config.Verbose, "v", false, "Show every provider's full answer.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Show every provider's full answer (alias for -v).")
	fs.BoolVar(&config.JSON, "json", false, "Print the aggregate result as JSON.")
	fs.StringVar(&config.OutputFile, "o", "", "Write the result report to this file.")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result report to this file (alias for -o).")
	fs.BoolVar(&config.REPL, "repl", false, "Start an interactive session.")
	fs.BoolVar(&config.TUI, "tui", false, "Start the interactive dashboard.")
	fs.BoolVar(&config.Serve, "serve", false, "Start the HTTP server.")
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "HTTP listen address.")
	fs.Float64Var(&config.RateLimit, "rate-limit", DefaultRateLimit, "Requests per second allowed per client IP.")
	fs.IntVar(&config.RateBurst, "rate-burst", DefaultRateBurst, "Request burst allowed per client IP.")
	fs.StringVar(&origins, "allowed-origins", "*", "Comma-separated CORS origins.")
	fs.StringVar(&config.RedisAddr, "redis", "", "Redis address for the graph cache (disabled when empty).")
	fs.DurationVar(&config.GraphCacheTTL, "graph-cache-ttl", DefaultGraphCacheTTL, "Lifetime of cached graph images.")
	fs.StringVar(&config.ConfigFile, "config", "", "YAML configuration file.")
	fs.StringVar(&config.Completion, "completion", "", "Generate a shell completion script (bash, zsh, fish, powershell).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if config.Query == "" && fs.NArg() > 0 {
		config.Query = strings.Join(fs.Args(), " ")
	}
	config.Providers = splitList(providers)
	config.AllowedOrigins = splitList(origins)

	explicit := explicitlySet(fs)
	if config.ConfigFile == "" {
		config.ConfigFile = os.Getenv(EnvPrefix + "CONFIG")
	}
	if config.ConfigFile != "" {
		file, err := LoadFile(config.ConfigFile)
		if err != nil {
			return AppConfig{}, err
		}
		applyFileOverrides(&config, file, explicit)
	}
	applyEnvOverrides(&config, explicit)

	if err := config.Validate(availableProviders); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate(availableProviders []string) error {
	if c.ProviderTimeout <= 0 {
		return apperrors.NewConfigError("provider timeout must be positive, got %s", c.ProviderTimeout)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if !slices.Contains(Arbiters, c.Arbiter) {
		return apperrors.NewConfigError("unknown arbiter %q (expected one of %s)", c.Arbiter, strings.Join(Arbiters, ", "))
	}
	for _, p := range c.Providers {
		if !containsName(availableProviders, p) {
			return apperrors.NewConfigError("unknown provider %q (expected one of %s)", p, strings.Join(availableProviders, ", "))
		}
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return apperrors.NewConfigError("rate limit and burst must be positive")
	}
	modes := 0
	for _, m := range []bool{c.REPL, c.TUI, c.Serve} {
		if m {
			modes++
		}
	}
	if modes > 1 {
		return apperrors.NewConfigError("--repl, --tui and --serve are mutually exclusive")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// containsName matches provider names ignoring case, spaces, hyphens and
// underscores.
func containsName(list []string, s string) bool {
	for _, item := range list {
		if foldName(item) == foldName(s) {
			return true
		}
	}
	return false
}

func foldName(s string) string {
	r := strings.NewReplacer(" ", "", "-", "", "_", "")
	return strings.ToLower(r.Replace(s))
}
