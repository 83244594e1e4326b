package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// explicitFlags is the set of flags given on the command line. Environment
// and file values never override them.
type explicitFlags map[string]bool

func explicitlySet(fs *flag.FlagSet) explicitFlags {
	set := explicitFlags{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func (e explicitFlags) any(names ...string) bool {
	for _, n := range names {
		if e[n] {
			return true
		}
	}
	return false
}

// envOverride binds MATHSOLVE_<key> to a config field. flags lists the
// command-line spellings that take precedence; credentials have none.
type envOverride struct {
	key   string
	flags []string
	apply func(*AppConfig, string)
}

func durationVar(field func(*AppConfig) *time.Duration) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if d, err := time.ParseDuration(v); err == nil {
			*field(c) = d
		}
	}
}

func boolVar(field func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *field(c) = parseBoolEnv(v, *field(c)) }
}

func stringVar(field func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *field(c) = v }
}

func listVar(field func(*AppConfig) *[]string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *field(c) = splitList(v) }
}

var envOverrides = []envOverride{
	{"PROVIDER_TIMEOUT", []string{"provider-timeout"}, durationVar(func(c *AppConfig) *time.Duration { return &c.ProviderTimeout })},
	{"TIMEOUT", []string{"timeout"}, durationVar(func(c *AppConfig) *time.Duration { return &c.Timeout })},
	{"GRAPH_CACHE_TTL", []string{"graph-cache-ttl"}, durationVar(func(c *AppConfig) *time.Duration { return &c.GraphCacheTTL })},
	{"RATE_LIMIT", []string{"rate-limit"}, func(c *AppConfig, v string) {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.RateLimit = f
		}
	}},
	{"RATE_BURST", []string{"rate-burst"}, func(c *AppConfig, v string) {
		if n, err := strconv.Atoi(v); err == nil {
			c.RateBurst = n
		}
	}},

	{"PROVIDERS", []string{"providers"}, listVar(func(c *AppConfig) *[]string { return &c.Providers })},
	{"ALLOWED_ORIGINS", []string{"allowed-origins"}, listVar(func(c *AppConfig) *[]string { return &c.AllowedOrigins })},
	{"ARBITER", []string{"arbiter"}, stringVar(func(c *AppConfig) *string { return &c.Arbiter })},
	{"ADDR", []string{"addr"}, stringVar(func(c *AppConfig) *string { return &c.Addr })},
	{"REDIS", []string{"redis"}, stringVar(func(c *AppConfig) *string { return &c.RedisAddr })},
	{"OUTPUT", []string{"output", "o"}, stringVar(func(c *AppConfig) *string { return &c.OutputFile })},

	{"GRAPH", []string{"graph"}, boolVar(func(c *AppConfig) *bool { return &c.Graph })},
	{"VERBOSE", []string{"v", "verbose"}, boolVar(func(c *AppConfig) *bool { return &c.Verbose })},
	{"QUIET", []string{"quiet"}, boolVar(func(c *AppConfig) *bool { return &c.Quiet })},
	{"JSON", []string{"json"}, boolVar(func(c *AppConfig) *bool { return &c.JSON })},
	{"SERVE", []string{"serve"}, boolVar(func(c *AppConfig) *bool { return &c.Serve })},

	{"GOOGLE_API_KEY", nil, stringVar(func(c *AppConfig) *string { return &c.Credentials.GoogleAPIKey })},
	{"GOOGLE_MODEL", nil, stringVar(func(c *AppConfig) *string { return &c.Credentials.GoogleModel })},
	{"GOOGLE_BASE_URL", nil, stringVar(func(c *AppConfig) *string { return &c.Credentials.GoogleBaseURL })},
	{"DEEPSEEK_API_KEY", nil, stringVar(func(c *AppConfig) *string { return &c.Credentials.DeepSeekAPIKey })},
	{"DEEPSEEK_MODEL", nil, stringVar(func(c *AppConfig) *string { return &c.Credentials.DeepSeekModel })},
	{"DEEPSEEK_BASE_URL", nil, stringVar(func(c *AppConfig) *string { return &c.Credentials.DeepSeekBaseURL })},
	{"WOLFRAM_APP_ID", nil, stringVar(func(c *AppConfig) *string { return &c.Credentials.WolframAppID })},
	{"WOLFRAM_BASE_URL", nil, stringVar(func(c *AppConfig) *string { return &c.Credentials.WolframBaseURL })},
	{"STACKEXCHANGE_KEY", nil, stringVar(func(c *AppConfig) *string { return &c.Credentials.StackExchangeKey })},
	{"STACKEXCHANGE_SITE", nil, stringVar(func(c *AppConfig) *string { return &c.Credentials.StackExchangeSite })},
	{"STACKEXCHANGE_BASE_URL", nil, stringVar(func(c *AppConfig) *string { return &c.Credentials.StackExchangeURL })},
}

// parseBoolEnv accepts true/1/yes and false/0/no in any case. Anything else
// leaves fallback in place.
func parseBoolEnv(val string, fallback bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return fallback
}

// applyEnvOverrides copies non-empty MATHSOLVE_* values onto config, skipping
// fields whose flag was given explicitly.
func applyEnvOverrides(config *AppConfig, explicit explicitFlags) {
	for _, o := range envOverrides {
		if explicit.any(o.flags...) {
			continue
		}
		if v := os.Getenv(EnvPrefix + o.key); v != "" {
			o.apply(config, v)
		}
	}
}
