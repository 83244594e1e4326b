package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	apperrors "github.com/agbru/mathsolve/internal/errors"
)

// FileConfig is the on-disk YAML representation. Pointer and zero-valued
// fields are treated as "not set" so the file never clobbers defaults it
// does not mention.
type FileConfig struct {
	Providers       []string            `yaml:"providers"`
	Arbiter         string              `yaml:"arbiter"`
	ProviderTimeout string              `yaml:"provider_timeout"`
	Timeout         string              `yaml:"timeout"`
	Graph           *bool               `yaml:"graph"`
	Server          FileServerConfig    `yaml:"server"`
	Cache           FileCacheConfig     `yaml:"cache"`
	Credentials     ProviderCredentials `yaml:"credentials"`
}

// FileServerConfig holds the server section of the YAML file.
type FileServerConfig struct {
	Addr           string   `yaml:"addr"`
	RateLimit      float64  `yaml:"rate_limit"`
	RateBurst      int      `yaml:"rate_burst"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// FileCacheConfig holds the graph cache section of the YAML file.
type FileCacheConfig struct {
	RedisAddr string `yaml:"redis_addr"`
	TTL       string `yaml:"ttl"`
}

// LoadFile reads and decodes a YAML configuration file.
func LoadFile(path string) (FileConfig, error) {
	var fc FileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, apperrors.WrapError(err, "read config file")
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, apperrors.NewConfigError("parse config file %s: %v", path, err)
	}
	return fc, nil
}

// applyFileOverrides copies every value present in the file onto config
// unless the corresponding flag was set on the command line.
func applyFileOverrides(config *AppConfig, fc FileConfig, explicit explicitFlags) {
	set := func(flags ...string) bool { return !explicit.any(flags...) }

	if len(fc.Providers) > 0 && set("providers") {
		config.Providers = fc.Providers
	}
	if fc.Arbiter != "" && set("arbiter") {
		config.Arbiter = fc.Arbiter
	}
	if d, ok := parseDuration(fc.ProviderTimeout); ok && set("provider-timeout") {
		config.ProviderTimeout = d
	}
	if d, ok := parseDuration(fc.Timeout); ok && set("timeout") {
		config.Timeout = d
	}
	if fc.Graph != nil && set("graph") {
		config.Graph = *fc.Graph
	}
	if fc.Server.Addr != "" && set("addr") {
		config.Addr = fc.Server.Addr
	}
	if fc.Server.RateLimit > 0 && set("rate-limit") {
		config.RateLimit = fc.Server.RateLimit
	}
	if fc.Server.RateBurst > 0 && set("rate-burst") {
		config.RateBurst = fc.Server.RateBurst
	}
	if len(fc.Server.AllowedOrigins) > 0 && set("allowed-origins") {
		config.AllowedOrigins = fc.Server.AllowedOrigins
	}
	if fc.Cache.RedisAddr != "" && set("redis") {
		config.RedisAddr = fc.Cache.RedisAddr
	}
	if d, ok := parseDuration(fc.Cache.TTL); ok && set("graph-cache-ttl") {
		config.GraphCacheTTL = d
	}
	config.Credentials = fc.Credentials
}

func parseDuration(s string) (time.Duration, bool) {
	if s == "" {
		return 0, false
	}
	d, err := time.ParseDuration(s)
	return d, err == nil
}
