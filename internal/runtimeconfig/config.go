package runtimeconfig

import (
	"errors"
	"strings"
	"time"
)

var ErrURLCheckTimeoutInvalid = errors.New("courselint config: url check timeout must be positive")
var ErrURLCheckBatchSizeInvalid = errors.New("courselint config: url check batch size must be positive")
var ErrLoggingProviderRequired = errors.New("courselint config: logging provider is required when logging is enabled")
var ErrLoggingProviderUnknown = errors.New("courselint config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("courselint config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("courselint config: logging format is invalid")

// Config aggregates runtime options for the courselint module.
// Fields intentionally use simple types so host applications can embed the
// struct in their own configuration files.
type Config struct {
	Processing ProcessingConfig
	URLCheck   URLCheckConfig
	Logging    LoggingConfig
}

// ProcessingConfig captures defaults for the content pipeline.
type ProcessingConfig struct {
	// IncludeWip processes files tagged wip/ignore instead of skipping them.
	IncludeWip bool
}

// URLCheckConfig tunes the external URL reachability pass.
type URLCheckConfig struct {
	// Enabled turns the network-bound URL pass on. Off by default so the
	// pipeline stays free of network access unless the host opts in.
	Enabled bool
	// Timeout bounds each individual request.
	Timeout time.Duration
	// BatchSize is the fixed number of requests issued concurrently.
	BatchSize int
}

// LoggingConfig selects and tunes the logger provider.
type LoggingConfig struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns the canonical defaults: wip files excluded, URL
// checks disabled with conservative limits, logging off.
func DefaultConfig() Config {
	return Config{
		URLCheck: URLCheckConfig{
			Timeout:   10 * time.Second,
			BatchSize: 8,
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "json",
		},
	}
}

// Validate checks cross-field consistency. It returns the first violation
// encountered so callers surface one actionable error at a time.
func (c Config) Validate() error {
	if c.URLCheck.Enabled {
		if c.URLCheck.Timeout <= 0 {
			return ErrURLCheckTimeoutInvalid
		}
		if c.URLCheck.BatchSize <= 0 {
			return ErrURLCheckBatchSizeInvalid
		}
	}

	if c.Logging.Enabled {
		provider := strings.ToLower(strings.TrimSpace(c.Logging.Provider))
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		switch provider {
		case "gologger", "noop":
		default:
			return ErrLoggingProviderUnknown
		}
		if !validLoggingLevel(c.Logging.Level) {
			return ErrLoggingLevelInvalid
		}
		if !validLoggingFormat(c.Logging.Format) {
			return ErrLoggingFormatInvalid
		}
	}

	return nil
}

func validLoggingLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func validLoggingFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json", "console", "pretty":
		return true
	default:
		return false
	}
}
