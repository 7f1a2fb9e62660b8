// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// UpstreamURL is the GraphQL endpoint both the client and the relay
	// talk to.
	UpstreamURL string `koanf:"upstream_url"`

	// RelayReferer is the Referer header forwarded with upstream calls.
	RelayReferer string `koanf:"relay_referer"`

	// SubmissionLimit bounds the recent-submissions query per user.
	SubmissionLimit int `koanf:"submission_limit"`

	// MaxContests bounds how many attended contests survive
	// normalization per user.
	MaxContests int `koanf:"max_contests"`

	// FetchTimeoutMS bounds one upstream round trip.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// ConcurrentFetch switches per-user fetches from the default
	// sequential mode to parallel. Sequential is the reference behavior;
	// keep it off unless latency matters more than debuggability.
	ConcurrentFetch bool `koanf:"concurrent_fetch"`

	// MaxUsernames caps how many handles one report may request.
	MaxUsernames int `koanf:"max_usernames"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:        "info",
		Addr:            ":9080",
		UpstreamURL:     "https://leetcode.com/graphql/",
		RelayReferer:    "https://leetcode.com/",
		SubmissionLimit: 15,
		MaxContests:     200,
		FetchTimeoutMS:  15_000,
		ConcurrentFetch: false,
		MaxUsernames:    10,
	}
}
