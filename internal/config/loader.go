package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if LCBOARD_CONFIG is set
//  3. env (prefix LCBOARD_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("LCBOARD_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: LCBOARD_ADDR, LCBOARD_SUBMISSION_LIMIT, ...
	// Map env keys like LCBOARD_MAX_CONTESTS -> max_contests (flat keys);
	// underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("LCBOARD_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "lcboard_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	if cfg.Addr == "" {
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.UpstreamURL == "" {
		return nil, fmt.Errorf("%w: upstream_url must not be empty", ErrInvalidConfig)
	}
	if cfg.MaxUsernames < 1 {
		return nil, fmt.Errorf("%w: max_usernames must be at least 1", ErrInvalidConfig)
	}
	return &cfg, nil
}
