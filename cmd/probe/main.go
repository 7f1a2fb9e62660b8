package main

import (
	"context"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/okian/lcboard/internal/probe"
	"github.com/okian/lcboard/pkg/logger"
)

// Default configuration constants.
const (
	defaultTimeout      = 30 * time.Second
	defaultProbeTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL = flag.String("url", "http://localhost:9080", "Base URL of the service")
		users   = flag.String("users", "", "Comma-separated handles to build a report for")
		timeout = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		perUser = flag.Bool("per-user", false, "Also exercise the per-user read endpoints")
		verbose = flag.Bool("verbose", false, "Enable verbose logging")
	)
	flag.Parse()

	usernames := []string{}
	for _, u := range strings.Split(*users, ",") {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			usernames = append(usernames, trimmed)
		}
	}
	if len(usernames) == 0 {
		os.Stderr.WriteString("no handles given; use -users alice,bob\n")
		os.Exit(2)
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultProbeTimeout)
	defer cancel()

	config := &probe.Config{
		BaseURL:   *baseURL,
		Usernames: usernames,
		Timeout:   *timeout,
		PerUser:   *perUser,
		Verbose:   *verbose,
	}

	if err := probe.Run(ctx, config); err != nil {
		os.Stderr.WriteString("probe failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}
