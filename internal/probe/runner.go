// Package probe drives a running tracker instance end to end: it requests
// a report for a set of handles, checks the response for internal
// consistency, and prints a summary. Used for smoke testing a deployment.
package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/okian/lcboard/internal/domain/types"
	"github.com/okian/lcboard/pkg/logger"
)

// Run executes the complete probe.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime:      time.Now(),
		UsersRequested: len(config.Usernames),
	}

	logger.Get().Info(ctx, "starting tracker probe",
		logger.String("baseURL", config.BaseURL),
		logger.Int("users", len(config.Usernames)),
		logger.String("timeout", config.Timeout.String()))

	client := &http.Client{Timeout: config.Timeout}

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Build a report
	report, err := buildReport(ctx, client, config)
	if err != nil {
		return fmt.Errorf("report request failed: %w", err)
	}
	stats.UsersFailed = len(report.FailedUsers)
	stats.CommonTitles = len(report.Problems.Common)
	stats.UniqueTitles = len(report.Problems.Unique)
	stats.ChartLabels = len(report.Chart.Labels)
	for _, user := range report.Submissions {
		stats.SubmissionRows += len(user.Rows)
	}

	// Step 3: Verify the report
	if err := VerifyReport(report); err != nil {
		return fmt.Errorf("report verification failed: %w", err)
	}
	log.Println("report verification completed")

	// Step 4: Exercise the per-user endpoints
	if config.PerUser {
		if err := probePerUser(ctx, client, config, stats); err != nil {
			return fmt.Errorf("per-user probe failed: %w", err)
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayStats(report, stats, config.Verbose)
	return nil
}

// checkServiceHealth confirms the target is up before probing it.
func checkServiceHealth(ctx context.Context, client *http.Client, config *Config) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.BaseURL+"/healthz", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("service not reachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected health status %d", resp.StatusCode)
	}
	log.Println("service is healthy")
	return nil
}

func buildReport(ctx context.Context, client *http.Client, config *Config) (*types.Report, error) {
	body, err := json.Marshal(map[string][]string{"usernames": config.Usernames})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.BaseURL+"/report", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}
	var report types.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	log.Printf("report %s built for %d user(s)", report.RunID, len(report.Usernames))
	return &report, nil
}

// probePerUser hits the single-user read endpoints for every handle.
func probePerUser(ctx context.Context, client *http.Client, config *Config, stats *Stats) error {
	for _, username := range config.Usernames {
		for _, path := range []string{"/submissions", "/contests"} {
			url := config.BaseURL + "/users/" + username + path
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return fmt.Errorf("failed to create request: %w", err)
			}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("GET %s failed: %w", url, err)
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			stats.PerUserRequests++
			if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusBadGateway {
				return fmt.Errorf("GET %s: unexpected status %d", url, resp.StatusCode)
			}
			if config.Verbose {
				log.Printf("GET %s -> %d", url, resp.StatusCode)
			}
		}
	}
	return nil
}

func displayStats(report *types.Report, stats *Stats, verbose bool) {
	log.Printf("probe completed in %s", stats.Duration.Round(time.Millisecond))
	log.Printf("  users: %d requested, %d failed", stats.UsersRequested, stats.UsersFailed)
	log.Printf("  submissions: %d rows", stats.SubmissionRows)
	log.Printf("  problems: %d common, %d unique", stats.CommonTitles, stats.UniqueTitles)
	log.Printf("  chart: %d contests on the axis", stats.ChartLabels)
	if stats.PerUserRequests > 0 {
		log.Printf("  per-user requests: %d", stats.PerUserRequests)
	}
	if verbose {
		for _, title := range report.Problems.Common {
			log.Printf("  common: %s", title)
		}
		for _, label := range report.Chart.Labels {
			log.Printf("  contest: %s", label)
		}
	}
}
