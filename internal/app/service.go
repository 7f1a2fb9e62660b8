// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/okian/lcboard/internal/adapters/leetcode"
	"github.com/okian/lcboard/internal/domain/contest"
	"github.com/okian/lcboard/internal/domain/model"
	"github.com/okian/lcboard/internal/domain/solveset"
	"github.com/okian/lcboard/internal/domain/types"
	"github.com/okian/lcboard/pkg/logger"
	"github.com/okian/lcboard/pkg/metrics"
)

// Client is the remote data dependency. *leetcode.Client satisfies it;
// tests substitute fakes.
type Client interface {
	RecentAcceptedSubmissions(ctx context.Context, username string, limit int) ([]model.Submission, error)
	ContestHistory(ctx context.Context, username string) ([]model.ContestEntry, error)
}

// Service implements the API dependencies for the tracker. It is
// stateless between runs: every report rebuilds its accumulators from
// scratch, so runs never contaminate each other.
type Service struct {
	mu sync.RWMutex

	// Remote data client configuration
	client       Client
	upstreamURL  string
	relayReferer string
	fetchTimeout time.Duration

	// Aggregation configuration
	submissionLimit int
	maxContests     int
	maxUsernames    int
	concurrent      bool

	// State
	started       bool
	reportRuns    atomic.Int64
	fetchFailures atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithClient sets a custom remote data client.
func WithClient(c Client) Option {
	return func(s *Service) {
		if c != nil {
			s.client = c
		}
	}
}

// WithUpstream sets the upstream GraphQL endpoint, the Referer header and
// the per-request timeout used when the Service builds its own client.
func WithUpstream(url, referer string, timeout time.Duration) Option {
	return func(s *Service) {
		if url != "" {
			s.upstreamURL = url
		}
		if referer != "" {
			s.relayReferer = referer
		}
		if timeout > 0 {
			s.fetchTimeout = timeout
		}
	}
}

// WithSubmissionLimit bounds the recent-submissions query per user.
func WithSubmissionLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.submissionLimit = limit
		}
	}
}

// WithMaxContests bounds normalized attended contests per user.
func WithMaxContests(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxContests = n
		}
	}
}

// WithMaxUsernames caps how many handles one report may request.
func WithMaxUsernames(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxUsernames = n
		}
	}
}

// WithConcurrentFetch switches per-user fetches to parallel. Sequential
// is the reference behavior; completion order stays deterministic there,
// which is worth keeping for debugging.
func WithConcurrentFetch(enabled bool) Option {
	return func(s *Service) {
		s.concurrent = enabled
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		submissionLimit: leetcode.DefaultSubmissionLimit,
		maxContests:     contest.DefaultMaxResults,
		maxUsernames:    10,
		fetchTimeout:    15 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.client == nil {
		opts := []leetcode.Option{
			leetcode.WithEndpoint(s.upstreamURL),
			leetcode.WithReferer(s.relayReferer),
		}
		if s.fetchTimeout > 0 {
			opts = append(opts, leetcode.WithHTTPClient(&http.Client{Timeout: s.fetchTimeout}))
		}
		s.client = leetcode.New(opts...)
	}
	s.started = true
	s.logger.Info(ctx, "tracker service started",
		logger.Int("submissionLimit", s.submissionLimit),
		logger.Int("maxContests", s.maxContests),
		logger.Bool("concurrentFetch", s.concurrent),
	)
	return nil
}

// Stop shuts the service down. There are no background resources to
// release; the method exists for lifecycle symmetry in main.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "tracker service stopped")
}

// BuildReport runs one full aggregation: per-user submissions, the
// common/unique classification, and the aligned rating chart. A failing
// fetch degrades that user to an empty contribution; it never aborts the
// run.
func (s *Service) BuildReport(ctx context.Context, usernames []string) (types.Report, error) {
	const op = "service.build_report"

	handles := make([]string, 0, len(usernames))
	for _, u := range usernames {
		if trimmed := strings.TrimSpace(u); trimmed != "" {
			handles = append(handles, trimmed)
		}
	}
	if len(handles) > s.maxUsernames {
		return types.Report{}, NewKind(op, ErrTooManyUsers)
	}

	start := time.Now()
	report := types.Report{
		RunID:       uuid.NewString(),
		Usernames:   handles,
		Submissions: []types.UserSubmissions{},
		FailedUsers: []string{},
	}
	if len(handles) == 0 {
		report.NoData = true
		report.Problems = solveset.NewTally().Partition()
		report.Chart = contest.Align(nil)
		return report, nil
	}

	// Pass 1: recent submissions.
	subResults := make([]solveset.UserResult, len(handles))
	subFailed := make([]bool, len(handles))
	s.forEachUser(ctx, handles, func(ctx context.Context, i int, username string) {
		subs, err := s.client.RecentAcceptedSubmissions(ctx, username, s.submissionLimit)
		if err != nil {
			s.recordFetchFailure(ctx, report.RunID, username, "submissions", err)
			subFailed[i] = true
			subs = nil
		}
		subResults[i] = solveset.Normalize(username, subs)
	})

	tally := solveset.NewTally()
	for _, res := range subResults {
		tally.AddUser(res.Titles)
		report.Submissions = append(report.Submissions, types.UserSubmissions{
			Username: res.Username,
			Rows:     res.Rows,
		})
	}
	report.Problems = tally.Partition()

	// Pass 2: contest histories. Independent of pass 1; shares nothing
	// but the handle list.
	histories := make([]contest.UserHistory, len(handles))
	histFailed := make([]bool, len(handles))
	s.forEachUser(ctx, handles, func(ctx context.Context, i int, username string) {
		entries, err := s.client.ContestHistory(ctx, username)
		if err != nil {
			s.recordFetchFailure(ctx, report.RunID, username, "contests", err)
			histFailed[i] = true
			entries = nil
		}
		histories[i] = contest.UserHistory{
			Username: username,
			Contests: contest.NormalizeHistory(entries, s.maxContests),
		}
	})
	report.Chart = contest.Align(histories)

	for i, u := range handles {
		if subFailed[i] || histFailed[i] {
			report.FailedUsers = append(report.FailedUsers, u)
		}
	}

	s.reportRuns.Add(1)
	durationMs := float64(time.Since(start).Milliseconds())
	metrics.RecordReportRun(durationMs, len(handles))
	s.logger.Info(ctx, "aggregation run completed",
		logger.String("runID", report.RunID),
		logger.Int("users", len(handles)),
		logger.Int("failedUsers", len(report.FailedUsers)),
		logger.Float64("durationMs", durationMs),
	)
	return report, nil
}

// RecentSubmissions serves the single-user read endpoint. Unlike
// BuildReport, client errors propagate so the API can map them to
// statuses.
func (s *Service) RecentSubmissions(ctx context.Context, username string, limit int) ([]types.SubmissionRow, error) {
	if limit <= 0 {
		limit = s.submissionLimit
	}
	subs, err := s.client.RecentAcceptedSubmissions(ctx, username, limit)
	if err != nil {
		return nil, err
	}
	return solveset.Normalize(strings.TrimSpace(username), subs).Rows, nil
}

// AttendedContests serves the single-user contest endpoint.
func (s *Service) AttendedContests(ctx context.Context, username string) ([]model.AttendedContest, error) {
	entries, err := s.client.ContestHistory(ctx, username)
	if err != nil {
		return nil, err
	}
	return contest.NormalizeHistory(entries, s.maxContests), nil
}

// forEachUser visits every handle with fn. Sequential by default: one
// user's round trip completes before the next begins. The concurrent mode
// is opt-in and writes only to the caller's index-addressed slots, so no
// extra synchronization is needed.
func (s *Service) forEachUser(ctx context.Context, handles []string, fn func(ctx context.Context, i int, username string)) {
	if !s.concurrent {
		for i, u := range handles {
			fn(ctx, i, u)
		}
		return
	}
	g, gctx := errgroup.WithContext(ctx)
	for i, u := range handles {
		i, u := i, u
		g.Go(func() error {
			fn(gctx, i, u)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Service) recordFetchFailure(ctx context.Context, runID, username, pass string, err error) {
	s.fetchFailures.Add(1)
	metrics.RecordUserFetchFailure()
	s.logger.Warn(ctx, "user fetch failed; contributing no data",
		logger.String("runID", runID),
		logger.String("username", username),
		logger.String("pass", pass),
		logger.Error(err),
	)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":         s.started,
		"concurrentFetch": s.concurrent,
		"submissionLimit": s.submissionLimit,
		"maxContests":     s.maxContests,
		"maxUsernames":    s.maxUsernames,
		"reportRuns":      int(s.reportRuns.Load()),
		"fetchFailures":   int(s.fetchFailures.Load()),
	}
}
