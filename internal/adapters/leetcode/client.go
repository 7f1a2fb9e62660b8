// Package leetcode implements the remote data client for the upstream
// GraphQL API: recent accepted submissions and contest ranking history.
package leetcode

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/lcboard/internal/domain/model"
	"github.com/okian/lcboard/pkg/metrics"
)

// Default client configuration constants.
const (
	DefaultEndpoint        = "https://leetcode.com/graphql/"
	DefaultReferer         = "https://leetcode.com/"
	DefaultSubmissionLimit = 15
	defaultTimeout         = 15 * time.Second
)

// Option applies a configuration option to the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithEndpoint sets the GraphQL endpoint URL.
func WithEndpoint(url string) Option {
	return func(c *Client) {
		if url != "" {
			c.endpoint = url
		}
	}
}

// WithReferer sets the Referer header sent upstream. The upstream
// sometimes rejects requests without one.
func WithReferer(referer string) Option {
	return func(c *Client) {
		if referer != "" {
			c.referer = referer
		}
	}
}

// Client issues the two upstream query types. It performs exactly one
// request per call: no retries, no pagination, no caching.
type Client struct {
	httpClient *http.Client
	endpoint   string
	referer    string
}

// New constructs a Client with default configuration.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   DefaultEndpoint,
		referer:    DefaultReferer,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// timestampString tolerates upstream timestamps arriving as either a JSON
// string or a bare number; both decode to their textual form.
type timestampString string

func (t *timestampString) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		*t = ""
		return nil
	}
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) && len(s) >= 2 {
		s = s[1 : len(s)-1]
	}
	*t = timestampString(s)
	return nil
}

type submissionPayload struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	TitleSlug string          `json:"titleSlug"`
	Timestamp timestampString `json:"timestamp"`
}

type contestPayload struct {
	Attended            bool         `json:"attended"`
	TrendDirection      string       `json:"trendDirection"`
	ProblemsSolved      int          `json:"problemsSolved"`
	TotalProblems       int          `json:"totalProblems"`
	FinishTimeInSeconds int          `json:"finishTimeInSeconds"`
	Rating              model.Rating `json:"rating"`
	Ranking             int          `json:"ranking"`
	Contest             *struct {
		Title     string `json:"title"`
		StartTime int64  `json:"startTime"`
		TitleSlug string `json:"titleSlug"`
	} `json:"contest"`
}

// RecentAcceptedSubmissions fetches a user's recent accepted submissions,
// bounded by limit (server-side argument, defaulted when non-positive).
func (c *Client) RecentAcceptedSubmissions(ctx context.Context, username string, limit int) ([]model.Submission, error) {
	const op = "leetcode.recent_submissions"
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, NewKind(op, ErrEmptyUsername)
	}
	if limit <= 0 {
		limit = DefaultSubmissionLimit
	}

	raw, err := c.post(ctx, op, "recent_ac_submissions", recentAcceptedQuery, map[string]any{
		"username": username,
		"limit":    limit,
	})
	if err != nil {
		return nil, err
	}

	var res struct {
		Data struct {
			RecentAcSubmissionList []submissionPayload `json:"recentAcSubmissionList"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, WrapKind(op, ErrMalformed, err)
	}
	if res.Data.RecentAcSubmissionList == nil {
		return nil, NewKind(op, ErrMalformed)
	}

	subs := make([]model.Submission, 0, len(res.Data.RecentAcSubmissionList))
	for _, p := range res.Data.RecentAcSubmissionList {
		subs = append(subs, model.Submission{
			ID:        p.ID,
			Title:     p.Title,
			TitleSlug: p.TitleSlug,
			Timestamp: string(p.Timestamp),
		})
	}
	return subs, nil
}

// ContestHistory fetches a user's full contest ranking history, attended
// entries and all. Filtering to attended contests is the normalizer's job.
func (c *Client) ContestHistory(ctx context.Context, username string) ([]model.ContestEntry, error) {
	const op = "leetcode.contest_history"
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, NewKind(op, ErrEmptyUsername)
	}

	raw, err := c.post(ctx, op, "contest_history", contestHistoryQuery, map[string]any{
		"username": username,
	})
	if err != nil {
		return nil, err
	}

	var res struct {
		Data struct {
			UserContestRankingHistory []contestPayload `json:"userContestRankingHistory"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, WrapKind(op, ErrMalformed, err)
	}
	if res.Data.UserContestRankingHistory == nil {
		return nil, NewKind(op, ErrMalformed)
	}

	entries := make([]model.ContestEntry, 0, len(res.Data.UserContestRankingHistory))
	for _, p := range res.Data.UserContestRankingHistory {
		e := model.ContestEntry{
			Attended:            p.Attended,
			TrendDirection:      p.TrendDirection,
			ProblemsSolved:      p.ProblemsSolved,
			TotalProblems:       p.TotalProblems,
			FinishTimeInSeconds: p.FinishTimeInSeconds,
			Rating:              p.Rating,
			Ranking:             p.Ranking,
		}
		if p.Contest != nil {
			e.ContestTitle = p.Contest.Title
			e.ContestTitleSlug = p.Contest.TitleSlug
			e.StartTimeUnix = p.Contest.StartTime
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// post sends one GraphQL request and returns the raw response body after
// status handling. queryLabel feeds the upstream request metrics.
func (c *Client) post(ctx context.Context, op, queryLabel, query string, vars map[string]any) ([]byte, error) {
	payload, err := json.Marshal(graphqlRequest{Query: query, Variables: vars})
	if err != nil {
		return nil, WrapKind(op, ErrUpstream, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, WrapKind(op, ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-requested-with", "XMLHttpRequest")
	req.Header.Set("Referer", c.referer)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.RecordUpstreamRequest(queryLabel, "transport_error", float64(time.Since(start).Milliseconds()))
		return nil, WrapKind(op, ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	metrics.RecordUpstreamRequest(queryLabel, fmt.Sprintf("%d", resp.StatusCode), float64(time.Since(start).Milliseconds()))
	if err != nil {
		return nil, WrapKind(op, ErrUpstream, err)
	}

	if resp.StatusCode == http.StatusForbidden {
		return nil, WrapKind(op, ErrBlocked,
			fmt.Errorf("HTTP 403: the upstream refused the request; route traffic through the /api/graphql relay or check the configured referer"))
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, WrapKind(op, ErrUpstream,
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw))))
	}
	return raw, nil
}
