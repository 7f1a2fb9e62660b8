// Package types contains common read-side types used across the application.
package types

// SubmissionRow is one row of a user's recent-submissions table.
// SubmittedAt carries a formatted UTC time, or the raw upstream value when
// the timestamp could not be parsed.
type SubmissionRow struct {
	Username    string `json:"username"`
	Title       string `json:"title"`
	SubmittedAt string `json:"submitted_at"`
}

// UserSubmissions groups one user's normalized submission rows.
type UserSubmissions struct {
	Username string          `json:"username"`
	Rows     []SubmissionRow `json:"rows"`
}

// ProblemSets is the cross-user classification of solved problem titles.
type ProblemSets struct {
	// Common holds titles solved by every requested user, sorted.
	Common []string `json:"common"`
	// Unique holds titles solved by some but not all users, sorted.
	Unique []string `json:"unique"`
}

// UserSeries is one user's rating series positioned against the shared
// contest axis. Ratings has exactly one element per axis slot; nil marks a
// contest the user did not attend (or an unusable rating).
type UserSeries struct {
	Username string     `json:"username"`
	Ratings  []*float64 `json:"ratings"`
	// Attended counts the user's own attended contests, used by the
	// front-end to style sparse series.
	Attended int `json:"attended"`
}

// RatingChart is the aligned multi-series dataset for the rating chart.
type RatingChart struct {
	// Empty signals there is nothing to plot; callers render a
	// placeholder instead of an empty chart.
	Empty        bool         `json:"empty"`
	Labels       []string     `json:"labels"`
	Series       []UserSeries `json:"series"`
	SuggestedMin float64      `json:"suggested_min"`
	SuggestedMax float64      `json:"suggested_max"`
}

// Report is the complete result of one aggregation run.
type Report struct {
	RunID       string            `json:"run_id"`
	Usernames   []string          `json:"usernames"`
	NoData      bool              `json:"no_data"`
	Submissions []UserSubmissions `json:"submissions"`
	Problems    ProblemSets       `json:"problems"`
	Chart       RatingChart       `json:"chart"`
	// FailedUsers lists handles whose fetches failed; they contribute
	// nothing but never abort the run.
	FailedUsers []string `json:"failed_users"`
}
