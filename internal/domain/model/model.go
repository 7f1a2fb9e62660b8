// Package model contains domain models passed between layers.
package model

// Submission represents one accepted solve event as reported upstream.
// The timestamp is kept opaque: upstream sends unix seconds as a decimal
// string, but a malformed value must never reject the submission. Parsing
// happens at normalization time and falls back to the raw text for display.
type Submission struct {
	ID        string
	Title     string
	TitleSlug string
	Timestamp string
}

// ContestEntry mirrors one row of a user's contest ranking history,
// attended or not. Contest metadata is flattened; upstream may omit the
// nested contest object entirely, in which case the contest fields stay
// at their zero values.
type ContestEntry struct {
	Attended            bool
	TrendDirection      string
	ProblemsSolved      int
	TotalProblems       int
	FinishTimeInSeconds int
	Rating              Rating
	Ranking             int
	ContestTitle        string
	ContestTitleSlug    string
	StartTimeUnix       int64
}

// AttendedContest is the projection of an attended ContestEntry used by
// the aggregation pipeline and the read API.
type AttendedContest struct {
	Title               string `json:"title"`
	TitleSlug           string `json:"title_slug"`
	StartTimeUnix       int64  `json:"start_time_unix"`
	ProblemsSolved      int    `json:"problems_solved"`
	TotalProblems       int    `json:"total_problems"`
	FinishTimeInSeconds int    `json:"finish_time_in_seconds"`
	RatingAfterContest  Rating `json:"rating_after_contest"`
	Ranking             int    `json:"ranking"`
	TrendDirection      string `json:"trend_direction"`
}
