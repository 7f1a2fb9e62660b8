// Package solveset turns per-user submission lists into a cross-user
// solved-problem classification.
package solveset

import (
	"strconv"
	"time"

	"github.com/okian/lcboard/internal/domain/model"
	"github.com/okian/lcboard/internal/domain/types"
)

// submittedAtLayout formats parsed submission timestamps. All times are
// rendered in UTC so output does not depend on the host timezone.
const submittedAtLayout = "Jan 2, 2006 15:04:05 MST"

// UserResult holds one user's normalized submissions: display rows in
// first-seen order plus the distinct set of solved titles.
type UserResult struct {
	Username string
	Rows     []types.SubmissionRow
	Titles   map[string]struct{}
}

// Normalize converts a raw submission list into display rows and the
// distinct title set for one user. Duplicate titles stay in Rows (each
// resubmission is its own row) but count once in Titles. A timestamp that
// does not parse as unix seconds is passed through verbatim; a bad
// timestamp never rejects a submission.
func Normalize(username string, subs []model.Submission) UserResult {
	res := UserResult{
		Username: username,
		Rows:     make([]types.SubmissionRow, 0, len(subs)),
		Titles:   make(map[string]struct{}, len(subs)),
	}
	for _, s := range subs {
		res.Rows = append(res.Rows, types.SubmissionRow{
			Username:    username,
			Title:       s.Title,
			SubmittedAt: formatTimestamp(s.Timestamp),
		})
		res.Titles[s.Title] = struct{}{}
	}
	return res
}

func formatTimestamp(raw string) string {
	sec, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return raw
	}
	return time.Unix(sec, 0).UTC().Format(submittedAtLayout)
}
