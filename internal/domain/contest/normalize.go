// Package contest aligns independently-fetched contest histories onto a
// shared chronological axis.
package contest

import (
	"sort"

	"github.com/okian/lcboard/internal/domain/model"
)

// DefaultMaxResults bounds how many attended contests survive
// normalization for one user.
const DefaultMaxResults = 200

// NormalizeHistory filters a mixed history down to attended contests,
// projects them to AttendedContest, sorts ascending by start time (a
// missing start time sorts as 0 but the record is kept), and truncates to
// the earliest maxResults entries. Truncating after sorting keeps the
// earliest contests, not the most recent; that choice decides which
// contests chart for very prolific users and must not change.
func NormalizeHistory(entries []model.ContestEntry, maxResults int) []model.AttendedContest {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	attended := make([]model.AttendedContest, 0, len(entries))
	for _, e := range entries {
		if !e.Attended {
			continue
		}
		attended = append(attended, model.AttendedContest{
			Title:               e.ContestTitle,
			TitleSlug:           e.ContestTitleSlug,
			StartTimeUnix:       e.StartTimeUnix,
			ProblemsSolved:      e.ProblemsSolved,
			TotalProblems:       e.TotalProblems,
			FinishTimeInSeconds: e.FinishTimeInSeconds,
			RatingAfterContest:  e.Rating,
			Ranking:             e.Ranking,
			TrendDirection:      e.TrendDirection,
		})
	}
	sort.SliceStable(attended, func(i, j int) bool {
		return attended[i].StartTimeUnix < attended[j].StartTimeUnix
	})
	if len(attended) > maxResults {
		attended = attended[:maxResults]
	}
	return attended
}
