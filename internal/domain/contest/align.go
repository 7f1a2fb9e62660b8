package contest

import (
	"fmt"
	"sort"

	"github.com/okian/lcboard/internal/domain/model"
	"github.com/okian/lcboard/internal/domain/types"
)

// rangePadding widens the suggested y-axis range beyond the observed
// rating extremes.
const rangePadding = 100

// UserHistory pairs a username with their normalized contest list.
type UserHistory struct {
	Username string
	Contests []model.AttendedContest
}

// identityKey recognizes "the same contest" across different users'
// histories. Contest object identity is not otherwise stable, so the join
// key combines start time with slug (title as fallback).
func identityKey(c model.AttendedContest) string {
	slug := c.TitleSlug
	if slug == "" {
		slug = c.Title
	}
	return fmt.Sprintf("%d::%s", c.StartTimeUnix, slug)
}

// Align builds the shared contest axis (union of all users' contests,
// chronological) and one rating series per user against it. Contests
// without a usable start time cannot be placed on the axis and are
// excluded from the union. Every series has exactly one slot per axis
// entry; nil marks non-attendance or an unusable rating.
func Align(users []UserHistory) types.RatingChart {
	union := make(map[string]model.AttendedContest, 64)
	axis := make([]model.AttendedContest, 0, 64)
	for _, u := range users {
		for _, c := range u.Contests {
			if c.StartTimeUnix == 0 {
				continue
			}
			key := identityKey(c)
			if _, ok := union[key]; ok {
				// First writer wins; title and date are expected
				// identical across users for the same contest.
				continue
			}
			union[key] = c
			axis = append(axis, c)
		}
	}
	sort.SliceStable(axis, func(i, j int) bool {
		return axis[i].StartTimeUnix < axis[j].StartTimeUnix
	})

	chart := types.RatingChart{
		Labels: make([]string, 0, len(axis)),
		Series: make([]types.UserSeries, 0, len(users)),
	}
	if len(axis) == 0 {
		chart.Empty = true
		chart.Labels = []string{}
		for _, u := range users {
			chart.Series = append(chart.Series, types.UserSeries{
				Username: u.Username,
				Ratings:  []*float64{},
				Attended: len(u.Contests),
			})
		}
		return chart
	}

	for _, c := range axis {
		chart.Labels = append(chart.Labels, Label(c))
	}

	haveValue := false
	minRating, maxRating := 0.0, 0.0
	for _, u := range users {
		byKey := make(map[string]model.AttendedContest, len(u.Contests))
		for _, c := range u.Contests {
			if c.StartTimeUnix == 0 {
				continue
			}
			byKey[identityKey(c)] = c
		}
		series := types.UserSeries{
			Username: u.Username,
			Ratings:  make([]*float64, 0, len(axis)),
			Attended: len(u.Contests),
		}
		for _, c := range axis {
			entry, ok := byKey[identityKey(c)]
			if !ok {
				series.Ratings = append(series.Ratings, nil)
				continue
			}
			v, usable := entry.RatingAfterContest.Value()
			if !usable {
				series.Ratings = append(series.Ratings, nil)
				continue
			}
			rating := v
			series.Ratings = append(series.Ratings, &rating)
			if !haveValue || v < minRating {
				minRating = v
			}
			if !haveValue || v > maxRating {
				maxRating = v
			}
			haveValue = true
		}
		chart.Series = append(chart.Series, series)
	}

	// With no finite values anywhere the padded range is undefined;
	// leave the zero range instead of propagating NaN.
	if haveValue {
		chart.SuggestedMin = minRating - rangePadding
		if chart.SuggestedMin < 0 {
			chart.SuggestedMin = 0
		}
		chart.SuggestedMax = maxRating + rangePadding
	}
	return chart
}
