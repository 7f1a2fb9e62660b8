package probe

import (
	"fmt"

	"github.com/okian/lcboard/internal/domain/types"
)

// VerifyReport checks a report for internal consistency: every rating
// series spans the full chart axis, the common and unique sets do not
// overlap, failed handles are a subset of the requested ones, and the
// suggested range brackets every plotted rating.
func VerifyReport(report *types.Report) error {
	if report == nil {
		return fmt.Errorf("no report to verify")
	}
	if err := verifyProblemSets(report.Problems); err != nil {
		return err
	}
	if err := verifyChart(report.Chart); err != nil {
		return err
	}
	return verifyFailedUsers(report)
}

func verifyProblemSets(sets types.ProblemSets) error {
	common := make(map[string]struct{}, len(sets.Common))
	for _, title := range sets.Common {
		common[title] = struct{}{}
	}
	for _, title := range sets.Unique {
		if _, ok := common[title]; ok {
			return fmt.Errorf("title %q appears in both common and unique sets", title)
		}
	}
	return nil
}

func verifyChart(chart types.RatingChart) error {
	if chart.Empty {
		if len(chart.Labels) != 0 {
			return fmt.Errorf("empty chart carries %d labels", len(chart.Labels))
		}
		return nil
	}
	for _, series := range chart.Series {
		if len(series.Ratings) != len(chart.Labels) {
			return fmt.Errorf("series for %s has %d slots but the axis has %d",
				series.Username, len(series.Ratings), len(chart.Labels))
		}
		for i, rating := range series.Ratings {
			if rating == nil {
				continue
			}
			if *rating < chart.SuggestedMin || *rating > chart.SuggestedMax {
				return fmt.Errorf("rating %.1f for %s at slot %d escapes the suggested range [%.1f, %.1f]",
					*rating, series.Username, i, chart.SuggestedMin, chart.SuggestedMax)
			}
		}
	}
	if chart.SuggestedMin < 0 {
		return fmt.Errorf("suggested minimum %.1f is negative", chart.SuggestedMin)
	}
	if chart.SuggestedMin > chart.SuggestedMax {
		return fmt.Errorf("suggested minimum %.1f exceeds maximum %.1f", chart.SuggestedMin, chart.SuggestedMax)
	}
	return nil
}

func verifyFailedUsers(report *types.Report) error {
	requested := make(map[string]struct{}, len(report.Usernames))
	for _, username := range report.Usernames {
		requested[username] = struct{}{}
	}
	for _, username := range report.FailedUsers {
		if _, ok := requested[username]; !ok {
			return fmt.Errorf("failed user %q was never requested", username)
		}
	}
	return nil
}
