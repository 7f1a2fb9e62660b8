package contest

import (
	"regexp"
	"time"

	"github.com/okian/lcboard/internal/domain/model"
)

// labelDateLayout is the short date shown on each axis tick.
const labelDateLayout = "Jan 2, 2006"

// contestWord matches the literal word "Contest" in any casing; ticks
// abbreviate it to keep labels compact.
var contestWord = regexp.MustCompile(`(?i)contest`)

// Label renders one axis tick: short UTC date plus the contest title, with
// "Contest" abbreviated to "Ct". Falls back to the slug when the title is
// missing.
func Label(c model.AttendedContest) string {
	date := time.Unix(c.StartTimeUnix, 0).UTC().Format(labelDateLayout)
	title := c.Title
	if title == "" {
		title = c.TitleSlug
	}
	return date + " • " + contestWord.ReplaceAllString(title, "Ct")
}
