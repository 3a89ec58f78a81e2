// Package clock parses free-form time-of-day strings and anchors them to a
// calendar day. All times are local wall-clock; there is no timezone
// normalization anywhere in the app.
package clock

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/saarthak-dev/medtimer/internal/errors"
)

// DayKeyLayout is the ISO date format used to key daily history records.
const DayKeyLayout = "2006-01-02"

// MinuteLayout is the minute-precision timestamp stored on taken doses.
const MinuteLayout = "2006-01-02T15:04"

// layouts are tried in order, longest first so "8:00" never half-matches a
// bare-hour layout and leaves trailing input behind.
var layouts = []string{
	"15:04:05",
	"3:04:05 PM",
	"15:04",
	"3:04 PM",
	"3:04PM",
	"3 PM",
	"3PM",
	"15",
}

// ParseTimeOfDay interprets a user-typed clock string ("8:00", "08:00 AM",
// "8pm") and combines it with ref's date and location. The input is
// uppercased first so am/pm markers match in any case.
func ParseTimeOfDay(s string, ref time.Time) (time.Time, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if raw == "" {
		return time.Time{}, apperrors.ErrEmptyField
	}

	for _, layout := range layouts {
		t, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return time.Date(ref.Year(), ref.Month(), ref.Day(),
			t.Hour(), t.Minute(), t.Second(), 0, ref.Location()), nil
	}

	return time.Time{}, apperrors.Wrap(apperrors.ErrBadTime, "PARSE_001",
		fmt.Sprintf("cannot interpret %q as a time of day", s))
}

// Now returns the current local wall-clock time.
func Now() time.Time {
	return time.Now()
}

// DayKey returns the ISO date string used as a history key.
func DayKey(t time.Time) string {
	return t.Format(DayKeyLayout)
}
