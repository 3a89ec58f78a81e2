package medicine

import (
	"time"

	"github.com/saarthak-dev/medtimer/internal/clock"
)

// ComputeStatus derives the display status of a single medicine at the given
// time. A taken status is sticky: once set it is never recomputed back to
// upcoming or missed. Otherwise the stored time string is parsed against
// now's date; strictly before the target is upcoming, everything else --
// including exact equality and an unparseable stored time -- is missed.
func ComputeStatus(m *Medicine, now time.Time) Status {
	if m.Status == StatusTaken {
		return StatusTaken
	}

	target, err := clock.ParseTimeOfDay(m.TimeStr, now)
	if err != nil {
		return StatusMissed
	}
	if now.Before(target) {
		return StatusUpcoming
	}
	return StatusMissed
}
