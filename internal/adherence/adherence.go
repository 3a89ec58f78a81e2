// Package adherence derives daily and weekly adherence statistics from the
// medicine store's state and history.
package adherence

import (
	"time"

	"github.com/saarthak-dev/medtimer/internal/clock"
	"github.com/saarthak-dev/medtimer/internal/medicine"
)

// DayRow is one day of the weekly adherence table.
type DayRow struct {
	Date      string `json:"date"`
	Scheduled int    `json:"scheduled"`
	Taken     int    `json:"taken"`
	Adherence int    `json:"adherence_pct"`
}

// streakLookback caps how far back a streak is counted.
const streakLookback = 30

// TodayCounts returns today's scheduled count, taken count, and floored
// adherence percentage. An empty list yields (0, 0, 0).
func TodayCounts(meds []*medicine.Medicine) (scheduled, taken, pct int) {
	scheduled = len(meds)
	for _, m := range meds {
		if m.Taken() {
			taken++
		}
	}
	if scheduled > 0 {
		pct = taken * 100 / scheduled
	}
	return scheduled, taken, pct
}

// WeeklyTable returns the trailing seven days oldest-first, filling days
// without a history record with zeroes, plus the floored mean of the seven
// daily percentages. Each day weighs equally regardless of dose count.
func WeeklyTable(history map[string]medicine.HistoryRecord, today time.Time) ([]DayRow, int) {
	rows := make([]DayRow, 0, 7)
	sum := 0
	for i := 6; i >= 0; i-- {
		key := clock.DayKey(today.AddDate(0, 0, -i))
		rec := history[key]
		pct := 0
		if rec.Scheduled > 0 {
			pct = rec.Taken * 100 / rec.Scheduled
		}
		sum += pct
		rows = append(rows, DayRow{
			Date:      key,
			Scheduled: rec.Scheduled,
			Taken:     rec.Taken,
			Adherence: pct,
		})
	}
	return rows, sum / 7
}

// CurrentStreak counts consecutive fully-adherent days ending today. A day
// qualifies when a history record exists, something was scheduled, and every
// scheduled dose was taken; the first day failing that stops the count. The
// look-back is capped at thirty days.
func CurrentStreak(history map[string]medicine.HistoryRecord, today time.Time) int {
	streak := 0
	for i := 0; i < streakLookback; i++ {
		rec, ok := history[clock.DayKey(today.AddDate(0, 0, -i))]
		if !ok || rec.Scheduled == 0 || rec.Taken < rec.Scheduled {
			break
		}
		streak++
	}
	return streak
}
