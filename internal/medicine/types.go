package medicine

import (
	"sort"
	"time"

	"github.com/saarthak-dev/medtimer/internal/clock"
)

// Status describes a medicine's state for the current day.
type Status string

const (
	StatusTaken    Status = "taken"
	StatusUpcoming Status = "upcoming"
	StatusMissed   Status = "missed"
)

// Color returns the display color hex for a status.
func (s Status) Color() string {
	switch s {
	case StatusTaken:
		return "#4caf50"
	case StatusUpcoming:
		return "#f9a825"
	case StatusMissed:
		return "#c62828"
	}
	return "#607d8b"
}

// Medicine is one user-defined reminder entry. TimeStr stays the raw string
// the user typed; it is parsed on demand, never stored structured.
type Medicine struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	TimeStr   string  `json:"time_str"`
	RemindMin int     `json:"remind_min"`
	Status    Status  `json:"status"`
	TakenAt   *string `json:"taken_at"`
}

// Taken reports whether the dose has been marked taken today.
func (m *Medicine) Taken() bool {
	return m.Status == StatusTaken
}

// HistoryRecord is one day's adherence snapshot: how many doses were
// scheduled and how many of those were taken. Taken never exceeds Scheduled
// because both are counted from the same medicine list in one pass.
type HistoryRecord struct {
	Scheduled int `json:"scheduled"`
	Taken     int `json:"taken"`
}

// Snapshot is the full persisted document: the medicine list, the daily
// history, and the next-id counter.
type Snapshot struct {
	Meds      []*Medicine              `json:"meds"`
	History   map[string]HistoryRecord `json:"history"`
	IDCounter int                      `json:"id_counter"`
}

// Gateway persists and restores full store snapshots.
type Gateway interface {
	Save(*Snapshot) error
	Load() (*Snapshot, error)
}

// SortByTime returns the medicines ordered by their parsed time of day,
// earliest first. Entries whose time no longer parses sort to the end.
// The input slice is not modified.
func SortByTime(meds []*Medicine, now time.Time) []*Medicine {
	sorted := make([]*Medicine, len(meds))
	copy(sorted, meds)

	sort.SliceStable(sorted, func(i, j int) bool {
		ti, erri := clock.ParseTimeOfDay(sorted[i].TimeStr, now)
		tj, errj := clock.ParseTimeOfDay(sorted[j].TimeStr, now)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return ti.Before(tj)
	})

	return sorted
}
