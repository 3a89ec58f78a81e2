// Package export renders the current schedule for download: CSV with the
// persisted fields, and a simple PDF listing.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/saarthak-dev/medtimer/internal/medicine"
)

// CSV renders one header row plus one row per medicine in stored order,
// mirroring the persisted fields.
func CSV(meds []*medicine.Medicine) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"id", "name", "time_str", "remind_min", "status", "taken_at"},
	}
	for _, m := range meds {
		takenAt := ""
		if m.TakenAt != nil {
			takenAt = *m.TakenAt
		}
		records = append(records, []string{
			strconv.Itoa(m.ID),
			m.Name,
			m.TimeStr,
			strconv.Itoa(m.RemindMin),
			string(m.Status),
			takenAt,
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
