package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/saarthak-dev/medtimer/internal/medicine"
)

// PDF renders today's schedule as a one-page document: a centered title and
// one line per medicine, sorted by parsed time of day.
func PDF(meds []*medicine.Medicine, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)

	pdf.CellFormat(0, 10, "MedTimer - Today's Schedule", "", 1, "C", false, 0, "")
	pdf.Ln(5)

	if len(meds) == 0 {
		pdf.CellFormat(0, 10, "No medicines added.", "", 1, "L", false, 0, "")
	} else {
		for _, m := range medicine.SortByTime(meds, now) {
			line := fmt.Sprintf("%s at %s -> %s", m.Name, m.TimeStr, m.Status)
			pdf.CellFormat(0, 10, line, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
