package medicine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var noon = time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local)

func TestComputeStatusUpcoming(t *testing.T) {
	m := &Medicine{Name: "Aspirin", TimeStr: "12:01", Status: StatusUpcoming}
	assert.Equal(t, StatusUpcoming, ComputeStatus(m, noon))
}

func TestComputeStatusMissed(t *testing.T) {
	m := &Medicine{Name: "Aspirin", TimeStr: "11:59", Status: StatusUpcoming}
	assert.Equal(t, StatusMissed, ComputeStatus(m, noon))
}

func TestComputeStatusBoundaryIsMissed(t *testing.T) {
	// Exactly at the target time counts as missed, not upcoming.
	m := &Medicine{Name: "Aspirin", TimeStr: "12:00", Status: StatusUpcoming}
	assert.Equal(t, StatusMissed, ComputeStatus(m, noon))
}

func TestComputeStatusTakenIsSticky(t *testing.T) {
	m := &Medicine{Name: "Aspirin", TimeStr: "18:00", Status: StatusTaken}

	// Still taken whether the target is ahead or long past.
	assert.Equal(t, StatusTaken, ComputeStatus(m, noon))
	assert.Equal(t, StatusTaken, ComputeStatus(m, noon.Add(24*time.Hour)))
}

func TestComputeStatusUnparseableTimeIsMissed(t *testing.T) {
	m := &Medicine{Name: "Aspirin", TimeStr: "whenever", Status: StatusUpcoming}
	assert.Equal(t, StatusMissed, ComputeStatus(m, noon))
}

func TestSortByTime(t *testing.T) {
	meds := []*Medicine{
		{ID: 1, Name: "Evening", TimeStr: "20:00"},
		{ID: 2, Name: "Broken", TimeStr: "???"},
		{ID: 3, Name: "Morning", TimeStr: "8:00 AM"},
		{ID: 4, Name: "Noon", TimeStr: "12:00"},
	}

	sorted := SortByTime(meds, noon)

	ids := []int{sorted[0].ID, sorted[1].ID, sorted[2].ID, sorted[3].ID}
	assert.Equal(t, []int{3, 4, 1, 2}, ids, "unparseable times sort last")

	// Input order untouched.
	assert.Equal(t, 1, meds[0].ID)
}

func TestStatusColor(t *testing.T) {
	assert.Equal(t, "#4caf50", StatusTaken.Color())
	assert.Equal(t, "#f9a825", StatusUpcoming.Color())
	assert.Equal(t, "#c62828", StatusMissed.Color())
	assert.Equal(t, "#607d8b", Status("unknown").Color())
}
