package medicine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saarthak-dev/medtimer/internal/clock"
	apperrors "github.com/saarthak-dev/medtimer/internal/errors"
)

// memGateway keeps snapshots in memory and records save activity.
type memGateway struct {
	snap     *Snapshot
	saves    int
	failSave bool
}

func (g *memGateway) Save(snap *Snapshot) error {
	if g.failSave {
		return apperrors.ErrSaveFailed
	}
	g.saves++
	g.snap = snap
	return nil
}

func (g *memGateway) Load() (*Snapshot, error) {
	if g.snap == nil {
		return &Snapshot{
			Meds:      []*Medicine{},
			History:   map[string]HistoryRecord{},
			IDCounter: 1,
		}, nil
	}
	return g.snap, nil
}

var testNow = time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local)

func newTestStore(t *testing.T) (*Store, *memGateway) {
	gw := &memGateway{}
	st, err := NewStore(gw, zap.NewNop())
	require.NoError(t, err)
	return st.WithNow(func() time.Time { return testNow }), gw
}

func TestStoreAdd(t *testing.T) {
	st, gw := newTestStore(t)

	id, err := st.Add("Aspirin", "8:00", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	m, ok := st.Get(id)
	require.True(t, ok)
	assert.Equal(t, "Aspirin", m.Name)
	assert.Equal(t, "8:00", m.TimeStr)
	assert.Equal(t, 10, m.RemindMin)
	assert.Equal(t, StatusMissed, m.Status, "8:00 is already past at 9:00")
	assert.Nil(t, m.TakenAt)

	assert.Equal(t, 1, gw.saves, "every mutation persists")
}

func TestStoreAddAssignsUniqueIDs(t *testing.T) {
	st, _ := newTestStore(t)

	id1, _ := st.Add("A", "8:00", 0)
	id2, _ := st.Add("B", "9:00", 0)
	st.Delete(id1)
	id3, _ := st.Add("C", "10:00", 0)

	assert.Equal(t, 1, id1)
	assert.Equal(t, 2, id2)
	assert.Equal(t, 3, id3, "deleted ids are never reused")
	assert.Equal(t, 4, st.Counter())

	for _, m := range st.Medicines() {
		assert.Less(t, m.ID, st.Counter())
	}
}

func TestStoreAddValidation(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.Add("", "8:00", 0)
	assert.True(t, errors.Is(err, apperrors.ErrEmptyField))

	_, err = st.Add("Aspirin", "   ", 0)
	assert.True(t, errors.Is(err, apperrors.ErrEmptyField))

	_, err = st.Add("Aspirin", "whenever", 0)
	assert.True(t, errors.Is(err, apperrors.ErrBadTime))

	assert.Equal(t, 0, st.Len(), "failed adds leave the store untouched")
}

func TestStoreAddThenDeleteRestoresCount(t *testing.T) {
	st, _ := newTestStore(t)
	st.Add("A", "8:00", 0)

	before := st.Len()
	id, err := st.Add("B", "9:00", 0)
	require.NoError(t, err)
	st.Delete(id)

	assert.Equal(t, before, st.Len())
}

func TestStoreEdit(t *testing.T) {
	st, _ := newTestStore(t)
	id, _ := st.Add("Aspirin", "8:00", 10)

	err := st.Edit(id, "Ibuprofen", "10:00", 5)
	require.NoError(t, err)

	m, _ := st.Get(id)
	assert.Equal(t, "Ibuprofen", m.Name)
	assert.Equal(t, "10:00", m.TimeStr)
	assert.Equal(t, 5, m.RemindMin)
	assert.Equal(t, StatusUpcoming, m.Status, "status recomputed from the new time")
}

func TestStoreEditMissingIDIsNoOp(t *testing.T) {
	st, gw := newTestStore(t)
	st.Add("Aspirin", "8:00", 0)
	savesBefore := gw.saves

	err := st.Edit(99, "Ghost", "10:00", 0)
	require.NoError(t, err, "editing a missing id is tolerated, not an error")

	assert.Equal(t, 1, st.Len())
	m, _ := st.Get(1)
	assert.Equal(t, "Aspirin", m.Name)
	assert.Greater(t, gw.saves, savesBefore, "the no-op edit still persists")
}

func TestStoreEditKeepsTakenState(t *testing.T) {
	st, _ := newTestStore(t)
	id, _ := st.Add("Aspirin", "8:00", 0)
	st.MarkTaken(id)

	require.NoError(t, st.Edit(id, "Aspirin", "23:00", 0))

	m, _ := st.Get(id)
	assert.Equal(t, StatusTaken, m.Status, "taken is sticky through edits")
	assert.NotNil(t, m.TakenAt)
}

func TestStoreMarkTaken(t *testing.T) {
	st, _ := newTestStore(t)
	id, _ := st.Add("Aspirin", "8:00", 0)
	st.Add("Vitamin D", "20:00", 0)

	st.MarkTaken(id)

	m, _ := st.Get(id)
	assert.Equal(t, StatusTaken, m.Status)
	require.NotNil(t, m.TakenAt)
	assert.Equal(t, testNow.Format(clock.MinuteLayout), *m.TakenAt)

	rec, ok := st.History()[clock.DayKey(testNow)]
	require.True(t, ok, "marking taken records today's history")
	assert.Equal(t, HistoryRecord{Scheduled: 2, Taken: 1}, rec)
}

func TestStoreMarkTakenStickyAcrossRefresh(t *testing.T) {
	st, _ := newTestStore(t)
	id, _ := st.Add("Aspirin", "23:00", 0)
	st.MarkTaken(id)

	st.RefreshAll(testNow.Add(48 * time.Hour))

	m, _ := st.Get(id)
	assert.Equal(t, StatusTaken, m.Status)
}

func TestStoreMarkTakenMissingID(t *testing.T) {
	st, _ := newTestStore(t)
	st.Add("Aspirin", "8:00", 0)

	st.MarkTaken(99)

	m, _ := st.Get(1)
	assert.NotEqual(t, StatusTaken, m.Status)
	rec := st.History()[clock.DayKey(testNow)]
	assert.Equal(t, HistoryRecord{Scheduled: 1, Taken: 0}, rec,
		"history still snapshots even when the id is absent")
}

func TestStoreHistoryLastWriteWins(t *testing.T) {
	st, _ := newTestStore(t)
	id1, _ := st.Add("A", "8:00", 0)
	id2, _ := st.Add("B", "9:00", 0)

	st.MarkTaken(id1)
	st.MarkTaken(id2)

	// Deleting after taking lowers the recorded snapshot on the next write.
	st.Delete(id2)
	st.RecordToday(testNow)

	rec := st.History()[clock.DayKey(testNow)]
	assert.Equal(t, HistoryRecord{Scheduled: 1, Taken: 1}, rec)
}

func TestStoreSaveFailureDoesNotAbortMutation(t *testing.T) {
	gw := &memGateway{failSave: true}
	st, err := NewStore(gw, zap.NewNop())
	require.NoError(t, err)
	st.WithNow(func() time.Time { return testNow })

	id, err := st.Add("Aspirin", "8:00", 0)
	require.NoError(t, err, "a failed save never fails the operation")
	assert.Equal(t, 1, id)
	assert.Equal(t, 1, st.Len())
}

func TestNewStoreLoadsSnapshot(t *testing.T) {
	taken := "2025-03-13T08:01"
	gw := &memGateway{snap: &Snapshot{
		Meds: []*Medicine{
			{ID: 4, Name: "Aspirin", TimeStr: "8:00", Status: StatusTaken, TakenAt: &taken},
		},
		History:   map[string]HistoryRecord{"2025-03-13": {Scheduled: 1, Taken: 1}},
		IDCounter: 5,
	}}

	st, err := NewStore(gw, zap.NewNop())
	require.NoError(t, err)

	assert.Equal(t, 1, st.Len())
	assert.Equal(t, 5, st.Counter())
	assert.Equal(t, HistoryRecord{Scheduled: 1, Taken: 1}, st.History()["2025-03-13"])
}
