package medicine

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/saarthak-dev/medtimer/internal/clock"
	apperrors "github.com/saarthak-dev/medtimer/internal/errors"
	"github.com/saarthak-dev/medtimer/internal/metrics"
)

// Store owns the ordered medicine list, the daily history, and the next-id
// counter for one session. Every mutation refreshes all statuses and writes
// the whole snapshot through the gateway; a failed write is logged and
// counted but never aborts the mutation.
type Store struct {
	mu      sync.Mutex
	meds    []*Medicine
	history map[string]HistoryRecord
	counter int

	gateway Gateway
	logger  *zap.Logger
	nowFn   func() time.Time
}

// NewStore loads the persisted snapshot through the gateway. The returned
// store is always usable; a non-nil error means the data file was unreadable
// and the session started from an empty store.
func NewStore(gw Gateway, logger *zap.Logger) (*Store, error) {
	s := &Store{
		history: make(map[string]HistoryRecord),
		counter: 1,
		gateway: gw,
		logger:  logger,
		nowFn:   time.Now,
	}

	snap, err := gw.Load()
	if snap != nil {
		s.meds = snap.Meds
		if snap.History != nil {
			s.history = snap.History
		}
		if snap.IDCounter >= 1 {
			s.counter = snap.IDCounter
		}
	}
	if err != nil {
		logger.Warn("data file unreadable, starting from empty store", zap.Error(err))
	}
	return s, err
}

// WithNow overrides the wall clock, for tests.
func (s *Store) WithNow(fn func() time.Time) *Store {
	s.nowFn = fn
	return s
}

// Add validates and appends a new medicine, returning its assigned id. The
// name and time string must be non-empty and the time string must parse.
// New entries start upcoming with no taken timestamp.
func (s *Store) Add(name, timeStr string, remindMin int) (int, error) {
	name = strings.TrimSpace(name)
	timeStr = strings.TrimSpace(timeStr)
	if name == "" || timeStr == "" {
		return 0, apperrors.ErrEmptyField
	}

	now := s.nowFn()
	if _, err := clock.ParseTimeOfDay(timeStr, now); err != nil {
		return 0, err
	}
	if remindMin < 0 {
		remindMin = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	m := &Medicine{
		ID:        s.counter,
		Name:      name,
		TimeStr:   timeStr,
		RemindMin: remindMin,
		Status:    StatusUpcoming,
	}
	s.counter++
	s.meds = append(s.meds, m)

	s.refreshLocked(now)
	s.persistLocked()
	metrics.StoreMutations.WithLabelValues("add").Inc()
	return m.ID, nil
}

// Edit overwrites an existing medicine's fields. Status and taken timestamp
// are deliberately left alone. A missing id is a silent no-op, not an
// error: the tolerant-update policy for a single-user list.
func (s *Store) Edit(id int, name, timeStr string, remindMin int) error {
	name = strings.TrimSpace(name)
	timeStr = strings.TrimSpace(timeStr)
	if name == "" || timeStr == "" {
		return apperrors.ErrEmptyField
	}

	now := s.nowFn()
	if _, err := clock.ParseTimeOfDay(timeStr, now); err != nil {
		return err
	}
	if remindMin < 0 {
		remindMin = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.meds {
		if m.ID == id {
			m.Name = name
			m.TimeStr = timeStr
			m.RemindMin = remindMin
			break
		}
	}

	s.refreshLocked(now)
	s.persistLocked()
	metrics.StoreMutations.WithLabelValues("edit").Inc()
	return nil
}

// Delete removes the medicine with the given id; absent ids are a no-op.
func (s *Store) Delete(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.meds[:0]
	for _, m := range s.meds {
		if m.ID != id {
			kept = append(kept, m)
		}
	}
	s.meds = kept

	s.refreshLocked(s.nowFn())
	s.persistLocked()
	metrics.StoreMutations.WithLabelValues("delete").Inc()
}

// MarkTaken sets the medicine's status to taken and stamps the time at
// minute precision, then records today's adherence snapshot into history.
// Absent ids still trigger the refresh/record/persist side effects, matching
// the tolerant mutation policy.
func (s *Store) MarkTaken(id int) {
	now := s.nowFn()

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.meds {
		if m.ID == id {
			m.Status = StatusTaken
			ts := now.Format(clock.MinuteLayout)
			m.TakenAt = &ts
			break
		}
	}

	s.refreshLocked(now)
	s.recordTodayLocked(now)
	s.persistLocked()
	metrics.StoreMutations.WithLabelValues("take").Inc()
}

// RefreshAll recomputes every medicine's status against now. There is no
// background timer; callers invoke this before any read that displays
// status.
func (s *Store) RefreshAll(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshLocked(now)
}

// RecordToday upserts today's history record from the current statuses.
// Later calls on the same day overwrite the earlier snapshot.
func (s *Store) RecordToday(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recordTodayLocked(now)
	s.persistLocked()
}

// Get returns the medicine with the given id.
func (s *Store) Get(id int) (*Medicine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.meds {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// Medicines returns the medicines in insertion order.
func (s *Store) Medicines() []*Medicine {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Medicine, len(s.meds))
	copy(out, s.meds)
	return out
}

// SortedByTime returns the medicines in display order: sorted by their
// parsed time of day.
func (s *Store) SortedByTime(now time.Time) []*Medicine {
	return SortByTime(s.Medicines(), now)
}

// History returns a copy of the date-keyed adherence history.
func (s *Store) History() map[string]HistoryRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]HistoryRecord, len(s.history))
	for k, v := range s.history {
		out[k] = v
	}
	return out
}

// Len returns the number of medicines.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.meds)
}

// Counter returns the next id that will be assigned.
func (s *Store) Counter() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counter
}

func (s *Store) refreshLocked(now time.Time) {
	for _, m := range s.meds {
		m.Status = ComputeStatus(m, now)
	}
}

func (s *Store) recordTodayLocked(now time.Time) {
	taken := 0
	for _, m := range s.meds {
		if m.Taken() {
			taken++
		}
	}
	s.history[clock.DayKey(now)] = HistoryRecord{
		Scheduled: len(s.meds),
		Taken:     taken,
	}
}

func (s *Store) persistLocked() {
	snap := &Snapshot{
		Meds:      s.meds,
		History:   s.history,
		IDCounter: s.counter,
	}
	if err := s.gateway.Save(snap); err != nil {
		metrics.SaveFailures.Inc()
		s.logger.Error("failed to persist store", zap.Error(err))
	}
}
