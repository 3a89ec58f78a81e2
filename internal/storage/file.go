// Package storage is the flat-file persistence gateway. The whole store is
// serialized as a single JSON document with top-level keys meds, history,
// and id_counter, overwritten on every save.
package storage

import (
	"encoding/json"
	"errors"
	"os"

	apperrors "github.com/saarthak-dev/medtimer/internal/errors"
	"github.com/saarthak-dev/medtimer/internal/medicine"
)

// FileGateway reads and writes the data file at a fixed path.
type FileGateway struct {
	path string
}

// NewFileGateway creates a gateway for the given data file path.
func NewFileGateway(path string) *FileGateway {
	return &FileGateway{path: path}
}

// Path returns the data file path.
func (g *FileGateway) Path() string {
	return g.path
}

// Save writes the snapshot, replacing the file entirely. The write goes
// through a temp file and rename so a failure cannot truncate the previous
// good document.
func (g *FileGateway) Save(snap *medicine.Snapshot) error {
	if snap.Meds == nil {
		snap.Meds = []*medicine.Medicine{}
	}
	if snap.History == nil {
		snap.History = map[string]medicine.HistoryRecord{}
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrSaveFailed.Code, "encode snapshot")
	}

	tmp := g.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return apperrors.Wrap(err, apperrors.ErrSaveFailed.Code, "write data file")
	}
	if err := os.Rename(tmp, g.path); err != nil {
		return apperrors.Wrap(err, apperrors.ErrSaveFailed.Code, "replace data file")
	}
	return nil
}

// Load reads the snapshot from disk. A missing file is a normal first run
// and yields the default empty snapshot with no error. An unreadable or
// corrupt file also yields the default snapshot, with a non-nil error so the
// caller can log that stored data was abandoned.
func (g *FileGateway) Load() (*medicine.Snapshot, error) {
	data, err := os.ReadFile(g.path)
	if errors.Is(err, os.ErrNotExist) {
		return defaultSnapshot(), nil
	}
	if err != nil {
		return defaultSnapshot(), apperrors.Wrap(err, apperrors.ErrLoadFailed.Code, "read data file")
	}

	snap := &medicine.Snapshot{}
	if err := json.Unmarshal(data, snap); err != nil {
		return defaultSnapshot(), apperrors.Wrap(err, apperrors.ErrLoadFailed.Code, "decode data file")
	}

	// Absent keys default explicitly; the format carries no version field.
	if snap.Meds == nil {
		snap.Meds = []*medicine.Medicine{}
	}
	if snap.History == nil {
		snap.History = map[string]medicine.HistoryRecord{}
	}
	if snap.IDCounter < 1 {
		snap.IDCounter = 1
	}
	return snap, nil
}

func defaultSnapshot() *medicine.Snapshot {
	return &medicine.Snapshot{
		Meds:      []*medicine.Medicine{},
		History:   map[string]medicine.HistoryRecord{},
		IDCounter: 1,
	}
}
