package collector

import (
	"errors"
	"time"

	"github.com/ftahirops/connstat/model"
	"github.com/ftahirops/connstat/util"
)

var (
	// ErrSourceUnavailable is returned when the data source cannot be read.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrEmptySource is returned when the data source has no header line.
	ErrEmptySource = errors.New("source has no header line")
)

// Source produces one snapshot of the connection table per call.
type Source interface {
	Name() string
	Read() (*model.Snapshot, error)
}

// ParseSnapshot turns raw lines into a snapshot. The first non-blank line is
// the header; blank lines are ignored.
func ParseSnapshot(lines []string, now time.Time) (*model.Snapshot, error) {
	snap := &model.Snapshot{Timestamp: now}
	for _, line := range lines {
		rec := util.SplitRecord(line)
		if rec == nil {
			continue
		}
		if snap.Header == nil {
			snap.Header = rec
			continue
		}
		snap.Rows = append(snap.Rows, model.Row(rec))
	}
	if snap.Header == nil {
		return nil, ErrEmptySource
	}
	return snap, nil
}

// StaticSource serves fixed snapshots from memory. Each Read returns the
// next snapshot; the last one repeats once the list is exhausted.
type StaticSource struct {
	Snapshots [][]string
	Now       func() time.Time

	reads int
}

// NewStaticSource returns a source serving the given snapshots in order.
func NewStaticSource(snapshots ...[]string) *StaticSource {
	return &StaticSource{Snapshots: snapshots}
}

func (s *StaticSource) Name() string { return "static" }

// Reads is the number of completed Read calls.
func (s *StaticSource) Reads() int { return s.reads }

func (s *StaticSource) Read() (*model.Snapshot, error) {
	if len(s.Snapshots) == 0 {
		return nil, ErrEmptySource
	}
	i := s.reads
	if i >= len(s.Snapshots) {
		i = len(s.Snapshots) - 1
	}
	s.reads++
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	return ParseSnapshot(s.Snapshots[i], now)
}
