package model

import "time"

// Row is one data line of a snapshot, split into column values.
type Row []string

// Value returns the value at column i, or "" when the row is too short.
func (r Row) Value(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Snapshot is the full content of the data source read in one iteration.
type Snapshot struct {
	Timestamp time.Time
	Header    []string
	Rows      []Row
}

// Stats counts what happened to a snapshot's rows in one pass.
type Stats struct {
	Read       int // data rows in the snapshot
	Malformed  int // column count differs from the schema
	Filtered   int // rejected by the row filter
	Duplicates int // identity key already seen this pass
	Emitted    int
}
