package engine

import (
	"strings"

	"github.com/ftahirops/connstat/model"
)

// keySep separates identity values inside a connection key. It cannot occur
// in a value because values are split on commas.
const keySep = ","

// Deduper suppresses rows whose connection identity was already seen in the
// current pass. A Deduper covers one snapshot; create a new one per pass.
type Deduper struct {
	index   [len(model.IdentityFields)]int
	enabled bool
	seen    map[string]struct{}
}

// NewDeduper binds the identity fields to schema columns. If any identity
// field is missing from the schema, deduplication is disabled.
func NewDeduper(schema *model.Schema) *Deduper {
	d := &Deduper{enabled: true, seen: make(map[string]struct{})}
	for i, name := range model.IdentityFields {
		b, ok := schema.Lookup(name)
		if !ok {
			d.enabled = false
			break
		}
		d.index[i] = b.Index
	}
	return d
}

// Enabled reports whether all identity fields are bound.
func (d *Deduper) Enabled() bool { return d.enabled }

// Key builds the connection identity key for row.
func (d *Deduper) Key(row model.Row) string {
	var sb strings.Builder
	for i, idx := range d.index {
		if i > 0 {
			sb.WriteString(keySep)
		}
		sb.WriteString(row.Value(idx))
	}
	return sb.String()
}

// IsDuplicate reports whether row's connection was already seen, recording
// it if not.
func (d *Deduper) IsDuplicate(row model.Row) bool {
	if !d.enabled {
		return false
	}
	k := d.Key(row)
	if _, ok := d.seen[k]; ok {
		return true
	}
	d.seen[k] = struct{}{}
	return false
}

// Reset forgets every key seen so far.
func (d *Deduper) Reset() {
	clear(d.seen)
}
