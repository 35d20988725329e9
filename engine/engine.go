package engine

import (
	"fmt"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/ftahirops/connstat/collector"
	"github.com/ftahirops/connstat/model"
)

// Config is the validated, source-independent part of a run.
type Config struct {
	Output     OutputRequest
	Filters    FilterSpec
	NoLoopback bool
}

// Result is one processed snapshot.
type Result struct {
	Timestamp time.Time
	Rows      []model.Row
	Stats     model.Stats
}

// Engine reads snapshots from a source and runs them through the filter
// and dedup stages. The schema and output selection are fixed at creation.
type Engine struct {
	source collector.Source
	schema *model.Schema
	output []model.Binding
	filter *RowFilter
	tickMu sync.Mutex // serializes Tick() calls; the live view may overlap ticks
}

// NewEngine reads the source once to discover its schema, then resolves
// the output fields and filters against it. Any error here is fatal and
// happens before the first iteration.
func NewEngine(src collector.Source, cfg Config) (*Engine, error) {
	snap, err := src.Read()
	if err != nil {
		return nil, err
	}
	schema := Discover(snap.Header)

	logger := log.WithFields(log.Fields{
		"source":  src.Name(),
		"columns": len(snap.Header),
		"kernel":  collector.KernelRelease(),
	})
	logger.Debugf("discovered schema: %s", strings.Join(snap.Header, ","))
	if unknown := schema.Unknown(); len(unknown) > 0 {
		logger.Debugf("columns not in registry: %s", strings.Join(unknown, ","))
	}

	output, err := ResolveOutput(cfg.Output, schema)
	if err != nil {
		return nil, err
	}
	filter, err := NewRowFilter(schema, cfg.Filters, cfg.NoLoopback)
	if err != nil {
		return nil, err
	}
	if !NewDeduper(schema).Enabled() {
		logger.Warn("source lacks connection identity fields, duplicate rows will not be suppressed")
	}

	names := make([]string, len(output))
	for i, b := range output {
		names[i] = b.Field.Name
	}
	logger.WithField("filters", cfg.Filters.Terms()).Debugf("output fields: %s", strings.Join(names, ","))

	return &Engine{
		source: src,
		schema: schema,
		output: output,
		filter: filter,
	}, nil
}

// Schema returns the schema discovered at creation.
func (e *Engine) Schema() *model.Schema { return e.schema }

// Output returns the resolved output fields in render order.
func (e *Engine) Output() []model.Binding {
	out := make([]model.Binding, len(e.output))
	copy(out, e.output)
	return out
}

// Tick reads one snapshot and processes it.
func (e *Engine) Tick() (*Result, error) {
	e.tickMu.Lock()
	defer e.tickMu.Unlock()

	snap, err := e.source.Read()
	if err != nil {
		return nil, err
	}
	if !e.schema.Matches(snap.Header) {
		return nil, fmt.Errorf("%w: now %q", ErrSchemaChanged, strings.Join(snap.Header, ","))
	}
	return e.Process(snap), nil
}

// Process filters and deduplicates one snapshot's rows. Rows whose column
// count differs from the schema are skipped. Filtering runs before dedup,
// so a filtered-out row never hides a later row with the same identity.
func (e *Engine) Process(snap *model.Snapshot) *Result {
	res := &Result{Timestamp: snap.Timestamp}
	dedup := NewDeduper(e.schema)
	width := e.schema.Len()

	for _, row := range snap.Rows {
		res.Stats.Read++
		if len(row) != width {
			res.Stats.Malformed++
			continue
		}
		if e.filter.ShouldSkip(row) {
			res.Stats.Filtered++
			continue
		}
		if dedup.IsDuplicate(row) {
			res.Stats.Duplicates++
			continue
		}
		res.Rows = append(res.Rows, row)
	}
	res.Stats.Emitted = len(res.Rows)

	if res.Stats.Malformed > 0 {
		log.WithField("rows", res.Stats.Malformed).Warnf("skipped rows not matching the %d-column schema", width)
	}
	log.WithFields(log.Fields{
		"read":       res.Stats.Read,
		"filtered":   res.Stats.Filtered,
		"duplicates": res.Stats.Duplicates,
		"emitted":    res.Stats.Emitted,
	}).Debug("snapshot processed")
	return res
}
