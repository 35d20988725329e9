package engine

import (
	"fmt"
	"strings"

	"github.com/ftahirops/connstat/model"
	"github.com/ftahirops/connstat/util"
)

// EstablishedState is the state value -e filters on.
const EstablishedState = "ESTABLISHED"

// FilterTerm requires a field to equal a value exactly.
type FilterTerm struct {
	Field string
	Value string
}

func (t FilterTerm) String() string { return t.Field + "=" + t.Value }

// ParseFilterTerms parses a "field=value[,field=value...]" list.
func ParseFilterTerms(spec string) ([]FilterTerm, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, nil
	}
	var terms []FilterTerm
	for _, pair := range strings.Split(spec, ",") {
		name, value, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		value = strings.TrimSpace(value)
		if !ok || name == "" || value == "" {
			return nil, NewConfigError("-F", fmt.Errorf("%w: %q is not field=value", ErrMalformedFilter, pair))
		}
		if _, known := model.LookupField(name); !known {
			return nil, NewConfigError("-F", fmt.Errorf("%w: %w: %q", ErrMalformedFilter, ErrUnknownField, name))
		}
		terms = append(terms, FilterTerm{Field: name, Value: value})
	}
	return terms, nil
}

// FilterSpec is the set of required field values, at most one per field.
type FilterSpec struct {
	order  []string
	values map[string]string
}

// NewFilterSpec combines the -e shortcut with explicit terms. Explicit terms
// are applied after -e, and a later term for the same field replaces an
// earlier one.
func NewFilterSpec(established bool, terms []FilterTerm) FilterSpec {
	s := FilterSpec{values: make(map[string]string)}
	if established {
		s.set(model.FieldState, EstablishedState)
	}
	for _, t := range terms {
		s.set(t.Field, t.Value)
	}
	return s
}

func (s *FilterSpec) set(field, value string) {
	if _, ok := s.values[field]; !ok {
		s.order = append(s.order, field)
	}
	s.values[field] = value
}

// Terms returns the active terms in the order fields were first named.
func (s FilterSpec) Terms() []FilterTerm {
	out := make([]FilterTerm, 0, len(s.order))
	for _, f := range s.order {
		out = append(out, FilterTerm{Field: f, Value: s.values[f]})
	}
	return out
}

// Value returns the required value for field, if any.
func (s FilterSpec) Value(field string) (string, bool) {
	v, ok := s.values[field]
	return v, ok
}

// Len is the number of active terms.
func (s FilterSpec) Len() int { return len(s.order) }

type boundTerm struct {
	index int
	value string
}

// RowFilter decides which rows are dropped before deduplication.
type RowFilter struct {
	terms      []boundTerm
	noLoopback bool
	laddr      int
}

// NewRowFilter binds a filter spec to a schema. A term naming a field the
// kernel does not emit is a configuration error, as is -L without laddr.
func NewRowFilter(schema *model.Schema, spec FilterSpec, noLoopback bool) (*RowFilter, error) {
	f := &RowFilter{noLoopback: noLoopback, laddr: -1}
	for _, t := range spec.Terms() {
		b, ok := schema.Lookup(t.Field)
		if !ok {
			return nil, NewConfigError("-F", fmt.Errorf("%w: %q", ErrUnsupportedField, t.Field))
		}
		f.terms = append(f.terms, boundTerm{index: b.Index, value: t.Value})
	}
	if noLoopback {
		b, ok := schema.Lookup(model.FieldLocalAddr)
		if !ok {
			return nil, NewConfigError("-L", fmt.Errorf("%w: %q", ErrUnsupportedField, model.FieldLocalAddr))
		}
		f.laddr = b.Index
	}
	return f, nil
}

// ShouldSkip reports whether row is excluded. All terms must match for the
// row to be kept.
func (f *RowFilter) ShouldSkip(row model.Row) bool {
	if f.noLoopback && util.FirstOctet(row.Value(f.laddr)) == "127" {
		return true
	}
	for _, t := range f.terms {
		if row.Value(t.index) != t.value {
			return true
		}
	}
	return false
}
