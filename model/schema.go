package model

// Column is one position of a discovered header. Known is false when the
// registry has no entry for Name; such columns keep indices aligned but are
// never selectable for output.
type Column struct {
	Name  string
	Index int
	Known bool
}

// Binding ties a registry field to the column the kernel emits it at.
type Binding struct {
	Field FieldDef
	Index int
}

// Schema is the immutable column layout discovered from a snapshot header.
type Schema struct {
	columns []Column
	bound   map[string]Binding
}

// NewSchema builds a schema from columns in positional order. When a known
// name appears more than once, the first position wins.
func NewSchema(columns []Column) *Schema {
	s := &Schema{
		columns: make([]Column, len(columns)),
		bound:   make(map[string]Binding, len(columns)),
	}
	copy(s.columns, columns)
	for _, c := range columns {
		if !c.Known {
			continue
		}
		if _, dup := s.bound[c.Name]; dup {
			continue
		}
		def, _ := LookupField(c.Name)
		s.bound[c.Name] = Binding{Field: def, Index: c.Index}
	}
	return s
}

// Lookup returns the binding for a registry field. ok is false when the
// field is unknown or the current kernel does not emit it.
func (s *Schema) Lookup(name string) (b Binding, ok bool) {
	b, ok = s.bound[name]
	return b, ok
}

// Columns returns a copy of the schema's columns in header order.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// Len is the number of columns every data row must carry.
func (s *Schema) Len() int { return len(s.columns) }

// Matches reports whether header has exactly the schema's column names in
// the same order.
func (s *Schema) Matches(header []string) bool {
	if len(header) != len(s.columns) {
		return false
	}
	for i, name := range header {
		if s.columns[i].Name != name {
			return false
		}
	}
	return true
}

// Unknown returns the names of header columns the registry does not know.
func (s *Schema) Unknown() []string {
	var names []string
	for _, c := range s.columns {
		if !c.Known {
			names = append(names, c.Name)
		}
	}
	return names
}
