package engine

import "github.com/ftahirops/connstat/model"

// Discover builds the schema for a snapshot header. Every header position
// gets a column; names the registry does not know become placeholder
// columns so that indices stay aligned with the data rows.
func Discover(header []string) *model.Schema {
	cols := make([]model.Column, len(header))
	for i, name := range header {
		_, known := model.LookupField(name)
		cols[i] = model.Column{Name: name, Index: i, Known: known}
	}
	return model.NewSchema(cols)
}
