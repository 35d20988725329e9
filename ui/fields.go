package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ftahirops/connstat/model"
)

// RenderFieldList lists every registry field with its width and whether
// schema binds it, followed by any header columns the registry lacks.
func RenderFieldList(schema *model.Schema) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("FIELD", "WIDTH", "COLUMN", "SUPPORTED")

	for _, def := range model.Registry() {
		col, supported := "-", "no"
		if b, ok := schema.Lookup(def.Name); ok {
			col, supported = strconv.Itoa(b.Index), "yes"
		}
		t.Row(def.Name, strconv.Itoa(def.Width), col, supported)
	}
	for _, c := range schema.Columns() {
		if !c.Known {
			t.Row(c.Name, "-", strconv.Itoa(c.Index), "unknown")
		}
	}
	return t.String() + "\n"
}
