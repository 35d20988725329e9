package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ftahirops/connstat/model"
)

// Timestamp kinds accepted by -T.
const (
	TimestampNone = ""
	TimestampUnix = "u"
	TimestampDate = "d"
)

// DefaultDateLayout is the -T d format: local time to the second.
const DefaultDateLayout = "2006-01-02T15:04:05"

// parsablePrefix marks timestamp lines in parsable output.
const parsablePrefix = "= "

// Renderer turns processed rows into report text.
type Renderer struct {
	Fields   []model.Binding
	Parsable bool
	Color    bool // style the fixed-width header
}

// Render returns the full text for one iteration: the header line in
// fixed-width mode, then one newline-terminated line per row.
func (r Renderer) Render(rows []model.Row) string {
	var sb strings.Builder
	if !r.Parsable {
		header := r.Header()
		if r.Color {
			header = headerStyle.Render(header)
		}
		sb.WriteString(header)
		sb.WriteByte('\n')
	}
	for _, row := range rows {
		sb.WriteString(r.Line(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Header returns the unstyled fixed-width header line.
func (r Renderer) Header() string {
	var sb strings.Builder
	for _, b := range r.Fields {
		sb.WriteString(pad(b.Field.Name, b.Field.Width))
	}
	return sb.String()
}

// Line renders one row without a trailing newline.
func (r Renderer) Line(row model.Row) string {
	values := Project(row, r.Fields)
	if r.Parsable {
		return strings.Join(values, ",")
	}
	var sb strings.Builder
	for i, v := range values {
		sb.WriteString(pad(v, r.Fields[i].Field.Width))
	}
	return sb.String()
}

// Project picks the selected fields' values out of row, in selection order.
func Project(row model.Row, fields []model.Binding) []string {
	out := make([]string, len(fields))
	for i, b := range fields {
		out[i] = row.Value(b.Index)
	}
	return out
}

// pad right-justifies s in width columns. Longer values are not clipped.
func pad(s string, width int) string {
	return fmt.Sprintf("%*s", width, s)
}

// TimestampLine renders the per-iteration timestamp line, including its
// newline, or "" when kind is TimestampNone.
func TimestampLine(t time.Time, kind, layout string, parsable bool) string {
	var ts string
	switch kind {
	case TimestampUnix:
		ts = strconv.FormatInt(t.Unix(), 10)
	case TimestampDate:
		if layout == "" {
			layout = DefaultDateLayout
		}
		ts = t.Local().Format(layout)
	default:
		return ""
	}
	if parsable {
		ts = parsablePrefix + ts
	}
	return ts + "\n"
}
