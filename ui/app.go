package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ftahirops/connstat/engine"
	"github.com/ftahirops/connstat/model"
)

type tickMsg time.Time

type collectMsg struct {
	res *engine.Result
	err error
}

// chromeLines is the number of screen lines outside the table body.
const chromeLines = 4

// Model is the bubbletea model for --live.
type Model struct {
	ticker   engine.Ticker
	fields   []model.Binding
	source   string
	interval time.Duration
	table    table.Model

	res    *engine.Result
	err    error
	paused bool
	width  int
	height int
}

// NewModel creates the live view over ticker's output fields.
func NewModel(ticker engine.Ticker, source string, interval time.Duration) Model {
	fields := ticker.Base().Output()
	cols := make([]table.Column, len(fields))
	for i, b := range fields {
		cols[i] = table.Column{Title: b.Field.Name, Width: b.Field.Width}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.Foreground(colorMagenta).Bold(true)
	s.Selected = selectedStyle
	t.SetStyles(s)

	return Model{
		ticker:   ticker,
		fields:   fields,
		source:   source,
		interval: interval,
		table:    t,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(m.interval), collectOnce(m.ticker))
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func collectOnce(ticker engine.Ticker) tea.Cmd {
	return func() tea.Msg {
		res, err := ticker.Tick()
		return collectMsg{res: res, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "p", " ":
			m.paused = !m.paused
			if !m.paused {
				return m, collectOnce(m.ticker)
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if h := msg.Height - chromeLines; h > 0 {
			m.table.SetHeight(h)
		}
		return m, nil
	case tickMsg:
		if m.paused {
			return m, tick(m.interval)
		}
		return m, tea.Batch(tick(m.interval), collectOnce(m.ticker))
	case collectMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.res = msg.res
		rows := tableRows(msg.res.Rows, m.fields)
		if cols, grown := widenColumns(m.table.Columns(), rows); grown {
			m.table.SetColumns(cols)
		}
		m.table.SetRows(rows)
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func tableRows(rows []model.Row, fields []model.Binding) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		out[i] = table.Row(Project(r, fields))
	}
	return out
}

// widenColumns grows each column to its longest value so the table never
// truncates, matching the fixed-width report. Columns never shrink.
func widenColumns(cols []table.Column, rows []table.Row) ([]table.Column, bool) {
	out := make([]table.Column, len(cols))
	copy(out, cols)
	grown := false
	for _, r := range rows {
		for i, v := range r {
			if i >= len(out) {
				break
			}
			if w := lipgloss.Width(v); w > out[i].Width {
				out[i].Width = w
				grown = true
			}
		}
	}
	return out, grown
}

func (m Model) View() string {
	var sb strings.Builder

	title := fmt.Sprintf(" connstat  %s  every %s", m.source, m.interval)
	if m.paused {
		title += "  [paused]"
	}
	sb.WriteString(titleStyle.Render(title))
	sb.WriteString("\n\n")
	sb.WriteString(m.table.View())
	sb.WriteString("\n")

	switch {
	case m.err != nil:
		sb.WriteString(critStyle.Render("error: " + m.err.Error()))
	case m.res != nil:
		st := m.res.Stats
		sb.WriteString(dimStyle.Render(fmt.Sprintf(
			" %s  %d shown  %d filtered  %d duplicate  %d malformed   q quit  p pause",
			m.res.Timestamp.Format("15:04:05"), st.Emitted, st.Filtered, st.Duplicates, st.Malformed)))
	default:
		sb.WriteString(dimStyle.Render(" collecting..."))
	}
	return sb.String()
}

// Err returns the error that ended the live view, if any.
func (m Model) Err() error { return m.err }

// RunLive runs the full-screen view until the user quits or a tick fails.
func RunLive(ticker engine.Ticker, source string, interval time.Duration) error {
	p := tea.NewProgram(NewModel(ticker, source, interval), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
