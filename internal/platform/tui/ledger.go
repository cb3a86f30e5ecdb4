package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/cybergrid/internal/storage"
)

// Ledger table layout constants
const (
	ledgerRows    = 8  // Rows shown on the menu
	ledgerMinRows = 3  // Table height floor on short terminals
	ledgerMaxLoad = 50 // Max rows loaded from the store
)

// LedgerTable shows the finished levels of the current session.
type LedgerTable struct {
	table   table.Model
	summary storage.Summary
	runs    int
	err     error
}

// NewLedgerTable creates an empty table sized for the given terminal height.
func NewLedgerTable(height int) LedgerTable {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Level", Width: 6},
		{Title: "Outcome", Width: 10},
		{Title: "Nodes", Width: 7},
		{Title: "Kills", Width: 6},
		{Title: "Time", Width: 8},
	}

	rows := ledgerRows
	if height > 0 {
		rows = max(ledgerMinRows, min(ledgerRows, height-16))
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(rows),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Bold(false)
	t.SetStyles(s)

	return LedgerTable{table: t}
}

// Refresh reloads rows and the summary from the ledger. A nil ledger
// leaves the table empty.
func (lt *LedgerTable) Refresh(l *storage.Ledger) error {
	lt.err = nil
	if l == nil {
		lt.table.SetRows(nil)
		lt.runs = 0
		return nil
	}

	runs, err := l.Recent(ledgerMaxLoad)
	if err != nil {
		lt.err = err
		return err
	}
	sum, err := l.Summary()
	if err != nil {
		lt.err = err
		return err
	}

	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("%d", r.ID),
			fmt.Sprintf("%d", r.Level),
			r.Outcome,
			fmt.Sprintf("%d/%d", r.Collected, r.Total),
			fmt.Sprintf("%d", r.DronesDestroyed),
			fmt.Sprintf("%.1fs", r.Duration.Seconds()),
		}
	}
	lt.table.SetRows(rows)
	lt.table.GotoTop()
	lt.summary = sum
	lt.runs = len(runs)
	return nil
}

// Len returns the number of loaded rows.
func (lt LedgerTable) Len() int {
	return lt.runs
}

// View renders the summary line and the table.
func (lt LedgerTable) View() string {
	var b strings.Builder
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	switch {
	case lt.err != nil:
		b.WriteString(dim.Render("ledger unavailable: " + lt.err.Error()))
		return b.String()
	case lt.runs == 0:
		b.WriteString(dim.Render("no levels played this session"))
		return b.String()
	}

	b.WriteString(dim.Render(fmt.Sprintf(
		"levels %d   wins %d   losses %d   best %d   nodes %d   kills %d",
		lt.summary.Levels, lt.summary.Victories, lt.summary.GameOvers,
		lt.summary.BestLevel, lt.summary.Collected, lt.summary.DronesDestroyed,
	)))
	b.WriteString("\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(lt.table.View()))
	return b.String()
}
