package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SimpleTable renders static tabular data for the non-interactive cart
// printout. Money columns can be right-aligned so amounts line up on the
// decimal point.
type SimpleTable struct {
	Title      string
	Headers    []string
	Rows       [][]string
	rightAlign map[int]bool
}

// NewSimpleTable creates a new SimpleTable with the given title and headers.
func NewSimpleTable(title string, headers []string) *SimpleTable {
	return &SimpleTable{
		Title:      title,
		Headers:    headers,
		rightAlign: make(map[int]bool),
	}
}

// AlignRight right-aligns the given column indexes. Headers align with their
// column.
func (t *SimpleTable) AlignRight(cols ...int) *SimpleTable {
	for _, c := range cols {
		t.rightAlign[c] = true
	}
	return t
}

// AddRow adds a row to the table.
func (t *SimpleTable) AddRow(row ...string) {
	t.Rows = append(t.Rows, row)
}

// View renders the table using the provided styles.
func (t *SimpleTable) View(styles Styles) string {
	if len(t.Rows) == 0 {
		return ""
	}

	// Column widths from the widest of header and cells.
	widths := make([]int, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.Rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	cellStyle := func(base lipgloss.Style, col int) lipgloss.Style {
		s := base.Padding(0, 1).Width(widths[col] + 2)
		if t.rightAlign[col] {
			s = s.Align(lipgloss.Right)
		}
		return s
	}

	var sb strings.Builder

	if t.Title != "" {
		sb.WriteString(styles.Title.Render(t.Title))
		sb.WriteString("\n")
	}

	for i, h := range t.Headers {
		sb.WriteString(cellStyle(styles.Bold, i).Render(h))
		if i < len(t.Headers)-1 {
			sb.WriteString(styles.Muted.Render("|"))
		}
	}
	sb.WriteString("\n")

	totalWidth := len(t.Headers) - 1 // separators
	for _, w := range widths {
		totalWidth += w + 2
	}
	sb.WriteString(styles.Muted.Render(strings.Repeat("-", totalWidth)) + "\n")

	for _, row := range t.Rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			sb.WriteString(cellStyle(styles.Body, i).Render(cell))
			if i < len(row)-1 {
				sb.WriteString(styles.Muted.Render("|"))
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n")

	return sb.String()
}
