package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TableColumn defines a single column for TableGrid.
//
// Width is the visual width of the cell text, separators excluded. The last
// column absorbs whatever width is left over. Accent renders the column in
// the primary color; the records view uses it for the avatar initial.
type TableColumn struct {
	Header string
	Width  int
	Align  lipgloss.Position
	Accent bool
}

const gridLeftOffset = 2

var (
	gridLineStyle = lipgloss.NewStyle().
			Foreground(colorBorder)

	gridActiveRowStyle = lipgloss.NewStyle().
				Foreground(colorText).
				Background(colorRowBg).
				Bold(true)

	gridActiveSepStyle = lipgloss.NewStyle().
				Foreground(colorBorder).
				Background(colorRowBg)

	gridAccentStyle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)
)

// TableGrid renders rows under a header line and a rule. The result has a
// visual width of tableWidth; pass BoxContentWidth(termWidth) to fit a box.
// activeRow indexes rows and is highlighted; -1 disables highlighting.
func TableGrid(columns []TableColumn, rows [][]string, tableWidth int, activeRow int) string {
	if tableWidth <= 0 {
		return ""
	}
	if len(columns) == 0 {
		return padRight("", tableWidth)
	}

	border := lipgloss.RoundedBorder()
	cols := fitGridColumns(columns, border.Left, tableWidth)

	out := make([]string, 0, len(rows)+2)
	out = append(out, renderGridHeader(cols, border.Left, tableWidth))
	out = append(out, renderGridRule(cols, border.Middle, border.Top, tableWidth))
	for i, row := range rows {
		out = append(out, renderGridRow(cols, row, border.Left, tableWidth, i == activeRow))
	}
	return strings.Join(out, "\n")
}

func fitGridColumns(columns []TableColumn, sep string, tableWidth int) []TableColumn {
	fitted := make([]TableColumn, len(columns))
	copy(fitted, columns)

	sepW := maxInt(lipgloss.Width(sep), 1)
	contentWidth := maxInt(tableWidth-gridLeftOffset, len(fitted))

	used := (len(fitted) - 1) * sepW
	for i := range fitted {
		fitted[i].Width = maxInt(fitted[i].Width, 1)
		used += fitted[i].Width
	}
	last := &fitted[len(fitted)-1]
	last.Width = maxInt(last.Width+contentWidth-used, 1)
	return fitted
}

func renderGridHeader(columns []TableColumn, sep string, tableWidth int) string {
	sepStyled := gridLineStyle.Inline(true).Render(sep)
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridLeftOffset))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(sepStyled)
		}
		cell := renderGridCell(SanitizeOneLine(col.Header), col.Width, col.Align)
		b.WriteString(boxLabelStyle.Inline(true).Render(cell))
	}
	return padRight(b.String(), tableWidth)
}

func renderGridRow(columns []TableColumn, cells []string, sep string, tableWidth int, active bool) string {
	sepStyle := gridLineStyle
	if active {
		sepStyle = gridActiveSepStyle
	}
	sepStyled := sepStyle.Inline(true).Render(sep)

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridLeftOffset))
	for i, col := range columns {
		if i > 0 {
			b.WriteString(sepStyled)
		}
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		cell := renderGridCell(text, col.Width, col.Align)
		switch {
		case active:
			cell = gridActiveRowStyle.Inline(true).Render(cell)
		case col.Accent:
			cell = gridAccentStyle.Inline(true).Render(cell)
		}
		b.WriteString(cell)
	}
	return padRight(b.String(), tableWidth)
}

func renderGridRule(columns []TableColumn, cross, horiz string, tableWidth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gridLeftOffset))
	for i, col := range columns {
		b.WriteString(strings.Repeat(horiz, col.Width))
		if i < len(columns)-1 {
			b.WriteString(cross)
		}
	}
	return gridLineStyle.Inline(true).Render(padRight(b.String(), tableWidth))
}

func renderGridCell(text string, width int, align lipgloss.Position) string {
	if width <= 0 {
		return ""
	}

	clamped := ClampTextWidth(text, width)
	w := lipgloss.Width(clamped)
	if w >= width {
		return truncateRunes(clamped, width)
	}

	pad := width - w
	switch align {
	case lipgloss.Right:
		return strings.Repeat(" ", pad) + clamped
	case lipgloss.Center:
		left := pad / 2
		return strings.Repeat(" ", left) + clamped + strings.Repeat(" ", pad-left)
	default:
		return clamped + strings.Repeat(" ", pad)
	}
}
