package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordColumns = []TableColumn{
	{Header: "", Width: 3, Align: lipgloss.Center, Accent: true},
	{Header: "ID", Width: 4, Align: lipgloss.Right},
	{Header: "Name", Width: 12},
	{Header: "Details", Width: 10},
}

func TestTableGridLinesMatchWidth(t *testing.T) {
	out := TableGrid(recordColumns, [][]string{
		{"A", "1", "Asha", "Class 5"},
		{"R", "2", "Ravi", strings.Repeat("long ", 30)},
	}, 60, -1)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 4)
	for _, line := range lines {
		assert.Equal(t, 60, lipgloss.Width(line))
	}
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[2], "Asha")
}

func TestTableGridActiveRowKeepsText(t *testing.T) {
	out := TableGrid(recordColumns, [][]string{
		{"A", "1", "Asha", "Class 5"},
	}, 50, 0)

	clean := SanitizeText(out)
	assert.Contains(t, clean, "Asha")
	assert.Contains(t, clean, "Class 5")
}

func TestTableGridZeroWidth(t *testing.T) {
	assert.Equal(t, "", TableGrid(recordColumns, nil, 0, -1))
}

func TestFitGridColumnsGrowsLastColumn(t *testing.T) {
	cols := fitGridColumns(recordColumns, "│", 60)
	total := gridLeftOffset + len(cols) - 1
	for _, c := range cols {
		total += c.Width
	}
	assert.Equal(t, 60, total)
	assert.Equal(t, 3, cols[0].Width)
}

func TestRenderGridCellAlignment(t *testing.T) {
	assert.Equal(t, "  7", renderGridCell("7", 3, lipgloss.Right))
	assert.Equal(t, " A ", renderGridCell("A", 3, lipgloss.Center))
	assert.Equal(t, "ab ", renderGridCell("ab", 3, lipgloss.Left))
	assert.Equal(t, "abc", renderGridCell("abcdef", 3, lipgloss.Left))
}
