package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoxWidthBounds(t *testing.T) {
	assert.Equal(t, 40, boxWidth(10))
	assert.Equal(t, 80, boxWidth(200))
	assert.Equal(t, 70, boxWidth(100))
}

func TestBoxNarrowTerminalClampsWidth(t *testing.T) {
	out := TitledBox("Students", "line", 20)
	overflow := false
	for _, line := range strings.Split(out, "\n") {
		if lipgloss.Width(line) > 20 {
			overflow = true
			break
		}
	}
	assert.False(t, overflow)
}

func TestTitledBoxIncludesTitle(t *testing.T) {
	out := TitledBox("My Title", "Content", 80)
	assert.True(t, strings.Contains(out, "My Title"))
}

func TestTitledBoxEmptyTitleFallsBack(t *testing.T) {
	out := TitledBox("", "Content", 80)
	assert.True(t, strings.Contains(out, "Content"))
}

func TestErrorBoxIncludesMessage(t *testing.T) {
	out := ErrorBox("Error", "Something broke", 80)
	assert.True(t, strings.Contains(out, "Something broke"))
}

func TestTruncateRunes(t *testing.T) {
	assert.Equal(t, "", truncateRunes("hello", 0))
	assert.Equal(t, "he", truncateRunes("hello", 2))
	assert.Equal(t, "你", truncateRunes("你好", 1))
}

// TestTableClampsLongValues ensures table rows stay within the box width.
func TestTableClampsLongValues(t *testing.T) {
	rows := []TableRow{
		{
			Label: strings.Repeat("Label", 8),
			Value: strings.Repeat("value", 40),
		},
	}
	out := Table("Table", rows, 60)
	maxWidth := lipgloss.Width(strings.Split(Box("x", 60), "\n")[0])
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), maxWidth)
	}
}

func TestActiveTitledBoxFitsTerminal(t *testing.T) {
	for _, width := range []int{20, 40, 57, 100, 200} {
		out := ActiveTitledBox("Update Student", "hello\nworld", width)
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, lipgloss.Width(line), width)
		}
	}
}

func TestBoxContentWidthMatchesRenderedInterior(t *testing.T) {
	for _, width := range []int{30, 60, 120} {
		inner := BoxContentWidth(width)
		line := strings.Repeat("x", inner)
		out := Box(line, width)
		lines := strings.Split(out, "\n")
		// top border, top padding, then the content row on one line.
		require.Len(t, lines, 5)
		assert.Contains(t, lines[2], line)
		assert.Equal(t, safeBoxWidth(width)+2, lipgloss.Width(lines[0]))
	}
}

func TestIndentPreservesLineCountAndAddsPadding(t *testing.T) {
	src := "a\nb\nc"
	out := Indent(src, 2)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "  "))
	}
}

func TestMaxIntReturnsLarger(t *testing.T) {
	assert.Equal(t, 2, maxInt(1, 2))
	assert.Equal(t, 2, maxInt(2, 1))
}

func TestActiveTitledBoxKeepsTitleAndWidth(t *testing.T) {
	out := ActiveTitledBox("Add Student", "Name\nDetails", 60)
	assert.Contains(t, out, "Add Student")
	top := strings.Split(out, "\n")[0]
	body := strings.Split(out, "\n")[1]
	assert.Equal(t, lipgloss.Width(body), lipgloss.Width(top))
}

func TestClampTextWidthFoldsNewlines(t *testing.T) {
	assert.Equal(t, "Class 5 Roll", ClampTextWidth("Class 5\nRoll 12", 12))
	assert.Equal(t, "short", ClampTextWidth("short", 20))
}
