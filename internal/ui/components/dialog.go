package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(1, 2).
			Width(40)

	dialogTitleStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	dialogMutedStyle = lipgloss.NewStyle().
				Foreground(colorMuted)
)

const confirmHint = "y: confirm | n: cancel"

// ConfirmDialog renders a yes/no confirmation.
func ConfirmDialog(title, message string) string {
	header := dialogTitleStyle.Render(title)
	body := dialogMutedStyle.Render(message)
	hint := dialogMutedStyle.Render("\n" + confirmHint)
	return dialogStyle.Render(header + "\n\n" + body + hint)
}

// ConfirmPreviewDialog renders a confirmation listing what will be affected.
func ConfirmPreviewDialog(title, message string, summary []TableRow, width int) string {
	sections := make([]string, 0, 3)
	if message != "" {
		sections = append(sections, dialogMutedStyle.Render(message))
	}
	if len(summary) > 0 {
		sections = append(sections, Table("", summary, width))
	}
	sections = append(sections, dialogMutedStyle.Render(confirmHint))

	return TitledBox(title, strings.Join(sections, "\n\n"), width)
}
