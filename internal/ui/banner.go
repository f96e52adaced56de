package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
██  ██  ██  ██   ████   █████   █████   ██████
██ ██   ██  ██  ██  ██  ██  ██  ██  ██    ██
████    ██████  ██████  █████   █████     ██
██ ██   ██  ██  ██  ██  ██  ██  ██ ██     ██
██  ██  ██  ██  ██  ██  █████   ██  ██  ██████`

const bannerSubtitle = "Student Records • Terminal Client"

// RenderBanner returns the styled ASCII banner with its subtitle.
func RenderBanner() string {
	lines := splitLines(bannerArt)
	baseStyle := lipgloss.NewStyle().Foreground(ColorPrimary)

	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}

	var rendered strings.Builder
	for _, line := range lines {
		if line == "" {
			continue
		}
		rendered.WriteString(baseStyle.Render(line) + "\n")
	}

	subtitleWidth := lipgloss.Width(bannerSubtitle)
	blockWidth := maxWidth
	if blockWidth < subtitleWidth {
		blockWidth = subtitleWidth
	}

	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(bannerSubtitle)

	underline := lipgloss.NewStyle().
		Foreground(ColorBorder).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(strings.Repeat("─", subtitleWidth))

	return "\n" + rendered.String() + "\n" + subtitle + "\n" + underline + "\n"
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
