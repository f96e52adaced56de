package components

import "github.com/charmbracelet/lipgloss"

// Shared component colors. The ui package keeps its own copies in styles.go
// so components stay importable without it.
var (
	colorPrimary   = lipgloss.Color("#7f57b4")
	colorSecondary = lipgloss.Color("#436b77")
	colorText      = lipgloss.Color("#d7d9da")
	colorMuted     = lipgloss.Color("#9ba0bf")
	colorBorder    = lipgloss.Color("#273540")
	colorDark      = lipgloss.Color("#16161d")
	colorKeyCap    = lipgloss.Color("#888ba4")
	colorRowBg     = lipgloss.Color("#1f2530")
	colorErrBorder = lipgloss.Color("#7a2f3a")
	colorErrHead   = lipgloss.Color("#e06c75")
	colorErrBody   = lipgloss.Color("#d6b5b5")
)
