package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/khabri/internal/config"
	"github.com/gravitrone/khabri/internal/store"
	"github.com/gravitrone/khabri/internal/ui/components"
)

// --- Messages ---

type errMsg struct{ err error }
type clearToastMsg struct{}

type appToast struct {
	level string
	text  string
}

const toastDuration = 2500 * time.Millisecond

// --- App Model ---

// App is the root TUI model. It owns overlays, the error banner and toasts,
// and delegates everything else to the records view.
type App struct {
	store       *store.Store
	config      *config.Config
	width       int
	height      int
	err         string
	helpOpen    bool
	quitConfirm bool
	toast       *appToast

	records RecordsModel
}

// NewApp creates the root application model over st.
func NewApp(st *store.Store, cfg *config.Config) App {
	return App{
		store:   st,
		config:  cfg,
		records: NewRecordsModel(st),
	}
}

func (a App) Init() tea.Cmd {
	return a.records.Init()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.records.resize(msg.Width, msg.Height)
		return a, nil

	case errMsg:
		a.err = msg.err.Error()
		return a, nil
	case clearToastMsg:
		a.toast = nil
		return a, nil

	case tea.KeyMsg:
		if a.quitConfirm {
			switch {
			case isKey(msg, "y"), isInterrupt(msg):
				return a, tea.Quit
			case isKey(msg, "n"), isBack(msg):
				a.quitConfirm = false
			}
			return a, nil
		}
		if a.helpOpen {
			if isBack(msg) || isKey(msg, "?") {
				a.helpOpen = false
			}
			return a, nil
		}

		// The banner is transient: any key dismisses it, then the key is
		// handled as usual.
		a.err = ""
		a.store.DismissError()

		if isInterrupt(msg) {
			return a.quit()
		}
		if !a.records.capturesText() {
			if isKey(msg, "?") {
				a.helpOpen = true
				return a, nil
			}
			if isQuit(msg) {
				return a.quit()
			}
		}
	}

	var cmd tea.Cmd
	a.records, cmd = a.records.Update(msg)
	if toastCmd := a.toastCmdForMsg(msg); toastCmd != nil {
		return a, tea.Batch(cmd, toastCmd)
	}
	return a, cmd
}

func (a App) quit() (tea.Model, tea.Cmd) {
	if a.hasUnsaved() {
		a.quitConfirm = true
		return a, nil
	}
	return a, tea.Quit
}

func (a App) View() string {
	banner := centerBlockUniform(RenderBanner(), a.width)
	server := centerBlock(a.renderServer(), a.width)

	var content string
	switch {
	case a.quitConfirm:
		content = a.renderQuitConfirm()
	case a.helpOpen:
		content = a.renderHelp()
	default:
		content = a.records.View()
	}
	content = centerBlockUniform(content, a.width)

	hints := components.StatusBar(a.statusHints(), a.width)

	feedback := ""
	if message := a.errorText(); message != "" {
		feedback = "\n\n" + centerBlockUniform(components.ErrorBox("Error", message, a.width), a.width)
	} else if a.toast != nil {
		feedback = "\n\n" + centerBlockUniform(a.renderToast(), a.width)
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n\n\n%s%s", banner, server, content, hints, feedback)
}

// errorText prefers the store's failure over a local validation error.
func (a App) errorText() string {
	if err := a.store.LastError(); err != nil {
		return err.Error()
	}
	return a.err
}

func (a App) renderServer() string {
	if a.config == nil || strings.TrimSpace(a.config.APIURL) == "" {
		return ""
	}
	return MutedStyle.Render("server ") + ServerBadgeStyle.Render(components.SanitizeOneLine(a.config.APIURL))
}

func (a App) statusHints() []string {
	if a.quitConfirm {
		return []string{
			components.Hint("y", "Confirm"),
			components.Hint("n", "Cancel"),
		}
	}
	if a.helpOpen {
		return []string{
			components.Hint("esc", "Back"),
		}
	}
	return a.records.statusHints()
}

func (a App) renderHelp() string {
	rows := []components.TableRow{
		{Label: "↑/↓", Value: "Move through students"},
		{Label: "n", Value: "New student (leaves edit mode)"},
		{Label: "tab", Value: "Focus the form"},
		{Label: "e / enter", Value: "Edit the selected student"},
		{Label: "d", Value: "Delete the selected student"},
		{Label: "r", Value: "Refresh from the server"},
		{Label: "ctrl+s", Value: "Save the form"},
		{Label: "esc", Value: "Cancel edit or leave the form"},
		{Label: "q", Value: "Quit"},
	}
	body := MutedStyle.Render("esc to close") + "\n\n" + components.Table("", rows, a.width)
	return components.Indent(components.TitledBox("Help", body, a.width), 1)
}

func (a App) renderQuitConfirm() string {
	body := "Unsaved input. Quit anyway?"
	return components.Indent(components.ConfirmDialog("Quit", body), 1)
}

func (a *App) setToast(level, text string) tea.Cmd {
	a.toast = &appToast{
		level: level,
		text:  components.SanitizeOneLine(text),
	}
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return clearToastMsg{}
	})
}

func (a App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	title := "Info"
	if a.toast.level == "success" {
		title = "Success"
	}
	return components.TitledBox(title, SuccessStyle.Render(a.toast.text), a.width)
}

func (a *App) toastCmdForMsg(msg tea.Msg) tea.Cmd {
	saved, ok := msg.(recordSavedMsg)
	if !ok {
		return nil
	}
	switch saved.op {
	case store.OpCreate:
		return a.setToast("success", "Student added.")
	case store.OpUpdate:
		return a.setToast("success", "Student updated.")
	case store.OpDelete:
		return a.setToast("success", "Student deleted.")
	}
	return nil
}

func (a App) hasUnsaved() bool {
	return !a.store.Buffer().IsEmpty()
}

func centerBlock(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lineWidth := lipgloss.Width(line)
		if lineWidth >= width {
			continue
		}
		pad := (width - lineWidth) / 2
		lines[i] = strings.Repeat(" ", pad) + line
	}
	return strings.Join(lines, "\n")
}

func centerBlockUniform(s string, width int) string {
	if width <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}
	if maxWidth <= 0 || maxWidth >= width {
		return s
	}
	pad := (width - maxWidth) / 2
	if pad <= 0 {
		return s
	}
	prefix := strings.Repeat(" ", pad)
	for i := range lines {
		if lines[i] != "" {
			lines[i] = prefix + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
