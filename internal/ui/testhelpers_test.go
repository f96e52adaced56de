package ui

import (
	"net/http/httptest"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/khabri/internal/api"
	"github.com/gravitrone/khabri/internal/config"
	"github.com/gravitrone/khabri/internal/mockapi"
	"github.com/gravitrone/khabri/internal/store"
)

// newTestApp wires an App to an in-memory collection served over httptest.
func newTestApp(t *testing.T, seed ...mockapi.Post) (App, *mockapi.Server) {
	t.Helper()
	backend := mockapi.New(nil, seed...)
	srv := httptest.NewServer(backend.Handler())
	t.Cleanup(srv.Close)
	return appFor(srv.URL+mockapi.DefaultPrefix), backend
}

// newDownApp wires an App to a server that is already gone.
func newDownApp(t *testing.T) App {
	t.Helper()
	srv := httptest.NewServer(mockapi.New(nil).Handler())
	url := srv.URL + mockapi.DefaultPrefix
	srv.Close()
	return appFor(url)
}

func appFor(url string) App {
	client := api.NewClient(url, nil)
	app := NewApp(store.New(client, nil), &config.Config{APIURL: url})
	model, _ := app.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	return model.(App)
}

// settle runs cmd and feeds store results and errors back into the model
// until nothing is left. Timers (spinner frames, toast expiry, cursor
// blink) are never run.
func settle(t *testing.T, app App, cmd tea.Cmd) App {
	t.Helper()
	var model tea.Model = app
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		switch msg := next().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case storeResultMsg, errMsg:
			var follow tea.Cmd
			model, follow = model.Update(msg)
			queue = append(queue, follow)
		case recordSavedMsg:
			// The follow-up is the toast timer.
			model, _ = model.Update(msg)
		}
	}
	return model.(App)
}

// started returns the app after Init has settled.
func started(t *testing.T, app App) App {
	t.Helper()
	return settle(t, app, app.Init())
}

// press sends a key and returns the updated app and its command.
func press(app App, key tea.KeyMsg) (App, tea.Cmd) {
	model, cmd := app.Update(key)
	return model.(App), cmd
}

// pressSettled sends a key and settles the resulting command.
func pressSettled(t *testing.T, app App, key tea.KeyMsg) App {
	t.Helper()
	app, cmd := press(app, key)
	return settle(t, app, cmd)
}

// typeText sends text as one rune burst without running any command.
func typeText(app App, text string) App {
	app, _ = press(app, runes(text))
	return app
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySave  = tea.KeyMsg{Type: tea.KeyCtrlS}
	keyCtrlC = tea.KeyMsg{Type: tea.KeyCtrlC}
)
