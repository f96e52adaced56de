package ui

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/khabri/internal/api"
	"github.com/gravitrone/khabri/internal/store"
	"github.com/gravitrone/khabri/internal/ui/components"
)

// --- Messages ---

// storeResultMsg carries a finished effect back to the update goroutine.
type storeResultMsg struct {
	result store.Result
}

// recordSavedMsg is emitted after a create, update or delete succeeds.
type recordSavedMsg struct {
	op store.Op
}

const (
	fieldName = iota
	fieldDetails
	fieldCount
)

const emptyStateText = "No students found. Be the first to add one!"

var recordColumns = []components.TableColumn{
	{Header: "", Width: 3, Align: lipgloss.Center, Accent: true},
	{Header: "ID", Width: 6, Align: lipgloss.Right},
	{Header: "Name", Width: 20},
	{Header: "Details", Width: 20},
}

// RecordsModel presents the store: the student grid, the add/edit form and
// the delete confirmation.
type RecordsModel struct {
	store   *store.Store
	list    *components.List
	inputs  []textinput.Model
	focus   int
	editing bool // form has keyboard focus
	spinner spinner.Model

	confirming   bool
	deleteTarget api.Record
	selectNew    bool // move the cursor to the record a create just added

	width  int
	height int
}

// NewRecordsModel builds the records view over st.
func NewRecordsModel(st *store.Store) RecordsModel {
	name := textinput.New()
	name.Placeholder = "Student Name"
	name.Prompt = ""
	name.CharLimit = 200

	details := textinput.New()
	details.Placeholder = "Details (e.g. Class, Roll No)"
	details.Prompt = ""
	details.CharLimit = 500

	return RecordsModel{
		store:   st,
		list:    components.NewList(8),
		inputs:  []textinput.Model{name, details},
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(AccentStyle)),
	}
}

// Init fetches the collection once on startup.
func (m RecordsModel) Init() tea.Cmd {
	return m.start(m.store.Refresh())
}

func (m RecordsModel) Update(msg tea.Msg) (RecordsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case storeResultMsg:
		return m.applyResult(msg.result)

	case spinner.TickMsg:
		if !m.store.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.confirming {
			return m.handleConfirmKeys(msg)
		}
		if m.editing {
			return m.handleFormKeys(msg)
		}
		return m.handleListKeys(msg)
	}
	return m, nil
}

func (m RecordsModel) applyResult(res store.Result) (RecordsModel, tea.Cmd) {
	next := m.store.Apply(res)
	m.syncList()
	if res.Op == store.OpCreate && res.Err == nil {
		m.selectNew = true
	}
	if res.Op == store.OpRefresh && m.selectNew {
		m.selectNew = false
		if res.Err == nil {
			m.list.Select(m.list.Len() - 1)
		}
	}

	var cmds []tea.Cmd
	if res.Err == nil && res.Op != store.OpRefresh && res.Op != store.OpNone {
		m.syncInputs()
		if res.Op == store.OpUpdate {
			m.blurForm()
		}
		op := res.Op
		cmds = append(cmds, func() tea.Msg { return recordSavedMsg{op: op} })
	}
	if cmd := m.start(next); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// start turns an effect into a command and kicks the spinner. The spinner
// drops ticks from stale chains, so restarting it per effect is safe.
// A nil effect means the store refused to start one.
func (m RecordsModel) start(eff store.Effect) tea.Cmd {
	if eff == nil {
		return nil
	}
	run := func() tea.Msg {
		return storeResultMsg{result: eff(context.Background())}
	}
	return tea.Batch(run, m.spinner.Tick)
}

// --- Key Handling ---

func (m RecordsModel) handleListKeys(msg tea.KeyMsg) (RecordsModel, tea.Cmd) {
	switch {
	case isUp(msg):
		m.list.Up()
	case isDown(msg):
		m.list.Down()
	case isKey(msg, "n"):
		if m.store.Target().IsEditing() {
			m.store.CancelEdit()
			m.syncInputs()
		}
		return m, m.focusForm(fieldName)
	case isKey(msg, "tab"):
		return m, m.focusForm(fieldName)
	case isKey(msg, "e"), isEnter(msg):
		if m.store.Busy() {
			return m, nil
		}
		rec, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.store.BeginEdit(rec)
		m.syncInputs()
		return m, m.focusForm(fieldName)
	case isKey(msg, "d"):
		if m.store.Busy() {
			return m, nil
		}
		rec, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.confirming = true
		m.deleteTarget = rec
	case isKey(msg, "r"):
		return m, m.start(m.store.Refresh())
	}
	return m, nil
}

func (m RecordsModel) handleConfirmKeys(msg tea.KeyMsg) (RecordsModel, tea.Cmd) {
	switch {
	case isKey(msg, "y"):
		m.confirming = false
		return m, m.start(m.store.Remove(m.deleteTarget.ID))
	case isKey(msg, "n"), isBack(msg):
		m.confirming = false
		m.deleteTarget = api.Record{}
	}
	return m, nil
}

func (m RecordsModel) handleFormKeys(msg tea.KeyMsg) (RecordsModel, tea.Cmd) {
	switch {
	case isBack(msg):
		if m.store.Target().IsEditing() {
			m.store.CancelEdit()
			m.syncInputs()
		}
		m.blurForm()
		return m, nil
	case isSave(msg):
		return m.submit()
	case isEnter(msg):
		if m.focus == fieldCount-1 {
			return m.submit()
		}
		return m, m.focusField(m.focus + 1)
	case isNextField(msg):
		return m, m.focusField((m.focus + 1) % fieldCount)
	case isPrevField(msg):
		return m, m.focusField((m.focus - 1 + fieldCount) % fieldCount)
	}
	// A successful save resets the buffer, so edits made meanwhile would vanish.
	if m.saving() {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	m.store.SetTitle(m.inputs[fieldName].Value())
	m.store.SetContent(m.inputs[fieldDetails].Value())
	return m, cmd
}

func (m RecordsModel) submit() (RecordsModel, tea.Cmd) {
	if m.store.Busy() {
		return m, nil
	}
	if err := m.store.Buffer().Validate(); err != nil {
		return m, func() tea.Msg { return errMsg{err} }
	}
	return m, m.start(m.store.SubmitBuffer())
}

// --- Focus & Sync ---

func (m *RecordsModel) focusForm(field int) tea.Cmd {
	m.editing = true
	return m.focusField(field)
}

func (m *RecordsModel) focusField(field int) tea.Cmd {
	m.focus = field
	var cmd tea.Cmd
	for i := range m.inputs {
		if i == field {
			cmd = m.inputs[i].Focus()
			continue
		}
		m.inputs[i].Blur()
	}
	return cmd
}

func (m *RecordsModel) blurForm() {
	m.editing = false
	m.focus = fieldName
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *RecordsModel) syncInputs() {
	buf := m.store.Buffer()
	m.inputs[fieldName].SetValue(buf.Title)
	m.inputs[fieldDetails].SetValue(buf.Content)
	for i := range m.inputs {
		m.inputs[i].CursorEnd()
	}
}

// syncList mirrors the store's records into the cursor list, index for index.
func (m *RecordsModel) syncList() {
	records := m.store.Records()
	items := make([]string, len(records))
	for i, rec := range records {
		items[i] = rec.ID.String()
	}
	m.list.SetItemsKeepCursor(items)
}

func (m RecordsModel) selected() (api.Record, bool) {
	records := m.store.Records()
	idx := m.list.Selected()
	if idx < 0 || idx >= len(records) {
		return api.Record{}, false
	}
	return records[idx], true
}

func (m RecordsModel) saving() bool {
	pending := m.store.Pending()
	return pending == store.OpCreate || pending == store.OpUpdate
}

// capturesText reports whether printable keys belong to the form.
func (m RecordsModel) capturesText() bool {
	return m.editing && !m.confirming
}

func (m *RecordsModel) resize(width, height int) {
	m.width = width
	m.height = height
	// banner, form, status bar and padding take roughly 32 rows.
	page := height - 32
	if page < 3 {
		page = 3
	}
	m.list.PageSize = page
	m.syncList()

	inputWidth := components.BoxContentWidth(width) - 12
	if inputWidth < 10 {
		inputWidth = 10
	}
	for i := range m.inputs {
		m.inputs[i].Width = inputWidth
	}
}

// --- View ---

func (m RecordsModel) View() string {
	if m.confirming {
		return m.renderConfirm()
	}
	return m.renderForm() + "\n\n" + m.renderList()
}

func (m RecordsModel) formTitle() string {
	if m.store.Target().IsEditing() {
		return "Update Student"
	}
	return "Add Student"
}

func (m RecordsModel) renderForm() string {
	labels := []string{"Name", "Details"}
	var b strings.Builder
	for i, input := range m.inputs {
		label := LabelStyle.Render(fmt.Sprintf("%-9s", labels[i]))
		if m.editing && i == m.focus {
			label = SelectedStyle.Render(fmt.Sprintf("%-9s", labels[i]))
		}
		b.WriteString(label + input.View())
		if i < len(m.inputs)-1 {
			b.WriteString("\n")
		}
	}

	switch {
	case m.saving():
		b.WriteString("\n\n" + m.spinner.View() + " " + MutedStyle.Render("Saving..."))
	case m.editing:
		b.WriteString("\n\n" + MutedStyle.Render("enter on Details or ctrl+s to save, esc to leave"))
	}

	if m.editing {
		return components.ActiveTitledBox(m.formTitle(), b.String(), m.width)
	}
	return components.TitledBox(m.formTitle(), b.String(), m.width)
}

func (m RecordsModel) renderList() string {
	records := m.store.Records()
	title := fmt.Sprintf("Students (%d)", len(records))

	if len(records) == 0 {
		body := MutedStyle.Render(emptyStateText)
		if m.store.Pending() == store.OpRefresh {
			body = m.spinner.View() + " " + MutedStyle.Render("Loading students...")
		}
		return components.TitledBox(title, body, m.width)
	}

	visible := m.list.Visible()
	rows := make([][]string, 0, len(visible))
	active := -1
	for i := range visible {
		idx := m.list.RelToAbs(i)
		if idx >= len(records) {
			break
		}
		if !m.editing && m.list.IsSelected(idx) {
			active = i
		}
		rec := records[idx]
		rows = append(rows, []string{
			avatarInitial(rec.Title),
			rec.ID.String(),
			rec.Title,
			rec.Content,
		})
	}

	tableWidth := components.BoxContentWidth(m.width)
	if tableWidth <= 0 {
		tableWidth = 60
	}
	body := components.TableGrid(recordColumns, rows, tableWidth, active)

	switch m.store.Pending() {
	case store.OpRefresh:
		body += "\n\n" + m.spinner.View() + " " + MutedStyle.Render("Refreshing...")
	case store.OpDelete:
		body += "\n\n" + m.spinner.View() + " " + MutedStyle.Render("Deleting...")
	}
	return components.TitledBox(title, body, m.width)
}

func (m RecordsModel) renderConfirm() string {
	summary := []components.TableRow{
		{Label: "ID", Value: m.deleteTarget.ID.String()},
		{Label: "Name", Value: m.deleteTarget.Title},
		{Label: "Details", Value: m.deleteTarget.Content},
	}
	return components.ConfirmPreviewDialog("Delete Student", "Delete this student?", summary, m.width)
}

func avatarInitial(title string) string {
	title = strings.TrimSpace(components.SanitizeOneLine(title))
	r, _ := utf8.DecodeRuneInString(title)
	if r == utf8.RuneError {
		return "?"
	}
	return string(unicode.ToUpper(r))
}

// statusHints returns the key hints for the current records state.
func (m RecordsModel) statusHints() []string {
	switch {
	case m.confirming:
		return []string{
			components.Hint("y", "Delete"),
			components.Hint("n", "Cancel"),
		}
	case m.editing:
		return []string{
			components.Hint("tab", "Field"),
			components.Hint("ctrl+s", "Save"),
			components.Hint("esc", "Leave"),
		}
	}
	return []string{
		components.Hint("↑/↓", "Move"),
		components.Hint("n", "New"),
		components.Hint("e", "Edit"),
		components.Hint("d", "Delete"),
		components.Hint("r", "Refresh"),
		components.Hint("?", "Help"),
		components.Hint("q", "Quit"),
	}
}
