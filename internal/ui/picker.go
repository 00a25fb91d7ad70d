package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/tagpicker/internal/taxonomy"
	"github.com/gravitrone/tagpicker/internal/ui/components"
	"github.com/gravitrone/tagpicker/internal/widget"
)

const defaultPageSize = 8

type focusArea int

const (
	focusSearch focusArea = iota
	focusChips
)

// --- Messages ---

type startedMsg struct{ err error }

type disabledMsg struct {
	disabled bool
	closed   bool
}

type readOnlyToggledMsg struct{ err error }

// ReadOnlyToggler flips edit permission on the host side. The change comes
// back through Options.DisabledChanges.
type ReadOnlyToggler func(ctx context.Context, disabled bool) error

// Options configures a Picker.
type Options struct {
	Title           string
	DisabledChanges <-chan bool
	ToggleReadOnly  ReadOnlyToggler
	PageSize        int
}

// Picker is the terminal front end of a widget session.
type Picker struct {
	ctx     context.Context
	session *widget.Session
	opts    Options

	width  int
	height int

	list         *components.List
	options      []widget.Option
	focus        focusArea
	chipCursor   int
	confirmClear bool

	started bool
	fatal   error
	err     string
}

// NewPicker creates the picker for a session that has not been started yet.
func NewPicker(ctx context.Context, session *widget.Session, opts Options) Picker {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	return Picker{
		ctx:     ctx,
		session: session,
		opts:    opts,
		list:    components.NewList(opts.PageSize),
	}
}

func (m Picker) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), m.waitDisabledCmd())
}

func (m Picker) startCmd() tea.Cmd {
	return func() tea.Msg {
		return startedMsg{err: m.session.Start(m.ctx)}
	}
}

func (m Picker) waitDisabledCmd() tea.Cmd {
	ch := m.opts.DisabledChanges
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case disabled, ok := <-ch:
			return disabledMsg{disabled: disabled, closed: !ok}
		case <-m.ctx.Done():
			return disabledMsg{closed: true}
		}
	}
}

func (m Picker) toggleReadOnlyCmd() tea.Cmd {
	toggle := m.opts.ToggleReadOnly
	if toggle == nil {
		return nil
	}
	next := !m.session.Disabled()
	return func() tea.Msg {
		return readOnlyToggledMsg{err: toggle(m.ctx, next)}
	}
}

// Err returns the fatal startup error, if any.
func (m Picker) Err() error {
	return m.fatal
}

func (m Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case startedMsg:
		m.started = true
		if msg.err != nil {
			m.fatal = msg.err
			return m, nil
		}
		m.refresh(true)
		return m, nil

	case disabledMsg:
		if msg.closed {
			return m, nil
		}
		m.setErr(m.session.SetDisabled(msg.disabled))
		if msg.disabled {
			m.focus = focusSearch
			m.confirmClear = false
		}
		m.refresh(false)
		return m, m.waitDisabledCmd()

	case readOnlyToggledMsg:
		m.setErr(msg.err)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Picker) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		return m, tea.Quit
	}
	if !m.started {
		return m, nil
	}
	if m.fatal != nil {
		if isBack(msg) || isEnter(msg) {
			return m, tea.Quit
		}
		return m, nil
	}
	if m.confirmClear {
		m.confirmClear = false
		if isConfirm(msg) {
			m.setErr(m.session.Clear())
			m.chipCursor = 0
			m.focus = focusSearch
			m.refresh(false)
		}
		return m, nil
	}
	if isToggleReadOnly(msg) {
		return m, m.toggleReadOnlyCmd()
	}
	if m.session.Disabled() {
		return m, nil
	}

	m.err = ""
	switch {
	case isClearAll(msg):
		if len(m.session.Selected()) > 0 {
			m.confirmClear = true
		}
		return m, nil
	case isFocusSwitch(msg):
		if m.focus == focusSearch && len(m.session.Selected()) > 0 {
			m.focus = focusChips
			m.setErr(m.session.SetOpen(false))
		} else {
			m.focus = focusSearch
		}
		m.clampChipCursor()
		return m, nil
	}

	if m.focus == focusChips {
		return m.handleChipKey(msg)
	}
	return m.handleSearchKey(msg)
}

func (m Picker) handleChipKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected := m.session.Selected()
	switch {
	case isLeft(msg), isUp(msg):
		if m.chipCursor > 0 {
			m.chipCursor--
		}
	case isRight(msg), isDown(msg):
		if m.chipCursor < len(selected)-1 {
			m.chipCursor++
		}
	case isBackspace(msg), isDelete(msg), isEnter(msg):
		if m.chipCursor < len(selected) {
			m.setErr(m.session.Remove(selected[m.chipCursor].Codename))
		}
		m.clampChipCursor()
		if len(m.session.Selected()) == 0 {
			m.focus = focusSearch
		}
		m.refresh(false)
	case isBack(msg):
		m.focus = focusSearch
	default:
		if _, ok := typedText(msg); ok {
			m.focus = focusSearch
			return m.handleSearchKey(msg)
		}
	}
	return m, nil
}

func (m Picker) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if text, ok := typedText(msg); ok {
		m.setQuery(m.session.Query() + text)
		return m, nil
	}

	switch {
	case isBackspace(msg):
		query := m.session.Query()
		if query != "" {
			r := []rune(query)
			m.setQuery(string(r[:len(r)-1]))
			return m, nil
		}
		selected := m.session.Selected()
		if len(selected) > 0 {
			m.setErr(m.session.Remove(selected[len(selected)-1].Codename))
			m.refresh(false)
		}
	case isUp(msg):
		m.ensureOpen()
		m.list.Up()
	case isDown(msg):
		if !m.ensureOpen() {
			m.list.Down()
		}
	case isEnter(msg):
		if !m.session.Open() {
			m.ensureOpen()
			return m, nil
		}
		idx := m.list.Selected()
		if idx < 0 || idx >= len(m.options) {
			return m, nil
		}
		m.setErr(m.session.Add(m.options[idx].Tag.Codename))
		if m.session.Query() != "" {
			m.setErr(m.session.SetQuery(""))
			m.refresh(true)
		} else {
			m.refresh(false)
		}
	case isBack(msg):
		switch {
		case m.session.Query() != "":
			m.setQuery("")
		case m.session.Open():
			m.setErr(m.session.SetOpen(false))
		}
	}
	return m, nil
}

// ensureOpen opens the dropdown and reports whether it was closed before.
func (m *Picker) ensureOpen() bool {
	if m.session.Open() {
		return false
	}
	m.setErr(m.session.SetOpen(true))
	m.refresh(true)
	return true
}

func (m *Picker) setQuery(q string) {
	m.setErr(m.session.SetQuery(q))
	if !m.session.Open() {
		m.setErr(m.session.SetOpen(true))
	}
	m.refresh(true)
}

// refresh reloads dropdown rows from the session. reset moves the cursor back
// to the first row.
func (m *Picker) refresh(reset bool) {
	m.options = m.session.Options()
	rows := make([]string, len(m.options))
	for i, opt := range m.options {
		rows[i] = opt.Label
	}
	if reset {
		m.list.SetItems(rows)
	} else {
		m.list.Refresh(rows)
	}
	m.clampChipCursor()
}

func (m *Picker) clampChipCursor() {
	n := len(m.session.Selected())
	if m.chipCursor >= n {
		m.chipCursor = n - 1
	}
	if m.chipCursor < 0 {
		m.chipCursor = 0
	}
}

func (m *Picker) setErr(err error) {
	if err == nil {
		return
	}
	m.err = err.Error()
}

// --- View ---

func (m Picker) View() string {
	if !m.started {
		return components.CenterBlock("\n"+MutedStyle.Render("Loading tags…"), m.width)
	}
	if m.fatal != nil {
		msg := m.fatal.Error()
		return "\n" + components.ErrorBox("Cannot start picker", msg, m.width) +
			"\n" + components.StatusBar([]string{components.Hint("esc", "quit")}, m.width)
	}

	disabled := m.session.Disabled()
	sections := []string{
		RenderHeader(m.opts.Title, m.session.Mode(), m.session.Language(), len(m.session.Universe())),
		m.renderChips(disabled),
		m.renderSearch(disabled),
	}
	if m.session.Open() {
		sections = append(sections, m.renderDropdown())
	}
	if notes := m.renderNotes(); notes != "" {
		sections = append(sections, notes)
	}
	if m.confirmClear {
		n := len(m.session.Selected())
		sections = append(sections, components.ConfirmDialog("Clear tags", fmt.Sprintf("Remove all %d selected tags?", n)))
	}
	if m.err != "" {
		sections = append(sections, ErrorStyle.Render(components.ClampTextWidth(m.err, m.width)))
	}
	sections = append(sections, components.StatusBar(m.statusHints(disabled), m.width))
	return "\n" + strings.Join(sections, "\n\n")
}

func (m Picker) renderChips(disabled bool) string {
	selected := m.session.Selected()
	state := components.BoxIdle
	switch {
	case disabled:
		state = components.BoxDisabled
	case m.focus == focusChips:
		state = components.BoxFocused
	}

	title := fmt.Sprintf("Selected (%d)", len(selected))
	if disabled {
		title += " " + BadgeStyle.Render("read-only")
	}
	if len(selected) == 0 {
		return components.TitledBox(title, MutedStyle.Render("No tags selected"), m.width, state)
	}

	chips := make([]components.Chip, len(selected))
	for i, tag := range selected {
		chips[i] = components.Chip{Label: taxonomy.DisplayName(tag)}
	}
	focused := -1
	if m.focus == focusChips {
		focused = m.chipCursor
	}
	content := components.Chips(chips, focused, disabled, components.BoxContentWidth(m.width))
	return components.TitledBox(title, content, m.width, state)
}

func (m Picker) renderSearch(disabled bool) string {
	if disabled {
		return MutedStyle.Render("  editing disabled")
	}
	cursor := ""
	if m.focus == focusSearch {
		cursor = AccentStyle.Render("█")
	}
	query := components.SanitizeOneLine(m.session.Query())
	if query == "" && cursor != "" {
		return PromptStyle.Render("> ") + cursor + MutedStyle.Render(" type to search tags")
	}
	return PromptStyle.Render("> ") + NormalStyle.Render(query) + cursor
}

func (m Picker) renderDropdown() string {
	if len(m.options) == 0 {
		if m.session.LoadError() != nil {
			return MutedStyle.Render("  Tags unavailable")
		}
		return MutedStyle.Render("  No matching tags")
	}

	width := components.BoxContentWidth(m.width)
	var b strings.Builder
	for i, label := range m.list.Visible() {
		idx := m.list.RelToAbs(i)
		indent := strings.Repeat("  ", m.options[idx].Depth)
		text := components.ClampTextWidth(label, width-len(indent)-2)
		if m.list.IsSelected(idx) {
			b.WriteString(SelectedStyle.Render("› " + indent + text))
		} else {
			b.WriteString(NormalStyle.Render("  " + indent + text))
		}
		if i < len(m.list.Visible())-1 {
			b.WriteString("\n")
		}
	}
	if m.list.HasMore() {
		b.WriteString("\n" + MutedStyle.Render(fmt.Sprintf("  … %d more", len(m.options)-m.list.Offset-m.list.PageSize)))
	}
	return b.String()
}

func (m Picker) renderNotes() string {
	var notes []string
	if err := m.session.LoadError(); err != nil {
		notes = append(notes, WarningStyle.Render(components.ClampTextWidth("Could not load tags: "+rootCause(err), m.width)))
	}
	if missing := m.session.Missing(); len(missing) > 0 {
		notes = append(notes, WarningStyle.Render(components.ClampTextWidth("Not found: "+strings.Join(missing, ", "), m.width)))
	}
	return strings.Join(notes, "\n")
}

func (m Picker) statusHints(disabled bool) []string {
	hints := make([]string, 0, 6)
	if !disabled {
		if m.focus == focusChips {
			hints = append(hints,
				components.Hint("←/→", "move"),
				components.Hint("⌫", "remove"),
			)
		} else {
			hints = append(hints,
				components.Hint("↑/↓", "browse"),
				components.Hint("⏎", "add"),
			)
		}
		if len(m.session.Selected()) > 0 {
			hints = append(hints,
				components.Hint("tab", "chips"),
				components.Hint("ctrl+x", "clear"),
			)
		}
	}
	if m.opts.ToggleReadOnly != nil {
		hints = append(hints, components.Hint("ctrl+r", "read-only"))
	}
	hints = append(hints, components.Hint("ctrl+c", "quit"))
	return hints
}

func rootCause(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
