// Package multiselect is a Bubble Tea multi-select dropdown. Selection
// bookkeeping is delegated to selection.Engine and open/close timing to
// dropdown.Toggle; this package only maps terminal input onto them and
// renders the result.
package multiselect

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"dropselect/internal/dropdown"
	"dropselect/internal/selection"
	"dropselect/internal/ui/views"
)

// typeaheadReset is how long typed characters accumulate before the buffer clears
const typeaheadReset = 800 * time.Millisecond

// CloseTimerMsg is delivered when a hover-out close timer fires
type CloseTimerMsg struct {
	ID    string
	Timer uint64
}

// ChangedMsg reports a user-driven value change
type ChangedMsg struct {
	ID    string
	Name  string
	Value []string
	Label string
}

type typeaheadResetMsg struct {
	id  string
	seq int
}

// Model is a single dropdown instance
type Model struct {
	id     string
	name   string
	engine *selection.Engine[string]
	toggle *dropdown.Toggle
	keys   KeyMap
	styles *views.Styles

	focused bool
	cursor  int // row index within the open list, the "all" row included

	typeahead    string
	typeaheadSeq int

	originX, originY int
	lastErr          error
}

// New creates a dropdown bound to engine. The name is reported in ChangedMsg.
func New(name string, engine *selection.Engine[string], cfg dropdown.Config, styles *views.Styles) *Model {
	if styles == nil {
		styles = views.NewStyles()
	}
	return &Model{
		id:     uuid.NewString(),
		name:   name,
		engine: engine,
		toggle: dropdown.NewToggle(cfg),
		keys:   DefaultKeyMap(),
		styles: styles,
	}
}

// ID returns the instance id used to route timer messages
func (m *Model) ID() string { return m.id }

// Name returns the field name
func (m *Model) Name() string { return m.name }

// Engine returns the selection engine
func (m *Model) Engine() *selection.Engine[string] { return m.engine }

// KeyMap returns the key bindings, for help rendering
func (m *Model) KeyMap() KeyMap { return m.keys }

// IsOpen reports whether the option list is shown
func (m *Model) IsOpen() bool { return m.toggle.IsOpen() }

// Cursor returns the highlighted row
func (m *Model) Cursor() int { return m.cursor }

// Err returns the last toggle error, if any
func (m *Model) Err() error { return m.lastErr }

// Focus gives the widget keyboard focus
func (m *Model) Focus() { m.focused = true }

// Blur removes keyboard focus and closes the list
func (m *Model) Blur() {
	m.focused = false
	m.toggle.Close()
}

// Focused reports keyboard focus
func (m *Model) Focused() bool { return m.focused }

// SetOrigin records the screen cell of the button's first column. Mouse
// hit-testing is relative to it.
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// Height returns the number of rendered lines
func (m *Model) Height() int {
	if !m.toggle.IsOpen() {
		return 1
	}
	return 1 + m.rowCount()
}

func (m *Model) showAll() bool {
	return m.engine.Config().ShowAllOption
}

func (m *Model) rowCount() int {
	n := m.engine.Len()
	if m.showAll() {
		n++
	}
	return n
}

// optionIndex maps a list row to an engine option index; -1 is the "all" row
func (m *Model) optionIndex(row int) int {
	if m.showAll() {
		return row - 1
	}
	return row
}

// Update handles a message and returns a follow-up command
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case CloseTimerMsg:
		if msg.ID == m.id && m.toggle.Expire(msg.Timer) {
			m.typeahead = ""
		}
		return nil

	case typeaheadResetMsg:
		if msg.id == m.id && msg.seq == m.typeaheadSeq {
			m.typeahead = ""
		}
		return nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Activate):
		m.Activate()
		return nil
	case key.Matches(msg, m.keys.Close):
		m.toggle.Close()
		return nil
	}

	if !m.toggle.IsOpen() {
		if key.Matches(msg, m.keys.Down) || key.Matches(msg, m.keys.Toggle) {
			m.toggle.Open()
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		return m.ToggleRow(m.cursor)
	case key.Matches(msg, m.keys.All):
		return m.ToggleAll()
	case msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && unicode.IsPrint(msg.Runes[0]):
		return m.typeRunes(msg.Runes)
	}
	return nil
}

// Activate toggles the list open or closed
func (m *Model) Activate() {
	m.toggle.Activate()
	if m.toggle.IsOpen() && m.cursor >= m.rowCount() {
		m.cursor = 0
	}
}

func (m *Model) moveCursor(delta int) {
	n := m.rowCount()
	if n == 0 {
		return
	}
	m.cursor = (m.cursor + delta + n) % n
}

// ToggleRow toggles the option at a list row; the "all" row toggles everything
func (m *Model) ToggleRow(row int) tea.Cmd {
	idx := m.optionIndex(row)
	if idx < 0 {
		return m.ToggleAll()
	}
	if err := m.engine.ToggleOption(idx); err != nil {
		m.lastErr = err
		return nil
	}
	m.lastErr = nil
	return m.changed()
}

// ToggleAll flips the aggregate selection
func (m *Model) ToggleAll() tea.Cmd {
	m.engine.ToggleAll()
	m.lastErr = nil
	return m.changed()
}

func (m *Model) changed() tea.Cmd {
	msg := ChangedMsg{
		ID:    m.id,
		Name:  m.name,
		Value: m.engine.Value(),
		Label: m.engine.Label(),
	}
	return func() tea.Msg { return msg }
}

func (m *Model) typeRunes(runes []rune) tea.Cmd {
	m.typeahead += string(runes)
	m.typeaheadSeq++

	state := m.engine.State()
	texts := make([]string, len(state.Options))
	for i, opt := range state.Options {
		texts[i] = opt.Text
	}
	if idx := bestMatch(m.typeahead, texts); idx >= 0 {
		m.cursor = idx
		if m.showAll() {
			m.cursor++
		}
	}

	id, seq := m.id, m.typeaheadSeq
	return tea.Tick(typeaheadReset, func(time.Time) tea.Msg {
		return typeaheadResetMsg{id: id, seq: seq}
	})
}

// ContainsPoint reports whether a screen cell lies on the rendered widget
func (m *Model) ContainsPoint(x, y int) bool {
	if y < m.originY || y >= m.originY+m.Height() {
		return false
	}
	return x >= m.originX && x < m.originX+m.width()
}

func (m *Model) width() int {
	return lipgloss.Width(m.View())
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	inside := m.ContainsPoint(msg.X, msg.Y)

	var cmd tea.Cmd
	switch {
	case inside && !m.toggle.Hovered():
		m.toggle.PointerEnter()
	case !inside && m.toggle.Hovered():
		if timer, ok := m.toggle.PointerLeave(); ok {
			id := m.id
			cmd = tea.Tick(timer.Delay, func(time.Time) tea.Msg {
				return CloseTimerMsg{ID: id, Timer: timer.ID}
			})
		}
	}

	if !inside || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return cmd
	}

	row := msg.Y - m.originY
	if row == 0 {
		m.Activate()
		return cmd
	}
	m.cursor = row - 1
	return tea.Batch(cmd, m.ToggleRow(row-1))
}

// View renders the button and, when open, the option list
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderButton())

	if !m.toggle.IsOpen() {
		return b.String()
	}

	state := m.engine.State()
	row := 0
	if m.showAll() {
		b.WriteString("\n")
		b.WriteString(m.renderRow(row, m.allBox(state), m.engine.Config().AllLabel, m.engine.Config().AllIcon))
		row++
	}
	for _, opt := range state.Options {
		b.WriteString("\n")
		b.WriteString(m.renderRow(row, m.box(opt.Selected), opt.Text, opt.Icon))
		row++
	}
	return b.String()
}

func (m *Model) renderButton() string {
	arrow := "▾"
	style := m.styles.Button
	switch {
	case m.toggle.IsOpen():
		arrow = "▴"
		style = m.styles.ButtonOpen
	case m.focused:
		style = m.styles.ButtonFocused
	}
	button := style.Render(fmt.Sprintf("%s %s", m.engine.Label(), arrow))
	if m.typeahead != "" {
		button += " " + m.styles.Typeahead.Render(m.typeahead)
	}
	return button
}

func (m *Model) renderRow(row int, box, text, icon string) string {
	line := box + " "
	if icon != "" {
		line += m.styles.Icon.Render(icon) + " "
	}
	line += m.styles.Option.Render(text)

	prefix := "  "
	if m.focused && row == m.cursor {
		prefix = "> "
		line = m.styles.Cursor.Render(line)
	}
	return prefix + line
}

func (m *Model) box(selected bool) string {
	if selected {
		return m.styles.Checked.Render("[x]")
	}
	return m.styles.Unchecked.Render("[ ]")
}

func (m *Model) allBox(state selection.State[string]) string {
	switch {
	case state.AllSelected:
		return m.styles.Checked.Render("[x]")
	case state.AllPartial:
		return m.styles.Partial.Render("[-]")
	}
	return m.styles.Unchecked.Render("[ ]")
}
