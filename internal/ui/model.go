package ui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dropselect/internal/config"
	"dropselect/internal/eventbus"
	"dropselect/internal/form"
	"dropselect/internal/labels"
	"dropselect/internal/selection"
	"dropselect/internal/ui/multiselect"
	"dropselect/internal/ui/views"
)

// ReadyMarker is printed once the UI renders in e2e mode
const ReadyMarker = "__READY__"

// Options tweak the model for the host environment
type Options struct {
	E2E bool // render ReadyMarker so the e2e driver can synchronise
}

// Model is the demo form: one dropdown per configured field
type Model struct {
	bus    eventbus.EventBus
	form   *form.Form
	styles *views.Styles
	keys   keyMap
	help   help.Model

	fields []*multiselect.Model
	titles []string
	focus  int

	width, height int
	showModel     bool
	status        string
	statusErr     bool
	statusSeq     int
	opts          Options

	helpRenderer *HelpRenderer
	helpOps      *HelpOps
}

// NewModel builds the form from configuration
func NewModel(cfg *config.Config, bus eventbus.EventBus, opts Options) (*Model, error) {
	toggleCfg, err := cfg.Dropdown.ToggleConfig()
	if err != nil {
		return nil, err
	}

	m := &Model{
		bus:          bus,
		form:         form.New(bus, cfg.Values()),
		styles:       views.NewStyles(),
		keys:         newKeyMap(),
		help:         help.New(),
		opts:         opts,
		helpRenderer: NewHelpRenderer(),
		helpOps:      NewHelpOps(),
	}

	for _, field := range cfg.Fields {
		selCfg, err := field.SelectionConfig()
		if err != nil {
			return nil, err
		}
		if field.LabelExpr != "" {
			expr, err := labels.Compile(field.LabelExpr)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
			selCfg.LabelFn = labels.LabelFunc[string](expr, selCfg.Prompt, selCfg.AllLabel)
		}

		engine := selection.New(selCfg, field.SelectionOptions(), field.Value)
		if err := m.form.Bind(field.Name, engine); err != nil {
			return nil, err
		}

		title := field.Title
		if title == "" {
			title = field.Name
		}
		m.fields = append(m.fields, multiselect.New(field.Name, engine, toggleCfg, m.styles))
		m.titles = append(m.titles, title)
	}

	if len(m.fields) > 0 {
		m.fields[0].Focus()
	}
	m.layout()
	log.Printf("UI model created with %d fields", len(m.fields))
	return m, nil
}

// SetProgram sets the program reference used by the help pager
func (m *Model) SetProgram(p *tea.Program) {
	m.helpOps.SetProgram(p)
}

// Form returns the bound form
func (m *Model) Form() *form.Form { return m.form }

// Fields returns the dropdown widgets in display order
func (m *Model) Fields() []*multiselect.Model { return m.fields }

// Focused returns the index of the focused field
func (m *Model) Focused() int { return m.focus }

// Status returns the status line text
func (m *Model) Status() string { return m.status }

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			return m, tea.Quit
		}

	case tea.MouseMsg:
		cmds := make([]tea.Cmd, 0, len(m.fields))
		for i, f := range m.fields {
			if msg.Action == tea.MouseActionPress && f.ContainsPoint(msg.X, msg.Y) {
				m.setFocus(i)
			}
			cmds = append(cmds, f.Update(msg))
		}
		cmd = tea.Batch(cmds...)

	case multiselect.ChangedMsg:
		cmd = m.setStatus(fmt.Sprintf("%s: %s", msg.Name, msg.Label), false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}

	case helpPagerMsg:
		if msg.err != nil {
			log.Printf("Help pager failed: %v", msg.err)
		}

	case EventMsg:
		cmd = m.handleEvent(msg.Event)

	default:
		// timer messages carry the widget id; each widget ignores the others
		cmds := make([]tea.Cmd, 0, len(m.fields))
		for _, f := range m.fields {
			cmds = append(cmds, f.Update(msg))
		}
		cmd = tea.Batch(cmds...)
	}

	m.layout()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	f := m.focused()
	listOpen := f != nil && f.IsOpen()

	switch {
	case msg.Type == tea.KeyCtrlC:
		return nil, true
	case key.Matches(msg, m.keys.Next):
		m.setFocus(m.focus + 1)
		return nil, false
	case key.Matches(msg, m.keys.Prev):
		m.setFocus(m.focus - 1)
		return nil, false
	}

	// While a list is open, letters belong to it
	if !listOpen {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return nil, true
		case key.Matches(msg, m.keys.Model):
			m.showModel = !m.showModel
			return nil, false
		case key.Matches(msg, m.keys.Reset):
			m.form.Reset()
			return m.setStatus("Form reset", false), false
		case key.Matches(msg, m.keys.Help):
			return m.showHelpPager(), false
		}
	}

	if f == nil {
		return nil, false
	}
	cmd := f.Update(msg)
	if err := f.Err(); err != nil {
		return tea.Batch(cmd, m.setStatus(err.Error(), true)), false
	}
	return cmd, false
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ConfigSavedEvent:
		return m.setStatus("Saved "+e.Path, false)
	case eventbus.ErrorEvent:
		return m.setStatus(e.Message, true)
	}
	return nil
}

func (m *Model) focused() *multiselect.Model {
	if len(m.fields) == 0 {
		return nil
	}
	return m.fields[m.focus]
}

func (m *Model) setFocus(i int) {
	n := len(m.fields)
	if n == 0 {
		return
	}
	i = (i%n + n) % n
	if i == m.focus && m.fields[i].Focused() {
		return
	}
	m.fields[m.focus].Blur()
	m.focus = i
	m.fields[i].Focus()
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	seq := m.statusSeq
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func (m *Model) showHelpPager() tea.Cmd {
	content := m.helpRenderer.renderHelpContent(m.form.Fields(), m.form.Model())
	ops := m.helpOps
	return func() tea.Msg {
		return helpPagerMsg{err: ops.ShowHelpInPager(content)}
	}
}

// layout assigns each widget its screen origin, mirroring View's line order
func (m *Model) layout() {
	x := m.styles.Main.GetPaddingLeft()
	y := m.styles.Main.GetPaddingTop()
	y += lipgloss.Height(m.styles.Title.Render("dropselect"))
	for _, f := range m.fields {
		y++ // field title
		f.SetOrigin(x, y)
		y += f.Height() + 1
	}
}

// View renders the form
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("dropselect"))
	b.WriteString("\n")

	for i, f := range m.fields {
		b.WriteString(m.styles.FieldTitle.Render(m.titles[i]))
		b.WriteString("\n")
		b.WriteString(f.View())
		b.WriteString("\n\n")
	}

	if m.showModel {
		b.WriteString(m.styles.Model.Render(renderModel(m.form.Fields(), m.form.Model())))
		b.WriteString("\n")
	}

	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.StatusError
		}
		b.WriteString(style.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))

	if m.opts.E2E {
		b.WriteString("\n")
		b.WriteString(ReadyMarker)
	}

	return m.styles.Main.Render(b.String())
}
