package ui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer builds the long-form help shown in the pager
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// renderHelpContent renders key help followed by the current form model
func (r *HelpRenderer) renderHelpContent(fields []string, model map[string][]string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220"))

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	row := func(k, desc string) string {
		return fmt.Sprintf("  %-12s %s\n", keyStyle.Render(k), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("dropselect Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Fields"))
	help.WriteString("\n")
	help.WriteString(row("Tab", "Next field"))
	help.WriteString(row("Shift+Tab", "Previous field"))
	help.WriteString(row("Enter", "Open/close the focused dropdown"))
	help.WriteString(row("Mouse", "Click the button to open, click rows to toggle"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Open dropdown"))
	help.WriteString("\n")
	help.WriteString(row("↑/↓", "Move cursor"))
	help.WriteString(row("Space", "Toggle option (on All: toggle everything)"))
	help.WriteString(row("Ctrl+A", "Toggle all"))
	help.WriteString(row("a-z", "Jump to the closest matching option"))
	help.WriteString(row("Esc", "Close"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	help.WriteString(row("m", "Show/hide form model"))
	help.WriteString(row("r", "Reset all fields"))
	help.WriteString(row("?", "This help"))
	help.WriteString(row("q", "Quit"))

	help.WriteString(sectionStyle.Render("Form model"))
	help.WriteString("\n")
	help.WriteString(renderModel(fields, model))

	return help.String()
}

// renderModel formats field values one per line in field order
func renderModel(fields []string, model map[string][]string) string {
	if len(fields) == 0 {
		fields = make([]string, 0, len(model))
		for name := range model {
			fields = append(fields, name)
		}
		sort.Strings(fields)
	}
	var b strings.Builder
	for i, name := range fields {
		if i > 0 {
			b.WriteString("\n")
		}
		quoted := make([]string, len(model[name]))
		for j, v := range model[name] {
			quoted[j] = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, "%s: [%s]", name, strings.Join(quoted, ", "))
	}
	return b.String()
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps() *HelpOps {
	return &HelpOps{}
}

// SetProgram sets the program reference for terminal management
func (h *HelpOps) SetProgram(p *tea.Program) {
	h.program = p
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// let ov fully exit before taking the terminal back
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
