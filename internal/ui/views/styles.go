package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title         lipgloss.Style
	FieldTitle    lipgloss.Style
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style
	ButtonOpen    lipgloss.Style
	Option        lipgloss.Style
	Cursor        lipgloss.Style
	Checked       lipgloss.Style
	Unchecked     lipgloss.Style
	Partial       lipgloss.Style
	Icon          lipgloss.Style
	Typeahead     lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
	Model         lipgloss.Style
	Help          lipgloss.Style
	Main          lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			MarginBottom(1),
		FieldTitle:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		Button:        lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("236")),
		ButtonFocused: lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("238")).Foreground(lipgloss.Color("226")),
		ButtonOpen:    lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("33")).Foreground(lipgloss.Color("231")),
		Option:        lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		Cursor:        lipgloss.NewStyle().Background(lipgloss.Color("238")),
		Checked:       lipgloss.NewStyle().Foreground(lipgloss.Color("78")),  // green
		Unchecked:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")), // gray
		Partial:       lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Icon:          lipgloss.NewStyle().Foreground(lipgloss.Color("51")),  // cyan
		Typeahead:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true),
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		StatusError: lipgloss.NewStyle().Foreground(lipgloss.Color("203")), // red
		Model: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Padding(0, 1).
			BorderForeground(lipgloss.Color("241")),
		Help: lipgloss.NewStyle().Faint(true),
		Main: lipgloss.NewStyle().Padding(1, 2),
	}
}
