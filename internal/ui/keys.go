package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"dropselect/internal/ui/multiselect"
)

type keyMap struct {
	Next  key.Binding
	Prev  key.Binding
	Model key.Binding
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding

	field multiselect.KeyMap
}

func newKeyMap() keyMap {
	return keyMap{
		Next:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev field")),
		Model: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "form model")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		field: multiselect.DefaultKeyMap(),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return append([]key.Binding{k.Next}, append(k.field.ShortHelp(), k.Help, k.Quit)...)
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return append(k.field.FullHelp(), []key.Binding{k.Next, k.Prev, k.Model, k.Reset, k.Help, k.Quit})
}
