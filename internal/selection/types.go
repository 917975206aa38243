package selection

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when a toggle targets an index outside the option list
var ErrOutOfRange = errors.New("option index out of range")

// EmptyValueMode controls how an empty external value is interpreted
type EmptyValueMode string

const (
	// EmptyNone treats an empty value as "nothing selected"
	EmptyNone EmptyValueMode = "none"
	// EmptyAll treats an empty value as "everything selected"
	EmptyAll EmptyValueMode = "all"
)

// ParseEmptyValueMode converts a config string into an EmptyValueMode.
// An empty string yields EmptyNone.
func ParseEmptyValueMode(s string) (EmptyValueMode, error) {
	switch EmptyValueMode(s) {
	case "", EmptyNone:
		return EmptyNone, nil
	case EmptyAll:
		return EmptyAll, nil
	}
	return "", fmt.Errorf("unknown empty value mode %q", s)
}

// Option is a caller-supplied selectable entry
type Option[T comparable] struct {
	Text  string
	Value T
	Icon  string
}

// InternalOption is an option plus its derived selected flag.
// Instances are rebuilt from scratch on every Rebuild.
type InternalOption[T comparable] struct {
	Text     string
	Value    T
	Icon     string
	Selected bool
	Source   Option[T]
}

// State is the snapshot a host reads to render the control
type State[T comparable] struct {
	Options     []InternalOption[T]
	AllSelected bool
	AllPartial  bool
	Label       string
	Value       []T
}

// LabelFunc derives the button label from the selected options
type LabelFunc[T comparable] func(selected []Option[T], allSelected bool) string

// Config holds the engine's behavioural settings
type Config[T comparable] struct {
	Prompt            string
	AllLabel          string
	AllIcon           string // drawn on the "all" row
	ShowAllOption     bool
	EmptyValueMode    EmptyValueMode
	NoneSelectedValue T
	LabelFn           LabelFunc[T] // nil means DefaultLabel
}

// DefaultConfig returns the stock settings: prompt "Select", all label "All",
// an "all" row shown, and empty meaning nothing selected.
func DefaultConfig[T comparable]() Config[T] {
	return Config[T]{
		Prompt:         "Select",
		AllLabel:       "All",
		ShowAllOption:  true,
		EmptyValueMode: EmptyNone,
	}
}

// ValueAccessor is the two-hook contract a form uses to bind a control
type ValueAccessor[T comparable] interface {
	WriteValue(value []T)
	RegisterOnChange(fn func(value []T))
}
