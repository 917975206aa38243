package selection

import (
	"fmt"
	"slices"
)

// Engine derives per-option selected flags, an aggregate status and a label
// from an option list and an external value. It is not safe for concurrent
// use; hosts drive it from a single event loop.
type Engine[T comparable] struct {
	cfg     Config[T]
	options []Option[T]
	value   []T

	internal    []InternalOption[T]
	allSelected bool
	allPartial  bool
	label       string

	onChange  func([]T)
	onTouched func()
}

// New creates an engine and performs the initial rebuild
func New[T comparable](cfg Config[T], options []Option[T], value []T) *Engine[T] {
	if cfg.EmptyValueMode == "" {
		cfg.EmptyValueMode = EmptyNone
	}
	e := &Engine[T]{
		cfg:     cfg,
		options: cloneOrEmpty(options),
		value:   cloneOrEmpty(value),
	}
	e.Rebuild()
	return e
}

// Config returns the engine settings
func (e *Engine[T]) Config() Config[T] {
	return e.cfg
}

// SetOptions replaces the option list and rebuilds
func (e *Engine[T]) SetOptions(options []Option[T]) {
	e.options = cloneOrEmpty(options)
	e.Rebuild()
}

// WriteValue pushes an external value in. A nil value is ignored and the last
// known value is kept; anything else replaces it and triggers a rebuild.
func (e *Engine[T]) WriteValue(value []T) {
	if value == nil {
		return
	}
	e.value = slices.Clone(value)
	e.Rebuild()
}

// RegisterOnChange sets the listener invoked after user-driven changes.
// Only the most recent registration is kept.
func (e *Engine[T]) RegisterOnChange(fn func([]T)) {
	e.onChange = fn
}

// RegisterOnTouched sets the listener invoked whenever the user toggles something
func (e *Engine[T]) RegisterOnTouched(fn func()) {
	e.onTouched = fn
}

// Rebuild regenerates the internal options from the option list and value
func (e *Engine[T]) Rebuild() {
	allSelected := true
	noneSelected := true
	internal := make([]InternalOption[T], len(e.options))
	for i, opt := range e.options {
		selected := e.isSelected(opt)
		allSelected = allSelected && selected
		noneSelected = noneSelected && !selected
		internal[i] = InternalOption[T]{
			Text:     opt.Text,
			Value:    opt.Value,
			Icon:     opt.Icon,
			Selected: selected,
			Source:   opt,
		}
	}
	e.internal = internal
	e.allSelected = allSelected
	e.allPartial = !allSelected && !noneSelected
	e.updateLabel()
}

func (e *Engine[T]) isSelected(opt Option[T]) bool {
	if e.cfg.EmptyValueMode == EmptyAll && len(e.value) == 0 {
		return true
	}
	return slices.Contains(e.value, opt.Value)
}

// ToggleOption flips the selected flag of the option at index
func (e *Engine[T]) ToggleOption(index int) error {
	if index < 0 || index >= len(e.internal) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrOutOfRange, index, len(e.internal))
	}
	e.internal[index].Selected = !e.internal[index].Selected
	e.updateValue()
	return nil
}

// ToggleAll sets every option to the inverse of the aggregate all-selected flag
func (e *Engine[T]) ToggleAll() {
	target := !e.allSelected
	for i := range e.internal {
		e.internal[i].Selected = target
	}
	e.updateValue()
}

func (e *Engine[T]) updateValue() {
	value := make([]T, 0, len(e.internal))
	for _, opt := range e.internal {
		if opt.Selected {
			value = append(value, opt.Value)
		}
	}
	allSelected := len(value) == len(e.internal)
	noneSelected := len(value) == 0

	e.allSelected = allSelected
	e.allPartial = !allSelected && !noneSelected

	if e.cfg.EmptyValueMode == EmptyAll {
		if allSelected {
			value = []T{}
		} else if noneSelected {
			value = []T{e.cfg.NoneSelectedValue}
		}
	}
	e.value = value
	e.updateLabel()

	if e.onTouched != nil {
		e.onTouched()
	}
	if e.onChange != nil {
		e.onChange(slices.Clone(e.value))
	}
}

func (e *Engine[T]) updateLabel() {
	fn := e.cfg.LabelFn
	if fn == nil {
		fn = DefaultLabel[T](e.cfg.Prompt, e.cfg.AllLabel)
	}
	e.label = fn(e.SelectedOptions(), e.allSelected)
}

// SelectedOptions returns the caller-supplied options currently selected
func (e *Engine[T]) SelectedOptions() []Option[T] {
	selected := make([]Option[T], 0, len(e.internal))
	for _, opt := range e.internal {
		if opt.Selected {
			selected = append(selected, opt.Source)
		}
	}
	return selected
}

// Label returns the current label
func (e *Engine[T]) Label() string { return e.label }

// Value returns a copy of the current value
func (e *Engine[T]) Value() []T { return slices.Clone(e.value) }

// AllSelected reports whether every option is selected
func (e *Engine[T]) AllSelected() bool { return e.allSelected }

// AllPartial reports whether some but not all options are selected
func (e *Engine[T]) AllPartial() bool { return e.allPartial }

// Len returns the number of options
func (e *Engine[T]) Len() int { return len(e.internal) }

// State returns a snapshot that does not alias engine memory
func (e *Engine[T]) State() State[T] {
	return State[T]{
		Options:     slices.Clone(e.internal),
		AllSelected: e.allSelected,
		AllPartial:  e.allPartial,
		Label:       e.label,
		Value:       cloneOrEmpty(e.value),
	}
}

func cloneOrEmpty[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return slices.Clone(s)
}
