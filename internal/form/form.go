// Package form binds named controls to a shared value model, the way a web
// form group binds its inputs. Controls talk to the form only through the
// selection.ValueAccessor hooks.
package form

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"sort"

	"dropselect/internal/eventbus"
	"dropselect/internal/selection"
)

// Form keeps the model for a set of named fields
type Form struct {
	bus      eventbus.EventBus
	order    []string
	model    map[string][]string
	controls map[string]selection.ValueAccessor[string]
}

// New creates a form seeded with initial values. A nil bus disables publishing.
func New(bus eventbus.EventBus, initial map[string][]string) *Form {
	f := &Form{
		bus:      bus,
		model:    make(map[string][]string),
		controls: make(map[string]selection.ValueAccessor[string]),
	}
	names := slices.Collect(maps.Keys(initial))
	sort.Strings(names)
	for _, name := range names {
		f.order = append(f.order, name)
		f.model[name] = orEmpty(initial[name])
	}
	return f
}

// Bind attaches a control to a field: the field's current value is written
// into the control and the control's changes flow back into the model.
func (f *Form) Bind(name string, control selection.ValueAccessor[string]) error {
	if _, exists := f.controls[name]; exists {
		return fmt.Errorf("field %q is already bound", name)
	}
	if _, ok := f.model[name]; !ok {
		f.order = append(f.order, name)
		f.model[name] = []string{}
	}
	f.controls[name] = control
	control.WriteValue(slices.Clone(f.model[name]))
	control.RegisterOnChange(func(value []string) {
		f.handleChange(name, value)
	})
	return nil
}

func (f *Form) handleChange(name string, value []string) {
	value = orEmpty(value)
	f.model[name] = slices.Clone(value)
	log.Printf("Form field %s changed: %v", name, value)

	if f.bus != nil {
		f.bus.Publish(eventbus.ValueChangedEvent{Field: name, Value: slices.Clone(value)})
		f.bus.Publish(eventbus.ConfigChangedEvent{Values: f.Model()})
	}
}

// SetValue updates a field from the host side and pushes it into the bound control
func (f *Form) SetValue(name string, value []string) error {
	if _, ok := f.model[name]; !ok {
		return fmt.Errorf("unknown field %q", name)
	}
	value = orEmpty(value)
	f.model[name] = slices.Clone(value)
	if c, ok := f.controls[name]; ok {
		c.WriteValue(slices.Clone(value))
	}
	return nil
}

// Reset clears every field back to an empty value
func (f *Form) Reset() {
	for _, name := range f.order {
		_ = f.SetValue(name, []string{})
	}
	if f.bus != nil {
		f.bus.Publish(eventbus.ConfigChangedEvent{Values: f.Model()})
	}
}

// Value returns a copy of one field's value
func (f *Form) Value(name string) []string {
	return slices.Clone(f.model[name])
}

// Fields returns field names in binding order
func (f *Form) Fields() []string {
	return slices.Clone(f.order)
}

// Model returns a copy of the whole model
func (f *Form) Model() map[string][]string {
	out := make(map[string][]string, len(f.model))
	for k, v := range f.model {
		out[k] = slices.Clone(v)
	}
	return out
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
