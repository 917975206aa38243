package form

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropselect/internal/eventbus"
	"dropselect/internal/selection"
)

func droids() []selection.Option[string] {
	return []selection.Option[string]{
		{Text: "R2D2", Value: "r2d2"},
		{Text: "C3PO", Value: "c3po"},
		{Text: "BB-8", Value: "bb8"},
	}
}

func TestBindWritesInitialValue(t *testing.T) {
	f := New(nil, map[string][]string{"droids": {"bb8"}})
	eng := selection.New(selection.DefaultConfig[string](), droids(), nil)

	require.NoError(t, f.Bind("droids", eng))
	assert.Equal(t, "BB-8", eng.Label())
}

func TestBindTwiceFails(t *testing.T) {
	f := New(nil, nil)
	eng := selection.New(selection.DefaultConfig[string](), droids(), nil)
	require.NoError(t, f.Bind("droids", eng))
	assert.Error(t, f.Bind("droids", eng))
}

func TestControlChangesFlowIntoModel(t *testing.T) {
	f := New(nil, map[string][]string{"droids": {}})
	eng := selection.New(selection.DefaultConfig[string](), droids(), nil)
	require.NoError(t, f.Bind("droids", eng))

	require.NoError(t, eng.ToggleOption(0))
	assert.Equal(t, []string{"r2d2"}, f.Value("droids"))

	require.NoError(t, eng.ToggleOption(2))
	assert.Equal(t, []string{"r2d2", "bb8"}, f.Value("droids"))
}

func TestSetValuePushesIntoControl(t *testing.T) {
	f := New(nil, nil)
	eng := selection.New(selection.DefaultConfig[string](), droids(), nil)
	require.NoError(t, f.Bind("droids", eng))

	require.NoError(t, f.SetValue("droids", []string{"r2d2", "c3po", "bb8"}))
	assert.True(t, eng.AllSelected())

	require.NoError(t, f.SetValue("droids", nil))
	assert.Equal(t, []string{}, f.Value("droids"))
	assert.Equal(t, "Select", eng.Label())

	assert.Error(t, f.SetValue("planets", nil))
}

func TestReset(t *testing.T) {
	f := New(nil, map[string][]string{"droids": {"bb8"}, "heroes": {"luke"}})
	eng := selection.New(selection.DefaultConfig[string](), droids(), nil)
	require.NoError(t, f.Bind("droids", eng))

	f.Reset()
	assert.Equal(t, map[string][]string{"droids": {}, "heroes": {}}, f.Model())
	assert.Equal(t, "Select", eng.Label())
}

func TestFieldsOrder(t *testing.T) {
	f := New(nil, map[string][]string{"villains": nil, "heroes": nil})
	eng := selection.New(selection.DefaultConfig[string](), droids(), nil)
	require.NoError(t, f.Bind("droids", eng))

	assert.Equal(t, []string{"heroes", "villains", "droids"}, f.Fields())
}

func TestChangesArePublished(t *testing.T) {
	bus := eventbus.New()
	defer bus.Close()

	var mu sync.Mutex
	var events []eventbus.ValueChangedEvent
	var saved map[string][]string
	bus.Subscribe(eventbus.EventValueChanged, func(e eventbus.DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e.(eventbus.ValueChangedEvent))
	})
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		saved = e.(eventbus.ConfigChangedEvent).Values
	})

	cfg := selection.DefaultConfig[string]()
	cfg.EmptyValueMode = selection.EmptyAll
	cfg.NoneSelectedValue = "-1"
	f := New(bus, map[string][]string{"droids": {}})
	eng := selection.New(cfg, droids(), nil)
	require.NoError(t, f.Bind("droids", eng))

	eng.ToggleAll()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(events) == 1 && saved != nil
	}, time.Second, 10*time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "droids", events[0].Field)
	assert.Equal(t, []string{"-1"}, events[0].Value)
	assert.Equal(t, map[string][]string{"droids": {"-1"}}, saved)
}
