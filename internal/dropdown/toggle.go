package dropdown

import (
	"fmt"
	"time"
)

// Trigger selects the pointer gesture that opens or closes the list
type Trigger string

const (
	TriggerHover Trigger = "hover"
	TriggerClick Trigger = "click"
)

// DefaultCloseDelay is how long the list stays open after the pointer leaves
const DefaultCloseDelay = 500 * time.Millisecond

// ParseTrigger converts a config string into a Trigger
func ParseTrigger(s string) (Trigger, error) {
	switch Trigger(s) {
	case TriggerHover, TriggerClick:
		return Trigger(s), nil
	}
	return "", fmt.Errorf("unknown trigger %q", s)
}

// Config controls open/close behaviour
type Config struct {
	OpenTrigger  Trigger
	CloseTrigger Trigger
	CloseDelay   time.Duration
}

// DefaultConfig opens on click and closes on hover-out after DefaultCloseDelay
func DefaultConfig() Config {
	return Config{
		OpenTrigger:  TriggerClick,
		CloseTrigger: TriggerHover,
		CloseDelay:   DefaultCloseDelay,
	}
}

// CloseTimer identifies an armed close timer. The host schedules it and
// reports back through Expire.
type CloseTimer struct {
	ID    uint64
	Delay time.Duration
}

// Toggle is the {closed, open} state machine with a debounced close on leave.
// At most one close timer is live; arming a new one or entering again
// invalidates the previous id.
type Toggle struct {
	cfg     Config
	open    bool
	seq     uint64
	pending uint64 // 0 when no timer is live
	hovered bool
}

// NewToggle creates a closed toggle. Zero fields of cfg take the defaults.
func NewToggle(cfg Config) *Toggle {
	if cfg.OpenTrigger == "" {
		cfg.OpenTrigger = TriggerClick
	}
	if cfg.CloseTrigger == "" {
		cfg.CloseTrigger = TriggerHover
	}
	if cfg.CloseDelay <= 0 {
		cfg.CloseDelay = DefaultCloseDelay
	}
	return &Toggle{cfg: cfg}
}

// IsOpen reports whether the list is shown
func (t *Toggle) IsOpen() bool { return t.open }

// Hovered reports whether the pointer is currently over the control
func (t *Toggle) Hovered() bool { return t.hovered }

// Pending reports whether a close timer is live
func (t *Toggle) Pending() bool { return t.pending != 0 }

// Config returns the trigger settings
func (t *Toggle) Config() Config { return t.cfg }

// PointerEnter cancels any pending close and opens when the open trigger is hover.
// It returns true if the open state changed.
func (t *Toggle) PointerEnter() bool {
	t.hovered = true
	t.pending = 0
	if t.cfg.OpenTrigger == TriggerHover && !t.open {
		t.open = true
		return true
	}
	return false
}

// PointerLeave arms a close timer when the close trigger is hover. The
// returned timer replaces any previously armed one.
func (t *Toggle) PointerLeave() (CloseTimer, bool) {
	t.hovered = false
	if t.cfg.CloseTrigger != TriggerHover {
		return CloseTimer{}, false
	}
	t.seq++
	t.pending = t.seq
	return CloseTimer{ID: t.seq, Delay: t.cfg.CloseDelay}, true
}

// Expire is called when a scheduled timer fires. Stale or cancelled ids are
// ignored. It returns true if the toggle closed.
func (t *Toggle) Expire(id uint64) bool {
	if id == 0 || id != t.pending {
		return false
	}
	t.pending = 0
	if !t.open {
		return false
	}
	t.open = false
	return true
}

// Activate flips open/closed directly, independent of any timer
func (t *Toggle) Activate() {
	if t.open {
		t.Close()
		return
	}
	t.open = true
}

// Open shows the list
func (t *Toggle) Open() {
	t.open = true
}

// Close hides the list and disarms any pending timer
func (t *Toggle) Close() {
	t.open = false
	t.pending = 0
}
