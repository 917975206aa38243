package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventValueChanged  EventType = "ValueChanged"
	EventError         EventType = "Error"
	EventConfigLoaded  EventType = "ConfigLoaded"
	EventConfigSaved   EventType = "ConfigSaved"
	EventConfigChanged EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ValueChangedEvent is emitted when the user changes a bound field
type ValueChangedEvent struct {
	Field string
	Value []string
}

func (e ValueChangedEvent) Type() EventType { return EventValueChanged }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path   string
	Fields int
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when the form model needs to be persisted
type ConfigChangedEvent struct {
	Values map[string][]string // field name -> value
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
