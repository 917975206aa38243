package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"dropselect/internal/dropdown"
	"dropselect/internal/eventbus"
	"dropselect/internal/selection"
)

// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config represents the application configuration
type Config struct {
	Version  int              `toml:"version" yaml:"version"`
	Dropdown DropdownSettings `toml:"dropdown" yaml:"dropdown"`
	Fields   []Field          `toml:"fields" yaml:"fields"`
}

// DropdownSettings holds open/close behaviour shared by all fields
type DropdownSettings struct {
	OpenTrigger  string `toml:"open_trigger" yaml:"open_trigger"`
	CloseTrigger string `toml:"close_trigger" yaml:"close_trigger"`
	CloseDelayMS int    `toml:"close_delay_ms" yaml:"close_delay_ms"`
}

// Field is one multi-select control and its persisted value
type Field struct {
	Name              string         `toml:"name" yaml:"name"`
	Title             string         `toml:"title" yaml:"title"`
	Prompt            string         `toml:"prompt,omitempty" yaml:"prompt,omitempty"`
	AllLabel          string         `toml:"all_label,omitempty" yaml:"all_label,omitempty"`
	AllIcon           string         `toml:"all_icon,omitempty" yaml:"all_icon,omitempty"`
	ShowAllOption     *bool          `toml:"show_all_option,omitempty" yaml:"show_all_option,omitempty"`
	EmptyValueMode    string         `toml:"empty_value_mode,omitempty" yaml:"empty_value_mode,omitempty"`
	NoneSelectedValue string         `toml:"none_selected_value,omitempty" yaml:"none_selected_value,omitempty"`
	LabelExpr         string         `toml:"label_expr,omitempty" yaml:"label_expr,omitempty"`
	Options           []OptionConfig `toml:"options" yaml:"options"`
	Value             []string       `toml:"value" yaml:"value"`
}

// OptionConfig is a selectable entry of a field
type OptionConfig struct {
	Text  string `toml:"text" yaml:"text"`
	Value string `toml:"value" yaml:"value"`
	Icon  string `toml:"icon,omitempty" yaml:"icon,omitempty"`
}

// ToggleConfig converts the dropdown settings, filling defaults
func (d DropdownSettings) ToggleConfig() (dropdown.Config, error) {
	cfg := dropdown.DefaultConfig()
	if d.OpenTrigger != "" {
		t, err := dropdown.ParseTrigger(d.OpenTrigger)
		if err != nil {
			return cfg, fmt.Errorf("invalid open_trigger: %w", err)
		}
		cfg.OpenTrigger = t
	}
	if d.CloseTrigger != "" {
		t, err := dropdown.ParseTrigger(d.CloseTrigger)
		if err != nil {
			return cfg, fmt.Errorf("invalid close_trigger: %w", err)
		}
		cfg.CloseTrigger = t
	}
	if d.CloseDelayMS > 0 {
		cfg.CloseDelay = time.Duration(d.CloseDelayMS) * time.Millisecond
	}
	return cfg, nil
}

// SelectionConfig converts the field into engine settings. The label
// expression is compiled by the caller.
func (f Field) SelectionConfig() (selection.Config[string], error) {
	cfg := selection.DefaultConfig[string]()
	if f.Prompt != "" {
		cfg.Prompt = f.Prompt
	}
	if f.AllLabel != "" {
		cfg.AllLabel = f.AllLabel
	}
	cfg.AllIcon = f.AllIcon
	if f.ShowAllOption != nil {
		cfg.ShowAllOption = *f.ShowAllOption
	}
	mode, err := selection.ParseEmptyValueMode(f.EmptyValueMode)
	if err != nil {
		return cfg, fmt.Errorf("field %s: %w", f.Name, err)
	}
	cfg.EmptyValueMode = mode
	cfg.NoneSelectedValue = f.NoneSelectedValue
	if cfg.NoneSelectedValue == "" {
		cfg.NoneSelectedValue = "-1"
	}
	return cfg, nil
}

// SelectionOptions converts the field's option list
func (f Field) SelectionOptions() []selection.Option[string] {
	opts := make([]selection.Option[string], len(f.Options))
	for i, o := range f.Options {
		opts[i] = selection.Option[string]{Text: o.Text, Value: o.Value, Icon: o.Icon}
	}
	return opts
}

// Values returns field name -> persisted value
func (c *Config) Values() map[string][]string {
	out := make(map[string][]string, len(c.Fields))
	for _, f := range c.Fields {
		out[f.Name] = f.Value
	}
	return out
}

// ApplyValues copies form values back onto the matching fields
func (c *Config) ApplyValues(values map[string][]string) {
	for i := range c.Fields {
		if v, ok := values[c.Fields[i].Name]; ok {
			c.Fields[i].Value = v
		}
	}
}

// Validate checks names are unique and settings parse
func (c *Config) Validate() error {
	if _, err := c.Dropdown.ToggleConfig(); err != nil {
		return err
	}
	seen := make(map[string]bool)
	for _, f := range c.Fields {
		if f.Name == "" {
			return fmt.Errorf("field with title %q has no name", f.Title)
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field name %q", f.Name)
		}
		seen[f.Name] = true
		if _, err := f.SelectionConfig(); err != nil {
			return err
		}
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "dropselect", "config.toml")
}

// NewConfigService creates a config service for path; an empty path uses DefaultPath
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration file, returning defaults if it does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		cfg, err = cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Fields: len(cfg.Fields)})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	unmarshal, err := unmarshalerFor(path)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	for i := range cfg.Fields {
		if cfg.Fields[i].Value == nil {
			cfg.Fields[i].Value = []string{}
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	marshal, err := marshalerFor(path)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func unmarshalerFor(path string) (func([]byte, any) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal, nil
	case ".yaml", ".yml":
		return yaml.Unmarshal, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

func marshalerFor(path string) (func(any) ([]byte, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Marshal, nil
	case ".yaml", ".yml":
		return yaml.Marshal, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}
