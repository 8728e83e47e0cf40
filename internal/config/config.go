package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andyrewlee/dragscroll/internal/validation"
)

// KeyMapConfig holds user overrides for keybindings.
type KeyMapConfig struct {
	Bindings map[string][]string `yaml:"bindings,omitempty"`
}

// BindingFor returns the configured keys for an action, if present.
func (k KeyMapConfig) BindingFor(action string) ([]string, bool) {
	if len(k.Bindings) == 0 {
		return nil, false
	}
	if keys, ok := k.Bindings[action]; ok {
		return keys, true
	}
	if keys, ok := k.Bindings[strings.ToLower(action)]; ok {
		return keys, true
	}
	return nil, false
}

// AutoscrollConfig tunes the drag autoscroll engine. Distances are in
// terminal cells and rates in cells per second.
type AutoscrollConfig struct {
	TriggerZone int     `yaml:"trigger_zone"`
	MinInterior int     `yaml:"min_interior"`
	MaxSpeed    float64 `yaml:"max_speed"`
	ReboundRate float64 `yaml:"rebound_rate"`
	MinGradient int     `yaml:"min_gradient"`
	FPS         int     `yaml:"fps"`
	// DragThreshold is how far the pointer travels before a press drags.
	DragThreshold int `yaml:"drag_threshold"`
}

// UISettings stores user-facing display preferences.
type UISettings struct {
	ShowKeymapHints bool `yaml:"show_keymap_hints"`
	ShowDebug       bool `yaml:"show_debug"`
}

// CardConfig describes one card of a configured board.
type CardConfig struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Labels   []string `yaml:"labels,omitempty"`
	Assignee string   `yaml:"assignee,omitempty"`
}

// ColumnConfig describes one column of a configured board.
type ColumnConfig struct {
	Title string       `yaml:"title"`
	Cards []CardConfig `yaml:"cards"`
}

// Config holds the application configuration
type Config struct {
	Paths      *Paths           `yaml:"-"`
	Autoscroll AutoscrollConfig `yaml:"autoscroll"`
	UI         UISettings       `yaml:"ui"`
	KeyMap     KeyMapConfig     `yaml:"keymap,omitempty"`
	// Board replaces the built-in demo board when non-empty.
	Board []ColumnConfig `yaml:"board,omitempty"`
}

// DefaultAutoscroll returns engine tuning scaled for terminal cells.
func DefaultAutoscroll() AutoscrollConfig {
	return AutoscrollConfig{
		TriggerZone:   4,
		MinInterior:   4,
		MaxSpeed:      40,
		ReboundRate:   1,
		MinGradient:   1,
		FPS:           60,
		DragThreshold: 1,
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return defaultConfigAt(paths), nil
}

func defaultConfigAt(paths *Paths) *Config {
	return &Config{
		Paths:      paths,
		Autoscroll: DefaultAutoscroll(),
		UI:         UISettings{ShowKeymapHints: true},
		KeyMap:     KeyMapConfig{},
	}
}

// Load loads config overrides from ~/.dragscroll/config.yaml if present.
func Load() (*Config, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return nil, err
	}
	return LoadPaths(paths)
}

// LoadFile loads config overrides from path. Application files other than
// the config live next to it.
func LoadFile(path string) (*Config, error) {
	expanded, err := validation.ExpandHome(path)
	if err != nil {
		return nil, fmt.Errorf("expand %s: %w", path, err)
	}
	expanded = filepath.Clean(expanded)
	paths := PathsAt(filepath.Dir(expanded))
	paths.ConfigPath = expanded
	return LoadPaths(paths)
}

// LoadPaths loads the config file named by paths. A missing file yields the
// defaults.
func LoadPaths(paths *Paths) (*Config, error) {
	cfg := defaultConfigAt(paths)

	data, err := os.ReadFile(paths.ConfigPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := cfg.apply(data); err != nil {
		return nil, fmt.Errorf("parse %s: %w", paths.ConfigPath, err)
	}
	return cfg, nil
}

// apply overlays YAML data on c. Keys absent from data keep their current
// values.
func (c *Config) apply(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return err
	}
	c.Validate()
	return validateBoard(c.Board)
}

// Validate clamps out-of-range values back to usable ones and reports
// which fields were changed.
func (c *Config) Validate() []string {
	var fixed []string
	def := DefaultAutoscroll()
	a := &c.Autoscroll

	if a.TriggerZone < 0 {
		a.TriggerZone = def.TriggerZone
		fixed = append(fixed, "autoscroll.trigger_zone")
	}
	if a.MinInterior < 0 {
		a.MinInterior = def.MinInterior
		fixed = append(fixed, "autoscroll.min_interior")
	}
	if a.MaxSpeed < 0 {
		a.MaxSpeed = def.MaxSpeed
		fixed = append(fixed, "autoscroll.max_speed")
	}
	if a.ReboundRate <= 0 {
		a.ReboundRate = def.ReboundRate
		fixed = append(fixed, "autoscroll.rebound_rate")
	}
	if a.MinGradient < 1 {
		a.MinGradient = def.MinGradient
		fixed = append(fixed, "autoscroll.min_gradient")
	}
	if a.FPS < 1 || a.FPS > 240 {
		a.FPS = def.FPS
		fixed = append(fixed, "autoscroll.fps")
	}
	if a.DragThreshold < 1 {
		a.DragThreshold = def.DragThreshold
		fixed = append(fixed, "autoscroll.drag_threshold")
	}
	return fixed
}

func validateBoard(columns []ColumnConfig) error {
	seen := make(map[string]struct{})
	for i := range columns {
		col := &columns[i]
		col.Title = validation.SanitizeInput(col.Title)
		if err := validation.ValidateColumnTitle(col.Title); err != nil {
			return fmt.Errorf("board column %d: %w", i+1, err)
		}
		for j := range col.Cards {
			card := &col.Cards[j]
			card.ID = strings.TrimSpace(card.ID)
			if err := validation.ValidateCardID(card.ID); err != nil {
				return fmt.Errorf("board column %q card %d: %w", col.Title, j+1, err)
			}
			if _, dup := seen[card.ID]; dup {
				return fmt.Errorf("board: duplicate card id %q", card.ID)
			}
			seen[card.ID] = struct{}{}
			card.Title = validation.SanitizeInput(card.Title)
			if card.Title == "" {
				card.Title = card.ID
			}
		}
	}
	return nil
}

// SaveUISettings persists UI settings to the config file, keeping the other
// keys the user wrote.
func (c *Config) SaveUISettings() error {
	if c == nil || c.Paths == nil {
		return nil
	}
	return saveUISettings(c.Paths.ConfigPath, c.UI)
}

func saveUISettings(path string, settings UISettings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	// A file that no longer parses is left alone; rewriting it with only
	// the ui key would drop the rest of the user's settings.
	payload := map[string]any{}
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(bytes.TrimSpace(existing)) > 0 {
			if err := yaml.Unmarshal(existing, &payload); err != nil {
				return fmt.Errorf("parse %s: %w", path, err)
			}
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("read config: %w", err)
	}
	if payload == nil {
		payload = map[string]any{}
	}

	payload["ui"] = settings

	data, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
