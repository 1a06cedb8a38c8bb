package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"artboard/internal/domain"
	"artboard/internal/eventbus"
)

// ErrNotFound is returned by LoadFromPath when the file does not exist
var ErrNotFound = errors.New("config file not found")

// Config represents the application configuration
type Config struct {
	Version  int             `toml:"version"`
	Board    BoardSettings   `toml:"board"`
	Gestures GestureSettings `toml:"gestures"`
	Snap     SnapSettings    `toml:"snap"`
	Scroll   ScrollSettings  `toml:"scroll"`
	Keys     KeySettings     `toml:"keys"`
}

// BoardSettings describes the artboard and its demo element grid
type BoardSettings struct {
	View    domain.ViewMode `toml:"view"`
	Zoom    float64         `toml:"zoom"`
	Columns int             `toml:"columns"`
	Rows    int             `toml:"rows"`
	Spacing int             `toml:"spacing"` // px between element origins
}

// GestureSettings configures which gestures are enabled and how they step
type GestureSettings struct {
	Draggable        bool    `toml:"draggable"`
	Resizable        bool    `toml:"resizable"`
	Rotatable        bool    `toml:"rotatable"`
	ThrottleDrag     float64 `toml:"throttle_drag"`
	ThrottleResize   float64 `toml:"throttle_resize"`
	ThrottleRotate   float64 `toml:"throttle_rotate"`
	ShiftThrottle    float64 `toml:"shift_throttle_rotate"`
	RotationAtCorner bool    `toml:"rotation_at_corner"`
}

// SnapSettings configures snapping and rulers
type SnapSettings struct {
	Snappable       bool    `toml:"snappable"`
	SnapCenter      bool    `toml:"snap_center"`
	ShowRulers      bool    `toml:"show_rulers"`
	GuidelineOffset float64 `toml:"guideline_offset"`
}

// ScrollSettings configures auto-scroll while dragging near the edge
type ScrollSettings struct {
	Scrollable bool    `toml:"scrollable"`
	Threshold  float64 `toml:"threshold"`
}

// KeySettings names the keys that toggle each modifier in the terminal
type KeySettings struct {
	Constrain string `toml:"constrain"`
	Multi     string `toml:"multi"`
	Toggle    string `toml:"toggle"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the config file location under the user config dir
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "artboard", "config.toml")
}

// NewConfigService creates a config service for the default path
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service with event bus support.
// An empty path selects the default location.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration, falling back to defaults when the file is missing
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, ErrNotFound) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Board.Zoom <= 0 {
		return fmt.Errorf("board.zoom must be positive, got %v", c.Board.Zoom)
	}
	if !c.Board.View.Valid() {
		return fmt.Errorf("board.view %q is not one of desktop, tablet, mobile", c.Board.View)
	}
	if c.Board.Columns < 0 || c.Board.Rows < 0 || c.Board.Spacing < 0 {
		return errors.New("board grid dimensions must not be negative")
	}
	for name, v := range map[string]float64{
		"throttle_drag":         c.Gestures.ThrottleDrag,
		"throttle_resize":       c.Gestures.ThrottleResize,
		"throttle_rotate":       c.Gestures.ThrottleRotate,
		"shift_throttle_rotate": c.Gestures.ShiftThrottle,
	} {
		if v < 0 {
			return fmt.Errorf("gestures.%s must not be negative, got %v", name, v)
		}
	}
	if c.Scroll.Threshold < 0 {
		return fmt.Errorf("scroll.threshold must not be negative, got %v", c.Scroll.Threshold)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Board: BoardSettings{
			View:    domain.ViewDesktop,
			Zoom:    1,
			Columns: 4,
			Rows:    5,
			Spacing: 150,
		},
		Gestures: GestureSettings{
			Draggable:     true,
			Resizable:     true,
			Rotatable:     true,
			ShiftThrottle: 30,
		},
		Snap: SnapSettings{
			Snappable:       true,
			SnapCenter:      true,
			GuidelineOffset: 20,
		},
		Scroll: ScrollSettings{
			Scrollable: true,
			Threshold:  1,
		},
		Keys: KeySettings{
			Constrain: "S",
			Multi:     "C",
			Toggle:    "R",
		},
	}
}
