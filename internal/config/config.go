package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"gridselect/internal/eventbus"
)

// Selection model kinds
const (
	ModelCell = "cell"
	ModelRow  = "row"
)

// Config represents the application configuration
type Config struct {
	Version   int             `toml:"version"`
	Grid      GridSettings    `toml:"grid"`
	Selection SelectionConfig `toml:"selection"`
	RowMove   RowMoveSettings `toml:"row_move"`
	UI        UISettings      `toml:"ui"`
}

// GridSettings describes the demo grid
type GridSettings struct {
	Rows                int     `toml:"rows"`
	Columns             int     `toml:"columns"`
	MultiSelect         bool    `toml:"multi_select"`
	ColumnWidth         int     `toml:"column_width"`
	UnselectableColumns []int   `toml:"unselectable_columns"`
	UnfocusableColumns  []int   `toml:"unfocusable_columns"`
	UnselectableCells   [][]int `toml:"unselectable_cells"` // [row, cell] pairs
}

// SelectionConfig holds the selection model options
type SelectionConfig struct {
	Model              string `toml:"model"`
	SelectActiveCell   bool   `toml:"select_active_cell"`
	SelectActiveRow    bool   `toml:"select_active_row"`
	DragToSelect       bool   `toml:"drag_to_select"`
	AutoScrollWhenDrag bool   `toml:"auto_scroll_when_drag"`
}

// RowMoveSettings configures the row move handle column
type RowMoveSettings struct {
	Enabled      bool `toml:"enabled"`
	HandleColumn int  `toml:"handle_column"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowCoordinates bool   `toml:"show_coordinates"`
	LogFile         string `toml:"log_file"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service using the user config directory
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	return &configService{
		filePath: filepath.Join(configDir, "gridselect", "config.toml"),
	}
}

// NewConfigServiceWithPath creates a config service bound to one file
func NewConfigServiceWithPath(path string, bus eventbus.EventBus) ConfigService {
	return &configService{bus: bus, filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file, falling back to defaults when it does not exist
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

	// Publish ConfigLoaded event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath, Model: cfg.Selection.Model})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	// Publish ConfigSaved event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
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

// Validate checks the settings the application cannot run without
func (c *Config) Validate() error {
	switch c.Selection.Model {
	case ModelCell, ModelRow:
	default:
		return fmt.Errorf("unknown selection model %q (want %q or %q)", c.Selection.Model, ModelCell, ModelRow)
	}
	if c.Grid.Rows < 1 || c.Grid.Columns < 1 {
		return fmt.Errorf("grid must have at least one row and one column, got %dx%d", c.Grid.Rows, c.Grid.Columns)
	}
	for _, pair := range c.Grid.UnselectableCells {
		if len(pair) != 2 {
			return fmt.Errorf("unselectable cell must be a [row, cell] pair, got %v", pair)
		}
	}
	if c.RowMove.Enabled && (c.RowMove.HandleColumn < 0 || c.RowMove.HandleColumn >= c.Grid.Columns) {
		return fmt.Errorf("row move handle column %d is outside the grid", c.RowMove.HandleColumn)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Grid: GridSettings{
			Rows:        100,
			Columns:     12,
			MultiSelect: true,
			ColumnWidth: 8,
		},
		Selection: SelectionConfig{
			Model:              ModelCell,
			SelectActiveCell:   true,
			SelectActiveRow:    true,
			DragToSelect:       true,
			AutoScrollWhenDrag: true,
		},
		UI: UISettings{
			ShowCoordinates: true,
			LogFile:         "gridselect.log",
		},
	}
}
