package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	World      WorldConfig      `toml:"world"`
	Simulation SimulationConfig `toml:"simulation"`
	Spawn      SpawnConfig      `toml:"spawn"`
	Loot       LootConfig       `toml:"loot"`
	Focus      FocusConfig      `toml:"focus"`
	Movement   MovementConfig   `toml:"movement"`
	Data       DataConfig       `toml:"data"`
	Logging    LoggingConfig    `toml:"logging"`
}

type WorldConfig struct {
	Width    int     `toml:"width"`     // in cells
	Height   int     `toml:"height"`    // in cells
	CellSize float64 `toml:"cell_size"` // pixels per cell
	Seed     int64   `toml:"seed"`      // 0 = seed from clock
	Scatter  int     `toml:"scatter"`   // random objects placed at startup
}

// PixelWidth returns the world width in pixels.
func (w WorldConfig) PixelWidth() float64 { return float64(w.Width) * w.CellSize }

// PixelHeight returns the world height in pixels.
func (w WorldConfig) PixelHeight() float64 { return float64(w.Height) * w.CellSize }

type SimulationConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
	MaxTicks int           `toml:"max_ticks"` // 0 = run until signalled
}

type SpawnConfig struct {
	MaxAttempts     int `toml:"max_attempts"`
	MaxCellDistance int `toml:"max_cell_distance"`
}

type LootConfig struct {
	SpreadRadius float64 `toml:"spread_radius"` // half-width of the drop square, pixels
}

type FocusConfig struct {
	Range       float64 `toml:"range"`        // pixels from the holder's edge
	ConeDegrees float64 `toml:"cone_degrees"` // full cone angle ahead of the holder
}

type MovementConfig struct {
	DefaultSpeed float64 `toml:"default_speed"` // pixels per second
}

type DataConfig struct {
	TypeList   string `toml:"type_list"`
	LootList   string `toml:"loot_list"`
	ScriptsDir string `toml:"scripts_dir"`
}

type LoggingConfig struct {
	Level   string `toml:"level"`
	Format  string `toml:"format"`  // "json" or "console"
	Verbose bool   `toml:"verbose"` // emit verbose-debug lines
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world size must be positive, got %dx%d", c.World.Width, c.World.Height)
	case c.World.CellSize <= 0:
		return fmt.Errorf("cell_size must be positive, got %v", c.World.CellSize)
	case c.Simulation.TickRate <= 0:
		return fmt.Errorf("tick_rate must be positive, got %s", c.Simulation.TickRate)
	case c.Spawn.MaxAttempts <= 0:
		return fmt.Errorf("spawn max_attempts must be positive, got %d", c.Spawn.MaxAttempts)
	case c.Loot.SpreadRadius < 0:
		return fmt.Errorf("loot spread_radius must not be negative, got %v", c.Loot.SpreadRadius)
	}
	return nil
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		World: WorldConfig{
			Width:    50,
			Height:   50,
			CellSize: 32,
			Scatter:  40,
		},
		Simulation: SimulationConfig{
			TickRate: 50 * time.Millisecond,
		},
		Spawn: SpawnConfig{
			MaxAttempts:     1000,
			MaxCellDistance: 10,
		},
		Loot: LootConfig{
			SpreadRadius: 16,
		},
		Focus: FocusConfig{
			Range:       48,
			ConeDegrees: 120,
		},
		Movement: MovementConfig{
			DefaultSpeed: 100,
		},
		Data: DataConfig{
			TypeList:   "data/yaml/type_list.yaml",
			LootList:   "data/yaml/loot_list.yaml",
			ScriptsDir: "scripts",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
