package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the full server configuration
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Sim     SimConfig     `toml:"sim"`
	Airdrop AirdropConfig `toml:"airdrop"`
	Storage StorageConfig `toml:"storage"`
}

type ServerConfig struct {
	Addr     string `toml:"addr"`
	LogLevel string `toml:"log_level"`
	DefsFile string `toml:"defs_file"`
}

type SimConfig struct {
	TickRate      int     `toml:"tick_rate"`
	BroadcastRate int     `toml:"broadcast_rate"`
	WorldWidth    float64 `toml:"world_width"`
	WorldHeight   float64 `toml:"world_height"`
	CellSize      float64 `toml:"cell_size"`
	Seed          int64   `toml:"seed"`
}

// AirdropConfig holds the airdrop tuning values
type AirdropConfig struct {
	FallTime    float64  `toml:"fall_time"`
	MaxActive   int      `toml:"max_active"`
	CrushDamage float64  `toml:"crush_damage"`
	Interval    float64  `toml:"interval"` // seconds between scheduled drops, 0 disables
	Types       []string `toml:"types"`
}

type StorageConfig struct {
	AnalyticsDB string `toml:"analytics_db"`
	JournalDir  string `toml:"journal_dir"`
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:     ":8080",
			LogLevel: "info",
		},
		Sim: SimConfig{
			TickRate:      60,
			BroadcastRate: 30,
			WorldWidth:    720,
			WorldHeight:   720,
			CellSize:      DefaultCellSize,
			Seed:          1,
		},
		Airdrop: AirdropConfig{
			FallTime:    8,
			MaxActive:   50,
			CrushDamage: 100,
			Types:       []string{"airdrop_crate_01", "airdrop_crate_02"},
		},
	}
}

// LoadConfig reads a TOML file over the defaults. An empty path returns the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

// Validate reports every out-of-range value at once
func (c *Config) Validate() error {
	var errs []error
	if c.Sim.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("sim.tick_rate must be positive, got %d", c.Sim.TickRate))
	}
	if c.Sim.BroadcastRate <= 0 || c.Sim.BroadcastRate > c.Sim.TickRate {
		errs = append(errs, fmt.Errorf("sim.broadcast_rate must be in (0, tick_rate], got %d", c.Sim.BroadcastRate))
	}
	if c.Sim.WorldWidth <= 0 || c.Sim.WorldHeight <= 0 {
		errs = append(errs, fmt.Errorf("sim world size must be positive, got %gx%g", c.Sim.WorldWidth, c.Sim.WorldHeight))
	}
	if c.Sim.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("sim.cell_size must be positive, got %g", c.Sim.CellSize))
	}
	if c.Airdrop.FallTime <= 0 {
		errs = append(errs, fmt.Errorf("airdrop.fall_time must be positive, got %g", c.Airdrop.FallTime))
	}
	if c.Airdrop.MaxActive < 0 {
		errs = append(errs, fmt.Errorf("airdrop.max_active must not be negative, got %d", c.Airdrop.MaxActive))
	}
	if c.Airdrop.Interval < 0 {
		errs = append(errs, fmt.Errorf("airdrop.interval must not be negative, got %g", c.Airdrop.Interval))
	}
	if c.Airdrop.Interval > 0 && len(c.Airdrop.Types) == 0 {
		errs = append(errs, errors.New("airdrop.types must not be empty when airdrop.interval is set"))
	}
	if _, err := ParseLogLevel(c.Server.LogLevel); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// BroadcastEvery is the number of ticks between two syncs
func (c *Config) BroadcastEvery() int {
	n := c.Sim.TickRate / c.Sim.BroadcastRate
	if n < 1 {
		return 1
	}
	return n
}

// ParseLogLevel maps a level name to its slog level
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}
