// Package config resolves runtime settings for the snake binary.
//
// Precedence, lowest first: Default, a YAML file, SNAKE_* environment
// variables, then flags the caller applies on top.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brensch/snake/rules"
)

// FrameBudget is divided by the field size to get frames per tick, so small
// boards tick faster.
const FrameBudget = 100

type Config struct {
	Size       int           `yaml:"size"`
	FrameDelay time.Duration `yaml:"frame_delay"`
	Seed       int64         `yaml:"seed"` // 0 seeds from the clock
	LogPath    string        `yaml:"log_path"`
	LogLevel   string        `yaml:"log_level"`
	PrettyLogs bool          `yaml:"pretty_logs"`
	AltScreen  bool          `yaml:"alt_screen"`
	Mouse      bool          `yaml:"mouse"`
}

func Default() Config {
	return Config{
		Size:       10,
		FrameDelay: 32 * time.Millisecond,
		LogPath:    "snake.log",
		LogLevel:   "info",
		AltScreen:  true,
		Mouse:      true,
	}
}

// LoadFile overlays the YAML document at path onto base. Keys missing from
// the file keep base's values.
func LoadFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv overlays SNAKE_* variables onto base.
func FromEnv(base Config) Config {
	cfg := base
	cfg.Size = getEnvIntOrDefault("SNAKE_SIZE", cfg.Size)
	cfg.FrameDelay = getEnvDurationOrDefault("SNAKE_FRAME_DELAY", cfg.FrameDelay)
	cfg.Seed = int64(getEnvIntOrDefault("SNAKE_SEED", int(cfg.Seed)))
	cfg.LogPath = getEnvOrDefault("SNAKE_LOG_PATH", cfg.LogPath)
	cfg.LogLevel = getEnvOrDefault("SNAKE_LOG_LEVEL", cfg.LogLevel)
	cfg.PrettyLogs = getEnvBoolOrDefault("SNAKE_PRETTY_LOGS", cfg.PrettyLogs)
	cfg.AltScreen = getEnvBoolOrDefault("SNAKE_ALT_SCREEN", cfg.AltScreen)
	cfg.Mouse = getEnvBoolOrDefault("SNAKE_MOUSE", cfg.Mouse)
	return cfg
}

func (c Config) Validate() error {
	var errs []error
	if c.Size < rules.MinSize {
		errs = append(errs, fmt.Errorf("size %d below minimum %d", c.Size, rules.MinSize))
	}
	if c.FrameDelay <= 0 {
		errs = append(errs, fmt.Errorf("frame delay %s must be positive", c.FrameDelay))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// FramesPerTick is how many frames pass between two snake moves.
func (c Config) FramesPerTick() int {
	if c.Size <= 0 {
		return 1
	}
	return max(1, FrameBudget/c.Size)
}

// TickInterval is the wall-clock time between two snake moves.
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.FramesPerTick()) * c.FrameDelay
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		var i int
		if _, err := fmt.Sscanf(val, "%d", &i); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvBoolOrDefault(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
