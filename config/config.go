// Package config loads runtime settings for the duel commands. Values are
// layered: defaults, then an optional YAML file, then a .env file, then the
// process environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/milk9111/duel/ecs/component"
	"github.com/milk9111/duel/logger"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "DUEL_"

// DotenvFile is read from the working directory when present.
const DotenvFile = ".env"

var ErrInvalidConfig = errors.New("config: invalid")

type Log struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
}

type Config struct {
	TickRate     int     `yaml:"tick_rate" env:"TICK_RATE"`
	FacingPolicy string  `yaml:"facing_policy" env:"FACING_POLICY"`
	PrefabDir    string  `yaml:"prefab_dir" env:"PREFAB_DIR"`
	HotReload    bool    `yaml:"hot_reload" env:"HOT_RELOAD"`
	Log          Log     `yaml:"log" envPrefix:"LOG_"`
	Bot1Script   string  `yaml:"bot1" env:"BOT1"`
	Bot2Script   string  `yaml:"bot2" env:"BOT2"`
	BotThink     float64 `yaml:"bot_think" env:"BOT_THINK"`
	Rounds       int     `yaml:"rounds" env:"ROUNDS"`
}

func Default() Config {
	return Config{
		TickRate:     60,
		FacingPolicy: "moving",
		PrefabDir:    "prefabs",
		Log:          Log{Level: "info", Format: "console"},
		BotThink:     0.1,
		Rounds:       1,
	}
}

// Load builds a Config. path names an optional YAML file; an empty path
// skips that layer.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadYAML(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := loadDotenv(DotenvFile); err != nil {
		return Config{}, err
	}
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseEnv overlays DUEL_* environment variables onto target. Unset
// variables leave the current value alone.
func ParseEnv(target *Config) error {
	if err := env.ParseWithOptions(target, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("config: parse env: %w", err)
	}
	return nil
}

func loadYAML(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return nil
}

// loadDotenv copies variables from file into the environment without
// overriding ones already set. A missing file is not an error.
func loadDotenv(file string) error {
	if err := godotenv.Load(file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", file, err)
	}
	return nil
}

func (c Config) Validate() error {
	if c.TickRate <= 0 || c.TickRate > 1000 {
		return fmt.Errorf("%w: tick_rate %d out of range", ErrInvalidConfig, c.TickRate)
	}
	if _, ok := component.ParseFacingPolicy(c.FacingPolicy); !ok {
		return fmt.Errorf("%w: unknown facing_policy %q", ErrInvalidConfig, c.FacingPolicy)
	}
	if c.BotThink < 0 {
		return fmt.Errorf("%w: bot_think must not be negative", ErrInvalidConfig)
	}
	if c.Rounds < 0 {
		return fmt.Errorf("%w: rounds must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Policy returns the parsed facing policy. Call after Validate.
func (c Config) Policy() component.FacingPolicy {
	p, _ := component.ParseFacingPolicy(c.FacingPolicy)
	return p
}

// TickSeconds is the fixed simulation step.
func (c Config) TickSeconds() float64 {
	return 1 / float64(c.TickRate)
}

func (c Config) Logger() logger.Config {
	return logger.Config{Level: c.Log.Level, Format: c.Log.Format}
}
