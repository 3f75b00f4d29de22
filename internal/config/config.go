package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"questchronicles/internal/engine"
)

// DefaultFile is the config file looked up in the working directory when no
// path is given.
const DefaultFile = "questchronicles.yml"

// Config is the runtime configuration. Values are layered: built-in defaults,
// then the YAML file, then the environment (a .env file is loaded first).
type Config struct {
	DataDir string `yaml:"data_dir" env:"QC_DATA_DIR"`
	SaveDir string `yaml:"save_dir" env:"QC_SAVE_DIR"`

	// Seed fixes the combat rng. Zero means a fresh random seed per run.
	Seed int64 `yaml:"seed" env:"QC_SEED"`

	InventoryCapacity int     `yaml:"inventory_capacity" env:"QC_INVENTORY_CAPACITY"`
	AbilityCooldown   int     `yaml:"ability_cooldown" env:"QC_ABILITY_COOLDOWN"`
	EscapeChance      float64 `yaml:"escape_chance" env:"QC_ESCAPE_CHANCE"`
	CriticalChance    float64 `yaml:"critical_chance" env:"QC_CRITICAL_CHANCE"`
	ClericHeal        int     `yaml:"cleric_heal" env:"QC_CLERIC_HEAL"`

	Verbose bool `yaml:"verbose" env:"QC_VERBOSE"`
}

func Default() Config {
	r := engine.DefaultRules()
	return Config{
		DataDir:           "data",
		SaveDir:           "saves",
		InventoryCapacity: r.InventoryCapacity,
		AbilityCooldown:   r.AbilityCooldown,
		EscapeChance:      r.EscapeChance,
		CriticalChance:    r.CriticalChance,
		ClericHeal:        r.ClericHeal,
	}
}

// Load builds a Config. An explicit path must exist; the default file is
// optional.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	if err := loadFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c Config) Validate() error {
	switch {
	case c.DataDir == "":
		return errors.New("config: data_dir must not be empty")
	case c.SaveDir == "":
		return errors.New("config: save_dir must not be empty")
	case c.InventoryCapacity <= 0:
		return fmt.Errorf("config: inventory_capacity must be positive, got %d", c.InventoryCapacity)
	case c.AbilityCooldown < 0:
		return fmt.Errorf("config: ability_cooldown must not be negative, got %d", c.AbilityCooldown)
	case c.EscapeChance < 0 || c.EscapeChance > 1:
		return fmt.Errorf("config: escape_chance must be within [0,1], got %v", c.EscapeChance)
	case c.CriticalChance < 0 || c.CriticalChance > 1:
		return fmt.Errorf("config: critical_chance must be within [0,1], got %v", c.CriticalChance)
	case c.ClericHeal < 0:
		return fmt.Errorf("config: cleric_heal must not be negative, got %d", c.ClericHeal)
	}
	return nil
}

// Rules converts the tunables to engine rules.
func (c Config) Rules() engine.Rules {
	return engine.Rules{
		InventoryCapacity: c.InventoryCapacity,
		AbilityCooldown:   c.AbilityCooldown,
		EscapeChance:      c.EscapeChance,
		CriticalChance:    c.CriticalChance,
		ClericHeal:        c.ClericHeal,
	}
}
