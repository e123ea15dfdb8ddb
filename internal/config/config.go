package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/worldforge/internal/logging"
	"github.com/aretw0/worldforge/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up when --config is not given.
const DefaultPath = "worldforge.yaml"

// History backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config represents the structure of worldforge.yaml.
type Config struct {
	Precision int           `yaml:"precision" json:"precision"`
	History   HistoryConfig `yaml:"history" json:"history"`
	Redis     RedisConfig   `yaml:"redis" json:"redis"`
	Presets   PresetsConfig `yaml:"presets" json:"presets"`
	Server    ServerConfig  `yaml:"server" json:"server"`
	Metrics   MetricsConfig `yaml:"metrics" json:"metrics"`
	Log       LogConfig     `yaml:"log" json:"log"`
}

type HistoryConfig struct {
	Backend string `yaml:"backend" json:"backend"`
	Path    string `yaml:"path" json:"path"`
	Limit   int    `yaml:"limit" json:"limit"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" json:"addr"`
	Password string `yaml:"password" json:"password"`
	DB       int    `yaml:"db" json:"db"`
	Prefix   string `yaml:"prefix" json:"prefix"`
}

type PresetsConfig struct {
	Dir string `yaml:"dir" json:"dir"`
}

type ServerConfig struct {
	Port string `yaml:"port" json:"port"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

type LogConfig struct {
	Level string `yaml:"level" json:"level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Precision: domain.DefaultPrecision,
		History: HistoryConfig{
			Backend: BackendFile,
			Path:    filepath.Join(".worldforge", "history.json"),
			Limit:   domain.DefaultHistoryLimit,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "worldforge:",
		},
		Presets: PresetsConfig{Dir: filepath.Join(".worldforge", "presets")},
		Server:  ServerConfig{Port: "8080"},
		Metrics: MetricsConfig{Enabled: true},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads a configuration file (YAML or JSON, by extension) over the defaults.
// A missing file yields the defaults unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values that the rest of the program relies on.
func (c Config) Validate() error {
	if err := domain.ValidatePrecision(c.Precision); err != nil {
		return err
	}
	switch c.History.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("unknown history backend %q", c.History.Backend)
	}
	if c.History.Limit <= 0 {
		return fmt.Errorf("history limit must be positive, got %d", c.History.Limit)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}
