package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Load reads configuration from path, choosing the format by file
// extension (.toml, .yaml, .yml), and applies environment overrides.
// A missing file yields the default configuration, not an error.
func Load(path string) (Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)
	assignGroupIDs(&cfg)
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing YAML config %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing TOML config %s: %w", path, err)
		}
	}
	return cfg, nil
}

// envPrefix is the prefix for environment variable overrides.
const envPrefix = "KEYLIGHT_"

// applyEnv overlays environment variable overrides on cfg.
// Recognized: KEYLIGHT_ENABLED, KEYLIGHT_AUTO_KEYWORD,
// KEYLIGHT_SELECTION_CASE_SENSITIVE, KEYLIGHT_HOTKEY.
func applyEnv(cfg *Config) {
	if v, ok := envBool("ENABLED"); ok {
		cfg.Enabled = v
	}
	if v, ok := envBool("AUTO_KEYWORD"); ok {
		cfg.AutoKeyword = v
	}
	if v, ok := envBool("SELECTION_CASE_SENSITIVE"); ok {
		cfg.SelectionCaseSensitive = v
	}
	if v := os.Getenv(envPrefix + "HOTKEY"); v != "" {
		cfg.Hotkey = v
	}
}

func envBool(name string) (bool, bool) {
	v := os.Getenv(envPrefix + name)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// assignGroupIDs gives a stable ID to any group the file declared
// without one, so hand-written configs stay valid.
func assignGroupIDs(cfg *Config) {
	for i := range cfg.Groups {
		if cfg.Groups[i].ID == "" {
			cfg.Groups[i].ID = uuid.NewString()
		}
	}
}

// Save writes the configuration to path in the format chosen by the
// file extension.
func Save(path string, cfg Config) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(cfg)
	default:
		data, err = toml.Marshal(cfg)
	}
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}
