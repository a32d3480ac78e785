package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps schema violations in a config file.
var ErrInvalid = errors.New("invalid config")

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "schema://focusflow/config.json"

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

// Config holds user preferences. Timer lengths are deliberately absent: the
// timer always starts from its defaults.
type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Sound   SoundConfig   `yaml:"sound"`
	History HistoryConfig `yaml:"history"`
	Log     LogConfig     `yaml:"log"`
}

type UIConfig struct {
	// Variant is the render style: classic, focusflow or gradient.
	Variant string `yaml:"variant"`
	// Splash shows the animated intro before the timer (focusflow only).
	Splash bool `yaml:"splash"`
}

type SoundConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	File    string  `yaml:"file"`
	// Bell falls back to the terminal bell when audio is unavailable.
	Bell bool `yaml:"bell"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			Variant: "focusflow",
			Splash:  true,
		},
		Sound: SoundConfig{
			Enabled: true,
			Bell:    true,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path on top of the defaults. A missing file
// yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := Validate(data); err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Validate checks raw YAML against the embedded JSON schema.
func Validate(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if doc == nil {
		return nil
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	sch, err := schema()
	if err != nil {
		return err
	}
	if err := sch.Validate(parsed); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := ensureDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultPath resolves the config file path in priority order:
// 1. FOCUSFLOW_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/focusflow/config.yaml
// 3. ~/.config/focusflow/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("FOCUSFLOW_CONFIG"); p != "" {
		return p, nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "focusflow", "config.yaml"), nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
