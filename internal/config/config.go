package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the top-level mercury.yaml configuration.
type Config struct {
	API    APIConfig    `yaml:"api"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
}

// APIConfig controls the Mercury API connection.
type APIConfig struct {
	BaseURL        string `yaml:"base_url" validate:"required,url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"min=1"`
	PageSize       int    `yaml:"page_size" validate:"min=1,max=500"`
}

// ExportConfig controls CSV output defaults.
type ExportConfig struct {
	DefaultFilename string `yaml:"default_filename" validate:"required"`
}

// LogConfig controls the log file and verbosity.
type LogConfig struct {
	File  string `yaml:"file" validate:"required"`
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

var validate = validator.New()

// Load reads a mercury.yaml file from disk and validates it.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault reads mercury.yaml, falling back to defaults when the file
// does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the production Mercury endpoint and sane
// client defaults.
func Default() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://api.mercury.com/api/v1",
			TimeoutSeconds: 30,
			PageSize:       500,
		},
		Export: ExportConfig{
			DefaultFilename: "transactions.csv",
		},
		Log: LogConfig{
			File:  "mercury_api.log",
			Level: "info",
		},
	}
}
