package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pocketledger-dev/pocketledger/internal/model"
)

// FileName is the default config file name.
const FileName = "pocketledger.yaml"

// Config represents the top-level pocketledger.yaml configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store"`
	Import ImportConfig `yaml:"import"`
	Remote RemoteConfig `yaml:"remote"`
	Sync   SyncConfig   `yaml:"sync"`
}

// StoreConfig locates the local transaction store.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ImportConfig controls statement import behavior.
type ImportConfig struct {
	// DefaultFormat is used when no bank signature matches the file headers.
	DefaultFormat string `yaml:"default_format"`
}

// RemoteConfig identifies the remote system of record.
type RemoteConfig struct {
	BaseURL        string `yaml:"base_url"`
	Token          string `yaml:"token,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SyncConfig controls the bulk push.
type SyncConfig struct {
	// BatchSize caps items per bulk-create request. The remote accepts
	// at most 500.
	BatchSize int `yaml:"batch_size"`
}

// Timeout returns the remote request timeout.
func (r RemoteConfig) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

// DefaultBankFormat returns the configured fallback format.
func (i ImportConfig) DefaultBankFormat() model.BankFormat {
	if i.DefaultFormat == "" {
		return model.FormatNedbank
	}
	return model.BankFormat(i.DefaultFormat)
}

// Load reads a pocketledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
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

// Default returns a Config with sensible defaults for a new setup.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Path: "pocketledger.db",
		},
		Import: ImportConfig{
			DefaultFormat: string(model.FormatNedbank),
		},
		Remote: RemoteConfig{
			BaseURL:        "http://localhost:8000/api",
			TimeoutSeconds: 30,
		},
		Sync: SyncConfig{
			BatchSize: 500,
		},
	}
}
