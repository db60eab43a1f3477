// Package config handles zbook's YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all zbook configuration.
type Config struct {
	Storage Storage `yaml:"storage"`
	Display Display `yaml:"display"`
}

// Storage selects where and how the book is persisted.
type Storage struct {
	File    string `yaml:"file"`    // blob name inside the data dir
	Encrypt bool   `yaml:"encrypt"` // keep the book in an encrypted vault
}

// Display holds listing settings.
type Display struct {
	ChunkSize      int `yaml:"chunk_size"`
	BirthdayWindow int `yaml:"birthday_window"` // days ahead for upcoming birthdays
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Storage: Storage{
			File: "addressbook.json",
		},
		Display: Display{
			ChunkSize:      10,
			BirthdayWindow: 7,
		},
	}
}

// Path returns the default config file location.
func Path() string {
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "zbook", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".zbook", "config.yaml")
	}
	return filepath.Join(home, ".config", "zbook", "config.yaml")
}

// Load reads the YAML config at path on top of the defaults.
// A missing or empty file returns the defaults. Unknown fields are an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// comment-only files decode to EOF
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyEnv applies environment overrides.
// Supported variables: ZBOOK_FILE, ZBOOK_ENCRYPT, ZBOOK_CHUNK_SIZE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("ZBOOK_FILE"); v != "" {
		c.Storage.File = v
	}
	if v := os.Getenv("ZBOOK_ENCRYPT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: invalid ZBOOK_ENCRYPT %q: %w", v, err)
		}
		c.Storage.Encrypt = b
	}
	if v := os.Getenv("ZBOOK_CHUNK_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: invalid ZBOOK_CHUNK_SIZE %q: %w", v, err)
		}
		c.Display.ChunkSize = n
	}
	return nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	if c.Storage.File == "" {
		return errors.New("config: storage.file cannot be empty")
	}
	if c.Display.ChunkSize <= 0 {
		return fmt.Errorf("config: display.chunk_size must be positive, got %d", c.Display.ChunkSize)
	}
	if c.Display.BirthdayWindow < 0 {
		return fmt.Errorf("config: display.birthday_window must be non-negative, got %d", c.Display.BirthdayWindow)
	}
	return nil
}
