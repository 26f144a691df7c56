package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	EnvVar          = "YLOX_CONFIG"
	DefaultFileName = ".ylox.yml"

	defaultPrompt       = "> "
	defaultHistoryName  = ".ylox_history"
	defaultHistoryLimit = 1000
)

// Config holds the interactive settings of the ylox binary.
type Config struct {
	Prompt       string `yaml:"prompt"`
	HistoryFile  string `yaml:"history_file"`
	HistoryLimit int    `yaml:"history_limit"`
	DumpTokens   bool   `yaml:"dump_tokens"`
	DumpAST      bool   `yaml:"dump_ast"`
}

// Default returns the settings used when no file is found. home may be
// empty, in which case history is kept in memory only.
func Default(home string) *Config {
	cfg := &Config{
		Prompt:       defaultPrompt,
		HistoryLimit: defaultHistoryLimit,
	}
	if home != "" {
		cfg.HistoryFile = filepath.Join(home, defaultHistoryName)
	}
	return cfg
}

// Load resolves and reads the config file. An explicit path (from the
// command line or $YLOX_CONFIG) must exist; the file in the home
// directory is optional.
func Load(explicit string) (*Config, error) {
	home, _ := os.UserHomeDir()

	path := explicit
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path != "" {
		return LoadFile(path, home)
	}

	if home == "" {
		return Default(home), nil
	}
	path = filepath.Join(home, DefaultFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(home), nil
	}
	return LoadFile(path, home)
}

// LoadFile reads one YAML file on top of the defaults.
func LoadFile(path, home string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()

	cfg, err := Decode(file, home)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses YAML from r. Unknown keys are rejected and an empty
// document yields the defaults.
func Decode(r io.Reader, home string) (*Config, error) {
	cfg := Default(home)

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.HistoryFile = expandHome(cfg.HistoryFile, home)
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	return nil
}

func expandHome(path, home string) string {
	if home == "" || len(path) < 2 || path[0] != '~' || path[1] != '/' {
		return path
	}
	return filepath.Join(home, path[2:])
}
