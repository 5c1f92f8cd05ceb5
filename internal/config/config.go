// Package config loads sbommerge settings from a YAML or TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/ochairo/sbommerge/internal/domain/services"
)

// Config holds the merge defaults that command-line flags may override
type Config struct {
	// Format forces the output format ("json" or "yaml"); empty selects by output extension
	Format     string `yaml:"format" toml:"format"`
	Indent     int    `yaml:"indent" toml:"indent"`
	Provenance string `yaml:"provenance" toml:"provenance"`
	LogLevel   string `yaml:"log_level" toml:"log_level"`
	Checksum   bool   `yaml:"checksum" toml:"checksum"`
	SigningKey string `yaml:"signing_key" toml:"signing_key"`
}

const maxIndent = 8

// Default returns the built-in settings
func Default() Config {
	return Config{
		Indent:     2,
		Provenance: services.DefaultProvenance,
		LogLevel:   "info",
	}
}

// Load overlays the file at path on top of Default. Files ending in .toml are
// read as TOML, everything else as YAML.
func Load(path string) (Config, error) {
	cfg := Default()

	var err error
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = loadTOML(path, &cfg)
	} else {
		err = loadYAML(path, &cfg)
	}
	if err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects unknown formats, log levels and indents
func (c Config) Validate() error {
	switch c.Format {
	case "", "json", "yaml":
	default:
		return fmt.Errorf("unsupported format %q (expected json or yaml)", c.Format)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported log_level %q (expected debug, info, warn or error)", c.LogLevel)
	}

	if c.Indent < 0 || c.Indent > maxIndent {
		return fmt.Errorf("indent must be between 0 and %d, got %d", maxIndent, c.Indent)
	}
	if strings.TrimSpace(c.Provenance) == "" {
		return fmt.Errorf("provenance cannot be empty")
	}
	return nil
}

// IndentString renders Indent as the JSON encoder prefix
func (c Config) IndentString() string {
	return strings.Repeat(" ", c.Indent)
}

// loadYAML decodes over cfg so absent keys keep their defaults.
// Unknown keys are rejected, as they are for TOML.
func loadYAML(path string, cfg *Config) error {
	//nolint:gosec // G304: config path is user-provided
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.normalize()
	return nil
}

func loadTOML(path string, cfg *Config) error {
	var raw Config
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("format") {
		cfg.Format = raw.Format
	}
	if meta.IsDefined("indent") {
		cfg.Indent = raw.Indent
	}
	if meta.IsDefined("provenance") {
		cfg.Provenance = raw.Provenance
	}
	if meta.IsDefined("log_level") {
		cfg.LogLevel = raw.LogLevel
	}
	if meta.IsDefined("checksum") {
		cfg.Checksum = raw.Checksum
	}
	if meta.IsDefined("signing_key") {
		cfg.SigningKey = raw.SigningKey
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config %s: unknown key %q", path, undecoded[0].String())
	}

	cfg.normalize()
	return nil
}

func (c *Config) normalize() {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Provenance = strings.TrimSpace(c.Provenance)
	c.SigningKey = strings.TrimSpace(c.SigningKey)
}
