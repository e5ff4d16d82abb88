// Package config loads the command-line tool's settings from a YAML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/takoeight0821/aviator/parser"
	"gopkg.in/yaml.v3"
)

// Config holds settings for the aviator command. Zero values mean
// "use the default".
type Config struct {
	Profile   string   `yaml:"profile"`
	Format    string   `yaml:"format"`
	Functions []string `yaml:"functions"`
	History   string   `yaml:"history"`
}

var Formats = []string{"sexpr", "json", "yaml"}

// Default returns the settings used when no file exists.
func Default() Config {
	return Config{
		Profile: parser.Full.String(),
		Format:  "sexpr",
		History: filepath.Join(xdg.DataHome, "aviator", ".aviator_history"),
	}
}

// Path returns the config file location under the XDG config home.
func Path() (string, error) {
	return xdg.ConfigFile(filepath.Join("aviator", "config.yaml"))
}

// Load reads the file at path on top of Default. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg, err := FromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// FromFile loads configuration from a file, checking the extension.
// Supported extensions: .yaml, .yml
func FromFile(path string) (Config, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return Config{}, fmt.Errorf("unsupported config file extension: %s", ext)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	return FromYAML(data)
}

// FromYAML parses YAML data over the defaults and validates it.
func FromYAML(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if _, err := parser.ParseProfile(c.Profile); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for _, f := range Formats {
		if c.Format == f {
			return nil
		}
	}
	return fmt.Errorf("config: unknown format: %s", c.Format)
}

// ParserProfile returns the validated profile.
func (c Config) ParserProfile() parser.Profile {
	profile, _ := parser.ParseProfile(c.Profile)
	return profile
}
