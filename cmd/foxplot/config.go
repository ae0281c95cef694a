package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/foxplot/foxplot/decode"
	"github.com/foxplot/foxplot/format"
)

// fileConfig is the content of config.yaml. Command line flags take
// precedence over every field.
type fileConfig struct {
	LogLevel    string `yaml:"log_level"`
	LogJSON     bool   `yaml:"log_json"`
	Time        string `yaml:"time"`
	LeftUnit    string `yaml:"left_unit"`
	RightUnit   string `yaml:"right_unit"`
	NoOpen      bool   `yaml:"no_open"`
	Compression string `yaml:"compression"`
	ChunkSize   int    `yaml:"chunk_size"`
}

func defaultFileConfig() fileConfig {
	return fileConfig{
		LogLevel:    "warn",
		Compression: format.CompressionZstd.String(),
		ChunkSize:   decode.DefaultChunkSize,
	}
}

// defaultConfigPath returns $XDG_CONFIG_HOME/foxplot/config.yaml, or "" when
// no user configuration directory is known.
func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "foxplot", "config.yaml")
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the path was given explicitly.
func loadConfig(path string, explicit bool) (fileConfig, error) {
	cfg := defaultFileConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
