// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Storage    StorageConfig    `toml:"storage"`
	Classifier ClassifierConfig `toml:"classifier"`
	Camera     CameraConfig     `toml:"camera"`
	Serve      ServeConfig      `toml:"serve"`
}

// StorageConfig selects the persistence engine.
type StorageConfig struct {
	Engine *string `toml:"engine"`
	Path   *string `toml:"path"`
}

// ClassifierConfig maps image classifier settings.
type ClassifierConfig struct {
	Endpoint      *string  `toml:"endpoint"`
	Timeout       *string  `toml:"timeout"`
	MinConfidence *float64 `toml:"min-confidence"`
	Label         *string  `toml:"label"`
}

// CameraConfig maps the frame source.
type CameraConfig struct {
	Frame *string `toml:"frame"`
}

// ServeConfig maps the HTTP view API settings.
type ServeConfig struct {
	Addr *string `toml:"addr"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.Classifier.Timeout != nil {
		if _, err := time.ParseDuration(*cfg.Classifier.Timeout); err != nil {
			return FileConfig{}, fmt.Errorf("invalid classifier.timeout: %w", err)
		}
	}
	return cfg, nil
}

// ClassifierTimeout returns the parsed classifier timeout, if set.
func (c FileConfig) ClassifierTimeout() *time.Duration {
	if c.Classifier.Timeout == nil {
		return nil
	}
	d, err := time.ParseDuration(*c.Classifier.Timeout)
	if err != nil {
		return nil
	}
	return &d
}
