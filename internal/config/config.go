package config

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

type Config struct {
	Home        string `yaml:"home"`
	DataDir     string `yaml:"data_dir"`
	LogDir      string `yaml:"log_dir"`
	LogLevel    string `yaml:"log_level"`
	SyncOnClose bool   `yaml:"sync_on_close"`
	Prompt      string `yaml:"prompt"`
}

func LoadConfig(homeOverride, configOverride string) (*Config, error) {
	paths, err := ResolvePaths(homeOverride, configOverride)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Home:        paths.Home,
		DataDir:     paths.DataDir,
		LogDir:      paths.LogDir,
		LogLevel:    "info",
		SyncOnClose: true,
		Prompt:      "btindex> ",
	}

	if f, err := os.Open(paths.Config); err == nil {
		defer f.Close()
		// An empty file decodes to io.EOF and keeps the defaults
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	} else if !os.IsNotExist(err) || configOverride != "" {
		// A config file named on the command line has to exist
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		return nil, err
	}

	return cfg, nil
}

// IndexPath resolves an index file name against the data directory,
// absolute paths are used as is
func (cfg *Config) IndexPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(cfg.DataDir, name)
}

func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.LogDir, "btindex.log")
}
