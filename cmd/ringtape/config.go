package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/mgomes/ringtape/bf"
	"github.com/mgomes/ringtape/logs"
)

const configFileName = ".ringtape.toml"

// fileConfig represents a .ringtape.toml file.
type fileConfig struct {
	TapeSize  int        `toml:"tape_size"`
	StepQuota int        `toml:"step_quota"`
	Log       logConfig  `toml:"log"`
	REPL      replConfig `toml:"repl"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-"`
}

type logConfig struct {
	Level   string `toml:"level"`
	File    string `toml:"file"`
	Journal bool   `toml:"journal"`
}

type replConfig struct {
	Plain  bool   `toml:"plain"`
	Prompt string `toml:"prompt"`
}

func defaultConfig() fileConfig {
	return fileConfig{
		TapeSize: bf.DefaultTapeSize,
		REPL:     replConfig{Prompt: ">>> "},
	}
}

// loadConfig parses the TOML file at path on top of the defaults. Unknown
// keys are rejected so typos do not silently fall back to defaults.
func loadConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := defaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return nil, fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	cfg.Path, err = filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// findAndLoadConfig walks up from startDir looking for .ringtape.toml.
// Returns nil if no config file is found.
func findAndLoadConfig(startDir string) (*fileConfig, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, configFileName)
		if _, err := os.Stat(path); err == nil {
			return loadConfig(path)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func (c *fileConfig) validate() error {
	if c.TapeSize < 1 || c.TapeSize > bf.MaxTapeSize {
		return fmt.Errorf("tape_size must be between 1 and %d, got %d", bf.MaxTapeSize, c.TapeSize)
	}
	if c.StepQuota < 0 {
		return fmt.Errorf("step_quota cannot be negative, got %d", c.StepQuota)
	}
	if _, err := logs.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// resolveConfig loads the config file named by --config, or the nearest
// .ringtape.toml, and applies command-line overrides on top.
func resolveConfig(opts options) (fileConfig, error) {
	var (
		loaded *fileConfig
		err    error
	)
	if opts.configPath != "" {
		loaded, err = loadConfig(opts.configPath)
	} else {
		loaded, err = findAndLoadConfig(".")
	}
	if err != nil {
		return fileConfig{}, newUsageError("config: %v", err)
	}

	cfg := defaultConfig()
	if loaded != nil {
		cfg = *loaded
	}
	if opts.set["stack"] {
		cfg.TapeSize = opts.stackSize
	}
	if opts.set["plain"] {
		cfg.REPL.Plain = opts.plain
	}
	if opts.set["log-level"] {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.validate(); err != nil {
		return fileConfig{}, newUsageError("%v", err)
	}
	return cfg, nil
}
