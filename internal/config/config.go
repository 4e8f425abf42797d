package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/proteus-audio/proteus/internal/platform"
)

// Logging configures the zap logger.
type Logging struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
	File        string `toml:"file"`
}

// Window configures the initial size of new windows.
type Window struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
}

// Config is the host configuration.
type Config struct {
	DefaultProjectName string  `toml:"default_project_name"`
	RuntimeDir         string  `toml:"runtime_dir"`
	Window             Window  `toml:"window"`
	Logging            Logging `toml:"logging"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DefaultProjectName: "prot",
		RuntimeDir:         platform.RuntimeDir(),
		Window:             Window{Width: 1240, Height: 775},
		Logging:            Logging{Level: "info"},
	}
}

// DefaultConfigPath returns the absolute path of the default configuration file.
func DefaultConfigPath() (string, error) {
	return platform.ExpandHome("~/.config/proteus/config.toml")
}

// LockPath is the single-instance lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.RuntimeDir, "proteus.lock")
}

// SocketPath is the IPC socket of the running instance.
func (c *Config) SocketPath() string {
	return filepath.Join(c.RuntimeDir, "proteus.sock")
}

// Load parses the configuration at path (or the default location when path
// is empty) on top of Default. A missing file is not an error; exists reports
// whether one was read.
func Load(path string) (cfg *Config, resolved string, exists bool, err error) {
	c := Default()

	resolved, exists, err = resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolved)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&c); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := c.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := c.Validate(); err != nil {
		return nil, "", false, err
	}
	return &c, resolved, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		var err error
		path, err = DefaultConfigPath()
		if err != nil {
			return "", false, err
		}
	}

	expanded, err := platform.ExpandHome(path)
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

func (c *Config) normalize() error {
	c.DefaultProjectName = platform.NormalizeProjectName(c.DefaultProjectName)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	var err error
	if c.RuntimeDir, err = platform.ExpandHome(strings.TrimSpace(c.RuntimeDir)); err != nil {
		return fmt.Errorf("runtime_dir: %w", err)
	}
	if c.Logging.File != "" {
		if c.Logging.File, err = platform.ExpandHome(strings.TrimSpace(c.Logging.File)); err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
	}
	return nil
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if c.DefaultProjectName == "" {
		return errors.New("default_project_name must not be empty")
	}
	if strings.ContainsAny(c.DefaultProjectName, `/\`) {
		return fmt.Errorf("default_project_name %q must not contain path separators", c.DefaultProjectName)
	}
	if c.RuntimeDir == "" || !filepath.IsAbs(c.RuntimeDir) {
		return fmt.Errorf("runtime_dir %q must be an absolute path", c.RuntimeDir)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %vx%v must be positive", c.Window.Width, c.Window.Height)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

// Sample returns the default configuration encoded as TOML.
func Sample() ([]byte, error) {
	return toml.Marshal(Default())
}
