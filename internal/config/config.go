// Package config resolves grove settings: built-in defaults, then an
// optional YAML file, then GROVE_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds every setting the binaries read
type Config struct {
	// DatabasePath is the SQLite file holding items, share links and the search index
	DatabasePath string `yaml:"database"`
	// LogLevel is one of debug, info, warn, error
	LogLevel string `yaml:"log_level"`
	// LogFile, when set, receives the TUI's logs
	LogFile string `yaml:"log_file"`
	// ObsidianVault is the vault exported notes are written to
	ObsidianVault string `yaml:"obsidian_vault"`
	// ExportFolder is the vault subfolder holding exported notes
	ExportFolder string `yaml:"export_folder"`
	// MetricsAddr, when set, makes grove-mcp serve /metrics on it
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		DatabasePath:  filepath.Join(dataHome(), "grove", "grove.db"),
		LogLevel:      "info",
		ObsidianVault: "~/Documents/grove",
		ExportFolder:  "grove",
	}
}

// Load reads the config file (GROVE_CONFIG or the XDG default) when it
// exists and applies environment overrides
func Load() (Config, error) {
	cfg := Default()

	path := os.Getenv("GROVE_CONFIG")
	explicit := path != ""
	if !explicit {
		path = filepath.Join(configHome(), "grove", "config.yaml")
	}

	if err := cfg.mergeFile(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			err = nil
		}
		if err != nil {
			return cfg, err
		}
	}

	cfg.applyEnv()
	cfg.DatabasePath = ExpandHome(cfg.DatabasePath)
	cfg.ObsidianVault = ExpandHome(cfg.ObsidianVault)
	cfg.LogFile = ExpandHome(cfg.LogFile)
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"GROVE_DB":             &c.DatabasePath,
		"GROVE_LOG_LEVEL":      &c.LogLevel,
		"GROVE_LOG_FILE":       &c.LogFile,
		"GROVE_OBSIDIAN_VAULT": &c.ObsidianVault,
		"GROVE_EXPORT_FOLDER":  &c.ExportFolder,
		"GROVE_METRICS_ADDR":   &c.MetricsAddr,
	}
	for key, field := range overrides {
		if env := os.Getenv(key); env != "" {
			*field = env
		}
	}
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}

// NewLogger builds a text logger at the named level. grove-mcp speaks its
// protocol on stdout, so callers pass stderr.
func NewLogger(level string, w io.Writer) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share")
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}
