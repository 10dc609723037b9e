// Package config loads warp's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings warp needs to reach the node and run the UI.
type Config struct {
	Network      string
	LightningDir string
	CLIPath      string
	PollInterval time.Duration
	LogFile      string
}

const (
	defaultConfigPath  = "~/.config/warp/config.toml"
	defaultNetwork     = "bitcoin"
	defaultLightning   = "~/.lightning"
	defaultCLIPath     = "lightning-cli"
	defaultLogFile     = "~/.local/state/warp/warp.log"
	defaultPollSeconds = 10
)

// Load locates and parses the config file, falling back to defaults when it
// is missing. An unreadable or malformed file is an error; an absent one is
// not.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Network      string `toml:"network"`
		LightningDir string `toml:"lightning_dir"`
		CLIPath      string `toml:"cli_path"`
		PollSeconds  int    `toml:"poll_seconds"`
		LogFile      string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.Network); v != "" {
		cfg.Network = v
	}
	if v := strings.TrimSpace(raw.LightningDir); v != "" {
		cfg.LightningDir = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.CLIPath); v != "" {
		cfg.CLIPath = v
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}

	return cfg, nil
}

func defaults() Config {
	return Config{
		Network:      defaultNetwork,
		LightningDir: mustExpand(defaultLightning),
		CLIPath:      defaultCLIPath,
		PollInterval: defaultPollSeconds * time.Second,
		LogFile:      mustExpand(defaultLogFile),
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
