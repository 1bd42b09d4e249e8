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

// Config captures everything marquee needs at runtime.
type Config struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
	MaxConcurrency int
	LogFile        string
	LogLevel       string
	ListenAddr     string
}

// APIKeyEnv overrides api_key from the config file when set.
const APIKeyEnv = "OMDB_API_KEY"

const (
	defaultConfigPath     = "~/.config/marquee/config.toml"
	defaultLogFile        = "~/.local/state/marquee/marquee.log"
	defaultBaseURL        = "https://www.omdbapi.com/"
	defaultRequestTimeout = 10 * time.Second
	defaultMaxConcurrency = 10
	defaultLogLevel       = "info"
	defaultListenAddr     = "127.0.0.1:8080"
)

// Default returns a Config populated with defaults and no API key.
func Default() Config {
	return Config{
		BaseURL:        defaultBaseURL,
		RequestTimeout: defaultRequestTimeout,
		MaxConcurrency: defaultMaxConcurrency,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
		ListenAddr:     defaultListenAddr,
	}
}

// Load locates and parses the marquee config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
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
		APIKey         string `toml:"api_key"`
		BaseURL        string `toml:"base_url"`
		RequestTimeout string `toml:"request_timeout"`
		MaxConcurrency int    `toml:"max_concurrency"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
		ListenAddr     string `toml:"listen_addr"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.APIKey = strings.TrimSpace(raw.APIKey)

	if v := strings.TrimSpace(raw.BaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse request_timeout %q: %w", v, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("request_timeout %q must not be negative", v)
		}
		cfg.RequestTimeout = d
	}
	if raw.MaxConcurrency > 0 {
		cfg.MaxConcurrency = raw.MaxConcurrency
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.ListenAddr); v != "" {
		cfg.ListenAddr = v
	}

	cfg.applyEnv()
	return cfg, nil
}

// Validate reports configuration that makes the provider unusable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("api key missing: set api_key in %s or %s", defaultConfigPath, APIKeyEnv)
	}
	return nil
}

func (c *Config) applyEnv() {
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv)); key != "" {
		c.APIKey = key
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath trims path, expands a leading ~ and makes it absolute.
func ExpandPath(path string) (string, error) {
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
