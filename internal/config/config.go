// Package config loads service settings from a TOML file and the environment.
package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Host   string `toml:"host"`
	Port   int    `toml:"port"`
	WebDir string `toml:"web_dir"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	// sessions
	SessionTTL string `toml:"session_ttl"`
	// metrics
	MetricsEnabled bool `toml:"metrics_enabled"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	return &Config{
		Host:           "",
		Port:           8080,
		WebDir:         "web",
		LogLevel:       "info",
		LogToStdout:    true,
		SessionTTL:     "24h",
		MetricsEnabled: true,
	}
}

// Load reads the env section of the TOML file at path. A missing file yields
// the defaults. ADDR, WEB_DIR and LOG_LEVEL override file values.
func Load(env, path string) (*Config, error) {
	if _, err := (&Toml{}).Get(env); err != nil {
		return nil, err
	}

	cfg := Default()
	if path != "" {
		fileCfg, err := loadFile(env, path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if fileCfg != nil {
			cfg = merge(cfg, fileCfg)
		}
	}

	if addr := os.Getenv("ADDR"); addr != "" {
		host, port, err := splitAddr(addr)
		if err != nil {
			return nil, fmt.Errorf("ADDR: %w", err)
		}
		cfg.Host, cfg.Port = host, port
	}
	cfg.WebDir = envOr("WEB_DIR", cfg.WebDir)
	cfg.LogLevel = envOr("LOG_LEVEL", cfg.LogLevel)

	if _, err := cfg.SessionTTLDuration(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SessionTTLDuration parses SessionTTL. An empty value disables expiry.
func (c *Config) SessionTTLDuration() (time.Duration, error) {
	if c.SessionTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil {
		return 0, fmt.Errorf("session_ttl: %w", err)
	}
	return d, nil
}

func loadFile(env, path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return t.Get(env)
}

// merge overlays the non-zero fields of file onto base. Booleans always come
// from the file section when one exists.
func merge(base, file *Config) *Config {
	out := *base
	if file.Host != "" {
		out.Host = file.Host
	}
	if file.Port != 0 {
		out.Port = file.Port
	}
	if file.WebDir != "" {
		out.WebDir = file.WebDir
	}
	if file.LogLevel != "" {
		out.LogLevel = file.LogLevel
	}
	if file.LogsPath != "" {
		out.LogsPath = file.LogsPath
	}
	if file.SessionTTL != "" {
		out.SessionTTL = file.SessionTTL
	}
	out.LogToStdout = file.LogToStdout
	out.LogFormatJSON = file.LogFormatJSON
	out.MetricsEnabled = file.MetricsEnabled
	return &out
}

func splitAddr(addr string) (string, int, error) {
	host, p, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(p)
	if err != nil {
		return "", 0, fmt.Errorf("bad port in %q", addr)
	}
	return host, port, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
