// Package config assembles tminus runtime settings.
//
// Precedence: built-in defaults < TOML config file < TMINUS_* environment
// variables < CLI flags (applied by the cli package).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	DefaultConfigFileName = "config.toml"

	StoreSQLite = "sqlite"
	StoreDiskv  = "diskv"
	StoreMemory = "memory"
)

type Config struct {
	Store              string `toml:"store"`
	DBPath             string `toml:"db_path"`
	DiskvPath          string `toml:"diskv_path"`
	TickIntervalMs     int    `toml:"tick_interval_ms"`
	CelebrationSeconds int    `toml:"celebration_seconds"`
	Particles          int    `toml:"particles"`
	LogFile            string `toml:"log_file"`
	Verbose            bool   `toml:"verbose"`
}

func Default() Config {
	return Config{
		Store:              StoreSQLite,
		DBPath:             "~/.tminus/tminus.db",
		DiskvPath:          "~/.tminus/kv",
		TickIntervalMs:     1000,
		CelebrationSeconds: 15,
		Particles:          120,
	}
}

func (c Config) TickInterval() time.Duration {
	if c.TickIntervalMs <= 0 {
		return time.Second
	}
	return time.Duration(c.TickIntervalMs) * time.Millisecond
}

func (c Config) CelebrationDuration() time.Duration {
	if c.CelebrationSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.CelebrationSeconds) * time.Second
}

// Validate reports settings no component can run with.
func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("config: db_path is required for the sqlite store")
		}
	case StoreDiskv:
		if strings.TrimSpace(c.DiskvPath) == "" {
			return errors.New("config: diskv_path is required for the diskv store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("config: unknown store %q", c.Store)
	}
	return nil
}

// ResolvePath returns TMINUS_CONFIG when set, otherwise the per-user config file.
func ResolvePath() string {
	if override := strings.TrimSpace(os.Getenv("TMINUS_CONFIG")); override != "" {
		return override
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "tminus", DefaultConfigFileName)
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Store == "" {
		cfg.Store = StoreSQLite
	}
	return cfg, nil
}

// LoadOrCreate behaves like Load but writes the defaults when path does not exist.
func LoadOrCreate(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if err := Write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}
	return Load(path)
}

func Write(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	return os.WriteFile(path, data, 0o644)
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TMINUS_STORE"); ok {
		cfg.Store = strings.ToLower(v)
	}
	if v, ok := getEnvString("TMINUS_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TMINUS_DISKV_PATH"); ok {
		cfg.DiskvPath = v
	}
	if v, ok := getEnvInt("TMINUS_TICK_INTERVAL_MS"); ok && v > 0 {
		cfg.TickIntervalMs = v
	}
	if v, ok := getEnvInt("TMINUS_CELEBRATION_SECONDS"); ok && v > 0 {
		cfg.CelebrationSeconds = v
	}
	if v, ok := getEnvInt("TMINUS_PARTICLES"); ok && v > 0 {
		cfg.Particles = v
	}
	if v, ok := getEnvString("TMINUS_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvBool("TMINUS_VERBOSE"); ok {
		cfg.Verbose = v
	}
	return cfg
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
