package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const DefaultConfigFile = "tasklist.toml"

type RuntimeConfig struct {
	Backend              string `toml:"backend"`
	SQLitePath           string `toml:"sqlite_path"`
	RedisURL             string `toml:"redis_url"`
	RedisPrefix          string `toml:"redis_prefix"`
	StorageKey           string `toml:"storage_key"`
	StorageTimeoutMS     int    `toml:"storage_timeout_ms"`
	IDScheme             string `toml:"id_scheme"`
	RollbackOnSaveError  bool   `toml:"rollback_on_save_error"`
	LogFile              string `toml:"log_file"`
	LogLevel             string `toml:"log_level"`
	LogFormat            string `toml:"log_format"`
	DesktopNotifications bool   `toml:"desktop_notifications"`
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		Backend:              "sqlite",
		SQLitePath:           "tasklist.db",
		RedisURL:             "redis://localhost:6379/0",
		RedisPrefix:          "tasklist:",
		StorageKey:           "TASKS",
		StorageTimeoutMS:     2000,
		IDScheme:             "uuid",
		RollbackOnSaveError:  false,
		LogFile:              "tasklist.log",
		LogLevel:             "info",
		LogFormat:            "text",
		DesktopNotifications: false,
	}
}

// Load layers defaults, the TOML file at path, a .env file and the process
// environment, later sources winning. An empty path falls back to
// TASKLIST_CONFIG and then DefaultConfigFile; only an explicitly named file
// must exist.
func Load(path string) (RuntimeConfig, error) {
	cfg := DefaultRuntimeConfig()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		if v := strings.TrimSpace(os.Getenv("TASKLIST_CONFIG")); v != "" {
			path = v
			explicit = true
		} else {
			path = DefaultConfigFile
		}
	}
	fromFile, err := RuntimeConfigFromFile(cfg, path)
	switch {
	case err == nil:
		cfg = fromFile
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return RuntimeConfig{}, err
	}

	// godotenv.Load never overrides variables that are already set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return RuntimeConfig{}, fmt.Errorf("load .env: %w", err)
	}

	cfg = RuntimeConfigFromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return RuntimeConfig{}, err
	}
	return cfg, nil
}

// RuntimeConfigFromFile decodes path over base; keys absent from the file keep
// their base values.
func RuntimeConfigFromFile(base RuntimeConfig, path string) (RuntimeConfig, error) {
	cfg := base
	if _, err := os.Stat(path); err != nil {
		return base, err
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return base, fmt.Errorf("decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return base, fmt.Errorf("decode %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v, ok := getEnvString("TASKLIST_BACKEND"); ok {
		cfg.Backend = strings.ToLower(v)
	}
	if v, ok := getEnvString("TASKLIST_SQLITE_PATH"); ok {
		cfg.SQLitePath = v
	}
	if v, ok := getEnvString("TASKLIST_REDIS_URL"); ok {
		cfg.RedisURL = v
	}
	if v, ok := os.LookupEnv("TASKLIST_REDIS_PREFIX"); ok {
		cfg.RedisPrefix = strings.TrimSpace(v)
	}
	if v, ok := getEnvString("TASKLIST_STORAGE_KEY"); ok {
		cfg.StorageKey = v
	}
	if v, ok := getEnvInt("TASKLIST_STORAGE_TIMEOUT_MS"); ok && v > 0 {
		cfg.StorageTimeoutMS = v
	}
	if v, ok := getEnvString("TASKLIST_ID_SCHEME"); ok {
		cfg.IDScheme = strings.ToLower(v)
	}
	if v, ok := getEnvBool("TASKLIST_ROLLBACK_ON_SAVE_ERROR"); ok {
		cfg.RollbackOnSaveError = v
	}
	if v, ok := os.LookupEnv("TASKLIST_LOG_FILE"); ok {
		cfg.LogFile = strings.TrimSpace(v)
	}
	if v, ok := getEnvString("TASKLIST_LOG_LEVEL"); ok {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v, ok := getEnvString("TASKLIST_LOG_FORMAT"); ok {
		cfg.LogFormat = strings.ToLower(v)
	}
	if v, ok := getEnvBool("TASKLIST_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	return cfg
}

func (c RuntimeConfig) Validate() error {
	switch c.Backend {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	switch c.IDScheme {
	case "uuid", "clock":
	default:
		return fmt.Errorf("config: unknown id scheme %q", c.IDScheme)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.LogFormat)
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return errors.New("config: storage key is required")
	}
	if c.StorageTimeoutMS <= 0 {
		return errors.New("config: storage timeout must be positive")
	}
	if c.Backend == "sqlite" && strings.TrimSpace(c.SQLitePath) == "" {
		return errors.New("config: sqlite path is required")
	}
	return nil
}

func (c RuntimeConfig) StorageTimeout() time.Duration {
	return time.Duration(c.StorageTimeoutMS) * time.Millisecond
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
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
