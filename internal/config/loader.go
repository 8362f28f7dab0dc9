package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "THEORYGAMES_"

// Load loads the configuration, applies environment overrides and
// validates the result.
// Search order: customPath -> ~/.theorygames/config.yaml -> ./configs/theorygames.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg, err := loadYAML(customPath)
	if err != nil {
		return cfg, err
	}
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadEnv reads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config: failed to load %s: %w", f, err)
		}
	}
	return nil
}

func loadYAML(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Default(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/theorygames.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the built-in defaults so partial files work.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".theorygames", filename)
}

// applyEnv overrides storage, server, log and seed settings from
// THEORYGAMES_* variables.
func applyEnv(cfg *Config, getenv func(string) string) error {
	str := func(name string, dst *string) {
		if v := strings.TrimSpace(getenv(EnvPrefix + name)); v != "" {
			*dst = v
		}
	}

	str("STORAGE_BACKEND", &cfg.Storage.Backend)
	str("DB", &cfg.Storage.Path)
	str("REDIS_ADDR", &cfg.Storage.Redis.Addr)
	str("REDIS_PASSWORD", &cfg.Storage.Redis.Password)
	str("REDIS_PREFIX", &cfg.Storage.Redis.Prefix)
	str("SSH_ADDR", &cfg.Server.SSHAddr)
	str("HOST_KEY", &cfg.Server.HostKeyPath)
	str("HTTP_ADDR", &cfg.Server.HTTPAddr)
	str("LOG_LEVEL", &cfg.Log.Level)
	str("MODE", &cfg.Game.Mode)

	if v := getenv(EnvPrefix + "REDIS_DB"); v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %sREDIS_DB: %w", EnvPrefix, err)
		}
		cfg.Storage.Redis.DB = db
	}
	if v := getenv(EnvPrefix + "SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("config: %sSEED: %w", EnvPrefix, err)
		}
		cfg.Game.Seed = seed
	}
	return nil
}
