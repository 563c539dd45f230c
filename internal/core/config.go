package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const AppDirName = "heroes"

// Config holds API credentials and local paths.
// Values come from the config file, then .env, then the environment.
type Config struct {
	PublicKey  string `json:"public_key,omitempty" env:"MARVEL_PUBLIC_KEY"`
	PrivateKey string `json:"private_key,omitempty" env:"MARVEL_PRIVATE_KEY"`
	BaseURL    string `json:"base_url,omitempty" env:"MARVEL_BASE_URL"`
	DataDir    string `json:"data_dir,omitempty" env:"HEROES_DATA_DIR"`
}

// ConfigKeys lists the keys accepted by SetConfigValue.
var ConfigKeys = []string{"public_key", "private_key", "base_url", "data_dir"}

func globalConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName, "config.json"), nil
}

// DefaultDataDir is where the database and favorites log live by default.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppDirName), nil
}

// ReadConfigFile reads the config file if present.
func ReadConfigFile() (*Config, error) {
	path, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	return readConfigAt(path)
}

func readConfigAt(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &config, nil
}

// WriteConfigFile writes the config to disk.
func WriteConfigFile(config Config) error {
	path, err := globalConfigPath()
	if err != nil {
		return err
	}
	return writeConfigAt(path, config)
}

func writeConfigAt(path string, config Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	// Holds the private key.
	return os.WriteFile(path, data, 0o600)
}

// LoadConfig resolves the effective configuration.
func LoadConfig() (Config, error) {
	path, err := globalConfigPath()
	if err != nil {
		return Config{}, err
	}
	return loadConfigFrom(path)
}

func loadConfigFrom(path string) (Config, error) {
	var cfg Config
	fileCfg, err := readConfigAt(path)
	if err != nil {
		return Config{}, err
	}
	if fileCfg != nil {
		cfg = *fileCfg
	}

	_ = godotenv.Load()

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}
	return cfg, nil
}

// SetConfigValue updates one key in the config file and returns the result.
func SetConfigValue(key, value string) (*Config, error) {
	path, err := globalConfigPath()
	if err != nil {
		return nil, err
	}
	return setConfigValueAt(path, key, value)
}

func setConfigValueAt(path, key, value string) (*Config, error) {
	cfg, err := readConfigAt(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &Config{}
	}
	value = strings.TrimSpace(value)
	switch strings.ReplaceAll(strings.ToLower(key), "-", "_") {
	case "public_key":
		cfg.PublicKey = value
	case "private_key":
		cfg.PrivateKey = value
	case "base_url":
		cfg.BaseURL = value
	case "data_dir":
		cfg.DataDir = value
	default:
		keys := append([]string(nil), ConfigKeys...)
		sort.Strings(keys)
		return nil, fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(keys, ", "))
	}
	if err := writeConfigAt(path, *cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MaskSecret hides all but the last four characters.
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return strings.Repeat("*", len(value)-4) + value[len(value)-4:]
}
