package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gravitrone/khabri/internal/api"
)

// Environment variables that override the config file.
const (
	EnvAPIURL   = "KHABRI_API_URL"
	EnvLogFile  = "KHABRI_LOG_FILE"
	EnvLogLevel = "KHABRI_LOG_LEVEL"
)

// Config holds CLI configuration stored at ~/.khabri/config.yaml.
type Config struct {
	APIURL   string `yaml:"api_url,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`
}

// Dir returns the directory holding the config file and the default log.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".khabri")
}

// Path returns the config file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	return Config{
		APIURL:   api.DefaultBaseURL,
		LogFile:  filepath.Join(Dir(), "khabri.log"),
		LogLevel: "info",
	}
}

// Load reads the config file if present, then applies environment overrides
// and fills defaults. A missing file is not an error; an insecure one is.
func Load() (*Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return nil, err
	}
	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

// LoadFile reads only the config file, without env overrides or defaults.
func LoadFile() (*Config, error) {
	path := Path()

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("stat config: %w", err)
	}

	perm := info.Mode().Perm()
	if perm != 0600 {
		return nil, fmt.Errorf("config permissions too open: %04o (want 0600)", perm)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config to disk with secure permissions.
func (c *Config) Save() error {
	path := Path()
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return os.Chmod(path, 0600)
}

// WithAPIURL returns a copy whose base URL is replaced when url is non-empty.
func (c Config) WithAPIURL(url string) Config {
	if url = strings.TrimSpace(url); url != "" {
		c.APIURL = url
	}
	return c
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		c.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) fillDefaults() {
	def := Defaults()
	if strings.TrimSpace(c.APIURL) == "" {
		c.APIURL = def.APIURL
	}
	if strings.TrimSpace(c.LogFile) == "" {
		c.LogFile = def.LogFile
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = def.LogLevel
	}
}
