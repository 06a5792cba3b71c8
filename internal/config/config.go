// Package config loads anagrams configuration from YAML files and the environment.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/Aman-CERP/anagrams/internal/errors"
)

// Environment variables recognised by Load.
const (
	EnvDictionaryDir = "ANAGRAMS_DICTIONARY_DIR"
	EnvSuffix        = "ANAGRAMS_SUFFIX"
	EnvDelimiter     = "ANAGRAMS_DELIMITER"
	EnvWorkers       = "ANAGRAMS_WORKERS"
	EnvCacheSize     = "ANAGRAMS_CACHE_SIZE"
	EnvLogLevel      = "ANAGRAMS_LOG_LEVEL"
	EnvLogFile       = "ANAGRAMS_LOG_FILE"
)

// ProjectConfigName is the per-directory config file name.
const ProjectConfigName = ".anagrams.yaml"

// Config represents the complete anagrams configuration.
type Config struct {
	Version    int              `yaml:"version" json:"version"`
	Dictionary DictionaryConfig `yaml:"dictionary" json:"dictionary"`
	Query      QueryConfig      `yaml:"query" json:"query"`
	Logging    LoggingConfig    `yaml:"logging" json:"logging"`
	Serve      ServeConfig      `yaml:"serve" json:"serve"`
}

// DictionaryConfig describes where words come from.
type DictionaryConfig struct {
	// Dir is the folder scanned (non-recursively) for word files.
	Dir string `yaml:"dir" json:"dir"`
	// Suffix is the file extension to select, without the dot. Case-sensitive.
	Suffix string `yaml:"suffix" json:"suffix"`
	// Delimiter separates fields within a row. Must be a single character.
	Delimiter string `yaml:"delimiter" json:"delimiter"`
	// Workers bounds how many files are decoded at once.
	Workers int `yaml:"workers" json:"workers"`
}

// QueryConfig tunes the query service.
type QueryConfig struct {
	// CacheSize is the number of permutation classes kept in the LRU cache.
	// Zero disables the cache.
	CacheSize int `yaml:"cache_size" json:"cache_size"`
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level     string `yaml:"level" json:"level"`
	FilePath  string `yaml:"file" json:"file"`
	MaxSizeMB int    `yaml:"max_size_mb" json:"max_size_mb"`
	MaxFiles  int    `yaml:"max_files" json:"max_files"`
}

// ServeConfig configures `anagrams serve`.
type ServeConfig struct {
	// Watch rebuilds the index when dictionary files change.
	Watch bool `yaml:"watch" json:"watch"`
	// Debounce is how long to wait after the last change before rebuilding.
	Debounce string `yaml:"debounce" json:"debounce"`
}

// NewConfig creates a new Config with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Dictionary: DictionaryConfig{
			Dir:       "",
			Suffix:    "csv",
			Delimiter: ",",
			Workers:   runtime.NumCPU(),
		},
		Query: QueryConfig{
			CacheSize: 1024,
		},
		Logging: LoggingConfig{
			Level:     "warn",
			FilePath:  "", // empty uses logging.DefaultLogPath()
			MaxSizeMB: 10,
			MaxFiles:  5,
		},
		Serve: ServeConfig{
			Watch:    false,
			Debounce: "500ms",
		},
	}
}

// GetUserConfigPath returns the path to the user configuration file:
//   - $XDG_CONFIG_HOME/anagrams/config.yaml (if XDG_CONFIG_HOME is set)
//   - ~/.config/anagrams/config.yaml (default)
func GetUserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "anagrams", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".config", "anagrams", "config.yaml")
	}
	return filepath.Join(home, ".config", "anagrams", "config.yaml")
}

// Load loads configuration for the working directory dir.
// Sources apply in order of increasing precedence:
//  1. Hardcoded defaults
//  2. User config (~/.config/anagrams/config.yaml)
//  3. Project config (.anagrams.yaml or .anagrams.yml in dir)
//  4. Environment variables (ANAGRAMS_*), including a .env file in dir
//
// CLI flags are applied by the caller on top of the result.
func Load(dir string) (*Config, error) {
	cfg := NewConfig()

	userPath := GetUserConfigPath()
	if fileExists(userPath) {
		if err := cfg.loadYAML(userPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.loadFromFile(dir); err != nil {
		return nil, err
	}

	if err := loadDotEnv(dir); err != nil {
		return nil, err
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile loads .anagrams.yaml, falling back to .anagrams.yml.
func (c *Config) loadFromFile(dir string) error {
	for _, name := range []string{ProjectConfigName, ".anagrams.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return c.loadYAML(path)
		}
	}
	return nil
}

// loadYAML parses path and merges its non-zero values into c.
func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeConfigNotFound,
			fmt.Sprintf("failed to read config file %s", path), err)
	}

	parsed := Config{Query: QueryConfig{CacheSize: cacheSizeUnset}}
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return apperrors.ConfigError(fmt.Sprintf("failed to parse config file %s", path), err).
			WithDetail("path", path)
	}

	c.mergeWith(&parsed)
	return nil
}

// loadDotEnv exports variables from dir/.env without overriding the
// process environment.
func loadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if !fileExists(path) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return apperrors.ConfigError(fmt.Sprintf("failed to load %s", path), err)
	}
	return nil
}

// cacheSizeUnset marks a file that leaves query.cache_size out, so an
// explicit zero still disables the cache.
const cacheSizeUnset = math.MinInt

// mergeWith merges non-zero values from other into c. The cache size is
// merged whenever the file sets it.
func (c *Config) mergeWith(other *Config) {
	if other.Version != 0 {
		c.Version = other.Version
	}

	if other.Dictionary.Dir != "" {
		c.Dictionary.Dir = other.Dictionary.Dir
	}
	if other.Dictionary.Suffix != "" {
		c.Dictionary.Suffix = other.Dictionary.Suffix
	}
	if other.Dictionary.Delimiter != "" {
		c.Dictionary.Delimiter = other.Dictionary.Delimiter
	}
	if other.Dictionary.Workers != 0 {
		c.Dictionary.Workers = other.Dictionary.Workers
	}

	if other.Query.CacheSize != cacheSizeUnset {
		c.Query.CacheSize = other.Query.CacheSize
	}

	if other.Logging.Level != "" {
		c.Logging.Level = other.Logging.Level
	}
	if other.Logging.FilePath != "" {
		c.Logging.FilePath = other.Logging.FilePath
	}
	if other.Logging.MaxSizeMB != 0 {
		c.Logging.MaxSizeMB = other.Logging.MaxSizeMB
	}
	if other.Logging.MaxFiles != 0 {
		c.Logging.MaxFiles = other.Logging.MaxFiles
	}

	// yaml leaves false for an absent bool, so watch can only be switched on
	if other.Serve.Watch {
		c.Serve.Watch = true
	}
	if other.Serve.Debounce != "" {
		c.Serve.Debounce = other.Serve.Debounce
	}
}

// applyEnvOverrides applies ANAGRAMS_* environment variables.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvDictionaryDir); v != "" {
		c.Dictionary.Dir = v
	}
	if v := os.Getenv(EnvSuffix); v != "" {
		c.Dictionary.Suffix = v
	}
	if v := os.Getenv(EnvDelimiter); v != "" {
		c.Dictionary.Delimiter = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperrors.ConfigError(fmt.Sprintf("%s must be an integer, got %q", EnvWorkers, v), err)
		}
		c.Dictionary.Workers = n
	}
	if v := os.Getenv(EnvCacheSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return apperrors.ConfigError(fmt.Sprintf("%s must be an integer, got %q", EnvCacheSize, v), err)
		}
		c.Query.CacheSize = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFile); v != "" {
		c.Logging.FilePath = v
	}
	return nil
}

// Normalize cleans up values users commonly write loosely.
func (c *Config) Normalize() {
	c.Dictionary.Suffix = strings.TrimPrefix(c.Dictionary.Suffix, ".")
	if c.Dictionary.Delimiter == `\t` || strings.EqualFold(c.Dictionary.Delimiter, "tab") {
		c.Dictionary.Delimiter = "\t"
	}
	c.Logging.Level = strings.ToLower(c.Logging.Level)
}

// DelimiterRune returns the field delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Dictionary.Delimiter)
	return r
}

// DebounceDuration parses Serve.Debounce, defaulting to 500ms.
func (c *Config) DebounceDuration() time.Duration {
	d, err := time.ParseDuration(c.Serve.Debounce)
	if err != nil || d <= 0 {
		return 500 * time.Millisecond
	}
	return d
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.Dictionary.Suffix == "" {
		return apperrors.ConfigError("dictionary.suffix must not be empty", nil)
	}
	if strings.ContainsAny(c.Dictionary.Suffix, `/\`) {
		return apperrors.ConfigError(fmt.Sprintf("dictionary.suffix must be a bare extension, got %q", c.Dictionary.Suffix), nil)
	}

	if utf8.RuneCountInString(c.Dictionary.Delimiter) != 1 {
		return apperrors.ConfigError(fmt.Sprintf("dictionary.delimiter must be a single character, got %q", c.Dictionary.Delimiter), nil)
	}
	switch d := c.DelimiterRune(); d {
	case '"', '\r', '\n', utf8.RuneError:
		return apperrors.ConfigError(fmt.Sprintf("dictionary.delimiter %q cannot separate fields", d), nil)
	}

	if c.Dictionary.Workers < 0 {
		return apperrors.ConfigError(fmt.Sprintf("dictionary.workers must be non-negative, got %d", c.Dictionary.Workers), nil)
	}
	if c.Query.CacheSize < 0 {
		return apperrors.ConfigError(fmt.Sprintf("query.cache_size must be non-negative, got %d", c.Query.CacheSize), nil)
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		return apperrors.ConfigError(fmt.Sprintf("logging.level must be 'debug', 'info', 'warn', or 'error', got %s", c.Logging.Level), nil)
	}

	if _, err := time.ParseDuration(c.Serve.Debounce); err != nil {
		return apperrors.ConfigError(fmt.Sprintf("serve.debounce must be a duration, got %q", c.Serve.Debounce), err)
	}

	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() (string, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config: %w", err)
	}
	return string(data), nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
