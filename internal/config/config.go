// Package config layers tasklist settings: built-in defaults, then
// ~/.tasklist/config.yaml, then TASKLIST_* environment variables. Command-line
// flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix   = "TASKLIST"
	EnvDir      = "TASKLIST_CONFIG_DIR"
	FileName    = "config.yaml"
	defaultName = "default"
)

type Remind struct {
	Interval time.Duration `mapstructure:"interval"`
}

type Config struct {
	Dir           string `mapstructure:"dir"`
	Storage       string `mapstructure:"storage"`
	Remind        Remind `mapstructure:"remind"`
	Notifications bool   `mapstructure:"notifications"`
	Theme         string `mapstructure:"theme"`
	Format        string `mapstructure:"format"`
	DebugLog      string `mapstructure:"debugLog"`
}

// document is the on-disk shape written by WriteDefault.
type document struct {
	Dir           string         `yaml:"dir"`
	Storage       string         `yaml:"storage"`
	Remind        documentRemind `yaml:"remind"`
	Notifications bool           `yaml:"notifications"`
	Theme         string         `yaml:"theme"`
	Format        string         `yaml:"format"`
	DebugLog      string         `yaml:"debugLog,omitempty"`
}

type documentRemind struct {
	Interval string `yaml:"interval"`
}

var (
	ErrInvalidTheme  = errors.New("invalid theme (expected auto|light|dark)")
	ErrInvalidFormat = errors.New("invalid format (expected json|text)")
)

// ConfigDir is ~/.tasklist unless TASKLIST_CONFIG_DIR is set.
func ConfigDir() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvDir)); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".tasklist"), nil
}

func Path() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

func Default() Config {
	dir, err := ConfigDir()
	if err != nil {
		dir = ".tasklist"
	}
	return Config{
		Dir:           filepath.Join(dir, defaultName),
		Storage:       "sqlite",
		Remind:        Remind{Interval: time.Minute},
		Notifications: true,
		Theme:         "auto",
		Format:        "json",
	}
}

// Load reads the config file at the default path. A missing file is not an
// error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	def := Default()

	v := viper.New()
	v.SetDefault("dir", def.Dir)
	v.SetDefault("storage", def.Storage)
	v.SetDefault("remind.interval", def.Remind.Interval.String())
	v.SetDefault("notifications", def.Notifications)
	v.SetDefault("theme", def.Theme)
	v.SetDefault("format", def.Format)
	v.SetDefault("debugLog", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("debugLog", EnvPrefix+"_DEBUG_LOG")

	if strings.TrimSpace(path) != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("yaml")
			if err := v.ReadInConfig(); err != nil {
				return def, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return def, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return def, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Theme)) {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidTheme, c.Theme)
	}
	switch strings.ToLower(strings.TrimSpace(c.Format)) {
	case "", "json", "text":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Format)
	}
	if c.Remind.Interval < 0 {
		return fmt.Errorf("remind.interval must not be negative")
	}
	return nil
}

// WriteDefault writes the default config to path. Existing files are kept
// unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := Marshal(Default())
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Marshal renders cfg in the config file format.
func Marshal(cfg Config) ([]byte, error) {
	var doc document
	doc.Dir = cfg.Dir
	doc.Storage = cfg.Storage
	doc.Remind.Interval = cfg.Remind.Interval.String()
	doc.Notifications = cfg.Notifications
	doc.Theme = cfg.Theme
	doc.Format = cfg.Format
	doc.DebugLog = cfg.DebugLog
	return yaml.Marshal(&doc)
}
