// Package config provides Viper-based configuration loading for the character
// editor.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/language"
)

// WindowConfig holds the editor window geometry.
type WindowConfig struct {
	X      int `mapstructure:"x"`
	Y      int `mapstructure:"y"`
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
	// File, when set, receives log output instead of stderr.
	File string `mapstructure:"file"`
}

// Config is the top-level application configuration.
type Config struct {
	// OpenDirPath is the directory relative character file names are loaded from.
	OpenDirPath string `mapstructure:"openDirPath"`
	// SaveDirPath is the directory relative character file names are saved to.
	SaveDirPath string `mapstructure:"saveDirPath"`
	// Language is the BCP 47 tag of the display language, e.g. "de".
	Language string `mapstructure:"language"`
	// DataDir, when set, replaces the bundled reference data with the XML
	// files found in this directory.
	DataDir string        `mapstructure:"dataDir"`
	Window  WindowConfig  `mapstructure:"window"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// OpenPath resolves name against OpenDirPath unless it is absolute.
func (c Config) OpenPath(name string) string {
	if filepath.IsAbs(name) || c.OpenDirPath == "" {
		return name
	}
	return filepath.Join(c.OpenDirPath, name)
}

// SavePath resolves name against SaveDirPath unless it is absolute.
func (c Config) SavePath(name string) string {
	if filepath.IsAbs(name) || c.SaveDirPath == "" {
		return name
	}
	return filepath.Join(c.SaveDirPath, name)
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if c.SaveDirPath == "" {
		errs = append(errs, "saveDirPath must not be empty")
	}
	if c.Language == "" {
		errs = append(errs, "language must not be empty")
	} else if _, err := language.Parse(c.Language); err != nil {
		errs = append(errs, fmt.Sprintf("language %q is not a valid language tag", c.Language))
	}
	if err := validateWindow(c.Window); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateWindow(w WindowConfig) error {
	var errs []string
	if w.Width < 0 {
		errs = append(errs, fmt.Sprintf("window.width must be >= 0, got %d", w.Width))
	}
	if w.Height < 0 {
		errs = append(errs, fmt.Sprintf("window.height must be >= 0, got %d", w.Height))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result.
//
// Precondition: path must be a valid file path to a YAML configuration file.
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	bindEnv(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// Default returns the defaults with environment variable overrides applied.
// It is used when no configuration file exists yet.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Default() (Config, error) {
	v := viper.New()
	bindEnv(v)
	setDefaults(v)
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes cfg to path. The format follows the file extension.
//
// Precondition: cfg should be valid; path's directory must exist.
// Postcondition: Load(path) returns a Config equal to cfg, or a non-nil error is returned.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	v := viper.New()
	v.Set("openDirPath", cfg.OpenDirPath)
	v.Set("saveDirPath", cfg.SaveDirPath)
	v.Set("language", cfg.Language)
	v.Set("dataDir", cfg.DataDir)
	v.Set("window.x", cfg.Window.X)
	v.Set("window.y", cfg.Window.Y)
	v.Set("window.width", cfg.Window.Width)
	v.Set("window.height", cfg.Window.Height)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.format", cfg.Logging.Format)
	v.Set("logging.file", cfg.Logging.File)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config file %s: %w", path, err)
	}
	return nil
}

func bindEnv(v *viper.Viper) {
	// Environment variable overrides with VAMPIRE_ prefix
	v.SetEnvPrefix("VAMPIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("openDirPath", ".")
	v.SetDefault("saveDirPath", ".")
	v.SetDefault("language", "en")
	v.SetDefault("dataDir", "")

	v.SetDefault("window.x", 0)
	v.SetDefault("window.y", 0)
	v.SetDefault("window.width", 1024)
	v.SetDefault("window.height", 768)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file", "")
}
