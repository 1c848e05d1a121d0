package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "lattice"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "LATTICE"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader backed by the global viper
// instance so that flag bindings work.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// NewLoaderWith creates a loader over a specific viper instance, used by
// tests to avoid global state.
func NewLoaderWith(v *viper.Viper) *Loader {
	return &Loader{v: v}
}

// Load loads configuration from files, environment variables, and
// defaults, then validates it.
func (l *Loader) Load() (*Config, error) {
	cfg, err := l.load("")
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}
	cfg, err := l.load(configFile)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (l *Loader) load(configFile string) (*Config, error) {
	if configFile != "" {
		l.v.SetConfigFile(configFile)
	} else {
		l.v.SetConfigName(ConfigFileName)
		l.v.SetConfigType("yaml")
		l.addConfigPaths()
	}

	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && configFile == "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// addConfigPaths adds the configuration file search paths.
func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
		l.v.AddConfigPath(filepath.Join(home, ".config", "lattice"))
	}
	l.v.AddConfigPath("/etc/lattice")
}

// setupEnvironmentVariables binds LATTICE_* environment variables, with
// dots and dashes mapped to underscores (e.g. LATTICE_DETECTOR_SCALE).
func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	l.v.AutomaticEnv()
}

// setDefaults registers defaults so env-only settings unmarshal fully.
func (l *Loader) setDefaults() {
	def := Default()
	l.v.SetDefault("log_level", def.LogLevel)
	l.v.SetDefault("verbose", def.Verbose)
	l.v.SetDefault("detector.scale", def.Detector.Scale)
	l.v.SetDefault("detector.block_size", def.Detector.BlockSize)
	l.v.SetDefault("detector.threshold_offset", def.Detector.ThresholdOffset)
	l.v.SetDefault("detector.min_region_area", def.Detector.MinRegionArea)
	l.v.SetDefault("detector.min_joints", def.Detector.MinJoints)
	l.v.SetDefault("detector.merge_tolerance", def.Detector.MergeTolerance)
	l.v.SetDefault("output.font_info", def.Output.FontInfo)
	l.v.SetDefault("output.char_boxes", def.Output.CharBoxes)
	l.v.SetDefault("output.debug", def.Output.Debug)
	l.v.SetDefault("output.file", def.Output.File)
	l.v.SetDefault("output.title", def.Output.Title)
	l.v.SetDefault("server.host", def.Server.Host)
	l.v.SetDefault("server.port", def.Server.Port)
	l.v.SetDefault("server.cors_origin", def.Server.CORSOrigin)
	l.v.SetDefault("server.timeout_seconds", def.Server.TimeoutSeconds)
	l.v.SetDefault("server.max_upload_mb", def.Server.MaxUploadMB)
}
