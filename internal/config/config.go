package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/lattice/internal/lattice"
	"github.com/MeKo-Tech/lattice/internal/layout"
	"github.com/MeKo-Tech/lattice/internal/pipeline"
)

// Config represents the complete configuration for the lattice
// application. It supports loading from configuration files, environment
// variables, and command-line flags.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Table detection settings
	Detector lattice.Config `mapstructure:"detector" yaml:"detector" json:"detector"`

	// Output configuration
	Output OutputConfig `mapstructure:"output" yaml:"output" json:"output"`

	// Server configuration (for serve command)
	Server ServerConfig `mapstructure:"server" yaml:"server" json:"server"`
}

// OutputConfig contains markup output settings.
type OutputConfig struct {
	FontInfo  bool   `mapstructure:"font_info" yaml:"font_info" json:"font_info"`
	CharBoxes bool   `mapstructure:"char_boxes" yaml:"char_boxes" json:"char_boxes"`
	Debug     bool   `mapstructure:"debug" yaml:"debug" json:"debug"`
	File      string `mapstructure:"file" yaml:"file" json:"file"`
	Title     string `mapstructure:"title" yaml:"title" json:"title"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host           string `mapstructure:"host" yaml:"host" json:"host"`
	Port           int    `mapstructure:"port" yaml:"port" json:"port"`
	CORSOrigin     string `mapstructure:"cors_origin" yaml:"cors_origin" json:"cors_origin"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
	MaxUploadMB    int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
}

// Default returns a configuration with component defaults.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Detector: lattice.DefaultConfig(),
		Output: OutputConfig{
			Title: "lattice OCR output",
		},
		Server: ServerConfig{
			Host:           "localhost",
			Port:           8080,
			CORSOrigin:     "*",
			TimeoutSeconds: 120,
			MaxUploadMB:    50,
		},
	}
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	level := strings.ToLower(c.LogLevel)
	ok := false
	for _, l := range validLogLevels {
		if level == l {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if err := c.Detector.Validate(); err != nil {
		return fmt.Errorf("detector: %w", err)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Server.TimeoutSeconds < 1 {
		return fmt.Errorf("invalid server timeout: %d", c.Server.TimeoutSeconds)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("invalid max upload size: %d", c.Server.MaxUploadMB)
	}
	return nil
}

// SerializerConfig derives the serializer configuration from the output
// settings.
func (c *Config) SerializerConfig() layout.Config {
	return layout.Config{
		FontInfo:  c.Output.FontInfo,
		CharBoxes: c.Output.CharBoxes,
		Debug:     c.Output.Debug,
	}
}

// PipelineConfig derives the pipeline configuration.
func (c *Config) PipelineConfig() pipeline.Config {
	return pipeline.Config{
		Detector:   c.Detector,
		Serializer: c.SerializerConfig(),
	}
}

// ToYAML renders the configuration as YAML.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}
