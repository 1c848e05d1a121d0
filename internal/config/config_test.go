package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30, cfg.Detector.Scale)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		substr string
	}{
		{"log level", func(c *Config) { c.LogLevel = "loud" }, "invalid log level"},
		{"detector", func(c *Config) { c.Detector.BlockSize = 4 }, "detector"},
		{"port", func(c *Config) { c.Server.Port = 0 }, "port"},
		{"timeout", func(c *Config) { c.Server.TimeoutSeconds = 0 }, "timeout"},
		{"upload", func(c *Config) { c.Server.MaxUploadMB = 0 }, "upload"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.substr)
		})
	}
}

func TestDerivedConfigs(t *testing.T) {
	cfg := Default()
	cfg.Output.FontInfo = true
	cfg.Output.Debug = true
	cfg.Detector.Scale = 25

	ser := cfg.SerializerConfig()
	assert.True(t, ser.FontInfo)
	assert.True(t, ser.Debug)

	pl := cfg.PipelineConfig()
	assert.Equal(t, 25, pl.Detector.Scale)
	assert.True(t, pl.Serializer.FontInfo)
}

func TestToYAML(t *testing.T) {
	data, err := Default().ToYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "log_level: info")
	assert.Contains(t, string(data), "detector:")
	assert.Contains(t, string(data), "scale: 30")
}
