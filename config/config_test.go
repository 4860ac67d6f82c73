package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gotest.tools/assert"
	is "gotest.tools/assert/cmp"

	"segmux/display"
)

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig([]byte(`{}`))
	assert.NilError(t, err)
	assert.DeepEqual(t, config, Default())
	assert.NilError(t, config.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	config, err := LoadConfig([]byte(`{
		"segments": [10, 11, 12, 13, 14, 15, 16],
		"digits": [20, 21, 22, 23],
		"refresh_period_ms": 4,
		"device": "/dev/ttyUSB1",
		"log_file": "segmux.log"
	}`))
	assert.NilError(t, err)
	assert.NilError(t, config.Validate())

	assert.Equal(t, config.RefreshPeriodMs, uint32(4))
	assert.Equal(t, config.Device, "/dev/ttyUSB1")
	assert.Equal(t, config.LogFile, "segmux.log")
	assert.Equal(t, config.Baud, 250000)

	want := display.Pins{
		Segments: [7]int{10, 11, 12, 13, 14, 15, 16},
		Digits:   [4]int{20, 21, 22, 23},
	}
	assert.Equal(t, config.Pins(), want)
}

func TestLoadConfigBadJSON(t *testing.T) {
	_, err := LoadConfig([]byte(`{"segments": "gpio0"}`))
	assert.Assert(t, err != nil)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"short segments", func(c *Config) { c.Segments = c.Segments[:6] }},
		{"extra digit", func(c *Config) { c.Digits = append(c.Digits, 11) }},
		{"pin above range", func(c *Config) { c.Digits[3] = 30 }},
		{"negative pin", func(c *Config) { c.Segments[0] = -1 }},
		{"zero period", func(c *Config) { c.RefreshPeriodMs = 0 }},
		{"zero baud", func(c *Config) { c.Baud = 0 }},
		{"negative timeout", func(c *Config) { c.ReadTimeoutMs = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.modify(c)
			err := c.Validate()
			assert.Assert(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestValidateWrapsPinError(t *testing.T) {
	c := Default()
	c.Segments[2] = 99
	assert.Assert(t, errors.Is(c.Validate(), display.ErrInvalidPins))
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "segmux.json")
	assert.NilError(t, os.WriteFile(path, []byte(`{"baud": 115200}`), 0o644))

	config, err := LoadFile(path)
	assert.NilError(t, err)
	assert.Equal(t, config.Baud, 115200)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Assert(t, is.ErrorContains(err, "read config"))
}
