// Package config loads the JSON settings shared by the host tools.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"segmux/display"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid configuration")

// Config describes one display and how the host reaches it
type Config struct {
	// Segments are the seven segment lines, bit 0 of a pattern first.
	// Digits are the four selector lines, most significant digit first.
	Segments []int `json:"segments"`
	Digits   []int `json:"digits"`

	RefreshPeriodMs uint32 `json:"refresh_period_ms"`

	// Serial link to the firmware
	Device        string `json:"device"`
	Baud          int    `json:"baud"`
	ReadTimeoutMs int    `json:"read_timeout_ms"`

	LogFile      string `json:"log_file"`
	LogMaxSizeMB int    `json:"log_max_size_mb"`
}

// LoadConfig parses a JSON document and fills in defaults
func LoadConfig(jsonData []byte) (*Config, error) {
	var config Config

	err := json.Unmarshal(jsonData, &config)
	if err != nil {
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

// LoadFile reads and parses a configuration file
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	config, err := LoadConfig(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

// applyDefaults fills in missing configuration values
func applyDefaults(config *Config) {
	def := Default()

	// Pin lists are replaced as a whole, never merged
	if config.Segments == nil {
		config.Segments = def.Segments
	}
	if config.Digits == nil {
		config.Digits = def.Digits
	}

	if config.RefreshPeriodMs == 0 {
		config.RefreshPeriodMs = def.RefreshPeriodMs
	}
	if config.Device == "" {
		config.Device = def.Device
	}
	if config.Baud == 0 {
		config.Baud = def.Baud
	}
	if config.ReadTimeoutMs == 0 {
		config.ReadTimeoutMs = def.ReadTimeoutMs
	}
	if config.LogMaxSizeMB == 0 {
		config.LogMaxSizeMB = def.LogMaxSizeMB
	}
}

// Default returns the wiring of the reference board: segments on GPIO0-6,
// digits on GPIO7-10, one digit every 10ms.
func Default() *Config {
	return &Config{
		Segments:        []int{0, 1, 2, 3, 4, 5, 6},
		Digits:          []int{7, 8, 9, 10},
		RefreshPeriodMs: 10,
		Device:          "/dev/ttyACM0",
		Baud:            250000,
		ReadTimeoutMs:   100,
		LogMaxSizeMB:    10,
	}
}

// Validate checks pin counts and ranges and the numeric settings
func (c *Config) Validate() error {
	if len(c.Segments) != 7 {
		return fmt.Errorf("%w: need 7 segment pins, have %d", ErrInvalidConfig, len(c.Segments))
	}
	if len(c.Digits) != 4 {
		return fmt.Errorf("%w: need 4 digit pins, have %d", ErrInvalidConfig, len(c.Digits))
	}
	if !c.Pins().Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, display.ErrInvalidPins)
	}
	if c.RefreshPeriodMs == 0 {
		return fmt.Errorf("%w: refresh period must be positive", ErrInvalidConfig)
	}
	if c.Baud <= 0 {
		return fmt.Errorf("%w: baud must be positive", ErrInvalidConfig)
	}
	if c.ReadTimeoutMs < 0 || c.LogMaxSizeMB < 0 {
		return fmt.Errorf("%w: negative timeout or log size", ErrInvalidConfig)
	}
	return nil
}

// Pins converts the pin lists. Call Validate first; missing entries
// come out as pin 0.
func (c *Config) Pins() display.Pins {
	var p display.Pins
	copy(p.Segments[:], c.Segments)
	copy(p.Digits[:], c.Digits)
	return p
}
