package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"candle-remote/lights"
	"candle-remote/pattern"
	"candle-remote/types"
)

// DefaultCandleCount is the number of candles on the standard controller
const DefaultCandleCount = 5

// Config is the complete runtime configuration
type Config struct {
	Serial  SerialConfig  `json:"serial" yaml:"serial"`
	Candles CandlesConfig `json:"candles" yaml:"candles"`
	Pattern PatternConfig `json:"pattern" yaml:"pattern"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// SerialConfig describes the link to the controller
type SerialConfig struct {
	Port string `json:"port" yaml:"port"` // device path, or "-" for stdout
	Baud int    `json:"baud" yaml:"baud"`
}

// CandlesConfig describes the attached candles
type CandlesConfig struct {
	Count      int  `json:"count" yaml:"count"`
	AutoUpdate bool `json:"autoupdate" yaml:"autoupdate"`
}

// PatternConfig controls the pattern drivers
type PatternConfig struct {
	Interval string `json:"interval" yaml:"interval"` // e.g. "1s", "250ms"
	Seed     int64  `json:"seed,omitempty" yaml:"seed,omitempty"`
}

// LogConfig controls log output
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// ParseInterval converts the interval string to time.Duration
func (p PatternConfig) ParseInterval() (time.Duration, error) {
	if p.Interval == "" {
		return pattern.DefaultInterval, nil
	}
	return time.ParseDuration(p.Interval)
}

// LoadFromFile loads configuration from a YAML or JSON file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile writes YAML for .yaml/.yml paths and indented JSON otherwise
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.Serial.Port == "" {
		return fmt.Errorf("serial.port is required")
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("serial.baud must be positive")
	}
	if c.Candles.Count <= 0 {
		return fmt.Errorf("candles.count must be positive")
	}
	d, err := c.Pattern.ParseInterval()
	if err != nil {
		return fmt.Errorf("pattern.interval: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("pattern.interval must be positive")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Default returns the configuration of the standard five-candle controller
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: lights.DefaultPort,
			Baud: lights.DefaultBaudRate,
		},
		Candles: CandlesConfig{
			Count: DefaultCandleCount,
		},
		Pattern: PatternConfig{
			Interval: pattern.DefaultInterval.String(),
		},
		Log: LogConfig{
			Level: types.LogInfo,
		},
	}
}
