package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Timings TimingsConfig `toml:"timings"`
	Log     LogConfig     `toml:"log"`
}

// TimingsConfig holds the simulated latencies and the OTP countdown settings.
type TimingsConfig struct {
	Splash     time.Duration `toml:"splash"`      // Splash before Login
	Login      time.Duration `toml:"login"`       // LOGIN, REGISTER and Forgot Password? on Login
	Recovery   time.Duration `toml:"recovery"`    // Next, Submit and Done in password recovery
	Logout     time.Duration `toml:"logout"`      // confirmed logout
	Tick       time.Duration `toml:"tick"`        // OTP countdown step
	OTPSeconds int           `toml:"otp_seconds"` // OTP countdown start value
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, os.ErrExist)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate rejects timings the flow cannot run with.
func (c *Config) Validate() error {
	t := c.Timings
	for name, d := range map[string]time.Duration{
		"splash": t.Splash, "login": t.Login, "recovery": t.Recovery, "logout": t.Logout,
	} {
		if d < 0 {
			return fmt.Errorf("%w: timings.%s is negative (%v)", ErrInvalidConfig, name, d)
		}
	}
	if t.Tick <= 0 {
		return fmt.Errorf("%w: timings.tick must be positive", ErrInvalidConfig)
	}
	if t.OTPSeconds < 0 {
		return fmt.Errorf("%w: timings.otp_seconds is negative", ErrInvalidConfig)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses the configured [log.Level]; an empty level means info.
func (c *Config) Level() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	l, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return l, fmt.Errorf("%w: log.level: %w", ErrInvalidConfig, err)
	}
	return l, nil
}
