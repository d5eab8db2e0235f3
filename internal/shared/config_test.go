package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Timings.Splash != 2*time.Second {
			t.Errorf("expected splash 2s, got %v", config.Timings.Splash)
		}

		if config.Timings.Login != 3*time.Second {
			t.Errorf("expected login 3s, got %v", config.Timings.Login)
		}

		if config.Timings.Recovery != 2*time.Second {
			t.Errorf("expected recovery 2s, got %v", config.Timings.Recovery)
		}

		if config.Timings.Logout != 3*time.Second {
			t.Errorf("expected logout 3s, got %v", config.Timings.Logout)
		}

		if config.Timings.OTPSeconds != 180 {
			t.Errorf("expected otp_seconds 180, got %d", config.Timings.OTPSeconds)
		}

		if err := config.Validate(); err != nil {
			t.Errorf("expected default config to be valid, got %v", err)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if *config != *defaultConfig {
			t.Errorf("created config doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[timings]
login = "500ms"
otp_seconds = 30

[log]
level = "debug"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Timings.Login != 500*time.Millisecond {
			t.Errorf("expected login 500ms, got %v", config.Timings.Login)
		}

		if config.Timings.OTPSeconds != 30 {
			t.Errorf("expected otp_seconds 30, got %d", config.Timings.OTPSeconds)
		}

		if config.Timings.Splash != 2*time.Second {
			t.Errorf("expected unset splash to keep default 2s, got %v", config.Timings.Splash)
		}

		level, err := config.Level()
		if err != nil || level != log.DebugLevel {
			t.Errorf("expected debug level, got %v (%v)", level, err)
		}
	})

	t.Run("LoadConfig rejects invalid values", func(t *testing.T) {
		tt := []struct {
			name    string
			content string
		}{
			{name: "negative delay", content: "[timings]\nlogout = \"-1s\"\n"},
			{name: "zero tick", content: "[timings]\ntick = \"0s\"\n"},
			{name: "negative otp", content: "[timings]\notp_seconds = -3\n"},
			{name: "bad level", content: "[log]\nlevel = \"loud\"\n"},
		}

		for _, tc := range tt {
			t.Run(tc.name, func(t *testing.T) {
				path := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
					t.Fatalf("failed to write test config: %v", err)
				}

				_, err := LoadConfig(path)
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("LoadConfig reports missing and malformed files", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}

		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[timings\n"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("expected parse error")
		}
	})
}
