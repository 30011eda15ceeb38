//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/logs",
			expected: filepath.Join(home, "logs"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/.local/state/dreamster.log",
			expected: filepath.Join(home, ".local", "state", "dreamster.log"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/log/dreamster.log",
			expected: "/var/log/dreamster.log",
		},
		{
			name:     "relative path unchanged",
			input:    "logs/dreamster.log",
			expected: "logs/dreamster.log",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "dreamster", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
mpris = false
notifications = false

[api]
base_url = "http://localhost:8080/v1/"
token = "secret"
timeout_seconds = 3

[log]
level = "DEBUG"

[playback]
seek_step_seconds = 5
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.API.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("API.BaseURL = %q, want trailing slash removed", cfg.API.BaseURL)
	}
	if cfg.API.Token != "secret" {
		t.Errorf("API.Token = %q, want %q", cfg.API.Token, "secret")
	}
	if cfg.GetAPIConfig().Timeout() != 3*time.Second {
		t.Errorf("Timeout() = %v, want 3s", cfg.GetAPIConfig().Timeout())
	}
	if cfg.LogLevel() != "debug" {
		t.Errorf("LogLevel() = %q, want %q", cfg.LogLevel(), "debug")
	}
	if cfg.GetPlaybackConfig().SeekStep() != 5*time.Second {
		t.Errorf("SeekStep() = %v, want 5s", cfg.GetPlaybackConfig().SeekStep())
	}
	if cfg.MPRISEnabled() {
		t.Error("MPRISEnabled() = true, want false")
	}
	if !cfg.ShareEnabled() {
		t.Error("ShareEnabled() = false, want true when unset")
	}
	if cfg.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = true, want false")
	}
}

func TestLoad_MissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err == nil {
		t.Error("Load() with a missing explicit path should fail")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api\nbase_url ="), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() with invalid TOML should fail")
	}
}

func TestGetAPIConfig_Defaults(t *testing.T) {
	cfg := Config{}
	api := cfg.GetAPIConfig()

	if api.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", api.BaseURL, DefaultBaseURL)
	}
	if api.TimeoutSeconds != 15 {
		t.Errorf("TimeoutSeconds = %d, want 15", api.TimeoutSeconds)
	}
	if api.RatePerSecond != 5 {
		t.Errorf("RatePerSecond = %f, want 5", api.RatePerSecond)
	}
	if api.Retries != 2 {
		t.Errorf("Retries = %d, want 2", api.Retries)
	}
}

func TestGetAPIConfig_Retries(t *testing.T) {
	tests := []struct {
		name     string
		retries  int
		expected int
	}{
		{"unset uses default", 0, 2},
		{"negative disables", -1, 0},
		{"custom", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Config{API: APIConfig{Retries: tt.retries}}
			if got := cfg.GetAPIConfig().Retries; got != tt.expected {
				t.Errorf("Retries = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestGetPlaybackConfig_InvalidValues(t *testing.T) {
	cfg := Config{
		Playback: PlaybackConfig{
			SeekStepSeconds: -3,  // negative, should become 10
			VolumeStep:      1.5, // > 1, should become 0.05
		},
	}

	pb := cfg.GetPlaybackConfig()

	if pb.SeekStepSeconds != 10 {
		t.Errorf("SeekStepSeconds = %d, want 10", pb.SeekStepSeconds)
	}
	if pb.VolumeStep != 0.05 {
		t.Errorf("VolumeStep = %f, want 0.05", pb.VolumeStep)
	}
}

func TestLogLevel_Default(t *testing.T) {
	cfg := Config{}
	if cfg.LogLevel() != "info" {
		t.Errorf("LogLevel() = %q, want %q", cfg.LogLevel(), "info")
	}
}
