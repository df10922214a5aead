package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"keycast/internal/keys"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.ThresholdMs != 1000 {
		t.Errorf("default threshold = %d, want 1000", cfg.ThresholdMs)
	}
	if cfg.MaxVisible != 10 {
		t.Errorf("default max visible = %d, want 10", cfg.MaxVisible)
	}
	if cfg.Policy != keys.PolicyCompact {
		t.Errorf("default policy = %v, want compact", cfg.Policy)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestApplyFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "keycast.toml")
	content := `
threshold_ms = 1500
max_keys = 6
policy = "icon"
highlight = "FF8800"
opacity = 0.4
font = "JetBrains Mono"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	fc, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	cfg := Default()
	if err := cfg.ApplyFile(fc); err != nil {
		t.Fatalf("ApplyFile failed: %v", err)
	}

	if cfg.ThresholdMs != 1500 {
		t.Errorf("threshold = %d, want 1500", cfg.ThresholdMs)
	}
	if cfg.MaxVisible != 6 {
		t.Errorf("max visible = %d, want 6", cfg.MaxVisible)
	}
	if cfg.Policy != keys.PolicyIcon {
		t.Errorf("policy = %v, want icon", cfg.Policy)
	}
	// RRGGBB from the file is stored reordered
	if cfg.HighlightColor != "0088FF" {
		t.Errorf("highlight = %q, want 0088FF", cfg.HighlightColor)
	}
	if cfg.BackgroundOpacity != 0.4 {
		t.Errorf("opacity = %g, want 0.4", cfg.BackgroundOpacity)
	}
	if cfg.FontName != "JetBrains Mono" {
		t.Errorf("font = %q, want JetBrains Mono", cfg.FontName)
	}
	// untouched fields keep their defaults
	if cfg.FontSize != Default().FontSize {
		t.Errorf("font size = %d, want default", cfg.FontSize)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(""); err != nil {
		t.Errorf("empty path should not error: %v", err)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("KEYCAST_THRESHOLD_MS", "2500")
	t.Setenv("KEYCAST_MAX_KEYS", "4")
	t.Setenv("KEYCAST_POLICY", "icon")
	t.Setenv("KEYCAST_HIGHLIGHT", "00FF00")
	t.Setenv("KEYCAST_OPACITY", "0.9")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("ApplyEnv failed: %v", err)
	}

	if cfg.ThresholdMs != 2500 {
		t.Errorf("threshold = %d, want 2500", cfg.ThresholdMs)
	}
	if cfg.MaxVisible != 4 {
		t.Errorf("max visible = %d, want 4", cfg.MaxVisible)
	}
	if cfg.Policy != keys.PolicyIcon {
		t.Errorf("policy = %v, want icon", cfg.Policy)
	}
	if cfg.HighlightColor != "00FF00" {
		t.Errorf("highlight = %q, want 00FF00", cfg.HighlightColor)
	}
	if cfg.BackgroundOpacity != 0.9 {
		t.Errorf("opacity = %g, want 0.9", cfg.BackgroundOpacity)
	}
}

func TestApplyEnvRejectsUnparseable(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"KEYCAST_THRESHOLD_MS", "soon"},
		{"KEYCAST_MAX_KEYS", "many"},
		{"KEYCAST_POLICY", "emoji"},
		{"KEYCAST_HIGHLIGHT", "red"},
		{"KEYCAST_OPACITY", "half"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.name, tt.value)

			cfg := Default()
			if err := cfg.ApplyEnv(); err == nil {
				t.Errorf("%s=%q should fail", tt.name, tt.value)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero threshold",
			mutate:  func(c *Config) { c.ThresholdMs = 0 },
			wantErr: "threshold",
		},
		{
			name:    "negative threshold",
			mutate:  func(c *Config) { c.ThresholdMs = -100 },
			wantErr: "threshold",
		},
		{
			name:    "opacity above one",
			mutate:  func(c *Config) { c.BackgroundOpacity = 1.5 },
			wantErr: "opacity",
		},
		{
			name:    "opacity below zero",
			mutate:  func(c *Config) { c.BackgroundOpacity = -0.1 },
			wantErr: "opacity",
		},
		{
			name:    "bad highlight color",
			mutate:  func(c *Config) { c.HighlightColor = "XYZ" },
			wantErr: "highlight",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestSetHighlight(t *testing.T) {
	cfg := Default()

	if err := cfg.SetHighlight("112233"); err != nil {
		t.Fatalf("SetHighlight failed: %v", err)
	}
	if cfg.HighlightColor != "332211" {
		t.Errorf("highlight = %q, want 332211", cfg.HighlightColor)
	}

	if err := cfg.SetHighlight("nothex"); err == nil {
		t.Error("expected error for non-hex color")
	}
}
