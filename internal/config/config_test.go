package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsParse(t *testing.T) {
	var b BreakoutConfig
	if err := yaml.Unmarshal(defaultBreakoutYAML, &b); err != nil {
		t.Fatalf("breakout defaults: %v", err)
	}
	if b.Board.Width != 480 || b.Bricks.Cols != 8 || b.Gameplay.Lives != 3 {
		t.Errorf("breakout defaults = %+v", b)
	}

	var s ShooterConfig
	if err := yaml.Unmarshal(defaultShooterYAML, &s); err != nil {
		t.Fatalf("shooter defaults: %v", err)
	}
	if s.Formation.Rows != 4 || s.Enemy.ShootBaseIntervalMs != 900 || s.Player.ShotDelayMs != 220 {
		t.Errorf("shooter defaults = %+v", s)
	}

	var n SnakeConfig
	if err := yaml.Unmarshal(defaultSnakeYAML, &n); err != nil {
		t.Fatalf("snake defaults: %v", err)
	}
	if n.GridSize != 20 || n.TickMs != 130 {
		t.Errorf("snake defaults = %+v", n)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("grid_size: 12\nunknown_key: ignored\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadSnake(path)
	if err != nil {
		t.Fatalf("LoadSnake() failed: %v", err)
	}
	if cfg.GridSize != 12 {
		t.Errorf("GridSize = %d, expected 12", cfg.GridSize)
	}
	if cfg.TickMs != 0 {
		t.Errorf("TickMs = %d, expected 0 (omitted keys stay unset)", cfg.TickMs)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := LoadBreakout(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadBreakout() with a missing custom file should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("board: [unterminated"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadShooter(bad); err == nil {
		t.Error("LoadShooter() with malformed YAML should fail")
	}
}

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in      string
		want    DifficultyPreset
		wantErr bool
	}{
		{"", DifficultyNormal, false},
		{"easy", DifficultyEasy, false},
		{"hard", DifficultyHard, false},
		{"nightmare", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePreset(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePreset(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParsePreset(%q) = %q, expected %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestApplyPresets(t *testing.T) {
	var b BreakoutConfig
	ApplyBreakoutPreset(&b, DifficultyEasy)
	if b.Gameplay.Lives != 5 {
		t.Errorf("easy breakout lives = %d, expected 5", b.Gameplay.Lives)
	}

	var s ShooterConfig
	ApplyShooterPreset(&s, DifficultyHard)
	if s.Gameplay.Lives != 2 || s.Enemy.ShootBaseIntervalMs != 700 {
		t.Errorf("hard shooter = %+v", s)
	}

	n := SnakeConfig{TickMs: 130}
	ApplySnakePreset(&n, DifficultyNormal)
	if n.TickMs != 130 {
		t.Errorf("normal preset changed TickMs to %d", n.TickMs)
	}
}

func TestDefaultYAML(t *testing.T) {
	for _, id := range []string{"breakout", "shooter", "snake"} {
		if data, ok := DefaultYAML(id); !ok || len(data) == 0 {
			t.Errorf("DefaultYAML(%q) missing", id)
		}
	}
	if _, ok := DefaultYAML("pong"); ok {
		t.Error("DefaultYAML(pong) should not exist")
	}
}

func TestDefaultYAMLWarnsZeroSpacing(t *testing.T) {
	for _, id := range []string{"breakout", "shooter"} {
		data, _ := DefaultYAML(id)
		if !strings.Contains(string(data), "gaps and margins cannot be set to 0") {
			t.Errorf("DefaultYAML(%q) does not explain that 0 keeps the default", id)
		}
	}
}
