package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseAnalyzerConfig(t *testing.T) {
	t.Run("partial config keeps defaults", func(t *testing.T) {
		cfg, err := ParseAnalyzerConfig([]byte("maxMonsters: 48\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.MaxMonsters != 48 {
			t.Errorf("expected maxMonsters = 48, got %d", cfg.MaxMonsters)
		}
		if cfg.Difficulty != "hoe" || cfg.WaveSizeFakes != 12 {
			t.Errorf("defaults not kept: %+v", cfg)
		}
		if !cfg.ScaleByWSFEnabled() {
			t.Error("expected scaleByWSF to default to true")
		}
	})

	t.Run("disable wsf scaling", func(t *testing.T) {
		cfg, err := ParseAnalyzerConfig([]byte("scaleByWSF: false\n"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.ScaleByWSFEnabled() {
			t.Error("expected scaleByWSF = false")
		}
	})

	errorCases := []struct {
		name        string
		yamlContent string
		errContains string
	}{
		{"bad difficulty", "difficulty: insane\n", "difficulty must be one of"},
		{"wsf too large", "waveSizeFakes: 129\n", "waveSizeFakes must be between 0 and 128"},
		{"wsf negative", "waveSizeFakes: -1\n", "waveSizeFakes must be between 0 and 128"},
		{"no monsters", "maxMonsters: 0\n", "maxMonsters must be >= 1"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnalyzerConfig([]byte(tt.yamlContent))
			if err == nil || !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("expected error containing %q, got %v", tt.errContains, err)
			}
		})
	}
}

func TestLoadAnalyzerConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "analyzer.yaml")
	if err := os.WriteFile(path, []byte("difficulty: suicidal\nwaveSizeFakes: 6\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	cfg, err := LoadAnalyzerConfig(path)
	if err != nil {
		t.Fatalf("LoadAnalyzerConfig failed: %v", err)
	}
	idx, _ := DifficultyIndex(cfg.Difficulty)
	if idx != 2 || cfg.WaveSizeFakes != 6 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestDifficultyIndex(t *testing.T) {
	tests := map[string]int{
		"normal":        0,
		"Hard":          1,
		"SUICIDAL":      2,
		"hoe":           3,
		"Hell on Earth": 3,
		"2":             2,
	}
	for name, expected := range tests {
		got, err := DifficultyIndex(name)
		if err != nil {
			t.Errorf("DifficultyIndex(%q) failed: %v", name, err)
			continue
		}
		if got != expected {
			t.Errorf("DifficultyIndex(%q): expected %d, got %d", name, expected, got)
		}
	}
	if _, err := DifficultyIndex("4"); err == nil {
		t.Error("expected error for index 4")
	}
	if DifficultyName(3) != "hoe" || DifficultyName(9) != "unknown" {
		t.Error("unexpected DifficultyName results")
	}
}
