package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gonewx/spawncycler/pkg/embedded"
)

func TestParseGeneratorPreset(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *GeneratorPreset)
	}{
		{
			name: "valid preset",
			yamlContent: `
name: test
gameLength: 7
squadsPerWave: {min: 2, max: 4}
zedsPerSquad: {min: 1, max: 10}
categoryWeights:
  trash: 80
  large: 20
memberWeights:
  Cyst: 3
  Alpha Fleshpound: 1
albinoChances:
  Alpha Clot: 50
rageChances:
  quarterPound: 25
  fleshpound: 10
gates:
  large: 3
`,
			validate: func(t *testing.T, p *GeneratorPreset) {
				if p.GameLength != 7 {
					t.Errorf("expected gameLength = 7, got %d", p.GameLength)
				}
				if p.SquadsPerWave != (IntRange{Min: 2, Max: 4}) {
					t.Errorf("unexpected squadsPerWave %+v", p.SquadsPerWave)
				}
				if p.CategoryWeights["trash"] != 80 {
					t.Errorf("expected trash weight = 80, got %d", p.CategoryWeights["trash"])
				}
				if p.RageChances.QuarterPound != 25 {
					t.Errorf("expected quarterPound rage = 25, got %d", p.RageChances.QuarterPound)
				}
				if p.Gates.Large != 3 {
					t.Errorf("expected large gate = 3, got %d", p.Gates.Large)
				}
				// 未配置的开放波次取默认值 1
				if p.Gates.Boss != 1 || p.Gates.Albino != 1 || p.Gates.Rage != 1 {
					t.Errorf("expected default gates of 1, got %+v", p.Gates)
				}
			},
		},
		{
			name: "defaults applied",
			yamlContent: `
categoryWeights:
  trash: 1
`,
			validate: func(t *testing.T, p *GeneratorPreset) {
				if p.GameLength != 10 {
					t.Errorf("expected default gameLength = 10, got %d", p.GameLength)
				}
				if p.SquadsPerWave != (IntRange{Min: 5, Max: 10}) {
					t.Errorf("unexpected default squadsPerWave %+v", p.SquadsPerWave)
				}
				if p.ZedsPerSquad != (IntRange{Min: 2, Max: 6}) {
					t.Errorf("unexpected default zedsPerSquad %+v", p.ZedsPerSquad)
				}
			},
		},
		{
			name:        "invalid game length",
			yamlContent: "gameLength: 5\ncategoryWeights: {trash: 1}\n",
			wantErr:     true,
			errContains: "gameLength must be 4, 7 or 10",
		},
		{
			name:        "inverted squad range",
			yamlContent: "squadsPerWave: {min: 5, max: 2}\ncategoryWeights: {trash: 1}\n",
			wantErr:     true,
			errContains: "squadsPerWave must satisfy",
		},
		{
			name:        "empty category weights",
			yamlContent: "gameLength: 4\n",
			wantErr:     true,
			errContains: "categoryWeights cannot be empty",
		},
		{
			name:        "unknown category",
			yamlContent: "categoryWeights: {huge: 1}\n",
			wantErr:     true,
			errContains: `unknown category "huge"`,
		},
		{
			name:        "negative weight",
			yamlContent: "categoryWeights: {trash: -1}\n",
			wantErr:     true,
			errContains: "cannot be negative",
		},
		{
			name:        "unknown member",
			yamlContent: "categoryWeights: {trash: 1}\nmemberWeights: {Bob: 1}\n",
			wantErr:     true,
			errContains: `unknown zed "Bob"`,
		},
		{
			name:        "albino chance on cyst",
			yamlContent: "categoryWeights: {trash: 1}\nalbinoChances: {Cyst: 10}\n",
			wantErr:     true,
			errContains: "has no albino variant",
		},
		{
			name:        "albino chance out of range",
			yamlContent: "categoryWeights: {trash: 1}\nalbinoChances: {Crawler: 101}\n",
			wantErr:     true,
			errContains: "between 0 and 100",
		},
		{
			name:        "rage chance out of range",
			yamlContent: "categoryWeights: {trash: 1}\nrageChances: {fleshpound: -5}\n",
			wantErr:     true,
			errContains: "rageChances.fleshpound",
		},
		{
			name:        "negative gate",
			yamlContent: "categoryWeights: {trash: 1}\ngates: {boss: -1}\n",
			wantErr:     true,
			errContains: "gates.boss must be >= 1",
		},
		{
			name:        "malformed yaml",
			yamlContent: "categoryWeights: [1, 2\n",
			wantErr:     true,
			errContains: "failed to parse generator preset YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preset, err := ParseGeneratorPreset([]byte(tt.yamlContent))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tt.errContains)
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("expected error containing %q, got %q", tt.errContains, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.validate != nil {
				tt.validate(t, preset)
			}
		})
	}
}

func TestLoadGeneratorPresetFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "preset.yaml")
	if err := os.WriteFile(configPath, []byte("name: file\ncategoryWeights: {trash: 1}\n"), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	preset, err := LoadGeneratorPreset(configPath)
	if err != nil {
		t.Fatalf("LoadGeneratorPreset failed: %v", err)
	}
	if preset.Name != "file" {
		t.Errorf("expected name = file, got %q", preset.Name)
	}

	_, err = LoadGeneratorPreset(filepath.Join(tempDir, "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read generator preset file") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestMarshalGeneratorPresetRoundTrip(t *testing.T) {
	preset, err := ParseGeneratorPreset([]byte("name: rt\ncategoryWeights: {trash: 3, boss: 1}\nmemberWeights: {Cyst: 2}\n"))
	if err != nil {
		t.Fatalf("ParseGeneratorPreset failed: %v", err)
	}
	data, err := MarshalGeneratorPreset(preset)
	if err != nil {
		t.Fatalf("MarshalGeneratorPreset failed: %v", err)
	}
	again, err := ParseGeneratorPreset(data)
	if err != nil {
		t.Fatalf("re-parse failed: %v\n%s", err, data)
	}
	if again.CategoryWeights["boss"] != 1 || again.MemberWeights["Cyst"] != 2 || again.Name != "rt" {
		t.Errorf("round trip lost data: %+v", again)
	}
}

func TestEmbeddedPresets(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/presets/alpha.yaml": {Data: []byte("name: alpha\ngameLength: 4\ncategoryWeights: {trash: 1}\n")},
		"data/presets/beta.yaml":  {Data: []byte("name: beta\ncategoryWeights: {medium: 1}\n")},
		"data/presets/bad.yaml":   {Data: []byte("gameLength: 3\n")},
	})

	names, err := ListEmbeddedPresets()
	if err != nil {
		t.Fatalf("ListEmbeddedPresets failed: %v", err)
	}
	if strings.Join(names, ",") != "alpha,bad,beta" {
		t.Errorf("unexpected preset names %v", names)
	}

	preset, err := LoadEmbeddedPreset("alpha")
	if err != nil {
		t.Fatalf("LoadEmbeddedPreset failed: %v", err)
	}
	if preset.GameLength != 4 {
		t.Errorf("expected gameLength = 4, got %d", preset.GameLength)
	}
	if _, err := LoadEmbeddedPreset("bad"); err == nil {
		t.Error("expected validation error for bad preset")
	}
	if _, err := LoadEmbeddedPreset("missing"); err == nil {
		t.Error("expected error for missing preset")
	}
}
