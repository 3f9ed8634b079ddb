package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var validLines = []string{
	"SpawnCycleDefs=4CY_2AL,1FP!",
	"SpawnCycleDefs=3SC*",
	"SpawnCycleDefs=2MF!_2CR*",
	"SpawnCycleDefs=6CY,2BL",
}

// run 以降级模式执行命令，返回合并后的输出
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--no-store"))
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func TestValidateCommand(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantErr  bool
		contains string
	}{
		{"valid", validLines, false, "OK"},
		{"wrong wave count", validLines[:3], true, "1 error(s)"},
		{"bad token", []string{
			"SpawnCycleDefs=4XX", "SpawnCycleDefs=1CY", "SpawnCycleDefs=1CY", "SpawnCycleDefs=1CY",
		}, true, "error(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, "validate", writeFile(t, "cycle.txt", tt.lines))
			if (err != nil) != tt.wantErr {
				t.Fatalf("wantErr %v, got %v\n%s", tt.wantErr, err, out)
			}
			if !strings.Contains(out, tt.contains) {
				t.Errorf("expected output to contain %q:\n%s", tt.contains, out)
			}
		})
	}
}

func TestValidateMissingFile(t *testing.T) {
	if _, err := run(t, "validate", filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFormatCommand(t *testing.T) {
	path := writeFile(t, "cycle.txt", []string{
		"SpawnCycleDefs=2cy_1al_3CY",
		"SpawnCycleDefs=1fleshpound!_1FP!",
		"SpawnCycleDefs=1Rioter",
		"SpawnCycleDefs=1ALPHACLOT*",
	})

	out, err := run(t, "format", path)
	if err != nil {
		t.Fatalf("format failed: %v\n%s", err, out)
	}
	expected := "SpawnCycleDefs=5CY_1AL\nSpawnCycleDefs=2FP!\nSpawnCycleDefs=1AL*\nSpawnCycleDefs=1AL*\n"
	if out != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, out)
	}

	outPath := filepath.Join(t.TempDir(), "formatted.txt")
	if _, err := run(t, "format", path, "-o", outPath); err != nil {
		t.Fatalf("format -o failed: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(data) != expected {
		t.Errorf("file content mismatch:\n%s", data)
	}
}

func TestFormatRejectsInvalid(t *testing.T) {
	path := writeFile(t, "cycle.txt", []string{"SpawnCycleDefs=1CY", "SpawnCycleDefs=1CY"})
	if _, err := run(t, "format", path); err == nil {
		t.Error("expected error for 2-wave cycle")
	}
}

func TestGenerateCommand(t *testing.T) {
	first, err := run(t, "generate", "--preset", "default", "--seed", "42", "--waves", "4")
	if err != nil {
		t.Fatalf("generate failed: %v\n%s", err, first)
	}
	lines := strings.Split(strings.TrimSpace(first), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), first)
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "SpawnCycleDefs=") {
			t.Errorf("unexpected line %q", line)
		}
	}

	second, err := run(t, "generate", "--preset", "default", "--seed", "42", "--waves", "4")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if first != second {
		t.Errorf("same seed produced different cycles:\n%s\n%s", first, second)
	}

	// 生成结果可以直接校验
	path := writeFile(t, "generated.txt", lines)
	if out, err := run(t, "validate", path); err != nil {
		t.Errorf("generated cycle does not validate: %v\n%s", err, out)
	}
}

func TestGenerateErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown preset", []string{"generate", "--preset", "nope"}},
		{"bad waves", []string{"generate", "--waves", "5"}},
		{"missing config", []string{"generate", "--config", "/nonexistent/preset.yaml"}},
		{"extra args", []string{"generate", "foo"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestAnalyzeCommand(t *testing.T) {
	path := writeFile(t, "cycle.txt", validLines)

	out, err := run(t, "analyze", path)
	if err != nil {
		t.Fatalf("analyze failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "4 waves") || !strings.Contains(out, "Peak") {
		t.Errorf("unexpected summary:\n%s", out)
	}

	chartPath := filepath.Join(t.TempDir(), "wave1.png")
	out, err = run(t, "analyze", path, "--wave", "1", "--difficulty", "normal", "--wsf", "0", "--max-monsters", "8", "--chart", chartPath)
	if err != nil {
		t.Fatalf("analyze --wave failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Wave 1") || !strings.Contains(out, "Cyst") {
		t.Errorf("unexpected wave report:\n%s", out)
	}
	if info, err := os.Stat(chartPath); err != nil || info.Size() == 0 {
		t.Errorf("expected chart file, got %v", err)
	}

	dir := t.TempDir()
	out, err = run(t, "analyze", path, "--chart", filepath.Join(dir, "cycle.png"), "--thumbnail", "240")
	if err != nil {
		t.Fatalf("analyze --thumbnail failed: %v\n%s", err, out)
	}
	f, err := os.Open(filepath.Join(dir, "cycle_thumb.png"))
	if err != nil {
		t.Fatalf("expected thumbnail file: %v", err)
	}
	defer f.Close()
	thumb, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("thumbnail is not a PNG: %v", err)
	}
	// 960x540 等比缩放到宽 240
	if thumb.Width != 240 || thumb.Height != 135 {
		t.Errorf("expected 240x135 thumbnail, got %dx%d", thumb.Width, thumb.Height)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	path := writeFile(t, "cycle.txt", validLines)
	tests := []struct {
		name string
		args []string
	}{
		{"wave out of range", []string{"analyze", path, "--wave", "5"}},
		{"bad difficulty", []string{"analyze", path, "--difficulty", "easy"}},
		{"bad wsf", []string{"analyze", path, "--wsf", "200"}},
		{"bad max monsters", []string{"analyze", path, "--max-monsters", "0"}},
		{"invalid file", []string{"analyze", writeFile(t, "bad.txt", validLines[:2])}},
		{"thumbnail without chart", []string{"analyze", path, "--thumbnail", "100"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestBundleCommands(t *testing.T) {
	short := writeFile(t, "short.txt", validLines)
	bundlePath := filepath.Join(t.TempDir(), "bundle.json")

	out, err := run(t, "bundle", "pack", short, "-", "-", "--name", "Test", "--author", "me", "-o", bundlePath)
	if err != nil {
		t.Fatalf("pack failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Packed 1 cycle(s)") {
		t.Errorf("unexpected output: %s", out)
	}

	out, err = run(t, "bundle", "unpack", bundlePath, "--length", "4")
	if err != nil {
		t.Fatalf("unpack failed: %v\n%s", err, out)
	}
	expected := strings.Join(validLines, "\n") + "\n"
	if out != expected {
		t.Errorf("expected:\n%s\ngot:\n%s", expected, out)
	}

	if _, err := run(t, "bundle", "unpack", bundlePath, "--length", "7"); err == nil {
		t.Error("expected error for empty slot")
	}
	if _, err := run(t, "bundle", "unpack", bundlePath, "--length", "5"); err == nil {
		t.Error("expected error for invalid length")
	}
}

func TestBundlePackErrors(t *testing.T) {
	short := writeFile(t, "short.txt", validLines)
	out := filepath.Join(t.TempDir(), "bundle.json")

	tests := []struct {
		name string
		args []string
	}{
		{"all empty", []string{"bundle", "pack", "-", "-", "-", "--name", "x", "-o", out}},
		{"wrong slot", []string{"bundle", "pack", "-", short, "-", "--name", "x", "-o", out}},
		{"missing name", []string{"bundle", "pack", short, "-", "-", "-o", out}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestPresetCommands(t *testing.T) {
	out, err := run(t, "preset", "list")
	if err != nil {
		t.Fatalf("preset list failed: %v", err)
	}
	for _, want := range []string{"big_zed", "default (default)", "trash_only", "(none)"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected list to contain %q:\n%s", want, out)
		}
	}

	out, err = run(t, "preset", "show", "trash_only")
	if err != nil {
		t.Fatalf("preset show failed: %v", err)
	}
	if !strings.Contains(out, "gameLength:") || !strings.Contains(out, "categoryWeights:") {
		t.Errorf("unexpected preset YAML:\n%s", out)
	}

	// show 的输出可以作为预设文件重新保存
	path := writeFile(t, "preset.yaml", []string{out})
	out, err = run(t, "preset", "save", "mine", path)
	if err != nil {
		t.Fatalf("preset save failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "Saved preset mine") {
		t.Errorf("unexpected output: %s", out)
	}

	if _, err := run(t, "preset", "save", "bad name", path); err == nil {
		t.Error("expected error for invalid name")
	}
	if _, err := run(t, "preset", "delete", "mine"); err == nil {
		t.Error("expected error deleting a preset that was never persisted")
	}
	if _, err := run(t, "preset", "show", "missing"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestDefaultsCommand(t *testing.T) {
	out, err := run(t, "defaults")
	if err != nil {
		t.Fatalf("defaults failed: %v", err)
	}
	if !strings.Contains(out, "difficulty:") || !strings.Contains(out, "default preset: default") {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, "defaults", "--difficulty", "hard", "--wsf", "6", "--preset", "big_zed")
	if err != nil {
		t.Fatalf("defaults update failed: %v", err)
	}
	for _, want := range []string{"hard", "wsf:            6", "default preset: big_zed"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}

	if _, err := run(t, "defaults", "--max-monsters", "0"); err == nil {
		t.Error("expected error for invalid max monsters")
	}
	if _, err := run(t, "defaults", "--preset", "missing"); err == nil {
		t.Error("expected error for unknown preset")
	}
}

func TestRecentCommand(t *testing.T) {
	out, err := run(t, "recent")
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if out != "" {
		t.Errorf("expected no recent files without storage, got %q", out)
	}
}
