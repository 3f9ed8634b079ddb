package settings

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gonewx/spawncycler/pkg/config"
	"github.com/gonewx/spawncycler/pkg/embedded"
)

func testPreset(t *testing.T) *config.GeneratorPreset {
	t.Helper()
	preset, err := config.ParseGeneratorPreset([]byte("name: original\ngameLength: 7\ncategoryWeights: {trash: 5, large: 1}\n"))
	if err != nil {
		t.Fatalf("ParseGeneratorPreset failed: %v", err)
	}
	return preset
}

func TestValidatePresetName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"default", false},
		{"big-zed_2", false},
		{"", true},
		{"_index", true},
		{"has space", true},
		{"../escape", true},
		{strings.Repeat("a", 33), true},
	}
	for _, tt := range tests {
		err := ValidatePresetName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePresetName(%q): wantErr=%v, got %v", tt.name, tt.wantErr, err)
		}
	}
}

// runPresetStoreCRUD 对内存与 gdata 两种模式执行相同的增删查
func runPresetStoreCRUD(t *testing.T, ps *PresetStore) {
	if names, err := ps.List(); err != nil || len(names) != 0 {
		t.Fatalf("expected empty store, got %v (%v)", names, err)
	}

	if err := ps.Save("mine", testPreset(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := ps.Save("alpha", testPreset(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	// 覆盖已有预设不产生重复名称
	if err := ps.Save("mine", testPreset(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	names, err := ps.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if strings.Join(names, ",") != "alpha,mine" {
		t.Errorf("unexpected names %v", names)
	}

	loaded, err := ps.Load("mine")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name != "mine" || loaded.GameLength != 7 || loaded.CategoryWeights["large"] != 1 {
		t.Errorf("unexpected preset %+v", loaded)
	}

	if err := ps.Delete("mine"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if ps.Has("mine") {
		t.Error("deleted preset still listed")
	}
	if _, err := ps.Load("mine"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound, got %v", err)
	}
	if err := ps.Delete("mine"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound on second delete, got %v", err)
	}
}

func TestPresetStoreMemory(t *testing.T) {
	runPresetStoreCRUD(t, NewPresetStore(nil))
}

func TestPresetStoreGdata(t *testing.T) {
	manager := createTestGdataManager(t, "presets")
	runPresetStoreCRUD(t, NewPresetStore(manager))

	// 新的存储实例能读到之前保存的索引
	reopened := NewPresetStore(manager)
	if !reopened.Has("alpha") {
		t.Error("expected alpha to persist")
	}
}

func TestPresetStoreSaveRejectsInvalid(t *testing.T) {
	ps := NewPresetStore(nil)

	if err := ps.Save("bad name", testPreset(t)); err == nil {
		t.Error("expected error for invalid name")
	}

	preset := testPreset(t)
	preset.GameLength = 5
	if err := ps.Save("short", preset); err == nil || !strings.Contains(err.Error(), "gameLength") {
		t.Errorf("expected validation error, got %v", err)
	}
	if ps.Has("short") {
		t.Error("invalid preset must not be stored")
	}
}

func TestPresetStoreResolve(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/presets/default.yaml": {Data: []byte("name: default\ngameLength: 4\ncategoryWeights: {trash: 1}\n")},
	})

	ps := NewPresetStore(nil)
	preset, err := ps.Resolve("default")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if preset.GameLength != 4 {
		t.Errorf("expected embedded preset, got %+v", preset)
	}

	// 同名用户预设优先
	if err := ps.Save("default", testPreset(t)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	preset, err = ps.Resolve("default")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if preset.GameLength != 7 {
		t.Errorf("expected user preset to shadow embedded one, got %+v", preset)
	}

	if _, err := ps.Resolve("nope"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound, got %v", err)
	}
}

func TestPresetStoreResolveBrokenEmbedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/presets/broken.yaml": {Data: []byte("gameLength: [not a number\n")},
		"data/presets/invalid.yaml": {Data: []byte("gameLength: 5\ncategoryWeights: {trash: 1}\n")},
	})

	ps := NewPresetStore(nil)
	for _, name := range []string{"broken", "invalid"} {
		_, err := ps.Resolve(name)
		if err == nil {
			t.Errorf("%s: expected error", name)
			continue
		}
		if errors.Is(err, ErrPresetNotFound) {
			t.Errorf("%s: broken preset reported as not found: %v", name, err)
		}
	}

	if _, err := ps.Resolve("missing"); !errors.Is(err, ErrPresetNotFound) {
		t.Errorf("expected ErrPresetNotFound, got %v", err)
	}
}
