package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.Workspace.Dir != "" {
		t.Fatalf("workspace.dir: expected unset, got %q", cfg.Workspace.Dir)
	}
	if cfg.Editor.TriggerRune() != '/' {
		t.Fatalf("editor.trigger: expected '/', got %q", cfg.Editor.TriggerRune())
	}
	if cfg.Editor.PickerColumns != 3 {
		t.Fatalf("editor.picker_columns: expected 3, got %d", cfg.Editor.PickerColumns)
	}
	if cfg.Timers.Pulse != 420*time.Millisecond || cfg.Timers.Removal != 250*time.Millisecond {
		t.Fatalf("timers: unexpected %+v", cfg.Timers)
	}
	if cfg.Log.File != filepath.Join(dir, "flowsheet.log") {
		t.Fatalf("log.file: unexpected %q", cfg.Log.File)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "editor:\n  trigger: \"#\"\n  picker_columns: 4\ntimers:\n  removal: 1s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("FLOWSHEET_EDITOR_PICKER_COLUMNS", "5")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.Editor.TriggerRune() != '#' {
		t.Fatalf("editor.trigger: expected '#', got %q", cfg.Editor.TriggerRune())
	}
	if cfg.Editor.PickerColumns != 5 {
		t.Fatalf("env override: expected 5 columns, got %d", cfg.Editor.PickerColumns)
	}
	if cfg.Timers.Removal != time.Second {
		t.Fatalf("timers.removal: expected 1s, got %v", cfg.Timers.Removal)
	}
}

func TestLoadDefaultYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(DefaultYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load(DefaultYAML): unexpected error: %v", err)
	}
	if cfg.Catalog.LinkTemplate == "" {
		t.Fatalf("catalog.link_template: expected a default")
	}
}

func TestLoadBrokenFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("editor: [\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatalf("Load(broken): expected error")
	}
}
