package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gabrielfornes/flowsheet/internal/storage"
)

func runCLI(t *testing.T, args []string) (stdout string, stderr string, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.String(), errBuf.String(), e
}

func TestUnitsOutput(t *testing.T) {
	out, _, err := runCLI(t, []string{"units", "38", "4", "4 min"})
	if err != nil {
		t.Fatalf("units: unexpected error: %v", err)
	}
	// Units are floored per quantity: 38 -> 7, 4 -> 0, 4 -> 0.
	if !strings.Contains(out, "Total: 46 min, 7 units") {
		t.Fatalf("units: unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "4 min") {
		t.Fatalf("units: expected the quantity echoed, got:\n%s", out)
	}
}

func TestUnitsRequiresArgs(t *testing.T) {
	if _, _, err := runCLI(t, []string{"units"}); err == nil {
		t.Fatalf("units without args: expected error")
	}
}

func TestCatalogFilter(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runCLI(t, []string{"--dir", dir, "catalog", "quad"})
	if err != nil {
		t.Fatalf("catalog: unexpected error: %v", err)
	}
	for _, want := range []string{"Quad Set (Isometric)", "Long Arc Quad (LAQ)", "17392"} {
		if !strings.Contains(out, want) {
			t.Fatalf("catalog: expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Clamshell") {
		t.Fatalf("catalog: unexpected unmatched entry in output:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"--dir", dir, "catalog", "zzz"})
	if err != nil {
		t.Fatalf("catalog: unexpected error: %v", err)
	}
	if !strings.Contains(out, `No exercises match "zzz"`) {
		t.Fatalf("catalog: expected empty message, got:\n%s", out)
	}
}

func TestCodesEval(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runCLI(t, []string{"--dir", dir, "codes", "--eval"})
	if err != nil {
		t.Fatalf("codes: unexpected error: %v", err)
	}
	if !strings.Contains(out, "97161") || strings.Contains(out, "97110") {
		t.Fatalf("codes --eval: unexpected output:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"--dir", dir, "codes", "neuromuscular"})
	if err != nil {
		t.Fatalf("codes: unexpected error: %v", err)
	}
	if !strings.Contains(out, "97112") {
		t.Fatalf("codes query: expected 97112 in output:\n%s", out)
	}
}

func TestInitWritesOnce(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runCLI(t, []string{"--dir", dir, "init"})
	if err != nil {
		t.Fatalf("init: unexpected error: %v", err)
	}
	if strings.Count(out, "wrote ") != 2 {
		t.Fatalf("init: expected two files written, got:\n%s", out)
	}
	for _, name := range []string{"reference.yaml", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("init: %s missing: %v", name, err)
		}
	}

	out, _, err = runCLI(t, []string{"--dir", dir, "init"})
	if err != nil {
		t.Fatalf("init again: unexpected error: %v", err)
	}
	if strings.Count(out, "kept ") != 2 {
		t.Fatalf("init again: expected files kept, got:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"--dir", dir, "init", "--force"})
	if err != nil {
		t.Fatalf("init --force: unexpected error: %v", err)
	}
	if strings.Count(out, "wrote ") != 2 {
		t.Fatalf("init --force: expected files rewritten, got:\n%s", out)
	}
}

func TestCatalogUsesWorkspaceReference(t *testing.T) {
	dir := t.TempDir()
	ref := "catalog:\n  - id: custom_1\n    name: Towel Scrunch\n    region: Foot\n    ref: \"9001\"\n"
	if err := os.WriteFile(filepath.Join(dir, "reference.yaml"), []byte(ref), 0o644); err != nil {
		t.Fatal(err)
	}
	out, _, err := runCLI(t, []string{"--dir", dir, "catalog"})
	if err != nil {
		t.Fatalf("catalog: unexpected error: %v", err)
	}
	if !strings.Contains(out, "Towel Scrunch") || strings.Contains(out, "Quad Set") {
		t.Fatalf("catalog: expected workspace catalog only, got:\n%s", out)
	}
}

func TestExports(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runCLI(t, []string{"--dir", dir, "exports"})
	if err != nil {
		t.Fatalf("exports: unexpected error: %v", err)
	}
	if !strings.Contains(out, "No exports yet") {
		t.Fatalf("exports: expected empty message, got:\n%s", out)
	}

	store, err := storage.New(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.WriteExport("2026-01-15", "# Home Exercise Plan\n\n1. **Clamshell**\n"); err != nil {
		t.Fatal(err)
	}

	out, _, err = runCLI(t, []string{"--dir", dir, "exports"})
	if err != nil {
		t.Fatalf("exports: unexpected error: %v", err)
	}
	if strings.TrimSpace(out) != "2026-01-15" {
		t.Fatalf("exports: expected one export, got:\n%s", out)
	}

	out, _, err = runCLI(t, []string{"--dir", dir, "exports", "show", "2026-01-15", "--raw"})
	if err != nil {
		t.Fatalf("exports show: unexpected error: %v", err)
	}
	if !strings.Contains(out, "**Clamshell**") {
		t.Fatalf("exports show --raw: unexpected output:\n%s", out)
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "exports", "show", "nope"}); err == nil {
		t.Fatalf("exports show missing: expected error")
	}
}

func TestConfigDirDoesNotMoveWorkspace(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	configDir := t.TempDir()

	app := &App{ConfigDir: configDir}
	cfg, store, err := app.workspace()
	if err != nil {
		t.Fatalf("workspace: unexpected error: %v", err)
	}
	want := filepath.Join(home, ".flowsheet")
	if store.Root != want || cfg.Workspace.Dir != want {
		t.Fatalf("workspace: expected %q, got store %q config %q", want, store.Root, cfg.Workspace.Dir)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("workspace: expected %s created: %v", want, err)
	}
}

func TestConfigFileSetsWorkspace(t *testing.T) {
	configDir := t.TempDir()
	workDir := filepath.Join(t.TempDir(), "ws")
	yaml := "workspace:\n  dir: " + workDir + "\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	_, store, err := (&App{ConfigDir: configDir}).workspace()
	if err != nil {
		t.Fatalf("workspace: unexpected error: %v", err)
	}
	if store.Root != workDir {
		t.Fatalf("workspace.dir: expected %q, got %q", workDir, store.Root)
	}

	explicit := t.TempDir()
	_, store, err = (&App{Dir: explicit, ConfigDir: configDir}).workspace()
	if err != nil {
		t.Fatalf("workspace: unexpected error: %v", err)
	}
	if store.Root != explicit {
		t.Fatalf("--dir: expected %q, got %q", explicit, store.Root)
	}
}
