package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/victortrac/stashclicker/internal/clicker"
	"github.com/victortrac/stashclicker/internal/macro"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "defaults.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBuiltin(t *testing.T) {
	d := Builtin()
	if d.Clicker != clicker.Default() || d.Macro != macro.Default() {
		t.Fatalf("Builtin() = %+v", d)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("builtin defaults invalid: %v", err)
	}
}

func TestLoadDefaultsEmptyPath(t *testing.T) {
	d, err := LoadDefaults("")
	if err != nil || d != Builtin() {
		t.Fatalf("LoadDefaults(\"\") = %+v, %v", d, err)
	}
}

func TestLoadDefaultsOverlaysFile(t *testing.T) {
	path := writeFile(t, `
clicker:
  cps: 14
  randomness_ms: 8
  click_mode: double
macro:
  dodge_key: Mouse4
  safe_pocket: {x: 800, y: 600}
  quick_use:
    x: 820
    y: 450
`)
	d, err := LoadDefaults(path)
	if err != nil {
		t.Fatalf("LoadDefaults() error = %v", err)
	}
	if d.Clicker.CPS != 14 || d.Clicker.RandomnessMs != 8 || d.Clicker.Mode != clicker.ModeDouble {
		t.Fatalf("clicker = %+v", d.Clicker)
	}
	if !d.Clicker.Humanize || d.Clicker.ToggleKey != "F6" {
		t.Fatalf("omitted clicker fields lost their defaults: %+v", d.Clicker)
	}
	if d.Macro.DodgeKey != "Mouse4" || d.Macro.Part1Key != "F7" || d.Macro.DelayMs != 50 {
		t.Fatalf("macro = %+v", d.Macro)
	}
	if d.Macro.SafePocket != (macro.Point{X: 800, Y: 600}) || d.Macro.QuickUse != (macro.Point{X: 820, Y: 450}) {
		t.Fatalf("positions = %+v %+v", d.Macro.SafePocket, d.Macro.QuickUse)
	}
}

func TestLoadDefaultsRejectsUnknownKeys(t *testing.T) {
	path := writeFile(t, "clicker:\n  toggle_key: Hyper\nmacro:\n  part2_key: F13\n")
	_, err := LoadDefaults(path)
	if err == nil {
		t.Fatalf("expected an error")
	}
	for _, want := range []string{"clicker.toggle_key", "macro.part2_key"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestValidateReportsKeysInOrder(t *testing.T) {
	d := Builtin()
	d.Clicker.ToggleKey = "Nope1"
	d.Macro.Part1Key = "Nope2"
	d.Macro.Part2Key = "Nope3"
	d.Macro.DodgeKey = "Nope4"
	want := `clicker.toggle_key: unknown key "Nope1"
macro.part1_key: unknown key "Nope2"
macro.part2_key: unknown key "Nope3"
macro.dodge_key: unknown key "Nope4"`
	for range 20 {
		if err := d.Validate(); err == nil || err.Error() != want {
			t.Fatalf("Validate() = %v, want\n%s", err, want)
		}
	}
}

func TestLoadDefaultsErrors(t *testing.T) {
	if _, err := LoadDefaults(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Fatalf("missing file should fail")
	}
	if _, err := LoadDefaults(writeFile(t, "clicker: [")); err == nil {
		t.Fatalf("malformed yaml should fail")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("ParseLevel(loud) should fail")
	}
}
