// Package config provides the startup defaults and logger setup.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/victortrac/stashclicker/internal/clicker"
	"github.com/victortrac/stashclicker/internal/keymap"
	"github.com/victortrac/stashclicker/internal/macro"
)

// Defaults seeds the in-memory session configuration. Nothing is written
// back.
type Defaults struct {
	Clicker clicker.Config `yaml:"clicker"`
	Macro   macro.Config   `yaml:"macro"`
}

// Builtin returns the defaults used without a defaults file.
func Builtin() Defaults {
	return Defaults{Clicker: clicker.Default(), Macro: macro.Default()}
}

// LoadDefaults reads a YAML defaults file over the builtin defaults. Fields
// absent from the file keep their builtin values. An empty path returns
// Builtin. The autoclicker always starts disabled.
func LoadDefaults(path string) (Defaults, error) {
	d := Builtin()
	if path == "" {
		return d, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("read defaults: %w", err)
	}
	if err := yaml.Unmarshal(data, &d); err != nil {
		return d, fmt.Errorf("parse defaults %s: %w", path, err)
	}
	d.Clicker.Enabled = false
	if err := d.Validate(); err != nil {
		return d, fmt.Errorf("defaults %s: %w", path, err)
	}
	return d, nil
}

// Validate reports hotkeys that would never fire.
func (d Defaults) Validate() error {
	var errs []error
	for _, k := range []struct{ name, id string }{
		{"clicker.toggle_key", d.Clicker.ToggleKey},
		{"macro.part1_key", d.Macro.Part1Key},
		{"macro.part2_key", d.Macro.Part2Key},
		{"macro.dodge_key", d.Macro.DodgeKey},
	} {
		if _, ok := keymap.Parse(k.id); !ok {
			errs = append(errs, fmt.Errorf("%s: unknown key %q", k.name, k.id))
		}
	}
	return errors.Join(errs...)
}

// ParseLevel accepts debug, info, warn and error.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// NewLogger returns a text logger writing to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
