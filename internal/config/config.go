// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads and holds the compositor's user configuration:
// HiDPI scale, startup commands, and the keybind table mapping
// modifier+key chords to actions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
	"github.com/ThatOtherAndrew/Infinidesk/internal/log"
)

// DefaultScale is used when the config file omits `scale` or has not
// yet been created.
const DefaultScale = 1.0

// ActionKind is the closed set of built-in action variants a keybind
// table entry can name.
type ActionKind uint8

const (
	ActionExec ActionKind = iota
	ActionCloseWindow
	ActionExit
	ActionToggleDrawing
	ActionClearDrawings
	ActionUndo
	ActionRedo
	ActionGather
	ActionSwitcher
)

// Action is one keybind's effect. Command is populated only for
// ActionExec (the `exec:<shell command>` syntax).
type Action struct {
	Kind    ActionKind
	Command string
}

// Chord is a modifier-bitmask + key-symbol keybind key, matched by
// exact modifier-bitmask and key-symbol equality.
type Chord struct {
	Mods backend.Modifier
	Sym  backend.Keysym
}

// Config is the recognised option set loaded from the config file.
type Config struct {
	Scale    float32
	Startup  []string
	Keybinds map[Chord]Action
}

// fileFormat mirrors the TOML document shape on disk; Config itself
// uses the richer Chord/Action types the rest of the tree consumes.
type fileFormat struct {
	Scale    float32           `toml:"scale"`
	Startup  []string          `toml:"startup"`
	Keybinds map[string]string `toml:"keybinds"`
}

// Default returns the built-in configuration used when no config file
// exists yet, with the keybind table a fresh desktop ships with.
func Default() *Config {
	return &Config{
		Scale:   DefaultScale,
		Startup: nil,
		Keybinds: map[Chord]Action{
			{Mods: backend.ModSuper, Sym: SymTab}:    {Kind: ActionSwitcher},
			{Mods: backend.ModSuper, Sym: SymQ}:      {Kind: ActionCloseWindow},
			{Mods: backend.ModSuper, Sym: SymD}:      {Kind: ActionToggleDrawing},
			{Mods: backend.ModSuper, Sym: SymZ}:      {Kind: ActionUndo},
			{Mods: backend.ModSuper | backend.ModShift, Sym: SymZ}: {Kind: ActionRedo},
			{Mods: backend.ModSuper, Sym: SymG}:      {Kind: ActionGather},
			{Mods: backend.ModSuper | backend.ModShift, Sym: SymC}: {Kind: ActionClearDrawings},
			{Mods: backend.ModSuper | backend.ModShift, Sym: SymE}: {Kind: ActionExit},
		},
	}
}

// defaultTOML is the literal document written to disk on first launch.
// A template engine is unwarranted for three top-level keys.
const defaultTOML = `scale = 1.0
startup = []

[keybinds]
"super+tab" = "switcher"
"super+q" = "closewindow"
"super+d" = "toggledrawing"
"super+z" = "undo"
"super+shift+z" = "redo"
"super+g" = "gather"
"super+shift+c" = "cleardrawings"
"super+shift+e" = "exit"
`

// Path returns $HOME/.config/infinidesk/infinidesk.toml.
func Path() (string, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return "", fmt.Errorf("config: HOME is not set")
	}
	return filepath.Join(home, ".config", "infinidesk", "infinidesk.toml"), nil
}

// Load reads and parses the config file at path, creating it with
// documented defaults first if it does not exist. Per-entry parse
// failures are logged at Warn and the offending entry is dropped
// rather than failing the whole load.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("config: create config dir: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultTOML), 0o644); err != nil {
			return nil, fmt.Errorf("config: write default config: %w", err)
		}
		data = []byte(defaultTOML)
	} else if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var ff fileFormat
	if err := toml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg := &Config{
		Scale:    ff.Scale,
		Startup:  ff.Startup,
		Keybinds: make(map[Chord]Action, len(ff.Keybinds)),
	}
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultScale
	}

	for token, actionStr := range ff.Keybinds {
		chord, err := parseChord(token)
		if err != nil {
			log.Warn("config: skipping unparseable keybind", "token", token, "error", err)
			continue
		}
		action, err := parseAction(actionStr)
		if err != nil {
			log.Warn("config: skipping keybind with unparseable action", "token", token, "error", err)
			continue
		}
		cfg.Keybinds[chord] = action
	}

	return cfg, nil
}

// parseAction implements the action syntax: "exec:<command>" for an
// external process, any other string a built-in action name.
func parseAction(s string) (Action, error) {
	if cmd, ok := strings.CutPrefix(s, "exec:"); ok {
		return Action{Kind: ActionExec, Command: cmd}, nil
	}
	switch strings.ToLower(s) {
	case "closewindow":
		return Action{Kind: ActionCloseWindow}, nil
	case "exit":
		return Action{Kind: ActionExit}, nil
	case "toggledrawing":
		return Action{Kind: ActionToggleDrawing}, nil
	case "cleardrawings":
		return Action{Kind: ActionClearDrawings}, nil
	case "undo":
		return Action{Kind: ActionUndo}, nil
	case "redo":
		return Action{Kind: ActionRedo}, nil
	case "gather":
		return Action{Kind: ActionGather}, nil
	case "switcher":
		return Action{Kind: ActionSwitcher}, nil
	default:
		return Action{}, fmt.Errorf("unknown action %q", s)
	}
}

// parseChord parses a "<mods>+<key>" token such as "super+shift+tab":
// modifier tokens are super/alt/ctrl/shift (case-insensitive), and the
// key token is an X keysym name, exact match first, case-insensitive
// fallback.
func parseChord(token string) (Chord, error) {
	parts := strings.Split(token, "+")
	if len(parts) == 0 {
		return Chord{}, fmt.Errorf("empty keybind token")
	}
	keyToken := parts[len(parts)-1]
	var mods backend.Modifier
	for _, m := range parts[:len(parts)-1] {
		mod, ok := parseModifier(m)
		if !ok {
			return Chord{}, fmt.Errorf("unknown modifier %q", m)
		}
		mods |= mod
	}
	sym, ok := LookupKeysym(keyToken)
	if !ok {
		return Chord{}, fmt.Errorf("unknown key %q", keyToken)
	}
	return Chord{Mods: mods, Sym: sym}, nil
}

func parseModifier(s string) (backend.Modifier, bool) {
	switch strings.ToLower(s) {
	case "super":
		return backend.ModSuper, true
	case "alt":
		return backend.ModAlt, true
	case "ctrl":
		return backend.ModCtrl, true
	case "shift":
		return backend.ModShift, true
	default:
		return 0, false
	}
}
