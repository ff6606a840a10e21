// SPDX-License-Identifier: Unlicense OR MIT

package config

import (
	"strings"

	"github.com/ThatOtherAndrew/Infinidesk/internal/backend"
)

// Named X keysym constants for the built-in default keybind table.
// Keymap handling is scoped down to "modifier bitmask + symbol", so
// this tree only needs keysym identity, not the full X keysym-to-
// Unicode mapping a real keymap library provides.
const (
	SymA backend.Keysym = 0x0061 + iota
	SymB
	SymC
	SymD
	SymE
	SymF
	SymG
)

const (
	SymQ      backend.Keysym = 0x0071
	SymZ      backend.Keysym = 0x007a
	SymTab    backend.Keysym = 0xff09
	SymEscape backend.Keysym = 0xff1b
	SymReturn backend.Keysym = 0xff0d
	SymSpace  backend.Keysym = 0x0020
)

// keysymNames is the exact-match table consulted before the
// case-insensitive fallback. There is no keymap/xkbcommon library in
// the retrieval pack to ground a fuller table on (see DESIGN.md), so
// this covers the identifiers the built-in action set and common
// bindings need.
var keysymNames = map[string]backend.Keysym{
	"a": SymA, "b": SymB, "c": SymC, "d": SymD, "e": SymE, "f": SymF, "g": SymG,
	"q": SymQ, "z": SymZ,
	"Tab": SymTab, "tab": SymTab,
	"Escape": SymEscape, "escape": SymEscape,
	"Return": SymReturn, "return": SymReturn, "enter": SymReturn,
	"space": SymSpace,
}

// LookupKeysym resolves a key token to a Keysym, trying an exact match
// first and falling back to a case-insensitive match.
func LookupKeysym(token string) (backend.Keysym, bool) {
	if sym, ok := keysymNames[token]; ok {
		return sym, true
	}
	lower := strings.ToLower(token)
	for name, sym := range keysymNames {
		if strings.ToLower(name) == lower {
			return sym, true
		}
	}
	return 0, false
}
