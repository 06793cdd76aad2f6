package cellui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// KeyCode identifies a logical key.
type KeyCode uint8

const (
	KeyNone KeyCode = iota
	KeyRune
	KeyFunction
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyBackspace
	KeyDelete
	KeyInsert
	KeyEscape
	KeyTab
	KeyBackTab
	KeyEnter
)

var keyNames = map[KeyCode]string{
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdown",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
	KeyEscape:    "esc",
	KeyTab:       "tab",
	KeyBackTab:   "backtab",
	KeyEnter:     "enter",
}

var keyAliases = map[string]KeyCode{
	"escape":   KeyEscape,
	"return":   KeyEnter,
	"pageup":   KeyPageUp,
	"pagedown": KeyPageDown,
	"del":      KeyDelete,
	"ins":      KeyInsert,
	"bs":       KeyBackspace,
}

// Key is a logical key press. Rune holds the character for KeyRune and the
// function key number for KeyFunction.
type Key struct {
	Code KeyCode
	Rune rune
}

// Char returns the key for the character r.
func Char(r rune) Key {
	return Key{Code: KeyRune, Rune: r}
}

// Function returns the function key Fn.
func Function(n int) Key {
	return Key{Code: KeyFunction, Rune: rune(n)}
}

// Named returns a key without a character payload.
func Named(code KeyCode) Key {
	return Key{Code: code}
}

func (k Key) String() string {
	switch k.Code {
	case KeyRune:
		if k.Rune == ' ' {
			return "space"
		}
		return string(k.Rune)
	case KeyFunction:
		return "f" + strconv.Itoa(int(k.Rune))
	case KeyNone:
		return "none"
	}
	return keyNames[k.Code]
}

// Modifiers is the set of modifier keys held during an event.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt

	ModNone Modifiers = 0
)

// Has reports whether every modifier in o is held.
func (m Modifiers) Has(o Modifiers) bool { return m&o == o }

func (m Modifiers) String() string {
	var parts []string
	if m.Has(ModCtrl) {
		parts = append(parts, "ctrl")
	}
	if m.Has(ModAlt) {
		parts = append(parts, "alt")
	}
	if m.Has(ModShift) {
		parts = append(parts, "shift")
	}
	return strings.Join(parts, "+")
}

// Keybind is a key together with the modifiers that must be held.
type Keybind struct {
	Key  Key
	Mods Modifiers
}

// Bind returns a keybind for k with mods.
func Bind(k Key, mods Modifiers) Keybind {
	return Keybind{Key: k, Mods: mods}
}

// Matches reports whether a key press for k with mods triggers the bind.
func (b Keybind) Matches(k Key, mods Modifiers) bool {
	return b.Key == k && b.Mods == mods
}

func (b Keybind) String() string {
	if b.Mods == ModNone {
		return b.Key.String()
	}
	return b.Mods.String() + "+" + b.Key.String()
}

// ParseKeybind parses binds such as "q", "ctrl+c", "shift+tab" or "alt+f4".
// A shifted tab is normalised to backtab.
func ParseKeybind(s string) (Keybind, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "+")

	// "ctrl++" binds the plus key
	if n := len(parts); n >= 2 && parts[n-1] == "" && parts[n-2] == "" {
		parts = append(parts[:n-2], "+")
	}

	var b Keybind
	for i, p := range parts {
		if i < len(parts)-1 {
			switch p {
			case "ctrl":
				b.Mods |= ModCtrl
			case "alt", "meta":
				b.Mods |= ModAlt
			case "shift":
				b.Mods |= ModShift
			default:
				return Keybind{}, fmt.Errorf("unknown modifier %q in %q", p, s)
			}
			continue
		}

		k, err := parseKey(p)
		if err != nil {
			return Keybind{}, fmt.Errorf("invalid keybind %q: %w", s, err)
		}
		b.Key = k
	}

	if b.Key.Code == KeyTab && b.Mods.Has(ModShift) {
		b.Key = Named(KeyBackTab)
		b.Mods &^= ModShift
	}
	return b, nil
}

// MustKeybind is ParseKeybind that panics on error, for package-level binds.
func MustKeybind(s string) Keybind {
	b, err := ParseKeybind(s)
	if err != nil {
		panic(err)
	}
	return b
}

func parseKey(s string) (Key, error) {
	if s == "" {
		return Key{}, fmt.Errorf("missing key")
	}
	if s == "space" {
		return Char(' '), nil
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return Char(r), nil
	}
	if s[0] == 'f' {
		if n, err := strconv.Atoi(s[1:]); err == nil && n >= 1 && n <= 24 {
			return Function(n), nil
		}
	}
	for code, name := range keyNames {
		if name == s {
			return Named(code), nil
		}
	}
	if code, ok := keyAliases[s]; ok {
		return Named(code), nil
	}
	return Key{}, fmt.Errorf("unknown key %q", s)
}
