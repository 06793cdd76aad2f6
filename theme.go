package cellui

import (
	"fmt"
	"slices"
	"strings"
)

// Theme is a set of styles for a consistent look across widgets.
type Theme struct {
	Base    Style // default text
	Muted   Style // de-emphasized text
	Accent  Style // headers and highlights
	Error   Style
	Border  Style
	Overlay Color // background behind floats
}

var (
	// ThemeDark is light text on the terminal background.
	ThemeDark = Theme{
		Base:    Style{FG: White, BG: Reuse},
		Muted:   Style{FG: Hex(0x808080), BG: Reuse},
		Accent:  Style{FG: Cyan, BG: Reuse, Attr: AttrBold},
		Error:   Style{FG: Red, BG: Reuse, Attr: AttrBold},
		Border:  Style{FG: Hex(0x606060), BG: Reuse},
		Overlay: Hex(0x202040),
	}

	// ThemeLight is dark text for light terminals.
	ThemeLight = Theme{
		Base:    Style{FG: Black, BG: Reuse},
		Muted:   Style{FG: Hex(0x707070), BG: Reuse},
		Accent:  Style{FG: Blue, BG: Reuse, Attr: AttrBold},
		Error:   Style{FG: Red, BG: Reuse, Attr: AttrBold},
		Border:  Style{FG: Hex(0xA0A0A0), BG: Reuse},
		Overlay: Hex(0xE0E0F0),
	}

	// ThemeMonochrome uses only attributes.
	ThemeMonochrome = Theme{
		Base:    DefaultStyle(),
		Muted:   Style{FG: Reset, BG: Reuse, Attr: AttrFaint},
		Accent:  Style{FG: Reset, BG: Reuse, Attr: AttrBold},
		Error:   Style{FG: Reset, BG: Reuse, Attr: AttrBold | AttrUnderline},
		Border:  Style{FG: Reset, BG: Reuse, Attr: AttrFaint},
		Overlay: Reset,
	}
)

var themes = map[string]Theme{
	"dark":       ThemeDark,
	"light":      ThemeLight,
	"monochrome": ThemeMonochrome,
}

// ThemeByName looks up a built-in theme. The empty name is ThemeDark.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		return ThemeDark, nil
	}
	th, ok := themes[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(themes))
		for n := range themes {
			names = append(names, n)
		}
		slices.Sort(names)
		return Theme{}, fmt.Errorf("%w: unknown theme %q, want one of %s", ErrInvalidConfig, name, strings.Join(names, ", "))
	}
	return th, nil
}
