// Package cellui is a retained-mode terminal UI runtime.
//
// Application code describes a widget tree every frame through nested builder
// calls. The runtime reconciles that description against the previous frame,
// lays it out, routes input to it, paints it into an off-screen grid and writes
// the minimal set of escape sequences needed to bring the terminal up to date.
package cellui

import (
	"fmt"
	"strconv"
	"strings"
)

// Attribute represents text styling attributes that can be combined.
type Attribute uint8

const (
	AttrBold Attribute = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrStrikeOut

	AttrNone Attribute = 0
)

// attrCodes maps each attribute bit, in ascending order, to its SGR parameter.
var attrCodes = [...]struct {
	attr Attribute
	code byte
	name string
}{
	{AttrBold, '1', "bold"},
	{AttrFaint, '2', "faint"},
	{AttrItalic, '3', "italic"},
	{AttrUnderline, '4', "underline"},
	{AttrBlink, '5', "blink"},
	{AttrReverse, '7', "reverse"},
	{AttrStrikeOut, '9', "strikeout"},
}

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Without returns a new attribute set with the given attribute removed.
func (a Attribute) Without(attr Attribute) Attribute {
	return a &^ attr
}

func (a Attribute) String() string {
	if a == AttrNone {
		return "none"
	}
	var parts []string
	for _, c := range attrCodes {
		if a.Has(c.attr) {
			parts = append(parts, c.name)
		}
	}
	return strings.Join(parts, "|")
}

// ColorMode represents the kind of a color value.
type ColorMode uint8

const (
	// ColorReuse keeps whatever color was previously drawn at a location.
	ColorReuse ColorMode = iota
	// ColorReset is the terminal's default color.
	ColorReset
	// ColorRGB is a 24-bit true color.
	ColorRGB
)

// Color represents a cell color. The zero value is Reuse.
type Color struct {
	Mode    ColorMode
	R, G, B uint8
}

var (
	// Reuse inherits the color already on the surface.
	Reuse = Color{Mode: ColorReuse}
	// Reset selects the terminal default.
	Reset = Color{Mode: ColorReset}
)

// RGB returns a 24-bit true color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Hex returns a 24-bit true color from a hex value (e.g., 0xFF5500).
func Hex(hex uint32) Color {
	return Color{
		Mode: ColorRGB,
		R:    uint8((hex >> 16) & 0xFF),
		G:    uint8((hex >> 8) & 0xFF),
		B:    uint8(hex & 0xFF),
	}
}

// ParseHex parses "#rrggbb" or "rrggbb". It also accepts "reset" and "reuse".
func ParseHex(s string) (Color, error) {
	switch strings.ToLower(s) {
	case "reset":
		return Reset, nil
	case "reuse", "":
		return Reuse, nil
	}
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(s, "#")) != 6 {
		return Reuse, fmt.Errorf("invalid color %q", s)
	}
	return Hex(uint32(v)), nil
}

var (
	Black   = Hex(0x000000)
	Red     = Hex(0xFF0000)
	Green   = Hex(0x00FF00)
	Yellow  = Hex(0xFFFF00)
	Blue    = Hex(0x0000FF)
	Magenta = Hex(0xFF00FF)
	Cyan    = Hex(0x00FFFF)
	White   = Hex(0xFFFFFF)
)

func (c Color) IsReuse() bool { return c.Mode == ColorReuse }
func (c Color) IsReset() bool { return c.Mode == ColorReset }

func (c Color) String() string {
	switch c.Mode {
	case ColorReuse:
		return "reuse"
	case ColorReset:
		return "reset"
	}
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// UnmarshalText lets colors be written as "#rrggbb" in config files.
func (c *Color) UnmarshalText(text []byte) error {
	v, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalText is the inverse of UnmarshalText.
func (c Color) MarshalText() ([]byte, error) {
	if c.Mode == ColorRGB {
		return fmt.Appendf(nil, "#%02x%02x%02x", c.R, c.G, c.B), nil
	}
	return []byte(c.String()), nil
}

// AttrMode is the kind of a CellAttr.
type AttrMode uint8

const (
	// AttrModeReset clears all attributes.
	AttrModeReset AttrMode = iota
	// AttrModeSet adds attributes to whatever is active.
	AttrModeSet
	// AttrModeNew clears all attributes, then sets these.
	AttrModeNew
)

// CellAttr is the attribute state a cell asks for.
type CellAttr struct {
	Mode AttrMode
	Attr Attribute
}

// ResetAttr is the zero CellAttr.
var ResetAttr = CellAttr{}

// SetAttr adds attr on top of the active attributes.
func SetAttr(attr Attribute) CellAttr {
	return CellAttr{Mode: AttrModeSet, Attr: attr}
}

// NewAttr resets and then sets attr.
func NewAttr(attr Attribute) CellAttr {
	return CellAttr{Mode: AttrModeNew, Attr: attr}
}

func (a CellAttr) String() string {
	switch a.Mode {
	case AttrModeSet:
		return "attr(" + a.Attr.String() + ")"
	case AttrModeNew:
		return "new(" + a.Attr.String() + ")"
	}
	return "reset"
}

// Style combines foreground, background colors and attributes.
type Style struct {
	FG   Color
	BG   Color
	Attr Attribute
}

// DefaultStyle returns a style with the default foreground and an inherited background.
func DefaultStyle() Style {
	return Style{FG: Reset, BG: Reuse}
}

// Foreground returns a new style with the given foreground color.
func (s Style) Foreground(c Color) Style {
	s.FG = c
	return s
}

// Background returns a new style with the given background color.
func (s Style) Background(c Color) Style {
	s.BG = c
	return s
}

// Bold returns a new style with bold enabled.
func (s Style) Bold() Style {
	s.Attr = s.Attr.With(AttrBold)
	return s
}

// Italic returns a new style with italic enabled.
func (s Style) Italic() Style {
	s.Attr = s.Attr.With(AttrItalic)
	return s
}

// Underline returns a new style with underline enabled.
func (s Style) Underline() Style {
	s.Attr = s.Attr.With(AttrUnderline)
	return s
}

// Reverse returns a new style with reverse video enabled.
func (s Style) Reverse() Style {
	s.Attr = s.Attr.With(AttrReverse)
	return s
}

// Cell builds a cell carrying glyph r in this style.
func (s Style) Cell(r rune) Cell {
	c := Cell{Rune: r, FG: s.FG, BG: s.BG}
	if s.Attr != AttrNone {
		c.Attr = SetAttr(s.Attr)
	}
	return c
}

// Cell is a single character cell: a glyph, two colors and an attribute state.
type Cell struct {
	Rune rune
	FG   Color
	BG   Color
	Attr CellAttr
}

// NewCell returns a cell with the default foreground that reuses the background beneath it.
func NewCell(r rune) Cell {
	return Cell{Rune: r, FG: Reset, BG: Reuse}
}

// EmptyCell is a blank that reuses the background beneath it.
func EmptyCell() Cell {
	return NewCell(' ')
}

// ResetCell is a blank in the terminal's default colors.
func ResetCell() Cell {
	return Cell{Rune: ' ', FG: Reset, BG: Reset}
}

// WithFG returns the cell with foreground fg.
func (c Cell) WithFG(fg Color) Cell {
	c.FG = fg
	return c
}

// WithBG returns the cell with background bg.
func (c Cell) WithBG(bg Color) Cell {
	c.BG = bg
	return c
}

// WithAttr returns the cell with attr added; AttrNone resets attributes.
func (c Cell) WithAttr(attr Attribute) Cell {
	if attr == AttrNone {
		c.Attr = ResetAttr
	} else {
		c.Attr = SetAttr(attr)
	}
	return c
}

// WithNewAttr returns the cell with attributes reset and then attr set.
func (c Cell) WithNewAttr(attr Attribute) Cell {
	c.Attr = NewAttr(attr)
	return c
}

func (c Cell) String() string {
	return fmt.Sprintf("%q fg=%v bg=%v %v", c.Rune, c.FG, c.BG, c.Attr)
}
