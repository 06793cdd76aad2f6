package cellui

import "github.com/mattn/go-runewidth"

// Canvas paints onto a Buffer, limited to an area. Positions are absolute
// buffer coordinates; anything outside the area is dropped.
type Canvas struct {
	buf  *Buffer
	area CellRect
}

// NewCanvas returns a canvas over buf limited to area.
func NewCanvas(buf *Buffer, area CellRect) *Canvas {
	return &Canvas{buf: buf, area: area.Intersect(buf.Bounds())}
}

// Area returns the paintable rectangle.
func (c *Canvas) Area() CellRect {
	return c.area
}

// Crop returns a canvas limited to the part of r inside this canvas.
func (c *Canvas) Crop(r CellRect) *Canvas {
	return &Canvas{buf: c.buf, area: c.area.Intersect(r)}
}

// Contains reports whether p can be painted.
func (c *Canvas) Contains(p Pos) bool {
	return c.area.Contains(p)
}

// Get returns the cell at p, or false when p is outside the canvas.
func (c *Canvas) Get(p Pos) (Cell, bool) {
	if !c.area.Contains(p) {
		return Cell{}, false
	}
	return c.buf.Get(p.X, p.Y), true
}

// Put writes cell at p. Reuse colors are replaced with the colors already at p.
func (c *Canvas) Put(p Pos, cell Cell) {
	if !c.area.Contains(p) {
		return
	}
	under := c.buf.Get(p.X, p.Y)
	if cell.FG.IsReuse() {
		cell.FG = under.FG
	}
	if cell.BG.IsReuse() {
		cell.BG = under.BG
	}
	c.buf.Set(p.X, p.Y, cell)
}

// SetColor changes the colors at p, keeping the glyph.
func (c *Canvas) SetColor(p Pos, fg, bg Color) {
	if !c.area.Contains(p) {
		return
	}
	cell := c.buf.Get(p.X, p.Y)
	cell.FG, cell.BG = fg, bg
	c.buf.Set(p.X, p.Y, cell)
}

// Rect fills r with cell.
func (c *Canvas) Rect(r CellRect, cell Cell) {
	r = c.area.Intersect(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.Put(Pos{X: x, Y: y}, cell)
		}
	}
}

// Fill paints the whole canvas with background bg.
func (c *Canvas) Fill(bg Color) {
	c.FillRect(c.area, bg)
}

// FillRect paints r with background bg.
func (c *Canvas) FillRect(r CellRect, bg Color) {
	c.Rect(r, EmptyCell().WithBG(bg))
}

// Erase resets the whole canvas to the terminal defaults.
func (c *Canvas) Erase() {
	c.EraseRect(c.area)
}

// EraseRect resets r to the terminal defaults.
func (c *Canvas) EraseRect(r CellRect) {
	c.Rect(r, ResetCell())
}

// Text writes s starting at p on a single line and returns the number of
// columns used. Wide glyphs take two columns; the second holds a zero rune
// which the renderer never writes.
func (c *Canvas) Text(p Pos, s string, style Style) int {
	x := p.X
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > c.area.Max.X {
			break
		}
		c.Put(Pos{X: x, Y: p.Y}, style.Cell(r))
		if w == 2 {
			c.Put(Pos{X: x + 1, Y: p.Y}, style.Cell(0))
		}
		x += w
	}
	return x - p.X
}

// HLine draws a horizontal line of the given rune.
func (c *Canvas) HLine(p Pos, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		c.Put(Pos{X: p.X + i, Y: p.Y}, style.Cell(r))
	}
}

// VLine draws a vertical line of the given rune.
func (c *Canvas) VLine(p Pos, length int, r rune, style Style) {
	for i := 0; i < length; i++ {
		c.Put(Pos{X: p.X, Y: p.Y + i}, style.Cell(r))
	}
}

// BorderStyle defines the characters used for drawing borders.
type BorderStyle struct {
	Horizontal  rune
	Vertical    rune
	TopLeft     rune
	TopRight    rune
	BottomLeft  rune
	BottomRight rune
}

// Predefined border styles.
var (
	BorderSingle = BorderStyle{
		Horizontal: '─', Vertical: '│',
		TopLeft: '┌', TopRight: '┐',
		BottomLeft: '└', BottomRight: '┘',
	}
	BorderRounded = BorderStyle{
		Horizontal: '─', Vertical: '│',
		TopLeft: '╭', TopRight: '╮',
		BottomLeft: '╰', BottomRight: '╯',
	}
	BorderDouble = BorderStyle{
		Horizontal: '═', Vertical: '║',
		TopLeft: '╔', TopRight: '╗',
		BottomLeft: '╚', BottomRight: '╝',
	}
)

// DrawBorder draws a border just inside r.
func (c *Canvas) DrawBorder(r CellRect, border BorderStyle, style Style) {
	w, h := r.Width(), r.Height()
	if w < 2 || h < 2 {
		return
	}
	left, top := r.Min.X, r.Min.Y
	right, bottom := r.Max.X-1, r.Max.Y-1

	c.Put(Pos{X: left, Y: top}, style.Cell(border.TopLeft))
	c.Put(Pos{X: right, Y: top}, style.Cell(border.TopRight))
	c.Put(Pos{X: left, Y: bottom}, style.Cell(border.BottomLeft))
	c.Put(Pos{X: right, Y: bottom}, style.Cell(border.BottomRight))

	c.HLine(Pos{X: left + 1, Y: top}, w-2, border.Horizontal, style)
	c.HLine(Pos{X: left + 1, Y: bottom}, w-2, border.Horizontal, style)
	c.VLine(Pos{X: left, Y: top + 1}, h-2, border.Vertical, style)
	c.VLine(Pos{X: right, Y: top + 1}, h-2, border.Vertical, style)
}
