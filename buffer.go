package cellui

import (
	"iter"
	"strings"
)

// Buffer is a 2D grid of cells representing a drawable surface.
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a new buffer with the given dimensions.
func NewBuffer(width, height int) *Buffer {
	width, height = max(width, 0), max(height, 0)
	b := &Buffer{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	b.Clear()
	return b
}

// Width returns the buffer width.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the buffer height.
func (b *Buffer) Height() int {
	return b.height
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() Size {
	return Size{Width: b.width, Height: b.height}
}

// Bounds returns the rectangle covered by the buffer.
func (b *Buffer) Bounds() CellRect {
	return CellRectOf(Pos{}, b.Size())
}

// InBounds returns true if the given coordinates are within the buffer.
func (b *Buffer) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// index converts x,y coordinates to a slice index.
func (b *Buffer) index(x, y int) int {
	return y*b.width + x
}

// Get returns the cell at the given coordinates.
// Returns an empty cell if out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if !b.InBounds(x, y) {
		return EmptyCell()
	}
	return b.cells[b.index(x, y)]
}

// Set sets the cell at the given coordinates.
// Does nothing if out of bounds.
func (b *Buffer) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[b.index(x, y)] = c
}

// Fill fills the entire buffer with the given cell.
func (b *Buffer) Fill(c Cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
}

// Clear clears the buffer to empty cells.
func (b *Buffer) Clear() {
	b.Fill(EmptyCell())
}

// Invalidate fills the buffer with cells that differ from anything a
// widget can paint.
func (b *Buffer) Invalidate() {
	b.Fill(Cell{Rune: -1})
}

// Resize reallocates the buffer to new dimensions and clears it.
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if n := width * height; cap(b.cells) >= n {
		b.cells = b.cells[:n]
	} else {
		b.cells = make([]Cell, n)
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Canvas returns a canvas covering the whole buffer.
func (b *Buffer) Canvas() *Canvas {
	return &Canvas{buf: b, area: b.Bounds()}
}

// unchanged reports whether back can be skipped when front is already on screen.
// Attributes are compared along with the colors so a style-only change is not lost.
func unchanged(front, back Cell) bool {
	if front.Rune != back.Rune {
		return false
	}
	if back.FG.IsReuse() && back.BG.IsReuse() {
		return true
	}
	return front.FG == back.FG && front.BG == back.BG && front.Attr == back.Attr
}

// Diff walks back in row-major order and yields every cell that differs
// from b, overwriting b's copy as it goes. After a full iteration b is a
// record of what was emitted.
func (b *Buffer) Diff(back *Buffer) iter.Seq2[Pos, Cell] {
	return func(yield func(Pos, Cell) bool) {
		if b.width != back.width {
			return
		}
		n := min(len(b.cells), len(back.cells))
		for i := 0; i < n; i++ {
			cell := back.cells[i]
			if unchanged(b.cells[i], cell) {
				continue
			}
			b.cells[i] = cell
			if !yield(Pos{X: i % b.width, Y: i / b.width}, cell) {
				return
			}
		}
	}
}

// GetLine returns the content of a single line as a string (trimmed).
func (b *Buffer) GetLine(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var line strings.Builder
	for x := 0; x < b.width; x++ {
		r := b.Get(x, y).Rune
		if r == 0 {
			r = ' '
		}
		line.WriteRune(r)
	}
	return strings.TrimRight(line.String(), " ")
}

// String returns the buffer contents as a string (for testing/debugging).
// Each row is separated by a newline. Trailing spaces are preserved.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			r := b.Get(x, y).Rune
			if r == 0 {
				r = ' '
			}
			sb.WriteRune(r)
		}
		if y < b.height-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// StringTrimmed returns the buffer contents with trailing spaces removed per line
// and trailing empty lines dropped.
func (b *Buffer) StringTrimmed() string {
	lines := make([]string, 0, b.height)
	for y := 0; y < b.height; y++ {
		lines = append(lines, b.GetLine(y))
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}
