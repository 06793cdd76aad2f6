package cellui

import (
	"fmt"
	"math"
)

// Pos is a cell position on the terminal grid.
type Pos struct {
	X, Y int
}

// Add returns p translated by o.
func (p Pos) Add(o Pos) Pos {
	return Pos{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the offset from o to p.
func (p Pos) Sub(o Pos) Pos {
	return Pos{X: p.X - o.X, Y: p.Y - o.Y}
}

// Vec2 converts the position to layout space.
func (p Pos) Vec2() Vec2 {
	return Vec2{X: float32(p.X), Y: float32(p.Y)}
}

func (p Pos) String() string {
	return fmt.Sprintf("[%d,%d]", p.X, p.Y)
}

// Size represents grid dimensions.
type Size struct {
	Width  int
	Height int
}

// Vec2 converts the size to layout space.
func (s Size) Vec2() Vec2 {
	return Vec2{X: float32(s.Width), Y: float32(s.Height)}
}

// CellRect is a half-open rectangle of grid cells, Min inclusive and Max exclusive.
type CellRect struct {
	Min, Max Pos
}

// CellRectOf returns the rectangle at origin with the given size.
func CellRectOf(origin Pos, size Size) CellRect {
	return CellRect{Min: origin, Max: Pos{X: origin.X + size.Width, Y: origin.Y + size.Height}}
}

func (r CellRect) Width() int { return max(r.Max.X-r.Min.X, 0) }
func (r CellRect) Height() int { return max(r.Max.Y-r.Min.Y, 0) }

// Empty reports whether the rectangle covers no cells.
func (r CellRect) Empty() bool {
	return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y
}

// Contains reports whether p lies inside the rectangle.
func (r CellRect) Contains(p Pos) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the overlap of r and o. The result may be empty.
func (r CellRect) Intersect(o CellRect) CellRect {
	out := CellRect{
		Min: Pos{X: max(r.Min.X, o.Min.X), Y: max(r.Min.Y, o.Min.Y)},
		Max: Pos{X: min(r.Max.X, o.Max.X), Y: min(r.Max.Y, o.Max.Y)},
	}
	if out.Empty() {
		return CellRect{Min: out.Min, Max: out.Min}
	}
	return out
}

// Inf is the unbounded layout extent.
var Inf = float32(math.Inf(1))

// Vec2 is a point or size in layout space.
type Vec2 struct {
	X, Y float32
}

// V is shorthand for Vec2{x, y}.
func V(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

// Splat returns a vector with both components set to f.
func Splat(f float32) Vec2 {
	return Vec2{X: f, Y: f}
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{X: v.X + o.X, Y: v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{X: v.X * o.X, Y: v.Y * o.Y} }
func (v Vec2) Scale(f float32) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

// Min returns the component-wise minimum.
func (v Vec2) Min(o Vec2) Vec2 {
	return Vec2{X: min(v.X, o.X), Y: min(v.Y, o.Y)}
}

// Max returns the component-wise maximum.
func (v Vec2) Max(o Vec2) Vec2 {
	return Vec2{X: max(v.X, o.X), Y: max(v.Y, o.Y)}
}

// Clamp limits each component to [lo, hi].
func (v Vec2) Clamp(lo, hi Vec2) Vec2 {
	return v.Max(lo).Min(hi)
}

// IsFinite reports whether both components are finite numbers.
func (v Vec2) IsFinite() bool {
	return finite(v.X) && finite(v.Y)
}

// Pos truncates the vector onto the grid.
func (v Vec2) Pos() Pos {
	return Pos{X: toCell(v.X), Y: toCell(v.Y)}
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g,%g)", v.X, v.Y)
}

func finite(f float32) bool {
	return !math.IsInf(float64(f), 0) && !math.IsNaN(float64(f))
}

const maxCell = 1 << 24

// toCell floors f onto the grid, saturating infinities.
func toCell(f float32) int {
	switch {
	case math.IsNaN(float64(f)):
		return 0
	case f >= maxCell:
		return maxCell
	case f <= -maxCell:
		return -maxCell
	}
	return int(math.Floor(float64(f)))
}

// Rect is an axis-aligned rectangle in layout space.
type Rect struct {
	Min, Max Vec2
}

// RectFromSize returns the rectangle at min with the given size.
func RectFromSize(min, size Vec2) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

func (r Rect) Size() Vec2 { return r.Max.Sub(r.Min) }
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// SetPos moves the rectangle so its top-left corner is at p, keeping its size.
func (r *Rect) SetPos(p Vec2) {
	size := r.Size()
	r.Min = p
	r.Max = p.Add(size)
}

// Translate returns r moved by d.
func (r Rect) Translate(d Vec2) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Contains reports whether p is inside r. The right and bottom edges are exclusive.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Intersect returns the overlap of r and o, collapsed to a zero-size rect when they are disjoint.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{Min: r.Min.Max(o.Min), Max: r.Max.Min(o.Max)}
	out.Max = out.Max.Max(out.Min)
	return out
}

// Cells converts the rectangle to grid cells.
func (r Rect) Cells() CellRect {
	return CellRect{Min: r.Min.Pos(), Max: r.Max.Pos()}
}

func (r Rect) String() string {
	return fmt.Sprintf("%v-%v", r.Min, r.Max)
}
