package cellui

import "math"

// Constraints bound the size a widget may choose during layout.
// Max may be Inf on either axis.
type Constraints struct {
	Min, Max Vec2
}

// Tight constrains a widget to exactly size.
func Tight(size Vec2) Constraints {
	return Constraints{Min: size, Max: size}
}

// Loose allows any size from zero up to max.
func Loose(max Vec2) Constraints {
	return Constraints{Max: max}
}

// Unbounded allows any size at all.
func Unbounded() Constraints {
	return Constraints{Max: Splat(Inf)}
}

// Normalize clamps degenerate bounds into a usable range: negative or
// non-finite minimums become zero, negative maximums become zero, a NaN
// maximum becomes Inf and a maximum below the minimum is raised to it.
func (c Constraints) Normalize() Constraints {
	c.Min.X, c.Max.X = normalizeAxis(c.Min.X, c.Max.X)
	c.Min.Y, c.Max.Y = normalizeAxis(c.Min.Y, c.Max.Y)
	return c
}

func normalizeAxis(lo, hi float32) (float32, float32) {
	if !finite(lo) || lo < 0 {
		lo = 0
	}
	if math.IsNaN(float64(hi)) {
		hi = Inf
	}
	if hi < 0 {
		hi = 0
	}
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// Constrain clamps size into [Min, Max]. NaN components collapse to Min.
func (c Constraints) Constrain(size Vec2) Vec2 {
	if math.IsNaN(float64(size.X)) {
		size.X = c.Min.X
	}
	if math.IsNaN(float64(size.Y)) {
		size.Y = c.Min.Y
	}
	return size.Clamp(c.Min, c.Max)
}

// ConstrainMin raises size to at least Min.
func (c Constraints) ConstrainMin(size Vec2) Vec2 {
	return size.Max(c.Min)
}

// Loosen drops the minimum.
func (c Constraints) Loosen() Constraints {
	return Constraints{Max: c.Max}
}

// Tighten pins both bounds to Size.
func (c Constraints) Tighten() Constraints {
	return Tight(c.Size())
}

// IsTight reports whether there is exactly one valid size.
func (c Constraints) IsTight() bool {
	return c.Min == c.Max
}

// Size is the largest finite size allowed, falling back to Min on unbounded axes.
func (c Constraints) Size() Vec2 {
	size := c.Max
	if !finite(size.X) {
		size.X = c.Min.X
	}
	if !finite(size.Y) {
		size.Y = c.Min.Y
	}
	return size
}

// Shrink reduces both bounds by d, never below zero.
func (c Constraints) Shrink(d Vec2) Constraints {
	return Constraints{
		Min: c.Min.Sub(d).Max(Vec2{}),
		Max: c.Max.Sub(d).Max(Vec2{}),
	}
}
