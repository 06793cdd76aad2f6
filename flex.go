package cellui

// Axis selects the main direction of a container.
type Axis uint8

const (
	Horizontal Axis = iota // left to right
	Vertical               // top to bottom
)

// Main returns the main-axis component of v.
func (a Axis) Main(v Vec2) float32 {
	if a == Vertical {
		return v.Y
	}
	return v.X
}

// Cross returns the cross-axis component of v.
func (a Axis) Cross(v Vec2) float32 {
	if a == Vertical {
		return v.X
	}
	return v.Y
}

// Pack builds a vector from main and cross components.
func (a Axis) Pack(main, cross float32) Vec2 {
	if a == Vertical {
		return Vec2{X: cross, Y: main}
	}
	return Vec2{X: main, Y: cross}
}

func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// FlexFit decides whether a flexible child must fill its share.
type FlexFit uint8

const (
	FitLoose FlexFit = iota // the child may be smaller than its share
	FitTight                // the child is forced to its share
)

// MainAxisSize decides how much main-axis space a container claims.
type MainAxisSize uint8

const (
	MainMax MainAxisSize = iota // as much as the constraints allow
	MainMin                     // only what the children need
)

// MainAxisAlignment positions children along the main axis.
type MainAxisAlignment uint8

const (
	MainStart MainAxisAlignment = iota
	MainCenter
	MainEnd
	SpaceAround
	SpaceBetween
	SpaceEvenly
)

// spacing returns the leading gap and the gap between children for free
// space distributed across n children.
func (m MainAxisAlignment) spacing(free float32, n int) (leading, between float32) {
	switch m {
	case MainCenter:
		return free / 2, 0
	case MainEnd:
		return free, 0
	case SpaceAround:
		if n == 0 {
			return 0, 0
		}
		space := free / float32(n)
		return space / 2, space
	case SpaceBetween:
		if n <= 1 {
			return 0, 0
		}
		return 0, free / float32(n-1)
	case SpaceEvenly:
		space := free / float32(n+1)
		return space, space
	}
	return 0, 0
}

// CrossAxisAlignment positions children along the cross axis.
type CrossAxisAlignment uint8

const (
	CrossStart CrossAxisAlignment = iota
	CrossCenter
	CrossEnd
	CrossStretch
)

// offset returns the cross-axis position of a child in a container of size cross.
func (c CrossAxisAlignment) offset(cross, child float32) float32 {
	switch c {
	case CrossCenter:
		return (cross - child) / 2
	case CrossEnd:
		return cross - child
	}
	return 0
}

// flex is the weight a container with this alignment reports to its parent.
func (c CrossAxisAlignment) flex() float32 {
	if c == CrossStretch {
		return 1
	}
	return 0
}

// Align is a fractional anchor along one axis.
type Align uint8

const (
	AlignMin Align = iota
	AlignCenter
	AlignMax
)

// Factor returns the fraction of the parent extent the anchor sits at.
func (a Align) Factor() float32 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignMax:
		return 1
	}
	return 0
}

// Align2 is a two-axis anchor.
type Align2 struct {
	X, Y Align
}

var (
	AnchorTopLeft     = Align2{AlignMin, AlignMin}
	AnchorTop         = Align2{AlignCenter, AlignMin}
	AnchorTopRight    = Align2{AlignMax, AlignMin}
	AnchorLeft        = Align2{AlignMin, AlignCenter}
	AnchorCenter      = Align2{AlignCenter, AlignCenter}
	AnchorRight       = Align2{AlignMax, AlignCenter}
	AnchorBottomLeft  = Align2{AlignMin, AlignMax}
	AnchorBottom      = Align2{AlignCenter, AlignMax}
	AnchorBottomRight = Align2{AlignMax, AlignMax}
)

// Factor returns both axis factors as a vector.
func (a Align2) Factor() Vec2 {
	return Vec2{X: a.X.Factor(), Y: a.Y.Factor()}
}

// Dimension is an absolute length plus a proportion of the parent's length.
type Dimension struct {
	Absolute float32
	Ratio    float32
}

// Cells is an absolute dimension.
func Cells(n float32) Dimension {
	return Dimension{Absolute: n}
}

// Ratio is a dimension proportional to the parent.
func Ratio(r float32) Dimension {
	return Dimension{Ratio: r}
}

// Resolve computes the dimension against the parent length.
func (d Dimension) Resolve(parent float32) float32 {
	return d.Absolute + d.Ratio*parent
}

// Dimension2 is a two-axis Dimension.
type Dimension2 struct {
	X, Y Dimension
}

// Resolve computes both axes against the parent size.
func (d Dimension2) Resolve(parent Vec2) Vec2 {
	return Vec2{X: d.X.Resolve(parent.X), Y: d.Y.Resolve(parent.Y)}
}

// Flow says whether a widget takes part in its container's normal layout.
type Flow struct {
	relative bool
	Anchor   Align2
	Offset   Dimension2
}

// Inline is the normal flow.
var Inline = Flow{}

// Relative places a widget at anchor of its container plus offset,
// outside the main-axis accumulation.
func Relative(anchor Align2, offset Dimension2) Flow {
	return Flow{relative: true, Anchor: anchor, Offset: offset}
}

// IsRelative reports whether the flow opts out of normal layout.
func (f Flow) IsRelative() bool {
	return f.relative
}

// Resolve returns the position of a relatively placed widget inside a container of size container.
func (f Flow) Resolve(container Vec2) Vec2 {
	return container.Mul(f.Anchor.Factor()).Add(f.Offset.Resolve(container))
}
