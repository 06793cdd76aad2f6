package cellui

// FillProps paints a background behind children. Size is the minimum size.
type FillProps struct {
	Color Color
	Size  Vec2
}

type fillWidget struct {
	Base
	props FillProps
}

func (w *fillWidget) Update(_ *Tree, props FillProps) NoResponse {
	w.props = props
	return NoResponse{}
}

func (w *fillWidget) Layout(ctx *LayoutCtx, c Constraints) Vec2 {
	size := w.props.Size
	for _, child := range ctx.Children() {
		size = size.Max(ctx.Compute(child, c))
	}
	return c.ConstrainMin(size)
}

func (w *fillWidget) Paint(ctx *PaintCtx) {
	ctx.Canvas().Fill(w.props.Color)
	ctx.PaintChildren()
}

// ColorBox declares a block of color of at least size.
func ColorBox(t *Tree, color Color, size Vec2) Response[NoResponse] {
	return Show[fillWidget, FillProps, NoResponse](t, FillProps{Color: color, Size: size})
}

// Container paints bg behind children.
func Container(t *Tree, bg Color, children func(t *Tree)) Response[NoResponse] {
	return ShowChildren[fillWidget, FillProps, NoResponse](t, FillProps{Color: bg}, children)
}

type constrainedWidget struct {
	Base
	props Constraints
}

func (w *constrainedWidget) Update(_ *Tree, props Constraints) NoResponse {
	w.props = props.Normalize()
	return NoResponse{}
}

func (w *constrainedWidget) Layout(ctx *LayoutCtx, c Constraints) Vec2 {
	inner := Constraints{Min: w.props.Min.Clamp(c.Min, c.Max)}
	inner.Max = w.props.Max.Clamp(inner.Min, c.Max)

	var size Vec2
	for _, child := range ctx.Children() {
		size = size.Max(ctx.Compute(child, inner))
	}
	return inner.Constrain(size)
}

// Constrained narrows the constraints its children see to cons, within
// what its parent allows.
func Constrained(t *Tree, cons Constraints, children func(t *Tree)) Response[NoResponse] {
	return ShowChildren[constrainedWidget, Constraints, NoResponse](t, cons, children)
}

// Sized pins its children to exactly size where the parent allows it.
func Sized(t *Tree, size Vec2, children func(t *Tree)) Response[NoResponse] {
	return Constrained(t, Tight(size), children)
}

// FloatProps places an overlay. The zero value fills the space it is given
// inline; Relative anchors it inside the parent list instead.
type FloatProps struct {
	Flow Flow
}

type floatWidget struct {
	Base
	props FloatProps
}

func (w *floatWidget) Update(_ *Tree, props FloatProps) NoResponse {
	w.props = props
	return NoResponse{}
}

func (w *floatWidget) Flow() Flow { return w.props.Flow }

// floats open their own hit-test layer and clip their subtree
func (w *floatWidget) Layout(ctx *LayoutCtx, c Constraints) Vec2 {
	ctx.NewLayer()
	ctx.Clip()
	if c.Max.IsFinite() {
		return ctx.DefaultLayout(Tight(c.Size()))
	}
	return ctx.DefaultLayout(Loose(ctx.Viewport().Size()))
}

// Float declares an overlay that is hit-tested above earlier siblings.
func Float(t *Tree, props FloatProps, children func(t *Tree)) Response[NoResponse] {
	return ShowChildren[floatWidget, FloatProps, NoResponse](t, props, children)
}

// Insets are margins on each side, in cells.
type Insets struct {
	Left, Top, Right, Bottom float32
}

// Uniform returns insets of n on every side.
func Uniform(n float32) Insets {
	return Insets{Left: n, Top: n, Right: n, Bottom: n}
}

// Symmetric returns insets of x on the left and right and y on the top and bottom.
func Symmetric(x, y float32) Insets {
	return Insets{Left: x, Top: y, Right: x, Bottom: y}
}

func (i Insets) sum() Vec2 { return V(i.Left+i.Right, i.Top+i.Bottom) }

func (i Insets) leftTop() Vec2 { return V(i.Left, i.Top) }

type marginWidget struct {
	Base
	props Insets
}

func (w *marginWidget) Update(_ *Tree, props Insets) NoResponse {
	w.props = props
	return NoResponse{}
}

func (w *marginWidget) Layout(ctx *LayoutCtx, c Constraints) Vec2 {
	return insetLayout(ctx, c, w.props)
}

func insetLayout(ctx *LayoutCtx, c Constraints, insets Insets) Vec2 {
	margin := insets.sum()
	inner := c.Shrink(margin)

	var size Vec2
	for _, child := range ctx.Children() {
		size = size.Max(ctx.Compute(child, inner).Add(margin))
		ctx.SetPos(child, insets.leftTop())
	}
	return inner.ConstrainMin(size.Max(margin))
}

// Margin pads its children by insets.
func Margin(t *Tree, insets Insets, children func(t *Tree)) Response[NoResponse] {
	return ShowChildren[marginWidget, Insets, NoResponse](t, insets, children)
}

// BorderProps draws a box around children.
type BorderProps struct {
	Border BorderStyle
	Style  Style
	Title  string
}

type borderWidget struct {
	Base
	props BorderProps
}

func (w *borderWidget) Update(_ *Tree, props BorderProps) NoResponse {
	w.props = props
	return NoResponse{}
}

func (w *borderWidget) Layout(ctx *LayoutCtx, c Constraints) Vec2 {
	return insetLayout(ctx, c, Uniform(1))
}

func (w *borderWidget) Paint(ctx *PaintCtx) {
	c := ctx.Canvas()
	r := ctx.Rect().Cells()
	c.DrawBorder(r, w.props.Border, w.props.Style)
	if w.props.Title != "" && r.Width() > 4 {
		c.Crop(CellRect{Min: r.Min, Max: Pos{X: r.Max.X - 2, Y: r.Min.Y + 1}}).
			Text(Pos{X: r.Min.X + 2, Y: r.Min.Y}, " "+w.props.Title+" ", w.props.Style)
	}
	ctx.PaintChildren()
}

// Border draws border around children.
func Border(t *Tree, props BorderProps, children func(t *Tree)) Response[NoResponse] {
	return ShowChildren[borderWidget, BorderProps, NoResponse](t, props, children)
}
