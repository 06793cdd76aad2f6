package cellui

// Two-pass flex layout for rows and columns.
//
// Pass 1: inline children without flex get loose main-axis bounds and report
// their natural size.
// Pass 2: the main-axis space left over is split between flexible children
// by weight; tight children must fill their share, loose ones may not.
// Relative children are then sized unbounded and anchored inside the
// container, and inline children are positioned by the alignment policies.

// List configures a row or column.
type List struct {
	Axis       Axis
	Spacing    float32
	MainSize   MainAxisSize
	MainAlign  MainAxisAlignment
	CrossAlign CrossAxisAlignment
}

// RowList lays children out left to right.
func RowList() List { return List{Axis: Horizontal} }

// ColumnList lays children out top to bottom.
func ColumnList() List { return List{Axis: Vertical} }

func (l List) WithSpacing(spacing float32) List {
	l.Spacing = spacing
	return l
}

func (l List) WithMainSize(size MainAxisSize) List {
	l.MainSize = size
	return l
}

func (l List) WithMainAlign(align MainAxisAlignment) List {
	l.MainAlign = align
	return l
}

func (l List) WithCrossAlign(align CrossAxisAlignment) List {
	l.CrossAlign = align
	return l
}

// Show declares the list with its children.
func (l List) Show(t *Tree, children func(t *Tree)) Response[NoResponse] {
	return ShowChildren[listWidget, List, NoResponse](t, l, children)
}

// Row declares a default row.
func Row(t *Tree, children func(t *Tree)) Response[NoResponse] {
	return RowList().Show(t, children)
}

// Column declares a default column.
func Column(t *Tree, children func(t *Tree)) Response[NoResponse] {
	return ColumnList().Show(t, children)
}

type listWidget struct {
	Base
	props List
}

func (w *listWidget) Update(_ *Tree, props List) NoResponse {
	w.props = props
	return NoResponse{}
}

// a stretching list asks its own parent to stretch it
func (w *listWidget) Flex() (float32, FlexFit) {
	return w.props.CrossAlign.flex(), FitTight
}

func (w *listWidget) Layout(ctx *LayoutCtx, c Constraints) Vec2 {
	axis := w.props.Axis
	children := ctx.Children()

	var inline int
	for _, child := range children {
		if wd := ctx.Widget(child); wd != nil && !wd.Flow().IsRelative() {
			inline++
		}
	}

	totalMain := w.props.Spacing * float32(max(inline-1, 0))
	var maxCross float32

	crossMax := axis.Cross(c.Max)
	var crossMin float32
	if w.props.CrossAlign == CrossStretch {
		crossMin = crossMax
	}

	mainMax := axis.Main(c.Max)
	if !finite(mainMax) {
		mainMax = axis.Main(c.Min)
	}

	var totalFlex float32
	for _, child := range children {
		wd := ctx.Widget(child)
		if wd == nil || wd.Flow().IsRelative() {
			continue
		}
		flex, _ := flexOf(wd)
		totalFlex += flex
		if flex != 0 {
			continue
		}

		size := ctx.Compute(child, Constraints{
			Min: axis.Pack(0, crossMin),
			Max: axis.Pack(Inf, crossMax),
		})
		totalMain += axis.Main(size)
		maxCross = max(maxCross, axis.Cross(size))
	}

	remaining := max(mainMax-totalMain, 0)
	for _, child := range children {
		wd := ctx.Widget(child)
		if wd == nil || wd.Flow().IsRelative() {
			continue
		}
		flex, fit := flexOf(wd)
		if flex == 0 {
			continue
		}

		share := flex * remaining / totalFlex
		cons := Constraints{
			Min: axis.Pack(0, crossMin),
			Max: axis.Pack(share, crossMax),
		}
		if fit == FitTight {
			cons.Min = axis.Pack(share, crossMin)
		}

		size := ctx.Compute(child, cons)
		totalMain += axis.Main(size)
		maxCross = max(maxCross, axis.Cross(size))
	}

	cross := max(maxCross, axis.Cross(c.Min))
	main := totalMain
	if w.props.MainSize == MainMax {
		if m := axis.Main(c.Max); finite(m) {
			main = max(totalMain, m)
		}
	}

	container := c.Constrain(axis.Pack(main, cross))

	for _, child := range children {
		wd := ctx.Widget(child)
		if wd == nil {
			continue
		}
		flow := wd.Flow()
		if !flow.IsRelative() {
			continue
		}
		ctx.Compute(child, Unbounded())
		ctx.SetPos(child, flow.Resolve(container))
	}

	leading, between := w.props.MainAlign.spacing(main-totalMain, inline)
	between += w.props.Spacing

	next := leading
	for _, child := range children {
		wd := ctx.Widget(child)
		if wd == nil || wd.Flow().IsRelative() {
			continue
		}
		size := ctx.Size(child)
		offset := w.props.CrossAlign.offset(cross, axis.Cross(size))
		ctx.SetPos(child, axis.Pack(next, offset))
		next += axis.Main(size) + between
	}

	return container
}

// flexOf returns w's flex factor, treating negative and NaN factors as 0.
func flexOf(w Widget) (float32, FlexFit) {
	flex, fit := w.Flex()
	if !(flex > 0) {
		flex = 0
	}
	return flex, fit
}
