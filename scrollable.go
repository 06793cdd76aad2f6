package cellui

// ScrollableResponse reports the scroll position.
type ScrollableResponse struct {
	Offset int
	Len    int
}

// ScrollStyle draws the scrollbar.
type ScrollStyle struct {
	Track rune
	Knob  rune
	Style Style
}

// DefaultScrollStyle is a thin track with a heavy knob.
var DefaultScrollStyle = ScrollStyle{Track: '│', Knob: '┃', Style: DefaultStyle()}

// scrollableWidget shows a vertical window over its children, one child
// per row, with a one column scrollbar on the right.
type scrollableWidget struct {
	Base
	style  ScrollStyle
	pos    int
	len    int
	height float32
	offset int
	drag   float32
}

func (w *scrollableWidget) Update(t *Tree, style ScrollStyle) ScrollableResponse {
	w.style = style
	if w.style.Track == 0 {
		w.style = DefaultScrollStyle
	}
	return ScrollableResponse{Offset: w.offset, Len: w.len}
}

func (w *scrollableWidget) Interest() Interest { return MouseInside | KeyboardInput }

func (w *scrollableWidget) scrollUp(delta int) {
	w.pos = max(w.pos-delta, 0)
}

func (w *scrollableWidget) scrollDown(delta int) {
	w.pos = min(w.pos+delta, w.len)
}

func (w *scrollableWidget) Layout(ctx *LayoutCtx, c Constraints) Vec2 {
	children := ctx.Children()
	w.len = len(children)

	c.Max.X = max(c.Max.X-1, 0)
	cons := Loose(c.Max)

	height := len(children)
	if finite(c.Max.Y) {
		height = int(c.Max.Y)
	}

	// the window start is clamped against the child count, not the rows
	// the visible children actually use
	offset := min(w.pos, max(len(children)-height, 0))

	var size Vec2
	end := offset
	for _, child := range children[offset:] {
		if size.Y >= c.Max.Y {
			break
		}
		y := size.Y
		s := ctx.Compute(child, cons)
		ctx.SetPos(child, V(0, y))
		size.X = max(size.X, s.X)
		size.Y += s.Y
		end++
	}
	ctx.Hide(children[:offset]...)
	ctx.Hide(children[end:]...)

	size = size.Min(c.Max)
	w.height = size.Y
	w.offset = offset
	return size.Add(V(1, 0))
}

func (w *scrollableWidget) Paint(ctx *PaintCtx) {
	ctx.PaintChildren()

	r := ctx.Rect().Cells()
	if r.Empty() {
		return
	}
	c := ctx.Canvas()
	x := r.Max.X - 1
	h := r.Height()
	c.VLine(Pos{X: x, Y: r.Min.Y}, h, w.style.Track, w.style.Style)

	knob := 0
	if w.len > 0 && h > 1 {
		knob = int(float32(w.pos) / float32(w.len) * float32(h-1))
	}
	knob = min(max(knob, 0), h-1)
	c.Put(Pos{X: x, Y: r.Min.Y + knob}, w.style.Style.Cell(w.style.Knob))
}

func (w *scrollableWidget) Event(_ *EventCtx, ev Event) Handled {
	var delta float32
	switch ev := ev.(type) {
	case MouseScroll:
		delta = ev.Delta.Y
		if ev.Mods.Has(ModCtrl) {
			delta *= 3
		}
	case MouseDragStart:
		w.drag = 0
		return Bubble
	case MouseDrag:
		// drag deltas are measured from the origin
		delta = ev.Delta.Y - w.drag
		w.drag = ev.Delta.Y
	case KeyPressed:
		switch ev.Key.Code {
		case KeyUp:
			delta = -1
		case KeyDown:
			delta = 1
		case KeyPageUp:
			delta = -w.height
		case KeyPageDown:
			delta = w.height
		case KeyHome:
			w.pos = 0
			return Sink
		case KeyEnd:
			delta = float32(w.len)
		default:
			return Bubble
		}
	default:
		return Bubble
	}

	if delta < 0 {
		w.scrollUp(int(-delta))
	} else {
		w.scrollDown(int(delta))
	}
	return Sink
}

// Scrollable declares a vertically scrolling view over children.
func Scrollable(t *Tree, children func(t *Tree)) Response[ScrollableResponse] {
	return ShowChildren[scrollableWidget, ScrollStyle, ScrollableResponse](t, ScrollStyle{}, children)
}

// StyledScrollable is Scrollable with a custom scrollbar.
func StyledScrollable(t *Tree, style ScrollStyle, children func(t *Tree)) Response[ScrollableResponse] {
	return ShowChildren[scrollableWidget, ScrollStyle, ScrollableResponse](t, style, children)
}
