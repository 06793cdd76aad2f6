package cellui

// Paint walks the laid out tree and draws each widget onto a canvas,
// honouring the clip regions recorded by layout.
type Paint struct {
	clip []Rect
}

// Start resets the clip stack for a new frame.
func (p *Paint) Start() {
	p.clip = p.clip[:0]
}

// PaintAll paints the tree from the root.
func (p *Paint) PaintAll(t *Tree, l *Layout, c *Canvas) {
	p.paint(t, l, c, t.Root())
}

// paint skips widgets that have no layout this frame.
func (p *Paint) paint(t *Tree, l *Layout, c *Canvas, id WidgetID) {
	node := l.Get(id)
	if node == nil {
		return
	}
	n := t.Get(id)
	if n == nil {
		return
	}

	if node.Clipping {
		p.pushClip(node.Rect)
		defer p.popClip()
	}

	t.enter(id)
	defer t.exit(id)

	n.widget.Paint(&PaintCtx{
		tree:   t,
		layout: l,
		paint:  p,
		canvas: c,
		id:     id,
		rect:   node.Rect,
	})
}

func (p *Paint) pushClip(r Rect) {
	if k := len(p.clip); k > 0 {
		r = r.Intersect(p.clip[k-1])
	}
	p.clip = append(p.clip, r)
}

func (p *Paint) popClip() {
	p.clip = p.clip[:len(p.clip)-1]
}

// PaintCtx is handed to Widget.Paint.
type PaintCtx struct {
	tree   *Tree
	layout *Layout
	paint  *Paint
	canvas *Canvas
	id     WidgetID
	rect   Rect
}

// ID returns the widget being painted.
func (c *PaintCtx) ID() WidgetID { return c.id }

// Rect returns the widget's absolute rectangle.
func (c *PaintCtx) Rect() Rect { return c.rect }

// Tree returns the widget tree.
func (c *PaintCtx) Tree() *Tree { return c.tree }

// Layout returns the frame's layout.
func (c *PaintCtx) Layout() *Layout { return c.layout }

// Children returns the children of the widget being painted.
func (c *PaintCtx) Children() []WidgetID { return c.tree.Children(c.id) }

// Paint paints child.
func (c *PaintCtx) Paint(child WidgetID) {
	c.paint.paint(c.tree, c.layout, c.canvas, child)
}

// PaintChildren paints every child in order.
func (c *PaintCtx) PaintChildren() {
	for _, child := range c.Children() {
		c.Paint(child)
	}
}

// Canvas returns a canvas limited to the widget's rectangle and the active clip.
func (c *PaintCtx) Canvas() *Canvas {
	return c.Clipped().Crop(c.rect.Cells())
}

// Clipped returns a canvas limited only by the active clip.
func (c *PaintCtx) Clipped() *Canvas {
	if k := len(c.paint.clip); k > 0 {
		return c.canvas.Crop(c.paint.clip[k-1].Cells())
	}
	return c.canvas
}
