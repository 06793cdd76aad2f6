package cellui

// LayoutNode is the per-frame layout record of one widget.
type LayoutNode struct {
	// Rect is relative to the parent while the pass runs and absolute once
	// the frame's layout has been resolved.
	Rect     Rect
	Interest Interest
	// Clipping is set when the widget clips its descendants.
	Clipping bool
	// ClippedBy is the nearest clipping ancestor, zero when there is none.
	ClippedBy WidgetID
}

// Layout computes sizes and positions for the whole tree and records the
// mouse and keyboard registries used by input dispatch.
type Layout struct {
	nodes     map[WidgetID]*LayoutNode
	mouse     Layered[Interest]
	keyboard  Layered[struct{}]
	focusable []WidgetID
	clip      []WidgetID
	rect      Rect
}

// NewLayout returns an empty layout for a viewport of rect.
func NewLayout(rect Rect) *Layout {
	return &Layout{
		nodes: make(map[WidgetID]*LayoutNode),
		rect:  rect,
	}
}

// Get returns the layout of id, or nil if it was not laid out.
func (l *Layout) Get(id WidgetID) *LayoutNode {
	return l.nodes[id]
}

// Len returns the number of laid out widgets.
func (l *Layout) Len() int { return len(l.nodes) }

// Rect returns the viewport.
func (l *Layout) Rect() Rect { return l.rect }

// Resize changes the viewport used by the next full pass.
func (l *Layout) Resize(rect Rect) {
	l.rect = rect
}

// Mouse returns the pointer interest registry.
func (l *Layout) Mouse() *Layered[Interest] { return &l.mouse }

// Keyboard returns the keyboard interest registry.
func (l *Layout) Keyboard() *Layered[struct{}] { return &l.keyboard }

// Focusable lists widgets declaring focus interest, in layout order.
func (l *Layout) Focusable() []WidgetID { return l.focusable }

// Finish drops the layouts of removed widgets and recomputes everything
// from the root unless keep is set. A frame triggered by a bare pointer
// move keeps last frame's geometry.
func (l *Layout) Finish(t *Tree, keep bool) {
	for _, id := range t.Removed() {
		delete(l.nodes, id)
	}
	if keep {
		return
	}

	l.clear()
	l.compute(t, t.Root(), Tight(l.rect.Size()))
	l.resolve(t)
}

func (l *Layout) clear() {
	clear(l.nodes)
	clear(l.clip)
	l.clip = l.clip[:0]
	l.focusable = l.focusable[:0]
	l.mouse.Clear()
	l.keyboard.Clear()
}

// compute runs id's Layout within c, records its interest and clipping, and
// returns the size it chose, clamped into c.
func (l *Layout) compute(t *Tree, id WidgetID, c Constraints) Vec2 {
	c = c.Normalize()
	n := t.Get(id)
	if n == nil {
		return c.Min
	}

	t.enter(id)
	defer t.exit(id)

	ctx := &LayoutCtx{tree: t, layout: l, id: id}
	size := c.Constrain(n.widget.Layout(ctx, c))

	interest := n.widget.Interest()
	if interest.IsMouse() {
		l.mouse.Insert(id, interest)
	}
	if interest.Has(KeyboardInput) {
		l.keyboard.Insert(id, struct{}{})
	}
	if interest.Any(Focus | FocusInput) {
		l.focusable = append(l.focusable, id)
	}

	if root, ok := l.mouse.CurrentRoot(); ok && root == id {
		l.mouse.PopLayer()
		l.keyboard.PopLayer()
	}

	clipping := len(l.clip) > 0 && l.clip[len(l.clip)-1] == id
	if clipping {
		l.clip = l.clip[:len(l.clip)-1]
	}
	var clippedBy WidgetID
	if k := len(l.clip); k > 0 {
		clippedBy = l.clip[k-1]
	}

	l.nodes[id] = &LayoutNode{
		Rect:      RectFromSize(Vec2{}, size),
		Interest:  interest,
		Clipping:  clipping,
		ClippedBy: clippedBy,
	}
	return size
}

// resolve turns parent-relative rects into absolute ones, top down.
func (l *Layout) resolve(t *Tree) {
	type item struct {
		id     WidgetID
		origin Vec2
	}
	queue := []item{{id: t.Root()}}
	for len(queue) > 0 {
		it := queue[0]
		queue = queue[1:]
		node := l.nodes[it.id]
		if node == nil {
			continue
		}
		node.Rect = node.Rect.Translate(it.origin)
		for _, child := range t.Children(it.id) {
			queue = append(queue, item{id: child, origin: node.Rect.Min})
		}
	}
}

// hide drops the layouts of ids and their descendants.
func (l *Layout) hide(t *Tree, ids ...WidgetID) {
	queue := append([]WidgetID(nil), ids...)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		delete(l.nodes, id)
		queue = append(queue, t.Children(id)...)
	}
}

// LayoutCtx is handed to Widget.Layout.
type LayoutCtx struct {
	tree   *Tree
	layout *Layout
	id     WidgetID
}

// ID returns the widget being laid out.
func (c *LayoutCtx) ID() WidgetID { return c.id }

// Tree returns the widget tree.
func (c *LayoutCtx) Tree() *Tree { return c.tree }

// Children returns the children of the widget being laid out.
func (c *LayoutCtx) Children() []WidgetID { return c.tree.Children(c.id) }

// Widget returns the widget of child, or nil when it does not exist.
func (c *LayoutCtx) Widget(child WidgetID) Widget {
	if n := c.tree.Get(child); n != nil {
		return n.widget
	}
	return nil
}

// Compute lays out child within cons and returns its size.
func (c *LayoutCtx) Compute(child WidgetID, cons Constraints) Vec2 {
	return c.layout.compute(c.tree, child, cons)
}

// Size returns the size child was given this pass.
func (c *LayoutCtx) Size(child WidgetID) Vec2 {
	if n := c.layout.nodes[child]; n != nil {
		return n.Rect.Size()
	}
	return Vec2{}
}

// SetPos places child at p relative to the widget being laid out.
func (c *LayoutCtx) SetPos(child WidgetID, p Vec2) {
	if n := c.layout.nodes[child]; n != nil {
		n.Rect.SetPos(p)
	}
}

// NewLayer makes the widget being laid out the owner of a new registry
// layer. Its descendants are hit-tested above everything registered before.
func (c *LayoutCtx) NewLayer() {
	c.layout.mouse.PushLayer(c.id)
	c.layout.keyboard.PushLayer(c.id)
}

// Clip makes the widget clip the paint and hit regions of its descendants.
func (c *LayoutCtx) Clip() {
	c.layout.clip = append(c.layout.clip, c.id)
}

// Hide removes the layouts of ids and their subtrees so they are neither
// painted nor hit-tested.
func (c *LayoutCtx) Hide(ids ...WidgetID) {
	c.layout.hide(c.tree, ids...)
}

// Viewport returns the full layout viewport.
func (c *LayoutCtx) Viewport() Rect { return c.layout.rect }

// DefaultLayout gives every child cons and sizes to the largest of them,
// but never below cons.Min.
func (c *LayoutCtx) DefaultLayout(cons Constraints) Vec2 {
	var size Vec2
	for _, child := range c.Children() {
		size = size.Max(c.Compute(child, cons))
	}
	return cons.ConstrainMin(size)
}
