package cellui

import "slices"

// Input routes terminal events to widgets using the registries and rects
// recorded by the last layout.
type Input struct {
	pos     Vec2
	hasPos  bool
	buttons map[MouseButton]ButtonState
	mods    Modifiers

	hit            []WidgetID
	entered        []WidgetID
	enteredAndSunk []WidgetID

	selection     WidgetID
	lastSelection WidgetID

	last TermEvent
}

// NewInput returns an input dispatcher with every button released.
func NewInput() *Input {
	return &Input{buttons: make(map[MouseButton]ButtonState)}
}

// Pos returns the last known pointer position.
func (in *Input) Pos() (Vec2, bool) { return in.pos, in.hasPos }

// Button returns the state of b.
func (in *Input) Button(b MouseButton) ButtonState { return in.buttons[b] }

// Mods returns the modifiers of the last pointer or key event.
func (in *Input) Mods() Modifiers { return in.mods }

// Hit returns the widgets under the pointer, topmost first.
func (in *Input) Hit() []WidgetID { return in.hit }

// Entered returns the widgets that have seen MouseEnter without MouseLeave.
func (in *Input) Entered() []WidgetID { return in.entered }

// Selection returns the focused widget, zero when nothing is focused.
func (in *Input) Selection() WidgetID { return in.selection }

// SetSelection focuses id. Focus events are sent when the next frame starts.
func (in *Input) SetSelection(id WidgetID) { in.selection = id }

// LastEvent returns the event most recently passed to Handle.
func (in *Input) LastEvent() TermEvent { return in.last }

// LastWasMove reports whether the last event was a bare pointer move.
func (in *Input) LastWasMove() bool {
	ev, ok := in.last.(MouseInput)
	return ok && ev.Kind == PointerMove
}

// Start sends pending focus changes and forgets the previous frame's event.
func (in *Input) Start(t *Tree, l *Layout) {
	in.last = nil
	in.notify(t, l)
}

// Finish moves one-frame button edges to their settled state.
func (in *Input) Finish() {
	for b, s := range in.buttons {
		in.buttons[b] = s.interpolate()
	}
}

// Handle dispatches ev and reports whether a widget sank it.
func (in *Input) Handle(t *Tree, l *Layout, ev TermEvent) Handled {
	in.last = ev
	switch ev := ev.(type) {
	case MouseInput:
		in.mods = ev.Mods
		return in.pointer(t, l, ev)
	case KeyInput:
		in.mods = ev.Mods
		return in.key(t, l, ev)
	}
	return Bubble
}

func (in *Input) pointer(t *Tree, l *Layout, ev MouseInput) Handled {
	pos := ev.Pos.Vec2()

	switch ev.Kind {
	case PointerMove:
		in.moved(t, l, pos, true)
		return Bubble

	// the layout may have moved under a still pointer
	case PointerHeld, PointerClick, PointerScroll:
		in.moved(t, l, pos, false)
	}

	switch ev.Kind {
	case PointerHeld:
		in.setButton(ev.Button, true)
		return in.button(t, l, ev.Button, true)

	case PointerClick:
		in.setButton(ev.Button, false)
		return in.button(t, l, ev.Button, false)

	// drags go to whatever was hit where the drag started
	case PointerDragStart:
		return in.dispatch(t, l, MouseDragStart{Pos: pos, Button: ev.Button, Mods: in.mods})

	case PointerDrag:
		return in.dispatch(t, l, MouseDrag{
			Origin: ev.Origin.Vec2(),
			Pos:    pos,
			Delta:  ev.Delta.Vec2(),
			Button: ev.Button,
			Mods:   in.mods,
		})

	case PointerDragRelease:
		in.setButton(ev.Button, false)
		h := in.dispatch(t, l, MouseDragReleased{
			Origin: ev.Origin.Vec2(),
			Pos:    pos,
			Delta:  ev.Delta.Vec2(),
			Button: ev.Button,
			Mods:   in.mods,
		})
		in.moved(t, l, pos, false)
		return h

	case PointerScroll:
		return in.dispatch(t, l, MouseScroll{Pos: pos, Delta: ev.Delta.Vec2(), Mods: in.mods})
	}
	return Bubble
}

func (in *Input) setButton(b MouseButton, down bool) {
	state := in.buttons[b]
	switch {
	case down && !state.IsDown():
		in.buttons[b] = Down
	case !down && state.IsDown():
		in.buttons[b] = Up
	}
}

// moved updates the pointer position, optionally broadcasting MouseMoved,
// then refreshes the hit set and sends enter and leave events.
func (in *Input) moved(t *Tree, l *Layout, pos Vec2, broadcast bool) {
	in.pos, in.hasPos = pos, true

	if broadcast {
		ev := MouseMoved{Pos: pos}
		for id, interest := range l.mouse.All() {
			if interest.Has(MouseMove) {
				in.emit(t, l, id, ev)
			}
		}
	}

	in.hit = in.hitTest(l, pos, in.hit[:0])
	in.sendEnter(t, l)
	in.sendLeave(t, l)
}

// hitTest appends every mouse-registered widget whose rect, cut down by
// its chain of clipping ancestors, contains pos. Topmost layers come first.
func (in *Input) hitTest(l *Layout, pos Vec2, hit []WidgetID) []WidgetID {
	for id := range l.mouse.All() {
		node := l.Get(id)
		if node == nil {
			continue
		}
		rect := node.Rect
		for parent := node.ClippedBy; !parent.IsZero(); {
			clip := l.Get(parent)
			if clip == nil {
				break
			}
			rect = rect.Intersect(clip.Rect)
			parent = clip.ClippedBy
		}
		if rect.Contains(pos) {
			hit = append(hit, id)
		}
	}
	return hit
}

// wantsInside reports whether id asked for pointer events over itself.
func wantsInside(l *Layout, id WidgetID) bool {
	node := l.Get(id)
	return node != nil && node.Interest.Has(MouseInside)
}

func (in *Input) sendEnter(t *Tree, l *Layout) {
	for _, id := range in.hit {
		if !wantsInside(l, id) {
			continue
		}
		if !slices.Contains(in.entered, id) {
			in.entered = append(in.entered, id)
			if h, _ := in.emit(t, l, id, MouseEnter{}); h.IsSink() {
				in.enteredAndSunk = append(in.enteredAndSunk, id)
				break
			}
		}
		if slices.Contains(in.enteredAndSunk, id) {
			break
		}
	}
}

func (in *Input) sendLeave(t *Tree, l *Layout) {
	var gone []WidgetID
	for _, id := range in.entered {
		if !slices.Contains(in.hit, id) {
			in.emit(t, l, id, MouseLeave{})
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		in.entered = slices.DeleteFunc(in.entered, func(e WidgetID) bool { return e == id })
		in.enteredAndSunk = slices.DeleteFunc(in.enteredAndSunk, func(e WidgetID) bool { return e == id })
	}
}

// button sends the inside event to the hit set until one widget sinks it,
// then the outside event to every MouseOutside widget that was not hit.
func (in *Input) button(t *Tree, l *Layout, b MouseButton, down bool) Handled {
	event := func(inside bool) Event {
		if down {
			return MouseHeld{Inside: inside, Pos: in.pos, Button: b, Mods: in.mods}
		}
		return MouseReleased{Inside: inside, Pos: in.pos, Button: b, Mods: in.mods}
	}

	resp := in.dispatch(t, l, event(true))

	outside := event(false)
	for id, interest := range l.mouse.All() {
		if interest.Has(MouseOutside) && !slices.Contains(in.hit, id) {
			in.emit(t, l, id, outside)
		}
	}
	return resp
}

// dispatch sends ev to the MouseInside widgets of the hit set, topmost
// first, stopping at the first sink.
func (in *Input) dispatch(t *Tree, l *Layout, ev Event) Handled {
	for _, id := range slices.Clone(in.hit) {
		if !wantsInside(l, id) {
			continue
		}
		if h, _ := in.emit(t, l, id, ev); h.IsSink() {
			return Sink
		}
	}
	return Bubble
}

// key offers the press to the keyboard registry, topmost first, then to the
// focused widget if nothing sank it and the widget has not seen it yet.
func (in *Input) key(t *Tree, l *Layout, ev KeyInput) Handled {
	kp := KeyPressed{Key: ev.Key, Mods: ev.Mods}

	var delivered []WidgetID
	for id := range l.keyboard.All() {
		h, ok := in.emit(t, l, id, kp)
		if !ok {
			continue
		}
		if h.IsSink() {
			return Sink
		}
		delivered = append(delivered, id)
	}

	sel := in.selection
	if sel.IsZero() || slices.Contains(delivered, sel) {
		return Bubble
	}
	node := l.Get(sel)
	if node == nil || !node.Interest.Any(FocusInput|KeyboardInput) {
		return Bubble
	}
	h, _ := in.emit(t, l, sel, kp)
	return h
}

// FocusNext moves focus to the next focusable widget in layout order,
// wrapping around. It reports whether anything is focusable.
func (in *Input) FocusNext(l *Layout) bool {
	return in.cycleFocus(l, 1)
}

// FocusPrev moves focus to the previous focusable widget.
func (in *Input) FocusPrev(l *Layout) bool {
	return in.cycleFocus(l, -1)
}

func (in *Input) cycleFocus(l *Layout, delta int) bool {
	items := l.Focusable()
	if len(items) == 0 {
		return false
	}
	current := slices.Index(items, in.selection)
	switch {
	case current < 0 && delta > 0:
		current = 0
	case current < 0:
		current = len(items) - 1
	default:
		current = (current + len(items) + delta) % len(items)
	}
	in.selection = items[current]
	return true
}

// notify sends FocusLost and FocusGained when the selection changed since
// the last frame. A selection that no longer exists is dropped.
func (in *Input) notify(t *Tree, l *Layout) {
	if !in.selection.IsZero() && !t.Contains(in.selection) {
		in.selection = WidgetID{}
	}
	current, last := in.selection, in.lastSelection
	if current == last {
		return
	}
	if !last.IsZero() {
		in.emit(t, l, last, FocusLost{})
	}
	if !current.IsZero() {
		in.emit(t, l, current, FocusGained{})
	}
	in.lastSelection = current
}

// emit delivers ev to id with its widget checked out of the tree for the
// duration of the call. It reports false when id no longer exists.
func (in *Input) emit(t *Tree, l *Layout, id WidgetID, ev Event) (Handled, bool) {
	n := t.Get(id)
	if n == nil {
		return Bubble, false
	}
	w := n.widget
	n.widget = nil
	t.enter(id)
	defer func() {
		t.exit(id)
		n.widget = w
	}()

	ctx := &EventCtx{tree: t, layout: l, input: in, id: id}
	return w.Event(ctx, ev), true
}

// EventCtx is handed to Widget.Event.
type EventCtx struct {
	tree   *Tree
	layout *Layout
	input  *Input
	id     WidgetID
}

// ID returns the widget receiving the event.
func (c *EventCtx) ID() WidgetID { return c.id }

// Tree returns the widget tree.
func (c *EventCtx) Tree() *Tree { return c.tree }

// Rect returns the widget's rect from the last layout.
func (c *EventCtx) Rect() Rect {
	if n := c.layout.Get(c.id); n != nil {
		return n.Rect
	}
	return Rect{}
}

// Input returns the dispatcher's state.
func (c *EventCtx) Input() *Input { return c.input }

// RequestFocus focuses the widget receiving the event.
func (c *EventCtx) RequestFocus() { c.input.selection = c.id }

// Focus focuses id.
func (c *EventCtx) Focus(id WidgetID) { c.input.selection = id }

// Blur drops focus if the receiving widget holds it.
func (c *EventCtx) Blur() {
	if c.input.selection == c.id {
		c.input.selection = WidgetID{}
	}
}

// IsFocused reports whether the receiving widget holds focus.
func (c *EventCtx) IsFocused() bool { return c.input.selection == c.id }
