package cellui

// MouseAreaResponse reports what the pointer did over the area since the
// previous frame.
type MouseAreaResponse struct {
	Hovered  bool
	Held     bool
	Clicked  bool
	Pos      Vec2
	Scrolled float32
	// Dragging is set while a primary drag that started over the area is
	// in progress. DragDelta is the offset from where it started.
	Dragging  bool
	DragDelta Vec2
}

type mouseAreaState uint8

const (
	areaIdle mouseAreaState = iota
	areaHovering
	areaPressed
)

type mouseAreaWidget struct {
	Base
	state     mouseAreaState
	pos       Vec2
	clicked   bool
	scrolled  float32
	dragging  bool
	dragDelta Vec2
}

func (w *mouseAreaWidget) Update(*Tree, NoResponse) MouseAreaResponse {
	resp := MouseAreaResponse{
		Hovered:   w.state != areaIdle,
		Held:      w.state == areaPressed,
		Clicked:   w.clicked,
		Pos:       w.pos,
		Scrolled:  w.scrolled,
		Dragging:  w.dragging,
		DragDelta: w.dragDelta,
	}
	w.clicked = false
	w.scrolled = 0
	return resp
}

func (w *mouseAreaWidget) Interest() Interest { return MouseInside }

func (w *mouseAreaWidget) Event(_ *EventCtx, ev Event) Handled {
	if pos, ok := EventPos(ev); ok {
		w.pos = pos
	}
	switch ev := ev.(type) {
	case MouseEnter:
		if w.state == areaIdle {
			w.state = areaHovering
		}
	case MouseLeave:
		w.state = areaIdle
	case MouseHeld:
		if ev.Button == ButtonPrimary {
			w.state = areaPressed
		}
	case MouseReleased:
		if ev.Button == ButtonPrimary {
			w.clicked = w.state == areaPressed
			w.state = areaHovering
		}
	case MouseScroll:
		w.scrolled += ev.Delta.Y
	case MouseDragStart:
		w.dragging = ev.Button == ButtonPrimary
		w.dragDelta = Vec2{}
	case MouseDrag:
		if ev.Button == ButtonPrimary {
			w.dragging = true
			w.dragDelta = ev.Delta
		}
	case MouseDragReleased:
		w.dragging = false
		w.dragDelta = ev.Delta
		w.state = areaIdle
	}
	return Bubble
}

// MouseArea declares an area that tracks the pointer over its children.
func MouseArea(t *Tree, children func(t *Tree)) Response[MouseAreaResponse] {
	return ShowChildren[mouseAreaWidget, NoResponse, MouseAreaResponse](t, NoResponse{}, children)
}

// KeyAreaProps configures a key area. A focusable area only hears keys
// while it holds focus and takes focus when clicked.
type KeyAreaProps struct {
	Focusable bool
}

// KeyResponse reports the last key pressed since the previous frame.
type KeyResponse struct {
	Pressed bool
	Bind    Keybind
	Focused bool
}

// Is reports whether b was pressed.
func (r KeyResponse) Is(b Keybind) bool {
	return r.Pressed && r.Bind == b
}

type keyAreaWidget struct {
	Base
	props   KeyAreaProps
	pressed bool
	bind    Keybind
	focused bool
}

func (w *keyAreaWidget) Update(_ *Tree, props KeyAreaProps) KeyResponse {
	w.props = props
	resp := KeyResponse{Pressed: w.pressed, Bind: w.bind, Focused: w.focused}
	w.pressed = false
	return resp
}

func (w *keyAreaWidget) Interest() Interest {
	if w.props.Focusable {
		return Focus | FocusInput | MouseInside
	}
	return KeyboardInput
}

func (w *keyAreaWidget) Event(ctx *EventCtx, ev Event) Handled {
	switch ev := ev.(type) {
	case KeyPressed:
		w.pressed = true
		w.bind = ev.Keybind()
	case FocusGained:
		w.focused = true
	case FocusLost:
		w.focused = false
	case MouseHeld:
		if w.props.Focusable && ev.Inside {
			ctx.RequestFocus()
		}
	}
	return Bubble
}

// KeyArea declares a key area around children.
func KeyArea(t *Tree, props KeyAreaProps, children func(t *Tree)) Response[KeyResponse] {
	return ShowChildren[keyAreaWidget, KeyAreaProps, KeyResponse](t, props, children)
}

// KeyPressedBind reports whether b was pressed since the previous frame.
func KeyPressedBind(t *Tree, b Keybind) bool {
	return Show[keyAreaWidget, KeyAreaProps, KeyResponse](t, KeyAreaProps{}).Value.Is(b)
}
