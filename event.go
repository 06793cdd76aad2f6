package cellui

// Event is delivered to Widget.Event.
type Event interface {
	isEvent()
}

type (
	// MouseEnter is sent when the pointer first hits the widget.
	MouseEnter struct{}
	// MouseLeave is sent when a previously entered widget is no longer hit.
	MouseLeave struct{}
	// MouseMoved is broadcast to every widget with MouseMove interest.
	MouseMoved struct {
		Pos Vec2
	}
	// MouseHeld is sent when a button goes down. Inside is false for the
	// copy sent to MouseOutside widgets that were not hit.
	MouseHeld struct {
		Inside bool
		Pos    Vec2
		Button MouseButton
		Mods   Modifiers
	}
	// MouseReleased is sent for a click, a press and release in place.
	MouseReleased struct {
		Inside bool
		Pos    Vec2
		Button MouseButton
		Mods   Modifiers
	}
	MouseDragStart struct {
		Pos    Vec2
		Button MouseButton
		Mods   Modifiers
	}
	// MouseDrag carries the offset from where the drag started.
	MouseDrag struct {
		Origin Vec2
		Pos    Vec2
		Delta  Vec2
		Button MouseButton
		Mods   Modifiers
	}
	MouseDragReleased struct {
		Origin Vec2
		Pos    Vec2
		Delta  Vec2
		Button MouseButton
		Mods   Modifiers
	}
	// MouseScroll has a negative Delta.Y for scrolling up.
	MouseScroll struct {
		Pos   Vec2
		Delta Vec2
		Mods  Modifiers
	}
	KeyPressed struct {
		Key  Key
		Mods Modifiers
	}
	FocusGained struct{}
	FocusLost   struct{}
)

func (MouseEnter) isEvent()        {}
func (MouseLeave) isEvent()        {}
func (MouseMoved) isEvent()        {}
func (MouseHeld) isEvent()         {}
func (MouseReleased) isEvent()     {}
func (MouseDragStart) isEvent()    {}
func (MouseDrag) isEvent()         {}
func (MouseDragReleased) isEvent() {}
func (MouseScroll) isEvent()       {}
func (KeyPressed) isEvent()        {}
func (FocusGained) isEvent()       {}
func (FocusLost) isEvent()         {}

// Keybind returns the bind the key press corresponds to.
func (k KeyPressed) Keybind() Keybind {
	return Keybind{Key: k.Key, Mods: k.Mods}
}

// EventPos returns the pointer position carried by ev, if any.
func EventPos(ev Event) (Vec2, bool) {
	switch ev := ev.(type) {
	case MouseMoved:
		return ev.Pos, true
	case MouseHeld:
		return ev.Pos, true
	case MouseReleased:
		return ev.Pos, true
	case MouseDragStart:
		return ev.Pos, true
	case MouseDrag:
		return ev.Pos, true
	case MouseDragReleased:
		return ev.Pos, true
	case MouseScroll:
		return ev.Pos, true
	}
	return Vec2{}, false
}

// EventButton returns the button carried by ev, if any.
func EventButton(ev Event) (MouseButton, bool) {
	switch ev := ev.(type) {
	case MouseHeld:
		return ev.Button, true
	case MouseReleased:
		return ev.Button, true
	case MouseDragStart:
		return ev.Button, true
	case MouseDrag:
		return ev.Button, true
	case MouseDragReleased:
		return ev.Button, true
	}
	return 0, false
}

// IsPrimary reports whether ev is a primary button event.
func IsPrimary(ev Event) bool {
	b, ok := EventButton(ev)
	return ok && b == ButtonPrimary
}

// TermEvent is an input event from the terminal or the frame timer.
type TermEvent interface {
	isTermEvent()
}

// PointerKind classifies a MouseInput.
type PointerKind uint8

const (
	PointerMove PointerKind = iota
	PointerClick
	PointerHeld
	PointerDragStart
	PointerDrag
	PointerDragRelease
	PointerScroll
)

func (k PointerKind) String() string {
	return [...]string{"move", "click", "held", "drag_start", "drag", "drag_release", "scroll"}[k]
}

type (
	// Resize reports a new terminal size.
	Resize struct {
		Size Size
	}
	// MouseInput is a pointer event after click and drag detection.
	// Origin and Delta are only meaningful for drags; Delta.Y is the
	// direction of a scroll.
	MouseInput struct {
		Kind   PointerKind
		Pos    Pos
		Button MouseButton
		Origin Pos
		Delta  Pos
		Mods   Modifiers
	}
	// KeyInput is a key press.
	KeyInput struct {
		Key  Key
		Mods Modifiers
	}
	// Blend is a fixed-rate timer tick. Factor is the fraction of the frame
	// interval that elapsed, for interpolation.
	Blend struct {
		Factor float32
	}
	// Quit asks the frame driver to stop.
	Quit struct{}
)

func (Resize) isTermEvent()     {}
func (MouseInput) isTermEvent() {}
func (KeyInput) isTermEvent()   {}
func (Blend) isTermEvent()      {}
func (Quit) isTermEvent()       {}
