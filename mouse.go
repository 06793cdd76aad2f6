package cellui

// MouseButton is a pointer button.
type MouseButton uint8

const (
	ButtonPrimary MouseButton = iota
	ButtonSecondary
	ButtonMiddle
)

func (b MouseButton) String() string {
	switch b {
	case ButtonSecondary:
		return "secondary"
	case ButtonMiddle:
		return "middle"
	}
	return "primary"
}

// ButtonState tracks a button across frames. Down and Up last exactly one
// frame before settling into Held and Released.
type ButtonState uint8

const (
	Released ButtonState = iota
	Down
	Held
	Up
)

// IsDown reports whether the button is pressed.
func (s ButtonState) IsDown() bool { return s == Down || s == Held }

func (s ButtonState) interpolate() ButtonState {
	switch s {
	case Down:
		return Held
	case Up:
		return Released
	}
	return s
}

func (s ButtonState) String() string {
	return [...]string{"released", "down", "held", "up"}[s]
}

// RawMouseKind is what the terminal reports for a pointer report.
type RawMouseKind uint8

const (
	RawPress RawMouseKind = iota
	RawRelease
	RawMotion
	RawWheelUp
	RawWheelDown
)

// RawMouse is a single decoded terminal pointer report.
type RawMouse struct {
	Kind   RawMouseKind
	Pos    Pos
	Button MouseButton
	Mods   Modifiers
}

// MouseState turns raw press, release and motion reports into clicks,
// holds and drags.
type MouseState struct {
	origin   Pos
	button   MouseButton
	held     bool
	dragging bool
}

// Update consumes one raw report and returns the pointer events it produces.
func (m *MouseState) Update(raw RawMouse) []MouseInput {
	ev := MouseInput{Pos: raw.Pos, Button: raw.Button, Mods: raw.Mods, Origin: raw.Pos}

	switch raw.Kind {
	case RawPress:
		m.origin = raw.Pos
		m.button = raw.Button
		m.held = true
		m.dragging = false
		ev.Kind = PointerHeld
		return []MouseInput{ev}

	case RawMotion:
		if !m.held {
			ev.Kind = PointerMove
			return []MouseInput{ev}
		}
		ev.Button = m.button
		ev.Origin = m.origin
		ev.Delta = raw.Pos.Sub(m.origin)
		if m.dragging {
			ev.Kind = PointerDrag
			return []MouseInput{ev}
		}
		if raw.Pos == m.origin {
			return nil
		}
		m.dragging = true
		start := ev
		start.Kind = PointerDragStart
		start.Delta = Pos{}
		ev.Kind = PointerDrag
		return []MouseInput{start, ev}

	case RawRelease:
		if !m.held {
			return nil
		}
		dragging := m.dragging
		m.held, m.dragging = false, false

		ev.Origin = m.origin
		switch {
		case !dragging && raw.Pos == m.origin && raw.Button == m.button:
			ev.Kind = PointerClick
		case dragging || raw.Pos != m.origin:
			ev.Kind = PointerDragRelease
			ev.Button = m.button
			ev.Delta = raw.Pos.Sub(m.origin)
		default:
			return nil
		}
		return []MouseInput{ev}

	case RawWheelUp, RawWheelDown:
		ev.Kind = PointerScroll
		ev.Delta = Pos{Y: 1}
		if raw.Kind == RawWheelUp {
			ev.Delta.Y = -1
		}
		return []MouseInput{ev}
	}
	return nil
}
