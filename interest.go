package cellui

import "strings"

// Interest is the set of input event classes a widget wants delivered.
type Interest uint8

const (
	InterestNone  Interest = 0
	MouseInside   Interest = 1 << 0 // pointer events over the widget
	MouseOutside  Interest = 1 << 1 // button events elsewhere
	MouseMove     Interest = 1 << 2 // every pointer move
	Focus         Interest = 1 << 3 // focus gained and lost
	FocusInput    Interest = 1 << 4 // key input while focused
	KeyboardInput Interest = 1 << 5 // key input from the keyboard layer

	MouseAll = MouseInside | MouseOutside | MouseMove
)

var interestNames = [...]string{"mouse_inside", "mouse_outside", "mouse_move", "focus", "focus_input", "key_input"}

// Has reports whether every bit of o is set.
func (i Interest) Has(o Interest) bool { return i&o == o }

// Any reports whether at least one bit of o is set.
func (i Interest) Any(o Interest) bool { return i&o != 0 }

// IsMouse reports whether any pointer interest is set.
func (i Interest) IsMouse() bool { return i.Any(MouseAll) }

func (i Interest) String() string {
	if i == InterestNone {
		return "none"
	}
	var parts []string
	for bit, name := range interestNames {
		if i&(1<<bit) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
