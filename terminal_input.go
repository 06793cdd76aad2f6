package cellui

import (
	"unicode"
	"unicode/utf8"

	uv "github.com/charmbracelet/ultraviolet"
)

// inputDecoder turns raw terminal bytes into TermEvents. Incomplete escape
// sequences are kept until the next Feed.
type inputDecoder struct {
	dec     uv.EventDecoder
	mouse   MouseState
	pending []byte
	pressed MouseButton
}

// Feed decodes data and returns the events it completes.
func (d *inputDecoder) Feed(data []byte) []TermEvent {
	buf := append(d.pending, data...)
	d.pending = d.pending[:0]

	var out []TermEvent
	for len(buf) > 0 {
		n, ev := d.dec.Decode(buf)
		if n == 0 {
			d.pending = append(d.pending, buf...)
			break
		}
		buf = buf[n:]
		out = d.translate(out, ev)
	}
	return out
}

func (d *inputDecoder) translate(out []TermEvent, ev uv.Event) []TermEvent {
	switch ev := ev.(type) {
	case uv.KeyPressEvent:
		if k, mods, ok := translateKey(ev); ok {
			out = append(out, KeyInput{Key: k, Mods: mods})
		}
	case uv.WindowSizeEvent:
		out = append(out, Resize{Size: Size{Width: ev.Width, Height: ev.Height}})
	case uv.MouseClickEvent:
		m := ev.Mouse()
		button, ok := translateButton(m.Button)
		if !ok {
			break
		}
		d.pressed = button
		out = d.pointer(out, RawPress, m, button)
	case uv.MouseReleaseEvent:
		m := ev.Mouse()
		button, ok := translateButton(m.Button)
		if !ok {
			button = d.pressed
		}
		out = d.pointer(out, RawRelease, m, button)
	case uv.MouseMotionEvent:
		m := ev.Mouse()
		button, _ := translateButton(m.Button)
		out = d.pointer(out, RawMotion, m, button)
	case uv.MouseWheelEvent:
		m := ev.Mouse()
		switch m.Button {
		case uv.MouseWheelUp:
			out = d.pointer(out, RawWheelUp, m, ButtonPrimary)
		case uv.MouseWheelDown:
			out = d.pointer(out, RawWheelDown, m, ButtonPrimary)
		}
	}
	return out
}

func (d *inputDecoder) pointer(out []TermEvent, kind RawMouseKind, m uv.Mouse, button MouseButton) []TermEvent {
	raw := RawMouse{
		Kind:   kind,
		Pos:    Pos{X: m.X, Y: m.Y},
		Button: button,
		Mods:   translateMods(m.Mod),
	}
	for _, ev := range d.mouse.Update(raw) {
		out = append(out, ev)
	}
	return out
}

func translateButton(b uv.MouseButton) (MouseButton, bool) {
	switch b {
	case uv.MouseLeft:
		return ButtonPrimary, true
	case uv.MouseRight:
		return ButtonSecondary, true
	case uv.MouseMiddle:
		return ButtonMiddle, true
	}
	return 0, false
}

func translateMods(m uv.KeyMod) Modifiers {
	var mods Modifiers
	if m.Contains(uv.ModShift) {
		mods |= ModShift
	}
	if m.Contains(uv.ModCtrl) {
		mods |= ModCtrl
	}
	if m.Contains(uv.ModAlt) || m.Contains(uv.ModMeta) {
		mods |= ModAlt
	}
	return mods
}

var namedKeys = map[rune]KeyCode{
	uv.KeyUp:        KeyUp,
	uv.KeyDown:      KeyDown,
	uv.KeyLeft:      KeyLeft,
	uv.KeyRight:     KeyRight,
	uv.KeyPgUp:      KeyPageUp,
	uv.KeyPgDown:    KeyPageDown,
	uv.KeyHome:      KeyHome,
	uv.KeyEnd:       KeyEnd,
	uv.KeyInsert:    KeyInsert,
	uv.KeyDelete:    KeyDelete,
	uv.KeyBackspace: KeyBackspace,
	uv.KeyEscape:    KeyEscape,
	uv.KeyEnter:     KeyEnter,
	uv.KeyTab:       KeyTab,
}

func translateKey(ev uv.KeyPressEvent) (Key, Modifiers, bool) {
	mods := translateMods(ev.Mod)

	if code, ok := namedKeys[ev.Code]; ok {
		if code == KeyTab && mods.Has(ModShift) {
			return Named(KeyBackTab), mods &^ ModShift, true
		}
		return Named(code), mods, true
	}

	if ev.Code >= uv.KeyF1 && ev.Code <= uv.KeyF24 {
		return Function(int(ev.Code-uv.KeyF1) + 1), mods, true
	}

	// shifted text already carries the shift
	if ev.Text != "" {
		r, _ := utf8.DecodeRuneInString(ev.Text)
		if r != utf8.RuneError && unicode.IsPrint(r) {
			return Char(r), mods &^ ModShift, true
		}
	}
	if ev.Code <= unicode.MaxRune && unicode.IsPrint(ev.Code) {
		return Char(ev.Code), mods, true
	}
	return Key{}, 0, false
}
