package cellui

// Renderer receives the commands produced by Screen.EndFrame.
//
// SetFG and SetBG are only called with RGB colors; Reset and Reuse are
// expressed through ResetFG/ResetBG or by emitting nothing.
type Renderer interface {
	Begin() error
	End() error
	ClearScreen() error
	MoveTo(p Pos) error
	SetFG(c Color) error
	SetBG(c Color) error
	SetAttr(a Attribute) error
	ResetFG() error
	ResetBG() error
	ResetAttr() error
	Write(r rune) error

	Modes
}

// Modes are terminal toggles written immediately, outside the diff path.
type Modes interface {
	SetTitle(title string) error
	HideCursor() error
	ShowCursor() error
	CaptureMouse() error
	ReleaseMouse() error
	EnterAltScreen() error
	LeaveAltScreen() error
	EnableLineWrap() error
	DisableLineWrap() error
}

// NullRenderer discards everything.
type NullRenderer struct{}

var _ Renderer = NullRenderer{}

func (NullRenderer) Begin() error { return nil }
func (NullRenderer) End() error { return nil }
func (NullRenderer) ClearScreen() error { return nil }
func (NullRenderer) MoveTo(Pos) error { return nil }
func (NullRenderer) SetFG(Color) error { return nil }
func (NullRenderer) SetBG(Color) error { return nil }
func (NullRenderer) SetAttr(Attribute) error { return nil }
func (NullRenderer) ResetFG() error { return nil }
func (NullRenderer) ResetBG() error { return nil }
func (NullRenderer) ResetAttr() error { return nil }
func (NullRenderer) Write(rune) error { return nil }
func (NullRenderer) SetTitle(string) error { return nil }
func (NullRenderer) HideCursor() error { return nil }
func (NullRenderer) ShowCursor() error { return nil }
func (NullRenderer) CaptureMouse() error { return nil }
func (NullRenderer) ReleaseMouse() error { return nil }
func (NullRenderer) EnterAltScreen() error { return nil }
func (NullRenderer) LeaveAltScreen() error { return nil }
func (NullRenderer) EnableLineWrap() error { return nil }
func (NullRenderer) DisableLineWrap() error { return nil }

// TeeRenderer forwards every command to Left and then Right, stopping at the
// first error.
type TeeRenderer struct {
	Left, Right Renderer
}

var _ Renderer = TeeRenderer{}

// Tee returns a renderer that writes to both l and r.
func Tee(l, r Renderer) TeeRenderer {
	return TeeRenderer{Left: l, Right: r}
}

func both(l, r func() error) error {
	if err := l(); err != nil {
		return err
	}
	return r()
}

func (t TeeRenderer) Begin() error { return both(t.Left.Begin, t.Right.Begin) }
func (t TeeRenderer) End() error { return both(t.Left.End, t.Right.End) }
func (t TeeRenderer) ClearScreen() error { return both(t.Left.ClearScreen, t.Right.ClearScreen) }
func (t TeeRenderer) ResetFG() error { return both(t.Left.ResetFG, t.Right.ResetFG) }
func (t TeeRenderer) ResetBG() error { return both(t.Left.ResetBG, t.Right.ResetBG) }
func (t TeeRenderer) ResetAttr() error { return both(t.Left.ResetAttr, t.Right.ResetAttr) }
func (t TeeRenderer) HideCursor() error { return both(t.Left.HideCursor, t.Right.HideCursor) }
func (t TeeRenderer) ShowCursor() error { return both(t.Left.ShowCursor, t.Right.ShowCursor) }

func (t TeeRenderer) CaptureMouse() error {
	return both(t.Left.CaptureMouse, t.Right.CaptureMouse)
}

func (t TeeRenderer) ReleaseMouse() error {
	return both(t.Left.ReleaseMouse, t.Right.ReleaseMouse)
}

func (t TeeRenderer) EnterAltScreen() error {
	return both(t.Left.EnterAltScreen, t.Right.EnterAltScreen)
}

func (t TeeRenderer) LeaveAltScreen() error {
	return both(t.Left.LeaveAltScreen, t.Right.LeaveAltScreen)
}

func (t TeeRenderer) EnableLineWrap() error {
	return both(t.Left.EnableLineWrap, t.Right.EnableLineWrap)
}

func (t TeeRenderer) DisableLineWrap() error {
	return both(t.Left.DisableLineWrap, t.Right.DisableLineWrap)
}

func (t TeeRenderer) MoveTo(p Pos) error {
	if err := t.Left.MoveTo(p); err != nil {
		return err
	}
	return t.Right.MoveTo(p)
}

func (t TeeRenderer) SetFG(c Color) error {
	if err := t.Left.SetFG(c); err != nil {
		return err
	}
	return t.Right.SetFG(c)
}

func (t TeeRenderer) SetBG(c Color) error {
	if err := t.Left.SetBG(c); err != nil {
		return err
	}
	return t.Right.SetBG(c)
}

func (t TeeRenderer) SetAttr(a Attribute) error {
	if err := t.Left.SetAttr(a); err != nil {
		return err
	}
	return t.Right.SetAttr(a)
}

func (t TeeRenderer) Write(r rune) error {
	if err := t.Left.Write(r); err != nil {
		return err
	}
	return t.Right.Write(r)
}

func (t TeeRenderer) SetTitle(title string) error {
	if err := t.Left.SetTitle(title); err != nil {
		return err
	}
	return t.Right.SetTitle(title)
}
