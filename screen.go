package cellui

import "fmt"

// Screen double-buffers the terminal contents. Widgets paint into the back
// buffer; EndFrame diffs it against the front buffer, which records what the
// terminal is showing, and emits only the changes.
type Screen struct {
	front *Buffer // What's currently displayed
	back  *Buffer // What we're drawing to
}

// NewScreen creates a screen of the given size.
func NewScreen(size Size) *Screen {
	return &Screen{
		front: NewBuffer(size.Width, size.Height),
		back:  NewBuffer(size.Width, size.Height),
	}
}

// Size returns the current screen dimensions.
func (s *Screen) Size() Size {
	return s.back.Size()
}

// Rect returns the screen area in layout space.
func (s *Screen) Rect() Rect {
	return RectFromSize(Vec2{}, s.Size().Vec2())
}

// Buffer returns the back buffer for drawing.
func (s *Screen) Buffer() *Buffer {
	return s.back
}

// Front returns the buffer holding the last emitted frame.
func (s *Screen) Front() *Buffer {
	return s.front
}

// Canvas returns a canvas over the whole back buffer.
func (s *Screen) Canvas() *Canvas {
	return s.back.Canvas()
}

// Resize reallocates both buffers. Both are cleared, so the next frame
// repaints everything.
func (s *Screen) Resize(size Size) {
	s.front.Resize(size.Width, size.Height)
	s.back.Resize(size.Width, size.Height)
}

// EndFrame writes the difference between the back and front buffers to r.
// Nothing is written when no cell changed. After an error the front buffer
// is invalidated, so the next frame repaints everything.
func (s *Screen) EndFrame(r Renderer) error {
	if err := s.endFrame(r); err != nil {
		s.front.Invalidate()
		return fmt.Errorf("end frame: %w", err)
	}
	return nil
}

func (s *Screen) endFrame(r Renderer) error {
	var (
		state      cursorState
		seen       bool
		wroteReset bool
	)

	for pos, change := range s.front.Diff(s.back) {
		if change.Rune == 0 {
			continue // right half of a wide glyph
		}
		if !seen {
			if err := r.Begin(); err != nil {
				return err
			}
			seen = true
		}

		if state.maybeMove(pos) {
			if err := r.MoveTo(pos); err != nil {
				return err
			}
		}

		// A reset here only looks at this cell; a left neighbour whose
		// attributes do not coalesce with it is not reset.
		if change.Attr.Mode == AttrModeNew {
			wroteReset = true
			if err := r.ResetAttr(); err != nil {
				return err
			}
		}

		if attr, ok := state.maybeAttr(change.Attr); ok {
			switch attr.Mode {
			case AttrModeSet, AttrModeNew:
				wroteReset = false
				if err := r.SetAttr(attr.Attr); err != nil {
					return err
				}
			case AttrModeReset:
				wroteReset = true
				if err := r.ResetAttr(); err != nil {
					return err
				}
			}
		}

		if fg, ok := state.maybeFG(change.FG, wroteReset); ok {
			if err := writeColor(fg, r.SetFG, r.ResetFG); err != nil {
				return err
			}
		}
		if bg, ok := state.maybeBG(change.BG, wroteReset); ok {
			if err := writeColor(bg, r.SetBG, r.ResetBG); err != nil {
				return err
			}
		}

		wroteReset = false
		if err := r.Write(change.Rune); err != nil {
			return err
		}
	}

	if !seen {
		return nil
	}

	// park the cursor and leave the terminal in its default state for
	// anything else writing to it
	if state.maybeMove(Pos{}) {
		if err := r.MoveTo(Pos{}); err != nil {
			return err
		}
	}
	for _, reset := range []func() error{r.ResetBG, r.ResetFG, r.ResetAttr, r.End} {
		if err := reset(); err != nil {
			return err
		}
	}
	return nil
}

func writeColor(c Color, set func(Color) error, reset func() error) error {
	switch c.Mode {
	case ColorRGB:
		return set(c)
	case ColorReset:
		return reset()
	}
	return nil
}
