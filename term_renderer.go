package cellui

import (
	"bytes"
	"fmt"
	"io"

	"github.com/charmbracelet/x/ansi"
)

// Escape sequences written by TermRenderer.
const (
	seqBeginSync    = "\x1b[?2026h"
	seqEndSync      = "\x1b[?2026l"
	seqClearScreen  = "\x1b[2J"
	seqResetFG      = "\x1b[39m"
	seqResetBG      = "\x1b[49m"
	seqResetAttr    = "\x1b[0m"
	seqHideCursor   = "\x1b[?25l"
	seqShowCursor   = "\x1b[?25h"
	seqCaptureMouse = "\x1b[?1000h\x1b[?1002h\x1b[?1003h\x1b[?1006h\x1b[?1015h"
	seqReleaseMouse = "\x1b[?1000l\x1b[?1002l\x1b[?1003l\x1b[?1006l\x1b[?1015l"
	seqEnterAlt     = "\x1b[?1049h"
	seqLeaveAlt     = "\x1b[?1049l"
	seqLineWrapOn   = "\x1b[?7h"
	seqLineWrapOff  = "\x1b[?7l"
)

// TermRenderer turns renderer commands into terminal escape sequences.
// Frame output is collected in memory and written to the terminal in one
// call on End. Mode toggles are written straight through.
type TermRenderer struct {
	out io.Writer
	buf bytes.Buffer

	written int // bytes written by the last End
}

var _ Renderer = (*TermRenderer)(nil)

// NewTermRenderer creates a renderer writing to w.
func NewTermRenderer(w io.Writer) *TermRenderer {
	return &TermRenderer{out: w}
}

// LastFrameBytes returns how many bytes the most recent frame wrote.
func (t *TermRenderer) LastFrameBytes() int {
	return t.written
}

func (t *TermRenderer) Begin() error {
	t.buf.WriteString(seqBeginSync)
	return nil
}

func (t *TermRenderer) End() error {
	t.buf.WriteString(seqEndSync)
	n, err := t.out.Write(t.buf.Bytes())
	t.written = n
	t.buf.Reset()
	if err != nil {
		return fmt.Errorf("failed to flush frame: %w", err)
	}
	return nil
}

// MoveTo writes ESC[row;col;H with 1-based coordinates.
func (t *TermRenderer) MoveTo(p Pos) error {
	var scratch [32]byte
	b := append(scratch[:0], "\x1b["...)
	b = appendInt(b, p.Y+1)
	b = append(b, ';')
	b = appendInt(b, p.X+1)
	b = append(b, ";H"...)
	t.buf.Write(b)
	return nil
}

func (t *TermRenderer) SetFG(c Color) error {
	t.writeColor("\x1b[38;2;", c)
	return nil
}

func (t *TermRenderer) SetBG(c Color) error {
	t.writeColor("\x1b[48;2;", c)
	return nil
}

func (t *TermRenderer) writeColor(prefix string, c Color) {
	var scratch [32]byte
	b := append(scratch[:0], prefix...)
	b = appendInt(b, int(c.R))
	b = append(b, ';')
	b = appendInt(b, int(c.G))
	b = append(b, ';')
	b = appendInt(b, int(c.B))
	b = append(b, 'm')
	t.buf.Write(b)
}

// SetAttr writes one SGR sequence per set attribute, lowest bit first.
func (t *TermRenderer) SetAttr(a Attribute) error {
	for _, c := range attrCodes {
		if a.Has(c.attr) {
			t.buf.Write([]byte{0x1b, '[', c.code, 'm'})
		}
	}
	return nil
}

func (t *TermRenderer) ResetFG() error {
	t.buf.WriteString(seqResetFG)
	return nil
}

func (t *TermRenderer) ResetBG() error {
	t.buf.WriteString(seqResetBG)
	return nil
}

func (t *TermRenderer) ResetAttr() error {
	t.buf.WriteString(seqResetAttr)
	return nil
}

func (t *TermRenderer) Write(r rune) error {
	t.buf.WriteRune(r)
	return nil
}

func (t *TermRenderer) writeString(s string) error {
	if _, err := io.WriteString(t.out, s); err != nil {
		return fmt.Errorf("failed to write to terminal: %w", err)
	}
	return nil
}

func (t *TermRenderer) ClearScreen() error { return t.writeString(seqClearScreen) }
func (t *TermRenderer) HideCursor() error { return t.writeString(seqHideCursor) }
func (t *TermRenderer) ShowCursor() error { return t.writeString(seqShowCursor) }
func (t *TermRenderer) CaptureMouse() error { return t.writeString(seqCaptureMouse) }
func (t *TermRenderer) ReleaseMouse() error { return t.writeString(seqReleaseMouse) }
func (t *TermRenderer) EnterAltScreen() error { return t.writeString(seqEnterAlt) }
func (t *TermRenderer) LeaveAltScreen() error { return t.writeString(seqLeaveAlt) }
func (t *TermRenderer) EnableLineWrap() error { return t.writeString(seqLineWrapOn) }
func (t *TermRenderer) DisableLineWrap() error { return t.writeString(seqLineWrapOff) }

// SetTitle writes OSC 2.
func (t *TermRenderer) SetTitle(title string) error {
	return t.writeString(ansi.SetWindowTitle(title))
}

// appendInt appends an integer to a byte slice without allocation.
func appendInt(b []byte, n int) []byte {
	if n == 0 {
		return append(b, '0')
	}
	if n < 0 {
		b = append(b, '-')
		n = -n
	}
	var scratch [20]byte
	i := len(scratch)
	for n > 0 {
		i--
		scratch[i] = byte('0' + n%10)
		n /= 10
	}
	return append(b, scratch[i:]...)
}
