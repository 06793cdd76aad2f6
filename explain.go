package cellui

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ExplainRenderer writes a human readable log of renderer commands. Runs of
// written glyphs are grouped on one indented line with spaces shown as '░'.
type ExplainRenderer struct {
	NullRenderer

	out     io.Writer
	pending bool
}

// NewExplainRenderer returns an ExplainRenderer writing to w.
func NewExplainRenderer(w io.Writer) *ExplainRenderer {
	return &ExplainRenderer{out: w}
}

func (e *ExplainRenderer) line(format string, args ...any) error {
	if e.pending {
		e.pending = false
		if _, err := io.WriteString(e.out, "\n"); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(e.out, format+"\n", args...)
	return err
}

func (e *ExplainRenderer) Begin() error { return e.line("begin frame") }
func (e *ExplainRenderer) End() error { return e.line("end frame") }
func (e *ExplainRenderer) ClearScreen() error { return e.line("  clear screen") }
func (e *ExplainRenderer) MoveTo(p Pos) error { return e.line("  move to %v", p) }
func (e *ExplainRenderer) SetFG(c Color) error { return e.line("  set fg %v", c) }
func (e *ExplainRenderer) SetBG(c Color) error { return e.line("  set bg %v", c) }
func (e *ExplainRenderer) SetAttr(a Attribute) error { return e.line("  set attr %v", a) }
func (e *ExplainRenderer) ResetFG() error { return e.line("  reset fg") }
func (e *ExplainRenderer) ResetBG() error { return e.line("  reset bg") }
func (e *ExplainRenderer) ResetAttr() error { return e.line("  reset attr") }

func (e *ExplainRenderer) Write(r rune) error {
	if !e.pending {
		e.pending = true
		if _, err := io.WriteString(e.out, "    "); err != nil {
			return err
		}
	}
	s := string(r)
	switch {
	case r == ' ':
		s = "░"
	case !strconv.IsPrint(r):
		s = strings.Trim(strconv.QuoteRune(r), "'")
	}
	_, err := io.WriteString(e.out, s)
	return err
}

// ExplainFrame paints with fn onto s and returns the explained command stream
// for the resulting frame.
func ExplainFrame(s *Screen, fn func(c *Canvas)) (string, error) {
	fn(s.Canvas())
	var buf bytes.Buffer
	if err := s.EndFrame(NewExplainRenderer(&buf)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DebugFrame paints with fn onto s and returns the raw escape sequences of the
// frame. With humanize set, each sequence is put on its own line without the
// leading ESC[.
func DebugFrame(humanize bool, s *Screen, fn func(c *Canvas)) (string, error) {
	fn(s.Canvas())
	var buf bytes.Buffer
	if err := s.EndFrame(NewTermRenderer(&buf)); err != nil {
		return "", err
	}
	if !humanize {
		return strconv.Quote(buf.String()), nil
	}
	parts := strings.Split(buf.String(), "\x1b[")
	var out strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		out.WriteString(p)
		out.WriteByte('\n')
	}
	return out.String(), nil
}
