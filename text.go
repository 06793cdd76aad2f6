package cellui

import (
	"fmt"

	"github.com/mattn/go-runewidth"
)

// LabelProps is a single line of styled text.
type LabelProps struct {
	Text  string
	Style Style
}

type labelWidget struct {
	Base
	props LabelProps
	width float32
}

func (w *labelWidget) Update(_ *Tree, props LabelProps) NoResponse {
	w.props = props
	w.width = float32(runewidth.StringWidth(props.Text))
	return NoResponse{}
}

func (w *labelWidget) Layout(_ *LayoutCtx, c Constraints) Vec2 {
	return c.Constrain(V(w.width, 1))
}

func (w *labelWidget) Paint(ctx *PaintCtx) {
	ctx.Canvas().Text(ctx.Rect().Min.Pos(), w.props.Text, w.props.Style)
}

// Label declares a line of text in the default style.
func Label(t *Tree, text string) Response[NoResponse] {
	return StyledLabel(t, text, DefaultStyle())
}

// Labelf declares a formatted line of text.
func Labelf(t *Tree, format string, args ...any) Response[NoResponse] {
	return Label(t, fmt.Sprintf(format, args...))
}

// StyledLabel declares a line of text drawn in style.
func StyledLabel(t *Tree, text string, style Style) Response[NoResponse] {
	return Show[labelWidget, LabelProps, NoResponse](t, LabelProps{Text: text, Style: style})
}
