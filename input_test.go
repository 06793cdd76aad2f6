package cellui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLog struct {
	lines []string
}

func (l *eventLog) add(name string, ev Event) {
	l.lines = append(l.lines, name+":"+strings.TrimPrefix(fmt.Sprintf("%T", ev), "cellui."))
}

func (l *eventLog) reset() { l.lines = nil }

// of returns the events name received, in order.
func (l *eventLog) of(name string) []string {
	var out []string
	for _, line := range l.lines {
		if n, ev, _ := strings.Cut(line, ":"); n == name {
			out = append(out, ev)
		}
	}
	return out
}

type recProps struct {
	Name     string
	Log      *eventLog
	Interest Interest
	Size     Vec2 // zero fills the constraints
	Sink     bool
}

// recorder logs every event it receives.
type recorder struct {
	Base
	props recProps
}

func (w *recorder) Update(_ *Tree, props recProps) NoResponse {
	w.props = props
	return NoResponse{}
}

func (w *recorder) Layout(_ *LayoutCtx, c Constraints) Vec2 {
	if w.props.Size != (Vec2{}) {
		return w.props.Size
	}
	return c.Size()
}

func (w *recorder) Interest() Interest { return w.props.Interest }

func (w *recorder) Event(_ *EventCtx, ev Event) Handled {
	w.props.Log.add(w.props.Name, ev)
	if w.props.Sink {
		return Sink
	}
	return Bubble
}

func rec(t *Tree, props recProps) WidgetID {
	return Show[recorder, recProps, NoResponse](t, props).ID
}

// clipper clips its children to a 3x1 box and lets them be any size.
type clipper struct {
	Base
}

func (*clipper) Update(*Tree, NoResponse) NoResponse { return NoResponse{} }

func (*clipper) Layout(ctx *LayoutCtx, c Constraints) Vec2 {
	ctx.Clip()
	for _, child := range ctx.Children() {
		ctx.Compute(child, Unbounded())
	}
	return V(3, 1)
}

func step(t *testing.T, app *App, ev TermEvent, build func(t *Tree)) {
	t.Helper()
	require.NoError(t, app.Step(ev, NullRenderer{}, func(term *Term) { build(term.Tree()) }))
}

func press(x, y int) MouseInput {
	return MouseInput{Kind: PointerHeld, Pos: Pos{X: x, Y: y}, Button: ButtonPrimary}
}

func click(x, y int) MouseInput {
	return MouseInput{Kind: PointerClick, Pos: Pos{X: x, Y: y}, Button: ButtonPrimary}
}

func move(x, y int) MouseInput {
	return MouseInput{Kind: PointerMove, Pos: Pos{X: x, Y: y}}
}

func TestHitTestTopmostLayerWins(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 5})
	build := func(t *Tree) {
		rec(t, recProps{Name: "page", Log: log, Interest: MouseInside, Sink: true})
		Float(t, FloatProps{}, func(t *Tree) {
			rec(t, recProps{Name: "popup", Log: log, Interest: MouseInside, Sink: true})
		})
	}
	step(t, app, nil, build)

	log.reset()
	step(t, app, press(2, 2), build)

	require.Len(t, app.Input().Hit(), 2)
	assert.Equal(t, []string{"MouseEnter", "MouseHeld"}, log.of("popup"))
	assert.Empty(t, log.of("page"), "the sinking popup shields the page")
}

func TestHitTestBubblesToLowerWidgets(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 5})
	build := func(t *Tree) {
		rec(t, recProps{Name: "page", Log: log, Interest: MouseInside})
		Float(t, FloatProps{}, func(t *Tree) {
			rec(t, recProps{Name: "popup", Log: log, Interest: MouseInside})
		})
	}
	step(t, app, nil, build)
	log.reset()
	step(t, app, press(1, 1), build)

	assert.Equal(t, []string{
		"popup:MouseEnter", "page:MouseEnter",
		"popup:MouseHeld", "page:MouseHeld",
	}, log.lines)
}

func TestOutsideEvents(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 5})
	build := func(t *Tree) {
		Column(t, func(t *Tree) {
			rec(t, recProps{Name: "a", Log: log, Interest: MouseInside | MouseOutside, Size: V(5, 1)})
			rec(t, recProps{Name: "b", Log: log, Interest: MouseInside | MouseOutside, Size: V(5, 1)})
		})
	}
	step(t, app, nil, build)
	log.reset()
	step(t, app, press(0, 0), build)

	assert.Equal(t, []string{"MouseEnter", "MouseHeld"}, log.of("a"))
	assert.Equal(t, []string{"MouseHeld"}, log.of("b"), "b only hears the outside copy")
}

func TestOutsideOnlyWidgetIsHit(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 5})
	build := func(t *Tree) {
		Column(t, func(t *Tree) {
			rec(t, recProps{Name: "popup", Log: log, Interest: MouseOutside, Size: V(5, 1)})
		})
	}
	step(t, app, nil, build)

	step(t, app, press(1, 0), build)
	assert.Empty(t, log.of("popup"), "a press on the popup is not outside it")
	assert.Len(t, app.Input().Hit(), 1)

	step(t, app, click(8, 3), build)
	assert.Equal(t, []string{"MouseReleased"}, log.of("popup"))
}

func TestHitTestFollowsLayout(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 10})
	var top float32
	build := func(t *Tree) {
		Column(t, func(t *Tree) {
			Margin(t, Insets{Top: top}, func(t *Tree) {
				rec(t, recProps{Name: "a", Log: log, Interest: MouseInside, Size: V(5, 1)})
			})
		})
	}
	step(t, app, nil, build)
	step(t, app, move(0, 0), build)
	require.Equal(t, []string{"MouseEnter"}, log.of("a"))

	top = 3
	step(t, app, nil, build)
	log.reset()

	step(t, app, click(0, 0), build)
	assert.Equal(t, []string{"MouseLeave"}, log.of("a"), "the pointer no longer covers a")
}

func TestEnterLeave(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 5})
	var id WidgetID
	build := func(t *Tree) {
		Column(t, func(t *Tree) {
			id = rec(t, recProps{Name: "a", Log: log, Interest: MouseInside, Size: V(5, 1)})
		})
	}
	step(t, app, nil, build)

	step(t, app, move(1, 0), build)
	assert.Equal(t, []WidgetID{id}, app.Input().Entered())
	step(t, app, move(2, 0), build)
	step(t, app, move(10, 3), build)

	assert.Equal(t, []string{"MouseEnter", "MouseLeave"}, log.of("a"))
	assert.Empty(t, app.Input().Entered())
}

func TestMouseMoveBroadcast(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 5})
	build := func(t *Tree) {
		Column(t, func(t *Tree) {
			rec(t, recProps{Name: "watcher", Log: log, Interest: MouseMove, Size: V(1, 1)})
		})
	}
	step(t, app, nil, build)
	step(t, app, move(15, 4), build)

	assert.Equal(t, []string{"MouseMoved"}, log.of("watcher"))
}

func TestHitTestRespectsClipping(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 5})
	build := func(t *Tree) {
		Column(t, func(t *Tree) {
			ShowChildren[clipper, NoResponse, NoResponse](t, NoResponse{}, func(t *Tree) {
				rec(t, recProps{Name: "wide", Log: log, Interest: MouseInside, Size: V(10, 1)})
			})
		})
	}
	step(t, app, nil, build)

	step(t, app, press(5, 0), build)
	assert.Empty(t, log.of("wide"), "outside the clip")

	step(t, app, click(1, 0), build)
	assert.Equal(t, []string{"MouseEnter", "MouseReleased"}, log.of("wide"))
}

func TestKeyboardDispatch(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 5}, WithFocusCycling(false))
	var focused WidgetID
	sink := false
	build := func(t *Tree) {
		Column(t, func(t *Tree) {
			rec(t, recProps{Name: "global", Log: log, Interest: KeyboardInput, Size: V(1, 1), Sink: sink})
			focused = rec(t, recProps{Name: "field", Log: log, Interest: Focus | FocusInput, Size: V(1, 1)})
		})
	}
	step(t, app, nil, build)
	app.Input().SetSelection(focused)
	step(t, app, nil, build)
	assert.Equal(t, []string{"FocusGained"}, log.of("field"))

	log.reset()
	step(t, app, KeyInput{Key: Char('x')}, build)
	assert.Equal(t, []string{"KeyPressed"}, log.of("global"))
	assert.Equal(t, []string{"KeyPressed"}, log.of("field"))

	sink = true
	step(t, app, nil, build)
	log.reset()
	step(t, app, KeyInput{Key: Char('y')}, build)
	assert.Equal(t, []string{"KeyPressed"}, log.of("global"))
	assert.Empty(t, log.of("field"), "a sinking keyboard widget stops delivery")
}

func TestKeyboardNoDoubleDelivery(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 5})
	var id WidgetID
	build := func(t *Tree) {
		Column(t, func(t *Tree) {
			id = rec(t, recProps{Name: "both", Log: log, Interest: KeyboardInput | Focus, Size: V(1, 1)})
		})
	}
	step(t, app, nil, build)
	app.Input().SetSelection(id)
	step(t, app, nil, build)
	log.reset()

	step(t, app, KeyInput{Key: Char('k')}, build)
	assert.Equal(t, []string{"KeyPressed"}, log.of("both"))
}

func TestFocus(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 5})
	var a, b WidgetID
	showB := true
	build := func(t *Tree) {
		Column(t, func(t *Tree) {
			a = rec(t, recProps{Name: "a", Log: log, Interest: Focus, Size: V(1, 1)})
			if showB {
				b = rec(t, recProps{Name: "b", Log: log, Interest: Focus, Size: V(1, 1)})
			}
		})
	}
	step(t, app, nil, build)

	t.Run("tab cycles in layout order", func(t *testing.T) {
		step(t, app, KeyInput{Key: Named(KeyTab)}, build)
		assert.Equal(t, a, app.Input().Selection())
		step(t, app, KeyInput{Key: Named(KeyTab)}, build)
		assert.Equal(t, b, app.Input().Selection())
		step(t, app, KeyInput{Key: Named(KeyTab)}, build)
		assert.Equal(t, a, app.Input().Selection(), "wraps around")
		step(t, app, KeyInput{Key: Named(KeyBackTab)}, build)
		assert.Equal(t, b, app.Input().Selection())
	})

	t.Run("lost is sent before gained", func(t *testing.T) {
		step(t, app, nil, build)
		log.reset()
		app.Input().SetSelection(a)
		step(t, app, nil, build)
		assert.Equal(t, []string{"b:FocusLost", "a:FocusGained"}, log.lines)
	})

	t.Run("removed selection is dropped", func(t *testing.T) {
		app.Input().SetSelection(b)
		step(t, app, nil, build)
		showB = false
		step(t, app, nil, build)
		require.Equal(t, b, app.Input().Selection())

		step(t, app, nil, build)
		assert.True(t, app.Input().Selection().IsZero())
	})
}

func TestButtonStates(t *testing.T) {
	app := NewApp(Size{Width: 10, Height: 3})
	build := func(*Tree) {}
	step(t, app, nil, build)
	in := app.Input()

	require.NoError(t, app.Step(press(1, 1), NullRenderer{}, func(term *Term) {
		assert.Equal(t, Down, term.Input().Button(ButtonPrimary), "edge is visible while building")
	}))
	assert.Equal(t, Held, in.Button(ButtonPrimary))

	require.NoError(t, app.Step(click(1, 1), NullRenderer{}, func(term *Term) {
		assert.Equal(t, Up, term.Input().Button(ButtonPrimary))
	}))
	assert.Equal(t, Released, in.Button(ButtonPrimary))
	assert.False(t, in.Button(ButtonPrimary).IsDown())
}

func TestDragGoesToPressTarget(t *testing.T) {
	log := &eventLog{}
	app := NewApp(Size{Width: 20, Height: 5})
	build := func(t *Tree) {
		Column(t, func(t *Tree) {
			rec(t, recProps{Name: "handle", Log: log, Interest: MouseInside, Size: V(2, 1)})
		})
	}
	step(t, app, nil, build)

	var mouse MouseState
	for _, raw := range []RawMouse{
		{Kind: RawPress, Pos: Pos{X: 0, Y: 0}, Button: ButtonPrimary},
		{Kind: RawMotion, Pos: Pos{X: 8, Y: 3}, Button: ButtonPrimary},
		{Kind: RawRelease, Pos: Pos{X: 9, Y: 3}, Button: ButtonPrimary},
	} {
		for _, ev := range mouse.Update(raw) {
			step(t, app, ev, build)
		}
	}

	assert.Equal(t, []string{
		"MouseEnter", "MouseHeld",
		"MouseDragStart", "MouseDrag", "MouseDragReleased",
		"MouseLeave",
	}, log.of("handle"))
}
