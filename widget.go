package cellui

// Widget is the capability set the runtime drives every frame. Layout,
// paint and input only ever see a Widget, never the concrete type.
type Widget interface {
	// Layout sizes the widget within c, computing and positioning its
	// children through ctx. The result is clamped into c.
	Layout(ctx *LayoutCtx, c Constraints) Vec2
	// Paint draws the widget and usually its children.
	Paint(ctx *PaintCtx)
	// Interest declares which input event classes the widget wants.
	Interest() Interest
	// Event handles ev and reports whether to stop propagation.
	Event(ctx *EventCtx, ev Event) Handled
	// Flex reports the widget's weight and fit inside a flex container.
	Flex() (float32, FlexFit)
	// Flow reports whether the widget takes part in normal layout.
	Flow() Flow
}

// Updater is a Widget that accepts props of type P once per frame and
// returns a response of type R to the code that declared it.
type Updater[P, R any] interface {
	Widget
	Update(t *Tree, props P) R
}

// Base supplies the default Widget behaviour. Embed it and override what
// the widget needs.
type Base struct{}

// Layout sizes to the largest child, at least c.Min.
func (Base) Layout(ctx *LayoutCtx, c Constraints) Vec2 { return ctx.DefaultLayout(c) }

// Paint paints every child.
func (Base) Paint(ctx *PaintCtx) { ctx.PaintChildren() }

func (Base) Interest() Interest { return InterestNone }

func (Base) Event(*EventCtx, Event) Handled { return Bubble }

func (Base) Flex() (float32, FlexFit) { return 0, FitLoose }

func (Base) Flow() Flow { return Inline }

// Handled is an event handler's verdict.
type Handled uint8

const (
	Bubble Handled = iota // let the next candidate see the event
	Sink                  // stop propagation for this dispatch
)

// IsSink reports whether the event was consumed.
func (h Handled) IsSink() bool { return h == Sink }

func (h Handled) String() string {
	if h == Sink {
		return "sink"
	}
	return "bubble"
}

// rootWidget opens the first registry layer and gives every child the full viewport.
type rootWidget struct {
	Base
}

func (*rootWidget) Layout(ctx *LayoutCtx, c Constraints) Vec2 {
	ctx.NewLayer()
	for _, child := range ctx.Children() {
		ctx.Compute(child, c)
	}
	return c.Max
}
