package cellui

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// FrameTiming is how long each stage of the last frame took.
type FrameTiming struct {
	Build  time.Duration
	Layout time.Duration
	Paint  time.Duration
	Flush  time.Duration
}

func (f FrameTiming) String() string {
	return fmt.Sprintf("build:%v layout:%v paint:%v flush:%v",
		f.Build.Round(time.Microsecond),
		f.Layout.Round(time.Microsecond),
		f.Paint.Round(time.Microsecond),
		f.Flush.Round(time.Microsecond))
}

// App owns one UI: the widget tree, its layout, the input dispatcher, the
// paint pass and the double-buffered screen. Every frame runs in a fixed
// order: reconcile, lay out, dispatch, paint, diff.
type App struct {
	tree   *Tree
	layout *Layout
	input  *Input
	paint  Paint
	screen *Screen
	logger *slog.Logger
	theme  Theme

	focusCycling bool
	needsClear   bool
	quit         bool
	frames       uint64
	blend        float32
	fixedTimer   bool
	modes        Modes

	timing     FrameTiming
	buildStart time.Time
}

// Option configures an App or a Terminal.
type Option func(*options)

type options struct {
	logger       *slog.Logger
	focusCycling bool
	wrap         func(Renderer) Renderer
	theme        Theme
}

func defaultOptions() options {
	return options{
		logger:       slog.New(slog.DiscardHandler),
		focusCycling: true,
		theme:        ThemeDark,
	}
}

// WithTheme sets the theme handed to build functions.
func WithTheme(th Theme) Option {
	return func(o *options) {
		o.theme = th
	}
}

// WithLogger sets the logger for frame diagnostics. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithFocusCycling enables or disables Tab and BackTab moving focus when
// no widget handled the key. It is on by default.
func WithFocusCycling(on bool) Option {
	return func(o *options) {
		o.focusCycling = on
	}
}

// WithRendererWrap wraps the renderer a Terminal draws through, for example
// in a MetricsRenderer or a TeeRenderer.
func WithRendererWrap(wrap func(Renderer) Renderer) Option {
	return func(o *options) {
		o.wrap = wrap
	}
}

// NewApp returns an app for a screen of size.
func NewApp(size Size, opts ...Option) *App {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &App{
		tree:         NewTree(),
		layout:       NewLayout(RectFromSize(Vec2{}, size.Vec2())),
		input:        NewInput(),
		screen:       NewScreen(size),
		logger:       o.logger,
		theme:        o.theme,
		focusCycling: o.focusCycling,
		blend:        1,
		modes:        NullRenderer{},
	}
}

func (a *App) Tree() *Tree          { return a.tree }
func (a *App) Layout() *Layout      { return a.layout }
func (a *App) Input() *Input        { return a.input }
func (a *App) Screen() *Screen      { return a.screen }
func (a *App) Frames() uint64       { return a.frames }
func (a *App) Timing() FrameTiming  { return a.timing }
func (a *App) QuitRequested() bool  { return a.quit }
func (a *App) setModes(m Modes)     { a.modes = m }
func (a *App) setFixedTimer(b bool) { a.fixedTimer = b }

// Resize changes the viewport. The next render clears the terminal and
// repaints everything.
func (a *App) Resize(size Size) {
	a.layout.Resize(RectFromSize(Vec2{}, size.Vec2()))
	a.screen.Resize(size)
	a.needsClear = true
	a.logger.Debug("resize", "width", size.Width, "height", size.Height)
}

// Start opens a frame: the tree is ready for Begin calls and pending focus
// changes are delivered.
func (a *App) Start() {
	a.tree.Start()
	a.input.Start(a.tree, a.layout)
	a.paint.Start()
	a.buildStart = time.Now()
}

// Handle routes ev to widgets and reports whether one of them sank it.
// Call it between Start and building the frame.
func (a *App) Handle(ev TermEvent) bool {
	switch ev := ev.(type) {
	case Resize:
		a.Resize(ev.Size)
	case Blend:
		a.blend = ev.Factor
	case Quit:
		a.quit = true
	}

	h := a.input.Handle(a.tree, a.layout, ev)
	if h.IsSink() || !a.focusCycling {
		return h.IsSink()
	}

	if key, ok := ev.(KeyInput); ok && key.Mods == ModNone {
		switch key.Key.Code {
		case KeyTab:
			return a.input.FocusNext(a.layout)
		case KeyBackTab:
			return a.input.FocusPrev(a.layout)
		}
	}
	return false
}

// Finish closes the frame: unvisited widgets are trimmed, layout is
// recomputed and button edges settle.
func (a *App) Finish() {
	a.timing.Build = time.Since(a.buildStart)

	a.tree.Finish()
	if n := len(a.tree.Removed()); n > 0 {
		a.logger.Debug("trimmed widgets", "count", n)
	}

	start := time.Now()
	a.layout.Finish(a.tree, a.input.LastWasMove())
	a.timing.Layout = time.Since(start)

	a.input.Finish()
}

// Render paints the laid out tree into the back buffer and flushes the
// difference from the last frame to r.
func (a *App) Render(r Renderer) error {
	start := time.Now()
	canvas := a.screen.Canvas()
	canvas.Erase()
	a.paint.PaintAll(a.tree, a.layout, canvas)
	a.timing.Paint = time.Since(start)

	start = time.Now()
	if a.needsClear {
		if err := r.ClearScreen(); err != nil {
			return fmt.Errorf("clear screen: %w", err)
		}
		a.needsClear = false
	}
	err := a.screen.EndFrame(r)
	a.timing.Flush = time.Since(start)
	a.frames++

	if err != nil {
		a.logger.Warn("frame flush failed", "frame", a.frames, "err", err)
		return fmt.Errorf("render frame %d: %w", a.frames, err)
	}
	a.logger.Debug("frame", "n", a.frames, "timing", a.timing.String())
	return nil
}

// Step runs a whole frame for ev, which may be nil.
func (a *App) Step(ev TermEvent, r Renderer, build func(term *Term)) error {
	a.Start()
	if ev != nil {
		a.Handle(ev)
	}
	if build != nil {
		build(&Term{app: a})
	}
	a.Finish()
	return a.Render(r)
}

// DumpTree writes the widget tree with its rects as YAML.
func (a *App) DumpTree(w io.Writer) error {
	return a.tree.DumpYAML(w, a.layout)
}

// Term is handed to the build function every frame.
type Term struct {
	app *App
}

// Tree returns the tree to declare widgets on.
func (t *Term) Tree() *Tree { return t.app.tree }

// Size returns the screen size.
func (t *Term) Size() Size { return t.app.screen.Size() }

// Rect returns the viewport in layout space.
func (t *Term) Rect() Rect { return t.app.layout.Rect() }

// Frame returns how many frames have been rendered.
func (t *Term) Frame() uint64 { return t.app.frames }

// Blend returns the interpolation factor of the last timer tick, or 1 when
// frames are only drawn in response to input.
func (t *Term) Blend() float32 {
	if !t.app.fixedTimer {
		return 1
	}
	return t.app.blend
}

// Theme returns the app's theme.
func (t *Term) Theme() Theme { return t.app.theme }

// Input returns the input dispatcher.
func (t *Term) Input() *Input { return t.app.input }

// RequestQuit stops the frame loop after this frame.
func (t *Term) RequestQuit() { t.app.quit = true }

// SetTitle sets the terminal window title.
func (t *Term) SetTitle(title string) error { return t.app.modes.SetTitle(title) }

// Timing returns the stage durations of the previous frame.
func (t *Term) Timing() FrameTiming { return t.app.timing }

// DumpTree writes the widget tree with its rects as YAML.
func (t *Term) DumpTree(w io.Writer) error { return t.app.DumpTree(w) }
