package cellui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/x/ansi"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

var (
	// ErrNotTerminal is returned when the input is not a terminal.
	ErrNotTerminal = errors.New("not a terminal")
	// ErrClosed is returned when a stopped Terminal is started again.
	ErrClosed = errors.New("terminal closed")
)

// Terminal owns a tty: raw mode, output modes and the input and resize
// streams feeding a frame loop.
type Terminal struct {
	in     *os.File
	out    *os.File
	cfg    Config
	opts   []Option
	logger *slog.Logger

	tr       *TermRenderer
	renderer Renderer

	mu        sync.Mutex
	state     *term.State
	started   bool
	closed    bool
	altScreen bool
}

// NewTerminal prepares in and out for drawing. Nothing is written until
// Start.
func NewTerminal(in, out *os.File, cfg Config, opts ...Option) (*Terminal, error) {
	if fd := int(in.Fd()); !term.IsTerminal(fd) {
		return nil, fmt.Errorf("%w: fd %d", ErrNotTerminal, fd)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	th, err := ThemeByName(cfg.Theme)
	if err != nil {
		return nil, err
	}
	// an explicit WithTheme still wins
	opts = append([]Option{WithTheme(th)}, opts...)

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := &Terminal{
		in:     in,
		out:    out,
		cfg:    cfg,
		opts:   opts,
		logger: o.logger,
		tr:     NewTermRenderer(out),
	}
	t.renderer = t.tr
	if o.wrap != nil {
		t.renderer = o.wrap(t.tr)
	}
	return t, nil
}

// Renderer returns the renderer frames are drawn through.
func (t *Terminal) Renderer() Renderer { return t.renderer }

// Size queries the kernel for the terminal dimensions.
func (t *Terminal) Size() (Size, error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return Size{}, fmt.Errorf("failed to get terminal size: %w", err)
	}
	if ws.Col == 0 || ws.Row == 0 {
		return Size{Width: 80, Height: 24}, nil
	}
	return Size{Width: int(ws.Col), Height: int(ws.Row)}, nil
}

// Start enters raw mode and switches on the configured output modes.
func (t *Terminal) Start() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return ErrClosed
	}
	if t.started {
		return nil
	}

	state, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	t.state = state
	t.started = true

	r := t.tr
	steps := []func() error{r.DisableLineWrap}
	if t.cfg.UseAltScreen {
		steps = append(steps, r.EnterAltScreen)
		t.altScreen = true
	}
	if t.cfg.HideCursor {
		steps = append(steps, r.HideCursor)
	}
	if t.cfg.MouseCapture {
		steps = append(steps, r.CaptureMouse)
	}
	if t.cfg.Title != "" {
		steps = append(steps, func() error { return r.SetTitle(t.cfg.Title) })
	}
	steps = append(steps, r.ClearScreen, func() error {
		_, err := io.WriteString(t.out, ansi.KittyKeyboard(ansi.KittyDisambiguateEscapeCodes, 1))
		return err
	})

	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("failed to set terminal mode: %w", err)
		}
	}
	t.logger.Debug("terminal started", "alt_screen", t.altScreen, "mouse", t.cfg.MouseCapture)
	return nil
}

// Stop undoes Start. It is safe to call more than once.
func (t *Terminal) Stop() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		t.closed = true
		return nil
	}
	t.started = false
	t.closed = true

	r := t.tr
	var errs []error
	_, err := io.WriteString(t.out, ansi.KittyKeyboard(0, 1))
	errs = append(errs, err)
	if t.cfg.MouseCapture {
		errs = append(errs, r.ReleaseMouse())
	}
	errs = append(errs, r.ResetAttr(), r.ShowCursor())
	if t.altScreen {
		errs = append(errs, r.LeaveAltScreen())
		t.altScreen = false
	}
	errs = append(errs, r.EnableLineWrap())

	if t.state != nil {
		if err := term.Restore(int(t.in.Fd()), t.state); err != nil {
			errs = append(errs, fmt.Errorf("failed to restore terminal: %w", err))
		}
	}
	t.logger.Debug("terminal stopped")
	return errors.Join(errs...)
}

func (t *Terminal) toggleAltScreen() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.altScreen = !t.altScreen
	if t.altScreen {
		return t.tr.EnterAltScreen()
	}
	return t.tr.LeaveAltScreen()
}

// switchScreen asks the loop to flip between the main and alternate screens.
type switchScreen struct{}

// inputError ends the loop when stdin fails.
type inputError struct{ err error }

func (switchScreen) isTermEvent() {}
func (inputError) isTermEvent()   {}

// Run drives frames until build requests a quit, a Quit event arrives or
// ctx is done. The terminal is restored before Run returns.
func (t *Terminal) Run(ctx context.Context, build func(term *Term)) (err error) {
	size, err := t.Size()
	if err != nil {
		return err
	}

	app := NewApp(size, t.opts...)
	app.setModes(t.renderer)
	app.setFixedTimer(t.cfg.FPS > 0)

	if err := t.Start(); err != nil {
		return err
	}
	defer func() {
		if stopErr := t.Stop(); err == nil {
			err = stopErr
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	events := make(chan TermEvent, 64)
	g, gctx := errgroup.WithContext(ctx)

	// a blocked read cannot be interrupted, so the reader is not waited on
	go t.readInput(gctx, events)

	g.Go(func() error { return t.watchResize(gctx, events) })
	if interval := t.cfg.FrameInterval(); interval > 0 {
		g.Go(func() error { return tick(gctx, interval, events) })
	}
	g.Go(func() error {
		defer cancel()
		return t.loop(gctx, app, events, build)
	})
	return g.Wait()
}

func (t *Terminal) loop(ctx context.Context, app *App, events <-chan TermEvent, build func(term *Term)) error {
	interval := t.cfg.FrameInterval()
	lastTick := time.Now()

	if err := app.Step(nil, t.renderer, build); err != nil {
		return err
	}
	for !app.QuitRequested() {
		var ev TermEvent
		select {
		case <-ctx.Done():
			return nil
		case ev = <-events:
		}

		switch e := ev.(type) {
		case inputError:
			return fmt.Errorf("failed to read input: %w", e.err)
		case switchScreen:
			if err := t.toggleAltScreen(); err != nil {
				return fmt.Errorf("failed to switch screen: %w", err)
			}
			app.Resize(app.Screen().Size())
			ev = nil
		case Blend:
			lastTick = time.Now()
		default:
			if interval > 0 {
				app.blend = min(float32(time.Since(lastTick))/float32(interval), 1)
			}
		}

		if err := app.Step(ev, t.renderer, build); err != nil {
			return err
		}
	}
	t.logger.Debug("quit requested", "frames", app.Frames())
	return nil
}

func (t *Terminal) readInput(ctx context.Context, events chan<- TermEvent) {
	var dec inputDecoder
	buf := make([]byte, 4096)
	send := func(ev TermEvent) bool {
		select {
		case events <- ev:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for {
		n, err := t.in.Read(buf)
		for _, ev := range dec.Feed(buf[:n]) {
			if ev = t.filter(ev); ev == nil {
				continue
			}
			if !send(ev) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			send(Quit{})
			return
		}
		if err != nil {
			send(inputError{err: err})
			return
		}
	}
}

// filter applies the ctrl-c and ctrl-z settings.
func (t *Terminal) filter(ev TermEvent) TermEvent {
	key, ok := ev.(KeyInput)
	if !ok || key.Mods != ModCtrl || key.Key.Code != KeyRune {
		return ev
	}
	switch {
	case key.Key.Rune == 'c' && t.cfg.CtrlCQuits:
		return Quit{}
	case key.Key.Rune == 'z' && t.cfg.CtrlZSwitches:
		return switchScreen{}
	}
	return ev
}

func (t *Terminal) watchResize(ctx context.Context, events chan<- TermEvent) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)
	defer signal.Stop(sig)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-sig:
			size, err := t.Size()
			if err != nil {
				t.logger.Warn("resize ignored", "err", err)
				continue
			}
			select {
			case events <- Resize{Size: size}:
			case <-ctx.Done():
				return nil
			}
		}
	}
}

func tick(ctx context.Context, interval time.Duration, events chan<- TermEvent) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			// a slow frame drops ticks instead of queueing them
			select {
			case events <- Blend{Factor: 1}:
			default:
			}
		}
	}
}

// Run opens the process terminal and drives frames with build until it
// quits.
func Run(ctx context.Context, cfg Config, build func(term *Term), opts ...Option) error {
	t, err := NewTerminal(os.Stdin, os.Stdout, cfg, opts...)
	if err != nil {
		return err
	}
	return t.Run(ctx, build)
}
