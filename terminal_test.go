package cellui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func openPty(t *testing.T) (ptmx, tty *os.File) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Rows: 6, Cols: 30}))
	return ptmx, tty
}

type ptyRun struct {
	ptmx *os.File
	out  *syncBuffer
	done chan error
}

// startRun drives build on a fresh pty and waits for the first frame.
func startRun(t *testing.T, cfg Config, build func(term *Term)) *ptyRun {
	t.Helper()
	ptmx, tty := openPty(t)

	r := &ptyRun{ptmx: ptmx, out: &syncBuffer{}, done: make(chan error, 1)}
	go io.Copy(r.out, ptmx)

	term, err := NewTerminal(tty, tty, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	go func() { r.done <- term.Run(ctx, build) }()

	// keys typed before raw mode would sit in the line buffer
	require.Eventually(t, func() bool {
		return strings.Contains(r.out.String(), "hello")
	}, 5*time.Second, 10*time.Millisecond)
	return r
}

func (r *ptyRun) wait(t *testing.T) error {
	t.Helper()
	select {
	case err := <-r.done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
		return nil
	}
}

func TestTerminalRun(t *testing.T) {
	t.Run("build quits on a key", func(t *testing.T) {
		cfg := DefaultConfig().WithTitle("cellui test")
		var sizes []Size
		r := startRun(t, cfg, func(term *Term) {
			sizes = append(sizes, term.Size())
			Label(term.Tree(), "hello")
			if ev, ok := term.Input().LastEvent().(KeyInput); ok && ev.Key == Char('q') {
				term.RequestQuit()
			}
		})

		_, err := r.ptmx.Write([]byte("q"))
		require.NoError(t, err)
		require.NoError(t, r.wait(t))

		assert.Equal(t, Size{Width: 30, Height: 6}, sizes[0])
		assert.Eventually(t, func() bool {
			return strings.Contains(r.out.String(), "\x1b[?1049l")
		}, time.Second, 10*time.Millisecond, "alternate screen is left")

		got := r.out.String()
		assert.Contains(t, got, "\x1b[?1049h")
		assert.Contains(t, got, "cellui test")
		assert.Contains(t, got, "\x1b[?1000h")
	})

	t.Run("ctrl-c quits", func(t *testing.T) {
		r := startRun(t, DefaultConfig().WithMouseCapture(false), func(term *Term) {
			Label(term.Tree(), "hello")
		})

		_, err := r.ptmx.Write([]byte{0x03})
		require.NoError(t, err)
		require.NoError(t, r.wait(t))
		assert.NotContains(t, r.out.String(), "\x1b[?1000h")
	})

	t.Run("context cancel stops the loop", func(t *testing.T) {
		ptmx, tty := openPty(t)
		go io.Copy(io.Discard, ptmx)

		term, err := NewTerminal(tty, tty, DefaultConfig().WithAltScreen(false))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		frames := make(chan struct{}, 1)
		done := make(chan error, 1)
		go func() {
			done <- term.Run(ctx, func(term *Term) {
				select {
				case frames <- struct{}{}:
				default:
				}
			})
		}()

		<-frames
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Run did not return")
		}
		assert.ErrorIs(t, term.Start(), ErrClosed, "a stopped terminal cannot restart")
	})
}

func TestNewTerminal(t *testing.T) {
	t.Run("rejects files that are not terminals", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "out")
		require.NoError(t, err)
		defer f.Close()

		_, err = NewTerminal(f, f, DefaultConfig())
		assert.True(t, errors.Is(err, ErrNotTerminal))
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		_, tty := openPty(t)
		_, err := NewTerminal(tty, tty, DefaultConfig().WithFPS(-3))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("size comes from the kernel", func(t *testing.T) {
		_, tty := openPty(t)
		term, err := NewTerminal(tty, tty, DefaultConfig())
		require.NoError(t, err)

		size, err := term.Size()
		require.NoError(t, err)
		assert.Equal(t, Size{Width: 30, Height: 6}, size)
	})

	t.Run("stop before start", func(t *testing.T) {
		_, tty := openPty(t)
		term, err := NewTerminal(tty, tty, DefaultConfig())
		require.NoError(t, err)
		assert.NoError(t, term.Stop())
		assert.NoError(t, term.Stop())
	})
}
