package cellui

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// countingRenderer counts clears and can fail on End.
type countingRenderer struct {
	NullRenderer
	clears int
	frames int
	fail   error
}

func (r *countingRenderer) ClearScreen() error {
	r.clears++
	return nil
}

func (r *countingRenderer) End() error {
	r.frames++
	return r.fail
}

func TestAppFrames(t *testing.T) {
	app := NewApp(Size{Width: 10, Height: 2})
	r := &countingRenderer{}
	build := func(term *Term) { Label(term.Tree(), "hello") }

	require.NoError(t, app.Step(nil, r, build))
	assert.Equal(t, uint64(1), app.Frames())
	assert.Equal(t, 1, r.frames)
	assert.Equal(t, "hello", app.Screen().Front().GetLine(0))

	require.NoError(t, app.Step(nil, r, build))
	assert.Equal(t, 1, r.frames, "an unchanged frame writes nothing")
	assert.Equal(t, uint64(2), app.Frames())
}

func TestAppResize(t *testing.T) {
	app := NewApp(Size{Width: 10, Height: 2})
	r := &countingRenderer{}
	var size Size
	build := func(term *Term) {
		size = term.Size()
		Label(term.Tree(), "x")
	}
	require.NoError(t, app.Step(nil, r, build))
	assert.Zero(t, r.clears)

	require.NoError(t, app.Step(Resize{Size: Size{Width: 30, Height: 6}}, r, build))
	assert.Equal(t, 1, r.clears)
	assert.Equal(t, Size{Width: 30, Height: 6}, size)
	assert.Equal(t, RectFromSize(Vec2{}, V(30, 6)), app.Layout().Rect())

	require.NoError(t, app.Step(nil, r, build))
	assert.Equal(t, 1, r.clears, "only the frame after a resize clears")
}

func TestAppQuit(t *testing.T) {
	app := NewApp(Size{Width: 5, Height: 1})
	require.NoError(t, app.Step(Quit{}, NullRenderer{}, nil))
	assert.True(t, app.QuitRequested())

	app = NewApp(Size{Width: 5, Height: 1})
	require.NoError(t, app.Step(nil, NullRenderer{}, func(term *Term) { term.RequestQuit() }))
	assert.True(t, app.QuitRequested())
}

func TestAppRenderError(t *testing.T) {
	var logs bytes.Buffer
	app := NewApp(Size{Width: 5, Height: 1}, WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
	boom := errors.New("boom")

	err := app.Step(nil, &countingRenderer{fail: boom}, func(term *Term) { Label(term.Tree(), "x") })
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "render frame 1")
	assert.Contains(t, logs.String(), "frame flush failed")
}

func TestAppFocusCycling(t *testing.T) {
	for _, on := range []bool{true, false} {
		app := NewApp(Size{Width: 5, Height: 3}, WithFocusCycling(on))
		var id WidgetID
		build := func(term *Term) {
			Column(term.Tree(), func(t *Tree) {
				id = Show[sizer, sizerProps, NoResponse](t, sizerProps{Size: V(1, 1), Interest: Focus}).ID
			})
		}
		require.NoError(t, app.Step(nil, NullRenderer{}, build))
		require.NoError(t, app.Step(KeyInput{Key: Named(KeyTab)}, NullRenderer{}, build))

		if on {
			assert.Equal(t, id, app.Input().Selection())
		} else {
			assert.True(t, app.Input().Selection().IsZero())
		}
	}
}

func TestTerm(t *testing.T) {
	app := NewApp(Size{Width: 8, Height: 3}, WithTheme(ThemeLight))

	require.NoError(t, app.Step(nil, NullRenderer{}, func(term *Term) {
		assert.Equal(t, uint64(0), term.Frame())
		assert.Equal(t, float32(1), term.Blend(), "reactive frames are always complete")
		assert.Equal(t, ThemeLight, term.Theme())
		assert.Equal(t, RectFromSize(Vec2{}, V(8, 3)), term.Rect())
		assert.NoError(t, term.SetTitle("ignored"))
	}))

	app.setFixedTimer(true)
	require.NoError(t, app.Step(Blend{Factor: 0.25}, NullRenderer{}, func(term *Term) {
		assert.Equal(t, uint64(1), term.Frame())
		assert.Equal(t, float32(0.25), term.Blend())
	}))
}

func TestAppDumpTree(t *testing.T) {
	app := NewApp(Size{Width: 20, Height: 4})
	build := func(term *Term) {
		Column(term.Tree(), func(t *Tree) { Label(t, "dump") })
	}
	require.NoError(t, app.Step(nil, NullRenderer{}, build))

	var buf bytes.Buffer
	require.NoError(t, app.DumpTree(&buf))

	var snap NodeSnapshot
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &snap))
	require.Len(t, snap.Children, 1)
	assert.Equal(t, "listWidget", snap.Children[0].Widget)
	assert.True(t, strings.Contains(buf.String(), "labelWidget"))
}
