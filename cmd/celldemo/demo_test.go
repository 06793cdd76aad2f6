package main

import (
	"strings"
	"testing"

	"github.com/kungfusheep/cellui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDemo(t *testing.T) (*demo, *cellui.App) {
	t.Helper()
	d := &demo{stats: &cellui.FrameStats{}}
	app := cellui.NewApp(cellui.Size{Width: 80, Height: 24})
	require.NoError(t, app.Step(nil, cellui.NullRenderer{}, d.build))
	return d, app
}

func screenText(app *cellui.App) string {
	return app.Screen().Buffer().StringTrimmed()
}

func TestDemoBuild(t *testing.T) {
	_, app := newDemo(t)
	text := screenText(app)
	assert.Contains(t, text, "celldemo")
	assert.Contains(t, text, "clicks   0")
	assert.Contains(t, text, "item 000")
	assert.NotContains(t, text, "click to close")
}

func TestDemoKeys(t *testing.T) {
	d, app := newDemo(t)
	step := func(ev cellui.TermEvent) {
		require.NoError(t, app.Step(ev, cellui.NullRenderer{}, d.build))
	}

	step(cellui.KeyInput{Key: cellui.Char('p')})
	assert.True(t, d.popup)
	step(nil)
	assert.Contains(t, screenText(app), "click to close")
	assert.Contains(t, screenText(app), "open for 2 frames")

	step(cellui.KeyInput{Key: cellui.Named(cellui.KeyTab)})
	step(nil)
	assert.True(t, d.focused[0])

	step(cellui.KeyInput{Key: cellui.Named(cellui.KeyEnter)})
	assert.Equal(t, 1, d.counts[0])

	step(cellui.KeyInput{Key: cellui.Char('r'), Mods: cellui.ModCtrl})
	assert.Equal(t, [3]int{}, d.counts)

	step(cellui.KeyInput{Key: cellui.Char('q')})
	assert.True(t, app.QuitRequested())
}

func TestDemoClickCounter(t *testing.T) {
	d, app := newDemo(t)
	// inside the first counter, below the header and status lines
	pos := cellui.Pos{X: 2, Y: 3}
	for _, kind := range []cellui.PointerKind{cellui.PointerHeld, cellui.PointerClick} {
		ev := cellui.MouseInput{Kind: kind, Pos: pos, Button: cellui.ButtonPrimary}
		require.NoError(t, app.Step(ev, cellui.NullRenderer{}, d.build))
	}
	assert.Equal(t, 1, d.counts[0])
	require.NoError(t, app.Step(nil, cellui.NullRenderer{}, d.build))
	assert.True(t, strings.Contains(screenText(app), "clicks   1"))
}
