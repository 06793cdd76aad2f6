package cellui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMouseArea(t *testing.T) {
	app := NewApp(Size{Width: 10, Height: 3})
	var resp MouseAreaResponse
	stepWith := func(ev TermEvent) MouseAreaResponse {
		require.NoError(t, app.Step(ev, NullRenderer{}, func(term *Term) {
			Column(term.Tree(), func(t *Tree) {
				resp = MouseArea(t, func(t *Tree) { Sized(t, V(4, 1), nil) }).Value
			})
		}))
		return resp
	}
	stepWith(nil)

	t.Run("hover and click", func(t *testing.T) {
		assert.True(t, stepWith(move(1, 0)).Hovered)

		r := stepWith(press(1, 0))
		assert.True(t, r.Held)

		r = stepWith(click(1, 0))
		assert.True(t, r.Clicked, "visible in the frame that delivered it")
		assert.False(t, r.Held)
		assert.Equal(t, V(1, 0), r.Pos)

		assert.False(t, stepWith(nil).Clicked, "reported once")
	})

	t.Run("scroll accumulates", func(t *testing.T) {
		down := MouseInput{Kind: PointerScroll, Pos: Pos{X: 1}, Delta: Pos{Y: 1}}
		assert.Equal(t, float32(1), stepWith(down).Scrolled)
		assert.Zero(t, stepWith(nil).Scrolled)
	})

	t.Run("drag", func(t *testing.T) {
		stepWith(press(0, 0))
		r := stepWith(MouseInput{Kind: PointerDrag, Pos: Pos{X: 6, Y: 2}, Origin: Pos{}, Delta: Pos{X: 6, Y: 2}})
		assert.True(t, r.Dragging)
		assert.Equal(t, V(6, 2), r.DragDelta)

		r = stepWith(MouseInput{Kind: PointerDragRelease, Pos: Pos{X: 6, Y: 2}, Origin: Pos{}, Delta: Pos{X: 6, Y: 2}})
		assert.False(t, r.Dragging)
		assert.False(t, r.Hovered)
	})

	t.Run("leave", func(t *testing.T) {
		stepWith(move(2, 0))
		assert.False(t, stepWith(move(9, 2)).Hovered)
	})
}

func TestKeyArea(t *testing.T) {
	app := NewApp(Size{Width: 10, Height: 3})
	var field KeyResponse
	var quit bool
	stepWith := func(ev TermEvent) {
		require.NoError(t, app.Step(ev, NullRenderer{}, func(term *Term) {
			Column(term.Tree(), func(t *Tree) {
				quit = KeyPressedBind(t, MustKeybind("ctrl+q"))
				field = KeyArea(t, KeyAreaProps{Focusable: true}, func(t *Tree) {
					Sized(t, V(5, 1), nil)
				}).Value
			})
		}))
	}
	stepWith(nil)

	stepWith(KeyInput{Key: Char('x')})
	assert.False(t, field.Pressed, "unfocused areas do not hear keys")

	// the key area sits below the zero-height global bind
	stepWith(press(1, 0))
	stepWith(nil)
	assert.True(t, field.Focused)

	stepWith(KeyInput{Key: Char('x')})
	assert.True(t, field.Pressed)
	assert.True(t, field.Is(Bind(Char('x'), ModNone)))
	assert.False(t, quit)

	stepWith(KeyInput{Key: Char('q'), Mods: ModCtrl})
	assert.True(t, quit)
}
