package cellui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collectDiff(front, back *Buffer) map[Pos]Cell {
	changes := make(map[Pos]Cell)
	for pos, cell := range front.Diff(back) {
		changes[pos] = cell
	}
	return changes
}

func TestBufferDiff(t *testing.T) {
	t.Run("idempotent", func(t *testing.T) {
		front, back := NewBuffer(3, 3), NewBuffer(3, 3)
		cell := NewCell('a').WithFG(Red)
		back.Set(1, 1, cell)

		assert.Equal(t, map[Pos]Cell{{X: 1, Y: 1}: cell}, collectDiff(front, back))
		assert.Empty(t, collectDiff(front, back), "the front buffer already holds the change")
	})

	t.Run("reuse colors only compare glyphs", func(t *testing.T) {
		front, back := NewBuffer(1, 1), NewBuffer(1, 1)
		front.Set(0, 0, NewCell('x').WithFG(Red))
		back.Set(0, 0, Cell{Rune: 'x', FG: Reuse, BG: Reuse})
		assert.Empty(t, collectDiff(front, back))
	})

	t.Run("invalidated buffers differ everywhere", func(t *testing.T) {
		front, back := NewBuffer(2, 2), NewBuffer(2, 2)
		assert.Empty(t, collectDiff(front, back))

		front.Invalidate()
		assert.Len(t, collectDiff(front, back), 4)
	})
}
