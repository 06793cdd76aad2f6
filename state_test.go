package cellui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestState(t *testing.T) {
	t.Run("survives across frames", func(t *testing.T) {
		tree := NewTree()
		inits := 0
		var seen []int
		for range 3 {
			frame(tree, func(t *Tree) {
				n := State(t, func() int {
					inits++
					return 10
				})
				*n++
				seen = append(seen, *n)
			})
		}
		assert.Equal(t, 1, inits)
		assert.Equal(t, []int{11, 12, 13}, seen)
	})

	t.Run("positions hold separate values", func(t *testing.T) {
		tree := NewTree()
		var a, b *string
		for range 2 {
			frame(tree, func(t *Tree) {
				a = State(t, func() string { return "a" })
				b = State(t, func() string { return "b" })
			})
		}
		assert.Equal(t, "a", *a)
		assert.Equal(t, "b", *b)
	})

	t.Run("removal forgets the value", func(t *testing.T) {
		tree := NewTree()
		show := true
		var n *int
		build := func(t *Tree) {
			if show {
				n = State(t, func() int { return 0 })
				*n++
			}
		}
		frame(tree, build)
		frame(tree, build)
		assert.Equal(t, 2, *n)

		show = false
		frame(tree, build)
		show = true
		frame(tree, build)
		assert.Equal(t, 1, *n)
	})

	t.Run("a different type in the slot starts over", func(t *testing.T) {
		tree := NewTree()
		frame(tree, func(t *Tree) { *State(t, func() int { return 5 }) = 9 })

		var s *string
		frame(tree, func(t *Tree) { s = State(t, func() string { return "fresh" }) })
		assert.Equal(t, "fresh", *s)

		var n *int
		frame(tree, func(t *Tree) { n = State(t, func() int { return 5 }) })
		assert.Equal(t, 5, *n)
	})
}
