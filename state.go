package cellui

type stateWidget[T any] struct {
	Base
	value *T
}

func (w *stateWidget[T]) Update(_ *Tree, init func() T) *T {
	if w.value == nil {
		v := init()
		w.value = &v
	}
	return w.value
}

func (*stateWidget[T]) Layout(*LayoutCtx, Constraints) Vec2 { return Vec2{} }

// State returns a value that lives as long as this position in the tree.
// init runs on the first frame the position is visited, and again after the
// node has been removed or replaced by a different widget.
func State[T any](t *Tree, init func() T) *T {
	return Show[stateWidget[T], func() T, *T](t, init).Value
}
