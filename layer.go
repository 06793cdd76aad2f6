package cellui

import "iter"

type layerEntry[T any] struct {
	id   WidgetID
	data T
}

// Layered is a per-frame registry of widget ids grouped into z-ordered
// layers. Layers are opened by the widget that owns them and iterated
// topmost first.
type Layered[T any] struct {
	layers [][]layerEntry[T]
	stack  []layerRef
}

type layerRef struct {
	root  WidgetID
	index int
}

// Clear drops every layer.
func (l *Layered[T]) Clear() {
	clear(l.layers)
	l.layers = l.layers[:0]
	l.stack = l.stack[:0]
}

// PushLayer opens a new layer owned by root. Until it is popped, inserts land in it.
func (l *Layered[T]) PushLayer(root WidgetID) {
	l.stack = append(l.stack, layerRef{root: root, index: len(l.layers)})
	l.layers = append(l.layers, nil)
}

// PopLayer closes the innermost open layer.
func (l *Layered[T]) PopLayer() {
	if len(l.stack) == 0 {
		panic("cellui: PopLayer without PushLayer")
	}
	l.stack = l.stack[:len(l.stack)-1]
}

// CurrentRoot returns the owner of the innermost open layer.
func (l *Layered[T]) CurrentRoot() (WidgetID, bool) {
	if len(l.stack) == 0 {
		return WidgetID{}, false
	}
	return l.stack[len(l.stack)-1].root, true
}

// Insert records id in the innermost open layer. With no open layer the
// insert is dropped.
func (l *Layered[T]) Insert(id WidgetID, data T) {
	if len(l.stack) == 0 {
		return
	}
	index := l.stack[len(l.stack)-1].index
	l.layers[index] = append(l.layers[index], layerEntry[T]{id: id, data: data})
}

// Len returns the number of layers opened this frame.
func (l *Layered[T]) Len() int {
	return len(l.layers)
}

// All yields entries from the most recently opened layer to the first,
// each layer in insertion order.
func (l *Layered[T]) All() iter.Seq2[WidgetID, T] {
	return func(yield func(WidgetID, T) bool) {
		for i := len(l.layers) - 1; i >= 0; i-- {
			for _, e := range l.layers[i] {
				if !yield(e.id, e.data) {
					return
				}
			}
		}
	}
}
