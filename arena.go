package cellui

import "fmt"

// WidgetID is a generation-tagged key into the node arena.
// The zero value never refers to a node.
type WidgetID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether the id is the invalid zero id.
func (id WidgetID) IsZero() bool {
	return id.gen == 0
}

func (id WidgetID) String() string {
	if id.IsZero() {
		return "none"
	}
	return fmt.Sprintf("%dv%d", id.index, id.gen)
}

type slot struct {
	gen  uint32
	node *Node
}

// arena stores nodes in a flat slice. Vacated slots are recycled with a
// bumped generation so stale ids resolve to nothing.
type arena struct {
	slots []slot
	free  []uint32
	live  int
}

func (a *arena) insert(n *Node) WidgetID {
	a.live++
	if k := len(a.free); k > 0 {
		index := a.free[k-1]
		a.free = a.free[:k-1]
		s := &a.slots[index]
		s.gen++
		if s.gen == 0 {
			s.gen = 1
		}
		s.node = n
		return WidgetID{index: index, gen: s.gen}
	}
	a.slots = append(a.slots, slot{gen: 1, node: n})
	return WidgetID{index: uint32(len(a.slots) - 1), gen: 1}
}

func (a *arena) get(id WidgetID) *Node {
	if id.IsZero() || int(id.index) >= len(a.slots) {
		return nil
	}
	s := a.slots[id.index]
	if s.gen != id.gen {
		return nil
	}
	return s.node
}

func (a *arena) remove(id WidgetID) *Node {
	n := a.get(id)
	if n == nil {
		return nil
	}
	a.slots[id.index].node = nil
	a.free = append(a.free, id.index)
	a.live--
	return n
}

func (a *arena) len() int {
	return a.live
}
