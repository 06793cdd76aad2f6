package cellui

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Node is one widget in the tree. The arena owns every node; children and
// parent are referenced by id only.
type Node struct {
	widget   Widget
	parent   WidgetID
	children []WidgetID
	next     int
}

// Widget returns the node's widget. It is nil while the widget is being updated.
func (n *Node) Widget() Widget { return n.widget }

// Parent returns the parent id, zero for the root.
func (n *Node) Parent() WidgetID { return n.parent }

// Children returns the ordered child ids.
func (n *Node) Children() []WidgetID { return n.children }

// Tree reconciles the widgets declared each frame against the previous
// frame's widgets. Identity is positional and typed: the Nth child of a
// parent keeps its id only while its concrete type stays the same.
type Tree struct {
	nodes    arena
	root     WidgetID
	stack    []WidgetID
	removed  []WidgetID
	building bool
}

// NewTree returns a tree holding only the root widget.
func NewTree() *Tree {
	t := &Tree{}
	t.root = t.nodes.insert(&Node{widget: &rootWidget{}})
	return t
}

// Root returns the id of the root node.
func (t *Tree) Root() WidgetID { return t.root }

// Len returns the number of live nodes, including the root.
func (t *Tree) Len() int { return t.nodes.len() }

// Current returns the innermost active widget, or the root when none is active.
func (t *Tree) Current() WidgetID {
	if len(t.stack) == 0 {
		return t.root
	}
	return t.stack[len(t.stack)-1]
}

// Get returns the node for id, or nil if it no longer exists or its widget
// is checked out for an update or event.
func (t *Tree) Get(id WidgetID) *Node {
	n := t.nodes.get(id)
	if n == nil || n.widget == nil {
		return nil
	}
	return n
}

// Contains reports whether id refers to a live node.
func (t *Tree) Contains(id WidgetID) bool {
	return t.nodes.get(id) != nil
}

// Children returns the children of id.
func (t *Tree) Children(id WidgetID) []WidgetID {
	if n := t.nodes.get(id); n != nil {
		return n.children
	}
	return nil
}

// Removed lists every node removed since the current frame started, each once.
func (t *Tree) Removed() []WidgetID {
	return t.removed
}

// Start opens a frame. Subsequent Begin calls attach to the root.
func (t *Tree) Start() {
	t.removed = t.removed[:0]
	t.nodes.get(t.root).next = 0
	t.stack = append(t.stack[:0], t.root)
	t.building = true
}

// Finish closes the frame and trims whatever the root did not revisit.
func (t *Tree) Finish() {
	t.End(t.root)
	t.building = false
}

// Response is what a widget's Update hands back to its caller, tagged with
// the widget's id.
type Response[R any] struct {
	ID    WidgetID
	Value R
}

// NoResponse is the response type of widgets that report nothing.
type NoResponse = struct{}

// Begin opens the next child of the current widget. The child is reused if
// the slot already holds a W, otherwise the old subtree is discarded and a
// fresh W is allocated. Update runs while the child is current, so it may
// declare its own children. Every Begin must be paired with End.
func Begin[W any, P any, R any, PW interface {
	*W
	Updater[P, R]
}](t *Tree, props P) Response[R] {
	if !t.building {
		panic("cellui: Begin called outside of a frame")
	}

	parentID := t.Current()
	parent := t.nodes.get(parentID)

	var (
		id     WidgetID
		w      PW
		reused bool
	)
	if parent.next < len(parent.children) {
		id = parent.children[parent.next]
		if n := t.nodes.get(id); n != nil {
			w, reused = n.widget.(PW)
		}
		if !reused {
			t.removeSubtree(id)
			w = PW(new(W))
			id = t.nodes.insert(&Node{widget: w, parent: parentID})
			parent.children[parent.next] = id
		}
	} else {
		w = PW(new(W))
		id = t.nodes.insert(&Node{widget: w, parent: parentID})
		parent.children = append(parent.children, id)
	}
	parent.next++

	node := t.nodes.get(id)
	node.next = 0
	t.stack = append(t.stack, id)

	return Response[R]{ID: id, Value: update[P, R](t, node, w, props)}
}

// update runs Update with the widget checked out of node.
func update[P, R any](t *Tree, node *Node, w Updater[P, R], props P) R {
	node.widget = nil
	defer func() { node.widget = w }()
	return w.Update(t, props)
}

// End closes id, which must be the innermost open widget, and removes any
// children it did not revisit this frame.
func (t *Tree) End(id WidgetID) {
	t.exit(id)
	t.trim(id)
}

// Show declares a widget with no children.
func Show[W any, P any, R any, PW interface {
	*W
	Updater[P, R]
}](t *Tree, props P) Response[R] {
	resp := Begin[W, P, R, PW](t, props)
	t.End(resp.ID)
	return resp
}

// ShowChildren declares a widget and lets children declare its subtree.
func ShowChildren[W any, P any, R any, PW interface {
	*W
	Updater[P, R]
}](t *Tree, props P, children func(t *Tree)) Response[R] {
	resp := Begin[W, P, R, PW](t, props)
	if children != nil {
		children(t)
	}
	t.End(resp.ID)
	return resp
}

func (t *Tree) enter(id WidgetID) {
	t.stack = append(t.stack, id)
}

func (t *Tree) exit(id WidgetID) {
	if len(t.stack) == 0 {
		panic(fmt.Sprintf("cellui: End(%v) called without an active widget", id))
	}
	top := t.stack[len(t.stack)-1]
	if top != id {
		panic(fmt.Sprintf("cellui: End(%v) does not match active widget %v", id, top))
	}
	t.stack = t.stack[:len(t.stack)-1]
}

func (t *Tree) trim(id WidgetID) {
	n := t.nodes.get(id)
	if n == nil || n.next >= len(n.children) {
		return
	}
	orphans := slices.Clone(n.children[n.next:])
	clear(n.children[n.next:])
	n.children = n.children[:n.next]
	t.removeSubtree(orphans...)
}

// removeSubtree deletes ids and all their descendants breadth first.
func (t *Tree) removeSubtree(ids ...WidgetID) {
	queue := slices.Clone(ids)
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		n := t.nodes.remove(id)
		if n == nil {
			continue
		}
		t.removed = append(t.removed, id)
		queue = append(queue, n.children...)
	}
}

// NodeSnapshot is a serialisable view of one node and its subtree.
type NodeSnapshot struct {
	ID       string         `yaml:"id"`
	Widget   string         `yaml:"widget"`
	Rect     string         `yaml:"rect,omitempty"`
	Children []NodeSnapshot `yaml:"children,omitempty"`
}

// Snapshot captures the tree from the root. Rects are filled in from l when
// it is non-nil.
func (t *Tree) Snapshot(l *Layout) NodeSnapshot {
	return t.snapshot(t.root, l)
}

func (t *Tree) snapshot(id WidgetID, l *Layout) NodeSnapshot {
	n := t.nodes.get(id)
	s := NodeSnapshot{ID: id.String(), Widget: widgetName(n.widget)}
	if l != nil {
		if ln := l.Get(id); ln != nil {
			s.Rect = ln.Rect.String()
		}
	}
	for _, child := range n.children {
		if t.nodes.get(child) != nil {
			s.Children = append(s.Children, t.snapshot(child, l))
		}
	}
	return s
}

// DumpYAML writes Snapshot(l) to w.
func (t *Tree) DumpYAML(w io.Writer, l *Layout) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.Snapshot(l)); err != nil {
		return fmt.Errorf("failed to encode tree: %w", err)
	}
	return enc.Close()
}

func widgetName(w Widget) string {
	if w == nil {
		return "<updating>"
	}
	name := fmt.Sprintf("%T", w)
	name = strings.TrimLeft(name, "*")
	return strings.TrimPrefix(name, "cellui.")
}
