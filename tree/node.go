package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// Node is a node of an ordered tree. Every node carries a value of type V and
// an ordered list of children. Nodes link back to their parent, which makes
// it possible to compute the path of a node within its tree.
//
// Nodes are mutable. Clients owning a tree may modify it with ReplaceAtPath(…)
// and RemoveAtPath(…). Trees must not be modified concurrently.
type Node[V comparable] struct {
	value    V
	parent   *Node[V]
	children []*Node[V]
}

// New creates a tree node with a given value and child nodes. Children which
// are currently part of another tree will be detached from it first.
func New[V comparable](value V, children ...*Node[V]) *Node[V] {
	n := &Node[V]{value: value}
	return n.Append(children...)
}

// Value returns the value of a node.
func (t *Node[V]) Value() V {
	return t.value
}

// SetValue sets the value of a node.
func (t *Node[V]) SetValue(value V) {
	t.value = value
}

// Parent returns the parent node, or nil for a root node.
func (t *Node[V]) Parent() *Node[V] {
	return t.parent
}

// Root returns the root node of the tree a node is part of.
func (t *Node[V]) Root() *Node[V] {
	r := t
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// IsRoot is a predicate: is this node without parent?
func (t *Node[V]) IsRoot() bool {
	return t.parent == nil
}

// IsLeaf is a predicate: is this node without children?
func (t *Node[V]) IsLeaf() bool {
	return len(t.children) == 0
}

// ChildCount returns the number of children of a node.
func (t *Node[V]) ChildCount() int {
	return len(t.children)
}

// ChildAt returns the child at index i, or nil if i is out of range.
func (t *Node[V]) ChildAt(i int) *Node[V] {
	if i < 0 || i >= len(t.children) {
		return nil
	}
	return t.children[i]
}

// Children returns the children of a node. The slice returned is a copy,
// modifying it will not change the tree.
func (t *Node[V]) Children() []*Node[V] {
	ch := make([]*Node[V], len(t.children))
	copy(ch, t.children)
	return ch
}

// Append appends child nodes as rightmost children. Returns the node itself
// (for chaining).
func (t *Node[V]) Append(children ...*Node[V]) *Node[V] {
	for _, ch := range children {
		if ch == nil {
			continue
		}
		ch.detach()
		ch.parent = t
		t.children = append(t.children, ch)
	}
	return t
}

// detach removes a node from its parent's list of children.
func (t *Node[V]) detach() {
	if t.parent == nil {
		return
	}
	if i := t.parent.indexOf(t); i >= 0 {
		p := t.parent
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	t.parent = nil
}

func (t *Node[V]) indexOf(child *Node[V]) int {
	for i, ch := range t.children {
		if ch == child {
			return i
		}
	}
	return -1
}

// ChildPath returns the path of a node, starting from the root of its tree.
//
//    root.ChildAtPath(node.ChildPath()) == node
//
func (t *Node[V]) ChildPath() Path {
	path, _ := t.PathFrom(t.Root())
	return path
}

// PathFrom returns the path of a node relative to an ancestor a, which may
// be the node itself. If a is not an ancestor of t, false is returned.
func (t *Node[V]) PathFrom(a *Node[V]) (Path, bool) {
	if a == nil {
		return nil, false
	}
	depth := 0
	n := t
	for ; n != nil && n != a; n = n.parent {
		depth++
	}
	if n == nil {
		return nil, false
	}
	path := make(Path, depth)
	for n = t; n != a; n = n.parent {
		depth--
		path[depth] = n.parent.indexOf(n)
	}
	return path, true
}

// ChildAtPath returns the node at a given path, starting from t.
// If the path does not address a node, false is returned.
func (t *Node[V]) ChildAtPath(path Path) (*Node[V], bool) {
	n := t
	for _, i := range path {
		if n = n.ChildAt(i); n == nil {
			return nil, false
		}
	}
	return n, true
}

// ReplaceAtPath replaces the sub-tree at a given path with node n, in place.
// Node n will be detached from any tree it is part of. For the empty path,
// t itself takes over the value and the children of n, as the root of a tree
// has to keep its identity for clients holding a reference to it.
func (t *Node[V]) ReplaceAtPath(path Path, n *Node[V]) error {
	if n == nil {
		return fmt.Errorf("%w: cannot replace node at %v with nil", ErrInvalidPath, path)
	}
	if path.IsRoot() {
		n.detach()
		for _, ch := range t.children {
			ch.parent = nil
		}
		t.value = n.value
		t.children = n.children
		n.children = nil
		for _, ch := range t.children {
			ch.parent = t
		}
		return nil
	}
	n.detach()
	parent, ok := t.ChildAtPath(path.Parent())
	i := path[len(path)-1]
	if !ok || i < 0 || i >= len(parent.children) {
		return fmt.Errorf("%w: no node at %v", ErrInvalidPath, path)
	}
	old := parent.children[i]
	old.parent = nil
	n.parent = parent
	parent.children[i] = n
	tracer().Debugf("replaced node at %v", path)
	return nil
}

// RemoveAtPath removes the sub-tree at a given path. The root cannot be
// removed.
func (t *Node[V]) RemoveAtPath(path Path) error {
	if path.IsRoot() {
		return fmt.Errorf("%w: cannot remove the root node", ErrInvalidPath)
	}
	n, ok := t.ChildAtPath(path)
	if !ok {
		return fmt.Errorf("%w: no node at %v", ErrInvalidPath, path)
	}
	n.detach()
	tracer().Debugf("removed node at %v", path)
	return nil
}

// --- Whole tree operations -------------------------------------------------

// pair of nodes, used for parallel walks over two trees
type nodePair[V comparable] struct {
	a, b *Node[V]
}

// Copy returns a deep copy of the sub-tree rooted at t. The copy is a root,
// i.e. it has no parent.
func (t *Node[V]) Copy() *Node[V] {
	if t == nil {
		return nil
	}
	root := &Node[V]{value: t.value}
	stack := arraystack.New()
	stack.Push(nodePair[V]{t, root})
	for !stack.Empty() {
		x, _ := stack.Pop()
		p := x.(nodePair[V])
		if len(p.a.children) > 0 {
			p.b.children = make([]*Node[V], 0, len(p.a.children))
		}
		for _, ch := range p.a.children {
			c := &Node[V]{value: ch.value, parent: p.b}
			p.b.children = append(p.b.children, c)
			stack.Push(nodePair[V]{ch, c})
		}
	}
	return root
}

// Equal tests two trees for structural equality: both have to have the same
// shape and equal values at corresponding nodes. Parents are not considered.
func (t *Node[V]) Equal(other *Node[V]) bool {
	if t == nil || other == nil {
		return t == other
	}
	stack := arraystack.New()
	stack.Push(nodePair[V]{t, other})
	for !stack.Empty() {
		x, _ := stack.Pop()
		p := x.(nodePair[V])
		if p.a == p.b {
			continue
		}
		if p.a.value != p.b.value || len(p.a.children) != len(p.b.children) {
			return false
		}
		for i := range p.a.children {
			stack.Push(nodePair[V]{p.a.children[i], p.b.children[i]})
		}
	}
	return true
}

// Size returns the number of nodes of the sub-tree rooted at t.
func (t *Node[V]) Size() int {
	cnt := 0
	for seq := t.Traverse(); !seq.Done(); seq.Next() {
		cnt++
	}
	return cnt
}

// Map creates a new tree with the same shape as t, where every value is
// mapped by f.
func Map[V, B comparable](t *Node[V], f func(V) B) *Node[B] {
	if t == nil {
		return nil
	}
	root := &Node[B]{value: f(t.value)}
	stack := arraystack.New()
	stack.Push(mapTask[V, B]{t, root})
	for !stack.Empty() {
		x, _ := stack.Pop()
		m := x.(mapTask[V, B])
		for _, ch := range m.src.children {
			c := &Node[B]{value: f(ch.value), parent: m.dst}
			m.dst.children = append(m.dst.children, c)
			stack.Push(mapTask[V, B]{ch, c})
		}
	}
	return root
}

type mapTask[V, B comparable] struct {
	src *Node[V]
	dst *Node[B]
}
