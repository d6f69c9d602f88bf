package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

/*
Note:
=====
A sequence always pre-fetches its first item. Generators are called on the
goroutine of the consumer; there are no channels involved, therefore
abandoning a sequence early does not leak anything.
*/

// Generator is a function type to produce the items of a sequence. It
// returns false as its second result if the sequence is exhausted.
type Generator[T any] func() (T, bool)

// Seq is a lazy sequence of items. Items are computed on demand, as the
// consumer advances. Use it like this:
//
//     for node, S := tree.Traverse().First(); !S.Done(); node = S.Next() {
//         …
//     }
//
type Seq[T any] struct {
	item T
	ok   bool
	gen  Generator[T]
}

// NewSeq creates a sequence from a generator.
func NewSeq[T any](gen Generator[T]) *Seq[T] {
	seq := &Seq[T]{gen: gen}
	seq.Next()
	return seq
}

// Done returns true if a sequence stopped iterating.
func (seq *Seq[T]) Done() bool {
	return !seq.ok
}

// Item returns the current item of a sequence.
func (seq *Seq[T]) Item() T {
	return seq.item
}

// First returns the current item of a sequence, together with the sequence
// itself.
func (seq *Seq[T]) First() (T, *Seq[T]) {
	return seq.item, seq
}

// Next advances a sequence and returns the next item.
func (seq *Seq[T]) Next() T {
	if seq.gen == nil {
		seq.Break()
		return seq.item
	}
	seq.item, seq.ok = seq.gen()
	if !seq.ok {
		seq.Break()
	}
	return seq.item
}

// Break signals a sequence to stop iterating.
func (seq *Seq[T]) Break() {
	var zero T
	seq.item, seq.ok, seq.gen = zero, false, nil
}

// List drains a sequence and returns all its remaining items.
func (seq *Seq[T]) List() []T {
	var items []T
	for item, S := seq.First(); !S.Done(); item = S.Next() {
		items = append(items, item)
	}
	return items
}

// Where filters a sequence.
func (seq *Seq[T]) Where(accept func(T) bool) *Seq[T] {
	return FilterMap(seq, func(item T) (T, bool) {
		return item, accept(item)
	})
}

// FilterMap maps the items of a sequence, dropping every item for which
// f returns false. The resulting sequence is as lazy as the input sequence.
func FilterMap[T, U any](seq *Seq[T], f func(T) (U, bool)) *Seq[U] {
	return NewSeq(func() (U, bool) {
		for !seq.Done() {
			item := seq.Item()
			seq.Next()
			if u, ok := f(item); ok {
				return u, true
			}
		}
		var zero U
		return zero, false
	})
}

// --- Tree walks ------------------------------------------------------------

// Traverse creates a sequence of all the nodes of the sub-tree rooted at t,
// in depth-first pre-order. Every call creates a fresh sequence.
//
// The tree must not be modified while the sequence is in use.
func (t *Node[V]) Traverse() *Seq[*Node[V]] {
	stack := arraystack.New()
	if t != nil {
		stack.Push(t)
	}
	return NewSeq(func() (*Node[V], bool) {
		x, ok := stack.Pop()
		if !ok {
			return nil, false
		}
		n := x.(*Node[V])
		for i := len(n.children) - 1; i >= 0; i-- {
			stack.Push(n.children[i])
		}
		return n, true
	})
}

// IsLeaf is a filter for tree nodes which only accepts leaf nodes.
func IsLeaf[V comparable]() func(*Node[V]) bool {
	return func(n *Node[V]) bool {
		return n.IsLeaf()
	}
}
