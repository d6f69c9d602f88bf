package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/npillmayer/treerw/tree"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Matcher finds the occurences of a pattern in a tree.
type Matcher[V comparable] struct {
	pattern *Pattern[V]
	tree    *tree.Node[V]
}

// Pattern returns the pattern of a matcher.
func (m *Matcher[V]) Pattern() *Pattern[V] {
	return m.pattern
}

// Matches is a predicate: does the pattern match the tree at its root?
func (m *Matcher[V]) Matches() bool {
	return m.pattern.Matches(m.tree)
}

// Results returns a sequence of all the sub-trees matching the pattern, in
// pre-order. The sequence is lazy: matches are computed as the client advances
// the sequence. Every call to Results starts a new sequence.
//
//    for r, S := matcher.Results().First(); !S.Done(); r = S.Next() {
//        fmt.Printf("match at %v: %v\n", r.Path(), r.Node())
//    }
//
// The tree must not be modified while iterating over the results.
func (m *Matcher[V]) Results() *tree.Seq[*MatchResult[V]] {
	return tree.FilterMap(m.tree.Traverse(), func(n *tree.Node[V]) (*MatchResult[V], bool) {
		bindings, ok := m.pattern.match(n)
		if !ok {
			return nil, false
		}
		return &MatchResult[V]{node: n, origin: m.tree, bindings: bindings}, true
	})
}

// All returns all the match results.
func (m *Matcher[V]) All() []*MatchResult[V] {
	return m.Results().List()
}

// --- Match results ---------------------------------------------------------

// MatchResult is the outcome of a successful match of a pattern against a
// node of a tree. It holds the bindings of all the pattern variables.
// Bindings refer to sub-trees of the matched tree, not to copies.
type MatchResult[V comparable] struct {
	node     *tree.Node[V]
	origin   *tree.Node[V] // tree the matcher operated on
	bindings map[string]*tree.Node[V]
}

// Node returns the matched tree node.
func (r *MatchResult[V]) Node() *tree.Node[V] {
	return r.node
}

// Bindings returns the variable bindings of a match, by variable name. The map
// returned is a copy.
func (r *MatchResult[V]) Bindings() map[string]*tree.Node[V] {
	return maps.Clone(r.bindings)
}

// Binding returns the sub-tree a variable is bound to.
func (r *MatchResult[V]) Binding(name string) (*tree.Node[V], bool) {
	n, ok := r.bindings[name]
	return n, ok
}

// Path returns the path of the matched node, relative to the root of the
// tree the match operated on.
func (r *MatchResult[V]) Path() tree.Path {
	path, _ := r.node.PathFrom(r.origin)
	return path
}

// String returns the bindings of a match, sorted by variable name:
//
//    {a: 1, b: 2}
//
func (r *MatchResult[V]) String() string {
	names := maps.Keys(r.bindings)
	slices.Sort(names)
	var b strings.Builder
	b.WriteByte('{')
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %s", name, r.bindings[name])
	}
	b.WriteByte('}')
	return b.String()
}
