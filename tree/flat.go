package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
)

// FlatNode is an entry of the flat (array) encoding of a tree. Nodes are stored
// in breadth-first order; the children of a node are stored consecutively,
// starting at ChildOffset. Leaves have a ChildOffset of -1.
//
//    add(1,sin(x))
//
// is encoded as
//
//    0: {add  1 2}
//    1: {1   -1 0}
//    2: {sin  3 1}
//    3: {x   -1 0}
//
// The flat encoding is suitable for persisting trees with serialization
// mechanisms unable to handle recursive structures.
type FlatNode[V comparable] struct {
	Value       V   `yaml:"value" json:"value"`
	ChildOffset int `yaml:"offset" json:"offset"`
	ChildCount  int `yaml:"count" json:"count"`
}

// Flatten creates the flat encoding of a tree.
func Flatten[V comparable](t *Node[V]) []FlatNode[V] {
	if t == nil {
		return nil
	}
	nodes := []*Node[V]{t}
	flat := make([]FlatNode[V], 0, 16)
	for i := 0; i < len(nodes); i++ {
		n := nodes[i]
		offset := -1
		if len(n.children) > 0 {
			offset = len(nodes)
			nodes = append(nodes, n.children...)
		}
		flat = append(flat, FlatNode[V]{
			Value:       n.value,
			ChildOffset: offset,
			ChildCount:  len(n.children),
		})
	}
	return flat
}

// Unflatten re-creates a tree from its flat encoding. It returns
// ErrTreeSyntax if the encoding is inconsistent.
func Unflatten[V comparable](flat []FlatNode[V]) (*Node[V], error) {
	if len(flat) == 0 {
		return nil, fmt.Errorf("%w: empty flat tree", ErrTreeSyntax)
	}
	nodes := make([]*Node[V], len(flat))
	for i, f := range flat {
		nodes[i] = &Node[V]{value: f.Value}
	}
	linked := 1 // the root
	for i, f := range flat {
		if f.ChildCount == 0 {
			continue
		}
		if f.ChildOffset <= i || f.ChildCount < 0 || f.ChildOffset+f.ChildCount > len(flat) {
			return nil, fmt.Errorf("%w: invalid children [%d…%d) for flat node #%d",
				ErrTreeSyntax, f.ChildOffset, f.ChildOffset+f.ChildCount, i)
		}
		for _, ch := range nodes[f.ChildOffset : f.ChildOffset+f.ChildCount] {
			if ch.parent != nil {
				return nil, fmt.Errorf("%w: flat node #%d has more than one parent",
					ErrTreeSyntax, f.ChildOffset)
			}
			nodes[i].children = append(nodes[i].children, ch)
			ch.parent = nodes[i]
			linked++
		}
	}
	if linked != len(flat) {
		return nil, fmt.Errorf("%w: %d flat nodes are not connected to the root",
			ErrTreeSyntax, len(flat)-linked)
	}
	return nodes[0], nil
}
