/*
Package tree implements ordered trees, the data structure all rewriting
operates on.

A tree node carries a value and an ordered, possibly empty list of child nodes.
Nodes are addressed by paths, i.e. sequences of child indices starting from
the root. Trees may be modified in place by replacing or removing sub-trees at
a given path.

Trees have a textual representation as parentheses strings:

    mul(div(cos(1.0),cos(π)),sin(mul(1.0,z)))

Characters '(', ')', ',', '\' and whitespace within node values have to be
escaped with a backslash.

Traversal, copying and comparison of trees are implemented iteratively, so
deeply nested trees will not exhaust the goroutine stack.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'treerw.tree'.
func tracer() tracing.Trace {
	return tracing.Select("treerw.tree")
}

// ErrTreeSyntax is returned if a tree string cannot be parsed.
var ErrTreeSyntax = errors.New("invalid tree string")

// ErrInvalidPath is returned if a path does not address a node of a tree.
var ErrInvalidPath = errors.New("invalid tree path")
