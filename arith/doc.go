/*
Package arith provides arithmetic expression trees and ready-made rewriters
for them.

Arithmetic trees carry values of type Op, which are either operators,
numeric constants or symbols (variables of the expression):

    add(mul(x,1),sin(0))

Function Simplifier returns a rewriter which folds constant sub-expressions
and applies the standard arithmetic identities, like

    add($x,0) -> $x
    mul($x,$x) -> pow($x,2)

until no more simplifications apply.

Package arith also contains a small rule set for Peano arithmetic on
string trees, mainly useful for experimenting with rewrite systems.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package arith

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'treerw.arith'.
func tracer() tracing.Trace {
	return tracing.Select("treerw.arith")
}

// ErrArity is returned for operator nodes with the wrong number of operands.
var ErrArity = errors.New("wrong number of operands")
