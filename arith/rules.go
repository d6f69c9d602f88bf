package arith

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"sync"

	"github.com/npillmayer/treerw/rewrite"
	"github.com/npillmayer/treerw/tree"
)

// IdentityRules are the standard arithmetic identities.
var IdentityRules = []string{
	"sub($x,$x) -> 0",
	"sub($x,0) -> $x",
	"add($x,0) -> $x",
	"add(0,$x) -> $x",
	"add($x,$x) -> mul(2,$x)",
	"div($x,$x) -> 1",
	"div(0,$x) -> 0",
	"mul($x,0) -> 0",
	"mul(0,$x) -> 0",
	"mul($x,1) -> $x",
	"mul(1,$x) -> $x",
	"mul($x,$x) -> pow($x,2)",
	"pow($x,0) -> 1",
	"pow(0,$x) -> 0",
	"pow($x,1) -> $x",
	"pow(1,$x) -> 1",
}

var identities *rewrite.TRS[Op]
var identitiesOnce sync.Once

// Identities returns a TRS for the standard arithmetic identities.
func Identities() *rewrite.TRS[Op] {
	identitiesOnce.Do(func() {
		tracer().Debugf("Creating arithmetic identity rules")
		identities = rewrite.MustParseTRS(ParseOp, IdentityRules...)
	})
	return identities
}

// --- Constant folding ------------------------------------------------------

// ConstFolder is a rewriter which replaces operator nodes with constant
// operands by their value. Every replacement counts as one rewrite.
// Operations without a finite result, like division by zero, are left
// untouched.
type ConstFolder struct{}

var _ rewrite.Rewriter[Op] = ConstFolder{}

// Rewrite folds constant sub-expressions of t, at most limit times.
func (cf ConstFolder) Rewrite(t *tree.Node[Op], limit int) (int, error) {
	if t == nil {
		return 0, rewrite.ErrNilTree
	}
	if limit < 0 {
		return 0, fmt.Errorf("%w: %d", rewrite.ErrNegativeLimit, limit)
	}
	count := 0
	for count < limit {
		n, v, ok := firstFoldable(t)
		if !ok {
			break
		}
		path, _ := n.PathFrom(t)
		if err := t.ReplaceAtPath(path, tree.New(Num(v))); err != nil {
			return count, err
		}
		tracer().Debugf("folded constant %v at %v", v, path)
		count++
	}
	return count, nil
}

// firstFoldable finds the first operator node in pre-order with constant
// operands only.
func firstFoldable(t *tree.Node[Op]) (*tree.Node[Op], float64, bool) {
	for n, S := t.Traverse().First(); !S.Done(); n = S.Next() {
		if n.Value().Kind != Operator || n.IsLeaf() {
			continue
		}
		args := make([]float64, 0, n.ChildCount())
		for _, ch := range n.Children() {
			if ch.Value().Kind != Const || !ch.IsLeaf() {
				break
			}
			args = append(args, ch.Value().Val)
		}
		if len(args) != n.ChildCount() {
			continue
		}
		if v, ok := n.Value().eval(args); ok {
			S.Break()
			return n, v, true
		}
	}
	return nil, 0, false
}

// Simplifier returns a rewriter which folds constants and applies the
// arithmetic identities, in rounds, until the expression does not change
// any more.
func Simplifier() rewrite.Rewriter[Op] {
	rw, _ := rewrite.Concat[Op](ConstFolder{}, Identities())
	return rw
}

// Simplify simplifies an arithmetic expression tree in place. It returns the
// number of rewrites applied.
func Simplify(t *tree.Node[Op], limit int) (int, error) {
	return Simplifier().Rewrite(t, limit)
}

// --- Peano arithmetic ------------------------------------------------------

// PeanoRules define addition and multiplication of Peano numbers, which are
// written as 0, S(0), S(S(0)), …
var PeanoRules = []string{
	"add(0,$x) -> $x",
	"add(S($x),$y) -> S(add($x,$y))",
	"mul(0,$x) -> 0",
	"mul(S($x),$y) -> add(mul($x,$y),$y)",
}

var peano *rewrite.TRS[string]
var peanoOnce sync.Once

// Peano returns a TRS for Peano arithmetic on string trees.
func Peano() *rewrite.TRS[string] {
	peanoOnce.Do(func() {
		peano = rewrite.MustParseTRS(func(s string) (string, error) {
			return s, nil
		}, PeanoRules...)
	})
	return peano
}

// PeanoNumber creates the Peano representation of a non-negative integer.
func PeanoNumber(n int) *tree.Node[string] {
	t := tree.New("0")
	for i := 0; i < n; i++ {
		t = tree.New("S", t)
	}
	return t
}

// PeanoValue returns the integer value of a Peano number. If t is not a
// Peano number in normal form, false is returned.
func PeanoValue(t *tree.Node[string]) (int, bool) {
	n := 0
	for t.Value() == "S" && t.ChildCount() == 1 {
		t = t.ChildAt(0)
		n++
	}
	if t.Value() != "0" || !t.IsLeaf() {
		return 0, false
	}
	return n, true
}
