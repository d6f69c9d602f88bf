package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"math"

	"github.com/npillmayer/schuko/gconf"

	"github.com/npillmayer/treerw/tree"
)

// Rewriter is the interface for types which rewrite trees in place.
//
// Rewrite applies rewrite steps to tree t, at most limit times, and returns
// the number of steps applied. A limit of 0 performs no work, a negative limit
// is an error (ErrNegativeLimit).
type Rewriter[V comparable] interface {
	Rewrite(t *tree.Node[V], limit int) (int, error)
}

// RewriterFunc is an adapter to use ordinary functions as rewriters.
type RewriterFunc[V comparable] func(t *tree.Node[V], limit int) (int, error)

// Rewrite calls f(t, limit).
func (f RewriterFunc[V]) Rewrite(t *tree.Node[V], limit int) (int, error) {
	return f(t, limit)
}

// Unlimited is the limit to use for rewriting a tree until no more rewrites
// apply.
const Unlimited = math.MaxInt

// RewriteAll rewrites a tree with rewriter r until no more rewrites apply.
// Beware: this will not terminate for rewriters which never reach a normal
// form.
func RewriteAll[V comparable](r Rewriter[V], t *tree.Node[V]) (int, error) {
	return r.Rewrite(t, Unlimited)
}

// Apply rewrites a tree with a list of rewriters, in rounds. Every round
// calls every rewriter once, in order. Rounds are repeated as long as the
// previous round applied at least one rewrite, but never more than limit
// rewrites will be applied in total. Apply returns the number of rewrites
// applied.
//
// If configuration flag 'panic-on-rewrite-limit' is set, Apply panics when
// the limit has been exhausted before the tree reached a normal form. This
// is intended as a debugging aid for rule sets which fail to terminate.
func Apply[V comparable](t *tree.Node[V], limit int, rewriters ...Rewriter[V]) (int, error) {
	if t == nil {
		return 0, ErrNilTree
	}
	if limit < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeLimit, limit)
	}
	total, round := 0, 0
	for total < limit {
		round++
		count := 0
		for _, r := range rewriters {
			if total+count >= limit {
				break
			}
			n, err := r.Rewrite(t, limit-total-count)
			count += n
			if err != nil {
				return total + count, err
			}
		}
		total += count
		tracer().Infof("rewrite round %d: %d rewrites", round, count)
		if count == 0 {
			return total, nil
		}
	}
	if limit > 0 && gconf.GetBool("panic-on-rewrite-limit") && !isNormalForm(t, rewriters) {
		panic(fmt.Sprintf("rewrite limit of %d reached for tree %v", limit, t))
	}
	return total, nil
}

// isNormalForm checks if none of the rewriters is able to rewrite a copy
// of t. Nested calls of Apply may panic on the copy, which happens only
// after a rewrite has been applied.
func isNormalForm[V comparable](t *tree.Node[V], rewriters []Rewriter[V]) (normal bool) {
	defer func() {
		if r := recover(); r != nil {
			normal = false
		}
	}()
	for _, r := range rewriters {
		if n, err := r.Rewrite(t.Copy(), 1); err == nil && n > 0 {
			return false
		}
	}
	return true
}

// Concat creates a rewriter which applies a list of rewriters in rounds,
// as Apply does.
func Concat[V comparable](rewriters ...Rewriter[V]) (Rewriter[V], error) {
	if len(rewriters) == 0 {
		return nil, ErrNoRewriters
	}
	rws := make([]Rewriter[V], len(rewriters))
	copy(rws, rewriters)
	return RewriterFunc[V](func(t *tree.Node[V], limit int) (int, error) {
		return Apply(t, limit, rws...)
	}), nil
}
