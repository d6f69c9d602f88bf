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

	"github.com/cnf/structhash"
	"github.com/npillmayer/treerw/tree"
)

// TRS is a term rewriting system, i.e. an ordered, non-empty list of rewrite
// rules. A TRS rewrites trees by applying its rules in rounds, until no rule
// applies any more or the rewrite limit is reached.
//
//    trs, err := rewrite.ParseStringTRS(
//        "add(0,$x) -> $x",
//        "add(S($x),$y) -> S(add($x,$y))",
//    )
//    n, err := trs.Rewrite(t, rewrite.Unlimited)
//
// A TRS is immutable.
type TRS[V comparable] struct {
	rules []*Rule[V]
}

var _ Rewriter[string] = &TRS[string]{}

// NewTRS creates a term rewriting system from a list of rules.
func NewTRS[V comparable](rules ...*Rule[V]) (*TRS[V], error) {
	if len(rules) == 0 {
		return nil, ErrEmptyRuleSet
	}
	rs := make([]*Rule[V], 0, len(rules))
	for i, r := range rules {
		if r == nil {
			return nil, fmt.Errorf("%w: rule #%d is nil", ErrRuleSyntax, i)
		}
		rs = append(rs, r)
	}
	return &TRS[V]{rules: rs}, nil
}

// ParseTRS creates a term rewriting system from a list of rule strings.
// Values are converted by mapper.
func ParseTRS[V comparable](mapper func(string) (V, error), rules ...string) (*TRS[V], error) {
	rs := make([]*Rule[V], 0, len(rules))
	for _, s := range rules {
		r, err := ParseRule(s, mapper)
		if err != nil {
			return nil, err
		}
		rs = append(rs, r)
	}
	return NewTRS(rs...)
}

// ParseStringTRS creates a term rewriting system for trees of strings.
func ParseStringTRS(rules ...string) (*TRS[string], error) {
	return ParseTRS(identity, rules...)
}

// MustParseTRS is like ParseTRS, but panics on error. It is intended for
// package level rule sets.
func MustParseTRS[V comparable](mapper func(string) (V, error), rules ...string) *TRS[V] {
	trs, err := ParseTRS(mapper, rules...)
	if err != nil {
		panic(err)
	}
	return trs
}

// Rules returns the rules of a TRS.
func (trs *TRS[V]) Rules() []*Rule[V] {
	rs := make([]*Rule[V], len(trs.rules))
	copy(rs, trs.rules)
	return rs
}

// Rewrite rewrites tree t in place, applying the rules of the TRS in rounds
// (see Apply). It returns the number of rule applications.
func (trs *TRS[V]) Rewrite(t *tree.Node[V], limit int) (int, error) {
	rws := make([]Rewriter[V], len(trs.rules))
	for i, r := range trs.rules {
		rws[i] = r
	}
	return Apply(t, limit, rws...)
}

// MapTRS maps the values of all the rules of a TRS to another value type.
func MapTRS[V, B comparable](trs *TRS[V], f func(V) B) *TRS[B] {
	rs := make([]*Rule[B], len(trs.rules))
	for i, r := range trs.rules {
		rs[i] = MapRule(r, f)
	}
	return &TRS[B]{rules: rs}
}

// Equal tests two rule sets for equal rules, in equal order.
func (trs *TRS[V]) Equal(other *TRS[V]) bool {
	if trs == nil || other == nil {
		return trs == other
	}
	if len(trs.rules) != len(other.rules) {
		return false
	}
	for i, r := range trs.rules {
		if !r.Equal(other.rules[i]) {
			return false
		}
	}
	return true
}

// String lists the rules of a TRS, one rule per line.
func (trs *TRS[V]) String() string {
	var b strings.Builder
	for i, r := range trs.rules {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(r.String())
	}
	return b.String()
}

// ruleStrings returns the rules of a TRS in text form.
func (trs *TRS[V]) ruleStrings() []string {
	rs := make([]string, len(trs.rules))
	for i, r := range trs.rules {
		rs[i] = r.String()
	}
	return rs
}

// Fingerprint returns a hash of the rules of a TRS. Rule sets with equal
// rules in equal order have equal fingerprints.
func (trs *TRS[V]) Fingerprint() (string, error) {
	doc := struct {
		Rules []string `hash:"name:rules"`
	}{
		Rules: trs.ruleStrings(),
	}
	return structhash.Hash(doc, 1)
}
