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
)

// separator of matcher pattern and template pattern in rule strings
const ruleSeparator = "->"

// Rule is a tree rewrite rule. It consists of a matcher pattern (left) and a
// template pattern (right):
//
//    add($x,0) -> $x
//
// All the variables of the template have to occur in the matcher.
// Rules are immutable.
type Rule[V comparable] struct {
	left  *Pattern[V]
	right *Pattern[V]
}

var _ Rewriter[string] = &Rule[string]{}

// NewRule creates a rewrite rule. If the template uses variables not
// defined by the matcher, ErrUnboundTemplateVar is returned.
func NewRule[V comparable](left, right *Pattern[V]) (*Rule[V], error) {
	if left == nil || right == nil {
		return nil, fmt.Errorf("%w: missing pattern", ErrRuleSyntax)
	}
	defined := make(map[string]bool, len(left.vars))
	for _, v := range left.vars {
		defined[v.Name()] = true
	}
	var undefined []string
	for _, v := range right.vars {
		if !defined[v.Name()] {
			undefined = append(undefined, v.String())
		}
	}
	if len(undefined) > 0 {
		tracer().Errorf("undefined template variables in rule %s -> %s", left, right)
		return nil, fmt.Errorf("%w '%s': %s", ErrUnboundTemplateVar, left,
			strings.Join(undefined, ", "))
	}
	return &Rule[V]{left: left, right: right}, nil
}

// ParseRule parses a rule string of the form
//
//    matcher -> template
//
// with exactly one separator '->'. Values are converted by mapper.
func ParseRule[V comparable](rule string, mapper func(string) (V, error)) (*Rule[V], error) {
	parts := strings.Split(rule, ruleSeparator)
	if len(parts) < 2 {
		return nil, fmt.Errorf("%w: missing separator '%s' in %q",
			ErrRuleSyntax, ruleSeparator, rule)
	} else if len(parts) > 2 {
		return nil, fmt.Errorf("%w: found %d separators in %q",
			ErrRuleSyntax, len(parts)-1, rule)
	}
	left, err := Compile(strings.TrimSpace(parts[0]), mapper)
	if err != nil {
		return nil, err
	}
	right, err := Compile(strings.TrimSpace(parts[1]), mapper)
	if err != nil {
		return nil, err
	}
	return NewRule(left, right)
}

// ParseStringRule parses a rule string for trees of strings.
func ParseStringRule(rule string) (*Rule[string], error) {
	return ParseRule(rule, identity)
}

// Left returns the matcher pattern of a rule.
func (r *Rule[V]) Left() *Pattern[V] {
	return r.left
}

// Right returns the template pattern of a rule.
func (r *Rule[V]) Right() *Pattern[V] {
	return r.right
}

// Rewrite applies a rule to tree t, in place, at most limit times. It
// returns the number of rule applications.
//
// Every step finds the first match in pre-order, expands the template with
// the bindings of the match and replaces the matched sub-tree with the
// expansion. The next step starts again at the root of t.
func (r *Rule[V]) Rewrite(t *tree.Node[V], limit int) (int, error) {
	if t == nil {
		return 0, ErrNilTree
	}
	if limit < 0 {
		return 0, fmt.Errorf("%w: %d", ErrNegativeLimit, limit)
	}
	count := 0
	for count < limit {
		seq := r.left.Matcher(t).Results()
		if seq.Done() {
			break
		}
		match := seq.Item()
		seq.Break()
		path := match.Path()
		expanded := r.right.Expand(match.bindings)
		if err := t.ReplaceAtPath(path, expanded); err != nil {
			return count, err
		}
		count++
		tracer().Debugf("rule %s applied at %v", r, path)
	}
	return count, nil
}

// MapRule maps the values of a rule to another value type.
func MapRule[V, B comparable](r *Rule[V], f func(V) B) *Rule[B] {
	return &Rule[B]{
		left:  MapPattern(r.left, f),
		right: MapPattern(r.right, f),
	}
}

// Equal tests two rules for equal patterns.
func (r *Rule[V]) Equal(other *Rule[V]) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.left.Equal(other.left) && r.right.Equal(other.right)
}

func (r *Rule[V]) String() string {
	return fmt.Sprintf("%s %s %s", r.left, ruleSeparator, r.right)
}
