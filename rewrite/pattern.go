package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"

	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/treerw/tree"
	"golang.org/x/exp/slices"
)

// Pattern is a tree pattern. It consists of a tree of declarations, i.e. of
// pattern variables and values. Patterns are created by compiling pattern
// strings:
//
//    p, err := rewrite.CompileString("add($x,add($y,sin(x)))")
//
// Patterns are immutable.
type Pattern[V comparable] struct {
	decls *tree.Node[Decl[V]]
	vars  []Decl[V] // sorted by name, no duplicates
}

// NewPattern creates a pattern from a tree of declarations. The tree is
// copied, clients may safely modify it after the call. Every variable of the
// tree must be a leaf, otherwise ErrVarNotLeaf is returned.
func NewPattern[V comparable](decls *tree.Node[Decl[V]]) (*Pattern[V], error) {
	if decls == nil {
		return nil, fmt.Errorf("cannot create pattern from nil tree")
	}
	return newPattern(decls.Copy())
}

func newPattern[V comparable](decls *tree.Node[Decl[V]]) (*Pattern[V], error) {
	names := treeset.NewWithStringComparator()
	for n, S := decls.Traverse().First(); !S.Done(); n = S.Next() {
		if !n.Value().IsVar() {
			continue
		}
		if !n.IsLeaf() {
			tracer().Errorf("variable node '%s' is not a leaf", n.Value())
			return nil, fmt.Errorf("%w: '%s'", ErrVarNotLeaf, n)
		}
		names.Add(n.Value().Name())
	}
	vars := make([]Decl[V], 0, names.Size())
	for _, name := range names.Values() {
		vars = append(vars, Decl[V]{kind: varDecl, name: name.(string)})
	}
	return &Pattern[V]{decls: decls, vars: vars}, nil
}

// Compile compiles a pattern string. Leaf tokens starting with '$' are
// pattern variables, all other tokens are converted to values by mapper.
//
//    p, err := rewrite.Compile("add($x,0)", arith.ParseOp)
//
func Compile[V comparable](pattern string, mapper func(string) (V, error)) (*Pattern[V], error) {
	decls, err := tree.Parse(pattern, func(token string) (Decl[V], error) {
		return parseDecl(token, mapper)
	})
	if err != nil {
		return nil, err
	}
	p, err := newPattern(decls)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("compiled pattern %s", p)
	return p, nil
}

// CompileString compiles a pattern string with string values.
func CompileString(pattern string) (*Pattern[string], error) {
	return Compile(pattern, identity)
}

// MustCompile is like Compile, but panics if the pattern cannot be compiled.
// It is intended for package level pattern variables.
func MustCompile[V comparable](pattern string, mapper func(string) (V, error)) *Pattern[V] {
	p, err := Compile(pattern, mapper)
	if err != nil {
		panic(err)
	}
	return p
}

// MustCompileString is like CompileString, but panics on error.
func MustCompileString(pattern string) *Pattern[string] {
	return MustCompile(pattern, identity)
}

func identity(s string) (string, error) {
	return s, nil
}

// Tree returns a copy of the declaration tree of a pattern.
func (p *Pattern[V]) Tree() *tree.Node[Decl[V]] {
	return p.decls.Copy()
}

// Vars returns the variables of a pattern, sorted by name and without
// duplicates.
func (p *Pattern[V]) Vars() []Decl[V] {
	return slices.Clone(p.vars)
}

// Matches is a predicate: does the pattern match tree t (at its root)?
func (p *Pattern[V]) Matches(t *tree.Node[V]) bool {
	_, ok := p.Match(t)
	return ok
}

// Match tries to match tree t (at its root). If successful, the bindings of
// the pattern variables are returned as part of the match result.
func (p *Pattern[V]) Match(t *tree.Node[V]) (*MatchResult[V], bool) {
	bindings, ok := p.match(t)
	if !ok {
		return nil, false
	}
	return &MatchResult[V]{node: t, origin: t, bindings: bindings}, true
}

// pair of pattern node and tree node
type matchTask[V comparable] struct {
	decl *tree.Node[Decl[V]]
	node *tree.Node[V]
}

// match is a single pass over pattern and tree. There is no backtracking:
// the first mismatch fails the whole match.
func (p *Pattern[V]) match(t *tree.Node[V]) (map[string]*tree.Node[V], bool) {
	if t == nil {
		return nil, false
	}
	bindings := make(map[string]*tree.Node[V], len(p.vars))
	stack := arraystack.New()
	stack.Push(matchTask[V]{p.decls, t})
	for !stack.Empty() {
		x, _ := stack.Pop()
		task := x.(matchTask[V])
		d := task.decl.Value()
		if d.IsVar() {
			if bound, ok := bindings[d.Name()]; ok {
				if !bound.Equal(task.node) {
					return nil, false
				}
			} else {
				bindings[d.Name()] = task.node
			}
			continue
		}
		if d.Value() != task.node.Value() || task.decl.ChildCount() != task.node.ChildCount() {
			return nil, false
		}
		for i := task.decl.ChildCount() - 1; i >= 0; i-- {
			stack.Push(matchTask[V]{task.decl.ChildAt(i), task.node.ChildAt(i)})
		}
	}
	return bindings, true
}

// Expand creates a new tree from a pattern, substituting variables with
// copies of the sub-trees they are bound to.
//
// Variables without a binding are dropped from the resulting tree. If the
// pattern consists of a single unbound variable, Expand returns nil.
func (p *Pattern[V]) Expand(bindings map[string]*tree.Node[V]) *tree.Node[V] {
	if p.decls.Value().IsVar() {
		if bound, ok := bindings[p.decls.Value().Name()]; ok && bound != nil {
			return bound.Copy()
		}
		return nil
	}
	root := tree.New(p.decls.Value().Value())
	stack := arraystack.New()
	stack.Push(matchTask[V]{p.decls, root})
	for !stack.Empty() {
		x, _ := stack.Pop()
		task := x.(matchTask[V])
		for _, ch := range task.decl.Children() {
			d := ch.Value()
			if d.IsVar() {
				if bound, ok := bindings[d.Name()]; ok && bound != nil {
					task.node.Append(bound.Copy())
				} else {
					tracer().Debugf("expand: dropping unbound variable %s", d)
				}
				continue
			}
			n := tree.New(d.Value())
			task.node.Append(n)
			stack.Push(matchTask[V]{ch, n})
		}
	}
	return root
}

// MapPattern maps the values of a pattern to another value type. Variables
// remain unchanged.
func MapPattern[V, B comparable](p *Pattern[V], f func(V) B) *Pattern[B] {
	decls := tree.Map(p.decls, func(d Decl[V]) Decl[B] {
		return mapDecl(d, f)
	})
	vars := make([]Decl[B], len(p.vars))
	for i, v := range p.vars {
		vars[i] = mapDecl(v, f)
	}
	return &Pattern[B]{decls: decls, vars: vars}
}

// Matcher creates a matcher for finding this pattern in a tree.
func (p *Pattern[V]) Matcher(t *tree.Node[V]) *Matcher[V] {
	return &Matcher[V]{pattern: p, tree: t}
}

// Equal tests two patterns for structural equality.
func (p *Pattern[V]) Equal(other *Pattern[V]) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.decls.Equal(other.decls)
}

func (p *Pattern[V]) String() string {
	if p == nil {
		return "<nil>"
	}
	return p.decls.Format(func(d Decl[V]) string {
		return d.String()
	})
}
