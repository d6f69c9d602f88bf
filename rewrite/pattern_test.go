package rewrite

import (
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/treerw/tree"
)

var patternStrings = []string{
	"$x",
	"add($x,0)",
	"add($x,$x)",
	"add($a,add($b,sin(x)))",
	"mul(div(cos($x),cos(π)),sin(mul(1.0,$z)))",
	"f($y,g($x,$y),h)",
}

func TestVarNames(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	for _, name := range []string{"x", "x_1", "_", "Grüße", "αβ"} {
		if _, err := Var[string](name); err != nil {
			t.Errorf("expected %q to be a valid variable name, have %v", name, err)
		}
	}
	for _, name := range []string{"", "1x", "x-y", "x y", "$x"} {
		if _, err := Var[string](name); !errors.Is(err, ErrInvalidVariable) {
			t.Errorf("expected %q to be an invalid variable name", name)
		}
	}
	if _, err := CompileString("add($1,2)"); !errors.Is(err, ErrInvalidVariable) {
		t.Errorf("expected pattern with variable '$1' to be rejected, have %v", err)
	}
}

func TestDecl(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	x, _ := Var[int]("x")
	if !x.IsVar() || x.Name() != "x" || x.String() != "$x" {
		t.Errorf("unexpected variable declaration %v", x)
	}
	v := Val(42)
	if v.IsVar() || v.Value() != 42 || v.String() != "42" {
		t.Errorf("unexpected value declaration %v", v)
	}
	y, _ := Var[int]("x")
	if x != y || x == v {
		t.Errorf("expected declarations to compare by name and value")
	}
}

func TestVarNotLeaf(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	if _, err := CompileString("add($x(1),2)"); !errors.Is(err, ErrVarNotLeaf) {
		t.Errorf("expected non-leaf variable to be rejected, have %v", err)
	}
	x, _ := Var[string]("x")
	decls := tree.New(x, tree.New(Val("1")))
	if _, err := NewPattern(decls); !errors.Is(err, ErrVarNotLeaf) {
		t.Errorf("expected non-leaf variable to be rejected, have %v", err)
	}
}

func TestPatternRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	for _, s := range patternStrings {
		p := MustCompileString(s)
		if p.String() != s {
			t.Errorf("expected pattern string %q, have %q", s, p.String())
		}
		q, err := CompileString(p.String())
		if err != nil || !q.Equal(p) {
			t.Errorf("expected re-compiled pattern %s to be equal", p)
		}
	}
	p := MustCompileString(`f(\$x,$y)`)
	if len(p.Vars()) != 1 || p.Vars()[0].Name() != "y" {
		t.Errorf("expected escaped '$' to denote a value, have vars %v", p.Vars())
	}
	if v := p.Tree().ChildAt(0).Value(); v.IsVar() || v.Value() != "$x" {
		t.Errorf("expected value '$x', have %v", v)
	}
	if q := MustCompileString(p.String()); !q.Equal(p) {
		t.Errorf("expected %s to survive re-compilation", p)
	}
}

func TestEscapedWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	p := MustCompileString(`f(a\ )`)
	if v := p.Tree().ChildAt(0).Value().Value(); v != "a " {
		t.Errorf("expected escaped blank to be part of the value, have %q", v)
	}
	if !p.Matches(tree.MustParse(`f(a\ )`)) {
		t.Errorf("expected %s to match a tree of the same text", p)
	}
	if p.Matches(tree.MustParse("f(a)")) {
		t.Errorf("expected %s not to match f(a)", p)
	}
}

func TestEscapedValueRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	for _, value := range []string{"$x", `\$x`, `\\$x`, `a\b`, `\x`} {
		p, err := NewPattern(tree.New(Val("f"), tree.New(Val(value))))
		if err != nil {
			t.Fatal(err)
		}
		q, err := CompileString(p.String())
		if err != nil {
			t.Fatalf("cannot re-compile %s: %v", p, err)
		}
		if !q.Equal(p) {
			t.Errorf("expected value %q to survive re-compilation, have %s", value, q)
		}
		if len(q.Vars()) != 0 {
			t.Errorf("expected no variables in %s, have %v", q, q.Vars())
		}
	}
}

func TestPatternVars(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	p := MustCompileString("f($y,g($x,$y),$a,h)")
	var names []string
	for _, v := range p.Vars() {
		names = append(names, v.Name())
	}
	if strings.Join(names, " ") != "a x y" {
		t.Errorf("expected sorted vars [a x y], have %v", names)
	}
}

func TestRepeatedVariable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	p := MustCompileString("add($x,$x)")
	if !p.Matches(tree.MustParse("add(1,1)")) {
		t.Errorf("expected %s to match add(1,1)", p)
	}
	if p.Matches(tree.MustParse("add(1,2)")) {
		t.Errorf("expected %s not to match add(1,2)", p)
	}
	if !p.Matches(tree.MustParse("add(sin(x),sin(x))")) {
		t.Errorf("expected %s to match add(sin(x),sin(x))", p)
	}
	if p.Matches(tree.MustParse("add(sin(x),sin(y))")) {
		t.Errorf("expected %s not to match add(sin(x),sin(y))", p)
	}
}

func TestMatchBindings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	p := MustCompileString("add($a,add($b,sin(x)))")
	m, ok := p.Match(tree.MustParse("add(1,add(2,sin(x)))"))
	if !ok {
		t.Fatalf("expected pattern %s to match", p)
	}
	bindings := m.Bindings()
	if len(bindings) != 2 || bindings["a"].String() != "1" || bindings["b"].String() != "2" {
		t.Errorf("expected bindings {a: 1, b: 2}, have %s", spew.Sdump(bindings))
	}
	if m.String() != "{a: 1, b: 2}" {
		t.Errorf("unexpected match result string %s", m)
	}
	if _, ok := p.Match(tree.MustParse("add(1,add(2,sin(y)))")); ok {
		t.Errorf("expected pattern not to match a different leaf value")
	}
	if p.Matches(tree.MustParse("add(1,add(2,sin(x),3))")) {
		t.Errorf("expected pattern not to match node with extra child")
	}
}

func TestMatchSoundness(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	targets := []string{
		"add(1,add(2,sin(x)))",
		"mul(div(cos(1.0),cos(π)),sin(mul(1.0,z)))",
		"add(f(a,b),f(a,b))",
		"f(1,g(2,1),h)",
	}
	for _, s := range patternStrings {
		p := MustCompileString(s)
		for _, target := range targets {
			t1 := tree.MustParse(target)
			for r, S := p.Matcher(t1).Results().First(); !S.Done(); r = S.Next() {
				if e := p.Expand(r.Bindings()); !e.Equal(r.Node()) {
					t.Errorf("expansion of %s with %v is %v, but matched node is %v",
						p, r, e, r.Node())
				}
			}
		}
	}
}

func TestExpand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	p := MustCompileString("add($x,$y,1)")
	bindings := map[string]*tree.Node[string]{
		"x": tree.MustParse("sin(x)"),
		"y": tree.MustParse("sin(y)"),
	}
	e := p.Expand(bindings)
	if e.String() != "add(sin(x),sin(y),1)" {
		t.Errorf("expected add(sin(x),sin(y),1), have %v", e)
	}
	if e.ChildAt(0) == bindings["x"] {
		t.Errorf("expected expansion to copy bound sub-trees")
	}
}

func TestExpandPartialBindings(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	p := MustCompileString("add($x,$y,1)")
	e := p.Expand(map[string]*tree.Node[string]{"x": tree.MustParse("sin(x)")})
	if e.String() != "add(sin(x),1)" {
		t.Errorf("expected unbound variable to be dropped, have %v", e)
	}
	if e := MustCompileString("$z").Expand(nil); e != nil {
		t.Errorf("expected expansion of unbound root variable to be nil, have %v", e)
	}
}

func TestMapPattern(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	p := MustCompileString("add($x,sin($y))")
	q := MapPattern(p, strings.ToUpper)
	if q.String() != "ADD($x,SIN($y))" {
		t.Errorf("expected ADD($x,SIN($y)), have %s", q)
	}
	if len(q.Vars()) != 2 || q.Vars()[1].Name() != "y" {
		t.Errorf("expected variables to survive mapping, have %v", q.Vars())
	}
	lengths := MapPattern(p, func(s string) int { return len(s) })
	if lengths.String() != "3($x,3($y))" {
		t.Errorf("expected 3($x,3($y)), have %s", lengths)
	}
}

func TestMatcherResults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	m := MustCompileString("add($x,$y)").Matcher(tree.MustParse("add(1,add(2,3))"))
	if !m.Matches() {
		t.Errorf("expected matcher to match at the root")
	}
	results := m.All()
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, have %d", len(results))
	}
	if results[0].Node().String() != "add(1,add(2,3))" || !results[0].Path().IsRoot() {
		t.Errorf("expected first match to be the whole tree, is %v", results[0].Node())
	}
	if results[1].Node().String() != "add(2,3)" || results[1].Path().String() != "[1]" {
		t.Errorf("expected second match add(2,3) at [1], is %v at %v",
			results[1].Node(), results[1].Path())
	}
	// sequences are restartable
	if again := m.All(); len(again) != 2 || again[1].Node() != results[1].Node() {
		t.Errorf("expected results to be restartable")
	}
	x, ok := results[1].Binding("x")
	if !ok || x.Value() != "2" {
		t.Errorf("expected $x to be bound to 2, have %v", x)
	}
	if !m.Pattern().Matcher(tree.MustParse("sub(1,2)")).Results().Done() {
		t.Errorf("expected no results for non-matching tree")
	}
}

func TestMatchPathInSubtree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.rewrite")
	defer teardown()
	//
	root := tree.MustParse("f(g(a,h(b)),c)")
	sub := root.ChildAt(0)
	r, S := MustCompileString("h($x)").Matcher(sub).Results().First()
	if S.Done() {
		t.Fatalf("expected a match in sub-tree")
	}
	if r.Path().String() != "[1]" {
		t.Errorf("expected path relative to the matched sub-tree, have %v", r.Path())
	}
}
