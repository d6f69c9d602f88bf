package tree

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

var inputStrings = []string{
	"a",
	"add(1,2)",
	"add(1,add(2,3))",
	"mul(div(cos(1.0),cos(π)),sin(mul(1.0,z)))",
	"0(1(4,5),2(6),3(7(10,11),8,9))",
}

func TestParseAndFormat(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	for i, input := range inputStrings {
		tree, err := ParseString(input)
		if err != nil {
			t.Errorf("#%d: cannot parse %q: %v", i, input, err)
			continue
		}
		if tree.String() != input {
			t.Errorf("#%d: expected %q, have %q", i, input, tree.String())
		}
	}
}

func TestParseWhitespace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	tree, err := ParseString(" mul( div(cos( 1.0) , cos(π )), sin(mul(1.0, z) ) ) ")
	if err != nil {
		t.Fatal(err)
	}
	expected := "mul(div(cos(1.0),cos(π)),sin(mul(1.0,z)))"
	if tree.String() != expected {
		t.Errorf("expected %q, have %q", expected, tree.String())
	}
}

func TestParseInts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	tree, err := Parse("0(1(4,5),2(6),3(7(10,11),8,9))", strconv.Atoi)
	if err != nil {
		t.Fatal(err)
	}
	sum := 0
	for n, S := tree.Traverse().First(); !S.Done(); n = S.Next() {
		sum += n.Value()
	}
	if sum != 66 {
		t.Errorf("expected sum of node values to be 66, is %d", sum)
	}
	if _, err = Parse("0(1,x)", strconv.Atoi); err == nil {
		t.Errorf("expected mapper error for value 'x'")
	}
}

var malformed = []string{
	"",
	"   ",
	"f(",
	"f()",
	"f(a,)",
	"f(,a)",
	"(a)",
	"a,b",
	"a b",
	"f(a))",
	"f(a)(b)",
	`abc\`,
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	for _, input := range malformed {
		if _, err := ParseString(input); !errors.Is(err, ErrTreeSyntax) {
			t.Errorf("expected syntax error for %q, have %v", input, err)
		}
	}
}

func TestSyntaxErrorPosition(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	_, err := ParseString("f(a),b")
	if !errors.Is(err, ErrTreeSyntax) {
		t.Fatalf("expected syntax error, have %v", err)
	}
	if !strings.Contains(err.Error(), `(4…5)`) || !strings.Contains(err.Error(), `following "f(a)"`) {
		t.Errorf("expected error to point to position 4, have %v", err)
	}
	_, err = ParseString("f(a")
	if !errors.Is(err, ErrTreeSyntax) || !strings.Contains(err.Error(), "end of input") {
		t.Errorf("expected error at end of input, have %v", err)
	}
}

func TestEscaping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	input := `f(a\,b,c\(d\),x\ y)`
	tree := MustParse(input)
	if tree.ChildCount() != 3 {
		t.Fatalf("expected 3 children, have %d", tree.ChildCount())
	}
	if v := tree.ChildAt(0).Value(); v != "a,b" {
		t.Errorf("expected first child to be 'a,b', is %q", v)
	}
	if v := tree.ChildAt(1).Value(); v != "c(d)" {
		t.Errorf("expected second child to be 'c(d)', is %q", v)
	}
	if v := tree.ChildAt(2).Value(); v != "x y" {
		t.Errorf("expected third child to be 'x y', is %q", v)
	}
	if tree.String() != input {
		t.Errorf("expected escaped output %q, have %q", input, tree.String())
	}
	if u := Unescape(`\$x`); u != `\$x` {
		t.Errorf("expected non-structural escape to be kept, have %q", u)
	}
}

func TestTraversePreOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	tree := MustParse("0(1(4,5),2(6),3(7(10,11),8,9))")
	var values []string
	for _, n := range tree.Traverse().List() {
		values = append(values, n.Value())
	}
	order := strings.Join(values, " ")
	if order != "0 1 4 5 2 6 3 7 10 11 8 9" {
		t.Errorf("unexpected pre-order: %s", order)
	}
	// a sequence may be restarted by traversing again
	if tree.Traverse().Item() != tree || tree.Size() != 12 {
		t.Errorf("expected fresh traversal to start at the root")
	}
	leaves := tree.Traverse().Where(IsLeaf[string]()).List()
	if len(leaves) != 7 {
		t.Errorf("expected 7 leaves, have %d", len(leaves))
	}
}

func TestSeqBreak(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	seq := MustParse("a(b,c,d)").Traverse()
	seq.Next()
	seq.Break()
	if !seq.Done() || seq.Next() != nil {
		t.Errorf("expected sequence to stop after Break()")
	}
}

func TestPaths(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	tree := MustParse("mul(div(cos(1.0),cos(π)),sin(mul(1.0,z)))")
	path, err := PathOf(1, 0, 1)
	if err != nil {
		t.Fatal(err)
	}
	z, ok := tree.ChildAtPath(path)
	if !ok || z.Value() != "z" {
		t.Fatalf("expected to find 'z' at %v", path)
	}
	if !z.ChildPath().Equal(path) {
		t.Errorf("expected child path of 'z' to be %v, is %v", path, z.ChildPath())
	}
	if z.Root() != tree {
		t.Errorf("expected root of 'z' to be the tree")
	}
	if _, ok := tree.ChildAtPath(Path{0, 2}); ok {
		t.Errorf("expected path [0 2] to be invalid")
	}
	if _, err := PathOf(0, -1); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected negative index to be rejected")
	}
	if p := path.Parent(); p.String() != "[1 0]" {
		t.Errorf("expected parent path [1 0], have %s", p)
	}
}

func TestReplaceAtPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	tree := MustParse("add(1,add(2,3))")
	if err := tree.ReplaceAtPath(Path{1}, MustParse("mul(x,y)")); err != nil {
		t.Fatal(err)
	}
	if tree.String() != "add(1,mul(x,y))" {
		t.Errorf("unexpected tree after replace: %s", tree)
	}
	mul := tree.ChildAt(1)
	if mul.Parent() != tree {
		t.Errorf("expected replacement to be linked to its new parent")
	}
	// replacing the root keeps the identity of the root node
	root := tree
	if err := tree.ReplaceAtPath(Path{}, MustParse("S(S(0))")); err != nil {
		t.Fatal(err)
	}
	if root != tree || tree.String() != "S(S(0))" || tree.ChildAt(0).Parent() != tree {
		t.Errorf("unexpected tree after replacing root: %s", tree)
	}
	if err := tree.ReplaceAtPath(Path{3}, MustParse("x")); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected invalid path error, have %v", err)
	}
}

func TestRemoveAtPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	tree := MustParse("add(x,y,1)")
	if err := tree.RemoveAtPath(Path{1}); err != nil {
		t.Fatal(err)
	}
	if tree.String() != "add(x,1)" {
		t.Errorf("unexpected tree after remove: %s", tree)
	}
	if err := tree.RemoveAtPath(Path{}); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("expected root removal to fail")
	}
}

func TestCopyAndEqual(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	for _, input := range inputStrings {
		tree := MustParse(input)
		c := tree.Copy()
		if c == tree || !c.Equal(tree) {
			t.Errorf("expected copy of %s to be equal, but not identical", input)
		}
		c.SetValue("other")
		if c.Equal(tree) {
			t.Errorf("expected modified copy of %s to differ", input)
		}
	}
	if MustParse("f(a,b)").Equal(MustParse("f(a)")) {
		t.Errorf("expected trees of different shape to differ")
	}
}

func TestDeepTree(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	root := New("S")
	n := root
	for i := 0; i < 100000; i++ {
		ch := New("S")
		n.Append(ch)
		n = ch
	}
	n.Append(New("0"))
	c := root.Copy()
	if !c.Equal(root) || c.Size() != 100002 {
		t.Errorf("expected deep copy of a deep tree")
	}
	m := Map(root, func(s string) int { return len(s) })
	if m.Size() != 100002 {
		t.Errorf("expected mapped deep tree")
	}
}

func TestFlatten(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "treerw.tree")
	defer teardown()
	//
	tree := MustParse("add(1,sin(x))")
	flat := Flatten(tree)
	expected := []FlatNode[string]{
		{"add", 1, 2}, {"1", -1, 0}, {"sin", 3, 1}, {"x", -1, 0},
	}
	if len(flat) != len(expected) {
		t.Fatalf("expected %d flat nodes, have %d", len(expected), len(flat))
	}
	for i := range expected {
		if flat[i] != expected[i] {
			t.Errorf("flat node #%d: expected %v, have %v", i, expected[i], flat[i])
		}
	}
	for _, input := range inputStrings {
		tree := MustParse(input)
		u, err := Unflatten(Flatten(tree))
		if err != nil || !u.Equal(tree) {
			t.Errorf("expected %s to survive flattening, have %v (%v)", input, u, err)
		}
	}
	broken := []FlatNode[string]{{"f", 1, 2}, {"a", -1, 0}}
	if _, err := Unflatten(broken); !errors.Is(err, ErrTreeSyntax) {
		t.Errorf("expected inconsistent flat tree to be rejected")
	}
}
