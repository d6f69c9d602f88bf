package arith

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/treerw/tree"
)

// OpKind is the category of an Op.
type OpKind uint8

// Categories of Ops
const (
	Symbol   OpKind = iota // a variable of an expression, e.g. 'x'
	Const                  // a numeric constant
	Operator               // an arithmetic operator, e.g. 'add'
)

func (k OpKind) String() string {
	switch k {
	case Symbol:
		return "symbol"
	case Const:
		return "const"
	case Operator:
		return "operator"
	}
	return fmt.Sprintf("<kind %d>", k)
}

// Op is the value type of arithmetic expression trees. Ops are comparable.
type Op struct {
	Kind OpKind
	Name string  // operator or symbol name, name of named constants
	Val  float64 // value of constants
}

type operator struct {
	arity int
	eval  func(args []float64) float64
}

var operators = map[string]operator{
	"add": {2, func(a []float64) float64 { return a[0] + a[1] }},
	"sub": {2, func(a []float64) float64 { return a[0] - a[1] }},
	"mul": {2, func(a []float64) float64 { return a[0] * a[1] }},
	"div": {2, func(a []float64) float64 { return a[0] / a[1] }},
	"pow": {2, func(a []float64) float64 { return math.Pow(a[0], a[1]) }},
	"neg": {1, func(a []float64) float64 { return -a[0] }},
	"sin": {1, func(a []float64) float64 { return math.Sin(a[0]) }},
	"cos": {1, func(a []float64) float64 { return math.Cos(a[0]) }},
}

var namedConsts = map[string]float64{
	"π":  math.Pi,
	"pi": math.Pi,
	"e":  math.E,
}

// Num creates a numeric constant.
func Num(v float64) Op {
	return Op{Kind: Const, Val: v}
}

// ParseOp interprets a string as an Op. It is suitable as a value mapper
// for compiling patterns and parsing trees:
//
//    p, err := rewrite.Compile("add($x,0)", arith.ParseOp)
//
// Operator names are 'add', 'sub', 'mul', 'div', 'pow', 'neg', 'sin' and
// 'cos'. Numbers and the named constants 'π', 'pi' and 'e' are constants.
// Identifiers denote symbols.
func ParseOp(s string) (Op, error) {
	s = strings.TrimSpace(s)
	if _, ok := operators[s]; ok {
		return Op{Kind: Operator, Name: s}, nil
	}
	if v, ok := namedConsts[s]; ok {
		return Op{Kind: Const, Name: s, Val: v}, nil
	}
	if v, ok := parseNumber(s); ok {
		return Num(v), nil
	}
	if !isSymbol(s) {
		return Op{}, fmt.Errorf("not a valid arithmetic value: %q", s)
	}
	return Op{Kind: Symbol, Name: s}, nil
}

// parseNumber accepts finite decimal numbers only, leaving 'inf' and 'nan'
// to be symbols.
func parseNumber(s string) (float64, bool) {
	if strings.ContainsAny(s, "xXpP_") {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

func isSymbol(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if !(r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))) {
			return false
		}
	}
	return true
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *Op) UnmarshalText(text []byte) error {
	o, err := ParseOp(string(text))
	if err != nil {
		return err
	}
	*op = o
	return nil
}

// Arity returns the number of operands of an operator and 0 otherwise.
func (op Op) Arity() int {
	if op.Kind != Operator {
		return 0
	}
	return operators[op.Name].arity
}

func (op Op) String() string {
	if op.Kind == Const && op.Name == "" {
		return strconv.FormatFloat(op.Val, 'g', -1, 64)
	}
	return op.Name
}

// eval evaluates an operator for constant arguments. It returns false if
// the result is not a finite number.
func (op Op) eval(args []float64) (float64, bool) {
	o, ok := operators[op.Name]
	if op.Kind != Operator || !ok || len(args) != o.arity {
		return 0, false
	}
	v := o.eval(args)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// --- Expressions -----------------------------------------------------------

// ParseExpr parses an arithmetic expression tree:
//
//    t, err := arith.ParseExpr("add(mul(x,1),sin(0))")
//
// Operators have to have the correct number of operands, otherwise ErrArity
// is returned.
func ParseExpr(s string) (*tree.Node[Op], error) {
	t, err := tree.Parse(s, ParseOp)
	if err != nil {
		return nil, err
	}
	for n, S := t.Traverse().First(); !S.Done(); n = S.Next() {
		if n.ChildCount() != n.Value().Arity() {
			return nil, fmt.Errorf("%w: '%s' has %d operands in %q",
				ErrArity, n.Value(), n.ChildCount(), s)
		}
	}
	return t, nil
}

// MustParseExpr is like ParseExpr, but panics on error.
func MustParseExpr(s string) *tree.Node[Op] {
	t, err := ParseExpr(s)
	if err != nil {
		panic(err)
	}
	return t
}

// Eval evaluates an expression tree, with symbols taking their values from
// an environment. It returns an error for unbound symbols and for results
// which are not finite numbers.
func Eval(t *tree.Node[Op], env map[string]float64) (float64, error) {
	// post-order evaluation with an explicit stack of pending operands
	var operands []float64
	nodes := t.Traverse().List()
	for i := len(nodes) - 1; i >= 0; i-- {
		op := nodes[i].Value()
		switch op.Kind {
		case Const:
			operands = append(operands, op.Val)
		case Symbol:
			v, ok := env[op.Name]
			if !ok {
				return 0, fmt.Errorf("unbound symbol '%s'", op.Name)
			}
			operands = append(operands, v)
		case Operator:
			n := nodes[i].ChildCount()
			if n != op.Arity() || n > len(operands) {
				return 0, fmt.Errorf("%w: '%s' has %d operands", ErrArity, op, n)
			}
			args := make([]float64, n)
			for j := 0; j < n; j++ { // operands are stacked in reverse
				args[j] = operands[len(operands)-1-j]
			}
			operands = operands[:len(operands)-n]
			v, ok := op.eval(args)
			if !ok {
				return 0, fmt.Errorf("cannot evaluate '%s' for %v", op, args)
			}
			operands = append(operands, v)
		}
	}
	if len(operands) != 1 {
		return 0, fmt.Errorf("malformed expression %s", t)
	}
	return operands[0], nil
}
