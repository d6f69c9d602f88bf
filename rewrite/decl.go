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
	"unicode"
)

const (
	varPrefix = "$" // prefix of pattern variables
	escChar   = `\` // escapes a leading '$' of values
)

type declKind uint8

const (
	valDecl declKind = iota
	varDecl
)

// Decl is the node value of a pattern tree. It is either a pattern variable
// (Var) or a concrete value (Val). Vars are identified by their name, Vals by
// their value. Decls are comparable and may therefore be used as tree values
// themselves.
type Decl[V comparable] struct {
	kind  declKind
	name  string // for Vars
	value V      // for Vals
}

// Var creates a pattern variable. Names have to be identifiers.
//
//    x, err := rewrite.Var[string]("x")
//
func Var[V comparable](name string) (Decl[V], error) {
	if !isIdentifier(name) {
		return Decl[V]{}, fmt.Errorf("%w: '%s'", ErrInvalidVariable, name)
	}
	return Decl[V]{kind: varDecl, name: name}, nil
}

// Val creates a value declaration.
func Val[V comparable](value V) Decl[V] {
	return Decl[V]{kind: valDecl, value: value}
}

// IsVar is a predicate: is this declaration a pattern variable?
func (d Decl[V]) IsVar() bool {
	return d.kind == varDecl
}

// Name returns the name of a Var and the empty string for Vals.
func (d Decl[V]) Name() string {
	return d.name
}

// Value returns the value of a Val and the zero value for Vars.
func (d Decl[V]) Value() V {
	return d.value
}

// String returns '$name' for Vars. Values are converted with fmt.Sprint.
// Values starting with '$', optionally preceded by escape characters, get
// an additional leading '\'.
func (d Decl[V]) String() string {
	if d.IsVar() {
		return varPrefix + d.name
	}
	s := fmt.Sprint(d.value)
	if isEscapedVar(s) {
		return escChar + s
	}
	return s
}

// isEscapedVar is true for strings of the form '\…\$…', including '$…'.
func isEscapedVar(s string) bool {
	return strings.HasPrefix(strings.TrimLeft(s, escChar), varPrefix)
}

// parseDecl interprets a leaf token of a pattern string. Whitespace is
// significant, as the tree syntax has already stripped unescaped whitespace.
func parseDecl[V comparable](tok string, mapper func(string) (V, error)) (Decl[V], error) {
	if strings.HasPrefix(tok, varPrefix) {
		return Var[V](tok[len(varPrefix):])
	}
	if strings.HasPrefix(tok, escChar) && isEscapedVar(tok) {
		tok = tok[len(escChar):]
	}
	v, err := mapper(tok)
	if err != nil {
		return Decl[V]{}, err
	}
	return Val(v), nil
}

func isIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// mapDecl maps the value of a Val. Vars are left unchanged.
func mapDecl[V, B comparable](d Decl[V], f func(V) B) Decl[B] {
	if d.IsVar() {
		return Decl[B]{kind: varDecl, name: d.name}
	}
	return Val(f(d.value))
}
