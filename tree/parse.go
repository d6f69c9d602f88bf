package tree

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/treerw"
)

// Grammar of tree strings:
//
//    Tree     ::=  value
//    Tree     ::=  value '(' Children ')'
//    Children ::=  Tree
//    Children ::=  Children ',' Tree
//
// The parser is driven by a stack of open parent nodes instead of recursion.

type parserState int

const (
	expectValue parserState = iota // at start, after '(' and after ','
	afterValue                     // a value has been read
	afterClose                     // a ')' has been read
)

// Parse parses a parentheses tree string, as created by Node.String(), into
// a tree. The mapper converts (unescaped) node values to the desired type.
//
//    t, err := tree.Parse("0(1(4,5),2(6),3(7(10,11),8,9))", strconv.Atoi)
//
// Whitespace between tokens is ignored. Parse returns ErrTreeSyntax for
// malformed input and any error returned by the mapper.
func Parse[V comparable](input string, mapper func(string) (V, error)) (*Node[V], error) {
	sc, err := newScanner(input)
	if err != nil {
		return nil, err
	}
	parents := arraystack.New()
	var root, last *Node[V]
	state := expectValue
	for {
		tok, err := sc.NextToken()
		if err != nil {
			return nil, err
		}
		switch tok.TokType() {
		case treerw.Value:
			if state != expectValue {
				return nil, syntaxError(input, tok, "unexpected value")
			}
			v, err := mapper(Unescape(tok.Lexeme()))
			if err != nil {
				return nil, fmt.Errorf("cannot convert tree value %q: %w", tok.Lexeme(), err)
			}
			last = &Node[V]{value: v}
			if p, ok := parents.Peek(); ok {
				p.(*Node[V]).Append(last)
			} else {
				root = last
			}
			state = afterValue
		case treerw.LParen:
			if state != afterValue {
				return nil, syntaxError(input, tok, "'(' must follow a value")
			}
			parents.Push(last)
			state = expectValue
		case treerw.Comma:
			if state == expectValue || parents.Empty() {
				return nil, syntaxError(input, tok, "unexpected ','")
			}
			state = expectValue
		case treerw.RParen:
			if state == expectValue || parents.Empty() {
				return nil, syntaxError(input, tok, "unexpected ')'")
			}
			parents.Pop()
			state = afterClose
		case treerw.EOF:
			if root == nil {
				return nil, fmt.Errorf("%w: empty input", ErrTreeSyntax)
			}
			if state == expectValue || !parents.Empty() {
				return nil, syntaxError(input, tok, "unexpected end of input")
			}
			tracer().Debugf("parsed tree %q", input)
			return root, nil
		}
	}
}

// ParseString parses a parentheses tree string into a tree of strings.
func ParseString(input string) (*Node[string], error) {
	return Parse(input, func(s string) (string, error) {
		return s, nil
	})
}

// MustParse parses a parentheses tree string into a tree of strings and
// panics if the input is malformed. It is intended for initialization of
// package level variables and for tests.
func MustParse(input string) *Node[string] {
	t, err := ParseString(input)
	if err != nil {
		panic(err)
	}
	return t
}

// syntaxError reports msg for the position of tok, together with the input
// preceding it.
func syntaxError(input string, tok treerw.Token, msg string) error {
	span := tok.Span()
	if span.Len() == 0 || span.To() > uint64(len(input)) {
		return fmt.Errorf("%w: %s in %q", ErrTreeSyntax, msg, input)
	}
	return fmt.Errorf("%w: %s at %s in %q, following %q", ErrTreeSyntax, msg, span,
		input, input[:span.From()])
}

// --- Formatting ------------------------------------------------------------

// String returns the parentheses string representation of a tree.
//
//    mul(div(cos(1.0),cos(π)),sin(mul(1.0,z)))
//
func (t *Node[V]) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Format(func(v V) string {
		return fmt.Sprint(v)
	})
}

// Format returns the parentheses string representation of a tree, using
// a caller supplied function to convert values to strings. Values will be
// escaped.
func (t *Node[V]) Format(str func(V) string) string {
	var b strings.Builder
	t.format(&b, str)
	return b.String()
}

func (t *Node[V]) format(b *strings.Builder, str func(V) string) {
	b.WriteString(Escape(str(t.value)))
	if len(t.children) == 0 {
		return
	}
	b.WriteByte('(')
	for i, ch := range t.children {
		if i > 0 {
			b.WriteByte(',')
		}
		ch.format(b, str)
	}
	b.WriteByte(')')
}
