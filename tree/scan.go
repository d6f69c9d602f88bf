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
	"sync"
	"unicode"

	"github.com/npillmayer/treerw"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// escape character for tree strings
const escChar = '\\'

var lexer *lexmachine.Lexer
var lexerErr error

var initOnce sync.Once // monitors one-time creation of the lexer

// treeLexer creates the lexmachine lexer for parentheses tree strings.
// Values are runs of characters other than '(', ')', ',', '\' and whitespace,
// or escaped characters.
func treeLexer() (*lexmachine.Lexer, error) {
	initOnce.Do(func() {
		tracer().Debugf("Creating tree lexer")
		lexer = lexmachine.NewLexer()
		lexer.Add([]byte(`\(`), makeToken(treerw.LParen))
		lexer.Add([]byte(`\)`), makeToken(treerw.RParen))
		lexer.Add([]byte(`\,`), makeToken(treerw.Comma))
		lexer.Add([]byte(`([^\(\),\\ \t\n\r]|\\.)+`), makeToken(treerw.Value))
		lexer.Add([]byte(`( |\t|\n|\r)+`), skip)
		if lexerErr = lexer.Compile(); lexerErr != nil {
			tracer().Errorf("Error compiling DFA: %v", lexerErr)
		}
	})
	return lexer, lexerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(t treerw.TokType) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(t), string(m.Bytes), m), nil
	}
}

// token is an unsophisticated token type for tree strings.
type token struct {
	kind   treerw.TokType
	lexeme string
	span   treerw.Span
}

var _ treerw.Token = token{}

func (t token) TokType() treerw.TokType {
	return t.kind
}

func (t token) Lexeme() string {
	return t.lexeme
}

func (t token) Span() treerw.Span {
	return t.span
}

func (t token) String() string {
	if t.kind == treerw.Value {
		return fmt.Sprintf("%q", t.lexeme)
	}
	return t.kind.String()
}

// scanner wraps a lexmachine scanner for a single input string.
type scanner struct {
	scan  *lexmachine.Scanner
	input string
}

func newScanner(input string) (*scanner, error) {
	lex, err := treeLexer()
	if err != nil {
		return nil, err
	}
	s, err := lex.Scanner([]byte(input))
	if err != nil {
		return nil, err
	}
	return &scanner{scan: s, input: input}, nil
}

// NextToken returns the next token of the input. Unrecognized input is
// reported as ErrTreeSyntax.
func (sc *scanner) NextToken() (treerw.Token, error) {
	tok, err, eof := sc.scan.Next()
	if err != nil {
		if ui, is := err.(*machines.UnconsumedInput); is {
			return nil, fmt.Errorf("%w: unexpected input at position %d of %q",
				ErrTreeSyntax, ui.FailTC, sc.input)
		}
		return nil, fmt.Errorf("%w: %v", ErrTreeSyntax, err)
	}
	if eof {
		end := uint64(len(sc.input))
		return token{kind: treerw.EOF, span: treerw.Span{end, end}}, nil
	}
	t := tok.(*lexmachine.Token)
	return token{
		kind:   treerw.TokType(t.Type),
		lexeme: string(t.Lexeme),
		span:   treerw.Span{uint64(t.TC), uint64(t.TC + len(t.Lexeme))},
	}, nil
}

// --- Escaping --------------------------------------------------------------

func isStructural(r rune) bool {
	return r == '(' || r == ')' || r == ',' || r == escChar || unicode.IsSpace(r)
}

// Escape escapes all the characters of a node value which would otherwise be
// interpreted as part of the tree structure.
func Escape(value string) string {
	if !strings.ContainsFunc(value, isStructural) {
		return value
	}
	var b strings.Builder
	for _, r := range value {
		if isStructural(r) {
			b.WriteRune(escChar)
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Unescape reverts Escape. Escape sequences for characters other than the
// structural ones are left untouched, leaving them to higher level
// interpretations of node values.
func Unescape(lexeme string) string {
	if !strings.ContainsRune(lexeme, escChar) {
		return lexeme
	}
	var b strings.Builder
	rs := []rune(lexeme)
	for i := 0; i < len(rs); i++ {
		if rs[i] == escChar && i+1 < len(rs) && isStructural(rs[i+1]) {
			i++
		}
		b.WriteRune(rs[i])
	}
	return b.String()
}
