package treerw

import "fmt"

// --- Tokens of tree strings ------------------------------------------------

// TokType is a category type for a Token of a parentheses tree string.
type TokType int

// Token categories produced by the tree-string scanner. Structural tokens use
// their character value, as is customary for small scanners.
const (
	EOF    TokType = -1
	Value  TokType = -2
	LParen TokType = '('
	RParen TokType = ')'
	Comma  TokType = ','
)

func (t TokType) String() string {
	switch t {
	case EOF:
		return "<eof>"
	case Value:
		return "value"
	case LParen, RParen, Comma:
		return fmt.Sprintf("'%c'", rune(t))
	}
	return fmt.Sprintf("<%d>", int(t))
}

// Token represents an input token of a tree string.
//
// An example would be a token for a node value:
//
//    TokType = Value      // category of this token
//    Lexeme  = "sin"      // lexeme as it appeared in the input, escapes included
//    Span    = 4…7        // occured from position 4 in the input
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a run of input positions. A span
// denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
