/*
Package rewrite implements tree patterns and term rewriting on ordered trees.

A pattern is a tree whose nodes are either concrete values or pattern
variables. Variables are written with a '$' prefix and match any sub-tree:

    add($x,add($y,sin(x)))

Patterns are matched structurally against trees of package tree. A successful
match binds every variable of the pattern to a sub-tree of the target tree.
If a variable occurs more than once in a pattern, all occurrences have to be
bound to structurally equal sub-trees. A literal value starting with '$' is
written with an escape character: '\$'.

A rewrite rule consists of a matcher pattern and a template pattern:

    add($x,0) -> $x

Rules rewrite a tree in place: the first matching sub-tree in pre-order is
replaced by the template, expanded with the bindings of the match. This is
repeated until no match is left or an application limit is reached. The limit
guarantees termination, even for rule sets which never reach a normal form.

A term rewriting system (TRS) is an ordered list of rules. All of pattern,
rule and TRS are immutable after construction and may be shared between
goroutines, as long as every goroutine rewrites its own tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package rewrite

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'treerw.rewrite'.
func tracer() tracing.Trace {
	return tracing.Select("treerw.rewrite")
}

// Errors returned by the construction of patterns, rules and rule sets, and
// by rewriters called with invalid arguments.
var (
	ErrInvalidVariable    = errors.New("variable is not a valid identifier")
	ErrVarNotLeaf         = errors.New("variable node is not a leaf")
	ErrUnboundTemplateVar = errors.New("template variables are not defined in the matcher")
	ErrEmptyRuleSet       = errors.New("rule set is empty")
	ErrRuleSyntax         = errors.New("invalid rewrite rule")
	ErrNegativeLimit      = errors.New("limit is smaller than zero")
	ErrNoRewriters        = errors.New("no rewriters to concatenate")
	ErrNilTree            = errors.New("cannot rewrite nil tree")
)
