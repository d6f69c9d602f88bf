/*
Package trepl/main provides an interactive command line tool (T.REPL)
for tree rewriting. T.REPL serves as a sandbox for experiments with
patterns, rewrite rules and rule sets.

Users enter trees, patterns and rules on the command line:

    trepl> rule add(0,$x) -> $x
    trepl> rule add(S($x),$y) -> S(add($x,$y))
    trepl> tree add(S(0),S(0))
    trepl> match add($a,$b)
    trepl> rewrite

Type 'help' for a list of commands.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'treerw.rewrite'
func tracer() tracing.Trace {
	return tracing.Select("treerw.rewrite")
}
