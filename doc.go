/*
Package treerw is a toolbox for tree (term) rewriting.

TreeRW compiles textual tree patterns, matches them against ordered
expression trees, binds pattern variables to matched sub-trees and rewrites
matched sub-trees by expanding template patterns. Rewriting is always bounded
by an application limit, which guarantees termination even for rule sets
that never reach a normal form. Package structure is as follows:

■ tree: Package tree implements ordered trees with path-addressed access,
together with parsing and formatting of parentheses tree strings.

■ rewrite: Package rewrite implements tree patterns, matchers, rewrite rules
and term rewriting systems (TRS).

■ arith: Package arith provides arithmetic operators and ready-made rule sets
for simplifying arithmetic expression trees.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package treerw
