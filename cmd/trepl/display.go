package main

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"github.com/pterm/pterm"

	"github.com/npillmayer/treerw/tree"
)

// printTree displays a tree on the terminal.
func (intp *Intp) printTree(label string, t *tree.Node[string]) {
	pterm.Info.Println(label + ": " + t.String())
	root := pterm.NewTreeFromLeveledList(leveledList(t))
	pterm.DefaultTree.WithRoot(root).Render()
}

// leveledList flattens a tree in pre-order, recording the depth of every
// node.
func leveledList(t *tree.Node[string]) pterm.LeveledList {
	ll := pterm.LeveledList{}
	for n, S := t.Traverse().First(); !S.Done(); n = S.Next() {
		path, _ := n.PathFrom(t)
		ll = append(ll, pterm.LeveledListItem{
			Level: path.Len(),
			Text:  n.Value(),
		})
	}
	tracer().Debugf("|ll| = %d, ll = %v", len(ll), ll)
	return ll
}
