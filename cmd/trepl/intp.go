package main

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pterm/pterm"

	"github.com/npillmayer/treerw/arith"
	"github.com/npillmayer/treerw/rewrite"
	"github.com/npillmayer/treerw/tree"
)

// Intp is our interpreter object
type Intp struct {
	repl   *readline.Instance
	rules  []*rewrite.Rule[string]
	limit  int
	tree   *tree.Node[string]
	name   string // name of the rule set
	finger string // fingerprint of the rule set when last loaded or saved
}

// NewIntp creates an interpreter with an empty rule set.
func NewIntp(limit int) *Intp {
	return &Intp{limit: limit, name: "trepl"}
}

type command struct {
	help string
	exec func(intp *Intp, args string) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"help":     {"list commands", (*Intp).help},
		"rule":     {"add a rule 'lhs -> rhs'", (*Intp).addRule},
		"rules":    {"list rules", (*Intp).listRules},
		"clear":    {"remove all rules", (*Intp).clearRules},
		"tree":     {"set the current tree, or show it", (*Intp).treeCmd},
		"match":    {"find a pattern in the current tree", (*Intp).match},
		"rewrite":  {"rewrite the current tree (or the tree given) with the rules", (*Intp).rewriteCmd},
		"simplify": {"simplify an arithmetic expression", (*Intp).simplify},
		"limit":    {"set the rewrite limit, or show it", (*Intp).setLimit},
		"load":     {"load a rule set from a YAML file", (*Intp).load},
		"save":     {"save the rule set to a YAML file", (*Intp).save},
		"flat":     {"show the flat encoding of the current tree", (*Intp).flat},
	}
}

// Eval evaluates a command line. Lines not starting with a command are
// taken as a rule if they contain '->', and as a tree otherwise.
func (intp *Intp) Eval(line string) (bool, error) {
	line = strings.TrimSpace(line)
	if line == "quit" || line == "exit" {
		return true, nil
	}
	cmd, args := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		cmd, args = line[:i], strings.TrimSpace(line[i+1:])
	}
	if c, ok := commands[cmd]; ok {
		tracer().Debugf("command %s %q", cmd, args)
		return false, c.exec(intp, args)
	}
	if strings.Contains(line, "->") {
		return false, intp.addRule(line)
	}
	return false, intp.treeCmd(line)
}

func (intp *Intp) loadInitFile(filename string) {
	if filename == "" {
		return
	}
	f, err := os.Open(filename)
	if err != nil {
		tracer().Errorf("Unable to open init file: %s", filename)
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if _, err := intp.Eval(line); err != nil {
			tracer().Errorf("Error line %d: %v", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		tracer().Errorf("Error while reading init file: %v", err)
	}
}

// --- Commands --------------------------------------------------------------

func (intp *Intp) help(string) error {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		pterm.Info.Println(fmt.Sprintf("%-9s %s", name, commands[name].help))
	}
	pterm.Info.Println(fmt.Sprintf("%-9s %s", "quit", "leave T.REPL"))
	return nil
}

func (intp *Intp) addRule(args string) error {
	r, err := rewrite.ParseStringRule(args)
	if err != nil {
		return err
	}
	intp.rules = append(intp.rules, r)
	pterm.Info.Println(fmt.Sprintf("rule #%d: %s", len(intp.rules), r))
	return nil
}

func (intp *Intp) listRules(string) error {
	trs, err := intp.trs()
	if err != nil {
		return err
	}
	for i, r := range trs.Rules() {
		pterm.Info.Println(fmt.Sprintf("#%d: %s", i+1, r))
	}
	if fp, err := trs.Fingerprint(); err == nil {
		pterm.Info.Println(fmt.Sprintf("rule set '%s' [%s]", intp.name, fp))
	}
	return nil
}

func (intp *Intp) clearRules(string) error {
	intp.rules = nil
	intp.finger = ""
	return nil
}

func (intp *Intp) trs() (*rewrite.TRS[string], error) {
	return rewrite.NewTRS(intp.rules...)
}

func (intp *Intp) treeCmd(args string) error {
	if args == "" {
		if intp.tree == nil {
			return errors.New("no current tree")
		}
		intp.printTree("tree", intp.tree)
		return nil
	}
	return intp.setTree(args)
}

func (intp *Intp) setTree(input string) error {
	t, err := tree.ParseString(input)
	if err != nil {
		return err
	}
	intp.tree = t
	intp.printTree("tree", t)
	return nil
}

func (intp *Intp) match(args string) error {
	if intp.tree == nil {
		return errors.New("no current tree")
	}
	p, err := rewrite.CompileString(args)
	if err != nil {
		return err
	}
	cnt := 0
	for r, S := p.Matcher(intp.tree).Results().First(); !S.Done(); r = S.Next() {
		cnt++
		pterm.Info.Println(fmt.Sprintf("%v: %s  %s", r.Path(), r.Node(), r))
	}
	if cnt == 0 {
		pterm.Info.Println("no match")
	}
	return nil
}

func (intp *Intp) rewriteCmd(args string) error {
	if args != "" {
		if err := intp.setTree(args); err != nil {
			return err
		}
	}
	if intp.tree == nil {
		return errors.New("no current tree")
	}
	trs, err := intp.trs()
	if err != nil {
		return err
	}
	n, err := trs.Rewrite(intp.tree, intp.limit)
	if err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("%d rewrites", n))
	intp.printTree("result", intp.tree)
	return nil
}

func (intp *Intp) simplify(args string) error {
	expr, err := arith.ParseExpr(args)
	if err != nil {
		return err
	}
	n, err := arith.Simplify(expr, intp.limit)
	if err != nil {
		return err
	}
	pterm.Info.Println(fmt.Sprintf("%d rewrites: %s", n, expr))
	return nil
}

func (intp *Intp) setLimit(args string) error {
	if args != "" {
		limit, err := strconv.Atoi(args)
		if err != nil {
			return fmt.Errorf("limit must be a number: %w", err)
		}
		if limit < 0 {
			return fmt.Errorf("%w: %d", rewrite.ErrNegativeLimit, limit)
		}
		intp.limit = limit
	}
	pterm.Info.Println(fmt.Sprintf("limit is %d", intp.limit))
	return nil
}

func (intp *Intp) load(args string) error {
	return intp.loadRuleSet(args)
}

func (intp *Intp) loadRuleSet(filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	doc, err := rewrite.LoadRuleSet(f)
	if err != nil {
		return err
	}
	trs, err := doc.StringTRS()
	if err != nil {
		return err
	}
	fp, err := trs.Fingerprint()
	if err != nil {
		return err
	}
	if fp == intp.finger {
		pterm.Info.Println(fmt.Sprintf("rule set '%s' is unchanged", doc.Name))
	}
	intp.rules, intp.name, intp.finger = trs.Rules(), doc.Name, fp
	if doc.Limit > 0 {
		intp.limit = doc.Limit
	}
	pterm.Info.Println(fmt.Sprintf("loaded %d rules of rule set '%s'", len(intp.rules), doc.Name))
	return nil
}

func (intp *Intp) save(args string) error {
	trs, err := intp.trs()
	if err != nil {
		return err
	}
	f, err := os.Create(args)
	if err != nil {
		return err
	}
	if err := rewrite.WriteRuleSet(f, intp.name, intp.limit, trs); err != nil {
		f.Close()
		return err
	}
	intp.finger, _ = trs.Fingerprint()
	return f.Close()
}

func (intp *Intp) flat(string) error {
	if intp.tree == nil {
		return errors.New("no current tree")
	}
	for i, n := range tree.Flatten(intp.tree) {
		pterm.Info.Println(fmt.Sprintf("%3d: %-12s %3d %3d", i, n.Value, n.ChildOffset, n.ChildCount))
	}
	return nil
}
