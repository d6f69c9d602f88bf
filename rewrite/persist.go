package rewrite

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"encoding"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// TextMapper returns a value mapper for text encoded values of type V.
// Strings are taken as they are; types implementing encoding.TextUnmarshaler
// (with a pointer receiver) unmarshal themselves. For all other types the
// mapper returns an error.
func TextMapper[V comparable]() func(string) (V, error) {
	return func(s string) (V, error) {
		var v V
		if u, ok := any(&v).(encoding.TextUnmarshaler); ok {
			err := u.UnmarshalText([]byte(s))
			return v, err
		}
		if _, ok := any(v).(string); ok {
			return any(s).(V), nil
		}
		return v, fmt.Errorf("cannot unmarshal %q into value of type %T", s, v)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p *Pattern[V]) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Values are converted by
// the mapper returned by TextMapper.
func (p *Pattern[V]) UnmarshalText(text []byte) error {
	q, err := Compile(string(text), TextMapper[V]())
	if err != nil {
		return err
	}
	*p = *q
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (r *Rule[V]) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Values are converted by
// the mapper returned by TextMapper.
func (r *Rule[V]) UnmarshalText(text []byte) error {
	q, err := ParseRule(string(text), TextMapper[V]())
	if err != nil {
		return err
	}
	*r = *q
	return nil
}

// MarshalText implements encoding.TextMarshaler. Rules are written one rule
// per line.
func (trs *TRS[V]) MarshalText() ([]byte, error) {
	return []byte(trs.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. It reads one rule per
// line. Empty lines and lines starting with '#' are ignored.
func (trs *TRS[V]) UnmarshalText(text []byte) error {
	var rules []string
	for _, line := range strings.Split(string(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rules = append(rules, line)
	}
	q, err := ParseTRS(TextMapper[V](), rules...)
	if err != nil {
		return err
	}
	*trs = *q
	return nil
}

// --- Rule set documents ----------------------------------------------------

// RuleSetDoc is a YAML document describing a rule set:
//
//    name: peano
//    limit: 100
//    rules:
//      - add(0,$x) -> $x
//      - add(S($x),$y) -> S(add($x,$y))
//
// A missing limit (or a limit of 0) denotes an unlimited rule set.
type RuleSetDoc struct {
	Name  string   `yaml:"name,omitempty"`
	Limit int      `yaml:"limit,omitempty"`
	Rules []string `yaml:"rules"`
}

// LoadRuleSet reads a rule set document in YAML format.
func LoadRuleSet(r io.Reader) (*RuleSetDoc, error) {
	doc := &RuleSetDoc{}
	if err := yaml.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("cannot read rule set: %w", err)
	}
	if doc.Limit < 0 {
		return nil, fmt.Errorf("rule set '%s': %w: %d", doc.Name, ErrNegativeLimit, doc.Limit)
	}
	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rule set '%s': %w", doc.Name, ErrEmptyRuleSet)
	}
	tracer().Debugf("loaded rule set '%s' with %d rules", doc.Name, len(doc.Rules))
	return doc, nil
}

// RewriteLimit returns the limit of a rule set document.
func (doc *RuleSetDoc) RewriteLimit() int {
	if doc.Limit <= 0 {
		return Unlimited
	}
	return doc.Limit
}

// StringTRS creates a term rewriting system over strings from a rule set
// document.
func (doc *RuleSetDoc) StringTRS() (*TRS[string], error) {
	return DocTRS(doc, identity)
}

// DocTRS creates a term rewriting system from a rule set document. Values are
// converted by mapper.
func DocTRS[V comparable](doc *RuleSetDoc, mapper func(string) (V, error)) (*TRS[V], error) {
	trs, err := ParseTRS(mapper, doc.Rules...)
	if err != nil {
		return nil, fmt.Errorf("rule set '%s': %w", doc.Name, err)
	}
	return trs, nil
}

// WriteRuleSet writes a rule set document for a TRS in YAML format.
func WriteRuleSet[V comparable](w io.Writer, name string, limit int, trs *TRS[V]) error {
	if limit == Unlimited {
		limit = 0
	}
	doc := RuleSetDoc{
		Name:  name,
		Limit: limit,
		Rules: trs.ruleStrings(),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
