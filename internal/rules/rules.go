// Package rules holds the raw rule mapping that drives word generation.
//
// A rule set is a YAML mapping of pattern -> continuation -> weight with two
// reserved top-level keys:
//
//	alphabet:
//	  abc: 0
//	word_length:
//	  min: 1
//	  avg: 2
//	  max: 3
//	" ":
//	  a: 2
//	  b: 1
//	a:
//	  " ": 1
//	  b: 1
//
// Continuation tables keep their document order; the compiler accumulates
// weights in that order.
package rules

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// AlphabetKey names the table whose single key is the character set.
	AlphabetKey = "alphabet"
	// WordLengthKey names the table holding the min, avg and max bounds.
	WordLengthKey = "word_length"

	// Delimiter marks the start or end of a word.
	Delimiter = " "
	// Wildcard is resolved to an alphabet character at generation time.
	Wildcard = "_"
)

// Bound keys inside the word_length table.
const (
	MinKey = "min"
	AvgKey = "avg"
	MaxKey = "max"
)

// Entry is one continuation and its weight.
type Entry struct {
	Key    string
	Weight uint32
}

// Table is an ordered continuation -> weight mapping.
type Table []Entry

// Get returns the weight recorded for key.
func (t Table) Get(key string) (uint32, bool) {
	for _, e := range t {
		if e.Key == key {
			return e.Weight, true
		}
	}
	return 0, false
}

// Keys returns the continuation keys in table order.
func (t Table) Keys() []string {
	keys := make([]string, len(t))
	for i, e := range t {
		keys[i] = e.Key
	}
	return keys
}

// Add increments the weight of key by w, appending key if it is new.
func (t *Table) Add(key string, w uint32) {
	for i := range *t {
		if (*t)[i].Key == key {
			(*t)[i].Weight += w
			return
		}
	}
	*t = append(*t, Entry{Key: key, Weight: w})
}

// UnmarshalYAML decodes a mapping node, keeping document key order.
func (t *Table) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: expected a mapping of continuation to weight", n.Line)
	}
	out := make(Table, 0, len(n.Content)/2)
	seen := make(map[string]bool, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if seen[k.Value] {
			return fmt.Errorf("line %d: duplicate key %q", k.Line, k.Value)
		}
		seen[k.Value] = true
		var w uint32
		if err := v.Decode(&w); err != nil {
			return fmt.Errorf("line %d: weight of %q: %w", v.Line, k.Value, err)
		}
		out = append(out, Entry{Key: k.Value, Weight: w})
	}
	*t = out
	return nil
}

// MarshalYAML encodes the table as a mapping in table order.
func (t Table) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range t {
		n.Content = append(n.Content,
			keyNode(e.Key),
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatUint(uint64(e.Weight), 10)},
		)
	}
	return n, nil
}

// Rules is a raw rule mapping: pattern -> continuation table, plus the
// reserved alphabet and word_length tables.
type Rules map[string]Table

// Alphabet returns the first key of the alphabet table, or "" if absent.
func (r Rules) Alphabet() string {
	t := r[AlphabetKey]
	if len(t) == 0 {
		return ""
	}
	return t[0].Key
}

// Bound returns the named word_length bound.
func (r Rules) Bound(name string) (uint32, bool) {
	return r[WordLengthKey].Get(name)
}

// Patterns returns every pattern key in sorted order, reserved keys excluded.
func (r Rules) Patterns() []string {
	out := make([]string, 0, len(r))
	for k := range r {
		if k == AlphabetKey || k == WordLengthKey {
			continue
		}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// MarshalYAML writes alphabet and word_length first, then patterns sorted.
func (r Rules) MarshalYAML() (any, error) {
	n := &yaml.Node{Kind: yaml.MappingNode}
	keys := make([]string, 0, len(r))
	for _, k := range []string{AlphabetKey, WordLengthKey} {
		if _, ok := r[k]; ok {
			keys = append(keys, k)
		}
	}
	keys = append(keys, r.Patterns()...)
	for _, k := range keys {
		v, err := r[k].MarshalYAML()
		if err != nil {
			return nil, err
		}
		n.Content = append(n.Content, keyNode(k), v.(*yaml.Node))
	}
	return n, nil
}

// keyNode quotes keys that carry the delimiter so they survive a round trip.
func keyNode(k string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
	if k == "" || strings.ContainsAny(k, " _") {
		n.Style = yaml.DoubleQuotedStyle
	}
	return n
}

// Parse decodes a YAML rule document.
func Parse(data []byte) (Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if r == nil {
		r = Rules{}
	}
	return r, nil
}

// Load reads and parses the rule file at path.
func Load(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	r, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Marshal encodes r as a YAML document that Parse accepts.
func Marshal(r Rules) ([]byte, error) {
	data, err := yaml.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("marshal rules: %w", err)
	}
	return data, nil
}
