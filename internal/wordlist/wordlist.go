// Package wordlist reads and writes markdown word lists that carry YAML
// frontmatter between --- delimiters:
//
//	---
//	rules: sylvan
//	seeds:
//	    - 42
//	count: 3
//	---
//	# Words
//
//	- lasiel
//	- vaner
//	- nora
package wordlist

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Header is the frontmatter of a word list.
type Header struct {
	Rules string   `yaml:"rules"`
	Seeds []uint64 `yaml:"seeds,omitempty"`
	Count int      `yaml:"count"`
}

// List is a parsed word list.
type List struct {
	Header Header
	Words  []string
}

const delim = "---\n"

// Parse splits a word-list document into its header and words. The document
// must begin with "---\n"; the closing "---" line ends the header.
func Parse(data []byte) (*List, error) {
	if !bytes.HasPrefix(data, []byte(delim)) {
		return nil, fmt.Errorf("wordlist: missing opening --- delimiter")
	}
	rest := data[len(delim):]
	idx := bytes.Index(rest, []byte("\n---"))
	if idx < 0 {
		return nil, fmt.Errorf("wordlist: missing closing --- delimiter")
	}
	l := &List{}
	if err := yaml.Unmarshal(rest[:idx], &l.Header); err != nil {
		return nil, fmt.Errorf("wordlist: header: %w", err)
	}

	sc := bufio.NewScanner(bytes.NewReader(rest[idx+4:]))
	for sc.Scan() {
		if w, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "- "); ok && w != "" {
			l.Words = append(l.Words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("wordlist: %w", err)
	}
	return l, nil
}

// Add appends the words not yet on the list, records seed, and returns how
// many words were new.
func (l *List) Add(seed uint64, words ...string) int {
	added := 0
	for _, w := range words {
		if w == "" || slices.Contains(l.Words, w) {
			continue
		}
		l.Words = append(l.Words, w)
		added++
	}
	if !slices.Contains(l.Header.Seeds, seed) {
		l.Header.Seeds = append(l.Header.Seeds, seed)
	}
	l.Header.Count = len(l.Words)
	return added
}

// Bytes renders the list as a markdown document.
func (l *List) Bytes() ([]byte, error) {
	fm, err := yaml.Marshal(l.Header)
	if err != nil {
		return nil, fmt.Errorf("wordlist: marshal: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString(delim)
	buf.Write(fm)
	buf.WriteString(delim)
	buf.WriteString("# Words\n\n")
	for _, w := range l.Words {
		buf.WriteString("- " + w + "\n")
	}
	return buf.Bytes(), nil
}

// Append adds words generated from rulesName with seed to the list at path,
// creating the file if needed. It returns the number of new words.
func Append(path, rulesName string, seed uint64, words []string) (int, error) {
	l := &List{Header: Header{Rules: rulesName}}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if l, err = Parse(data); err != nil {
			return 0, fmt.Errorf("%s: %w", path, err)
		}
		if l.Header.Rules != rulesName {
			return 0, fmt.Errorf("%s holds words from %q, not %q", path, l.Header.Rules, rulesName)
		}
	case !os.IsNotExist(err):
		return 0, fmt.Errorf("read %s: %w", path, err)
	}

	added := l.Add(seed, words...)
	out, err := l.Bytes()
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return added, nil
}
