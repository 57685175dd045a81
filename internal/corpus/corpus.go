// Package corpus derives rule sets from natural-language text.
//
// Extract slides windows of 1..depth characters over normalized text and
// counts, for every window, which character follows it. The result has the
// same shape as a hand-written rule file and can be verified, compiled and
// serialized like one.
package corpus

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"wordgen/internal/rules"
)

var (
	// ErrEmptyText means no letters were left after normalization.
	ErrEmptyText = errors.New("corpus has no letters")
	// ErrBadDepth means the requested window depth is below 1.
	ErrBadDepth = errors.New("depth must be at least 1")
)

// Extract builds a rule set from text using windows up to depth characters.
func Extract(text string, depth int) (rules.Rules, error) {
	if depth < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrBadDepth, depth)
	}
	body := Normalize(text)
	if body == "" {
		return nil, ErrEmptyText
	}
	padded := rules.Delimiter + body + rules.Delimiter

	lo, avg, hi := WordLengths(body)
	out := rules.Rules{
		rules.AlphabetKey: {{Key: Alphabet(body)}},
		rules.WordLengthKey: {
			{Key: rules.MinKey, Weight: uint32(lo)},
			{Key: rules.AvgKey, Weight: uint32(avg)},
			{Key: rules.MaxKey, Weight: uint32(hi)},
		},
	}

	for d := 1; d <= depth; d++ {
		wins := windows(padded, d)
		if len(wins) == 0 {
			continue
		}
		pattern := wins[0]
		for _, w := range wins[1:] {
			if utf8.RuneCountInString(pattern) < d {
				pattern = trimPreceding(w)
				continue
			}
			r := []rune(w)
			cont := string(r[len(r)-1])

			t, ok := out[pattern]
			if !ok {
				t = rules.Table{{Key: rules.Delimiter}}
			}
			t.Add(cont, 1)
			out[pattern] = t

			pattern = trimPreceding(w)
		}
	}
	return out, nil
}

var lower = cases.Lower(language.Und)

// Normalize lowercases text, turns everything that is not a letter into a
// space and collapses runs of whitespace. The result has no leading or
// trailing space.
func Normalize(text string) string {
	text = lower.String(norm.NFC.String(text))
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return ' '
	}, text)
	return strings.Join(strings.Fields(text), " ")
}

// Alphabet returns the distinct non-space characters of text, sorted.
func Alphabet(text string) string {
	var set []rune
	for _, r := range text {
		if unicode.IsSpace(r) || slices.Contains(set, r) {
			continue
		}
		set = append(set, r)
	}
	slices.Sort(set)
	return string(set)
}

// WordLengths returns the minimum, floored mean and maximum length, in
// characters, of the space-separated words of text.
func WordLengths(text string) (lo, avg, hi int) {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0, 0, 0
	}
	sum := 0
	for i, w := range words {
		n := utf8.RuneCountInString(w)
		sum += n
		if i == 0 || n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	return lo, sum / len(words), hi
}

// windows returns every run of exactly size characters in s, in order.
func windows(s string, size int) []string {
	r := []rune(s)
	if len(r) < size {
		return nil
	}
	out := make([]string, 0, len(r)-size+1)
	for i := 0; i+size <= len(r); i++ {
		out = append(out, string(r[i:i+size]))
	}
	return out
}

// trimPreceding keeps only the last word of a window, prefixed by the
// delimiter when anything came before it, so patterns never reach back into
// a previous word.
func trimPreceding(w string) string {
	i := strings.LastIndexFunc(w, unicode.IsSpace)
	if i < 0 {
		return w
	}
	_, size := utf8.DecodeRuneInString(w[i:])
	return rules.Delimiter + w[i+size:]
}
