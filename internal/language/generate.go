package language

import (
	"errors"
	"slices"
	"sort"
	"strings"

	"wordgen/internal/rules"
)

// ErrNoCandidate means a walk ended without the word ever entering the
// [Min, Max] length window. Retrying with further draws may succeed.
var ErrNoCandidate = errors.New("no candidate found")

// Rand is the random source generation draws from. A *rand.Rand from
// math/rand/v2 satisfies it. Implementations need not be safe for concurrent
// use; give each goroutine its own.
type Rand interface {
	IntN(n int) int
}

// maxPatternLen is the longest trailing suffix tried against the table.
const maxPatternLen = 3

// stepsPerChar caps walk steps per unit of Max so that continuations that
// append nothing cannot spin forever.
const stepsPerChar = 4

type candidate struct {
	score float64
	word  string
}

// GenerateWord grows one word by a weighted random walk and returns the
// best-scored prefix seen whose length lies in [Min, Max].
//
// Each step matches the longest known suffix of the word (3, 2, then 1
// characters, the leading delimiter included) and appends one continuation
// drawn from the live range above the termination slot. When termination is
// the only live continuation the walk stops. The walk also stops when no
// suffix matches at all; rule sets are expected to define length-1 patterns
// covering every character they can produce.
func (l *Language) GenerateWord(rng Rand) (string, error) {
	current := []rune(rules.Delimiter)
	n := 0
	var cands []candidate

	for steps := 0; n < l.Max && steps < l.Max*stepsPerChar; steps++ {
		p := l.match(current)
		if p == nil {
			break
		}

		start := p.terminateAt() + 1
		if start > p.Last {
			if n >= l.Min && n <= l.Max {
				cands = append(cands, candidate{score: 1, word: string(current)})
			}
			break
		}

		cont := p.pick(start, rng)
		if strings.Contains(cont, rules.Wildcard) {
			var ok bool
			if cont, ok = l.resolveWildcard(p, cont, rng); !ok {
				break
			}
		}

		r := []rune(cont)
		current = append(current, r...)
		n += len(r)

		if n >= l.Min && n <= l.Max {
			cands = append(cands, candidate{
				score: l.closeness(n) + p.Termination,
				word:  string(current),
			})
		}
	}

	if len(cands) == 0 {
		return "", ErrNoCandidate
	}
	best := cands[0]
	for _, c := range cands[1:] {
		if c.score > best.score {
			best = c
		}
	}
	return strings.Trim(best.word, rules.Delimiter), nil
}

// Words generates count words. A word whose walk fails with ErrNoCandidate
// is retried up to retries more times before the error is returned.
func (l *Language) Words(count, retries int, rng Rand) ([]string, error) {
	words := make([]string, 0, max(count, 0))
	for range count {
		w, err := l.GenerateWord(rng)
		for try := 0; errors.Is(err, ErrNoCandidate) && try < retries; try++ {
			w, err = l.GenerateWord(rng)
		}
		if err != nil {
			return nil, err
		}
		words = append(words, w)
	}
	return words, nil
}

// GenerateWords generates count words joined by single spaces and returns
// the first error encountered.
func (l *Language) GenerateWords(count int, rng Rand) (string, error) {
	words, err := l.Words(count, 0, rng)
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// match returns the pattern of the longest suffix of current that the
// language knows, or nil.
func (l *Language) match(current []rune) *Pattern {
	for size := maxPatternLen; size >= 1; size-- {
		if len(current) < size {
			continue
		}
		if p, ok := l.Patterns[string(current[len(current)-size:])]; ok {
			return p
		}
	}
	return nil
}

// pick draws r uniformly from [start, Last] and returns the continuation
// owning the smallest threshold >= r. start must not exceed Last.
func (p *Pattern) pick(start uint32, rng Rand) string {
	r := start
	if p.Last > start {
		r += uint32(rng.IntN(int(p.Last-start) + 1))
	}
	i := sort.Search(len(p.Slots), func(i int) bool { return p.Slots[i].Threshold >= r })
	return p.Slots[i].Continuation
}

// resolveWildcard replaces every placeholder in cont with one alphabet
// character, chosen uniformly among those whose result does not collide with
// another continuation of p, live or forbidden. It reports false when every
// character collides.
func (l *Language) resolveWildcard(p *Pattern, cont string, rng Rand) (string, bool) {
	others := p.Continuations()
	var options []string
	for _, c := range l.Alphabet {
		s := strings.ReplaceAll(cont, rules.Wildcard, string(c))
		if s != cont && slices.Contains(others, s) {
			continue
		}
		options = append(options, s)
	}
	if len(options) == 0 {
		return "", false
	}
	return options[rng.IntN(len(options))], true
}
