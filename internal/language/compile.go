package language

import "wordgen/internal/rules"

// Slot is one cumulative-weight threshold and the continuation it selects.
type Slot struct {
	Threshold    uint32
	Continuation string
}

// Pattern is the compiled sampling table of one pattern.
//
// Slots are sorted by ascending Threshold. Slots with Threshold <= Last are
// live; weight-0 continuations sit above Last, one unit apart, so they can be
// enumerated but a draw in [1, Last] never lands on them.
type Pattern struct {
	Last        uint32  // sum of the positive weights
	Termination float64 // termination weight / Last, 0 when Last is 0
	Slots       []Slot
}

// Language is a compiled, immutable rule set.
type Language struct {
	Alphabet []rune
	Min      int
	Avg      int
	Max      int
	Patterns map[string]*Pattern
}

// Compile builds a Language from r. r must already have passed rules.Verify;
// compiling unverified rules is a caller bug and its result is undefined.
func Compile(r rules.Rules) *Language {
	lo, _ := r.Bound(rules.MinKey)
	avg, _ := r.Bound(rules.AvgKey)
	hi, _ := r.Bound(rules.MaxKey)

	l := &Language{
		Alphabet: []rune(r.Alphabet()),
		Min:      int(lo),
		Avg:      int(avg),
		Max:      int(hi),
		Patterns: make(map[string]*Pattern, len(r)),
	}
	for _, p := range r.Patterns() {
		if p == "" {
			continue
		}
		l.Patterns[p] = compilePattern(r[p])
	}
	return l
}

// compilePattern accumulates weights in table order, with the termination
// entry moved to the front so that it owns the lowest threshold.
func compilePattern(t rules.Table) *Pattern {
	p := &Pattern{Slots: make([]Slot, 0, len(t))}

	var sum uint32
	var forbidden []string
	add := func(e rules.Entry) {
		sum += e.Weight
		if n := len(p.Slots); n > 0 && p.Slots[n-1].Threshold == sum {
			forbidden = append(forbidden, e.Key)
			return
		}
		p.Slots = append(p.Slots, Slot{Threshold: sum, Continuation: e.Key})
	}

	term, hasTerm := t.Get(rules.Delimiter)
	if hasTerm {
		add(rules.Entry{Key: rules.Delimiter, Weight: term})
	}
	for _, e := range t {
		if e.Key != rules.Delimiter {
			add(e)
		}
	}

	p.Last = sum
	if sum > 0 {
		p.Termination = float64(term) / float64(sum)
	}
	for i, k := range forbidden {
		p.Slots = append(p.Slots, Slot{Threshold: sum + uint32(i) + 1, Continuation: k})
	}
	return p
}

// terminateAt returns the threshold owned by the termination continuation
// when it occupies the first slot, else 0.
func (p *Pattern) terminateAt() uint32 {
	if len(p.Slots) > 0 && p.Slots[0].Continuation == rules.Delimiter {
		return p.Slots[0].Threshold
	}
	return 0
}

// Continuations returns every continuation of p, live and forbidden.
func (p *Pattern) Continuations() []string {
	out := make([]string, len(p.Slots))
	for i, s := range p.Slots {
		out[i] = s.Continuation
	}
	return out
}

// Forbidden returns the weight-0 continuations: those parked above Last and
// one sitting at threshold 0 when the table opens with a zero weight.
func (p *Pattern) Forbidden() []string {
	var out []string
	for _, s := range p.Slots {
		if s.Threshold == 0 || s.Threshold > p.Last {
			out = append(out, s.Continuation)
		}
	}
	return out
}
