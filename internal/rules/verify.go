package rules

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validation error kinds. Match them with errors.Is.
var (
	ErrNoAlphabet       = errors.New("no alphabet in rules")
	ErrEmptyAlphabet    = errors.New("alphabet is empty")
	ErrAlphabetTooSmall = errors.New("alphabet is too small")
	ErrNoWordLength     = errors.New("no word_length in rules")
	ErrMissingBound     = errors.New("word_length bound missing")
	ErrZeroMin          = errors.New("min can't be 0")
	ErrMaxBelowMin      = errors.New("max can't be less than min")
	ErrAvgOutOfRange    = errors.New("avg can't be less than min or more than max")
	ErrBadCharacter     = errors.New("character not in alphabet")
)

// ValidationError reports which rule a rule set violates.
type ValidationError struct {
	Kind    error
	Key     string // offending bound or continuation key, if any
	Pattern string // offending pattern, if any
	Char    rune   // offending character for ErrBadCharacter
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Kind, ErrBadCharacter):
		if e.Key != e.Pattern {
			return fmt.Sprintf("%v: %q in continuation %q of pattern %q", e.Kind, e.Char, e.Key, e.Pattern)
		}
		return fmt.Sprintf("%v: %q in pattern %q", e.Kind, e.Char, e.Pattern)
	case e.Key != "":
		return fmt.Sprintf("%v: %s", e.Kind, e.Key)
	}
	return e.Kind.Error()
}

func (e *ValidationError) Unwrap() error { return e.Kind }

type verifyConfig struct {
	minAlphabet int
}

// Option adjusts verification policy.
type Option func(*verifyConfig)

// WithMinAlphabet requires the alphabet to hold at least n characters.
// The default is 1.
func WithMinAlphabet(n int) Option {
	return func(c *verifyConfig) {
		if n > 1 {
			c.minAlphabet = n
		}
	}
}

// Verify checks the structural invariants of r and reports the first
// violation. It never modifies r.
func Verify(r Rules, opts ...Option) error {
	cfg := verifyConfig{minAlphabet: 1}
	for _, o := range opts {
		o(&cfg)
	}

	alphaTable, ok := r[AlphabetKey]
	if !ok {
		return &ValidationError{Kind: ErrNoAlphabet}
	}
	if len(alphaTable) == 0 || alphaTable[0].Key == "" {
		return &ValidationError{Kind: ErrEmptyAlphabet}
	}
	alphabet := alphaTable[0].Key
	if n := utf8.RuneCountInString(alphabet); n < cfg.minAlphabet {
		return &ValidationError{Kind: ErrAlphabetTooSmall, Key: fmt.Sprintf("%d < %d", n, cfg.minAlphabet)}
	}

	if err := verifyWordLength(r); err != nil {
		return err
	}

	allowed := alphabet + Wildcard + Delimiter
	for _, p := range r.Patterns() {
		if c, ok := outsideAlphabet(p, allowed); ok {
			return &ValidationError{Kind: ErrBadCharacter, Pattern: p, Key: p, Char: c}
		}
		for _, e := range r[p] {
			if c, ok := outsideAlphabet(e.Key, allowed); ok {
				return &ValidationError{Kind: ErrBadCharacter, Pattern: p, Key: e.Key, Char: c}
			}
		}
	}
	return nil
}

func verifyWordLength(r Rules) error {
	if _, ok := r[WordLengthKey]; !ok {
		return &ValidationError{Kind: ErrNoWordLength}
	}
	lo, ok := r.Bound(MinKey)
	if !ok {
		return &ValidationError{Kind: ErrMissingBound, Key: MinKey}
	}
	if lo == 0 {
		return &ValidationError{Kind: ErrZeroMin}
	}
	hi, ok := r.Bound(MaxKey)
	if !ok {
		return &ValidationError{Kind: ErrMissingBound, Key: MaxKey}
	}
	if hi < lo {
		return &ValidationError{Kind: ErrMaxBelowMin, Key: fmt.Sprintf("max %d < min %d", hi, lo)}
	}
	avg, ok := r.Bound(AvgKey)
	if !ok {
		return &ValidationError{Kind: ErrMissingBound, Key: AvgKey}
	}
	if avg < lo || avg > hi {
		return &ValidationError{Kind: ErrAvgOutOfRange, Key: fmt.Sprintf("avg %d not in [%d, %d]", avg, lo, hi)}
	}
	return nil
}

// outsideAlphabet returns the first rune of s that allowed does not contain.
func outsideAlphabet(s, allowed string) (rune, bool) {
	for _, c := range s {
		if !strings.ContainsRune(allowed, c) {
			return c, true
		}
	}
	return 0, false
}
