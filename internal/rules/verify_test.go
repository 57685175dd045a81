package rules_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"wordgen/internal/rules"
)

// valid returns a fresh rule set that passes verification.
func valid() rules.Rules {
	return rules.Rules{
		rules.AlphabetKey:   {{Key: "abc"}},
		rules.WordLengthKey: {{Key: "min", Weight: 1}, {Key: "avg", Weight: 2}, {Key: "max", Weight: 3}},
		" ":                 {{Key: "a", Weight: 1}},
		"a":                 {{Key: " ", Weight: 1}, {Key: "a", Weight: 0}, {Key: "b", Weight: 1}},
		"b":                 {{Key: "a", Weight: 1}, {Key: "c", Weight: 1}},
		"c":                 {{Key: " ", Weight: 1}},
	}
}

func TestVerifyAcceptsValidRules(t *testing.T) {
	require.NoError(t, rules.Verify(valid()))
}

func TestVerifyAcceptsSingleCharacterAlphabet(t *testing.T) {
	r := valid()
	r[rules.AlphabetKey] = rules.Table{{Key: "a"}}
	r["a"] = rules.Table{{Key: " ", Weight: 1}, {Key: "_", Weight: 1}}
	delete(r, "b")
	delete(r, "c")
	require.NoError(t, rules.Verify(r))
}

func TestVerifyMinAlphabetPolicy(t *testing.T) {
	r := valid()
	r[rules.AlphabetKey] = rules.Table{{Key: "a"}}
	r["a"] = rules.Table{{Key: " ", Weight: 1}}
	delete(r, "b")
	delete(r, "c")

	require.NoError(t, rules.Verify(r))
	require.ErrorIs(t, rules.Verify(r, rules.WithMinAlphabet(2)), rules.ErrAlphabetTooSmall)
}

func TestVerifyRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(rules.Rules)
		want   error
	}{
		{"no alphabet", func(r rules.Rules) { delete(r, rules.AlphabetKey) }, rules.ErrNoAlphabet},
		{"alphabet without key", func(r rules.Rules) { r[rules.AlphabetKey] = rules.Table{} }, rules.ErrEmptyAlphabet},
		{"empty alphabet key", func(r rules.Rules) { r[rules.AlphabetKey] = rules.Table{{Key: ""}} }, rules.ErrEmptyAlphabet},
		{"no word_length", func(r rules.Rules) { delete(r, rules.WordLengthKey) }, rules.ErrNoWordLength},
		{"no min", func(r rules.Rules) {
			r[rules.WordLengthKey] = rules.Table{{Key: "avg", Weight: 2}, {Key: "max", Weight: 3}}
		}, rules.ErrMissingBound},
		{"no max", func(r rules.Rules) {
			r[rules.WordLengthKey] = rules.Table{{Key: "min", Weight: 1}, {Key: "avg", Weight: 2}}
		}, rules.ErrMissingBound},
		{"no avg", func(r rules.Rules) {
			r[rules.WordLengthKey] = rules.Table{{Key: "min", Weight: 1}, {Key: "max", Weight: 3}}
		}, rules.ErrMissingBound},
		{"min zero", func(r rules.Rules) {
			r[rules.WordLengthKey] = rules.Table{{Key: "min", Weight: 0}, {Key: "avg", Weight: 2}, {Key: "max", Weight: 3}}
		}, rules.ErrZeroMin},
		{"max below min", func(r rules.Rules) {
			r[rules.WordLengthKey] = rules.Table{{Key: "min", Weight: 4}, {Key: "avg", Weight: 4}, {Key: "max", Weight: 3}}
		}, rules.ErrMaxBelowMin},
		{"avg below min", func(r rules.Rules) {
			r[rules.WordLengthKey] = rules.Table{{Key: "min", Weight: 2}, {Key: "avg", Weight: 1}, {Key: "max", Weight: 3}}
		}, rules.ErrAvgOutOfRange},
		{"avg above max", func(r rules.Rules) {
			r[rules.WordLengthKey] = rules.Table{{Key: "min", Weight: 1}, {Key: "avg", Weight: 4}, {Key: "max", Weight: 3}}
		}, rules.ErrAvgOutOfRange},
		{"bad pattern character", func(r rules.Rules) { r["d"] = rules.Table{{Key: "a", Weight: 1}} }, rules.ErrBadCharacter},
		{"bad continuation character", func(r rules.Rules) { r["b"] = rules.Table{{Key: "ad", Weight: 1}} }, rules.ErrBadCharacter},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := valid()
			tc.mutate(r)
			err := rules.Verify(r)
			require.ErrorIs(t, err, tc.want)

			var ve *rules.ValidationError
			require.True(t, errors.As(err, &ve))
			require.NotEmpty(t, ve.Error())
		})
	}
}

func TestVerifyReportsOffendingCharacter(t *testing.T) {
	r := valid()
	r["b"] = rules.Table{{Key: "a", Weight: 1}, {Key: "xz", Weight: 1}}

	var ve *rules.ValidationError
	require.True(t, errors.As(rules.Verify(r), &ve))
	require.Equal(t, 'x', ve.Char)
	require.Equal(t, "b", ve.Pattern)
	require.Equal(t, "xz", ve.Key)
	require.Contains(t, ve.Error(), `"b"`)
}

func TestVerifyAllowsWildcardAndDelimiter(t *testing.T) {
	r := valid()
	r[" a"] = rules.Table{{Key: "_", Weight: 2}, {Key: " ", Weight: 1}}
	require.NoError(t, rules.Verify(r))
}

func TestVerifyDoesNotModify(t *testing.T) {
	r := valid()
	before := valid()
	require.NoError(t, rules.Verify(r))
	require.Equal(t, before, r)
}
