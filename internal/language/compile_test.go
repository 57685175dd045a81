package language_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"wordgen/internal/language"
	"wordgen/internal/rules"
)

// load reads a testdata rule set and verifies it.
func load(t *testing.T, name string) rules.Rules {
	t.Helper()
	r, err := rules.Load(filepath.Join("testdata", name))
	require.NoError(t, err)
	require.NoError(t, rules.Verify(r))
	return r
}

func table(entries ...rules.Entry) rules.Rules {
	return rules.Rules{
		rules.AlphabetKey:   {{Key: "abcd"}},
		rules.WordLengthKey: {{Key: "min", Weight: 1}, {Key: "avg", Weight: 2}, {Key: "max", Weight: 3}},
		"a":                 entries,
	}
}

func TestCompileBounds(t *testing.T) {
	lang := language.Compile(load(t, "abc.yaml"))

	require.Equal(t, []rune("abc"), lang.Alphabet)
	require.Equal(t, 1, lang.Min)
	require.Equal(t, 2, lang.Avg)
	require.Equal(t, 3, lang.Max)
	require.Len(t, lang.Patterns, 4)
}

func TestCompileParksZeroWeightsAboveLast(t *testing.T) {
	lang := language.Compile(table(
		rules.Entry{Key: "a", Weight: 0},
		rules.Entry{Key: "b", Weight: 1},
		rules.Entry{Key: " ", Weight: 1},
	))
	p := lang.Patterns["a"]

	require.EqualValues(t, 2, p.Last)
	require.InDelta(t, 0.5, p.Termination, 1e-9)
	require.Equal(t, []language.Slot{
		{Threshold: 1, Continuation: " "},
		{Threshold: 2, Continuation: "b"},
		{Threshold: 3, Continuation: "a"},
	}, p.Slots)
	require.Equal(t, []string{"a"}, p.Forbidden())
}

func TestCompileLeadingZeroWeight(t *testing.T) {
	lang := language.Compile(table(
		rules.Entry{Key: "a", Weight: 0},
		rules.Entry{Key: "b", Weight: 2},
		rules.Entry{Key: "c", Weight: 0},
		rules.Entry{Key: "d", Weight: 3},
	))
	p := lang.Patterns["a"]

	require.EqualValues(t, 5, p.Last)
	require.Zero(t, p.Termination)
	require.Equal(t, []language.Slot{
		{Threshold: 0, Continuation: "a"},
		{Threshold: 2, Continuation: "b"},
		{Threshold: 5, Continuation: "d"},
		{Threshold: 6, Continuation: "c"},
	}, p.Slots)
	require.ElementsMatch(t, []string{"a", "c"}, p.Forbidden())
	require.ElementsMatch(t, []string{"a", "b", "c", "d"}, p.Continuations())
}

func TestCompileAllZero(t *testing.T) {
	lang := language.Compile(table(
		rules.Entry{Key: " ", Weight: 0},
		rules.Entry{Key: "b", Weight: 0},
	))
	p := lang.Patterns["a"]

	require.Zero(t, p.Last)
	require.Zero(t, p.Termination)
	require.Equal(t, []language.Slot{
		{Threshold: 0, Continuation: " "},
		{Threshold: 1, Continuation: "b"},
	}, p.Slots)
}

// TestCompileLastIsPositiveSum rederives the running sums of every compiled
// pattern and checks them against the raw weights.
func TestCompileLastIsPositiveSum(t *testing.T) {
	for _, name := range []string{"abc.yaml", "wildcard.yaml"} {
		t.Run(name, func(t *testing.T) {
			r := load(t, name)
			lang := language.Compile(r)
			for _, key := range r.Patterns() {
				var want uint32
				for _, e := range r[key] {
					if e.Weight > 0 {
						want += e.Weight
					}
				}
				p := lang.Patterns[key]
				require.Equal(t, want, p.Last, "pattern %q", key)

				var prev uint32
				for i, s := range p.Slots {
					if i > 0 {
						require.Greater(t, s.Threshold, prev, "pattern %q thresholds must ascend", key)
					}
					prev = s.Threshold
				}
				require.Len(t, p.Slots, len(r[key]), "pattern %q keeps every continuation", key)
			}
		})
	}
}
