package corpus

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"wordgen/internal/language"
	"wordgen/internal/rules"
)

func TestExtractRepeatedWord(t *testing.T) {
	r, err := Extract("aa aa aa", 1)
	require.NoError(t, err)

	require.Equal(t, "a", r.Alphabet())
	require.Equal(t, rules.Table{
		{Key: rules.MinKey, Weight: 2},
		{Key: rules.AvgKey, Weight: 2},
		{Key: rules.MaxKey, Weight: 2},
	}, r[rules.WordLengthKey])
	require.Equal(t, []string{" ", "a"}, r.Patterns())
	require.Equal(t, rules.Table{{Key: " ", Weight: 0}, {Key: "a", Weight: 3}}, r[" "])
	require.Equal(t, rules.Table{{Key: " ", Weight: 3}, {Key: "a", Weight: 3}}, r["a"])
}

func TestExtractDepthTwo(t *testing.T) {
	r, err := Extract("Ab!", 2)
	require.NoError(t, err)

	require.Equal(t, []string{" ", " a", "a", "ab", "b"}, r.Patterns())
	require.Equal(t, rules.Table{{Key: " "}, {Key: "b", Weight: 1}}, r[" a"])
	require.Equal(t, rules.Table{{Key: " ", Weight: 1}}, r["ab"])
	require.Equal(t, rules.Table{{Key: " ", Weight: 1}}, r["b"])
}

func TestExtractNeverSpansWords(t *testing.T) {
	r, err := Extract("ab cd ef", 3)
	require.NoError(t, err)
	for _, p := range r.Patterns() {
		require.NotRegexp(t, `\S \S`, p, "pattern %q spans a word boundary", p)
		require.NotRegexp(t, `\S $`, p, "pattern %q ends on a boundary", p)
	}
}

func TestExtractErrors(t *testing.T) {
	_, err := Extract("abc", 0)
	require.ErrorIs(t, err, ErrBadDepth)

	_, err = Extract(" 12 ?! \n", 2)
	require.ErrorIs(t, err, ErrEmptyText)
}

func TestExtractFeedsGenerator(t *testing.T) {
	r, err := Extract("aa aa aa", 1)
	require.NoError(t, err)
	require.NoError(t, rules.Verify(r))

	data, err := rules.Marshal(r)
	require.NoError(t, err)
	back, err := rules.Parse(data)
	require.NoError(t, err)
	require.Equal(t, r, back)

	out, err := language.Compile(back).GenerateWords(3, rand.New(rand.NewPCG(0, 0)))
	require.NoError(t, err)
	require.Equal(t, "aa aa aa", out)
}

func TestExtractLorem(t *testing.T) {
	text := "Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor " +
		"incididunt ut labore et dolore magna aliqua."
	r, err := Extract(text, 3)
	require.NoError(t, err)
	require.NoError(t, rules.Verify(r))

	lang := language.Compile(r)
	rng := rand.New(rand.NewPCG(42, 42))
	words, err := lang.Words(25, 10, rng)
	require.NoError(t, err)
	for _, w := range words {
		n := len([]rune(w))
		require.True(t, n >= lang.Min && n <= lang.Max, "%q outside [%d, %d]", w, lang.Min, lang.Max)
	}
}

func TestNormalize(t *testing.T) {
	require.Equal(t, "a", Normalize("123?a#,!"))
	require.Equal(t, "multiple lines and return", Normalize(" multiple  \n  lines  \r  and  \n\n   return "))
	require.Equal(t, "straße éa", Normalize("STRASSE"[:0]+"Straße ÉA"))
}

func TestWordLengths(t *testing.T) {
	tests := []struct {
		text         string
		lo, avg, hi int
	}{
		{"a", 1, 1, 1},
		{"a aa aaa", 1, 2, 3},
		{"a a a aaaaa", 1, 2, 5},
		{"lorem ipsum dolor sit amet consectetur adipiscing elit sed do eiusmod tempor incididunt ut labore et dolore magna aliqua", 2, 5, 11},
		{"é éé", 1, 1, 2},
	}
	for _, tc := range tests {
		lo, avg, hi := WordLengths(tc.text)
		require.Equal(t, []int{tc.lo, tc.avg, tc.hi}, []int{lo, avg, hi}, tc.text)
	}
}

func TestAlphabet(t *testing.T) {
	require.Equal(t, "ab", Alphabet("ba"))
	require.Equal(t, "ab", Alphabet("baa"))
	require.Equal(t, "ab", Alphabet("  b  a  a   "))
	require.Equal(t, "ademnortx", Alphabet("random text"))
}

func TestWindows(t *testing.T) {
	require.Equal(t,
		[]string{"lo", "or", "re", "em", "m ", " i", "ip", "ps", "su", "um"},
		windows("lorem ipsum", 2))
	require.Nil(t, windows("ab", 3))
	require.Equal(t, []string{"éa"}, windows("éa", 2))
}

func TestTrimPreceding(t *testing.T) {
	tests := map[string]string{
		"a":     "a",
		" a":    " a",
		"a a":   " a",
		" a a":  " a",
		"a a a": " a",
		"a ":    " ",
		" a ":   " ",
		"ab":    "ab",
		" ab":   " ab",
	}
	for in, want := range tests {
		require.Equal(t, want, trimPreceding(in), "trimPreceding(%q)", in)
	}
}
