// Package language compiles verified rule sets into cumulative-weight
// sampling tables and generates words from them.
//
// Compile turns every continuation table into an ascending list of running
// weight sums. A draw r in [1, Last] selects the continuation owning the
// smallest sum >= r, so each continuation is chosen in proportion to its
// weight. Weight-0 continuations cannot own a sum of their own; they are
// parked above Last where no draw reaches them, which keeps them visible to
// wildcard collision checks without ever being generated.
//
// Generation is driven by a caller-supplied Rand. A Language is immutable
// after Compile and may be shared between goroutines as long as each one
// brings its own Rand:
//
//	if err := rules.Verify(r); err != nil {
//		return err
//	}
//	lang := language.Compile(r)
//	rng := rand.New(rand.NewPCG(seed, seed))
//	words, err := lang.GenerateWords(10, rng)
package language
