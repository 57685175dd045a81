package language

import "fmt"

// InverseLerp returns where x sits between lo and hi as a fraction in [0, 1].
// It returns 1 when lo == hi. It panics unless lo <= x <= hi.
func InverseLerp(lo, hi, x int) float64 {
	if lo > hi || x < lo || x > hi {
		panic(fmt.Sprintf("language: InverseLerp(%d, %d, %d) outside lo <= x <= hi", lo, hi, x))
	}
	if lo == hi {
		return 1
	}
	return float64(x-lo) / float64(hi-lo)
}

// closeness scores length n against the envelope, rising from min towards avg
// and falling from avg towards max. n must lie in [Min, Max].
func (l *Language) closeness(n int) float64 {
	if n < l.Avg {
		return InverseLerp(l.Min, l.Avg, n)
	}
	return 1 - InverseLerp(l.Avg, l.Max, n)
}
