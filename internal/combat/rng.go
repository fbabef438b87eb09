// Package combat resolves battle turns: damage, type matchups, stat stages,
// status conditions, ability hooks, move execution and capture attempts.
package combat

// Source is the random source for battle resolution. *math/rand.Rand
// satisfies it; tests substitute scripted sources.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// Roll reports whether a draw lands under p. p >= 1 always succeeds without
// consuming a draw.
func Roll(rng Source, p float64) bool {
	if p >= 1 {
		return true
	}
	if p <= 0 {
		return false
	}
	return rng.Float64() < p
}

// RollRange returns a uniform integer in [lo, hi].
func RollRange(rng Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}
