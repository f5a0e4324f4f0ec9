// Package dice provides the random source consumed by combat rolls.
package dice

//go:generate mockgen -destination=mock/mock_source.go -package=mockdice -source=source.go

// Source draws uniformly distributed numbers.
// Injected into the combat resolver so tests can force outcomes.
type Source interface {
	// Float64 returns a number in [0.0, 1.0).
	Float64() float64
}

// Chance reports whether a roll from src lands under probability p.
// p <= 0 never hits; p >= 1 always hits. Exactly one value is drawn either way.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}
