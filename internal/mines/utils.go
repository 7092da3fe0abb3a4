package mines

import "github.com/sirupsen/logrus"

var Log = logrus.New()

func iif[T any](condition bool, valueIfTrue, valueIfFalse T) T {
	if condition {
		return valueIfTrue
	} else {
		return valueIfFalse
	}
}

// Source is the randomness the field builder draws from. *rand.Rand from
// math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}
