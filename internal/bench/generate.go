package bench

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Kind selects the shape of a generated dataset.
type Kind string

// Supported dataset shapes.
const (
	KindRandom    Kind = "random"
	KindSorted    Kind = "sorted"
	KindReverse   Kind = "reverse"
	KindFewUnique Kind = "few_unique"
)

// Kinds returns every supported dataset shape in report order.
func Kinds() []Kind {
	return []Kind{KindRandom, KindSorted, KindReverse, KindFewUnique}
}

// ParseKind converts a string to a Kind.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(s)); k {
	case KindRandom, KindSorted, KindReverse, KindFewUnique:
		return k, nil
	default:
		return "", fmt.Errorf("unknown data kind %q", s)
	}
}

// Generate returns n values shaped by kind. Random values span [0, n] so
// duplicates stay rare at any size; few_unique draws from [0, 10] so they
// dominate.
func Generate(n int, kind Kind) ([]int, error) {
	out := make([]int, n)
	switch kind {
	case KindRandom:
		for i := range out {
			out[i] = rand.IntN(n + 1)
		}
	case KindSorted:
		for i := range out {
			out[i] = i
		}
	case KindReverse:
		for i := range out {
			out[i] = n - i
		}
	case KindFewUnique:
		for i := range out {
			out[i] = rand.IntN(11)
		}
	default:
		return nil, fmt.Errorf("unknown data kind %q", kind)
	}
	return out, nil
}
