package perm

import (
	"fmt"

	"github.com/wippyai/chirotope/errors"
)

// MaxSymmetric is the largest n for which All builds every permutation.
const MaxSymmetric = 10

// Permutation maps ground element i to p[i].
type Permutation []uint8

// Identity returns the identity permutation on n elements.
func Identity(n int) Permutation {
	p := make(Permutation, n)
	for i := range p {
		p[i] = uint8(i)
	}
	return p
}

// Validate checks that p is a bijection on [0, n).
func (p Permutation) Validate(n int) error {
	if len(p) != n {
		return errors.New(errors.PhaseSymmetry, errors.KindInvalidInput).
			Value(len(p)).
			Detail("permutation has %d entries, want %d", len(p), n).
			Build()
	}
	seen := make([]bool, n)
	for i, v := range p {
		if int(v) >= n {
			return errors.New(errors.PhaseSymmetry, errors.KindInvalidInput).
				Value(v).
				Detail("image %d of %d is outside [0,%d)", v, i, n).
				Build()
		}
		if seen[v] {
			return errors.New(errors.PhaseSymmetry, errors.KindInvalidInput).
				Value(v).
				Detail("image %d appears twice", v).
				Build()
		}
		seen[v] = true
	}
	return nil
}

// IsIdentity reports whether p fixes every element.
func (p Permutation) IsIdentity() bool {
	for i, v := range p {
		if int(v) != i {
			return false
		}
	}
	return true
}

// Inverse returns q with q[p[i]] = i.
func (p Permutation) Inverse() Permutation {
	q := make(Permutation, len(p))
	for i, v := range p {
		q[v] = uint8(i)
	}
	return q
}

// Compose returns the permutation that applies g first and then h,
// i.e. i -> h[g[i]].
func Compose(g, h Permutation) Permutation {
	c := make(Permutation, len(g))
	for i, v := range g {
		c[i] = h[v]
	}
	return c
}

// Parity returns the sign of p as +1 or -1.
func (p Permutation) Parity() int {
	t := make([]uint8, len(p))
	copy(t, p)
	return Sort(t)
}

func (p Permutation) String() string {
	return fmt.Sprint([]uint8(p))
}

// All returns the n! permutations of [0, n), identity first, generated by
// recursive swapping. n is limited to MaxSymmetric.
func All(n int) ([]Permutation, error) {
	if n < 0 {
		return nil, errors.InvalidInput(errors.PhaseSymmetry, "negative element count")
	}
	if n > MaxSymmetric {
		return nil, errors.Capacity("symmetric group degree", n, MaxSymmetric)
	}

	out := make([]Permutation, 0, factorial(n))
	p := Identity(n)
	var walk func(l int)
	walk = func(l int) {
		if l == n {
			c := make(Permutation, n)
			copy(c, p)
			out = append(out, c)
			return
		}
		for j := l; j < n; j++ {
			p[l], p[j] = p[j], p[l]
			walk(l + 1)
			p[l], p[j] = p[j], p[l]
		}
	}
	walk(0)
	return out, nil
}

func factorial(n int) int {
	f := 1
	for i := 2; i <= n; i++ {
		f *= i
	}
	return f
}
