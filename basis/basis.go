package basis

import (
	"github.com/wippyai/chirotope/errors"
)

const (
	// MaxElements bounds the ground set; elements are stored as bytes.
	MaxElements = 255

	// MaxBases bounds the size of a table.
	MaxBases = 1 << 20
)

// Table is the ordered list of all increasing rank-tuples over
// [0, elements), in lexicographic order. It is immutable after New and may
// be shared by any number of readers.
type Table struct {
	elems    []uint8 // count*rank, row-major
	binom    [][]int // binom[n][k] for n <= elements, k <= rank
	rank     int
	elements int
	count    int
}

// New builds the basis table for rank r over n ground elements.
func New(r, n int) (*Table, error) {
	if r < 1 {
		return nil, errors.New(errors.PhaseSetup, errors.KindInvalidInput).
			Value(r).
			Detail("rank must be at least 1, got %d", r).
			Build()
	}
	if n < r {
		return nil, errors.New(errors.PhaseSetup, errors.KindInvalidInput).
			Value(n).
			Detail("ground set of %d elements is smaller than rank %d", n, r).
			Build()
	}
	if n > MaxElements {
		return nil, errors.Capacity("ground set size", n, MaxElements)
	}

	binom := binomials(n, r)
	count := binom[n][r]
	if count < 0 {
		return nil, errors.New(errors.PhaseSetup, errors.KindCapacity).
			Detail("C(%d,%d) bases exceed supported maximum %d", n, r, MaxBases).
			Build()
	}

	t := &Table{
		elems:    make([]uint8, count*r),
		binom:    binom,
		rank:     r,
		elements: n,
		count:    count,
	}
	t.generate()
	return t, nil
}

// binomials returns C(i, k) for i <= n, k <= r. Entries saturate at -1 once
// they pass MaxBases so the capacity check cannot overflow.
func binomials(n, r int) [][]int {
	b := make([][]int, n+1)
	for i := range b {
		b[i] = make([]int, r+1)
		b[i][0] = 1
		for k := 1; k <= r && k <= i; k++ {
			x, y := b[i-1][k-1], 0
			if k < i {
				y = b[i-1][k]
			}
			switch {
			case x < 0 || y < 0 || x+y > MaxBases:
				b[i][k] = -1
			default:
				b[i][k] = x + y
			}
		}
	}
	return b
}

// generate fills the table by repeated "next combination": find the rightmost
// position that can still grow, bump it, and reset everything after it to
// consecutive successors.
func (t *Table) generate() {
	r, n := t.rank, t.elements
	for i := 0; i < r; i++ {
		t.elems[i] = uint8(i)
	}
	for s := 1; s < t.count; s++ {
		prev := t.elems[(s-1)*r : s*r]
		cur := t.elems[s*r : (s+1)*r]
		k := r - 1
		for k >= 0 && int(prev[k]) >= n-r+k {
			k--
		}
		copy(cur[:k], prev[:k])
		for i := k; i < r; i++ {
			cur[i] = prev[k] + uint8(i-k+1)
		}
	}
}

// Rank returns the tuple length R.
func (t *Table) Rank() int { return t.rank }

// Elements returns the ground set size N.
func (t *Table) Elements() int { return t.elements }

// Count returns the number of bases B = C(N, R).
func (t *Table) Count() int { return t.count }

// Basis returns the i-th basis. The result aliases the table and must not
// be modified.
func (t *Table) Basis(i int) []uint8 {
	return t.elems[i*t.rank : (i+1)*t.rank : (i+1)*t.rank]
}

// Binomial returns C(n, k) for 0 <= n <= N and 0 <= k <= R, and 0 when k > n.
func (t *Table) Binomial(n, k int) int {
	if n < 0 || k < 0 || k > n {
		return 0
	}
	return t.binom[n][k]
}

// Index returns the position of the strictly increasing tuple a in the table.
// The result is undefined for any other input; use Lookup to validate.
//
// The rank is C(N,R) - 1 - sum_i C(N-1-a[i], R-i): the tuples after a in
// lexicographic order correspond to the R-subsets of the reversed elements
// below it.
func (t *Table) Index(a []uint8) int {
	idx := t.count - 1
	for i, v := range a {
		idx -= t.Binomial(t.elements-1-int(v), t.rank-i)
	}
	return idx
}

// Lookup is Index with validation: ok is false unless a is a strictly
// increasing tuple of R ground elements.
func (t *Table) Lookup(a []uint8) (idx int, ok bool) {
	if len(a) != t.rank {
		return 0, false
	}
	for i, v := range a {
		if int(v) >= t.elements || (i > 0 && a[i-1] >= v) {
			return 0, false
		}
	}
	return t.Index(a), true
}

// search locates a by binary search over the table. It is the slow general
// lookup and serves as an oracle for Index.
func (t *Table) search(a []uint8) int {
	lo, hi := 0, t.count
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if compare(t.Basis(mid), a) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < t.count && compare(t.Basis(lo), a) == 0 {
		return lo
	}
	return -1
}

func compare(a, b []uint8) int {
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}
