// Package bitvec implements a fixed-length bit vector stored in 64-bit words.
//
// Bit i lives in word i/64 at position i%64. Bits at positions >= Len are
// always zero, so word-wise comparisons never see stale tail bits.
package bitvec

import (
	"math/bits"
	"strings"
)

const wordBits = 64

// Vector is a bit vector of fixed length. The zero value has length 0.
type Vector struct {
	words []uint64
	n     int
}

// New returns a cleared vector of n bits.
func New(n int) Vector {
	return Vector{words: make([]uint64, wordCount(n)), n: n}
}

// FromWord returns an n-bit vector (n <= 64) holding w, truncated to n bits.
func FromWord(n int, w uint64) Vector {
	v := New(n)
	if len(v.words) > 0 {
		v.words[0] = w & lastMask(n)
	}
	return v
}

// FromWords returns an n-bit vector over a copy of words. Missing words are
// zero, extra bits are dropped.
func FromWords(n int, words []uint64) Vector {
	v := New(n)
	copy(v.words, words)
	v.trim()
	return v
}

// Ones returns an n-bit vector with every bit set.
func Ones(n int) Vector {
	v := New(n)
	for i := range v.words {
		v.words[i] = ^uint64(0)
	}
	v.trim()
	return v
}

func wordCount(n int) int {
	return (n + wordBits - 1) / wordBits
}

func lastMask(n int) uint64 {
	if r := n % wordBits; r != 0 {
		return (uint64(1) << r) - 1
	}
	return ^uint64(0)
}

func (v Vector) trim() {
	if len(v.words) > 0 {
		v.words[len(v.words)-1] &= lastMask(v.n)
	}
}

// Len returns the number of bits.
func (v Vector) Len() int { return v.n }

// Words returns the backing words. The result must not be modified.
func (v Vector) Words() []uint64 { return v.words }

// Word returns word i, or 0 past the end.
func (v Vector) Word(i int) uint64 {
	if i < len(v.words) {
		return v.words[i]
	}
	return 0
}

// Test reports whether bit i is set.
func (v Vector) Test(i int) bool {
	return v.words[i/wordBits]&(uint64(1)<<(uint(i)%wordBits)) != 0
}

// Set sets bit i.
func (v Vector) Set(i int) {
	v.words[i/wordBits] |= uint64(1) << (uint(i) % wordBits)
}

// Clear clears bit i.
func (v Vector) Clear(i int) {
	v.words[i/wordBits] &^= uint64(1) << (uint(i) % wordBits)
}

// Clone returns an independent copy.
func (v Vector) Clone() Vector {
	c := Vector{words: make([]uint64, len(v.words)), n: v.n}
	copy(c.words, v.words)
	return c
}

// And returns v & o. Both vectors must have the same length.
func (v Vector) And(o Vector) Vector {
	r := New(v.n)
	for i := range r.words {
		r.words[i] = v.words[i] & o.words[i]
	}
	return r
}

// Or returns v | o. Both vectors must have the same length.
func (v Vector) Or(o Vector) Vector {
	r := New(v.n)
	for i := range r.words {
		r.words[i] = v.words[i] | o.words[i]
	}
	return r
}

// AndNot returns v &^ o. Both vectors must have the same length.
func (v Vector) AndNot(o Vector) Vector {
	r := New(v.n)
	for i := range r.words {
		r.words[i] = v.words[i] &^ o.words[i]
	}
	return r
}

// Equal reports whether v and o have the same length and bits.
func (v Vector) Equal(o Vector) bool {
	if v.n != o.n {
		return false
	}
	for i := range v.words {
		if v.words[i] != o.words[i] {
			return false
		}
	}
	return true
}

// Intersects reports whether v and o share a set bit.
func (v Vector) Intersects(o Vector) bool {
	for i := range v.words {
		if i < len(o.words) && v.words[i]&o.words[i] != 0 {
			return true
		}
	}
	return false
}

// SubsetOf reports whether every bit of v is also set in o.
func (v Vector) SubsetOf(o Vector) bool {
	for i := range v.words {
		if v.words[i]&^o.Word(i) != 0 {
			return false
		}
	}
	return true
}

// IsZero reports whether no bit is set.
func (v Vector) IsZero() bool {
	for _, w := range v.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (v Vector) Count() int {
	c := 0
	for _, w := range v.words {
		c += bits.OnesCount64(w)
	}
	return c
}

// Last returns the index of the highest set bit, or -1.
func (v Vector) Last() int {
	for i := len(v.words) - 1; i >= 0; i-- {
		if w := v.words[i]; w != 0 {
			return i*wordBits + wordBits - 1 - bits.LeadingZeros64(w)
		}
	}
	return -1
}

// NextSet returns the lowest set bit at index >= i, or -1.
func (v Vector) NextSet(i int) int {
	if i < 0 {
		i = 0
	}
	if i >= v.n {
		return -1
	}
	wi := i / wordBits
	w := v.words[wi] >> (uint(i) % wordBits)
	if w != 0 {
		return i + bits.TrailingZeros64(w)
	}
	for wi++; wi < len(v.words); wi++ {
		if w := v.words[wi]; w != 0 {
			return wi*wordBits + bits.TrailingZeros64(w)
		}
	}
	return -1
}

// String renders the vector with the lowest bit on the right.
func (v Vector) String() string {
	var b strings.Builder
	b.Grow(v.n)
	for i := v.n - 1; i >= 0; i-- {
		if v.Test(i) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}
