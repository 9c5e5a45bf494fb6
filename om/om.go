package om

import (
	"strings"

	"github.com/wippyai/chirotope/bitvec"
	"github.com/wippyai/chirotope/errors"
)

// Sign is the value a chirotope assigns to a basis.
type Sign int8

const (
	Zero     Sign = 0
	Positive Sign = 1
	Negative Sign = -1
)

// String returns the serialized character of the sign.
func (s Sign) String() string {
	switch s {
	case Positive:
		return "+"
	case Negative:
		return "-"
	default:
		return "0"
	}
}

// Mul returns the product of two signs.
func (s Sign) Mul(o Sign) Sign { return s * o }

// Char returns the sign as a single byte of the text format.
func (s Sign) Char() byte {
	switch s {
	case Positive:
		return '+'
	case Negative:
		return '-'
	default:
		return '0'
	}
}

// Chirotope is a sign function on the B bases of a basis table, stored as two
// disjoint bit sets. Values are immutable once returned by this package.
type Chirotope struct {
	plus  bitvec.Vector
	minus bitvec.Vector
}

// New returns the all-zero assignment on b bases.
func New(b int) Chirotope {
	return Chirotope{plus: bitvec.New(b), minus: bitvec.New(b)}
}

// AllPositive returns the uniform chirotope with every basis positive.
func AllPositive(b int) Chirotope {
	return Chirotope{plus: bitvec.Ones(b), minus: bitvec.New(b)}
}

// FromSigns builds a chirotope from one sign per basis index.
func FromSigns(signs []Sign) Chirotope {
	c := New(len(signs))
	for i, s := range signs {
		switch s {
		case Positive:
			c.plus.Set(i)
		case Negative:
			c.minus.Set(i)
		}
	}
	return c
}

// FromSets wraps copies of the two sets without checking them. The result
// may violate disjointness; axiom checks reject such values.
func FromSets(plus, minus bitvec.Vector) Chirotope {
	return Chirotope{plus: plus.Clone(), minus: minus.Clone()}
}

// FromWord builds a chirotope on b <= 64 bases from one word per set.
// Bits at or above b are dropped.
func FromWord(b int, plus, minus uint64) Chirotope {
	return Chirotope{plus: bitvec.FromWord(b, plus), minus: bitvec.FromWord(b, minus)}
}

// Len returns B, the number of bases.
func (c Chirotope) Len() int { return c.plus.Len() }

// Sign returns the sign of basis i.
func (c Chirotope) Sign(i int) Sign {
	switch {
	case c.plus.Test(i):
		return Positive
	case c.minus.Test(i):
		return Negative
	default:
		return Zero
	}
}

// Plus returns a copy of the positive set.
func (c Chirotope) Plus() bitvec.Vector { return c.plus.Clone() }

// Minus returns a copy of the negative set.
func (c Chirotope) Minus() bitvec.Vector { return c.minus.Clone() }

// Support returns the set of bases with nonzero sign.
func (c Chirotope) Support() bitvec.Vector { return c.plus.Or(c.minus) }

// Disjoint reports whether no basis is in both sets.
func (c Chirotope) Disjoint() bool { return !c.plus.Intersects(c.minus) }

// CountNonzero returns the number of bases with nonzero sign.
func (c Chirotope) CountNonzero() int { return c.plus.Count() + c.minus.Count() }

// IsZero reports whether every basis is zero.
func (c Chirotope) IsZero() bool { return c.plus.IsZero() && c.minus.IsZero() }

// IsUniform reports whether no basis is zero.
func (c Chirotope) IsUniform() bool {
	return c.Disjoint() && c.CountNonzero() == c.Len()
}

// Clone returns a copy that shares no storage with c.
func (c Chirotope) Clone() Chirotope {
	return Chirotope{plus: c.plus.Clone(), minus: c.minus.Clone()}
}

// Negate returns -c.
func (c Chirotope) Negate() Chirotope {
	return Chirotope{plus: c.minus.Clone(), minus: c.plus.Clone()}
}

// Mask keeps the signs of the bases in s and zeroes the rest.
func (c Chirotope) Mask(s bitvec.Vector) Chirotope {
	return Chirotope{plus: c.plus.And(s), minus: c.minus.And(s)}
}

// Identical reports bitwise equality, without identifying c with -c.
func (c Chirotope) Identical(o Chirotope) bool {
	return c.plus.Equal(o.plus) && c.minus.Equal(o.minus)
}

// IsStandard reports whether the highest nonzero basis is positive. The zero
// assignment is standard.
func (c Chirotope) IsStandard() bool {
	last := c.Support().Last()
	return last < 0 || c.plus.Test(last)
}

// Standardize returns the representative of {c, -c} whose highest nonzero
// basis is positive.
func (c Chirotope) Standardize() Chirotope {
	if c.IsStandard() {
		return c
	}
	return c.Negate()
}

// String serializes c as B characters from the set "+-0" in basis order.
func (c Chirotope) String() string {
	var b strings.Builder
	b.Grow(c.Len())
	for i := 0; i < c.Len(); i++ {
		b.WriteByte(c.Sign(i).Char())
	}
	return b.String()
}

// BitString renders the positive set as binary digits, basis 0 rightmost.
func (c Chirotope) BitString() string { return c.plus.String() }

// Equal reports whether a and b are the same oriented matroid, that is
// a == b or a == -b.
func Equal(a, b Chirotope) bool {
	if a.plus.Equal(b.plus) && a.minus.Equal(b.minus) {
		return true
	}
	return a.plus.Equal(b.minus) && a.minus.Equal(b.plus)
}

// WeakMap reports whether lo is below hi in the weak-map order: every
// nonzero sign of lo, or of -lo, agrees with hi.
func WeakMap(hi, lo Chirotope) bool {
	if hi.Len() != lo.Len() {
		return false
	}
	if lo.plus.SubsetOf(hi.plus) && lo.minus.SubsetOf(hi.minus) {
		return true
	}
	return lo.plus.SubsetOf(hi.minus) && lo.minus.SubsetOf(hi.plus)
}

// Parse reads the text form produced by String. Any character other than
// '+', '-' or '0' is an error.
func Parse(s string) (Chirotope, error) {
	c := New(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '+':
			c.plus.Set(i)
		case '-':
			c.minus.Set(i)
		case '0':
		default:
			return Chirotope{}, errors.InvalidChar(nil, s[i], i)
		}
	}
	return c, nil
}
