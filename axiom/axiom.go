// Package axiom decides whether a sign assignment is a chirotope.
//
// A candidate on the bases of a basis.Table is accepted when its two sets
// are disjoint (a basis has one sign), it is not identically zero (B0), and
// it satisfies the local exchange axiom B2′ of Björner et al., Lemma 3.5.4:
//
//	for all ordered tuples x, y with χ(x)·χ(y) ≠ 0 there is an i with
//	χ(y_i, x_2, ..., x_r) · χ(y_1, ..., y_{i-1}, x_1, y_{i+1}, ..., y_r) = χ(x)·χ(y)
//
// χ is extended to arbitrary tuples by sorting: the sign of the sorting
// permutation times the sign of the resulting basis, and zero for tuples with
// a repeated element. Reordering x_2..x_r or y scales both sides equally, so
// it suffices to visit every ordered pair of distinct nonzero bases X, Y and
// every choice of X's element that plays x_1.
package axiom

import (
	"fmt"

	"github.com/wippyai/chirotope/basis"
	"github.com/wippyai/chirotope/errors"
	"github.com/wippyai/chirotope/om"
	"github.com/wippyai/chirotope/perm"
)

// Checker validates candidates for one basis table. It owns scratch buffers
// and must not be shared between goroutines.
type Checker struct {
	tab     *basis.Table
	support []int
	first   []uint8
	second  []uint8
}

// NewChecker returns a checker for chirotopes on the bases of tab.
func NewChecker(tab *basis.Table) *Checker {
	return &Checker{
		tab:     tab,
		support: make([]int, 0, tab.Count()),
		first:   make([]uint8, tab.Rank()),
		second:  make([]uint8, tab.Rank()),
	}
}

// Table returns the basis table the checker was built for.
func (ch *Checker) Table() *basis.Table { return ch.tab }

type rule uint8

const (
	ruleNone rule = iota
	ruleLength
	ruleDisjoint
	ruleNonzero
	ruleExchange
)

// failure locates the first violated axiom. x and y are basis indices and
// pos is the position in x of the element exchanged into y.
type failure struct {
	rule rule
	x, y int
	pos  int
}

// IsChirotope reports whether c is a chirotope.
func (ch *Checker) IsChirotope(c om.Chirotope) bool {
	return ch.check(c).rule == ruleNone
}

// Explain returns nil when c is a chirotope and otherwise an axiom violation
// naming the rule that failed.
func (ch *Checker) Explain(c om.Chirotope) error {
	f := ch.check(c)
	switch f.rule {
	case ruleLength:
		return errors.Violation("length",
			fmt.Sprintf("chirotope has %d signs, table has %d bases", c.Len(), ch.tab.Count()))
	case ruleDisjoint:
		return errors.Violation("disjointness",
			fmt.Sprintf("basis %s is both positive and negative", ch.name(f.x)))
	case ruleNonzero:
		return errors.Violation("B0", "every basis has sign zero")
	case ruleExchange:
		return errors.Violation("B2'",
			fmt.Sprintf("no exchange of element %d of %s into %s matches the sign product %d",
				ch.tab.Basis(f.x)[f.pos], ch.name(f.x), ch.name(f.y), c.Sign(f.x).Mul(c.Sign(f.y))))
	}
	return nil
}

func (ch *Checker) name(i int) string {
	b := ch.tab.Basis(i)
	s := make([]byte, 0, 3*len(b))
	for k, e := range b {
		if k > 0 {
			s = append(s, ' ')
		}
		s = fmt.Appendf(s, "%d", e)
	}
	return "{" + string(s) + "}"
}

func (ch *Checker) check(c om.Chirotope) failure {
	if c.Len() != ch.tab.Count() {
		return failure{rule: ruleLength}
	}
	ch.support = ch.support[:0]
	for i := 0; i < c.Len(); i++ {
		if c.Sign(i) != om.Zero {
			ch.support = append(ch.support, i)
		}
	}
	if !c.Disjoint() {
		both := c.Plus().And(c.Minus())
		return failure{rule: ruleDisjoint, x: both.NextSet(0)}
	}
	if len(ch.support) == 0 {
		return failure{rule: ruleNonzero}
	}
	if ch.tab.Rank() == 1 {
		return failure{}
	}
	for _, x := range ch.support {
		for _, y := range ch.support {
			if x == y {
				continue
			}
			if p, ok := ch.exchange(c, x, y); !ok {
				return failure{rule: ruleExchange, x: x, y: y, pos: p}
			}
		}
	}
	return failure{}
}

// exchange checks B2′ for the bases x and y, trying each element of x as x_1.
// It returns the first position without a witness.
func (ch *Checker) exchange(c om.Chirotope, x, y int) (int, bool) {
	bx, by := ch.tab.Basis(x), ch.tab.Basis(y)
	target := int(c.Sign(x)) * int(c.Sign(y))
	for p := range bx {
		// Moving bx[p] to the front costs p transpositions.
		want := target
		if p%2 == 1 {
			want = -want
		}
		if !ch.witness(c, bx, by, p, want) {
			return p, false
		}
	}
	return 0, true
}

func (ch *Checker) witness(c om.Chirotope, bx, by []uint8, p, want int) bool {
	for q := range by {
		// (y_q, x without x_p)
		ch.first[0] = by[q]
		k := 1
		for i, e := range bx {
			if i != p {
				ch.first[k] = e
				k++
			}
		}
		s1 := ch.sign(c, ch.first)
		if s1 == 0 {
			continue
		}

		// y with y_q replaced by x_p
		copy(ch.second, by)
		ch.second[q] = bx[p]
		s2 := ch.sign(c, ch.second)
		if s2 == 0 {
			continue
		}

		if s1*s2 == want {
			return true
		}
	}
	return false
}

// sign evaluates χ on an arbitrary tuple, sorting t in place.
func (ch *Checker) sign(c om.Chirotope, t []uint8) int {
	s := perm.Sort(t)
	if s == 0 {
		return 0
	}
	return s * int(c.Sign(ch.tab.Index(t)))
}
