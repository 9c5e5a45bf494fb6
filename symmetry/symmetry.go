// Package symmetry applies permutations of the ground set to chirotopes.
//
// A permutation s moves basis B to the sorted tuple s(B). The image of χ is
// χ' with χ'(sort(s(B))) = sgn · χ(B), where sgn is the parity of the sort.
// This is a left action: permuting by g and then by h equals permuting once
// by perm.Compose(g, h). Results are returned in standard form.
package symmetry

import (
	"github.com/wippyai/chirotope/basis"
	"github.com/wippyai/chirotope/errors"
	"github.com/wippyai/chirotope/om"
	"github.com/wippyai/chirotope/perm"
)

// Engine permutes chirotopes on one basis table.
type Engine struct {
	tab *basis.Table
}

// New returns an engine for tab.
func New(tab *basis.Table) *Engine {
	return &Engine{tab: tab}
}

// Action is a permutation compiled against a basis table: basis i moves to
// index[i] with sign[i].
type Action struct {
	perm  perm.Permutation
	index []int
	sign  []int8
}

// Action compiles s. It fails if s is not a permutation of the ground set.
func (e *Engine) Action(s perm.Permutation) (*Action, error) {
	if err := s.Validate(e.tab.Elements()); err != nil {
		return nil, err
	}
	a := &Action{
		perm:  append(perm.Permutation(nil), s...),
		index: make([]int, e.tab.Count()),
		sign:  make([]int8, e.tab.Count()),
	}
	t := make([]uint8, e.tab.Rank())
	for i := range a.index {
		for k, v := range e.tab.Basis(i) {
			t[k] = s[v]
		}
		a.sign[i] = int8(perm.Sort(t))
		a.index[i] = e.tab.Index(t)
	}
	return a, nil
}

// Permutation returns the permutation a was compiled from.
func (a *Action) Permutation() perm.Permutation { return a.perm }

// Apply returns the standardized image of c.
func (a *Action) Apply(c om.Chirotope) om.Chirotope {
	signs := make([]om.Sign, len(a.index))
	for i, j := range a.index {
		signs[j] = c.Sign(i) * om.Sign(a.sign[i])
	}
	return om.FromSigns(signs).Standardize()
}

// Permute returns the standardized image of c under s. It panics if s is not
// a permutation of the ground set; use Action to validate untrusted input.
func (e *Engine) Permute(c om.Chirotope, s perm.Permutation) om.Chirotope {
	a, err := e.Action(s)
	if err != nil {
		panic(err)
	}
	return a.Apply(c)
}

// Check verifies that g acts on this engine's ground set.
func (e *Engine) Check(g *perm.Group) error {
	if g.Degree() != e.tab.Elements() {
		return errors.New(errors.PhaseSymmetry, errors.KindInvalidInput).
			Value(g.Degree()).
			Detail("group acts on %d elements, table has %d", g.Degree(), e.tab.Elements()).
			Build()
	}
	return nil
}

// Compile turns every element of g into an Action, identity included.
func (e *Engine) Compile(g *perm.Group) ([]*Action, error) {
	if err := e.Check(g); err != nil {
		return nil, err
	}
	out := make([]*Action, g.Len())
	for i := range out {
		a, err := e.Action(g.At(i))
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

// IsFixed reports whether every non-identity element of g maps c to itself
// up to global sign. It stops at the first element that moves c and panics
// if g does not act on this engine's ground set.
func (e *Engine) IsFixed(c om.Chirotope, g *perm.Group) bool {
	if err := e.Check(g); err != nil {
		panic(err)
	}
	for _, s := range g.NonIdentity() {
		if !om.Equal(e.Permute(c, s), c) {
			return false
		}
	}
	return true
}

// IsFixedBy is IsFixed over precompiled actions. acts[0] is taken to be the
// identity and skipped.
func IsFixedBy(c om.Chirotope, acts []*Action) bool {
	for _, a := range acts[1:] {
		if !om.Equal(a.Apply(c), c) {
			return false
		}
	}
	return true
}

// Orbit returns the distinct standardized images of c under g, in the order
// the group lists them. The first entry is c itself in standard form.
func (e *Engine) Orbit(c om.Chirotope, g *perm.Group) []om.Chirotope {
	if err := e.Check(g); err != nil {
		panic(err)
	}
	var out []om.Chirotope
	for i := 0; i < g.Len(); i++ {
		img := e.Permute(c, g.At(i))
		seen := false
		for _, o := range out {
			if o.Identical(img) {
				seen = true
				break
			}
		}
		if !seen {
			out = append(out, img)
		}
	}
	return out
}
