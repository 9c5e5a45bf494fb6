package perm

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/wippyai/chirotope/errors"
)

// Group is an ordered list of permutations of [0, n) whose first element is
// the identity. It is read-only once built and may be shared freely.
type Group struct {
	elems []Permutation
	n     int
}

// NewGroup validates perms and wraps them as a group action on n elements.
// Closure under composition is not checked; the list is taken as supplied.
func NewGroup(n int, perms []Permutation) (*Group, error) {
	if len(perms) == 0 {
		return nil, errors.InvalidInput(errors.PhaseSymmetry, "group action has no elements")
	}
	for i, p := range perms {
		if err := p.Validate(n); err != nil {
			return nil, errors.New(errors.PhaseSymmetry, errors.KindInvalidInput).
				Path("element", strconv.Itoa(i)).
				Cause(err).
				Detail("invalid group element").
				Build()
		}
	}
	if !perms[0].IsIdentity() {
		return nil, errors.InvalidInput(errors.PhaseSymmetry, "first group element must be the identity")
	}

	elems := make([]Permutation, len(perms))
	for i, p := range perms {
		elems[i] = append(Permutation(nil), p...)
	}
	return &Group{elems: elems, n: n}, nil
}

// SymmetricGroup returns the full symmetric group on n elements.
func SymmetricGroup(n int) (*Group, error) {
	all, err := All(n)
	if err != nil {
		return nil, err
	}
	return &Group{elems: all, n: n}, nil
}

// Degree returns the number of ground elements the group acts on.
func (g *Group) Degree() int { return g.n }

// Len returns the number of group elements, identity included.
func (g *Group) Len() int { return len(g.elems) }

// At returns the i-th element. The result must not be modified.
func (g *Group) At(i int) Permutation { return g.elems[i] }

// NonIdentity returns every element after the leading identity.
func (g *Group) NonIdentity() []Permutation { return g.elems[1:] }

// ParseGroup reads a group action on n elements, one permutation per line
// given as n whitespace separated images. Blank lines and lines starting
// with '#' are skipped.
func ParseGroup(r io.Reader, n int) (*Group, error) {
	var perms []Permutation
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		p := make(Permutation, len(fields))
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil || v < 0 || v > 255 {
				return nil, errors.New(errors.PhaseParse, errors.KindInvalidData).
					Path("line", strconv.Itoa(line)).
					Value(f).
					Detail("invalid permutation image %q", f).
					Build()
			}
			p[i] = uint8(v)
		}
		perms = append(perms, p)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindIO, err, "read group action")
	}
	return NewGroup(n, perms)
}
