package symmetry

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/wippyai/chirotope/basis"
	omerrors "github.com/wippyai/chirotope/errors"
	"github.com/wippyai/chirotope/om"
	"github.com/wippyai/chirotope/perm"
)

func setup(t *testing.T, r, n int) (*basis.Table, *Engine) {
	t.Helper()
	tab, err := basis.New(r, n)
	if err != nil {
		t.Fatal(err)
	}
	return tab, New(tab)
}

func randomChirotope(rng *rand.Rand, b int) om.Chirotope {
	signs := make([]om.Sign, b)
	for i := range signs {
		signs[i] = om.Sign(rng.IntN(3) - 1)
	}
	return om.FromSigns(signs)
}

func shift(n, k int) perm.Permutation {
	p := make(perm.Permutation, n)
	for i := range p {
		p[i] = uint8((i + k) % n)
	}
	return p
}

func reversal(n int) perm.Permutation {
	p := make(perm.Permutation, n)
	for i := range p {
		p[i] = uint8(n - 1 - i)
	}
	return p
}

func TestPermute_Identity(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for _, rn := range [][2]int{{2, 5}, {3, 6}, {4, 7}} {
		tab, e := setup(t, rn[0], rn[1])
		id := perm.Identity(rn[1])
		for range 50 {
			c := randomChirotope(rng, tab.Count())
			got := e.Permute(c, id)
			if !om.Equal(got, c) {
				t.Fatalf("R=%d N=%d: identity moved %s to %s", rn[0], rn[1], c, got)
			}
			if !got.IsStandard() {
				t.Fatalf("Permute returned non-standard %s", got)
			}
		}
	}
}

func TestPermute_Composition(t *testing.T) {
	rng := rand.New(rand.NewPCG(2, 3))
	for _, rn := range [][2]int{{2, 5}, {3, 5}, {3, 6}} {
		tab, e := setup(t, rn[0], rn[1])
		all, err := perm.All(rn[1])
		if err != nil {
			t.Fatal(err)
		}
		for range 100 {
			c := randomChirotope(rng, tab.Count())
			g := all[rng.IntN(len(all))]
			h := all[rng.IntN(len(all))]
			twice := e.Permute(e.Permute(c, g), h)
			once := e.Permute(c, perm.Compose(g, h))
			if !om.Equal(twice, once) {
				t.Fatalf("R=%d N=%d g=%v h=%v: %s vs %s", rn[0], rn[1], g, h, twice, once)
			}
		}
	}
}

func TestPermute_Inverse(t *testing.T) {
	rng := rand.New(rand.NewPCG(4, 5))
	tab, e := setup(t, 3, 6)
	all, _ := perm.All(6)
	for range 50 {
		c := randomChirotope(rng, tab.Count())
		g := all[rng.IntN(len(all))]
		if back := e.Permute(e.Permute(c, g), g.Inverse()); !om.Equal(back, c) {
			t.Fatalf("g=%v: %s came back as %s", g, c, back)
		}
	}
}

func TestPermute_Transposition(t *testing.T) {
	// Bases of R=2 N=3: 01 02 12. Swapping 0 and 1 sends 01 to itself with
	// odd parity and exchanges 02 with 12, giving --0 before standardizing.
	_, e := setup(t, 2, 3)
	c, _ := om.Parse("+0-")
	got := e.Permute(c, perm.Permutation{1, 0, 2})
	if got.String() != "++0" {
		t.Errorf("Permute = %s, want ++0", got)
	}
}

func TestPermute_PanicsOnInvalid(t *testing.T) {
	tab, e := setup(t, 2, 4)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	e.Permute(om.AllPositive(tab.Count()), perm.Permutation{0, 0, 1, 2})
}

func TestAction_Invalid(t *testing.T) {
	_, e := setup(t, 2, 4)
	_, err := e.Action(perm.Permutation{0, 1, 2})
	if !errors.Is(err, &omerrors.Error{Phase: omerrors.PhaseSymmetry, Kind: omerrors.KindInvalidInput}) {
		t.Errorf("Action error = %v", err)
	}
}

func TestIsFixed_Rank2Reversal(t *testing.T) {
	for n := 3; n <= 7; n++ {
		tab, e := setup(t, 2, n)
		g, err := perm.NewGroup(n, []perm.Permutation{perm.Identity(n), reversal(n)})
		if err != nil {
			t.Fatal(err)
		}
		if !e.IsFixed(om.AllPositive(tab.Count()), g) {
			t.Errorf("N=%d: reversal should fix the all positive chirotope", n)
		}

		cyc, err := perm.NewGroup(n, []perm.Permutation{perm.Identity(n), shift(n, 1)})
		if err != nil {
			t.Fatal(err)
		}
		if e.IsFixed(om.AllPositive(tab.Count()), cyc) {
			t.Errorf("N=%d: rank 2 alternating chirotope is not fixed by a cyclic shift", n)
		}
	}
}

// In odd rank a cyclic shift is an even permutation of each basis it wraps,
// so the alternating chirotope is fixed by the whole cyclic group.
func TestIsFixed_Rank3Cyclic(t *testing.T) {
	tab, e := setup(t, 3, 5)
	perms := make([]perm.Permutation, 5)
	for k := range perms {
		perms[k] = shift(5, k)
	}
	g, err := perm.NewGroup(5, perms)
	if err != nil {
		t.Fatal(err)
	}
	c := om.AllPositive(tab.Count())
	if !e.IsFixed(c, g) {
		t.Error("cyclic group should fix the alternating chirotope")
	}
	acts, err := e.Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	if !IsFixedBy(c, acts) {
		t.Error("IsFixedBy disagrees with IsFixed")
	}
	if orbit := e.Orbit(c, g); len(orbit) != 1 {
		t.Errorf("orbit has %d elements, want 1", len(orbit))
	}
}

func TestOrbit(t *testing.T) {
	tab, e := setup(t, 2, 4)
	g, err := perm.SymmetricGroup(4)
	if err != nil {
		t.Fatal(err)
	}
	c := om.AllPositive(tab.Count())
	orbit := e.Orbit(c, g)
	if !orbit[0].Identical(c) {
		t.Errorf("orbit starts with %s, want %s", orbit[0], c)
	}
	for i, o := range orbit {
		for _, p := range orbit[:i] {
			if p.Identical(o) {
				t.Fatalf("orbit repeats %s", o)
			}
		}
		if !o.IsUniform() {
			t.Fatalf("orbit element %s is not uniform", o)
		}
	}
	if len(orbit) < 2 || len(orbit) > g.Len() {
		t.Errorf("orbit has %d elements", len(orbit))
	}
}

func TestCheck_DegreeMismatch(t *testing.T) {
	_, e := setup(t, 2, 4)
	g, _ := perm.SymmetricGroup(5)
	if err := e.Check(g); err == nil {
		t.Error("expected degree mismatch error")
	}
	if _, err := e.Compile(g); err == nil {
		t.Error("Compile must reject a group of the wrong degree")
	}
}
