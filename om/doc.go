// Package om holds the chirotope value type.
//
// A Chirotope maps each basis index of a basis.Table to a Sign. It is stored
// as a positive set and a negative set; zero is implicit. Two chirotopes that
// differ by a global sign flip describe the same oriented matroid, so Equal
// and WeakMap identify c with c.Negate(). Identical is the bitwise test.
//
// The text form is one character per basis in index order:
//
//	c, err := om.Parse("++-0+-")
//	c.String() // "++-0+-"
package om
