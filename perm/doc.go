// Package perm provides permutation signs and ground-set permutations.
//
// Sort is the sign primitive every other package builds on: it sorts an
// R-tuple of ground elements and reports the parity of the sort, or 0 when
// two elements coincide.
//
//	t := []uint8{2, 0, 1}
//	s := perm.Sort(t) // t == [0 1 2], s == +1
//
// Permutation and Group describe the symmetry side. A Group is an ordered
// list of permutations with the identity first; it is built once, by
// NewGroup, SymmetricGroup or ParseGroup, and read-only afterwards.
package perm
