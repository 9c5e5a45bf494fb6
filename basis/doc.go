// Package basis enumerates the bases of a rank-R chirotope on N elements.
//
// A basis is a strictly increasing R-tuple over the ground set [0, N). The
// Table lists all C(N, R) of them in lexicographic order and maps between a
// basis and its position (its BasisIndex):
//
//	tab, err := basis.New(3, 6)   // 20 bases: 012, 013, ..., 345
//	b := tab.Basis(14)           // [1 3 5]
//	i := tab.Index(b)            // 14
//
// Index is the closed-form combinatorial rank and runs in O(R). A Table is
// built once per run and passed explicitly to every component that needs it.
package basis
