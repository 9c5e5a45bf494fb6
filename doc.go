// Package chirotope enumerates and validates oriented matroids given by
// their chirotopes: sign functions on the bases of a rank R matroid over an
// N element ground set.
//
// # Architecture Overview
//
// The module is organized leaves first:
//
//	chirotope/          Root package with the Source and Sink interfaces
//	├── basis/          Lexicographic table of all C(N,R) bases and their ranks
//	├── perm/           Sorting with parity, permutations, group actions
//	├── bitvec/         Word-chunked bit vectors keyed on the basis count
//	├── om/             The Chirotope value type, text form, weak-map order
//	├── axiom/          Chirotope axiom checker (B0 and local exchange B2′)
//	├── symmetry/       Ground set permutations acting on chirotopes
//	├── enumerate/      Brute-force lower cone search below a uniform chirotope
//	├── catalog/        Flat-file catalogue reader and lower cone writer
//	├── config/         YAML configuration with environment overrides
//	├── metrics/        Prometheus counters for enumeration runs
//	├── errors/         Structured error types
//	└── cmd/lowercone/  Batch job and inspection commands
//
// # Quick Start
//
// Compute the lower cone of the alternating chirotope of rank 2 on 4
// elements:
//
//	tab, err := basis.New(2, 4)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	en, err := enumerate.New(tab)
//	if err != nil {
//	    log.Fatal(err) // more than 64 bases
//	}
//
//	sink := chirotope.SinkFunc(func(c om.Chirotope) error {
//	    fmt.Println(c) // "+00000", "0+0000", ...
//	    return nil
//	})
//	stats, err := en.LowerCone(ctx, om.AllPositive(tab.Count()), sink)
//	fmt.Println(stats.Accepted) // 33
//
// # Conventions
//
// Bases are indexed in lexicographic order. A chirotope and its negation are
// the same oriented matroid: om.Equal and om.WeakMap identify them, and the
// standard representative has its highest nonzero basis positive.
//
// Permutations act on the left: symmetry.Engine.Permute(c, perm.Compose(g, h))
// equals permuting by g and then by h.
//
// # Capacity
//
// Enumeration walks all 2^B subsets of the bases and is limited to B <= 64.
// The check happens when the enumerator is built, before any work starts.
// Basis tables are limited to basis.MaxBases entries and 255 elements.
package chirotope
