// Package lshdb provides an embedded, in-memory approximate-nearest-neighbor
// index for fixed-dimension float32 vectors, based on random-hyperplane
// locality-sensitive hashing (SimHash / sign-random-projection).
//
// Every corpus vector is assigned to a bin derived from the signs of its
// projections onto a set of random unit hyperplane normals. A query vector
// is hashed the same way and the members of its bin are returned as ANN
// candidates.
//
// # Quick Start
//
//	src := rand.NewPCG(1, 2) // math/rand/v2; determinism follows the seed
//
//	corpus := []lshdb.Entry[int]{
//	    {ID: 0, Vector: []float32{0.1, 0.9, ...}},
//	    {ID: 1, Vector: []float32{0.8, 0.2, ...}},
//	    // ...
//	}
//
//	db, err := lshdb.Build(src, corpus,
//	    lshdb.WithNumHyperplanes(8),
//	    lshdb.WithStrategy(lshdb.StrategyConcatenate),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	candidates, err := db.Candidates(query) // all identifiers in the query's bin
//	id, ok, err := db.PickRandom(src, query) // one uniformly chosen candidate
//
// # Strategies
//
// Two hash-assembly strategies are available. StrategyConcatenate packs one
// sign bit per hyperplane into the bin identifier, giving 2^NB bins and
// maximum discrimination. StrategyTree descends a perfect binary tree of
// hyperplanes, evaluating only ~log2(NB) of them per query in exchange for
// a smaller bin space.
//
// # Immutability
//
// An LSHDB is built once and never mutated. Concurrent read-only queries
// from multiple goroutines are safe without synchronization.
package lshdb
