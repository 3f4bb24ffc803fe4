package lshdb

import (
	"cmp"
	"iter"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/annlab/lshdb/projection"
)

// Entry pairs a caller-chosen identifier with its vector. Identifier
// uniqueness across the corpus is the caller's responsibility.
type Entry[I any] struct {
	ID     I
	Vector []float32
}

// binRange is a half-open [Start, End) slice of the identifier buffer.
// The zero value means the bin is empty; non-empty ranges satisfy
// Start < End. Fields are exported for snapshot encoding only.
type binRange struct {
	Start uint32
	End   uint32
}

// checkCorpusSize rejects corpora the 32-bit range offsets cannot address.
func checkCorpusSize(n int) error {
	if n == 0 {
		return ErrEmptyCorpus
	}
	if uint64(n) > math.MaxUint32 {
		return ErrCorpusTooLarge
	}
	return nil
}

// LSHDB is an immutable random-projection LSH index. It owns its hyperplane
// set, a single contiguous identifier buffer grouped by bin, and a per-bin
// range table, which makes candidate iteration cache-friendly and bin
// lookup O(1) with no per-bin allocation.
//
// After Build returns, nothing is mutated: concurrent read-only queries
// need no synchronization.
type LSHDB[I any] struct {
	hasher   *projection.Hasher
	buf      []I               // corpus identifiers, grouped by ascending bin
	binIdx   []binRange        // one range per bin value
	occupied *roaring64.Bitmap // bins with at least one member
	logger   *Logger
}

// Build constructs an LSHDB from the corpus in one shot.
//
// It samples the hyperplane set from src (unless Options.Hyperplanes is
// set), hashes every corpus vector, stable-sorts the (identifier, bin)
// pairs by bin and records the per-bin ranges. Stability preserves corpus
// order within a bucket. Build borrows src and does not retain it;
// construction is deterministic for a fixed seed and corpus.
func Build[I any](src rand.Source, corpus []Entry[I], optFns ...Option) (*LSHDB[I], error) {
	opts := applyOptions(optFns)

	if err := checkCorpusSize(len(corpus)); err != nil {
		return nil, err
	}

	dim := opts.Dimension
	if dim == 0 {
		dim = len(corpus[0].Vector)
	}

	var (
		hasher *projection.Hasher
		err    error
	)
	if opts.Hyperplanes != nil {
		hasher, err = projection.New(opts.Hyperplanes, opts.Strategy)
	} else {
		hasher, err = projection.NewRandom(src, opts.NumHyperplanes, dim, opts.Strategy)
	}
	if err != nil {
		opts.Logger.LogBuild(len(corpus), opts.NumHyperplanes, 0, opts.Strategy.String(), err)
		return nil, err
	}
	if hasher.Dimension() != dim {
		err = &ErrShapeMismatch{Expected: dim, Actual: hasher.Dimension()}
		opts.Logger.LogBuild(len(corpus), hasher.NumHyperplanes(), 0, opts.Strategy.String(), err)
		return nil, err
	}

	type pair struct {
		id  I
		bin uint64
	}

	pairs := make([]pair, len(corpus))
	for i, e := range corpus {
		bin, err := hasher.Bin(e.Vector)
		if err != nil {
			opts.Logger.LogBuild(len(corpus), hasher.NumHyperplanes(), hasher.Bits(), opts.Strategy.String(), err)
			return nil, err
		}
		pairs[i] = pair{id: e.ID, bin: bin}
	}

	slices.SortStableFunc(pairs, func(a, b pair) int {
		return cmp.Compare(a.bin, b.bin)
	})

	buf := make([]I, len(pairs))
	binIdx := make([]binRange, uint64(1)<<hasher.Bits())
	occupied := roaring64.New()

	for i := 0; i < len(pairs); {
		bin := pairs[i].bin
		j := i
		for j < len(pairs) && pairs[j].bin == bin {
			buf[j] = pairs[j].id
			j++
		}
		binIdx[bin] = binRange{Start: uint32(i), End: uint32(j)}
		occupied.Add(bin)
		i = j
	}

	opts.Logger.LogBuild(len(corpus), hasher.NumHyperplanes(), hasher.Bits(), opts.Strategy.String(), nil)

	return &LSHDB[I]{
		hasher:   hasher,
		buf:      buf,
		binIdx:   binIdx,
		occupied: occupied,
		logger:   opts.Logger,
	}, nil
}

// Bin hashes query to its bin identifier.
func (db *LSHDB[I]) Bin(query []float32) (uint64, error) {
	return db.hasher.Bin(query)
}

// Candidates returns the identifiers stored in the bin the query hashes
// to, in build order. An empty bin yields an empty result, not an error.
//
// The returned slice is a read-only view into the index; callers must not
// modify it.
func (db *LSHDB[I]) Candidates(query []float32) ([]I, error) {
	bin, err := db.hasher.Bin(query)
	if err != nil {
		return nil, err
	}

	cands := db.candidatesInBin(bin)
	db.logger.LogQuery(bin, len(cands))
	return cands, nil
}

// candidatesInBin returns the bin's slice of the identifier buffer with a
// clipped capacity, so appends by the caller cannot leak into the next bin.
func (db *LSHDB[I]) candidatesInBin(bin uint64) []I {
	r := db.binIdx[bin]
	return db.buf[r.Start:r.End:r.End]
}

// PickRandom returns one uniformly chosen candidate from the query's bin.
// The second return is false when the bin is empty. src is borrowed for
// the single draw and not retained.
func (db *LSHDB[I]) PickRandom(src rand.Source, query []float32) (I, bool, error) {
	var zero I

	cands, err := db.Candidates(query)
	if err != nil {
		return zero, false, err
	}
	if len(cands) == 0 {
		return zero, false, nil
	}

	return cands[rand.New(src).IntN(len(cands))], true, nil
}

// Bins iterates over the non-empty bins in ascending bin order, yielding
// each bin identifier and its candidates. The yielded slices are read-only
// views into the index.
func (db *LSHDB[I]) Bins() iter.Seq2[uint64, []I] {
	return func(yield func(uint64, []I) bool) {
		it := db.occupied.Iterator()
		for it.HasNext() {
			bin := it.Next()
			if !yield(bin, db.candidatesInBin(bin)) {
				return
			}
		}
	}
}

// Len returns the number of indexed identifiers.
func (db *LSHDB[I]) Len() int { return len(db.buf) }

// Bits returns the number of sign bits per bin identifier.
func (db *LSHDB[I]) Bits() int { return db.hasher.Bits() }

// Dimension returns the vector dimensionality the index accepts.
func (db *LSHDB[I]) Dimension() int { return db.hasher.Dimension() }

// Strategy returns the configured hash-assembly strategy.
func (db *LSHDB[I]) Strategy() Strategy { return db.hasher.Strategy() }

// NumHyperplanes returns the size of the owned hyperplane set.
func (db *LSHDB[I]) NumHyperplanes() int { return db.hasher.NumHyperplanes() }

// Hyperplanes returns the owned hyperplane set as a read-only view.
func (db *LSHDB[I]) Hyperplanes() [][]float32 { return db.hasher.Hyperplanes() }
