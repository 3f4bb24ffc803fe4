package projection

import (
	"errors"
	"fmt"
	"math/bits"
	"math/rand/v2"

	"github.com/annlab/lshdb/hyperplane"
)

// WordBits is the number of bits available for a bin identifier.
const WordBits = 64

// Strategy selects how a sequence of sign bits becomes a bin identifier.
type Strategy int

const (
	// Concatenate packs one sign bit per hyperplane, giving a bin space of
	// 2^NB. It evaluates every hyperplane on each query and maximizes
	// discrimination.
	Concatenate Strategy = iota

	// Tree interprets the hyperplane set as a perfect binary tree in
	// breadth-first order and descends it, emitting one sign bit per level.
	// Only ~log2(NB) hyperplanes are evaluated per query, trading bin-space
	// width for speed.
	Tree
)

// String returns a string representation of the Strategy.
func (s Strategy) String() string {
	switch s {
	case Concatenate:
		return "Concatenate"
	case Tree:
		return "Tree"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

var (
	// ErrNoHyperplanes is returned when a hasher is constructed without any
	// hyperplanes.
	ErrNoHyperplanes = errors.New("hasher must own at least one hyperplane")
)

// ErrConfigurationTooWide indicates that the bin space implied by the
// hyperplane count and strategy does not fit in a machine word.
type ErrConfigurationTooWide struct {
	NumHyperplanes int
	Strategy       Strategy
}

func (e *ErrConfigurationTooWide) Error() string {
	return fmt.Sprintf("bin space of %d hyperplanes (%s) exceeds %d-bit word",
		e.NumHyperplanes, e.Strategy, WordBits)
}

// ErrShapeMismatch indicates a vector/hyperplane dimensionality mismatch.
type ErrShapeMismatch struct {
	Expected int
	Actual   int
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch: expected dimension %d, got %d", e.Expected, e.Actual)
}

// CheckWidth verifies that numHyperplanes sign bits assembled under the
// given strategy fit in a machine word. It is run before any hyperplane is
// sampled or stored.
func CheckWidth(numHyperplanes int, strategy Strategy) error {
	if numHyperplanes < 1 {
		return ErrNoHyperplanes
	}
	switch strategy {
	case Tree:
		// Depth is log2 of the hyperplane count, which fits in a word for
		// any representable count.
		return nil
	default:
		if numHyperplanes >= WordBits {
			return &ErrConfigurationTooWide{NumHyperplanes: numHyperplanes, Strategy: strategy}
		}
		return nil
	}
}

// Hasher owns an ordered hyperplane set and maps vectors to bin
// identifiers. It holds no per-query state: Bin is a pure function of the
// hyperplane set and the query, so a single Hasher serves both index
// construction and lookups without coordination.
type Hasher struct {
	planes   [][]float32
	dim      int
	strategy Strategy
	depth    int // sign bits emitted per query
}

// New creates a Hasher over a caller-supplied hyperplane set. The planes
// are retained by reference and must not be mutated afterwards.
func New(planes [][]float32, strategy Strategy) (*Hasher, error) {
	if err := CheckWidth(len(planes), strategy); err != nil {
		return nil, err
	}

	dim := len(planes[0])
	if dim < 1 {
		return nil, &hyperplane.ErrInvalidDimension{Dimension: dim}
	}
	for _, p := range planes {
		if len(p) != dim {
			return nil, &ErrShapeMismatch{Expected: dim, Actual: len(p)}
		}
	}

	depth := len(planes)
	if strategy == Tree {
		// floor(log2(NB)): a descent of this depth never indexes past the
		// hyperplane set, whatever NB is.
		depth = bits.Len(uint(len(planes))) - 1
	}

	return &Hasher{
		planes:   planes,
		dim:      dim,
		strategy: strategy,
		depth:    depth,
	}, nil
}

// NewRandom creates a Hasher with numHyperplanes freshly sampled unit
// normals of dimension dim. The width check runs before any sampling, so an
// oversized configuration fails without allocating hyperplanes.
func NewRandom(src rand.Source, numHyperplanes, dim int, strategy Strategy) (*Hasher, error) {
	if err := CheckWidth(numHyperplanes, strategy); err != nil {
		return nil, err
	}

	planes, err := hyperplane.SampleSet(src, numHyperplanes, dim)
	if err != nil {
		return nil, err
	}

	return New(planes, strategy)
}

// Bin hashes query to its bin identifier. The result lies in [0, 2^Bits()).
func (h *Hasher) Bin(query []float32) (uint64, error) {
	if len(query) != h.dim {
		return 0, &ErrShapeMismatch{Expected: h.dim, Actual: len(query)}
	}

	if h.strategy == Tree {
		return h.tree(query), nil
	}
	return h.concatenate(query), nil
}

func (h *Hasher) concatenate(query []float32) uint64 {
	var w uint64
	for i, p := range h.planes {
		w |= hyperplane.SignOfDot(query, p).Bit() << uint(i)
	}
	return w
}

func (h *Hasher) tree(query []float32) uint64 {
	var w uint64
	node := 0
	for d := 0; d < h.depth; d++ {
		s := hyperplane.SignOfDot(query, h.planes[node])
		w |= s.Bit() << uint(d)
		// Negative descends to the left child, Positive to the right.
		node = 2*node + 1 + int(s.Bit())
	}
	return w
}

// Bits returns the number of sign bits per bin identifier: the hyperplane
// count under Concatenate, the tree depth under Tree.
func (h *Hasher) Bits() int { return h.depth }

// NumHyperplanes returns the size of the owned hyperplane set.
func (h *Hasher) NumHyperplanes() int { return len(h.planes) }

// Dimension returns the vector dimensionality the hasher accepts.
func (h *Hasher) Dimension() int { return h.dim }

// Strategy returns the configured assembly strategy.
func (h *Hasher) Strategy() Strategy { return h.strategy }

// Hyperplanes returns the owned hyperplane set. The result is a read-only
// view; callers must not modify it.
func (h *Hasher) Hyperplanes() [][]float32 { return h.planes }
