package lshdb

import (
	"errors"
	"fmt"

	"github.com/annlab/lshdb/hyperplane"
	"github.com/annlab/lshdb/projection"
)

var (
	// ErrEmptyCorpus is returned when Build is given no vectors.
	ErrEmptyCorpus = errors.New("corpus must contain at least one vector")

	// ErrCorpusTooLarge is returned when the corpus has more entries than
	// the 32-bit bucket range table can address.
	ErrCorpusTooLarge = errors.New("corpus exceeds 2^32-1 entries")

	// ErrInvalidRadius is returned when a multi-probe radius is negative.
	ErrInvalidRadius = errors.New("probe radius must be non-negative")

	// ErrDegenerateSample is returned when hyperplane sampling produces a
	// zero-norm vector. Re-exported from the hyperplane package so callers
	// can match build failures without importing it.
	ErrDegenerateSample = hyperplane.ErrDegenerateSample
)

// ErrConfigurationTooWide indicates that the configured bin space exceeds
// the host word width. Alias of the projection package type.
type ErrConfigurationTooWide = projection.ErrConfigurationTooWide

// ErrShapeMismatch indicates a vector dimensionality mismatch at build or
// query time. Alias of the projection package type.
type ErrShapeMismatch = projection.ErrShapeMismatch

// Snapshot errors.
var (
	// ErrInvalidMagic is returned when a snapshot does not start with the
	// lshdb magic number.
	ErrInvalidMagic = errors.New("invalid snapshot magic number")

	// ErrInvalidVersion is returned when a snapshot was written by an
	// unsupported format version.
	ErrInvalidVersion = errors.New("unsupported snapshot version")

	// ErrUnknownCompression is returned when a snapshot header names a
	// compression codec this build does not know.
	ErrUnknownCompression = errors.New("unknown snapshot compression codec")
)

// ChecksumMismatchError is returned when snapshot payload verification fails.
type ChecksumMismatchError struct {
	Expected uint32
	Actual   uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("checksum mismatch: expected 0x%08x, got 0x%08x", e.Expected, e.Actual)
}
