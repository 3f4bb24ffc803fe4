package lshdb

import "fmt"

// Stats summarizes the shape of a built index.
type Stats struct {
	// Size is the number of indexed identifiers.
	Size int
	// NumHyperplanes is the size of the hyperplane set.
	NumHyperplanes int
	// Bits is the number of sign bits per bin identifier.
	Bits int
	// Bins is the total bin space, 2^Bits.
	Bins uint64
	// OccupiedBins is the number of bins holding at least one identifier.
	OccupiedBins uint64
	// MinBucket and MaxBucket are the smallest and largest occupied bucket
	// sizes. Both are zero when the index is empty.
	MinBucket int
	MaxBucket int
	// MeanBucket is the mean occupied bucket size.
	MeanBucket float64
	// Strategy names the hash-assembly strategy.
	Strategy string
}

// Stats computes summary statistics for the index.
func (db *LSHDB[I]) Stats() Stats {
	s := Stats{
		Size:           len(db.buf),
		NumHyperplanes: db.hasher.NumHyperplanes(),
		Bits:           db.hasher.Bits(),
		Bins:           uint64(1) << db.hasher.Bits(),
		OccupiedBins:   db.occupied.GetCardinality(),
		Strategy:       db.hasher.Strategy().String(),
	}

	it := db.occupied.Iterator()
	for it.HasNext() {
		r := db.binIdx[it.Next()]
		n := int(r.End - r.Start)
		if s.MinBucket == 0 || n < s.MinBucket {
			s.MinBucket = n
		}
		if n > s.MaxBucket {
			s.MaxBucket = n
		}
	}
	if s.OccupiedBins > 0 {
		s.MeanBucket = float64(s.Size) / float64(s.OccupiedBins)
	}

	return s
}

// String returns a human-readable one-line summary.
func (s Stats) String() string {
	return fmt.Sprintf("lshdb: size=%d hyperplanes=%d bits=%d strategy=%s occupied=%d/%d bucket[min=%d max=%d mean=%.2f]",
		s.Size, s.NumHyperplanes, s.Bits, s.Strategy, s.OccupiedBins, s.Bins, s.MinBucket, s.MaxBucket, s.MeanBucket)
}
