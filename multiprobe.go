package lshdb

import "slices"

// NearbyBins enumerates bin identifiers in order of increasing Hamming
// distance from bin, up to and including the given radius. The starting
// bin comes first (distance zero); bins at equal distance are ordered by
// ascending numeric value. Radii beyond the bin width are clamped.
func (db *LSHDB[I]) NearbyBins(bin uint64, radius int) []uint64 {
	return nearbyBins(bin, db.hasher.Bits(), radius)
}

// CandidatesMultiProbe widens a query to every non-empty bin within the
// given Hamming radius of the query's bin. Identifiers appear in probe
// order: nearest bins first, build order within a bin. Radius zero is
// equivalent to Candidates.
func (db *LSHDB[I]) CandidatesMultiProbe(query []float32, radius int) ([]I, error) {
	if radius < 0 {
		return nil, ErrInvalidRadius
	}

	bin, err := db.hasher.Bin(query)
	if err != nil {
		return nil, err
	}

	var out []I
	for _, b := range nearbyBins(bin, db.hasher.Bits(), radius) {
		if !db.occupied.Contains(b) {
			continue
		}
		out = append(out, db.candidatesInBin(b)...)
	}

	db.logger.LogQuery(bin, len(out))
	return out, nil
}

func nearbyBins(bin uint64, width, radius int) []uint64 {
	if radius > width {
		radius = width
	}

	out := []uint64{bin}
	for d := 1; d <= radius; d++ {
		ring := make([]uint64, 0, 8)
		for mask := range bitCombinations(width, d) {
			ring = append(ring, bin^mask)
		}
		slices.Sort(ring)
		out = append(out, ring...)
	}
	return out
}

// bitCombinations yields every uint64 mask with exactly k of the low
// `width` bits set.
func bitCombinations(width, k int) func(yield func(uint64) bool) {
	return func(yield func(uint64) bool) {
		if k == 0 || k > width {
			return
		}

		// Standard lexicographic combination walk over bit positions.
		pos := make([]int, k)
		for i := range pos {
			pos[i] = i
		}

		for {
			var mask uint64
			for _, p := range pos {
				mask |= 1 << uint(p)
			}
			if !yield(mask) {
				return
			}

			// Advance the rightmost position that can still move.
			i := k - 1
			for i >= 0 && pos[i] == width-k+i {
				i--
			}
			if i < 0 {
				return
			}
			pos[i]++
			for j := i + 1; j < k; j++ {
				pos[j] = pos[j-1] + 1
			}
		}
	}
}
