package hyperplane

import "github.com/annlab/lshdb/distance"

// Sign tells which side of a hyperplane a vector falls on.
//
// Negative is the zero value on purpose: it packs to bit 0, so any unused
// high-order bits of a bin identifier contribute nothing.
type Sign uint8

const (
	// Negative marks a non-positive projection (bit 0).
	Negative Sign = iota
	// Positive marks a strictly positive projection (bit 1).
	Positive
)

// String returns a string representation of the Sign.
func (s Sign) String() string {
	switch s {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return "Unknown"
	}
}

// Bit returns the numeric bit value of the sign: Positive is 1, Negative is 0.
func (s Sign) Bit() uint64 {
	if s == Positive {
		return 1
	}
	return 0
}

// SignOfDot classifies a against the hyperplane through the origin with
// normal b. It returns Positive if the dot product is strictly greater
// than zero and Negative otherwise. A product of exactly zero maps to
// Negative, which keeps the mapping total.
func SignOfDot(a, b []float32) Sign {
	if distance.Dot(a, b) > 0 {
		return Positive
	}
	return Negative
}

// PackSigns folds a sequence of signs into a single word. Bit i of the
// result is the bit value of signs[i]; the least significant bit
// corresponds to index 0.
func PackSigns(signs []Sign) uint64 {
	var w uint64
	for i, s := range signs {
		w |= s.Bit() << uint(i)
	}
	return w
}
