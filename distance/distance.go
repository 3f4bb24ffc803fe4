package distance

import (
	"math"
	"slices"

	"github.com/viterin/vek/vek32"
)

// Dot calculates the dot product of two vectors.
// Assumes vectors are the same length (caller's responsibility).
func Dot(a, b []float32) float32 {
	return vek32.Dot(a, b)
}

// Norm returns the L2 norm of v.
func Norm(v []float32) float32 {
	return float32(math.Sqrt(float64(vek32.Dot(v, v))))
}

// Cosine returns the cosine similarity of two vectors.
// Returns 0 if either vector has zero norm.
func Cosine(a, b []float32) float32 {
	na, nb := Norm(a), Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return vek32.Dot(a, b) / (na * nb)
}

// NormalizeL2InPlace L2-normalizes v in place.
// Returns false if v is empty or has zero L2 norm.
func NormalizeL2InPlace(v []float32) bool {
	if len(v) == 0 {
		return false
	}
	norm := Norm(v)
	if norm == 0 {
		return false
	}
	vek32.MulNumber_Inplace(v, 1/norm)
	return true
}

// NormalizeL2Copy returns a normalized copy of src.
// Returns false if src has zero L2 norm.
func NormalizeL2Copy(src []float32) ([]float32, bool) {
	dst := slices.Clone(src)
	if !NormalizeL2InPlace(dst) {
		return nil, false
	}
	return dst, true
}
