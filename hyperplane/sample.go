package hyperplane

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/annlab/lshdb/distance"
)

// ErrDegenerateSample is returned when a unit-vector draw produces a
// zero-norm vector twice in a row. With a sane RNG this is a measure-zero
// event.
var ErrDegenerateSample = errors.New("degenerate sample: zero-norm vector")

// ErrInvalidDimension indicates an invalid configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// Sample draws a vector uniformly distributed on the unit sphere in R^dim:
// each component is an independent standard-normal draw and the result is
// scaled to unit L2 norm. This is the isotropic direction distribution
// required for random-hyperplane LSH over cosine similarity.
//
// A zero-norm draw is retried once before failing with ErrDegenerateSample.
func Sample(src rand.Source, dim int) ([]float32, error) {
	if dim < 1 {
		return nil, &ErrInvalidDimension{Dimension: dim}
	}

	normal := distuv.Normal{Mu: 0, Sigma: 1, Src: src}

	v := make([]float32, dim)
	for attempt := 0; attempt < 2; attempt++ {
		for i := range v {
			v[i] = float32(normal.Rand())
		}
		if distance.NormalizeL2InPlace(v) {
			return v, nil
		}
	}

	return nil, ErrDegenerateSample
}

// SampleSet draws count hyperplane normals of dimension dim.
//
// The order of the returned set is significant: it fixes the meaning of
// each bit of a bin identifier downstream.
func SampleSet(src rand.Source, count, dim int) ([][]float32, error) {
	planes := make([][]float32, count)
	for i := range planes {
		p, err := Sample(src, dim)
		if err != nil {
			return nil, err
		}
		planes[i] = p
	}
	return planes, nil
}
