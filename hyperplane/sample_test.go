package hyperplane

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annlab/lshdb/distance"
)

// zeroSource is a degenerate rand.Source. The ziggurat normal sampler maps
// a constant zero word to a 0.0 draw, so every vector it produces has zero
// norm.
type zeroSource struct{}

func (zeroSource) Uint64() uint64 { return 0 }

func TestSample(t *testing.T) {
	t.Run("UnitNorm", func(t *testing.T) {
		src := rand.NewPCG(1, 2)

		const dim = 16
		for i := 0; i < 100; i++ {
			v, err := Sample(src, dim)
			require.NoError(t, err)
			require.Len(t, v, dim)
			assert.InDelta(t, 1.0, float64(distance.Norm(v)), 1e-5)
		}
	})

	t.Run("SingleDimension", func(t *testing.T) {
		v, err := Sample(rand.NewPCG(3, 4), 1)
		require.NoError(t, err)
		require.Len(t, v, 1)
		// A normalized 1-D vector is exactly +-1.
		assert.InDelta(t, 1.0, float64(v[0]*v[0]), 1e-6)
	})

	t.Run("DegenerateSource", func(t *testing.T) {
		// Both the first draw and the single retry yield zero-norm
		// vectors, so Sample must surface the failure.
		_, err := Sample(zeroSource{}, 4)
		assert.ErrorIs(t, err, ErrDegenerateSample)
	})

	t.Run("InvalidDimension", func(t *testing.T) {
		_, err := Sample(rand.NewPCG(5, 6), 0)
		require.Error(t, err)
		var eid *ErrInvalidDimension
		assert.ErrorAs(t, err, &eid)
		assert.Equal(t, 0, eid.Dimension)
	})
}

func TestSampleSet(t *testing.T) {
	t.Run("Shape", func(t *testing.T) {
		planes, err := SampleSet(rand.NewPCG(7, 8), 5, 12)
		require.NoError(t, err)
		require.Len(t, planes, 5)
		for _, p := range planes {
			assert.Len(t, p, 12)
		}
	})

	t.Run("Deterministic", func(t *testing.T) {
		a, err := SampleSet(rand.NewPCG(42, 42), 4, 8)
		require.NoError(t, err)
		b, err := SampleSet(rand.NewPCG(42, 42), 4, 8)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("DegenerateSource", func(t *testing.T) {
		_, err := SampleSet(zeroSource{}, 3, 4)
		assert.ErrorIs(t, err, ErrDegenerateSample)
	})

	t.Run("DistinctPlanes", func(t *testing.T) {
		planes, err := SampleSet(rand.NewPCG(9, 10), 2, 8)
		require.NoError(t, err)
		assert.NotEqual(t, planes[0], planes[1])
	})
}
