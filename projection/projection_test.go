package projection

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// basisPlanes returns dim standard basis vectors e_0..e_{dim-1}.
func basisPlanes(dim int) [][]float32 {
	planes := make([][]float32, dim)
	for i := range planes {
		p := make([]float32, dim)
		p[i] = 1
		planes[i] = p
	}
	return planes
}

func TestCheckWidth(t *testing.T) {
	t.Run("ConcatenateFits", func(t *testing.T) {
		assert.NoError(t, CheckWidth(63, Concatenate))
	})

	t.Run("ConcatenateTooWide", func(t *testing.T) {
		for _, nb := range []int{64, 65, 128} {
			err := CheckWidth(nb, Concatenate)
			require.Error(t, err)

			var etw *ErrConfigurationTooWide
			require.ErrorAs(t, err, &etw)
			assert.Equal(t, nb, etw.NumHyperplanes)
			assert.Equal(t, Concatenate, etw.Strategy)
		}
	})

	t.Run("TreeAlwaysFits", func(t *testing.T) {
		assert.NoError(t, CheckWidth(1<<20, Tree))
	})

	t.Run("NoHyperplanes", func(t *testing.T) {
		assert.ErrorIs(t, CheckWidth(0, Concatenate), ErrNoHyperplanes)
	})
}

func TestNew(t *testing.T) {
	t.Run("RaggedPlanes", func(t *testing.T) {
		_, err := New([][]float32{{1, 0}, {1, 0, 0}}, Concatenate)
		var esm *ErrShapeMismatch
		require.ErrorAs(t, err, &esm)
		assert.Equal(t, 2, esm.Expected)
		assert.Equal(t, 3, esm.Actual)
	})

	t.Run("TooWideBeforeAnythingElse", func(t *testing.T) {
		_, err := New(make([][]float32, 64), Concatenate)
		var etw *ErrConfigurationTooWide
		assert.ErrorAs(t, err, &etw)
	})
}

func TestNewRandom(t *testing.T) {
	t.Run("Shape", func(t *testing.T) {
		h, err := NewRandom(rand.NewPCG(1, 1), 4, 16, Concatenate)
		require.NoError(t, err)
		assert.Equal(t, 4, h.NumHyperplanes())
		assert.Equal(t, 4, h.Bits())
		assert.Equal(t, 16, h.Dimension())
		assert.Equal(t, Concatenate, h.Strategy())
	})

	t.Run("TooWideFailsBeforeSampling", func(t *testing.T) {
		_, err := NewRandom(rand.NewPCG(1, 1), 64, 16, Concatenate)
		var etw *ErrConfigurationTooWide
		assert.ErrorAs(t, err, &etw)
	})
}

func TestBits(t *testing.T) {
	tests := []struct {
		name     string
		planes   int
		strategy Strategy
		want     int
	}{
		{"Concatenate1", 1, Concatenate, 1},
		{"Concatenate8", 8, Concatenate, 8},
		{"Tree1", 1, Tree, 0},
		{"Tree4", 4, Tree, 2},
		{"Tree5", 5, Tree, 2},
		{"Tree8", 8, Tree, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewRandom(rand.NewPCG(7, 7), tt.planes, 4, tt.strategy)
			require.NoError(t, err)
			assert.Equal(t, tt.want, h.Bits())
		})
	}
}

func TestBinConcatenate(t *testing.T) {
	// With basis-vector planes, bit i of the bin is the sign of query[i].
	h, err := New(basisPlanes(4), Concatenate)
	require.NoError(t, err)

	tests := []struct {
		query []float32
		want  uint64
	}{
		{[]float32{1, 1, 1, 1}, 0b1111},
		{[]float32{-1, -1, -1, -1}, 0b0000},
		{[]float32{1, -1, 1, -1}, 0b0101},
		{[]float32{-1, 1, -1, 1}, 0b1010},
		{[]float32{0, 0, 0, 1}, 0b1000}, // ties pack as zero bits
	}

	for _, tt := range tests {
		bin, err := h.Bin(tt.query)
		require.NoError(t, err)
		assert.Equal(t, tt.want, bin, "query %v", tt.query)
	}
}

func TestBinTree(t *testing.T) {
	// Perfect tree of 4 planes, depth 2. Node 0 decides bit 0; its children
	// (nodes 1 and 2) decide bit 1.
	//
	//        e0 (node 0)
	//       /          \
	//   e1 (node 1)   e2 (node 2)
	planes := basisPlanes(4) // e0, e1, e2, e3

	h, err := New(planes, Tree)
	require.NoError(t, err)
	require.Equal(t, 2, h.Bits())

	tests := []struct {
		query []float32
		want  uint64
	}{
		// q[0] > 0 -> bit0=1, descend right to node 2 (e2); q[2] decides bit 1.
		{[]float32{1, 0, 1, 0}, 0b11},
		{[]float32{1, 0, -1, 0}, 0b01},
		// q[0] <= 0 -> bit0=0, descend left to node 1 (e1); q[1] decides bit 1.
		{[]float32{-1, 1, 0, 0}, 0b10},
		{[]float32{-1, -1, 0, 0}, 0b00},
	}

	for _, tt := range tests {
		bin, err := h.Bin(tt.query)
		require.NoError(t, err)
		assert.Equal(t, tt.want, bin, "query %v", tt.query)
	}
}

func TestBinShapeMismatch(t *testing.T) {
	h, err := New(basisPlanes(4), Concatenate)
	require.NoError(t, err)

	_, err = h.Bin([]float32{1, 2})
	var esm *ErrShapeMismatch
	require.ErrorAs(t, err, &esm)
	assert.Equal(t, 4, esm.Expected)
	assert.Equal(t, 2, esm.Actual)
}

func TestBinIdempotent(t *testing.T) {
	for _, strategy := range []Strategy{Concatenate, Tree} {
		t.Run(strategy.String(), func(t *testing.T) {
			h, err := NewRandom(rand.NewPCG(11, 13), 8, 32, strategy)
			require.NoError(t, err)

			query := make([]float32, 32)
			r := rand.New(rand.NewPCG(17, 19))
			for i := range query {
				query[i] = r.Float32()*2 - 1
			}

			first, err := h.Bin(query)
			require.NoError(t, err)
			second, err := h.Bin(query)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}

func TestBinRange(t *testing.T) {
	// Whatever the strategy, bins stay within [0, 2^Bits()).
	for _, strategy := range []Strategy{Concatenate, Tree} {
		t.Run(strategy.String(), func(t *testing.T) {
			h, err := NewRandom(rand.NewPCG(23, 29), 5, 8, strategy)
			require.NoError(t, err)

			limit := uint64(1) << h.Bits()
			r := rand.New(rand.NewPCG(31, 37))
			for i := 0; i < 256; i++ {
				query := make([]float32, 8)
				for j := range query {
					query[j] = r.Float32()*2 - 1
				}
				bin, err := h.Bin(query)
				require.NoError(t, err)
				assert.Less(t, bin, limit)
			}
		})
	}
}
