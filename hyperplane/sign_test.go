package hyperplane

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignOfDot(t *testing.T) {
	t.Run("Positive", func(t *testing.T) {
		assert.Equal(t, Positive, SignOfDot([]float32{1, 2}, []float32{3, 4}))
	})

	t.Run("Negative", func(t *testing.T) {
		// Multiplicative inner product: opposite vectors must land on the
		// negative side.
		assert.Equal(t, Negative, SignOfDot([]float32{1, 0}, []float32{-1, 0}))
	})

	t.Run("TieIsNegative", func(t *testing.T) {
		// Orthogonal vectors produce exactly zero; ties map to Negative.
		assert.Equal(t, Negative, SignOfDot([]float32{1, 0}, []float32{0, 1}))
	})
}

func TestSignBit(t *testing.T) {
	assert.Equal(t, uint64(1), Positive.Bit())
	assert.Equal(t, uint64(0), Negative.Bit())

	// Negative must be the zero value so unused bits pack to zero.
	var zero Sign
	assert.Equal(t, Negative, zero)
}

func TestPackSigns(t *testing.T) {
	tests := []struct {
		name  string
		signs []Sign
		want  uint64
	}{
		{
			name:  "HighBitsSet",
			signs: []Sign{Negative, Negative, Negative, Positive, Positive},
			want:  0b11000,
		},
		{
			name:  "LowAndHighBitsSet",
			signs: []Sign{Positive, Negative, Negative, Positive, Positive},
			want:  0b11001,
		},
		{
			name:  "Empty",
			signs: nil,
			want:  0,
		},
		{
			name:  "SingleBit",
			signs: []Sign{Positive},
			want:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PackSigns(tt.signs))
		})
	}
}

func TestSignString(t *testing.T) {
	assert.Equal(t, "Positive", Positive.String())
	assert.Equal(t, "Negative", Negative.String())
}
