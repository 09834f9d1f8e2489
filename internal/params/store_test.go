package params

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tversky-labs/skipgram/internal/rng"
)

func TestNewAllocatesOnlyConfiguredMatrices(t *testing.T) {
	r := rng.New(1)
	s := New(4, 10, 9, 0, 5, true, false, r)
	assert.NotNil(t, s.WIn)
	assert.NotNil(t, s.WOutNS)
	assert.NotNil(t, s.WOutHS)
	assert.Nil(t, s.WSent)
}

func TestAddScaledIsUnsynchronizedElementwise(t *testing.T) {
	m := NewMatrix(2, 3)
	delta := []float32{1, 2, 3}
	m.AddScaled(1, delta, 2)
	assert.Equal(t, []float32{2, 4, 6}, m.Row(1))
	assert.Equal(t, []float32{0, 0, 0}, m.Row(0))
}

func TestDotComputesInnerProduct(t *testing.T) {
	m := NewMatrix(1, 3)
	copy(m.Row(0), []float32{1, 2, 3})
	got := m.Dot(0, []float32{4, 5, 6})
	assert.Equal(t, float32(1*4+2*5+3*6), got)
}

func TestRowIsALiveViewIntoSharedData(t *testing.T) {
	m := NewMatrix(1, 2)
	row := m.Row(0)
	row[0] = 99
	assert.Equal(t, float32(99), m.Data[0])
}
