package slice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixedSizeSlice(t *testing.T) {
	s := MakeFixedSizeSlice(4)
	assert.Equal(t, 0.0, s.Ratio())

	s.Add(1, 3, 1)
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(3))
	assert.False(t, s.Has(0))
	assert.Equal(t, 0.5, s.Ratio())

	s.Remove(3, 2)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Has(3))
}

func TestEmptyFixedSizeSlice(t *testing.T) {
	s := MakeFixedSizeSlice(0)
	assert.Equal(t, 0.0, s.Ratio())
}

func TestReverseInPlace(t *testing.T) {
	tests := []struct {
		in, want []int
	}{
		{nil, nil},
		{[]int{1}, []int{1}},
		{[]int{1, 2}, []int{2, 1}},
		{[]int{1, 2, 3, 4, 5}, []int{5, 4, 3, 2, 1}},
	}
	for _, tt := range tests {
		ReverseInPlace(tt.in)
		assert.Equal(t, tt.want, tt.in)
	}
}
