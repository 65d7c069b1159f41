package util

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestMinMax(t *testing.T) {
	// GIVEN
	values := []float64{3, -7.5, 12, 0}

	// WHEN
	minimum := Min(values)
	maximum := Max(values)

	// THEN
	assert.Equal(t, -7.5, minimum)
	assert.Equal(t, 12.0, maximum)
}

func TestMinMax_Empty(t *testing.T) {
	assert.Equal(t, 0.0, Min([]float64{}))
	assert.Equal(t, 0, Max([]int{}))
}
